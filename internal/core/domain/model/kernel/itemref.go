package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"freight/internal/pkg/errs"
)

// itemRefPrefix is the leading token of a legacy item reference string.
const itemRefPrefix = "REF"

// ErrItemRefIsNotConstructed is returned when validating a zero-value ItemRef.
var ErrItemRefIsNotConstructed = errs.NewValueIsRequiredError(
	"item reference must be created via NewItemRef or ParseItemRef constructors")

// ItemRef links a flat item submission to its owning shipping party.
// The party and item sequence numbers are party-local, issued at submission
// time, and carried as typed fields. The legacy wire form is the encoded
// string "REF-{partySeq}-{itemSeq}[-suffix]"; ParseItemRef accepts it so
// older clients keep working, but the typed sequences are authoritative.
//
// ItemRef is immutable; the zero value is invalid.
type ItemRef struct {
	partySeq      int
	itemSeq       int
	suffix        string
	isConstructed bool
}

// NewItemRef creates an item reference from typed party and item sequences.
// Both sequences must be non-negative.
func NewItemRef(partySeq, itemSeq int) (ItemRef, error) {
	if partySeq < 0 {
		return ItemRef{}, errs.NewValueIsInvalidErrorWithCause(
			"partySeq", fmt.Errorf("%d is negative", partySeq))
	}
	if itemSeq < 0 {
		return ItemRef{}, errs.NewValueIsInvalidErrorWithCause(
			"itemSeq", fmt.Errorf("%d is negative", itemSeq))
	}
	return ItemRef{partySeq: partySeq, itemSeq: itemSeq, isConstructed: true}, nil
}

// ParseItemRef parses a legacy encoded reference of the form
// "REF-{partySeq}-{itemSeq}" with an optional trailing "-suffix" segment.
// Returns a validation error for any other shape; callers that tolerate
// unparsable references handle the error themselves.
func ParseItemRef(s string) (ItemRef, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 || parts[0] != itemRefPrefix {
		return ItemRef{}, errs.NewValueIsInvalidErrorWithCause(
			"itemRef", fmt.Errorf("%q does not match REF-{party}-{item}", s))
	}

	partySeq, err := strconv.Atoi(parts[1])
	if err != nil {
		return ItemRef{}, errs.NewValueIsInvalidErrorWithCause(
			"itemRef", fmt.Errorf("party segment %q is not a number", parts[1]))
	}

	itemSeq, err := strconv.Atoi(parts[2])
	if err != nil {
		return ItemRef{}, errs.NewValueIsInvalidErrorWithCause(
			"itemRef", fmt.Errorf("item segment %q is not a number", parts[2]))
	}

	ref, err := NewItemRef(partySeq, itemSeq)
	if err != nil {
		return ItemRef{}, err
	}

	if len(parts) > 3 {
		ref.suffix = strings.Join(parts[3:], "-")
	}
	return ref, nil
}

// PartySeq returns the zero-based sequence of the owning shipping party.
func (r ItemRef) PartySeq() int {
	return r.partySeq
}

// ItemSeq returns the party-local sequence of the item.
func (r ItemRef) ItemSeq() int {
	return r.itemSeq
}

// Suffix returns the optional trailing segment of a legacy reference.
func (r ItemRef) Suffix() string {
	return r.suffix
}

// String returns the encoded wire form "REF-{partySeq}-{itemSeq}[-suffix]".
func (r ItemRef) String() string {
	s := fmt.Sprintf("%s-%d-%d", itemRefPrefix, r.partySeq, r.itemSeq)
	if r.suffix != "" {
		s += "-" + r.suffix
	}
	return s
}

// IsEqual reports whether two references address the same party/item slot.
func (r ItemRef) IsEqual(other ItemRef) bool {
	return r.partySeq == other.partySeq && r.itemSeq == other.itemSeq
}

// Validate checks that the ItemRef was created via a constructor.
func (r ItemRef) Validate() error {
	if !r.isConstructed {
		return ErrItemRefIsNotConstructed
	}
	return nil
}
