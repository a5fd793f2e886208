package container

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// OwnerType states whether a container belongs to the fleet or is hired in.
// It is immutable once the container is created: it selects which of the
// purchase or hire detail records exists and feeds status derivation.
type OwnerType int

const (
	OwnerTypeUnknown OwnerType = iota

	// Owned containers carry exactly one purchase detail record.
	Owned

	// HiredIn containers carry exactly one hire detail record.
	HiredIn
)

func getOwnerTypeStrings() map[OwnerType]string {
	return map[OwnerType]string{
		OwnerTypeUnknown: "Unknown",
		Owned:            "owned",
		HiredIn:          "hired",
	}
}

// OwnerTypeFromString parses the wire form of an owner type.
func OwnerTypeFromString(s string) (OwnerType, error) {
	for value, str := range getOwnerTypeStrings() {
		if str == s && value != OwnerTypeUnknown {
			return value, nil
		}
	}
	return OwnerTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"ownerType", fmt.Errorf("%q is not a valid owner type", s))
}

// String returns the wire form of the owner type.
func (o OwnerType) String() string {
	if str, ok := getOwnerTypeStrings()[o]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the owner type is one of the closed vocabulary.
func (o OwnerType) Validate() error {
	if o != Owned && o != HiredIn {
		return errs.NewValueIsInvalidErrorWithCause(
			"ownerType", fmt.Errorf("%d is not a valid owner type", o))
	}
	return nil
}
