package consignment

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// ErrNoNextStatus is returned when advancing a consignment whose status is
// terminal. Delivered and Cancelled have no next status.
var ErrNoNextStatus = errors.New("no next status available")

// Status represents the lifecycle state of a consignment. The workflow is a
// strict linear chain:
//
//	Draft -> Submitted -> In Transit -> Delivered
//
// Delivered and Cancelled are terminal. Cancelled is reachable only through
// the explicit cancel operation, never through Advance.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	Draft
	Submitted
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Draft:         "Draft",
		Submitted:     "Submitted",
		InTransit:     "In Transit",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// StatusFromString parses the wire form of a consignment status.
func StatusFromString(s string) (Status, error) {
	for value, str := range getStatusStrings() {
		if str == s && value != StatusUnknown {
			return value, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid consignment status", s))
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the closed vocabulary.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid consignment status", s))
	}
	return nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the successor in the linear chain.
// Terminal statuses return ErrNoNextStatus.
func (s Status) Next() (Status, error) {
	switch s {
	case Draft:
		return Submitted, nil
	case Submitted:
		return InTransit, nil
	case InTransit:
		return Delivered, nil
	case Delivered, Cancelled:
		return StatusUnknown, fmt.Errorf("%w: status is %s", ErrNoNextStatus, s)
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid consignment status", s))
	}
}
