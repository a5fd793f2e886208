package container

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Availability represents a container's availability state. It is both the
// vocabulary of ledger events and the result type of status derivation.
type Availability int

const (
	// AvailabilityUnknown represents an unset availability. Ledger events may
	// omit availability (pure location pings); derivation skips them.
	AvailabilityUnknown Availability = iota

	// Available is the default state of a container with no history.
	Available

	// Hired indicates an open-ended hire (start date set, no end date).
	Hired

	// Occupied indicates a hire whose end date lies in the future.
	Occupied

	// InTransit through Cleared form the in-transit vocabulary recorded by
	// ledger events and passed through verbatim by derivation.
	InTransit
	Loaded
	AssignedToJob
	Arrived
	DeLinked
	UnderRepair
	Returned
	Cleared
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "Unknown",
		Available:           "Available",
		Hired:               "Hired",
		Occupied:            "Occupied",
		InTransit:           "In Transit",
		Loaded:              "Loaded",
		AssignedToJob:       "Assigned to Job",
		Arrived:             "Arrived",
		DeLinked:            "De-Linked",
		UnderRepair:         "Under Repair",
		Returned:            "Returned",
		Cleared:             "Cleared",
	}
}

// AvailabilityFromString parses the wire form of an availability value.
// The vocabulary is a closed enumeration; anything else is invalid.
func AvailabilityFromString(s string) (Availability, error) {
	for value, str := range getAvailabilityStrings() {
		if str == s && value != AvailabilityUnknown {
			return value, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"availability", fmt.Errorf("%q is not a valid availability", s))
}

// String returns the human-readable name of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the availability is one of the closed vocabulary.
func (a Availability) Validate() error {
	if _, ok := getAvailabilityStrings()[a]; !ok || a == AvailabilityUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability", fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// IsTransitVocabulary reports whether the value belongs to the fixed
// in-transit vocabulary that derivation passes through verbatim.
func (a Availability) IsTransitVocabulary() bool {
	switch a {
	case InTransit, Loaded, AssignedToJob, Arrived, DeLinked, UnderRepair, Returned, Cleared:
		return true
	default:
		return false
	}
}
