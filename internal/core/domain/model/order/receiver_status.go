package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// ReceiverStatus is the extended workflow vocabulary of a shipping party.
// It is deliberately richer than the order vocabulary; OrderStatus maps each
// value onto the severity bucket used by the overall-status reduction.
type ReceiverStatus int

const (
	ReceiverStatusUnknown ReceiverStatus = iota

	ReceiverCreated
	ReceiverBookingConfirmed
	ReceiverContainerAssigned
	ReceiverLoading
	ReceiverOnHold
	ReceiverLoaded
	ReceiverInTransit
	ReceiverArrivedAtPort
	ReceiverCustomsClearance
	ReceiverCustomsCleared
	ReceiverOutForDelivery
	ReceiverPartiallyDelivered
	ReceiverReturned
	ReceiverDelivered
	ReceiverCompleted
	ReceiverCancelled
)

func getReceiverStatusStrings() map[ReceiverStatus]string {
	return map[ReceiverStatus]string{
		ReceiverStatusUnknown:      "Unknown",
		ReceiverCreated:            "Created",
		ReceiverBookingConfirmed:   "Booking Confirmed",
		ReceiverContainerAssigned:  "Container Assigned",
		ReceiverLoading:            "Loading",
		ReceiverOnHold:             "On Hold",
		ReceiverLoaded:             "Loaded",
		ReceiverInTransit:          "In Transit",
		ReceiverArrivedAtPort:      "Arrived at Port",
		ReceiverCustomsClearance:   "Customs Clearance",
		ReceiverCustomsCleared:     "Customs Cleared",
		ReceiverOutForDelivery:     "Out for Delivery",
		ReceiverPartiallyDelivered: "Partially Delivered",
		ReceiverReturned:           "Returned",
		ReceiverDelivered:          "Delivered",
		ReceiverCompleted:          "Completed",
		ReceiverCancelled:          "Cancelled",
	}
}

// ReceiverStatusFromString parses the wire form of a receiver status.
func ReceiverStatusFromString(s string) (ReceiverStatus, error) {
	for value, str := range getReceiverStatusStrings() {
		if str == s && value != ReceiverStatusUnknown {
			return value, nil
		}
	}
	return ReceiverStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"receiverStatus", fmt.Errorf("%q is not a valid receiver status", s))
}

// String returns the human-readable name of the receiver status.
func (s ReceiverStatus) String() string {
	if str, ok := getReceiverStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the receiver status is one of the closed vocabulary.
func (s ReceiverStatus) Validate() error {
	if _, ok := getReceiverStatusStrings()[s]; !ok || s == ReceiverStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"receiverStatus", fmt.Errorf("%d is not a valid receiver status", s))
	}
	return nil
}

// OrderStatus maps the receiver status onto the order severity bucket used
// by AggregateStatus. Pre-movement states map to Created, movement states to
// In Transit, arrival states to Delivered, and Completed to Completed.
// Cancelled is handled by the reduction itself (absorbing).
func (s ReceiverStatus) OrderStatus() Status {
	switch s {
	case ReceiverLoaded, ReceiverInTransit, ReceiverArrivedAtPort,
		ReceiverCustomsClearance, ReceiverCustomsCleared,
		ReceiverOutForDelivery, ReceiverPartiallyDelivered:
		return InTransit
	case ReceiverDelivered, ReceiverReturned:
		return Delivered
	case ReceiverCompleted:
		return Completed
	case ReceiverCancelled:
		return Cancelled
	default:
		return Created
	}
}
