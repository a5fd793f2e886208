package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the overall lifecycle state of an order. It is never set
// directly by callers: AggregateStatus reduces the receivers' statuses into
// it, and the order recomputes it whenever a receiver status changes.
//
// Severity ordering for the reduction:
//
//	Created < In Transit < Delivered < Completed
//
// Cancelled is absorbing: one cancelled receiver cancels the order.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Created is the initial status of a freshly booked order.
	Created

	// InTransit indicates at least one receiver's cargo is moving.
	InTransit

	// Delivered indicates the furthest receiver has been delivered.
	Delivered

	// Completed indicates the furthest receiver has completed its workflow.
	Completed

	// Cancelled is absorbing; an order with any cancelled receiver is
	// cancelled. Orders are never physically deleted.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Created:       "Created",
		InTransit:     "In Transit",
		Delivered:     "Delivered",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// StatusFromString parses the wire form of an order status.
func StatusFromString(s string) (Status, error) {
	for value, str := range getStatusStrings() {
		if str == s && value != StatusUnknown {
			return value, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
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
			"status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// IsTerminal reports whether no further status change is expected.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AggregateStatus reduces receiver statuses to the order's overall status.
// Cancelled absorbs everything; otherwise the receiver with the
// highest-severity status determines the order's label. An order with no
// receivers defaults to Created.
func AggregateStatus(statuses []ReceiverStatus) Status {
	result := Created
	for _, rs := range statuses {
		if rs == ReceiverCancelled {
			return Cancelled
		}
		if severity := rs.OrderStatus(); severity > result {
			result = severity
		}
	}
	return result
}
