package order

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// TrackingEvent is one immutable row of an order's tracking stream: one row
// per status change per receiver, never mutated after the fact.
type TrackingEvent struct {
	id         kernel.UUID
	orderID    kernel.UUID
	receiverID kernel.UUID
	status     ReceiverStatus
	note       string
	actor      string
	occurredAt time.Time
}

// NewTrackingEvent creates a tracking row for a receiver status.
func NewTrackingEvent(
	orderID, receiverID kernel.UUID,
	status ReceiverStatus,
	note, actor string,
	occurredAt time.Time,
) (TrackingEvent, error) {
	if err := orderID.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if err := receiverID.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if actor == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("actor")
	}

	return TrackingEvent{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		receiverID: receiverID,
		status:     status,
		note:       note,
		actor:      actor,
		occurredAt: occurredAt,
	}, nil
}

// RestoreTrackingEvent reconstructs a persisted tracking row.
func RestoreTrackingEvent(
	id, orderID, receiverID kernel.UUID,
	status ReceiverStatus,
	note, actor string,
	occurredAt time.Time,
) TrackingEvent {
	return TrackingEvent{
		id:         id,
		orderID:    orderID,
		receiverID: receiverID,
		status:     status,
		note:       note,
		actor:      actor,
		occurredAt: occurredAt,
	}
}

// ID returns the event's unique identifier.
func (e TrackingEvent) ID() kernel.UUID { return e.id }

// OrderID returns the owning order.
func (e TrackingEvent) OrderID() kernel.UUID { return e.orderID }

// ReceiverID returns the receiver whose status changed.
func (e TrackingEvent) ReceiverID() kernel.UUID { return e.receiverID }

// Status returns the receiver status recorded by the event.
func (e TrackingEvent) Status() ReceiverStatus { return e.status }

// Note returns the free-text note.
func (e TrackingEvent) Note() string { return e.note }

// Actor returns the user who caused the status change.
func (e TrackingEvent) Actor() string { return e.actor }

// OccurredAt returns when the status change happened.
func (e TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
