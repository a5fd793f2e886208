package container

import (
	"time"

	"freight/internal/pkg/errs"
)

// StatusEvent is one immutable row of a container's status ledger.
// Events are ordered by Seq, assigned at append time; an event carries an
// optional location, an optional availability from the closed vocabulary,
// a free-text note, and the acting user.
type StatusEvent struct {
	seq          int
	location     string
	availability Availability
	note         string
	actor        string
	occurredAt   time.Time
}

// NewStatusEvent creates a ledger event. Availability may be
// AvailabilityUnknown for pure location pings, but then a location is
// required so the event carries some information. Actor is mandatory.
func NewStatusEvent(
	seq int,
	location string,
	availability Availability,
	note string,
	actor string,
	occurredAt time.Time,
) (StatusEvent, error) {
	if actor == "" {
		return StatusEvent{}, errs.NewValueIsRequiredError("actor")
	}
	if availability == AvailabilityUnknown && location == "" {
		return StatusEvent{}, errs.NewValueIsRequiredError("location or availability")
	}
	if availability != AvailabilityUnknown {
		if err := availability.Validate(); err != nil {
			return StatusEvent{}, err
		}
	}

	return StatusEvent{
		seq:          seq,
		location:     location,
		availability: availability,
		note:         note,
		actor:        actor,
		occurredAt:   occurredAt,
	}, nil
}

// RestoreStatusEvent reconstructs a persisted ledger event without
// re-running append-time validation.
func RestoreStatusEvent(
	seq int,
	location string,
	availability Availability,
	note string,
	actor string,
	occurredAt time.Time,
) StatusEvent {
	return StatusEvent{
		seq:          seq,
		location:     location,
		availability: availability,
		note:         note,
		actor:        actor,
		occurredAt:   occurredAt,
	}
}

// Seq returns the insertion sequence of the event within its ledger.
func (e StatusEvent) Seq() int { return e.seq }

// Location returns the recorded location, empty when not supplied.
func (e StatusEvent) Location() string { return e.location }

// Availability returns the recorded availability,
// AvailabilityUnknown when the event was a pure location ping.
func (e StatusEvent) Availability() Availability { return e.availability }

// Note returns the free-text note.
func (e StatusEvent) Note() string { return e.note }

// Actor returns the user who recorded the event.
func (e StatusEvent) Actor() string { return e.actor }

// OccurredAt returns when the event was recorded.
func (e StatusEvent) OccurredAt() time.Time { return e.occurredAt }
