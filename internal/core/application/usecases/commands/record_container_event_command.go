package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRecordContainerEventCommandIsNotConstructed = errors.New(
	"RecordContainerEventCommand must be created via NewRecordContainerEventCommand constructor",
)

// RecordContainerEventParams appends one event to a container's status
// ledger. At least one of location or availability must be present; a pure
// location ping carries no availability.
type RecordContainerEventParams struct {
	ContainerID  kernel.UUID
	Location     string
	Availability string
	Note         string
	Actor        string
	OccurredAt   time.Time
}

// RecordContainerEventCommand represents a validated request to append a
// ledger event.
type RecordContainerEventCommand struct { //nolint:recvcheck //using for validation
	containerID  kernel.UUID
	location     string
	availability container.Availability
	note         string
	actor        string
	occurredAt   time.Time

	guard guard.ConstructorGuard
}

// NewRecordContainerEventCommand validates the params and creates the command.
func NewRecordContainerEventCommand(params RecordContainerEventParams) (RecordContainerEventCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.ContainerID.Validate(); err != nil {
		verrs.Add("containerId", err.Error())
	}
	if params.Actor == "" {
		verrs.AddRequired("actor")
	}
	if params.Location == "" && params.Availability == "" {
		verrs.Add("location", "either location or availability is required")
	}

	availability := container.AvailabilityUnknown
	if params.Availability != "" {
		var err error
		availability, err = container.AvailabilityFromString(params.Availability)
		if err != nil {
			verrs.Add("availability", err.Error())
		}
	}

	if err := verrs.AsError(); err != nil {
		return RecordContainerEventCommand{}, err
	}

	occurredAt := params.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return RecordContainerEventCommand{
		containerID:  params.ContainerID,
		location:     params.Location,
		availability: availability,
		note:         params.Note,
		actor:        params.Actor,
		occurredAt:   occurredAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordContainerEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordContainerEventCommandIsNotConstructed)
}

// ContainerID returns the target container identifier.
func (c RecordContainerEventCommand) ContainerID() kernel.UUID { return c.containerID }

// Location returns the reported location, possibly empty.
func (c RecordContainerEventCommand) Location() string { return c.location }

// Availability returns the reported availability,
// AvailabilityUnknown for a pure location ping.
func (c RecordContainerEventCommand) Availability() container.Availability { return c.availability }

// Note returns the optional free-text note.
func (c RecordContainerEventCommand) Note() string { return c.note }

// Actor returns who reported the event.
func (c RecordContainerEventCommand) Actor() string { return c.actor }

// OccurredAt returns when the event occurred.
func (c RecordContainerEventCommand) OccurredAt() time.Time { return c.occurredAt }
