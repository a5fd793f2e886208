package commands

import (
	"errors"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrOverrideContainerStatusCommandIsNotConstructed = errors.New(
	"OverrideContainerStatusCommand must be created via NewOverrideContainerStatusCommand constructor",
)

// OverrideContainerStatusParams sets or clears the administrative status
// override of a container. An empty status clears the override so derivation
// falls back to the hire and ledger rules.
type OverrideContainerStatusParams struct {
	ContainerID kernel.UUID
	Status      string
	Actor       string
}

// OverrideContainerStatusCommand represents a validated request to set or
// clear a container's administrative override.
type OverrideContainerStatusCommand struct { //nolint:recvcheck //using for validation
	containerID kernel.UUID
	status      container.Availability
	clear       bool
	actor       string

	guard guard.ConstructorGuard
}

// NewOverrideContainerStatusCommand validates the params and creates the command.
func NewOverrideContainerStatusCommand(params OverrideContainerStatusParams) (OverrideContainerStatusCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.ContainerID.Validate(); err != nil {
		verrs.Add("containerId", err.Error())
	}
	if params.Actor == "" {
		verrs.AddRequired("actor")
	}

	status := container.AvailabilityUnknown
	clear := params.Status == ""
	if !clear {
		var err error
		status, err = container.AvailabilityFromString(params.Status)
		if err != nil {
			verrs.Add("status", err.Error())
		}
	}

	if err := verrs.AsError(); err != nil {
		return OverrideContainerStatusCommand{}, err
	}

	return OverrideContainerStatusCommand{
		containerID: params.ContainerID,
		status:      status,
		clear:       clear,
		actor:       params.Actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideContainerStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideContainerStatusCommandIsNotConstructed)
}

// ContainerID returns the target container identifier.
func (c OverrideContainerStatusCommand) ContainerID() kernel.UUID { return c.containerID }

// Status returns the override status, meaningful only when Clear is false.
func (c OverrideContainerStatusCommand) Status() container.Availability { return c.status }

// Clear reports whether the override is being removed.
func (c OverrideContainerStatusCommand) Clear() bool { return c.clear }

// Actor returns who requested the override.
func (c OverrideContainerStatusCommand) Actor() string { return c.actor }
