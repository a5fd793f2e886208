package commands

import (
	"context"
	"log/slog"
)

// OverrideContainerStatusCommandHandler handles the administrative override:
// a master-level correction consumed as the first derivation rule. The ledger
// is never touched by an override.
type OverrideContainerStatusCommandHandler struct {
	uowFactory ContainerUoWFactory
	logger     *slog.Logger
}

// NewOverrideContainerStatusCommandHandler creates a handler for status overrides.
func NewOverrideContainerStatusCommandHandler(
	uowFactory ContainerUoWFactory,
	logger *slog.Logger,
) OverrideContainerStatusCommandHandler {
	return OverrideContainerStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "override_container_status"),
	}
}

// Handle processes the override command. Every override is logged with the
// requesting actor for the audit trail.
func (h *OverrideContainerStatusCommandHandler) Handle(ctx context.Context, cmd OverrideContainerStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ContainerRepository().Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	if cmd.Clear() {
		aggregate.ClearStatusOverride()
	} else if err = aggregate.SetStatusOverride(cmd.Status()); err != nil {
		return err
	}

	if err = uow.ContainerRepository().UpdateMaster(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("status override applied",
		"container_number", aggregate.Number(),
		"cleared", cmd.Clear(),
		"status", cmd.Status().String(),
		"actor", cmd.Actor())
	return nil
}
