package commands

import (
	"context"
)

// RecordContainerEventCommandHandler handles ledger appends. The ledger is
// append-only: the loaded aggregate issues the next sequence number and the
// repository's append operation is the only write path.
type RecordContainerEventCommandHandler struct {
	uowFactory ContainerUoWFactory
}

// NewRecordContainerEventCommandHandler creates a handler for ledger appends.
func NewRecordContainerEventCommandHandler(uowFactory ContainerUoWFactory) RecordContainerEventCommandHandler {
	return RecordContainerEventCommandHandler{uowFactory: uowFactory}
}

// Handle processes the ledger append command.
func (h *RecordContainerEventCommandHandler) Handle(ctx context.Context, cmd RecordContainerEventCommand) error {
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

	event, err := aggregate.RecordEvent(
		cmd.Location(), cmd.Availability(), cmd.Note(), cmd.Actor(), cmd.OccurredAt())
	if err != nil {
		return err
	}

	if err = uow.ContainerRepository().AppendEvent(ctx, aggregate.ID(), event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
