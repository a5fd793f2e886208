package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdvanceConsignmentCommandIsNotConstructed = errors.New(
	"AdvanceConsignmentCommand must be created via NewAdvanceConsignmentCommand constructor",
)

var ErrCancelConsignmentCommandIsNotConstructed = errors.New(
	"CancelConsignmentCommand must be created via NewCancelConsignmentCommand constructor",
)

// AdvanceConsignmentCommand represents a validated request to move a
// consignment one step along the linear workflow.
type AdvanceConsignmentCommand struct { //nolint:recvcheck //using for validation
	consignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceConsignmentCommand validates the params and creates the command.
func NewAdvanceConsignmentCommand(consignmentID kernel.UUID) (AdvanceConsignmentCommand, error) {
	if err := consignmentID.Validate(); err != nil {
		verrs := errs.NewValidationErrors()
		verrs.Add("consignmentId", err.Error())
		return AdvanceConsignmentCommand{}, verrs.AsError()
	}
	return AdvanceConsignmentCommand{
		consignmentID: consignmentID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceConsignmentCommandIsNotConstructed)
}

// ConsignmentID returns the target consignment identifier.
func (c AdvanceConsignmentCommand) ConsignmentID() kernel.UUID { return c.consignmentID }

// CancelConsignmentCommand represents a validated request to cancel a
// consignment.
type CancelConsignmentCommand struct { //nolint:recvcheck //using for validation
	consignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelConsignmentCommand validates the params and creates the command.
func NewCancelConsignmentCommand(consignmentID kernel.UUID) (CancelConsignmentCommand, error) {
	if err := consignmentID.Validate(); err != nil {
		verrs := errs.NewValidationErrors()
		verrs.Add("consignmentId", err.Error())
		return CancelConsignmentCommand{}, verrs.AsError()
	}
	return CancelConsignmentCommand{
		consignmentID: consignmentID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelConsignmentCommandIsNotConstructed)
}

// ConsignmentID returns the target consignment identifier.
func (c CancelConsignmentCommand) ConsignmentID() kernel.UUID { return c.consignmentID }

// CreateConsignmentCommandHandler handles consignment registration.
type CreateConsignmentCommandHandler struct {
	uowFactory ConsignmentUoWFactory
}

// NewCreateConsignmentCommandHandler creates a handler for consignment registration.
func NewCreateConsignmentCommandHandler(uowFactory ConsignmentUoWFactory) CreateConsignmentCommandHandler {
	return CreateConsignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the consignment registration command.
func (h *CreateConsignmentCommandHandler) Handle(ctx context.Context, cmd CreateConsignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	params := cmd.Params()

	aggregate, err := consignment.NewConsignment(params.ConsignmentID, params.Fields)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ConsignmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AdvanceConsignmentCommandHandler handles the single forward transition of
// the linear workflow. Terminal consignments fail with the workflow's
// no-next-status error.
type AdvanceConsignmentCommandHandler struct {
	uowFactory ConsignmentUoWFactory
}

// NewAdvanceConsignmentCommandHandler creates a handler for workflow advancement.
func NewAdvanceConsignmentCommandHandler(uowFactory ConsignmentUoWFactory) AdvanceConsignmentCommandHandler {
	return AdvanceConsignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the advancement command and returns the new status.
func (h *AdvanceConsignmentCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceConsignmentCommand,
) (consignment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return consignment.StatusUnknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return consignment.StatusUnknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ConsignmentRepository().Get(ctx, cmd.ConsignmentID())
	if err != nil {
		return consignment.StatusUnknown, err
	}

	next, err := aggregate.Advance()
	if err != nil {
		return consignment.StatusUnknown, err
	}

	if err = uow.ConsignmentRepository().Update(ctx, aggregate); err != nil {
		return consignment.StatusUnknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return consignment.StatusUnknown, err
	}
	return next, nil
}

// CancelConsignmentCommandHandler handles cancellation, the only path into
// the Cancelled status.
type CancelConsignmentCommandHandler struct {
	uowFactory ConsignmentUoWFactory
}

// NewCancelConsignmentCommandHandler creates a handler for consignment cancellation.
func NewCancelConsignmentCommandHandler(uowFactory ConsignmentUoWFactory) CancelConsignmentCommandHandler {
	return CancelConsignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation command.
func (h *CancelConsignmentCommandHandler) Handle(ctx context.Context, cmd CancelConsignmentCommand) error {
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

	aggregate, err := uow.ConsignmentRepository().Get(ctx, cmd.ConsignmentID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = uow.ConsignmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
