package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// normalizing the flat submission through the party grouper, assembling the
// aggregate, and persisting it atomically.
//
// Writes occur in fixed dependency order inside one transaction: order row,
// sender row, per party its receiver row then items, tracking rows,
// transport row. Any failure rolls the whole operation back.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	grouper    services.PartyGrouper
	policy     TransportPolicy
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	grouper services.PartyGrouper,
	policy TransportPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		grouper:    grouper,
		policy:     policy,
	}
}

// Handle processes the order creation command.
// Returns the collected validation errors without touching the store, a
// conflict error for a duplicate booking reference, or the first write error
// after rollback.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.assemble(cmd.Params())
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// assemble builds the full aggregate from the validated submission.
func (h *CreateOrderCommandHandler) assemble(params CreateOrderParams) (*order.Order, error) {
	ownerRole, err := order.OwnerRoleFromString(params.SenderType)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		params.OrderID, params.BookingRef, params.Route, params.Remarks, params.Attachments)
	if err != nil {
		return nil, err
	}

	sender, err := order.NewSender(
		kernel.NewUUID(), ownerRole,
		params.Sender.Name, params.Sender.Contact, params.Sender.Address, params.Sender.Email)
	if err != nil {
		return nil, err
	}
	if err = aggregate.AttachSender(sender); err != nil {
		return nil, err
	}

	grouped := h.grouper.Group(ownerRole, params.Parties, params.Items)
	receivers, err := assembleReceivers(grouped)
	if err != nil {
		return nil, err
	}
	if err = aggregate.ReplaceParties(receivers, params.Actor, time.Now()); err != nil {
		return nil, err
	}

	transport, err := assembleTransport(params.Transport)
	if err != nil {
		return nil, err
	}
	if err = transport.ValidateForRoute(params.Route, h.policy.HubLocations).AsError(); err != nil {
		return nil, err
	}
	if err = aggregate.SetTransport(transport); err != nil {
		return nil, err
	}

	return aggregate, nil
}
