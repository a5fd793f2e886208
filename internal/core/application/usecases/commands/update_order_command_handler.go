package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// UpdateOrderCommandHandler handles order updates: field patching against the
// fixed auditable field set, and optional wholesale party replacement.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	grouper    services.PartyGrouper
	policy     TransportPolicy
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	grouper services.PartyGrouper,
	policy TransportPolicy,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		grouper:    grouper,
		policy:     policy,
	}
}

// Handle processes the order update command. The patch and the optional party
// replacement are applied to the loaded aggregate and persisted in one
// transaction; on party replacement the store deletes and recreates the
// receiver graph.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	params := cmd.Params()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, params.OrderID)
	if err != nil {
		return err
	}

	if err = h.apply(aggregate, params); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, params.ReplaceParties); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateOrderCommandHandler) apply(aggregate *order.Order, params UpdateOrderParams) error {
	if err := aggregate.ApplyPatch(params.Patch); err != nil {
		return err
	}

	if params.SenderPatch != nil {
		if err := aggregate.Sender().ApplyPatch(*params.SenderPatch); err != nil {
			return err
		}
	}

	if params.ReplaceParties {
		grouped := h.grouper.Group(aggregate.Sender().Role(), params.Parties, params.Items)
		receivers, err := assembleReceivers(grouped)
		if err != nil {
			return err
		}
		if err = aggregate.ReplaceParties(receivers, params.Actor, time.Now()); err != nil {
			return err
		}
	}

	if params.Transport != nil {
		transport, err := assembleTransport(*params.Transport)
		if err != nil {
			return err
		}
		if err = transport.ValidateForRoute(aggregate.Route(), h.policy.HubLocations).AsError(); err != nil {
			return err
		}
		if err = aggregate.SetTransport(transport); err != nil {
			return err
		}
	}

	return nil
}
