package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/ports"
)

// SetReceiverStatusCommandHandler handles receiver workflow transitions: the
// receiver moves to the requested status, the tracking stream records the
// transition, and the order's overall status is recomputed from the full
// receiver set. After commit the change is published and mirrored to the CRM;
// both are best-effort and never roll the transition back.
type SetReceiverStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.TrackingPublisher
	crm        ports.CRMSync
	logger     *slog.Logger
}

// NewSetReceiverStatusCommandHandler creates a handler for receiver status changes.
func NewSetReceiverStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.TrackingPublisher,
	crm ports.CRMSync,
	logger *slog.Logger,
) SetReceiverStatusCommandHandler {
	return SetReceiverStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		crm:        crm,
		logger:     logger.With("component", "set_receiver_status"),
	}
}

// Handle processes the receiver status change command.
func (h *SetReceiverStatusCommandHandler) Handle(ctx context.Context, cmd SetReceiverStatusCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.SetReceiverStatus(
		cmd.ReceiverID(), cmd.Status(), cmd.Note(), cmd.Actor(), time.Now(),
	); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, false); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderTracking(ctx, h.publisher, h.logger, aggregate)

	if err = h.crm.PushOrderStatus(ctx, aggregate.BookingRef(), aggregate.Status().String()); err != nil {
		h.logger.Warn("crm sync failed",
			"booking_ref", aggregate.BookingRef(),
			"status", aggregate.Status().String(),
			"error", err)
	}
	return nil
}
