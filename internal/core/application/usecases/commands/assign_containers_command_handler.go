package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// AssignContainersCommandHandler handles the allocation of containers to
// order items. The whole batch is validated against derived container
// availability before any mutation, then applied and persisted in one
// transaction across every order and container the batch touches.
type AssignContainersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.TrackingPublisher
	logger     *slog.Logger
}

// NewAssignContainersCommandHandler creates a handler for container assignment.
func NewAssignContainersCommandHandler(
	uowFactory UoWFactory,
	publisher ports.TrackingPublisher,
	logger *slog.Logger,
) AssignContainersCommandHandler {
	return AssignContainersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "assign_containers"),
	}
}

// Handle processes the assignment batch. All referenced orders are loaded in
// one transaction, and every referenced container must derive to Available at
// the time of the call; the first one that does not rejects the whole batch
// before anything is mutated. A failure in any later order likewise discards
// the mutations already applied to earlier ones. On success each container
// gets one Assigned to Job ledger event per order it was assigned to, the
// orders accumulate the assigned quantities, and tracking notifications go
// out after the single commit.
func (h *AssignContainersCommandHandler) Handle(ctx context.Context, cmd AssignContainersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	params := cmd.Params()
	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregates := make([]*order.Order, len(params.Batches))
	for i, batch := range params.Batches {
		aggregate, err := uow.OrderRepository().Get(ctx, batch.OrderID)
		if err != nil {
			return err
		}
		aggregates[i] = aggregate
	}

	containers, err := uow.ContainerRepository().GetByNumbers(ctx, collectBatchNumbers(params.Batches))
	if err != nil {
		return err
	}
	byNumber := make(map[string]*container.Container, len(containers))
	for _, c := range containers {
		byNumber[c.Number()] = c
	}
	for i, batch := range params.Batches {
		for _, number := range collectNumbers(batch.Lines) {
			c := byNumber[number]
			if status := c.DeriveStatus(now); status != container.Available {
				return errs.NewValueIsInvalidErrorWithCause("containerNumbers", fmt.Errorf(
					"container %s is %s, not Available, for order %s",
					c.Number(), status, aggregates[i].BookingRef()))
			}
		}
	}

	for i, batch := range params.Batches {
		aggregate := aggregates[i]
		for _, line := range batch.Lines {
			if err = aggregate.AssignContainers(
				line.ReceiverID, line.ItemIndex, line.ContainerNumbers, line.Qty, params.Actor, now,
			); err != nil {
				return err
			}
		}

		note := fmt.Sprintf("assigned to order %s", aggregate.BookingRef())
		for _, number := range collectNumbers(batch.Lines) {
			c := byNumber[number]
			event, err := c.RecordEvent("", container.AssignedToJob, note, params.Actor, now)
			if err != nil {
				return err
			}
			if err = uow.ContainerRepository().AppendEvent(ctx, c.ID(), event); err != nil {
				return err
			}
		}

		if err = uow.OrderRepository().Update(ctx, aggregate, false); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		h.publishTracking(ctx, aggregate)
	}
	return nil
}

// publishTracking emits one notification per pending tracking event. Delivery
// failures are logged; the committed transaction is never affected.
func (h *AssignContainersCommandHandler) publishTracking(ctx context.Context, aggregate *order.Order) {
	publishOrderTracking(ctx, h.publisher, h.logger, aggregate)
}

// collectNumbers deduplicates the container numbers across all lines,
// preserving first-seen order.
func collectNumbers(lines []AssignmentLine) []string {
	seen := make(map[string]struct{})
	var numbers []string
	for _, line := range lines {
		for _, number := range line.ContainerNumbers {
			if _, ok := seen[number]; ok {
				continue
			}
			seen[number] = struct{}{}
			numbers = append(numbers, number)
		}
	}
	return numbers
}

// collectBatchNumbers deduplicates the container numbers across every batch,
// preserving first-seen order.
func collectBatchNumbers(batches []OrderAssignment) []string {
	seen := make(map[string]struct{})
	var numbers []string
	for _, batch := range batches {
		for _, number := range collectNumbers(batch.Lines) {
			if _, ok := seen[number]; ok {
				continue
			}
			seen[number] = struct{}{}
			numbers = append(numbers, number)
		}
	}
	return numbers
}

// publishOrderTracking emits the aggregate's pending tracking events through
// the publisher, logging failures without surfacing them.
func publishOrderTracking(
	ctx context.Context,
	publisher ports.TrackingPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	for _, tracking := range aggregate.PendingTracking() {
		event := ports.OrderChangedEvent{
			OrderID:        aggregate.ID().String(),
			BookingRef:     aggregate.BookingRef(),
			ReceiverID:     tracking.ReceiverID().String(),
			ReceiverStatus: tracking.Status().String(),
			OrderStatus:    aggregate.Status().String(),
			Note:           tracking.Note(),
			Actor:          tracking.Actor(),
			OccurredAt:     tracking.OccurredAt(),
		}
		if err := publisher.PublishOrderChanged(ctx, event); err != nil {
			logger.Warn("tracking publish failed",
				"booking_ref", aggregate.BookingRef(),
				"receiver_id", event.ReceiverID,
				"error", err)
		}
	}
}
