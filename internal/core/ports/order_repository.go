package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All writes of an aggregate happen in the fixed dependency order: order row,
// sender row, per party its receiver row then items, tracking rows, transport
// row. The repository runs inside the unit of work's transaction.
type OrderRepository interface {
	// Add persists a new order aggregate with its full party graph.
	// A duplicate booking reference surfaces as a conflict error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. With replaceParties the
	// entire receiver/item/tracking set is deleted and recreated from the
	// aggregate (replace semantics); otherwise only the order, sender, and
	// transport rows are patched and new tracking rows are appended.
	Update(ctx context.Context, aggregate *order.Order, replaceParties bool) error

	// Get retrieves an order aggregate with its sender, receivers, items,
	// and transport record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByBookingRef retrieves an order by its unique booking reference.
	GetByBookingRef(ctx context.Context, bookingRef string) (*order.Order, error)
}
