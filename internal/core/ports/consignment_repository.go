package ports

import (
	"context"

	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"
)

// ConsignmentRepository defines the persistence contract for consignments.
type ConsignmentRepository interface {
	// Add persists a new consignment.
	// A duplicate consignment number surfaces as a conflict error.
	Add(ctx context.Context, aggregate *consignment.Consignment) error

	// Update persists changes to an existing consignment.
	Update(ctx context.Context, aggregate *consignment.Consignment) error

	// Get retrieves a consignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error)
}
