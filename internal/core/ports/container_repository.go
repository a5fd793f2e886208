package ports

import (
	"context"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
)

// ContainerRepository defines the persistence contract for container
// aggregates. The status ledger is append-only: AppendEvent is the only
// write path touching it, and no operation updates or deletes ledger rows.
type ContainerRepository interface {
	// Add persists a new container master with its purchase or hire detail.
	// A duplicate container number surfaces as a conflict error.
	Add(ctx context.Context, aggregate *container.Container) error

	// UpdateMaster persists master-level changes (the administrative status
	// override). The ledger and the detail records are not touched.
	UpdateMaster(ctx context.Context, aggregate *container.Container) error

	// AppendEvent appends one immutable ledger event for the container.
	AppendEvent(ctx context.Context, containerID kernel.UUID, event container.StatusEvent) error

	// Get retrieves a container with its detail record and full ledger.
	Get(ctx context.Context, id kernel.UUID) (*container.Container, error)

	// GetByNumber retrieves a container by its unique number.
	GetByNumber(ctx context.Context, number string) (*container.Container, error)

	// GetByNumbers retrieves the containers for all given numbers. A missing
	// number yields a not-found error naming it; no partial result.
	GetByNumbers(ctx context.Context, numbers []string) ([]*container.Container, error)
}
