// Package queries contains read-only operations that retrieve system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain model and read projections straight from the store.
package queries

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still moving: everything except
// Completed and Cancelled.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve active orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one active order row.
type GetActiveOrdersQueryResponse struct {
	ID               string
	BookingRef       string
	Status           string
	Origin           string
	Destination      string
	TotalAssignedQty int
}
