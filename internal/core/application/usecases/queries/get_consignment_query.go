package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetConsignmentQueryIsNotConstructed = errors.New(
	"GetConsignmentQuery must be created via NewGetConsignmentQuery constructor",
)

// GetConsignmentQuery retrieves one consignment by its identifier.
type GetConsignmentQuery struct {
	consignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetConsignmentQuery creates a query for one consignment.
func NewGetConsignmentQuery(consignmentID kernel.UUID) (GetConsignmentQuery, error) {
	if err := consignmentID.Validate(); err != nil {
		return GetConsignmentQuery{}, err
	}
	return GetConsignmentQuery{
		consignmentID: consignmentID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConsignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetConsignmentQueryIsNotConstructed)
}

// ConsignmentID returns the target consignment identifier.
func (q GetConsignmentQuery) ConsignmentID() kernel.UUID { return q.consignmentID }

// GetConsignmentQueryResponse is the read model of one consignment.
type GetConsignmentQueryResponse struct {
	ID                string
	ConsignmentNumber string
	EformRef          string
	Value             float64
	GrossWeight       float64
	NetWeight         float64
	Vessel            string
	VoyageNo          string
	SealNo            string
	Containers        []string
	Orders            []string
	Status            string
}
