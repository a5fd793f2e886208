package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full party graph: owner,
// shipping parties, cargo lines, and the transport record.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the target order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// OrderPartyView is one shipping party within an order view, with its items
// and the computed quantity and weight totals.
type OrderPartyView struct {
	ID           string
	Name         string
	Contact      string
	Address      string
	Email        string
	ETA          *time.Time
	ETD          *time.Time
	DeliveryMode string
	QtyDelivered int
	Status       string
	Containers   []string
	Items        []OrderItemView
	TotalQty     int
	TotalWeight  float64
}

// OrderItemView is one cargo line within an order view.
type OrderItemView struct {
	ID          string
	ItemRef     string
	Category    string
	Subcategory string
	ItemType    string
	TotalNumber int
	Weight      float64
	AssignedQty int
}

// OrderOwnerView is the order owner within an order view.
type OrderOwnerView struct {
	Role    string
	Name    string
	Contact string
	Address string
	Email   string
}

// OrderTransportView is the transport record within an order view.
type OrderTransportView struct {
	Mode            string
	DropOffLocation string
	DropOffDate     *time.Time
	VehicleNo       string
	DriverName      string
	VendorName      string
	HubPassRef      string
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID               string
	BookingRef       string
	Status           string
	Origin           string
	LoadingPoint     string
	Destination      string
	DeliveryPoint    string
	Remarks          string
	Attachments      []string
	TotalAssignedQty int
	Owner            *OrderOwnerView
	Parties          []OrderPartyView
	Transport        *OrderTransportView
}
