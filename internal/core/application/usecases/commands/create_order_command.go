package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// SenderInput carries the raw order-owner fields of a submission.
type SenderInput struct {
	Name    string
	Contact string
	Address string
	Email   string
}

// TransportInput carries the raw transport fields of a submission. The
// conditional requirements per mode and per route are checked by the domain
// once the order's route is known.
type TransportInput struct {
	Mode            string
	DropOffLocation string
	DropOffDate     string
	VehicleNo       string
	DriverName      string
	DriverContact   string
	VendorName      string
	VendorContact   string
	HubPassRef      string
}

// CreateOrderParams is the flat, loosely structured payload of an order
// submission before normalization.
type CreateOrderParams struct {
	OrderID     kernel.UUID
	BookingRef  string
	SenderType  string
	Sender      SenderInput
	Route       order.Route
	Remarks     string
	Attachments []string
	Parties     []services.RawParty
	Items       []services.RawItem
	Transport   TransportInput
	Actor       string
}

// CreateOrderCommand represents a validated request to create a shipment
// order. Field-level validation runs at construction so a request with
// several invalid fields reports all of them and no write is ever attempted
// for an invalid submission.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params CreateOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the submission and creates the command.
// Returns the collected field-level error list when any check fails.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.OrderID.Validate(); err != nil {
		verrs.Add("orderId", err.Error())
	}
	if params.BookingRef == "" {
		verrs.AddRequired("bookingRef")
	}
	if params.Actor == "" {
		verrs.AddRequired("actor")
	}
	if _, err := order.OwnerRoleFromString(params.SenderType); err != nil {
		verrs.Add("senderType", err.Error())
	}
	if params.Sender.Name == "" {
		verrs.AddRequired("sender.name")
	}
	verrs.Merge(params.Route.Validate())
	if len(params.Parties) == 0 {
		verrs.AddRequired("parties")
	}
	validatePartyDates(verrs, params.Parties)
	validateItems(verrs, params.Items)
	validateTransportInput(verrs, params.Transport)

	if err := verrs.AsError(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Params returns the validated submission payload.
func (c CreateOrderCommand) Params() CreateOrderParams {
	return c.params
}

// validatePartyDates checks the YYYY-MM-DD shape of the optional party dates
// and the delivery mode vocabulary.
func validatePartyDates(verrs *errs.ValidationErrors, parties []services.RawParty) {
	for _, p := range parties {
		if p.ETA != "" {
			if _, err := kernel.ParseDate(p.ETA); err != nil {
				verrs.Add("parties.eta", err.Error())
			}
		}
		if p.ETD != "" {
			if _, err := kernel.ParseDate(p.ETD); err != nil {
				verrs.Add("parties.etd", err.Error())
			}
		}
		if p.FullPartial != "" {
			if _, err := order.DeliveryModeFromString(p.FullPartial); err != nil {
				verrs.Add("parties.fullPartial", err.Error())
			}
		}
	}
}

// validateItems checks each item's required fields and quantities.
func validateItems(verrs *errs.ValidationErrors, items []services.RawItem) {
	for _, item := range items {
		if item.Category == "" {
			verrs.AddRequired("items.category")
		}
		if item.TotalNumber <= 0 {
			verrs.Add("items.totalNumber", "must be greater than 0")
		}
		if item.Weight < 0 {
			verrs.Add("items.weight", "must not be negative")
		}
	}
}

// validateTransportInput checks the mode vocabulary and date shape; the
// per-mode conditional requirements run against the route in the domain.
func validateTransportInput(verrs *errs.ValidationErrors, transport TransportInput) {
	if transport.Mode == "" {
		verrs.AddRequired("transport.mode")
		return
	}
	if _, err := order.TransportModeFromString(transport.Mode); err != nil {
		verrs.Add("transport.mode", err.Error())
	}
	if transport.DropOffDate != "" {
		if _, err := kernel.ParseDate(transport.DropOffDate); err != nil {
			verrs.Add("transport.dropOffDate", err.Error())
		}
	}
}
