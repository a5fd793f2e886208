package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderParams carries an order update. The order and sender patches
// touch only the explicitly provided fields; the booking reference is
// immutable. When ReplaceParties is set the submitted party list replaces the
// existing one wholesale, including items and tracking rows.
type UpdateOrderParams struct {
	OrderID        kernel.UUID
	Patch          order.OrderPatch
	SenderPatch    *order.SenderPatch
	ReplaceParties bool
	Parties        []services.RawParty
	Items          []services.RawItem
	Transport      *TransportInput
	Actor          string
}

// UpdateOrderCommand represents a validated request to update an order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	params UpdateOrderParams

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the submission and creates the command.
func NewUpdateOrderCommand(params UpdateOrderParams) (UpdateOrderCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.OrderID.Validate(); err != nil {
		verrs.Add("orderId", err.Error())
	}
	if params.Actor == "" {
		verrs.AddRequired("actor")
	}
	if params.ReplaceParties {
		if len(params.Parties) == 0 {
			verrs.AddRequired("parties")
		}
		validatePartyDates(verrs, params.Parties)
		validateItems(verrs, params.Items)
	}
	if params.Transport != nil {
		validateTransportInput(verrs, *params.Transport)
	}

	if err := verrs.AsError(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// Params returns the validated update payload.
func (c UpdateOrderCommand) Params() UpdateOrderParams {
	return c.params
}
