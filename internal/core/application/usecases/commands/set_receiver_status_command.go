package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSetReceiverStatusCommandIsNotConstructed = errors.New(
	"SetReceiverStatusCommand must be created via NewSetReceiverStatusCommand constructor",
)

// SetReceiverStatusParams moves one shipping party to a new workflow status.
type SetReceiverStatusParams struct {
	OrderID    kernel.UUID
	ReceiverID kernel.UUID
	Status     string
	Note       string
	Actor      string
}

// SetReceiverStatusCommand represents a validated request to change a
// receiver's workflow status.
type SetReceiverStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	receiverID kernel.UUID
	status     order.ReceiverStatus
	note       string
	actor      string

	guard guard.ConstructorGuard
}

// NewSetReceiverStatusCommand validates the params and creates the command.
// The status must belong to the receiver workflow vocabulary.
func NewSetReceiverStatusCommand(params SetReceiverStatusParams) (SetReceiverStatusCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.OrderID.Validate(); err != nil {
		verrs.Add("orderId", err.Error())
	}
	if err := params.ReceiverID.Validate(); err != nil {
		verrs.Add("receiverId", err.Error())
	}
	if params.Actor == "" {
		verrs.AddRequired("actor")
	}
	status, err := order.ReceiverStatusFromString(params.Status)
	if err != nil {
		verrs.Add("status", err.Error())
	}

	if err := verrs.AsError(); err != nil {
		return SetReceiverStatusCommand{}, err
	}

	return SetReceiverStatusCommand{
		orderID:    params.OrderID,
		receiverID: params.ReceiverID,
		status:     status,
		note:       params.Note,
		actor:      params.Actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetReceiverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetReceiverStatusCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c SetReceiverStatusCommand) OrderID() kernel.UUID { return c.orderID }

// ReceiverID returns the target receiver identifier.
func (c SetReceiverStatusCommand) ReceiverID() kernel.UUID { return c.receiverID }

// Status returns the requested workflow status.
func (c SetReceiverStatusCommand) Status() order.ReceiverStatus { return c.status }

// Note returns the optional free-text note.
func (c SetReceiverStatusCommand) Note() string { return c.note }

// Actor returns who requested the change.
func (c SetReceiverStatusCommand) Actor() string { return c.actor }
