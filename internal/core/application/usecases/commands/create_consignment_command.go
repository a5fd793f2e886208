package commands

import (
	"errors"

	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateConsignmentCommandIsNotConstructed = errors.New(
	"CreateConsignmentCommand must be created via NewCreateConsignmentCommand constructor",
)

// CreateConsignmentParams registers a consignment in Draft status.
type CreateConsignmentParams struct {
	ConsignmentID kernel.UUID
	Fields        consignment.Fields
}

// CreateConsignmentCommand represents a validated request to create a
// consignment.
type CreateConsignmentCommand struct { //nolint:recvcheck //using for validation
	params CreateConsignmentParams

	guard guard.ConstructorGuard
}

// NewCreateConsignmentCommand validates the field set and creates the
// command. Every invalid field is reported, not just the first.
func NewCreateConsignmentCommand(params CreateConsignmentParams) (CreateConsignmentCommand, error) {
	verrs := consignment.ValidateFields(params.Fields)
	if err := params.ConsignmentID.Validate(); err != nil {
		verrs.Add("consignmentId", err.Error())
	}
	if err := verrs.AsError(); err != nil {
		return CreateConsignmentCommand{}, err
	}

	return CreateConsignmentCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsignmentCommandIsNotConstructed)
}

// Params returns the validated registration payload.
func (c CreateConsignmentCommand) Params() CreateConsignmentParams {
	return c.params
}
