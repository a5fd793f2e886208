package commands

import (
	"errors"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateContainerCommandIsNotConstructed = errors.New(
	"CreateContainerCommand must be created via NewCreateContainerCommand constructor",
)

// PurchaseInput carries the acquisition record of an owned container.
type PurchaseInput struct {
	Vendor       string
	Reference    string
	PurchaseDate string
	Price        float64
}

// HireInput carries the hire terms of a hired-in container. An empty end
// date means the hire is open-ended.
type HireInput struct {
	Hirer     string
	Reference string
	StartDate string
	EndDate   string
	DailyRate float64
}

// CreateContainerParams registers a container master with the detail record
// selected by its owner type: exactly one of Purchase or Hire must be set.
type CreateContainerParams struct {
	ContainerID   kernel.UUID
	Number        string
	Size          string
	ContainerType string
	OwnerType     string
	Purchase      *PurchaseInput
	Hire          *HireInput
}

// CreateContainerCommand represents a validated request to register a
// container.
type CreateContainerCommand struct { //nolint:recvcheck //using for validation
	params CreateContainerParams

	guard guard.ConstructorGuard
}

// NewCreateContainerCommand validates the registration and creates the
// command. The owner type must match the provided detail record.
func NewCreateContainerCommand(params CreateContainerParams) (CreateContainerCommand, error) {
	verrs := errs.NewValidationErrors()

	if err := params.ContainerID.Validate(); err != nil {
		verrs.Add("containerId", err.Error())
	}
	if params.Number == "" {
		verrs.AddRequired("number")
	}

	ownerType, err := container.OwnerTypeFromString(params.OwnerType)
	if err != nil {
		verrs.Add("ownerType", err.Error())
	}

	switch ownerType {
	case container.Owned:
		if params.Purchase == nil {
			verrs.AddRequired("purchase")
		} else {
			validatePurchaseInput(verrs, *params.Purchase)
		}
		if params.Hire != nil {
			verrs.Add("hire", "not allowed for an owned container")
		}
	case container.HiredIn:
		if params.Hire == nil {
			verrs.AddRequired("hire")
		} else {
			validateHireInput(verrs, *params.Hire)
		}
		if params.Purchase != nil {
			verrs.Add("purchase", "not allowed for a hired container")
		}
	}

	if err := verrs.AsError(); err != nil {
		return CreateContainerCommand{}, err
	}

	return CreateContainerCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateContainerCommand) Validate() error {
	return c.guard.Validate(ErrCreateContainerCommandIsNotConstructed)
}

// Params returns the validated registration payload.
func (c CreateContainerCommand) Params() CreateContainerParams {
	return c.params
}

func validatePurchaseInput(verrs *errs.ValidationErrors, purchase PurchaseInput) {
	if purchase.Vendor == "" {
		verrs.AddRequired("purchase.vendor")
	}
	if _, err := kernel.ParseDate(purchase.PurchaseDate); err != nil {
		verrs.Add("purchase.purchaseDate", err.Error())
	}
	if purchase.Price < 0 {
		verrs.Add("purchase.price", "must not be negative")
	}
}

func validateHireInput(verrs *errs.ValidationErrors, hire HireInput) {
	if hire.Hirer == "" {
		verrs.AddRequired("hire.hirer")
	}
	if _, err := kernel.ParseDate(hire.StartDate); err != nil {
		verrs.Add("hire.startDate", err.Error())
	}
	if hire.EndDate != "" {
		if _, err := kernel.ParseDate(hire.EndDate); err != nil {
			verrs.Add("hire.endDate", err.Error())
		}
	}
	if hire.DailyRate < 0 {
		verrs.Add("hire.dailyRate", "must not be negative")
	}
}
