package commands

import (
	"context"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
)

// CreateContainerCommandHandler handles container registration: the master
// record plus the purchase or hire detail selected by the owner type.
type CreateContainerCommandHandler struct {
	uowFactory ContainerUoWFactory
}

// NewCreateContainerCommandHandler creates a handler for container registration.
func NewCreateContainerCommandHandler(uowFactory ContainerUoWFactory) CreateContainerCommandHandler {
	return CreateContainerCommandHandler{uowFactory: uowFactory}
}

// Handle processes the container registration command. A duplicate container
// number surfaces as a conflict error from the store.
func (h *CreateContainerCommandHandler) Handle(ctx context.Context, cmd CreateContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := assembleContainer(cmd.Params())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ContainerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// assembleContainer builds the aggregate with its owner-type detail attached.
func assembleContainer(params CreateContainerParams) (*container.Container, error) {
	ownerType, err := container.OwnerTypeFromString(params.OwnerType)
	if err != nil {
		return nil, err
	}

	aggregate, err := container.NewContainer(
		params.ContainerID, params.Number, params.Size, params.ContainerType, ownerType)
	if err != nil {
		return nil, err
	}

	switch ownerType {
	case container.Owned:
		purchaseDate, err := kernel.ParseDate(params.Purchase.PurchaseDate)
		if err != nil {
			return nil, err
		}
		detail, err := container.NewPurchaseDetail(
			params.Purchase.Vendor, params.Purchase.Reference, purchaseDate, params.Purchase.Price)
		if err != nil {
			return nil, err
		}
		if err = aggregate.AttachPurchaseDetail(detail); err != nil {
			return nil, err
		}
	case container.HiredIn:
		startDate, err := kernel.ParseDate(params.Hire.StartDate)
		if err != nil {
			return nil, err
		}
		endDate, err := optionalDate(params.Hire.EndDate)
		if err != nil {
			return nil, err
		}
		detail, err := container.NewHireDetail(
			params.Hire.Hirer, params.Hire.Reference, startDate, endDate, params.Hire.DailyRate)
		if err != nil {
			return nil, err
		}
		if err = aggregate.AttachHireDetail(detail); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}
