package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of cargo belonging to exactly one receiver. Its ItemRef
// carries the typed party/item sequence that linked the flat submission to
// its owning party.
type Item struct {
	id              kernel.UUID
	ref             kernel.ItemRef
	category        string
	subcategory     string
	itemType        string
	pickupLocation  string
	deliveryAddress string
	totalNumber     int
	weight          float64
	assignedQty     int

	isConstructed bool
}

// NewItem creates a cargo line. Quantity must be positive, weight
// non-negative, and the category is required.
func NewItem(
	id kernel.UUID,
	ref kernel.ItemRef,
	category, subcategory, itemType string,
	pickupLocation, deliveryAddress string,
	totalNumber int,
	weight float64,
) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setRef(ref),
		item.setCategory(category),
		item.setTotalNumber(totalNumber),
		item.setWeight(weight),
	); err != nil {
		return nil, err
	}

	item.subcategory = subcategory
	item.itemType = itemType
	item.pickupLocation = pickupLocation
	item.deliveryAddress = deliveryAddress
	return item, nil
}

// RestoreItem reconstructs a persisted cargo line including its assigned quantity.
func RestoreItem(
	id kernel.UUID,
	ref kernel.ItemRef,
	category, subcategory, itemType string,
	pickupLocation, deliveryAddress string,
	totalNumber int,
	weight float64,
	assignedQty int,
) (*Item, error) {
	item, err := NewItem(id, ref, category, subcategory, itemType, pickupLocation, deliveryAddress, totalNumber, weight)
	if err != nil {
		return nil, err
	}
	if assignedQty < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"assignedQty", fmt.Errorf("%d is negative", assignedQty))
	}
	item.assignedQty = assignedQty
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// Ref returns the typed party/item reference.
func (i *Item) Ref() kernel.ItemRef { return i.ref }

// Category returns the cargo category.
func (i *Item) Category() string { return i.category }

// Subcategory returns the cargo subcategory.
func (i *Item) Subcategory() string { return i.subcategory }

// ItemType returns the cargo type designation.
func (i *Item) ItemType() string { return i.itemType }

// PickupLocation returns where the cargo is collected.
func (i *Item) PickupLocation() string { return i.pickupLocation }

// DeliveryAddress returns where the cargo is delivered.
func (i *Item) DeliveryAddress() string { return i.deliveryAddress }

// TotalNumber returns the requested quantity.
func (i *Item) TotalNumber() int { return i.totalNumber }

// Weight returns the cargo weight.
func (i *Item) Weight() float64 { return i.weight }

// AssignedQty returns the quantity already covered by container assignments.
func (i *Item) AssignedQty() int { return i.assignedQty }

// addAssignedQty accumulates assigned quantity; allocation-level bounds are
// enforced by the owning receiver.
func (i *Item) addAssignedQty(qty int) {
	i.assignedQty += qty
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setRef(ref kernel.ItemRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	i.ref = ref
	return nil
}

func (i *Item) setCategory(category string) error {
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	i.category = category
	return nil
}

func (i *Item) setTotalNumber(totalNumber int) error {
	if totalNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalNumber", fmt.Errorf("%d is not greater than 0", totalNumber))
	}
	i.totalNumber = totalNumber
	return nil
}

func (i *Item) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight", fmt.Errorf("%f is negative", weight))
	}
	i.weight = weight
	return nil
}
