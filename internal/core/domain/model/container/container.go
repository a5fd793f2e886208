package container

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrContainerIsNotConstructed is returned when a Container instance was
	// not created through NewContainer or RestoreContainer.
	ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer constructor")

	// ErrDetailOwnerTypeMismatch is returned when attaching a purchase detail
	// to a hired container or a hire detail to an owned one.
	ErrDetailOwnerTypeMismatch = errors.New("detail record does not match container owner type")

	// ErrDetailAlreadyAttached is returned when a second purchase or hire
	// detail is attached; exactly one exists per container.
	ErrDetailAlreadyAttached = errors.New("container already has its detail record")
)

// Container is the aggregate root for physical container inventory.
//
// It maintains these invariants:
//   - The owner type, once set, is immutable.
//   - Exactly one of purchase detail or hire detail exists, selected by owner type.
//   - The status ledger is append-only; events are never updated or deleted.
//   - Current status is always derived, never stored as a writable field.
type Container struct {
	id            kernel.UUID
	number        string
	size          string
	containerType string
	ownerType     OwnerType

	// statusOverride is the administrative override consumed as the first
	// rule of status derivation. AvailabilityUnknown means no override.
	statusOverride Availability

	purchase *PurchaseDetail
	hire     *HireDetail
	events   []StatusEvent

	isConstructed bool
}

// NewContainer creates a container master record. The owner type selects
// which detail record must be attached before the container is persisted.
func NewContainer(id kernel.UUID, number, size, containerType string, ownerType OwnerType) (*Container, error) {
	c := &Container{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setNumber(number),
		c.setOwnerType(ownerType),
	); err != nil {
		return nil, err
	}

	c.size = size
	c.containerType = containerType
	return c, nil
}

// RestoreContainer reconstructs a container from persistence, including its
// ledger history, detail record, and any administrative override.
func RestoreContainer(
	id kernel.UUID,
	number, size, containerType string,
	ownerType OwnerType,
	statusOverride Availability,
	purchase *PurchaseDetail,
	hire *HireDetail,
	events []StatusEvent,
) (*Container, error) {
	c, err := NewContainer(id, number, size, containerType, ownerType)
	if err != nil {
		return nil, err
	}

	c.statusOverride = statusOverride
	c.purchase = purchase
	c.hire = hire
	c.events = events
	return c, nil
}

// Validate ensures the Container was created through a constructor.
func (c *Container) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContainerIsNotConstructed
	}
	return nil
}

// ID returns the container's unique identifier.
func (c *Container) ID() kernel.UUID { return c.id }

// Number returns the unique container number.
func (c *Container) Number() string { return c.number }

// Size returns the container size designation.
func (c *Container) Size() string { return c.size }

// ContainerType returns the container type designation.
func (c *Container) ContainerType() string { return c.containerType }

// OwnerType returns the immutable owner type.
func (c *Container) OwnerType() OwnerType { return c.ownerType }

// StatusOverride returns the administrative override,
// AvailabilityUnknown when none is set.
func (c *Container) StatusOverride() Availability { return c.statusOverride }

// Purchase returns the purchase detail, nil for hired containers.
func (c *Container) Purchase() *PurchaseDetail { return c.purchase }

// Hire returns the hire detail, nil for owned containers.
func (c *Container) Hire() *HireDetail { return c.hire }

// Events returns the ledger history in insertion order.
func (c *Container) Events() []StatusEvent { return c.events }

// AttachPurchaseDetail attaches the purchase record of an owned container.
func (c *Container) AttachPurchaseDetail(detail *PurchaseDetail) error {
	if c.ownerType != Owned {
		return ErrDetailOwnerTypeMismatch
	}
	if c.purchase != nil {
		return ErrDetailAlreadyAttached
	}
	c.purchase = detail
	return nil
}

// AttachHireDetail attaches the hire record of a hired-in container.
func (c *Container) AttachHireDetail(detail *HireDetail) error {
	if c.ownerType != HiredIn {
		return ErrDetailOwnerTypeMismatch
	}
	if c.hire != nil {
		return ErrDetailAlreadyAttached
	}
	c.hire = detail
	return nil
}

// RecordEvent appends one immutable event to the status ledger and returns
// it. The sequence number is issued here; callers persist the returned event
// through the repository's append operation.
func (c *Container) RecordEvent(
	location string,
	availability Availability,
	note, actor string,
	occurredAt time.Time,
) (StatusEvent, error) {
	event, err := NewStatusEvent(len(c.events)+1, location, availability, note, actor, occurredAt)
	if err != nil {
		return StatusEvent{}, err
	}

	c.events = append(c.events, event)
	return event, nil
}

// SetStatusOverride sets the administrative override consumed as the first
// derivation rule. The ledger is not touched.
func (c *Container) SetStatusOverride(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	c.statusOverride = availability
	return nil
}

// ClearStatusOverride removes the administrative override so derivation
// falls back to the hire and ledger rules.
func (c *Container) ClearStatusOverride() {
	c.statusOverride = AvailabilityUnknown
}

// DeriveStatus computes the container's current status. The precedence order
// is load-bearing and preserved exactly:
//
//  1. an explicit administrative override, if present;
//  2. hire ended before today and latest availability is Cleared -> Returned;
//  3. open-ended hire (start set, no end) -> Hired;
//  4. hire end date today or in the future -> Occupied;
//  5. latest availability within the in-transit vocabulary -> passed through verbatim;
//  6. otherwise -> Available.
//
// A container with zero ledger history is valid and derives to Available.
func (c *Container) DeriveStatus(now time.Time) Availability {
	today := kernel.DateFromTime(now)
	latest := c.latestAvailability()

	if c.statusOverride != AvailabilityUnknown {
		return c.statusOverride
	}

	if c.hire != nil {
		if end := c.hire.EndDate(); end != nil && end.Before(today) && latest == Cleared {
			return Returned
		}
		if c.hire.IsOpenEnded() {
			return Hired
		}
		if end := c.hire.EndDate(); end != nil && !end.Before(today) {
			return Occupied
		}
	}

	if latest.IsTransitVocabulary() {
		return latest
	}

	return Available
}

// latestAvailability returns the availability of the most recent event that
// carries one, skipping pure location pings.
func (c *Container) latestAvailability() Availability {
	for i := len(c.events) - 1; i >= 0; i-- {
		if a := c.events[i].Availability(); a != AvailabilityUnknown {
			return a
		}
	}
	return AvailabilityUnknown
}

func (c *Container) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Container) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("container number")
	}
	c.number = number
	return nil
}

func (c *Container) setOwnerType(ownerType OwnerType) error {
	if err := ownerType.Validate(); err != nil {
		return fmt.Errorf("owner type: %w", err)
	}
	c.ownerType = ownerType
	return nil
}
