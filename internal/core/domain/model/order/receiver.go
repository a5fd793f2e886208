package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrReceiverIsNotConstructed is returned when a Receiver instance was
	// not created through NewReceiver or RestoreReceiver.
	ErrReceiverIsNotConstructed = errors.New("Receiver must be created via NewReceiver constructor")

	// ErrOverAssignment is returned when a container assignment would push a
	// receiver's delivered quantity past its requested total.
	ErrOverAssignment = errors.New("assigned quantity exceeds receiver's requested total")
)

// DeliveryMode states whether a receiver accepts partial deliveries.
type DeliveryMode int

const (
	DeliveryModeUnknown DeliveryMode = iota
	FullDelivery
	PartialDelivery
)

func getDeliveryModeStrings() map[DeliveryMode]string {
	return map[DeliveryMode]string{
		DeliveryModeUnknown: "Unknown",
		FullDelivery:        "Full",
		PartialDelivery:     "Partial",
	}
}

// DeliveryModeFromString parses the wire form of the full_partial flag.
func DeliveryModeFromString(s string) (DeliveryMode, error) {
	for value, str := range getDeliveryModeStrings() {
		if str == s && value != DeliveryModeUnknown {
			return value, nil
		}
	}
	return DeliveryModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fullPartial", fmt.Errorf("%q is not a valid delivery mode", s))
}

// String returns the wire form of the delivery mode.
func (m DeliveryMode) String() string {
	if str, ok := getDeliveryModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the delivery mode is one of the closed vocabulary.
func (m DeliveryMode) Validate() error {
	if m != FullDelivery && m != PartialDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"fullPartial", fmt.Errorf("%d is not a valid delivery mode", m))
	}
	return nil
}

// Receiver is a shipping party within an order: a delivery destination
// owning its items, its container assignments, and its own workflow status.
//
// A receiver's total quantity and weight are computed from its items on
// every read; they are never stored independently of their sources. A
// receiver with zero items is permitted to support partial submissions.
type Receiver struct {
	id           kernel.UUID
	name         string
	contact      string
	address      string
	email        string
	eta          *kernel.Date
	etd          *kernel.Date
	deliveryMode DeliveryMode
	qtyDelivered int
	status       ReceiverStatus
	containers   []string
	items        []*Item

	isConstructed bool
}

// NewReceiver creates a shipping party in Created status with no items.
func NewReceiver(
	id kernel.UUID,
	name, contact, address, email string,
	eta, etd *kernel.Date,
	deliveryMode DeliveryMode,
) (*Receiver, error) {
	r := &Receiver{
		status:        ReceiverCreated,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setDeliveryMode(deliveryMode),
		validatePhone("contact", contact),
		validateEmail("email", email),
		validateOptionalDate("eta", eta),
		validateOptionalDate("etd", etd),
	); err != nil {
		return nil, err
	}

	r.contact = contact
	r.address = address
	r.email = email
	r.eta = eta
	r.etd = etd
	return r, nil
}

// RestoreReceiver reconstructs a persisted shipping party with its items,
// container assignments, and workflow status.
func RestoreReceiver(
	id kernel.UUID,
	name, contact, address, email string,
	eta, etd *kernel.Date,
	deliveryMode DeliveryMode,
	qtyDelivered int,
	status ReceiverStatus,
	containers []string,
	items []*Item,
) (*Receiver, error) {
	r, err := NewReceiver(id, name, contact, address, email, eta, etd, deliveryMode)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if qtyDelivered < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"qtyDelivered", fmt.Errorf("%d is negative", qtyDelivered))
	}

	r.qtyDelivered = qtyDelivered
	r.status = status
	r.containers = containers
	r.items = items
	return r, nil
}

// Validate ensures the Receiver was created through a constructor.
func (r *Receiver) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReceiverIsNotConstructed
	}
	return nil
}

// ID returns the receiver's unique identifier.
func (r *Receiver) ID() kernel.UUID { return r.id }

// Name returns the receiver's name.
func (r *Receiver) Name() string { return r.name }

// Contact returns the receiver's contact number.
func (r *Receiver) Contact() string { return r.contact }

// Address returns the delivery address.
func (r *Receiver) Address() string { return r.address }

// Email returns the receiver's email address.
func (r *Receiver) Email() string { return r.email }

// ETA returns the estimated arrival date, nil when not set.
func (r *Receiver) ETA() *kernel.Date { return r.eta }

// ETD returns the estimated departure date, nil when not set.
func (r *Receiver) ETD() *kernel.Date { return r.etd }

// DeliveryMode returns the full/partial delivery mode.
func (r *Receiver) DeliveryMode() DeliveryMode { return r.deliveryMode }

// QtyDelivered returns the cumulative quantity covered by assignments.
func (r *Receiver) QtyDelivered() int { return r.qtyDelivered }

// Status returns the receiver's workflow status.
func (r *Receiver) Status() ReceiverStatus { return r.status }

// Containers returns the deduplicated container numbers assigned to the receiver.
func (r *Receiver) Containers() []string { return r.containers }

// Items returns the receiver's cargo lines.
func (r *Receiver) Items() []*Item { return r.items }

// AddItem appends a cargo line to the receiver.
func (r *Receiver) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.items = append(r.items, item)
	return nil
}

// TotalQty returns the sum of the items' requested quantities.
// Recomputed on every read; never stored.
func (r *Receiver) TotalQty() int {
	total := 0
	for _, item := range r.items {
		total += item.TotalNumber()
	}
	return total
}

// TotalWeight returns the sum of the items' weights.
// Recomputed on every read; never stored.
func (r *Receiver) TotalWeight() float64 {
	total := 0.0
	for _, item := range r.items {
		total += item.Weight()
	}
	return total
}

// AssignContainers unions the given container numbers into the receiver's
// owned list (re-assigning an already-owned container is a no-op for that
// slot), accumulates the delivered quantity, and books the quantity against
// the addressed item. An assignment that would exceed the receiver's
// requested total is rejected with ErrOverAssignment.
func (r *Receiver) AssignContainers(itemIndex int, containerNumbers []string, qty int) error {
	if itemIndex < 0 || itemIndex >= len(r.items) {
		return errs.NewValueIsOutOfRangeError("itemIndex", itemIndex, 0, len(r.items)-1)
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"qty", fmt.Errorf("%d is not greater than 0", qty))
	}
	if r.qtyDelivered+qty > r.TotalQty() {
		return fmt.Errorf("%w: %d delivered + %d requested > %d total",
			ErrOverAssignment, r.qtyDelivered, qty, r.TotalQty())
	}

	for _, number := range containerNumbers {
		if !r.ownsContainer(number) {
			r.containers = append(r.containers, number)
		}
	}

	r.items[itemIndex].addAssignedQty(qty)
	r.qtyDelivered += qty
	return nil
}

// SetStatus moves the receiver to a new workflow status.
func (r *Receiver) SetStatus(status ReceiverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Receiver) ownsContainer(number string) bool {
	for _, owned := range r.containers {
		if owned == number {
			return true
		}
	}
	return false
}

func (r *Receiver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Receiver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Receiver) setDeliveryMode(mode DeliveryMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	r.deliveryMode = mode
	return nil
}

func validateOptionalDate(field string, d *kernel.Date) error {
	if d == nil {
		return nil
	}
	if err := d.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return nil
}
