package order

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrSenderAlreadyAttached is returned when a second sender is attached;
	// exactly one exists per order.
	ErrSenderAlreadyAttached = errors.New("order already has a sender")
)

// Route holds the four route points of an order. Origin and destination are
// required; the loading and delivery points are optional refinements.
type Route struct {
	Origin        string
	LoadingPoint  string
	Destination   string
	DeliveryPoint string
}

// Validate checks the required route points.
func (r Route) Validate() *errs.ValidationErrors {
	verrs := errs.NewValidationErrors()
	if r.Origin == "" {
		verrs.AddRequired("origin")
	}
	if r.Destination == "" {
		verrs.AddRequired("destination")
	}
	return verrs
}

// Order is the aggregate root for a shipment booking: one Sender (the
// owner), one-or-more Receivers each owning its items, a TransportDetail
// record, and the append-only tracking stream.
//
// Mutations append tracking events to an in-memory pending list; the
// repository persists them in the same transaction as the mutation and the
// caller publishes them after commit.
type Order struct {
	id               kernel.UUID
	bookingRef       string
	status           Status
	route            Route
	remarks          string
	attachments      []string
	totalAssignedQty int

	sender    *Sender
	receivers []*Receiver
	transport *TransportDetail

	pendingTracking []TrackingEvent

	isConstructed bool
}

// NewOrder creates a shipment booking in Created status with no parties yet.
// The booking reference must match the booking code format and is unique
// system-wide (enforced by the store).
func NewOrder(id kernel.UUID, bookingRef string, route Route, remarks string, attachments []string) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBookingRef(bookingRef),
		route.Validate().AsError(),
	); err != nil {
		return nil, err
	}

	o.route = route
	o.remarks = remarks
	o.attachments = attachments
	return o, nil
}

// RestoreOrder reconstructs a persisted order with its full party graph.
func RestoreOrder(
	id kernel.UUID,
	bookingRef string,
	status Status,
	route Route,
	remarks string,
	attachments []string,
	totalAssignedQty int,
	sender *Sender,
	receivers []*Receiver,
	transport *TransportDetail,
) (*Order, error) {
	o, err := NewOrder(id, bookingRef, route, remarks, attachments)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if totalAssignedQty < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalAssignedQty", fmt.Errorf("%d is negative", totalAssignedQty))
	}

	o.status = status
	o.totalAssignedQty = totalAssignedQty
	o.sender = sender
	o.receivers = receivers
	o.transport = transport
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// BookingRef returns the unique booking reference.
func (o *Order) BookingRef() string { return o.bookingRef }

// Status returns the derived overall status.
func (o *Order) Status() Status { return o.status }

// Route returns the order's route points.
func (o *Order) Route() Route { return o.route }

// Remarks returns the free-text remarks.
func (o *Order) Remarks() string { return o.remarks }

// Attachments returns the attachment reference list. The binary content
// lives with an external collaborator; only references are held here.
func (o *Order) Attachments() []string { return o.attachments }

// TotalAssignedQty returns the cumulative quantity assigned across receivers.
func (o *Order) TotalAssignedQty() int { return o.totalAssignedQty }

// Sender returns the order owner, nil until attached.
func (o *Order) Sender() *Sender { return o.sender }

// Receivers returns the order's shipping parties.
func (o *Order) Receivers() []*Receiver { return o.receivers }

// Transport returns the transport record, nil until attached.
func (o *Order) Transport() *TransportDetail { return o.transport }

// PendingTracking returns tracking events recorded by mutations on this
// instance since it was created or loaded.
func (o *Order) PendingTracking() []TrackingEvent { return o.pendingTracking }

// AttachSender attaches the single order owner.
func (o *Order) AttachSender(sender *Sender) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	if o.sender != nil {
		return ErrSenderAlreadyAttached
	}
	o.sender = sender
	return nil
}

// SetTransport attaches or replaces the transport record.
func (o *Order) SetTransport(transport *TransportDetail) error {
	if err := transport.Validate(); err != nil {
		return err
	}
	o.transport = transport
	return nil
}

// ReplaceParties swaps the entire receiver set (replace semantics: existing
// receivers, items, and tracking rows for the order are deleted and
// recreated by the store). One tracking event per new receiver is recorded,
// and the overall status is recomputed from the new set.
func (o *Order) ReplaceParties(receivers []*Receiver, actor string, at time.Time) error {
	for _, r := range receivers {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	o.receivers = receivers
	o.pendingTracking = nil
	for _, r := range receivers {
		event, err := NewTrackingEvent(o.id, r.ID(), r.Status(), "party recorded", actor, at)
		if err != nil {
			return err
		}
		o.pendingTracking = append(o.pendingTracking, event)
	}

	o.recomputeStatus()
	return nil
}

// AssignContainers books containers and a delivered quantity against one
// receiver's item: the receiver unions the container numbers and accumulates
// the quantity, the order accumulates its total, and a tracking event is
// recorded. Derived-availability checks on the containers happen before this
// is called; quantity conservation is enforced by the receiver.
func (o *Order) AssignContainers(
	receiverID kernel.UUID,
	itemIndex int,
	containerNumbers []string,
	qty int,
	actor string,
	at time.Time,
) error {
	receiver := o.findReceiver(receiverID)
	if receiver == nil {
		return errs.NewObjectNotFoundError("receiver", receiverID.String())
	}

	if err := receiver.AssignContainers(itemIndex, containerNumbers, qty); err != nil {
		return err
	}
	o.totalAssignedQty += qty

	note := fmt.Sprintf("assigned %d unit(s) across %d container(s)", qty, len(containerNumbers))
	event, err := NewTrackingEvent(o.id, receiverID, receiver.Status(), note, actor, at)
	if err != nil {
		return err
	}
	o.pendingTracking = append(o.pendingTracking, event)
	return nil
}

// SetReceiverStatus moves one receiver to a new workflow status, records the
// tracking event, and recomputes the order's overall status.
func (o *Order) SetReceiverStatus(
	receiverID kernel.UUID,
	status ReceiverStatus,
	note, actor string,
	at time.Time,
) error {
	receiver := o.findReceiver(receiverID)
	if receiver == nil {
		return errs.NewObjectNotFoundError("receiver", receiverID.String())
	}

	if err := receiver.SetStatus(status); err != nil {
		return err
	}

	event, err := NewTrackingEvent(o.id, receiverID, status, note, actor, at)
	if err != nil {
		return err
	}
	o.pendingTracking = append(o.pendingTracking, event)

	o.recomputeStatus()
	return nil
}

// OrderPatch is the fixed, auditable set of order fields that an update may
// patch in place. Nil fields are left untouched; the booking reference is
// immutable.
type OrderPatch struct {
	Origin        *string
	LoadingPoint  *string
	Destination   *string
	DeliveryPoint *string
	Remarks       *string
	Attachments   *[]string
}

// ApplyPatch patches the explicitly provided fields and re-validates the route.
func (o *Order) ApplyPatch(patch OrderPatch) error {
	route := o.route
	if patch.Origin != nil {
		route.Origin = *patch.Origin
	}
	if patch.LoadingPoint != nil {
		route.LoadingPoint = *patch.LoadingPoint
	}
	if patch.Destination != nil {
		route.Destination = *patch.Destination
	}
	if patch.DeliveryPoint != nil {
		route.DeliveryPoint = *patch.DeliveryPoint
	}
	if err := route.Validate().AsError(); err != nil {
		return err
	}
	o.route = route

	if patch.Remarks != nil {
		o.remarks = *patch.Remarks
	}
	if patch.Attachments != nil {
		o.attachments = *patch.Attachments
	}
	return nil
}

// recomputeStatus reduces receiver statuses into the overall status.
func (o *Order) recomputeStatus() {
	statuses := make([]ReceiverStatus, len(o.receivers))
	for i, r := range o.receivers {
		statuses[i] = r.Status()
	}
	o.status = AggregateStatus(statuses)
}

func (o *Order) findReceiver(id kernel.UUID) *Receiver {
	for _, r := range o.receivers {
		if r.ID().IsEqual(id) {
			return r
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBookingRef(ref string) error {
	if err := validateBookingRef(ref); err != nil {
		return err
	}
	o.bookingRef = ref
	return nil
}
