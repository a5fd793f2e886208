package ports

import (
	"context"
	"time"
)

// OrderChangedEvent is the notification payload emitted after a receiver
// status change or a container assignment has been committed. The engine
// only decides that and what to notify; delivery is an external collaborator
// behind TrackingPublisher.
type OrderChangedEvent struct {
	OrderID        string    `json:"order_id"`
	BookingRef     string    `json:"booking_ref"`
	ReceiverID     string    `json:"receiver_id"`
	ReceiverStatus string    `json:"receiver_status"`
	OrderStatus    string    `json:"order_status"`
	Note           string    `json:"note,omitempty"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ContainerReturnDueEvent is the notification payload emitted by the hire
// expiry sweep for a hired container whose hire period has ended.
type ContainerReturnDueEvent struct {
	ContainerNumber string    `json:"container_number"`
	Hirer           string    `json:"hirer"`
	HireEndDate     string    `json:"hire_end_date"`
	DerivedStatus   string    `json:"derived_status"`
	DetectedAt      time.Time `json:"detected_at"`
}

// TrackingPublisher publishes notification decisions to the external
// delivery collaborator. Implementations must be safe for concurrent use.
type TrackingPublisher interface {
	// PublishOrderChanged emits one order tracking notification.
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error

	// PublishContainerReturnDue emits one hire-expiry notification.
	PublishContainerReturnDue(ctx context.Context, event ContainerReturnDueEvent) error
}
