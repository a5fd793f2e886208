package ports

import "context"

// CRMSync mirrors order status changes to the third-party CRM. The
// synchronization itself is an external collaborator; the engine only calls
// this interface after a successful commit and tolerates its failures
// (sync errors are logged, never rolled back into the transaction).
type CRMSync interface {
	// PushOrderStatus reports an order's current overall status to the CRM.
	PushOrderStatus(ctx context.Context, bookingRef, status string) error
}
