package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler retrieves an order's tracking stream from the
// database.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking stream queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the query. Entries come back oldest first.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) ([]GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderTrackingQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			receiver_id,
			status,
			note,
			actor,
			occurred_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderTrackingQueryResponse
		err = rows.Scan(
			&resp.ReceiverID,
			&resp.Status,
			&resp.Note,
			&resp.Actor,
			&resp.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
