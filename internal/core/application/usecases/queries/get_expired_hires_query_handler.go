package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetExpiredHiresQueryHandler retrieves hired-in containers whose hire
// period has ended.
type GetExpiredHiresQueryHandler struct {
	db *gorm.DB
}

// NewGetExpiredHiresQueryHandler creates a handler for hire expiry queries.
func NewGetExpiredHiresQueryHandler(db *gorm.DB) GetExpiredHiresQueryHandler {
	return GetExpiredHiresQueryHandler{db: db}
}

// Handle executes the query. Open-ended hires never expire; only hires with
// an end date strictly before the asOf day are returned.
func (h GetExpiredHiresQueryHandler) Handle(
	ctx context.Context,
	query GetExpiredHiresQuery,
) ([]GetExpiredHiresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	expired := make([]GetExpiredHiresQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.number,
			h.hirer,
			h.end_date
		FROM containers c
		JOIN hire_details h ON h.container_id = c.id
		WHERE h.end_date IS NOT NULL
		  AND h.end_date < ?
		ORDER BY c.number
	`, query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetExpiredHiresQueryResponse
		err = rows.Scan(
			&resp.ContainerID,
			&resp.ContainerNumber,
			&resp.Hirer,
			&resp.HireEndDate,
		)
		if err != nil {
			return nil, err
		}
		expired = append(expired, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return expired, nil
}
