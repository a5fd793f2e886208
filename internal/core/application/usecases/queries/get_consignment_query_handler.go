package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetConsignmentQueryHandler retrieves one consignment row from the database.
type GetConsignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetConsignmentQueryHandler creates a handler for consignment detail queries.
func NewGetConsignmentQueryHandler(db *gorm.DB) GetConsignmentQueryHandler {
	return GetConsignmentQueryHandler{db: db}
}

// Handle executes the query.
func (h GetConsignmentQueryHandler) Handle(
	ctx context.Context,
	query GetConsignmentQuery,
) (GetConsignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetConsignmentQueryResponse{}, err
	}

	var (
		resp       GetConsignmentQueryResponse
		containers pq.StringArray
		orders     pq.StringArray
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			consignment_number,
			eform_ref,
			value,
			gross_weight,
			net_weight,
			vessel,
			voyage_no,
			seal_no,
			containers,
			orders,
			status
		FROM consignments
		WHERE id = ?
	`, query.ConsignmentID().Bytes()).Row()

	err := row.Scan(
		&resp.ID,
		&resp.ConsignmentNumber,
		&resp.EformRef,
		&resp.Value,
		&resp.GrossWeight,
		&resp.NetWeight,
		&resp.Vessel,
		&resp.VoyageNo,
		&resp.SealNo,
		&containers,
		&orders,
		&resp.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetConsignmentQueryResponse{},
			errs.NewObjectNotFoundError("consignment", query.ConsignmentID().String())
	}
	if err != nil {
		return GetConsignmentQueryResponse{}, err
	}

	resp.Containers = []string(containers)
	resp.Orders = []string(orders)
	return resp, nil
}
