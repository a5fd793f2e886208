package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's full read model from the
// database: the order row, its owner, parties with their items, and the
// transport record.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Parties and items come back in submission order.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	orderID := query.OrderID().String()

	resp, err := h.loadRoot(ctx, orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Owner, err = h.loadOwner(ctx, orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Parties, err = h.loadParties(ctx, orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Transport, err = h.loadTransport(ctx, orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadRoot(ctx context.Context, orderID string) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var attachments pq.StringArray

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			booking_ref,
			status,
			origin,
			loading_point,
			destination,
			delivery_point,
			remarks,
			attachments,
			total_assigned_qty
		FROM orders
		WHERE id = ?
	`, orderID).Row()

	err := row.Scan(
		&resp.ID,
		&resp.BookingRef,
		&resp.Status,
		&resp.Origin,
		&resp.LoadingPoint,
		&resp.Destination,
		&resp.DeliveryPoint,
		&resp.Remarks,
		&attachments,
		&resp.TotalAssignedQty,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Attachments = []string(attachments)
	return resp, nil
}

func (h GetOrderQueryHandler) loadOwner(ctx context.Context, orderID string) (*OrderOwnerView, error) {
	var owner OrderOwnerView

	row := h.db.WithContext(ctx).Raw(`
		SELECT role, name, contact, address, email
		FROM senders
		WHERE order_id = ?
	`, orderID).Row()

	err := row.Scan(&owner.Role, &owner.Name, &owner.Contact, &owner.Address, &owner.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (h GetOrderQueryHandler) loadParties(ctx context.Context, orderID string) ([]OrderPartyView, error) {
	parties := make([]OrderPartyView, 0)
	partyIndex := make(map[string]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			contact,
			address,
			email,
			eta,
			etd,
			delivery_mode,
			qty_delivered,
			status,
			containers
		FROM receivers
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var party OrderPartyView
		var containers pq.StringArray
		var eta, etd sql.NullTime

		err = rows.Scan(
			&party.ID,
			&party.Name,
			&party.Contact,
			&party.Address,
			&party.Email,
			&eta,
			&etd,
			&party.DeliveryMode,
			&party.QtyDelivered,
			&party.Status,
			&containers,
		)
		if err != nil {
			return nil, err
		}

		if eta.Valid {
			party.ETA = &eta.Time
		}
		if etd.Valid {
			party.ETD = &etd.Time
		}
		party.Containers = []string(containers)
		party.Items = make([]OrderItemView, 0)

		partyIndex[party.ID] = len(parties)
		parties = append(parties, party)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.loadItems(ctx, orderID, parties, partyIndex); err != nil {
		return nil, err
	}
	return parties, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID string,
	parties []OrderPartyView,
	partyIndex map[string]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			receiver_id,
			item_ref,
			category,
			subcategory,
			item_type,
			total_number,
			weight,
			assigned_qty
		FROM items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemView
		var receiverID string

		err = rows.Scan(
			&item.ID,
			&receiverID,
			&item.ItemRef,
			&item.Category,
			&item.Subcategory,
			&item.ItemType,
			&item.TotalNumber,
			&item.Weight,
			&item.AssignedQty,
		)
		if err != nil {
			return err
		}

		idx, ok := partyIndex[receiverID]
		if !ok {
			continue
		}
		parties[idx].Items = append(parties[idx].Items, item)
		parties[idx].TotalQty += item.TotalNumber
		parties[idx].TotalWeight += item.Weight
	}

	return rows.Err()
}

func (h GetOrderQueryHandler) loadTransport(ctx context.Context, orderID string) (*OrderTransportView, error) {
	var transport OrderTransportView
	var dropOffDate sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			mode,
			drop_off_location,
			drop_off_date,
			vehicle_no,
			driver_name,
			vendor_name,
			hub_pass_ref
		FROM transports
		WHERE order_id = ?
	`, orderID).Row()

	err := row.Scan(
		&transport.Mode,
		&transport.DropOffLocation,
		&dropOffDate,
		&transport.VehicleNo,
		&transport.DriverName,
		&transport.VendorName,
		&transport.HubPassRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if dropOffDate.Valid {
		transport.DropOffDate = &dropOffDate.Time
	}
	return &transport, nil
}
