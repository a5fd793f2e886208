package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetContainerStatusQueryHandler retrieves one container's ledger from the
// database and derives its current status. The status is never stored: it is
// recomputed here through the same precedence chain the write side uses.
type GetContainerStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetContainerStatusQueryHandler creates a handler for container status queries.
func NewGetContainerStatusQueryHandler(db *gorm.DB) GetContainerStatusQueryHandler {
	return GetContainerStatusQueryHandler{db: db}
}

// Handle executes the query. The response carries the derived status and the
// full ledger history, oldest first.
func (h GetContainerStatusQueryHandler) Handle(
	ctx context.Context,
	query GetContainerStatusQuery,
) (GetContainerStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetContainerStatusQueryResponse{}, err
	}

	var (
		resp          GetContainerStatusQueryResponse
		ownerTypeStr  string
		overrideStr   string
		hirer         sql.NullString
		hireStartDate sql.NullTime
		hireEndDate   sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.number,
			c.size,
			c.container_type,
			c.owner_type,
			c.status_override,
			h.hirer,
			h.start_date,
			h.end_date
		FROM containers c
		LEFT JOIN hire_details h ON h.container_id = c.id
		WHERE c.number = ?
	`, query.Number()).Row()

	err := row.Scan(
		&resp.ID,
		&resp.Number,
		&resp.Size,
		&resp.ContainerType,
		&ownerTypeStr,
		&overrideStr,
		&hirer,
		&hireStartDate,
		&hireEndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetContainerStatusQueryResponse{}, errs.NewObjectNotFoundError("container", query.Number())
	}
	if err != nil {
		return GetContainerStatusQueryResponse{}, err
	}
	resp.OwnerType = ownerTypeStr

	resp.History, err = h.loadHistory(ctx, resp.ID)
	if err != nil {
		return GetContainerStatusQueryResponse{}, err
	}

	derived, err := deriveFromProjection(deriveInput{
		id:            resp.ID,
		number:        resp.Number,
		size:          resp.Size,
		containerType: resp.ContainerType,
		ownerType:     ownerTypeStr,
		override:      overrideStr,
		hirer:         hirer,
		hireStartDate: hireStartDate,
		hireEndDate:   hireEndDate,
		history:       resp.History,
	})
	if err != nil {
		return GetContainerStatusQueryResponse{}, err
	}
	resp.DerivedStatus = derived.String()

	return resp, nil
}

func (h GetContainerStatusQueryHandler) loadHistory(
	ctx context.Context,
	containerID string,
) ([]ContainerHistoryEntry, error) {
	history := make([]ContainerHistoryEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			location,
			availability,
			note,
			actor,
			occurred_at
		FROM container_events
		WHERE container_id = ?
		ORDER BY seq
	`, containerID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ContainerHistoryEntry
		err = rows.Scan(
			&entry.Seq,
			&entry.Location,
			&entry.Availability,
			&entry.Note,
			&entry.Actor,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

type deriveInput struct {
	id            string
	number        string
	size          string
	containerType string
	ownerType     string
	override      string
	hirer         sql.NullString
	hireStartDate sql.NullTime
	hireEndDate   sql.NullTime
	history       []ContainerHistoryEntry
}

// deriveFromProjection rebuilds a container aggregate from scanned rows and
// runs the domain derivation against the current clock.
func deriveFromProjection(in deriveInput) (container.Availability, error) {
	id, err := kernel.UUIDFromString(in.id)
	if err != nil {
		return container.AvailabilityUnknown, err
	}

	ownerType, err := container.OwnerTypeFromString(in.ownerType)
	if err != nil {
		return container.AvailabilityUnknown, err
	}

	override := container.AvailabilityUnknown
	if in.override != "" {
		override, err = container.AvailabilityFromString(in.override)
		if err != nil {
			return container.AvailabilityUnknown, err
		}
	}

	var hire *container.HireDetail
	if in.hirer.Valid && in.hireStartDate.Valid {
		var endDate *kernel.Date
		if in.hireEndDate.Valid {
			d := kernel.DateFromTime(in.hireEndDate.Time)
			endDate = &d
		}
		hire, err = container.NewHireDetail(
			in.hirer.String, "", kernel.DateFromTime(in.hireStartDate.Time), endDate, 0)
		if err != nil {
			return container.AvailabilityUnknown, err
		}
	}

	events := make([]container.StatusEvent, 0, len(in.history))
	for _, entry := range in.history {
		availability := container.AvailabilityUnknown
		if entry.Availability != "" {
			availability, err = container.AvailabilityFromString(entry.Availability)
			if err != nil {
				return container.AvailabilityUnknown, err
			}
		}
		events = append(events, container.RestoreStatusEvent(
			entry.Seq, entry.Location, availability, entry.Note, entry.Actor, entry.OccurredAt))
	}

	aggregate, err := container.RestoreContainer(
		id, in.number, in.size, in.containerType, ownerType, override, nil, hire, events)
	if err != nil {
		return container.AvailabilityUnknown, err
	}

	return aggregate.DeriveStatus(time.Now()), nil
}
