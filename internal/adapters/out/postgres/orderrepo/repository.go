package orderrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its full party graph. Writes run in
// dependency order: order row, sender, receivers with their items, tracking
// rows, transport. A duplicate booking reference maps to a conflict error.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := orderFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateConflict(err, aggregate.BookingRef())
	}

	if sender := aggregate.Sender(); sender != nil {
		senderDTO := senderFromDomain(aggregate.ID(), sender)
		if err := r.db.WithContext(ctx).Create(&senderDTO).Error; err != nil {
			return err
		}
	}

	if err := r.createParties(ctx, aggregate); err != nil {
		return err
	}

	if err := r.createTracking(ctx, aggregate); err != nil {
		return err
	}

	if transport := aggregate.Transport(); transport != nil {
		transportDTO := transportFromDomain(aggregate.ID(), transport)
		if err := r.db.WithContext(ctx).Create(&transportDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing order. With replaceParties the whole
// receiver/item graph is deleted and recreated from the aggregate; otherwise
// only the order root, sender, receiver state, and transport rows are saved.
// New tracking rows are appended either way.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, replaceParties bool) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := orderFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":             dto.Status,
		"origin":             dto.Origin,
		"loading_point":      dto.LoadingPoint,
		"destination":        dto.Destination,
		"delivery_point":     dto.DeliveryPoint,
		"remarks":            dto.Remarks,
		"attachments":        dto.Attachments,
		"total_assigned_qty": dto.TotalAssignedQty,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if sender := aggregate.Sender(); sender != nil {
		senderDTO := senderFromDomain(aggregate.ID(), sender)
		if err := r.db.WithContext(ctx).Save(&senderDTO).Error; err != nil {
			return err
		}
	}

	if replaceParties {
		if err := r.deleteParties(ctx, aggregate.ID()); err != nil {
			return err
		}
		if err := r.createParties(ctx, aggregate); err != nil {
			return err
		}
	} else {
		for position, receiver := range aggregate.Receivers() {
			receiverDTO := receiverFromDomain(aggregate.ID(), position, receiver)
			if err := r.db.WithContext(ctx).Save(&receiverDTO).Error; err != nil {
				return err
			}
			for itemPosition, item := range receiver.Items() {
				itemDTO := itemFromDomain(aggregate.ID(), receiver.ID(), itemPosition, item)
				if err := r.db.WithContext(ctx).Save(&itemDTO).Error; err != nil {
					return err
				}
			}
		}
	}

	if err := r.createTracking(ctx, aggregate); err != nil {
		return err
	}

	if transport := aggregate.Transport(); transport != nil {
		transportDTO := transportFromDomain(aggregate.ID(), transport)
		if err := r.db.WithContext(ctx).Save(&transportDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order aggregate with its sender, receivers, items, and
// transport record.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByBookingRef retrieves an order by its unique booking reference.
func (r *GormOrderRepository) GetByBookingRef(ctx context.Context, bookingRef string) (*order.Order, error) {
	if bookingRef == "" {
		return nil, errs.NewValueIsRequiredError("bookingRef")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "booking_ref = ?", bookingRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", bookingRef)
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// load fetches the aggregate's child rows and reconstructs the domain graph.
func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var senderDTO *SenderDTO
	var found SenderDTO
	err := r.db.WithContext(ctx).First(&found, "order_id = ?", dto.ID).Error
	switch {
	case err == nil:
		senderDTO = &found
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var receiverDTOs []ReceiverDTO
	if err = r.db.WithContext(ctx).
		Order("position").
		Find(&receiverDTOs, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var itemDTOs []ItemDTO
	if err = r.db.WithContext(ctx).
		Order("position").
		Find(&itemDTOs, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var transportDTO *TransportDTO
	var foundTransport TransportDTO
	err = r.db.WithContext(ctx).First(&foundTransport, "order_id = ?", dto.ID).Error
	switch {
	case err == nil:
		transportDTO = &foundTransport
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return toDomain(dto, senderDTO, receiverDTOs, itemDTOs, transportDTO)
}

func (r *GormOrderRepository) createParties(ctx context.Context, aggregate *order.Order) error {
	for position, receiver := range aggregate.Receivers() {
		receiverDTO := receiverFromDomain(aggregate.ID(), position, receiver)
		if err := r.db.WithContext(ctx).Create(&receiverDTO).Error; err != nil {
			return err
		}

		for itemPosition, item := range receiver.Items() {
			itemDTO := itemFromDomain(aggregate.ID(), receiver.ID(), itemPosition, item)
			if err := r.db.WithContext(ctx).Create(&itemDTO).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *GormOrderRepository) deleteParties(ctx context.Context, orderID kernel.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&ItemDTO{}, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Delete(&TrackingEventDTO{}, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&ReceiverDTO{}, "order_id = ?", orderID.Bytes()).Error
}

func (r *GormOrderRepository) createTracking(ctx context.Context, aggregate *order.Order) error {
	for _, event := range aggregate.PendingTracking() {
		eventDTO := trackingFromDomain(event)
		if err := r.db.WithContext(ctx).Create(&eventDTO).Error; err != nil {
			return err
		}
	}
	return nil
}

// translateConflict maps a unique-constraint violation to the domain's
// conflict error; the connection is opened with TranslateError so gorm
// surfaces driver duplicates as ErrDuplicatedKey.
func translateConflict(err error, bookingRef string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError("order", bookingRef)
	}
	return err
}
