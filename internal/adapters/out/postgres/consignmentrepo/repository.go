package consignmentrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormConsignmentRepository implements ConsignmentRepository using GORM.
type GormConsignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsignmentRepository creates a new GORM consignment repository.
func NewGormConsignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormConsignmentRepository {
	return &GormConsignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consignment. A duplicate consignment number maps to a
// conflict error.
func (r *GormConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("consignment", aggregate.Fields().ConsignmentNumber)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing consignment.
func (r *GormConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ConsignmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("consignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consignment by ID.
func (r *GormConsignmentRepository) Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
