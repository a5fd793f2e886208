package containerrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormContainerRepository implements ContainerRepository using GORM.
type GormContainerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormContainerRepository creates a new GORM container repository.
func NewGormContainerRepository(db *gorm.DB, tracker aggregateTracker) *GormContainerRepository {
	return &GormContainerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new container master with its purchase or hire detail and
// any ledger events already recorded on the fresh aggregate. A duplicate
// container number maps to a conflict error.
func (r *GormContainerRepository) Add(ctx context.Context, aggregate *container.Container) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := masterFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("container", aggregate.Number())
		}
		return err
	}

	if purchase := aggregate.Purchase(); purchase != nil {
		purchaseDTO := purchaseFromDomain(aggregate.ID(), purchase)
		if err := r.db.WithContext(ctx).Create(&purchaseDTO).Error; err != nil {
			return err
		}
	}

	if hire := aggregate.Hire(); hire != nil {
		hireDTO := hireFromDomain(aggregate.ID(), hire)
		if err := r.db.WithContext(ctx).Create(&hireDTO).Error; err != nil {
			return err
		}
	}

	for _, event := range aggregate.Events() {
		eventDTO := eventFromDomain(aggregate.ID(), event)
		if err := r.db.WithContext(ctx).Create(&eventDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateMaster persists master-level changes, currently the administrative
// status override. Ledger and detail rows are not touched.
func (r *GormContainerRepository) UpdateMaster(ctx context.Context, aggregate *container.Container) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := masterFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ContainerDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"size":            dto.Size,
		"container_type":  dto.ContainerType,
		"status_override": dto.StatusOverride,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("container", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AppendEvent appends one immutable ledger row. The composite key on
// (container_id, seq) rejects a sequence issued twice.
func (r *GormContainerRepository) AppendEvent(
	ctx context.Context,
	containerID kernel.UUID,
	event container.StatusEvent,
) error {
	eventDTO := eventFromDomain(containerID, event)
	if err := r.db.WithContext(ctx).Create(&eventDTO).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("container event", event.Seq())
		}
		return err
	}
	return nil
}

// Get retrieves a container with its detail record and full ledger.
func (r *GormContainerRepository) Get(ctx context.Context, id kernel.UUID) (*container.Container, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ContainerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("container", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByNumber retrieves a container by its unique number.
func (r *GormContainerRepository) GetByNumber(ctx context.Context, number string) (*container.Container, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto ContainerDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("container", number)
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByNumbers retrieves the containers for all given numbers. A missing
// number yields a not-found error naming it; there is no partial result.
func (r *GormContainerRepository) GetByNumbers(
	ctx context.Context,
	numbers []string,
) ([]*container.Container, error) {
	if len(numbers) == 0 {
		return nil, errs.NewValueIsRequiredError("numbers")
	}

	var dtos []ContainerDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "number IN ?", numbers).Error; err != nil {
		return nil, err
	}

	byNumber := make(map[string]ContainerDTO, len(dtos))
	for _, dto := range dtos {
		byNumber[dto.Number] = dto
	}

	containers := make([]*container.Container, 0, len(numbers))
	for _, number := range numbers {
		dto, ok := byNumber[number]
		if !ok {
			return nil, errs.NewObjectNotFoundError("container", number)
		}
		aggregate, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		containers = append(containers, aggregate)
	}

	return containers, nil
}

// load fetches the aggregate's detail and ledger rows and reconstructs it.
func (r *GormContainerRepository) load(ctx context.Context, dto ContainerDTO) (*container.Container, error) {
	var purchaseDTO *PurchaseDetailDTO
	var foundPurchase PurchaseDetailDTO
	err := r.db.WithContext(ctx).First(&foundPurchase, "container_id = ?", dto.ID).Error
	switch {
	case err == nil:
		purchaseDTO = &foundPurchase
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var hireDTO *HireDetailDTO
	var foundHire HireDetailDTO
	err = r.db.WithContext(ctx).First(&foundHire, "container_id = ?", dto.ID).Error
	switch {
	case err == nil:
		hireDTO = &foundHire
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var eventDTOs []StatusEventDTO
	if err = r.db.WithContext(ctx).
		Order("seq").
		Find(&eventDTOs, "container_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, purchaseDTO, hireDTO, eventDTOs)
}
