// Package containerrepo provides data transfer objects and mapping functions
// for container persistence. The status ledger is modeled as append-only
// rows keyed by (container_id, seq); nothing in this package updates or
// deletes a ledger row.
package containerrepo

import (
	"time"

	"freight/internal/core/domain/model/container"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ContainerDTO represents the container master row. StatusOverride holds the
// administrative override in wire form, empty when none is set; the current
// status itself is never stored.
type ContainerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number         string    `gorm:"uniqueIndex"`
	Size           string
	ContainerType  string
	OwnerType      string
	StatusOverride string
}

// TableName specifies the database table name for container masters.
func (ContainerDTO) TableName() string {
	return "containers"
}

// StatusEventDTO represents one immutable ledger row.
type StatusEventDTO struct {
	ContainerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int       `gorm:"primaryKey;autoIncrement:false"`
	Location     string
	Availability string
	Note         string
	Actor        string
	OccurredAt   time.Time
}

// TableName specifies the database table name for ledger rows.
func (StatusEventDTO) TableName() string {
	return "container_events"
}

// PurchaseDetailDTO represents the acquisition record of an owned container.
type PurchaseDetailDTO struct {
	ContainerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Vendor       string
	Reference    string
	PurchaseDate time.Time `gorm:"type:date"`
	Price        float64
}

// TableName specifies the database table name for purchase records.
func (PurchaseDetailDTO) TableName() string {
	return "purchase_details"
}

// HireDetailDTO represents the hire terms of a hired-in container. A null
// end date means the hire is open-ended.
type HireDetailDTO struct {
	ContainerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Hirer       string
	Reference   string
	StartDate   time.Time  `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	DailyRate   float64
}

// TableName specifies the database table name for hire records.
func (HireDetailDTO) TableName() string {
	return "hire_details"
}

// masterFromDomain converts the container master to its database representation.
func masterFromDomain(aggregate *container.Container) ContainerDTO {
	override := ""
	if aggregate.StatusOverride() != container.AvailabilityUnknown {
		override = aggregate.StatusOverride().String()
	}

	return ContainerDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		Size:           aggregate.Size(),
		ContainerType:  aggregate.ContainerType(),
		OwnerType:      aggregate.OwnerType().String(),
		StatusOverride: override,
	}
}

// eventFromDomain converts one ledger event to its database representation.
func eventFromDomain(containerID kernel.UUID, event container.StatusEvent) StatusEventDTO {
	availability := ""
	if event.Availability() != container.AvailabilityUnknown {
		availability = event.Availability().String()
	}

	return StatusEventDTO{
		ContainerID:  containerID.Bytes(),
		Seq:          event.Seq(),
		Location:     event.Location(),
		Availability: availability,
		Note:         event.Note(),
		Actor:        event.Actor(),
		OccurredAt:   event.OccurredAt(),
	}
}

// purchaseFromDomain converts the purchase record to its database representation.
func purchaseFromDomain(containerID kernel.UUID, detail *container.PurchaseDetail) PurchaseDetailDTO {
	return PurchaseDetailDTO{
		ContainerID:  containerID.Bytes(),
		Vendor:       detail.Vendor(),
		Reference:    detail.Reference(),
		PurchaseDate: detail.PurchaseDate().Time(),
		Price:        detail.Price(),
	}
}

// hireFromDomain converts the hire record to its database representation.
func hireFromDomain(containerID kernel.UUID, detail *container.HireDetail) HireDetailDTO {
	var endDate *time.Time
	if end := detail.EndDate(); end != nil {
		t := end.Time()
		endDate = &t
	}

	return HireDetailDTO{
		ContainerID: containerID.Bytes(),
		Hirer:       detail.Hirer(),
		Reference:   detail.Reference(),
		StartDate:   detail.StartDate().Time(),
		EndDate:     endDate,
		DailyRate:   detail.DailyRate(),
	}
}

// toDomain reconstructs the aggregate from its rows. Events arrive ordered
// by sequence.
func toDomain(
	dto ContainerDTO,
	purchaseDTO *PurchaseDetailDTO,
	hireDTO *HireDetailDTO,
	eventDTOs []StatusEventDTO,
) (*container.Container, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerType, err := container.OwnerTypeFromString(dto.OwnerType)
	if err != nil {
		return nil, err
	}

	override := container.AvailabilityUnknown
	if dto.StatusOverride != "" {
		override, err = container.AvailabilityFromString(dto.StatusOverride)
		if err != nil {
			return nil, err
		}
	}

	var purchase *container.PurchaseDetail
	if purchaseDTO != nil {
		purchase, err = container.NewPurchaseDetail(
			purchaseDTO.Vendor,
			purchaseDTO.Reference,
			kernel.DateFromTime(purchaseDTO.PurchaseDate),
			purchaseDTO.Price,
		)
		if err != nil {
			return nil, err
		}
	}

	var hire *container.HireDetail
	if hireDTO != nil {
		var endDate *kernel.Date
		if hireDTO.EndDate != nil {
			d := kernel.DateFromTime(*hireDTO.EndDate)
			endDate = &d
		}
		hire, err = container.NewHireDetail(
			hireDTO.Hirer,
			hireDTO.Reference,
			kernel.DateFromTime(hireDTO.StartDate),
			endDate,
			hireDTO.DailyRate,
		)
		if err != nil {
			return nil, err
		}
	}

	events := make([]container.StatusEvent, 0, len(eventDTOs))
	for _, eventDTO := range eventDTOs {
		availability := container.AvailabilityUnknown
		if eventDTO.Availability != "" {
			availability, err = container.AvailabilityFromString(eventDTO.Availability)
			if err != nil {
				return nil, err
			}
		}
		events = append(events, container.RestoreStatusEvent(
			eventDTO.Seq,
			eventDTO.Location,
			availability,
			eventDTO.Note,
			eventDTO.Actor,
			eventDTO.OccurredAt,
		))
	}

	return container.RestoreContainer(
		id, dto.Number, dto.Size, dto.ContainerType, ownerType, override, purchase, hire, events)
}
