// Package consignmentrepo provides data transfer objects and mapping
// functions for consignment persistence.
package consignmentrepo

import (
	"freight/internal/core/domain/model/consignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConsignmentDTO represents the consignment row. Container and order
// references are denormalized display copies held as text arrays.
type ConsignmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConsignmentNumber string    `gorm:"uniqueIndex"`
	EformRef          string
	Value             float64
	GrossWeight       float64
	NetWeight         float64
	Vessel            string
	VoyageNo          string
	SealNo            string
	Containers        pq.StringArray `gorm:"type:text[]"`
	Orders            pq.StringArray `gorm:"type:text[]"`
	Status            string         `gorm:"index"`
}

// TableName specifies the database table name for consignments.
func (ConsignmentDTO) TableName() string {
	return "consignments"
}

// fromDomain converts a consignment to its database representation.
func fromDomain(aggregate *consignment.Consignment) ConsignmentDTO {
	fields := aggregate.Fields()
	return ConsignmentDTO{
		ID:                aggregate.ID().Bytes(),
		ConsignmentNumber: fields.ConsignmentNumber,
		EformRef:          fields.EformRef,
		Value:             fields.Value,
		GrossWeight:       fields.GrossWeight,
		NetWeight:         fields.NetWeight,
		Vessel:            fields.Vessel,
		VoyageNo:          fields.VoyageNo,
		SealNo:            fields.SealNo,
		Containers:        pq.StringArray(fields.Containers),
		Orders:            pq.StringArray(fields.Orders),
		Status:            aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to a consignment aggregate.
func toDomain(dto ConsignmentDTO) (*consignment.Consignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := consignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return consignment.RestoreConsignment(id, consignment.Fields{
		ConsignmentNumber: dto.ConsignmentNumber,
		EformRef:          dto.EformRef,
		Value:             dto.Value,
		GrossWeight:       dto.GrossWeight,
		NetWeight:         dto.NetWeight,
		Vessel:            dto.Vessel,
		VoyageNo:          dto.VoyageNo,
		SealNo:            dto.SealNo,
		Containers:        []string(dto.Containers),
		Orders:            []string(dto.Orders),
	}, status)
}
