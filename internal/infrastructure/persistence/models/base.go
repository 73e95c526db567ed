package models

import (
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomainBaseEntity converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomainBaseEntity() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomainBaseEntity(),
		Version:    m.Version,
	}
}

// FarmAggregateModel provides common persistence fields for farm-scoped
// aggregate roots, extending AggregateModel with farm ID and creator.
type FarmAggregateModel struct {
	AggregateModel
	FarmID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainFarmAggregateRoot populates FarmAggregateModel from domain FarmAggregateRoot
func (m *FarmAggregateModel) FromDomainFarmAggregateRoot(f shared.FarmAggregateRoot) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.FarmID = f.FarmID
	m.CreatedBy = f.CreatedBy
}

// ToDomainFarmAggregateRoot converts FarmAggregateModel to domain FarmAggregateRoot
func (m *FarmAggregateModel) ToDomainFarmAggregateRoot() shared.FarmAggregateRoot {
	return shared.FarmAggregateRoot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FarmID:            m.FarmID,
		CreatedBy:         m.CreatedBy,
	}
}
