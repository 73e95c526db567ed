package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// FarmAggregateRoot extends BaseAggregateRoot with farm (tenant) scoping.
// Every core entity belongs to exactly one farm; the farm ID is always an
// explicit input, never ambient state.
type FarmAggregateRoot struct {
	BaseAggregateRoot
	FarmID    uuid.UUID
	CreatedBy *uuid.UUID
}

// NewFarmAggregateRoot creates a new farm-scoped aggregate root
func NewFarmAggregateRoot(farmID uuid.UUID) FarmAggregateRoot {
	return FarmAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		FarmID:            farmID,
	}
}

// NewFarmAggregateRootWithCreator creates a new farm-scoped aggregate root with creator info
func NewFarmAggregateRootWithCreator(farmID, createdBy uuid.UUID) FarmAggregateRoot {
	return FarmAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		FarmID:            farmID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (f *FarmAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	f.CreatedBy = &userID
}
