package farm

import (
	"strings"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Farm is the multi-tenant isolation boundary. Every stock and finance
// entity belongs to exactly one farm.
type Farm struct {
	shared.BaseAggregateRoot
	Name        string
	City        string
	State       string
	Description string
	OwnerID     uuid.UUID
	Active      bool
}

// NewFarm creates a new active farm owned by the given user
func NewFarm(name string, ownerID uuid.UUID) (*Farm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Farm name cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Farm owner is required")
	}
	return &Farm{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerID:           ownerID,
		Active:            true,
	}, nil
}

// Deactivate marks the farm as inactive; its data is retained
func (f *Farm) Deactivate() {
	f.Active = false
	f.Touch()
	f.IncrementVersion()
}

// Activate re-enables an inactive farm
func (f *Farm) Activate() {
	f.Active = true
	f.Touch()
	f.IncrementVersion()
}

// Rename changes the farm name
func (f *Farm) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Farm name cannot be empty")
	}
	f.Name = name
	f.Touch()
	f.IncrementVersion()
	return nil
}
