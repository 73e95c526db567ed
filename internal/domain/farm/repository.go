package farm

import (
	"context"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FarmRepository defines the interface for farm persistence
type FarmRepository interface {
	// FindByID finds a farm by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Farm, error)

	// FindByOwner finds all farms owned by a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Farm, error)

	// FindAll finds all farms
	FindAll(ctx context.Context, filter shared.Filter) ([]Farm, error)

	// Save creates or updates a farm
	Save(ctx context.Context, f *Farm) error

	// Count counts farms matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByIDForFarm finds a contact by ID within a farm
	FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*Contact, error)

	// FindAllForFarm finds all contacts of a farm
	FindAllForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, c *Contact) error

	// DeleteForFarm deletes a contact within a farm
	DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error

	// CountForFarm counts contacts of a farm
	CountForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error)
}
