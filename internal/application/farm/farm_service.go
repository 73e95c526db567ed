package farm

import (
	"context"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FarmService handles farm registration and membership boundaries
type FarmService struct {
	farmRepo farm.FarmRepository
}

// NewFarmService creates a new FarmService
func NewFarmService(farmRepo farm.FarmRepository) *FarmService {
	return &FarmService{farmRepo: farmRepo}
}

// Create registers a farm owned by the requesting user
func (s *FarmService) Create(ctx context.Context, ownerID uuid.UUID, req CreateFarmRequest) (*FarmResponse, error) {
	f, err := farm.NewFarm(req.Name, ownerID)
	if err != nil {
		return nil, err
	}
	f.City = req.City
	f.State = req.State
	f.Description = req.Description

	if err := s.farmRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	resp := ToFarmResponse(f)
	return &resp, nil
}

// Get retrieves a farm. Callers that are not the owner are rejected.
func (s *FarmService) Get(ctx context.Context, userID, farmID uuid.UUID) (*FarmResponse, error) {
	f, err := s.authorizedFarm(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}
	resp := ToFarmResponse(f)
	return &resp, nil
}

// ListOwned lists the farms a user owns
func (s *FarmService) ListOwned(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]FarmResponse, error) {
	farms, err := s.farmRepo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]FarmResponse, 0, len(farms))
	for i := range farms {
		items = append(items, ToFarmResponse(&farms[i]))
	}
	return items, nil
}

// Update replaces a farm's descriptive fields
func (s *FarmService) Update(ctx context.Context, userID, farmID uuid.UUID, req UpdateFarmRequest) (*FarmResponse, error) {
	f, err := s.authorizedFarm(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}

	if err := f.Rename(req.Name); err != nil {
		return nil, err
	}
	f.City = req.City
	f.State = req.State
	f.Description = req.Description
	f.Touch()

	if err := s.farmRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	resp := ToFarmResponse(f)
	return &resp, nil
}

// Deactivate disables a farm without deleting its data
func (s *FarmService) Deactivate(ctx context.Context, userID, farmID uuid.UUID) error {
	f, err := s.authorizedFarm(ctx, userID, farmID)
	if err != nil {
		return err
	}
	f.Deactivate()
	return s.farmRepo.Save(ctx, f)
}

// Activate re-enables a deactivated farm
func (s *FarmService) Activate(ctx context.Context, userID, farmID uuid.UUID) error {
	f, err := s.authorizedFarm(ctx, userID, farmID)
	if err != nil {
		return err
	}
	f.Activate()
	return s.farmRepo.Save(ctx, f)
}

// AuthorizeMember verifies that a user may operate on the farm. The
// farm router middleware calls this for every farm-scoped request.
func (s *FarmService) AuthorizeMember(ctx context.Context, userID, farmID uuid.UUID) error {
	_, err := s.authorizedFarm(ctx, userID, farmID)
	return err
}

func (s *FarmService) authorizedFarm(ctx context.Context, userID, farmID uuid.UUID) (*farm.Farm, error) {
	f, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != userID {
		return nil, shared.ErrForbidden
	}
	return f, nil
}
