package farm

import (
	"context"
	"testing"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFarmRepository is a mock implementation of FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]farm.Farm, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindAll(ctx context.Context, filter shared.Filter) ([]farm.Farm, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) Save(ctx context.Context, f *farm.Farm) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFarmRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestFarmCreate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	repo := new(MockFarmRepository)
	service := NewFarmService(repo)
	repo.On("Save", ctx, mock.AnythingOfType("*farm.Farm")).Return(nil)

	resp, err := service.Create(ctx, ownerID, CreateFarmRequest{
		Name:  "Fazenda Boa Vista",
		City:  "Uberaba",
		State: "MG",
	})
	require.NoError(t, err)

	assert.Equal(t, "Fazenda Boa Vista", resp.Name)
	assert.Equal(t, ownerID, resp.OwnerID)
	assert.True(t, resp.Active)
}

func TestFarmAuthorization(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	f, err := farm.NewFarm("Fazenda Boa Vista", ownerID)
	require.NoError(t, err)

	repo := new(MockFarmRepository)
	service := NewFarmService(repo)
	repo.On("FindByID", ctx, f.ID).Return(f, nil)

	t.Run("owner is authorized", func(t *testing.T) {
		assert.NoError(t, service.AuthorizeMember(ctx, ownerID, f.ID))
	})

	t.Run("other users are rejected", func(t *testing.T) {
		err := service.AuthorizeMember(ctx, uuid.New(), f.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestFarmDeactivate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	f, err := farm.NewFarm("Fazenda Boa Vista", ownerID)
	require.NoError(t, err)

	repo := new(MockFarmRepository)
	service := NewFarmService(repo)
	repo.On("FindByID", ctx, f.ID).Return(f, nil)
	repo.On("Save", ctx, f).Return(nil)

	require.NoError(t, service.Deactivate(ctx, ownerID, f.ID))
	assert.False(t, f.Active)

	require.NoError(t, service.Activate(ctx, ownerID, f.ID))
	assert.True(t, f.Active)
}
