package finance

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Category, error) {
	args := m.Called(ctx, farmID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, categoryType *finance.CategoryType, filter shared.Filter) ([]finance.Category, error) {
	args := m.Called(ctx, farmID, categoryType, filter)
	return args.Get(0).([]finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByNameAndType(ctx context.Context, farmID uuid.UUID, name string, categoryType finance.CategoryType) (bool, error) {
	args := m.Called(ctx, farmID, name, categoryType)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *finance.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	args := m.Called(ctx, farmID, id)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Movement, error) {
	args := m.Called(ctx, farmID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, f finance.MovementFilter) ([]finance.Movement, error) {
	args := m.Called(ctx, farmID, f)
	return args.Get(0).([]finance.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, mv *finance.Movement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovementRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	args := m.Called(ctx, farmID, id)
	return args.Error(0)
}

func (m *MockMovementRepository) CountForFarm(ctx context.Context, farmID uuid.UUID, f finance.MovementFilter) (int64, error) {
	args := m.Called(ctx, farmID, f)
	return args.Get(0).(int64), args.Error(1)
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Installment, error) {
	args := m.Called(ctx, farmID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByMovement(ctx context.Context, movementID uuid.UUID) ([]finance.Installment, error) {
	args := m.Called(ctx, movementID)
	return args.Get(0).([]finance.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindPendingByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, filter shared.Filter) ([]finance.Installment, error) {
	args := m.Called(ctx, farmID, categoryType, filter)
	return args.Get(0).([]finance.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) Save(ctx context.Context, i *finance.Installment) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

type movementFixture struct {
	categoryRepo    *MockCategoryRepository
	movementRepo    *MockMovementRepository
	installmentRepo *MockInstallmentRepository
	service         *MovementService
}

func newMovementFixture() *movementFixture {
	categoryRepo := new(MockCategoryRepository)
	movementRepo := new(MockMovementRepository)
	installmentRepo := new(MockInstallmentRepository)
	scope := NewNoOpTransactionScope(categoryRepo, movementRepo, installmentRepo)
	return &movementFixture{
		categoryRepo:    categoryRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
		service:         NewMovementService(categoryRepo, movementRepo, installmentRepo, scope),
	}
}

func newCategory(t *testing.T, farmID uuid.UUID, name string, ct finance.CategoryType) *finance.Category {
	t.Helper()
	c, err := finance.NewCategory(farmID, name, ct)
	require.NoError(t, err)
	return c
}

func TestMovementCreate(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("generates the full schedule atomically", func(t *testing.T) {
		f := newMovementFixture()
		category := newCategory(t, farmID, "Cattle sale", finance.CategoryTypeIncome)
		f.categoryRepo.On("FindByIDForFarm", ctx, farmID, category.ID).Return(category, nil)
		f.movementRepo.On("Save", ctx, mock.AnythingOfType("*finance.Movement")).Return(nil)

		resp, err := f.service.Create(ctx, farmID, userID, CreateMovementRequest{
			CategoryID:       category.ID,
			TotalAmount:      decimal.RequireFromString("1000.00"),
			InstallmentCount: 3,
			Description:      "Sale of 12 steers",
			Date:             date,
		})
		require.NoError(t, err)

		require.Len(t, resp.Installments, 3)
		assert.True(t, resp.Installments[0].AmountDue.Equal(decimal.RequireFromString("333.34")))
		assert.True(t, resp.Installments[1].AmountDue.Equal(decimal.RequireFromString("333.33")))
		assert.True(t, resp.Outstanding.Equal(decimal.RequireFromString("1000.00")))
		assert.False(t, resp.Settled)
		f.movementRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newMovementFixture()
		unknown := uuid.New()
		f.categoryRepo.On("FindByIDForFarm", ctx, farmID, unknown).
			Return(nil, finance.ErrCategoryNotFound)

		_, err := f.service.Create(ctx, farmID, userID, CreateMovementRequest{
			CategoryID:       unknown,
			TotalAmount:      decimal.RequireFromString("100.00"),
			InstallmentCount: 1,
			Date:             date,
		})
		assert.ErrorIs(t, err, finance.ErrCategoryNotFound)
		f.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid installment count before saving", func(t *testing.T) {
		f := newMovementFixture()
		category := newCategory(t, farmID, "Feed", finance.CategoryTypeExpense)
		f.categoryRepo.On("FindByIDForFarm", ctx, farmID, category.ID).Return(category, nil)

		_, err := f.service.Create(ctx, farmID, userID, CreateMovementRequest{
			CategoryID:       category.ID,
			TotalAmount:      decimal.RequireFromString("100.00"),
			InstallmentCount: 0,
			Date:             date,
		})
		var invalid *finance.InvalidInstallmentCountError
		require.ErrorAs(t, err, &invalid)
		f.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMovementUpdate(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	newMovementAggregate := func(t *testing.T, categoryID uuid.UUID) *finance.Movement {
		t.Helper()
		m, err := finance.NewMovement(farmID, categoryID, nil,
			valueobject.NewMoneyBRL(decimal.RequireFromString("900.00")), 3, false, "Fencing", date, userID)
		require.NoError(t, err)
		return m
	}

	t.Run("regenerates the schedule", func(t *testing.T) {
		f := newMovementFixture()
		category := newCategory(t, farmID, "Maintenance", finance.CategoryTypeExpense)
		movement := newMovementAggregate(t, category.ID)

		f.movementRepo.On("FindByIDForFarm", ctx, farmID, movement.ID).Return(movement, nil)
		f.categoryRepo.On("FindByIDForFarm", ctx, farmID, category.ID).Return(category, nil)
		f.movementRepo.On("Save", ctx, movement).Return(nil)

		resp, err := f.service.Update(ctx, farmID, movement.ID, UpdateMovementRequest{
			CategoryID:       category.ID,
			TotalAmount:      decimal.RequireFromString("1200.00"),
			InstallmentCount: 4,
			Date:             date,
		})
		require.NoError(t, err)
		require.Len(t, resp.Installments, 4)
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("1200.00")))
	})

	t.Run("refuses after a settlement", func(t *testing.T) {
		f := newMovementFixture()
		category := newCategory(t, farmID, "Maintenance", finance.CategoryTypeExpense)
		movement := newMovementAggregate(t, category.ID)
		require.NoError(t, movement.Installments[0].Settle(nil, nil))

		f.movementRepo.On("FindByIDForFarm", ctx, farmID, movement.ID).Return(movement, nil)
		f.categoryRepo.On("FindByIDForFarm", ctx, farmID, category.ID).Return(category, nil)

		_, err := f.service.Update(ctx, farmID, movement.ID, UpdateMovementRequest{
			CategoryID:       category.ID,
			TotalAmount:      decimal.RequireFromString("1200.00"),
			InstallmentCount: 4,
			Date:             date,
		})
		require.Error(t, err)
		f.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSettleAndReopenInstallment(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()

	newInstallment := func(t *testing.T) *finance.Installment {
		t.Helper()
		i, err := finance.NewInstallment(uuid.New(), 1,
			valueobject.NewMoneyBRL(decimal.RequireFromString("150.00")),
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		return i
	}

	t.Run("settle defaults to full amount", func(t *testing.T) {
		f := newMovementFixture()
		installment := newInstallment(t)
		f.installmentRepo.On("FindByIDForFarm", ctx, farmID, installment.ID).Return(installment, nil)
		f.installmentRepo.On("Save", ctx, installment).Return(nil)

		resp, err := f.service.SettleInstallment(ctx, farmID, installment.ID, SettleInstallmentRequest{})
		require.NoError(t, err)
		assert.Equal(t, finance.PaymentStatusPaid, resp.Status)
		assert.True(t, resp.AmountPaid.Equal(decimal.RequireFromString("150.00")))
		require.NotNil(t, resp.SettledDate)
	})

	t.Run("settle records an explicit partial amount", func(t *testing.T) {
		f := newMovementFixture()
		installment := newInstallment(t)
		f.installmentRepo.On("FindByIDForFarm", ctx, farmID, installment.ID).Return(installment, nil)
		f.installmentRepo.On("Save", ctx, installment).Return(nil)

		paid := decimal.RequireFromString("100.00")
		resp, err := f.service.SettleInstallment(ctx, farmID, installment.ID, SettleInstallmentRequest{AmountPaid: &paid})
		require.NoError(t, err)
		assert.True(t, resp.AmountPaid.Equal(paid))
	})

	t.Run("reopen reverts the settlement", func(t *testing.T) {
		f := newMovementFixture()
		installment := newInstallment(t)
		require.NoError(t, installment.Settle(nil, nil))
		f.installmentRepo.On("FindByIDForFarm", ctx, farmID, installment.ID).Return(installment, nil)
		f.installmentRepo.On("Save", ctx, installment).Return(nil)

		resp, err := f.service.ReopenInstallment(ctx, farmID, installment.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.PaymentStatusPending, resp.Status)
		assert.True(t, resp.AmountPaid.IsZero())
		assert.Nil(t, resp.SettledDate)
	})
}

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()
	userID := uuid.New()

	t.Run("allows the same name across types", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)
		repo.On("ExistsByNameAndType", ctx, farmID, "Feed", finance.CategoryTypeIncome).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*finance.Category")).Return(nil)

		resp, err := service.Create(ctx, farmID, userID, CreateCategoryRequest{Name: "Feed", Type: finance.CategoryTypeIncome})
		require.NoError(t, err)
		assert.Equal(t, finance.CategoryTypeIncome, resp.Type)
	})

	t.Run("rejects a duplicate name and type pair", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		service := NewCategoryService(repo)
		repo.On("ExistsByNameAndType", ctx, farmID, "Feed", finance.CategoryTypeExpense).Return(true, nil)

		_, err := service.Create(ctx, farmID, userID, CreateCategoryRequest{Name: "Feed", Type: finance.CategoryTypeExpense})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
