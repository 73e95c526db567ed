package persistence

import (
	"context"
	"testing"
	"time"

	appfinance "github.com/farmledger/backend/internal/application/finance"
	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createCategory(t *testing.T, db *gorm.DB, farmID uuid.UUID, name string, categoryType finance.CategoryType) *finance.Category {
	cat, err := finance.NewCategory(farmID, name, categoryType)
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), cat))
	return cat
}

func createMovement(t *testing.T, db *gorm.DB, farmID, categoryID uuid.UUID, total string, count int, date time.Time) *finance.Movement {
	amount, err := valueobject.NewMoneyBRLFromString(total)
	require.NoError(t, err)
	mv, err := finance.NewMovement(farmID, categoryID, nil, amount, count, false, "", date, uuid.New())
	require.NoError(t, err)
	require.NoError(t, NewGormMovementRepository(db).Save(context.Background(), mv))
	return mv
}

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	farmID := uuid.New()

	t.Run("save and find", func(t *testing.T) {
		cat := createCategory(t, db, farmID, "Cattle sales", finance.CategoryTypeIncome)

		found, err := repo.FindByIDForFarm(ctx, farmID, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cattle sales", found.Name)
		assert.Equal(t, finance.CategoryTypeIncome, found.Type)

		_, err = repo.FindByIDForFarm(ctx, uuid.New(), cat.ID)
		assert.ErrorIs(t, err, finance.ErrCategoryNotFound)
	})

	t.Run("exists by name and type", func(t *testing.T) {
		createCategory(t, db, farmID, "Feed", finance.CategoryTypeExpense)

		exists, err := repo.ExistsByNameAndType(ctx, farmID, "Feed", finance.CategoryTypeExpense)
		require.NoError(t, err)
		assert.True(t, exists)

		// Same name under the other type is allowed
		exists, err = repo.ExistsByNameAndType(ctx, farmID, "Feed", finance.CategoryTypeIncome)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByNameAndType(ctx, uuid.New(), "Feed", finance.CategoryTypeExpense)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find all optionally by type", func(t *testing.T) {
		otherFarm := uuid.New()
		createCategory(t, db, otherFarm, "Milk sales", finance.CategoryTypeIncome)
		createCategory(t, db, otherFarm, "Veterinary", finance.CategoryTypeExpense)

		all, err := repo.FindAllForFarm(ctx, otherFarm, nil, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		expense := finance.CategoryTypeExpense
		expenses, err := repo.FindAllForFarm(ctx, otherFarm, &expense, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Veterinary", expenses[0].Name)
	})
}

func TestMovementRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()
	farmID := uuid.New()
	cat := createCategory(t, db, farmID, "Machinery", finance.CategoryTypeExpense)

	t.Run("saves aggregate with schedule", func(t *testing.T) {
		mv := createMovement(t, db, farmID, cat.ID, "1000.00", 3, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

		found, err := repo.FindByIDForFarm(ctx, farmID, mv.ID)
		require.NoError(t, err)
		require.Len(t, found.Installments, 3)
		assert.Equal(t, 1, found.Installments[0].Sequence)
		assert.True(t, found.Installments[0].AmountDue.Amount().Equal(decimal.RequireFromString("333.34")))
		assert.True(t, found.Installments[1].AmountDue.Amount().Equal(decimal.RequireFromString("333.33")))
		assert.True(t, found.InstallmentsTotal().Amount().Equal(decimal.RequireFromString("1000.00")))
	})

	t.Run("regeneration removes replaced installment rows", func(t *testing.T) {
		mv := createMovement(t, db, farmID, cat.ID, "600.00", 4, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

		amount, err := valueobject.NewMoneyBRLFromString("600.00")
		require.NoError(t, err)
		require.NoError(t, mv.Regenerate(amount, 2, mv.Date))
		require.NoError(t, repo.Save(ctx, mv))

		installments, err := NewGormInstallmentRepository(db).FindByMovement(ctx, mv.ID)
		require.NoError(t, err)
		require.Len(t, installments, 2)
		assert.True(t, installments[0].AmountDue.Amount().Equal(decimal.RequireFromString("300.00")))
	})

	t.Run("filter by category type and date range", func(t *testing.T) {
		incomeCat := createCategory(t, db, farmID, "Calf sales", finance.CategoryTypeIncome)
		createMovement(t, db, farmID, incomeCat.ID, "500.00", 1, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

		income := finance.CategoryTypeIncome
		found, err := repo.FindAllForFarm(ctx, farmID, finance.MovementFilter{CategoryType: &income})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, incomeCat.ID, found[0].CategoryID)

		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
		none, err := repo.FindAllForFarm(ctx, farmID, finance.MovementFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete removes installments", func(t *testing.T) {
		mv := createMovement(t, db, farmID, cat.ID, "200.00", 2, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

		require.NoError(t, repo.DeleteForFarm(ctx, farmID, mv.ID))

		_, err := repo.FindByIDForFarm(ctx, farmID, mv.ID)
		assert.ErrorIs(t, err, finance.ErrMovementNotFound)

		installments, err := NewGormInstallmentRepository(db).FindByMovement(ctx, mv.ID)
		require.NoError(t, err)
		assert.Empty(t, installments)

		err = repo.DeleteForFarm(ctx, farmID, mv.ID)
		assert.ErrorIs(t, err, finance.ErrMovementNotFound)
	})
}

func TestInstallmentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)
	ctx := context.Background()
	farmID := uuid.New()

	expenseCat := createCategory(t, db, farmID, "Fuel", finance.CategoryTypeExpense)
	incomeCat := createCategory(t, db, farmID, "Grain sales", finance.CategoryTypeIncome)
	expenseMv := createMovement(t, db, farmID, expenseCat.ID, "300.00", 3, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	createMovement(t, db, farmID, incomeCat.ID, "900.00", 2, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	t.Run("find verifies farm through movement", func(t *testing.T) {
		target := expenseMv.Installments[0]

		found, err := repo.FindByIDForFarm(ctx, farmID, target.ID)
		require.NoError(t, err)
		assert.Equal(t, target.Sequence, found.Sequence)

		_, err = repo.FindByIDForFarm(ctx, uuid.New(), target.ID)
		assert.ErrorIs(t, err, finance.ErrInstallmentNotFound)
	})

	t.Run("pending by type excludes settled and other types", func(t *testing.T) {
		first := expenseMv.Installments[0]
		require.NoError(t, first.Settle(nil, nil))
		require.NoError(t, repo.Save(ctx, &first))

		pending, err := repo.FindPendingByType(ctx, farmID, finance.CategoryTypeExpense, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, 2, pending[0].Sequence)
		assert.Equal(t, 3, pending[1].Sequence)
	})

	t.Run("settlement state round-trips", func(t *testing.T) {
		second := expenseMv.Installments[1]
		paid := decimal.RequireFromString("80.00")
		date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
		require.NoError(t, second.Settle(&paid, &date))
		require.NoError(t, repo.Save(ctx, &second))

		found, err := repo.FindByIDForFarm(ctx, farmID, second.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.PaymentStatusPaid, found.Status)
		assert.True(t, found.AmountPaid.Amount().Equal(paid))
		require.NotNil(t, found.SettledDate)
		assert.Equal(t, date.Day(), found.SettledDate.Day())
	})
}

func TestFinanceReportRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFinanceReportRepository(db)
	ctx := context.Background()
	farmID := uuid.New()

	salesCat := createCategory(t, db, farmID, "Cattle sales", finance.CategoryTypeIncome)
	feedCat := createCategory(t, db, farmID, "Feed", finance.CategoryTypeExpense)
	vetCat := createCategory(t, db, farmID, "Veterinary", finance.CategoryTypeExpense)

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	createMovement(t, db, farmID, salesCat.ID, "1500.00", 2, jan)
	feedMv := createMovement(t, db, farmID, feedCat.ID, "400.00", 1, jan)
	vetMv := createMovement(t, db, farmID, vetCat.ID, "250.50", 1, jan)

	t.Run("sum due separates overall totals from pending", func(t *testing.T) {
		total, err := repo.SumDueByType(ctx, farmID, finance.CategoryTypeIncome, nil, nil, nil)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("1500")), "got %s", total)

		// Settle the feed movement; the overall expense total keeps it,
		// the pending slice drops to the vet bill
		instRepo := NewGormInstallmentRepository(db)
		inst := feedMv.Installments[0]
		require.NoError(t, inst.Settle(nil, &jan))
		require.NoError(t, instRepo.Save(ctx, &inst))

		expenses, err := repo.SumDueByType(ctx, farmID, finance.CategoryTypeExpense, nil, nil, nil)
		require.NoError(t, err)
		assert.True(t, expenses.Equal(decimal.RequireFromString("650.5")), "got %s", expenses)

		pending := finance.PaymentStatusPending
		outstanding, err := repo.SumDueByType(ctx, farmID, finance.CategoryTypeExpense, &pending, nil, nil)
		require.NoError(t, err)
		assert.True(t, outstanding.Equal(decimal.RequireFromString("250.5")), "got %s", outstanding)
	})

	t.Run("sum due respects the due date window", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
		total, err := repo.SumDueByType(ctx, farmID, finance.CategoryTypeIncome, nil, &start, &end)
		require.NoError(t, err)
		// Only the first of the two income installments falls in January
		assert.True(t, total.Equal(decimal.RequireFromString("750")), "got %s", total)
	})

	t.Run("sum paid uses half-open settlement windows", func(t *testing.T) {
		janStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		febStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		marStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		// Settle the vet bill exactly at the February boundary; it must
		// land in February's window and stay out of January's
		instRepo := NewGormInstallmentRepository(db)
		inst := vetMv.Installments[0]
		require.NoError(t, inst.Settle(nil, &febStart))
		require.NoError(t, instRepo.Save(ctx, &inst))

		january, err := repo.SumPaidByType(ctx, farmID, finance.CategoryTypeExpense, janStart, febStart)
		require.NoError(t, err)
		assert.True(t, january.Equal(decimal.RequireFromString("400")), "got %s", january)

		february, err := repo.SumPaidByType(ctx, farmID, finance.CategoryTypeExpense, febStart, marStart)
		require.NoError(t, err)
		assert.True(t, february.Equal(decimal.RequireFromString("250.5")), "got %s", february)
	})

	t.Run("per category breakdown", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
		totals, err := repo.SumDueByCategory(ctx, farmID, finance.CategoryTypeExpense, start, end)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "Feed", totals[0].CategoryName)
		assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("400")), "got %s", totals[0].Total)
		assert.Equal(t, "Veterinary", totals[1].CategoryName)
	})
}

func TestFinanceTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormFinanceTransactionScope(db)
	ctx := context.Background()
	farmID := uuid.New()
	cat := createCategory(t, db, farmID, "Machinery", finance.CategoryTypeExpense)

	t.Run("rolls back the whole aggregate on error", func(t *testing.T) {
		amount, err := valueobject.NewMoneyBRLFromString("900.00")
		require.NoError(t, err)
		mv, err := finance.NewMovement(farmID, cat.ID, nil, amount, 3, false, "", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), uuid.New())
		require.NoError(t, err)

		err = scope.Execute(ctx, func(repos appfinance.TransactionalRepositories) error {
			if err := repos.MovementRepo().Save(ctx, mv); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		_, err = NewGormMovementRepository(db).FindByIDForFarm(ctx, farmID, mv.ID)
		assert.ErrorIs(t, err, finance.ErrMovementNotFound)

		installments, err := NewGormInstallmentRepository(db).FindByMovement(ctx, mv.ID)
		require.NoError(t, err)
		assert.Empty(t, installments)
	})
}
