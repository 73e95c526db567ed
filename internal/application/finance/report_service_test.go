package finance

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFinanceReportRepository is a mock implementation of FinanceReportRepository
type MockFinanceReportRepository struct {
	mock.Mock
}

func (m *MockFinanceReportRepository) SumDueByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, status *finance.PaymentStatus, start, end *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, farmID, categoryType, status, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFinanceReportRepository) SumPaidByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, farmID, categoryType, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFinanceReportRepository) SumDueByCategory(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, start, end time.Time) ([]finance.CategoryTotal, error) {
	args := m.Called(ctx, farmID, categoryType, start, end)
	return args.Get(0).([]finance.CategoryTotal), args.Error(1)
}

func TestReportSummary(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()

	repo := new(MockFinanceReportRepository)
	service := NewReportService(repo)

	pending := finance.PaymentStatusPending
	repo.On("SumDueByType", ctx, farmID, finance.CategoryTypeIncome, (*finance.PaymentStatus)(nil), (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.RequireFromString("5400.50"), nil)
	repo.On("SumDueByType", ctx, farmID, finance.CategoryTypeExpense, (*finance.PaymentStatus)(nil), (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.RequireFromString("7200.75"), nil)
	repo.On("SumDueByType", ctx, farmID, finance.CategoryTypeIncome, &pending, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.RequireFromString("1200.00"), nil)
	repo.On("SumDueByType", ctx, farmID, finance.CategoryTypeExpense, &pending, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.RequireFromString("3000.25"), nil)

	summary, err := service.Summary(ctx, farmID, nil, nil)
	require.NoError(t, err)

	// Headline totals cover every installment regardless of settlement
	assert.True(t, summary.Receivable.Equal(decimal.RequireFromString("5400.50")))
	assert.True(t, summary.Payable.Equal(decimal.RequireFromString("7200.75")))
	// Net can go negative when payables dominate
	assert.True(t, summary.Net.Equal(decimal.RequireFromString("-1800.25")))
	assert.True(t, summary.PendingReceivable.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, summary.PendingPayable.Equal(decimal.RequireFromString("3000.25")))
}

func TestReportMonthlySeries(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()

	repo := new(MockFinanceReportRepository)
	service := NewReportService(repo)

	repo.On("SumPaidByType", ctx, farmID, finance.CategoryTypeIncome,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("100.00"), nil)
	repo.On("SumPaidByType", ctx, farmID, finance.CategoryTypeExpense,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("40.00"), nil)

	series, err := service.MonthlySeries(ctx, farmID, 6)
	require.NoError(t, err)
	require.Len(t, series, 6)

	// Oldest month first, current month last
	now := time.Now()
	assert.Equal(t, now.Month(), series[5].Month)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	assert.Equal(t, first.Month(), series[0].Month)
	assert.Equal(t, first.Year(), series[0].Year)

	for _, row := range series {
		assert.True(t, row.Income.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, row.Expense.Equal(decimal.RequireFromString("40.00")))
	}
}

func TestReportCategoryBreakdown(t *testing.T) {
	ctx := context.Background()
	farmID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	repo := new(MockFinanceReportRepository)
	service := NewReportService(repo)

	feedID := uuid.New()
	vetID := uuid.New()
	repo.On("SumDueByCategory", ctx, farmID, finance.CategoryTypeExpense, start, end).
		Return([]finance.CategoryTotal{
			{CategoryID: feedID, CategoryName: "Feed", Total: decimal.RequireFromString("8000.00")},
			{CategoryID: vetID, CategoryName: "Veterinary", Total: decimal.RequireFromString("1500.00")},
		}, nil)

	rows, err := service.CategoryBreakdown(ctx, farmID, finance.CategoryTypeExpense, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Feed", rows[0].CategoryName)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("8000.00")))
}
