package finance

import (
	"context"
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// ReportService produces the financial rollups behind the dashboard:
// outstanding receivable/payable, the settled cashflow series and
// per-category breakdowns.
type ReportService struct {
	reportRepo finance.FinanceReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo finance.FinanceReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Summary returns total receivable, payable and their net across every
// installment of the farm, alongside the still-pending portions,
// optionally bounded by due date.
func (s *ReportService) Summary(ctx context.Context, farmID uuid.UUID, start, end *time.Time) (*FinanceSummaryResponse, error) {
	receivable, err := s.reportRepo.SumDueByType(ctx, farmID, finance.CategoryTypeIncome, nil, start, end)
	if err != nil {
		return nil, err
	}
	payable, err := s.reportRepo.SumDueByType(ctx, farmID, finance.CategoryTypeExpense, nil, start, end)
	if err != nil {
		return nil, err
	}

	pending := finance.PaymentStatusPending
	pendingReceivable, err := s.reportRepo.SumDueByType(ctx, farmID, finance.CategoryTypeIncome, &pending, start, end)
	if err != nil {
		return nil, err
	}
	pendingPayable, err := s.reportRepo.SumDueByType(ctx, farmID, finance.CategoryTypeExpense, &pending, start, end)
	if err != nil {
		return nil, err
	}

	return &FinanceSummaryResponse{
		Receivable:        receivable,
		Payable:           payable,
		Net:               receivable.Sub(payable),
		PendingReceivable: pendingReceivable,
		PendingPayable:    pendingPayable,
	}, nil
}

// MonthlySeries returns settled income and expense totals per month for
// the trailing window ending in the current month, oldest first.
func (s *ReportService) MonthlySeries(ctx context.Context, farmID uuid.UUID, months int) ([]MonthlyTotal, error) {
	if months < 1 {
		months = 6
	}

	now := time.Now()
	series := make([]MonthlyTotal, 0, months)

	for offset := months - 1; offset >= 0; offset-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -offset, 0)
		end := start.AddDate(0, 1, 0)

		income, err := s.reportRepo.SumPaidByType(ctx, farmID, finance.CategoryTypeIncome, start, end)
		if err != nil {
			return nil, err
		}
		expense, err := s.reportRepo.SumPaidByType(ctx, farmID, finance.CategoryTypeExpense, start, end)
		if err != nil {
			return nil, err
		}

		series = append(series, MonthlyTotal{
			Year:    start.Year(),
			Month:   start.Month(),
			Income:  income,
			Expense: expense,
		})
	}
	return series, nil
}

// CategoryBreakdown returns amount due per category of one type over a
// due-date range, largest totals first.
func (s *ReportService) CategoryBreakdown(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, start, end time.Time) ([]CategoryBreakdownRow, error) {
	totals, err := s.reportRepo.SumDueByCategory(ctx, farmID, categoryType, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]CategoryBreakdownRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, CategoryBreakdownRow{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Total:        t.Total,
		})
	}
	return rows, nil
}
