package persistence

import (
	"context"
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormFinanceReportRepository implements FinanceReportRepository using
// GORM. All aggregations run on the installment table joined through
// movements to categories, so the numbers always reflect the schedule,
// never the movement totals.
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// SumDueByType sums amount due over installments of a category type,
// optionally restricted to a single payment status
func (r *GormFinanceReportRepository) SumDueByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, status *finance.PaymentStatus, start, end *time.Time) (decimal.Decimal, error) {
	query := r.baseQuery(ctx, farmID, categoryType)
	if status != nil {
		query = query.Where("finance_installments.status = ?", *status)
	}
	if start != nil {
		query = query.Where("finance_installments.due_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("finance_installments.due_date <= ?", *end)
	}

	var total decimal.Decimal
	if err := query.
		Select("COALESCE(SUM(finance_installments.amount_due), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumPaidByType sums amount paid over settled installments within the
// half-open settlement window [start, end). The exclusive upper bound
// keeps a settlement dated exactly on a month boundary out of the
// preceding month's window.
func (r *GormFinanceReportRepository) SumPaidByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.baseQuery(ctx, farmID, categoryType).
		Where("finance_installments.status = ?", finance.PaymentStatusPaid).
		Where("finance_installments.settled_date >= ? AND finance_installments.settled_date < ?", start, end).
		Select("COALESCE(SUM(finance_installments.amount_paid), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumDueByCategory sums amount due per category over a due-date range
func (r *GormFinanceReportRepository) SumDueByCategory(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, start, end time.Time) ([]finance.CategoryTotal, error) {
	var totals []finance.CategoryTotal
	if err := r.baseQuery(ctx, farmID, categoryType).
		Where("finance_installments.due_date >= ? AND finance_installments.due_date <= ?", start, end).
		Select("finance_categories.id AS category_id, finance_categories.name AS category_name, SUM(finance_installments.amount_due) AS total").
		Group("finance_categories.id, finance_categories.name").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *GormFinanceReportRepository) baseQuery(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Joins("JOIN finance_movements ON finance_movements.id = finance_installments.movement_id").
		Joins("JOIN finance_categories ON finance_categories.id = finance_movements.category_id").
		Where("finance_movements.farm_id = ? AND finance_categories.type = ?", farmID, categoryType)
}

// Ensure GormFinanceReportRepository implements FinanceReportRepository
var _ finance.FinanceReportRepository = (*GormFinanceReportRepository)(nil)
