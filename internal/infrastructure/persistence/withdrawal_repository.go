package persistence

import (
	"context"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
// Withdrawals are append-only; the repository never updates or deletes.
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// Create creates a new withdrawal record
func (r *GormWithdrawalRepository) Create(ctx context.Context, w *stock.Withdrawal) error {
	model := models.WithdrawalModelFromDomain(w)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByMedication finds withdrawals of a medication, newest first
func (r *GormWithdrawalRepository) FindByMedication(ctx context.Context, medicationID uuid.UUID, filter shared.Filter) ([]stock.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	query := r.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}
	return toDomainWithdrawals(withdrawalModels), nil
}

// FindByEntry finds withdrawals drawn from a specific lot
func (r *GormWithdrawalRepository) FindByEntry(ctx context.Context, entryID uuid.UUID) ([]stock.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at DESC").
		Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}
	return toDomainWithdrawals(withdrawalModels), nil
}

// SumByEntry sums withdrawn quantity for a lot
func (r *GormWithdrawalRepository) SumByEntry(ctx context.Context, entryID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.WithdrawalModel{}).
		Where("entry_id = ?", entryID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByMedication counts withdrawals of a medication
func (r *GormWithdrawalRepository) CountByMedication(ctx context.Context, medicationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WithdrawalModel{}).
		Where("medication_id = ?", medicationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainWithdrawals(withdrawalModels []models.WithdrawalModel) []stock.Withdrawal {
	withdrawals := make([]stock.Withdrawal, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals[i] = *withdrawalModels[i].ToDomain()
	}
	return withdrawals
}

// Ensure GormWithdrawalRepository implements WithdrawalRepository
var _ stock.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
