package persistence

import (
	"context"
	"errors"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindByIDForFarm finds an installment, verifying farm ownership through
// its movement
func (r *GormInstallmentRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Installment, error) {
	var model models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN finance_movements ON finance_movements.id = finance_installments.movement_id").
		Where("finance_movements.farm_id = ? AND finance_installments.id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrInstallmentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMovement finds all installments of a movement in sequence order
func (r *GormInstallmentRepository) FindByMovement(ctx context.Context, movementID uuid.UUID) ([]finance.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("movement_id = ?", movementID).
		Order("sequence ASC").
		Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// FindPendingByType finds pending installments of a farm whose movement
// category has the given type, ordered by due date
func (r *GormInstallmentRepository) FindPendingByType(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, filter shared.Filter) ([]finance.Installment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InstallmentModel{}).
		Joins("JOIN finance_movements ON finance_movements.id = finance_installments.movement_id").
		Joins("JOIN finance_categories ON finance_categories.id = finance_movements.category_id").
		Where("finance_movements.farm_id = ? AND finance_categories.type = ? AND finance_installments.status = ?",
			farmID, categoryType, finance.PaymentStatusPending).
		Order("finance_installments.due_date ASC, finance_installments.sequence ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var installmentModels []models.InstallmentModel
	if err := query.Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainInstallments(installmentModels), nil
}

// Save updates a single installment
func (r *GormInstallmentRepository) Save(ctx context.Context, i *finance.Installment) error {
	model := models.InstallmentModelFromDomain(i)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainInstallments(installmentModels []models.InstallmentModel) []finance.Installment {
	installments := make([]finance.Installment, len(installmentModels))
	for i := range installmentModels {
		installments[i] = *installmentModels[i].ToDomain()
	}
	return installments
}

// Ensure GormInstallmentRepository implements InstallmentRepository
var _ finance.InstallmentRepository = (*GormInstallmentRepository)(nil)
