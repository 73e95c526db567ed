package persistence

import (
	"context"
	"errors"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByIDForFarm finds a movement with installments preloaded in
// sequence order
func (r *GormMovementRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Movement, error) {
	var model models.MovementModel
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("farm_id = ? AND id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrMovementNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForFarm finds movements of a farm matching the filter
func (r *GormMovementRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, f finance.MovementFilter) ([]finance.Movement, error) {
	query := r.applyMovementFilter(
		r.db.WithContext(ctx).Model(&models.MovementModel{}).
			Preload("Installments", func(db *gorm.DB) *gorm.DB {
				return db.Order("sequence ASC")
			}).
			Where("finance_movements.farm_id = ?", farmID),
		f,
	)

	if f.Page > 0 && f.PageSize > 0 {
		query = query.Offset(f.Offset()).Limit(f.PageSize)
	}
	query = query.Order("finance_movements.date DESC, finance_movements.created_at DESC")

	var movementModels []models.MovementModel
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}

	movements := make([]finance.Movement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements, nil
}

// Save creates or updates a movement together with its installments.
// Regeneration replaces the schedule, so installment rows that are no
// longer part of the aggregate are removed.
func (r *GormMovementRepository) Save(ctx context.Context, m *finance.Movement) error {
	model := models.MovementModelFromDomain(m)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Installments").Save(model).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, len(model.Installments))
		for i := range model.Installments {
			keep[i] = model.Installments[i].ID
		}
		if err := tx.Where("movement_id = ? AND id NOT IN ?", model.ID, keep).
			Delete(&models.InstallmentModel{}).Error; err != nil {
			return err
		}

		for i := range model.Installments {
			if err := tx.Save(&model.Installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForFarm deletes a movement and its installments within a farm
func (r *GormMovementRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("farm_id = ? AND id = ?", farmID, id).
			Delete(&models.MovementModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return finance.ErrMovementNotFound
		}
		return tx.Where("movement_id = ?", id).
			Delete(&models.InstallmentModel{}).Error
	})
}

// CountForFarm counts movements matching the filter
func (r *GormMovementRepository) CountForFarm(ctx context.Context, farmID uuid.UUID, f finance.MovementFilter) (int64, error) {
	var count int64
	query := r.applyMovementFilter(
		r.db.WithContext(ctx).Model(&models.MovementModel{}).
			Where("finance_movements.farm_id = ?", farmID),
		f,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyMovementFilter narrows a movement query by category, contact,
// category type and date range
func (r *GormMovementRepository) applyMovementFilter(query *gorm.DB, f finance.MovementFilter) *gorm.DB {
	if f.CategoryID != nil {
		query = query.Where("finance_movements.category_id = ?", *f.CategoryID)
	}
	if f.ContactID != nil {
		query = query.Where("finance_movements.contact_id = ?", *f.ContactID)
	}
	if f.CategoryType != nil {
		query = query.
			Joins("JOIN finance_categories ON finance_categories.id = finance_movements.category_id").
			Where("finance_categories.type = ?", *f.CategoryType)
	}
	if f.StartDate != nil {
		query = query.Where("finance_movements.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("finance_movements.date <= ?", *f.EndDate)
	}
	if f.Search != "" {
		query = query.Where("finance_movements.description LIKE ?", "%"+f.Search+"%")
	}
	return query
}

// Ensure GormMovementRepository implements MovementRepository
var _ finance.MovementRepository = (*GormMovementRepository)(nil)
