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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForFarm finds a category by ID within a farm
func (r *GormCategoryRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*finance.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrCategoryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForFarm finds all categories of a farm, optionally by type
func (r *GormCategoryRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, categoryType *finance.CategoryType, filter shared.Filter) ([]finance.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("farm_id = ?", farmID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}
	query = applyFilter(query, filter, "name")

	var categoryModels []models.CategoryModel
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]finance.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// ExistsByNameAndType checks the per-farm (name, type) uniqueness rule
func (r *GormCategoryRepository) ExistsByNameAndType(ctx context.Context, farmID uuid.UUID, name string, categoryType finance.CategoryType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Where("farm_id = ? AND name = ? AND type = ?", farmID, name, categoryType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, c *finance.Category) error {
	model := models.CategoryModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForFarm deletes a category within a farm
func (r *GormCategoryRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		Delete(&models.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return finance.ErrCategoryNotFound
	}
	return nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ finance.CategoryRepository = (*GormCategoryRepository)(nil)
