package persistence

import (
	"context"
	"errors"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForFarm finds a contact by ID within a farm
func (r *GormContactRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*farm.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForFarm finds all contacts of a farm
func (r *GormContactRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]farm.Contact, error) {
	var contactModels []models.ContactModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("farm_id = ?", farmID),
		filter, "name",
	)
	if err := query.Find(&contactModels).Error; err != nil {
		return nil, err
	}

	contacts := make([]farm.Contact, len(contactModels))
	for i, model := range contactModels {
		contacts[i] = *model.ToDomain()
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, c *farm.Contact) error {
	model := models.ContactModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForFarm deletes a contact within a farm
func (r *GormContactRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		Delete(&models.ContactModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForFarm counts contacts of a farm
func (r *GormContactRepository) CountForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("farm_id = ?", farmID)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormContactRepository implements ContactRepository
var _ farm.ContactRepository = (*GormContactRepository)(nil)
