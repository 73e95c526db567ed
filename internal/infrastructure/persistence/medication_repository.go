package persistence

import (
	"context"
	"errors"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMedicationRepository implements MedicationRepository using GORM
type GormMedicationRepository struct {
	db *gorm.DB
}

// NewGormMedicationRepository creates a new GormMedicationRepository
func NewGormMedicationRepository(db *gorm.DB) *GormMedicationRepository {
	return &GormMedicationRepository{db: db}
}

// FindByIDForFarm finds a medication by ID within a farm
func (r *GormMedicationRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*stock.Medication, error) {
	var model models.MedicationModel
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrMedicationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDWithEntries finds a medication with entries preloaded in
// expiry order
func (r *GormMedicationRepository) FindByIDWithEntries(ctx context.Context, farmID, id uuid.UUID) (*stock.Medication, error) {
	var model models.MedicationModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("expiry_date ASC, created_at ASC")
		}).
		Where("farm_id = ? AND id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrMedicationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForFarm finds all medications of a farm with entries preloaded
func (r *GormMedicationRepository) FindAllForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]stock.Medication, error) {
	var medicationModels []models.MedicationModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.MedicationModel{}).
			Preload("Entries", func(db *gorm.DB) *gorm.DB {
				return db.Order("expiry_date ASC, created_at ASC")
			}).
			Where("farm_id = ?", farmID),
		filter, "name",
	)
	if err := query.Find(&medicationModels).Error; err != nil {
		return nil, err
	}

	medications := make([]stock.Medication, len(medicationModels))
	for i, model := range medicationModels {
		medications[i] = *model.ToDomain()
	}
	return medications, nil
}

// FindByNameForFarm finds a medication by exact name within a farm
func (r *GormMedicationRepository) FindByNameForFarm(ctx context.Context, farmID uuid.UUID, name string) (*stock.Medication, error) {
	var model models.MedicationModel
	if err := r.db.WithContext(ctx).
		Where("farm_id = ? AND name = ?", farmID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrMedicationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a medication. Entries are persisted through
// the stock entry repository, never through the association.
func (r *GormMedicationRepository) Save(ctx context.Context, m *stock.Medication) error {
	model := models.MedicationModelFromDomain(m)
	return r.db.WithContext(ctx).Omit("Entries").Save(model).Error
}

// DeleteForFarm deletes a medication within a farm
func (r *GormMedicationRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("farm_id = ? AND id = ?", farmID, id).
		Delete(&models.MedicationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return stock.ErrMedicationNotFound
	}
	return nil
}

// CountForFarm counts medications of a farm
func (r *GormMedicationRepository) CountForFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MedicationModel{}).Where("farm_id = ?", farmID)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMedicationRepository implements MedicationRepository
var _ stock.MedicationRepository = (*GormMedicationRepository)(nil)
