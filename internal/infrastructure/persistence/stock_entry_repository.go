package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockEntryRepository implements StockEntryRepository using GORM
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// FindByIDForFarm finds a stock entry by ID, verifying farm ownership
// through its medication
func (r *GormStockEntryRepository) FindByIDForFarm(ctx context.Context, farmID, id uuid.UUID) (*stock.StockEntry, error) {
	var model models.StockEntryModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN medications ON medications.id = stock_entries.medication_id").
		Where("medications.farm_id = ? AND stock_entries.id = ?", farmID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrEntryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMedication finds all entries of a medication in FEFO order
func (r *GormStockEntryRepository) FindByMedication(ctx context.Context, medicationID uuid.UUID) ([]stock.StockEntry, error) {
	var entryModels []models.StockEntryModel
	if err := r.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("expiry_date ASC, created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindAvailableForUpdate finds entries with available stock in FEFO
// order, taking row locks so concurrent withdrawals against the same
// medication serialize. Must run inside a transaction.
func (r *GormStockEntryRepository) FindAvailableForUpdate(ctx context.Context, medicationID uuid.UUID) ([]*stock.StockEntry, error) {
	query := r.db.WithContext(ctx).
		Where("medication_id = ? AND quantity_available > 0", medicationID).
		Order("expiry_date ASC, created_at ASC")

	// SQLite has no row locks; its writes serialize on the database anyway
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entryModels []models.StockEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*stock.StockEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// FindExpiringForFarm finds entries with available stock expiring on or
// before the limit date, across all medications of a farm
func (r *GormStockEntryRepository) FindExpiringForFarm(ctx context.Context, farmID uuid.UUID, limit time.Time) ([]stock.StockEntry, error) {
	var entryModels []models.StockEntryModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN medications ON medications.id = stock_entries.medication_id").
		Where("medications.farm_id = ? AND stock_entries.quantity_available > 0 AND stock_entries.expiry_date <= ?", farmID, limit).
		Order("stock_entries.expiry_date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Save creates or updates a stock entry
func (r *GormStockEntryRepository) Save(ctx context.Context, e *stock.StockEntry) error {
	model := models.StockEntryModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForFarm deletes a stock entry within a farm
func (r *GormStockEntryRepository) DeleteForFarm(ctx context.Context, farmID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND medication_id IN (?)",
			id,
			r.db.Model(&models.MedicationModel{}).Select("id").Where("farm_id = ?", farmID),
		).
		Delete(&models.StockEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return stock.ErrEntryNotFound
	}
	return nil
}

// SumAvailableByMedication sums available quantity across a medication's entries
func (r *GormStockEntryRepository) SumAvailableByMedication(ctx context.Context, medicationID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockEntryModel{}).
		Where("medication_id = ?", medicationID).
		Select("COALESCE(SUM(quantity_available), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func toDomainEntries(entryModels []models.StockEntryModel) []stock.StockEntry {
	entries := make([]stock.StockEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries
}

// Ensure GormStockEntryRepository implements StockEntryRepository
var _ stock.StockEntryRepository = (*GormStockEntryRepository)(nil)
