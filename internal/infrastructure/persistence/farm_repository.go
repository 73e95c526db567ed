package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFarmRepository implements FarmRepository using GORM
type GormFarmRepository struct {
	db *gorm.DB
}

// NewGormFarmRepository creates a new GormFarmRepository
func NewGormFarmRepository(db *gorm.DB) *GormFarmRepository {
	return &GormFarmRepository{db: db}
}

// FindByID finds a farm by its ID
func (r *GormFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Farm, error) {
	var model models.FarmModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all farms owned by a user
func (r *GormFarmRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]farm.Farm, error) {
	var farmModels []models.FarmModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.FarmModel{}).Where("owner_id = ?", ownerID),
		filter, "name",
	)
	if err := query.Find(&farmModels).Error; err != nil {
		return nil, err
	}

	farms := make([]farm.Farm, len(farmModels))
	for i, model := range farmModels {
		farms[i] = *model.ToDomain()
	}
	return farms, nil
}

// FindAll finds all farms matching the filter
func (r *GormFarmRepository) FindAll(ctx context.Context, filter shared.Filter) ([]farm.Farm, error) {
	var farmModels []models.FarmModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.FarmModel{}), filter, "name")
	if err := query.Find(&farmModels).Error; err != nil {
		return nil, err
	}

	farms := make([]farm.Farm, len(farmModels))
	for i, model := range farmModels {
		farms[i] = *model.ToDomain()
	}
	return farms, nil
}

// Save creates or updates a farm
func (r *GormFarmRepository) Save(ctx context.Context, f *farm.Farm) error {
	model := models.FarmModelFromDomain(f)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts farms matching the filter
func (r *GormFarmRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FarmModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search, pagination and ordering to a query. The
// search pattern matches against the given column.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumn string) *gorm.DB {
	if filter.Search != "" && searchColumn != "" {
		query = query.Where(searchColumn+" LIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormFarmRepository implements FarmRepository
var _ farm.FarmRepository = (*GormFarmRepository)(nil)
