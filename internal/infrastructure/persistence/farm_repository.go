package persistence

import (
	"context"
	"errors"

	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/persistence/models"
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

// FindAll finds all farms matching the filter
func (r *GormFarmRepository) FindAll(ctx context.Context, filter shared.Filter) ([]farm.Farm, error) {
	var farmModels []models.FarmModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FarmModel{}), filter)

	if err := query.Find(&farmModels).Error; err != nil {
		return nil, err
	}
	farms := make([]farm.Farm, len(farmModels))
	for i, model := range farmModels {
		farms[i] = *model.ToDomain()
	}
	return farms, nil
}

// Count counts farms matching the filter
func (r *GormFarmRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FarmModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a farm
func (r *GormFarmRepository) Save(ctx context.Context, f *farm.Farm) error {
	return r.db.WithContext(ctx).Save(models.FarmModelFromDomain(f)).Error
}

// Delete deletes a farm
func (r *GormFarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FarmModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormFarmRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, FarmSortFields, "name")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	if sortField != "name" {
		query = query.Order("name ASC")
	}

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

func (r *GormFarmRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(owner) LIKE ?)", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "owner":
			query = query.Where("owner = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		}
	}
	return query
}

var _ farm.FarmRepository = (*GormFarmRepository)(nil)
