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

// GormLivestockMovementRepository implements LivestockMovementRepository using GORM
type GormLivestockMovementRepository struct {
	db *gorm.DB
}

// NewGormLivestockMovementRepository creates a new GormLivestockMovementRepository
func NewGormLivestockMovementRepository(db *gorm.DB) *GormLivestockMovementRepository {
	return &GormLivestockMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormLivestockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.LivestockMovement, error) {
	var model models.LivestockMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFarm finds a page of movements for a farm
func (r *GormLivestockMovementRepository) FindByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]farm.LivestockMovement, error) {
	var movementModels []models.LivestockMovementModel
	query := r.applyFilter(r.byFarm(ctx, farmID), filter)
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toLivestockMovements(movementModels), nil
}

// CountByFarm counts movements for a farm matching the filter
func (r *GormLivestockMovementRepository) CountByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.byFarm(ctx, farmID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllByFarm returns every movement of a farm in chronological order
func (r *GormLivestockMovementRepository) FindAllByFarm(ctx context.Context, farmID uuid.UUID) ([]farm.LivestockMovement, error) {
	var movementModels []models.LivestockMovementModel
	if err := r.byFarm(ctx, farmID).Order("occurred_at ASC").Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toLivestockMovements(movementModels), nil
}

// FindBySale returns the movements produced by a sale
func (r *GormLivestockMovementRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]farm.LivestockMovement, error) {
	var movementModels []models.LivestockMovementModel
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("occurred_at ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toLivestockMovements(movementModels), nil
}

// Save creates or updates a movement
func (r *GormLivestockMovementRepository) Save(ctx context.Context, movement *farm.LivestockMovement) error {
	return r.db.WithContext(ctx).Save(models.LivestockMovementModelFromDomain(movement)).Error
}

// Delete deletes a movement
func (r *GormLivestockMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LivestockMovementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBySale deletes the movements produced by a sale. Deleting none is not an error.
func (r *GormLivestockMovementRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LivestockMovementModel{}, "sale_id = ?", saleID).Error
}

func (r *GormLivestockMovementRepository) byFarm(ctx context.Context, farmID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.LivestockMovementModel{}).Where("farm_id = ?", farmID)
}

func (r *GormLivestockMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, LivestockMovementSortFields, "occurred_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir)).Order("created_at DESC")

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

func (r *GormLivestockMovementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(category) LIKE ? OR LOWER(reason) LIKE ?)", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		}
	}
	return query
}

func toLivestockMovements(movementModels []models.LivestockMovementModel) []farm.LivestockMovement {
	movements := make([]farm.LivestockMovement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements
}

var _ farm.LivestockMovementRepository = (*GormLivestockMovementRepository)(nil)
