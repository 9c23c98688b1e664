package persistence

import (
	"context"
	"errors"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/bonitoviento/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseMovementRepository implements warehouse.MovementRepository using GORM
type GormWarehouseMovementRepository struct {
	db *gorm.DB
}

// NewGormWarehouseMovementRepository creates a new GormWarehouseMovementRepository
func NewGormWarehouseMovementRepository(db *gorm.DB) *GormWarehouseMovementRepository {
	return &GormWarehouseMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormWarehouseMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Movement, error) {
	var model models.WarehouseMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all movements matching the filter
func (r *GormWarehouseMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehouse.Movement, error) {
	var movementModels []models.WarehouseMovementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{}), filter)
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toWarehouseMovements(movementModels), nil
}

// Count counts movements matching the filter
func (r *GormWarehouseMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindForStock returns every movement, optionally restricted to one farm
func (r *GormWarehouseMovementRepository) FindForStock(ctx context.Context, farmID *uuid.UUID) ([]warehouse.Movement, error) {
	var movementModels []models.WarehouseMovementModel
	query := r.db.WithContext(ctx).Model(&models.WarehouseMovementModel{})
	if farmID != nil {
		query = query.Where("farm_id = ?", *farmID)
	}
	if err := query.Order("occurred_at ASC").Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toWarehouseMovements(movementModels), nil
}

// FindBySale returns the movements produced by a sale
func (r *GormWarehouseMovementRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]warehouse.Movement, error) {
	var movementModels []models.WarehouseMovementModel
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toWarehouseMovements(movementModels), nil
}

// Save creates or updates a movement
func (r *GormWarehouseMovementRepository) Save(ctx context.Context, movement *warehouse.Movement) error {
	return r.db.WithContext(ctx).Save(models.WarehouseMovementModelFromDomain(movement)).Error
}

// SaveBatch creates or updates multiple movements
func (r *GormWarehouseMovementRepository) SaveBatch(ctx context.Context, movements []*warehouse.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	movementModels := make([]*models.WarehouseMovementModel, len(movements))
	for i, m := range movements {
		movementModels[i] = models.WarehouseMovementModelFromDomain(m)
	}
	return r.db.WithContext(ctx).Save(movementModels).Error
}

// Delete deletes a movement
func (r *GormWarehouseMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.WarehouseMovementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBySale deletes the movements produced by a sale. Deleting none is not an error.
func (r *GormWarehouseMovementRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.WarehouseMovementModel{}, "sale_id = ?", saleID).Error
}

func (r *GormWarehouseMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, WarehouseMovementSortFields, "occurred_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir)).Order("created_at DESC")

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

func (r *GormWarehouseMovementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(product) LIKE ? OR LOWER(notes) LIKE ?)", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "farm_id":
			query = query.Where("farm_id = ?", value)
		case "direction":
			query = query.Where("direction = ?", value)
		case "product":
			query = query.Where("product = ?", value)
		}
	}
	return query
}

func toWarehouseMovements(movementModels []models.WarehouseMovementModel) []warehouse.Movement {
	movements := make([]warehouse.Movement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements
}

var _ warehouse.MovementRepository = (*GormWarehouseMovementRepository)(nil)
