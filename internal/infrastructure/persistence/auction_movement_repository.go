package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuctionMovementRepository implements AuctionMovementRepository using GORM
type GormAuctionMovementRepository struct {
	db *gorm.DB
}

// NewGormAuctionMovementRepository creates a new GormAuctionMovementRepository
func NewGormAuctionMovementRepository(db *gorm.DB) *GormAuctionMovementRepository {
	return &GormAuctionMovementRepository{db: db}
}

// FindByID finds an auction movement by its ID
func (r *GormAuctionMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.AuctionMovement, error) {
	var model models.AuctionMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all auction movements matching the filter
func (r *GormAuctionMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.AuctionMovement, error) {
	var movementModels []models.AuctionMovementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuctionMovementModel{}), filter)
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toAuctionMovements(movementModels), nil
}

// Count counts auction movements matching the filter
func (r *GormAuctionMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.AuctionMovementModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindForBalance returns every movement, or those of one auction when auctionName is set
func (r *GormAuctionMovementRepository) FindForBalance(ctx context.Context, auctionName string) ([]trade.AuctionMovement, error) {
	var movementModels []models.AuctionMovementModel
	query := r.db.WithContext(ctx).Model(&models.AuctionMovementModel{})
	if name := strings.TrimSpace(auctionName); name != "" {
		query = query.Where("auction_name = ?", name)
	}
	if err := query.Order("occurred_at ASC").Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toAuctionMovements(movementModels), nil
}

// Save creates or updates an auction movement
func (r *GormAuctionMovementRepository) Save(ctx context.Context, movement *trade.AuctionMovement) error {
	return r.db.WithContext(ctx).Save(models.AuctionMovementModelFromDomain(movement)).Error
}

// Delete deletes an auction movement
func (r *GormAuctionMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AuctionMovementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAuctionMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, AuctionMovementSortFields, "occurred_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir)).Order("created_at DESC")

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

func (r *GormAuctionMovementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(auction_name) LIKE ? OR LOWER(animal_category) LIKE ?)", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "auction_name":
			query = query.Where("auction_name = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "farm_id":
			query = query.Where("farm_id = ?", value)
		}
	}
	return query
}

func toAuctionMovements(movementModels []models.AuctionMovementModel) []trade.AuctionMovement {
	movements := make([]trade.AuctionMovement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements
}

var _ trade.AuctionMovementRepository = (*GormAuctionMovementRepository)(nil)
