package farm

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FarmRepository persists farms
type FarmRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Farm, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Farm, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, farm *Farm) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LivestockMovementRepository persists herd movements
type LivestockMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LivestockMovement, error)
	FindByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]LivestockMovement, error)
	CountByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error)
	// FindAllByFarm returns every movement of the farm, unpaginated, for herd totals
	FindAllByFarm(ctx context.Context, farmID uuid.UUID) ([]LivestockMovement, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]LivestockMovement, error)
	Save(ctx context.Context, movement *LivestockMovement) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySale(ctx context.Context, saleID uuid.UUID) error
}
