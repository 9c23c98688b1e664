package warehouse

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementRepository persists bodega movements
type MovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Movement, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindForStock returns every movement, optionally restricted to a farm, for stock levels
	FindForStock(ctx context.Context, farmID *uuid.UUID) ([]Movement, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]Movement, error)
	Save(ctx context.Context, movement *Movement) error
	SaveBatch(ctx context.Context, movements []*Movement) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySale(ctx context.Context, saleID uuid.UUID) error
}
