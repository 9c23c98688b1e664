package trade

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository persists sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuctionMovementRepository persists auction movements
type AuctionMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuctionMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]AuctionMovement, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindForBalance returns every movement, optionally for one auction, for balances
	FindForBalance(ctx context.Context, auctionName string) ([]AuctionMovement, error)
	Save(ctx context.Context, movement *AuctionMovement) error
	Delete(ctx context.Context, id uuid.UUID) error
}
