package trade

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
)

// TransactionScope runs a sale and its herd and bodega movements in one
// database transaction. If fn returns an error nothing is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are repositories bound to the current transaction
type TransactionalRepositories interface {
	SaleRepo() trade.SaleRepository
	LivestockRepo() farm.LivestockMovementRepository
	WarehouseRepo() warehouse.MovementRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction
type NoOpTransactionScope struct {
	saleRepo      trade.SaleRepository
	livestockRepo farm.LivestockMovementRepository
	warehouseRepo warehouse.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	saleRepo trade.SaleRepository,
	livestockRepo farm.LivestockMovementRepository,
	warehouseRepo warehouse.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:      saleRepo,
		livestockRepo: livestockRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository {
	return s.saleRepo
}

// LivestockRepo returns the livestock movement repository
func (s *NoOpTransactionScope) LivestockRepo() farm.LivestockMovementRepository {
	return s.livestockRepo
}

// WarehouseRepo returns the bodega movement repository
func (s *NoOpTransactionScope) WarehouseRepo() warehouse.MovementRepository {
	return s.warehouseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
