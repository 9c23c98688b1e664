package persistence

import (
	"context"

	apptrade "github.com/bonitoviento/backend/internal/application/trade"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// A sale, its herd exit and its bodega movements commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to the current transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// LivestockRepo returns the herd movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LivestockRepo() farm.LivestockMovementRepository {
	return NewGormLivestockMovementRepository(r.tx)
}

// WarehouseRepo returns the bodega movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WarehouseRepo() warehouse.MovementRepository {
	return NewGormWarehouseMovementRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
