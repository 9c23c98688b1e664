package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movementDay = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestLivestock(t *testing.T, farmID uuid.UUID, typ farm.MovementType, category string, qty int, at time.Time) *farm.LivestockMovement {
	t.Helper()
	m, err := farm.NewLivestockMovement("user-1", farmID, farm.LivestockMovementParams{
		Type:       typ,
		Category:   category,
		Quantity:   qty,
		Reason:     "nacimiento",
		OccurredAt: at,
	})
	require.NoError(t, err)
	return m
}

func newTestSupplyMovement(t *testing.T, farmID *uuid.UUID, dir warehouse.Direction, product string, qty string, at time.Time) *warehouse.Movement {
	t.Helper()
	m, err := warehouse.NewMovement("user-1", warehouse.MovementParams{
		FarmID:     farmID,
		Direction:  dir,
		Product:    product,
		Quantity:   decimal.RequireFromString(qty),
		Unit:       "bulto",
		UnitCost:   decimal.NewFromInt(85000),
		OccurredAt: at,
	})
	require.NoError(t, err)
	return m
}

func TestGormLivestockMovementRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLivestockMovementRepository(newSQLiteDB(t))

	farmID, otherFarm, saleID := uuid.New(), uuid.New(), uuid.New()
	births := newTestLivestock(t, farmID, farm.MovementEntry, "terneros", 5, movementDay)
	purchase := newTestLivestock(t, farmID, farm.MovementEntry, "novillos", 12, movementDay.AddDate(0, 0, 1))
	exit, err := farm.NewSaleExit("user-1", farmID, saleID, "novillos", 10, movementDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	elsewhere := newTestLivestock(t, otherFarm, farm.MovementEntry, "vacas", 3, movementDay)
	for _, m := range []*farm.LivestockMovement{births, purchase, exit, elsewhere} {
		require.NoError(t, repo.Save(ctx, m))
	}

	t.Run("find by farm is newest first and filtered", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "occurred_at", OrderDir: "desc", Filters: map[string]any{}}
		got, err := repo.FindByFarm(ctx, farmID, filter)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, exit.ID, got[0].ID)
		assert.Equal(t, births.ID, got[2].ID)

		filter.Filters["type"] = "entry"
		total, err := repo.CountByFarm(ctx, farmID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("all by farm feeds herd totals", func(t *testing.T) {
		all, err := repo.FindAllByFarm(ctx, farmID)
		require.NoError(t, err)
		totals := farm.ComputeHerdTotals(all)
		assert.Equal(t, 7, totals.Total)
	})

	t.Run("sale exits are found and deleted by sale", func(t *testing.T) {
		linked, err := repo.FindBySale(ctx, saleID)
		require.NoError(t, err)
		require.Len(t, linked, 1)
		require.NotNil(t, linked[0].SaleID)
		assert.Equal(t, saleID, *linked[0].SaleID)
		assert.Equal(t, "venta", linked[0].Reason)

		require.NoError(t, repo.DeleteBySale(ctx, saleID))
		require.NoError(t, repo.DeleteBySale(ctx, saleID))
		_, err = repo.FindByID(ctx, exit.ID)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("delete of unknown movement is not found", func(t *testing.T) {
		assert.True(t, shared.IsNotFound(repo.Delete(ctx, uuid.New())))
		require.NoError(t, repo.Delete(ctx, elsewhere.ID))
	})
}

func TestGormWarehouseMovementRepository_FindForStock_Query(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormWarehouseMovementRepository(db.DB)

	farmID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "warehouse_movements" WHERE farm_id = \$1 ORDER BY occurred_at ASC`).
		WithArgs(farmID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product", "direction", "quantity"}).
			AddRow(uuid.New(), "Sal mineralizada", "in", "10"))

	got, err := repo.FindForStock(context.Background(), &farmID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWarehouseMovementRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWarehouseMovementRepository(newSQLiteDB(t))

	farmID, saleID := uuid.New(), uuid.New()
	received := newTestSupplyMovement(t, &farmID, warehouse.DirectionIn, "Sal mineralizada", "10", movementDay)
	central := newTestSupplyMovement(t, nil, warehouse.DirectionIn, "Melaza", "4.5", movementDay)
	require.NoError(t, repo.Save(ctx, received))
	require.NoError(t, repo.Save(ctx, central))

	consumed, err := warehouse.NewSaleConsumption("user-1", farmID, saleID,
		warehouse.SupplyLine{Product: "Sal mineralizada", Quantity: decimal.NewFromInt(2), Unit: "bulto"}, movementDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.NoError(t, repo.SaveBatch(ctx, []*warehouse.Movement{consumed}))
	require.NoError(t, repo.SaveBatch(ctx, nil))

	t.Run("round-trips decimals and optional farm", func(t *testing.T) {
		got, err := repo.FindByID(ctx, central.ID)
		require.NoError(t, err)
		assert.Nil(t, got.FarmID)
		assert.True(t, got.Quantity.Equal(decimal.RequireFromString("4.5")))
		assert.True(t, got.UnitCost.Equal(decimal.NewFromInt(85000)))
	})

	t.Run("list filters by farm and direction", func(t *testing.T) {
		filter := shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{"farm_id": farmID, "direction": "out"}}
		got, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, consumed.ID, got[0].ID)

		total, err := repo.Count(ctx, shared.Filter{Search: "sal"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("stock per farm nets consumption", func(t *testing.T) {
		movements, err := repo.FindForStock(ctx, &farmID)
		require.NoError(t, err)
		require.Len(t, movements, 2)
		levels := warehouse.ComputeStockLevels(movements)
		require.Len(t, levels, 1)
		assert.True(t, levels[0].Balance.Equal(decimal.NewFromInt(8)))

		all, err := repo.FindForStock(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete by sale removes consumption only", func(t *testing.T) {
		linked, err := repo.FindBySale(ctx, saleID)
		require.NoError(t, err)
		require.Len(t, linked, 1)

		require.NoError(t, repo.DeleteBySale(ctx, saleID))
		total, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}
