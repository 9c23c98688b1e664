package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFarm(t *testing.T, name, location string) *farm.Farm {
	t.Helper()
	f, err := farm.NewFarm("user-1", farm.FarmParams{
		Name:         name,
		Location:     location,
		Owner:        "Inversiones Bonito Viento SAS",
		AreaHectares: decimal.RequireFromString("120.5"),
	})
	require.NoError(t, err)
	return f
}

func TestGormFarmRepository_FindByID_Query(t *testing.T) {
	t.Run("finds existing farm", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db.DB)

		farmID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "location", "version", "area_hectares"}).
			AddRow(farmID, "La Esperanza", "Puerto López", 3, "120.5")

		mock.ExpectQuery(`SELECT \* FROM "farms" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(farmID, 1).
			WillReturnRows(rows)

		f, err := repo.FindByID(context.Background(), farmID)

		require.NoError(t, err)
		assert.Equal(t, farmID, f.ID)
		assert.Equal(t, "La Esperanza", f.Name)
		assert.Equal(t, 3, f.Version)
		assert.True(t, f.AreaHectares.Equal(decimal.RequireFromString("120.5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db.DB)

		farmID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "farms" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(farmID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		f, err := repo.FindByID(context.Background(), farmID)

		assert.Nil(t, f)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFarmRepository_FindAll_Query(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormFarmRepository(db.DB)

	mock.ExpectQuery(`SELECT \* FROM "farms" WHERE \(LOWER\(name\) LIKE \$1 OR LOWER\(location\) LIKE \$2 OR LOWER\(owner\) LIKE \$3\) ORDER BY location ASC,name ASC LIMIT \$4 OFFSET \$5`).
		WithArgs("%meta%", "%meta%", "%meta%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	farms, err := repo.FindAll(context.Background(), shared.Filter{
		Page:     2,
		PageSize: 10,
		OrderBy:  "location",
		OrderDir: "asc",
		Search:   " Meta ",
	})

	require.NoError(t, err)
	assert.Empty(t, farms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFarmRepository_Delete_Query(t *testing.T) {
	t.Run("deletes existing farm", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db.DB)

		farmID := uuid.New()
		mock.ExpectExec(`DELETE FROM "farms" WHERE id = \$1`).
			WithArgs(farmID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), farmID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db.DB)

		farmID := uuid.New()
		mock.ExpectExec(`DELETE FROM "farms" WHERE id = \$1`).
			WithArgs(farmID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, shared.ErrNotFound, repo.Delete(context.Background(), farmID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFarmRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormFarmRepository(newSQLiteDB(t))

	esperanza := newTestFarm(t, "La Esperanza", "Puerto López, Meta")
	palmar := newTestFarm(t, "El Palmar", "Villavicencio, Meta")
	ceiba := newTestFarm(t, "La Ceiba", "Yopal, Casanare")
	for _, f := range []*farm.Farm{esperanza, palmar, ceiba} {
		require.NoError(t, repo.Save(ctx, f))
	}

	t.Run("round-trips every field", func(t *testing.T) {
		got, err := repo.FindByID(ctx, esperanza.ID)
		require.NoError(t, err)
		assert.Equal(t, "La Esperanza", got.Name)
		assert.Equal(t, "Puerto López, Meta", got.Location)
		assert.Equal(t, "Inversiones Bonito Viento SAS", got.Owner)
		assert.Equal(t, "user-1", got.CreatedBy)
		assert.Equal(t, 1, got.Version)
		assert.True(t, got.AreaHectares.Equal(decimal.RequireFromString("120.5")))
	})

	t.Run("search is case-insensitive and counts match", func(t *testing.T) {
		filter := shared.Filter{Search: "META", PageSize: 10, OrderBy: "name", OrderDir: "asc"}
		farms, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, farms, 2)
		assert.Equal(t, "El Palmar", farms[0].Name)
		assert.Equal(t, "La Esperanza", farms[1].Name)

		total, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("save updates an existing farm", func(t *testing.T) {
		require.NoError(t, palmar.Update(farm.FarmParams{
			Name:         "El Palmar",
			Location:     "Restrepo, Meta",
			AreaHectares: decimal.NewFromInt(80),
		}))
		require.NoError(t, repo.Save(ctx, palmar))

		got, err := repo.FindByID(ctx, palmar.ID)
		require.NoError(t, err)
		assert.Equal(t, "Restrepo, Meta", got.Location)
		assert.Equal(t, 2, got.Version)

		total, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("delete removes the farm", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ceiba.ID))
		_, err := repo.FindByID(ctx, ceiba.ID)
		assert.True(t, shared.IsNotFound(err))
		assert.True(t, shared.IsNotFound(repo.Delete(ctx, ceiba.ID)))
	})
}
