//go:build integration

package persistence

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/agenda/agendatest"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/migration"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresDB starts a PostgreSQL container and applies the SQL migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("bonito_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		NowFunc:                NowUTC,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrator, err := migration.New(sqlDB, findMigrationsPath(t), nil)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(), "Failed to run migrations")
	return db
}

func findMigrationsPath(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir := filepath.Dir(filename)
	for i := 0; i < 6; i++ {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("migrations directory not found")
	return ""
}

func TestPostgres_EventStore(t *testing.T) {
	db := newPostgresDB(t)
	agendatest.Run(t, func(t *testing.T) agenda.EventStore {
		require.NoError(t, db.Exec("TRUNCATE TABLE audit_events").Error)
		return NewGormEventStore(db, time.UTC)
	})
}

func TestPostgres_SaleRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)
	repo := NewGormSaleRepository(db)

	sale := newTestSale(t, uuid.New(), "Frigorífico Guadalupe", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, sale))

	got, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.SupplyLines, 2)
	assert.True(t, sale.TotalAmount().Equal(got.TotalAmount()))

	total, err := repo.Count(ctx, shared.Filter{Search: "guadalupe"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
