package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedFarm struct {
	ID   uint
	Name string
}

func newTracedDB(t *testing.T, cfg DBTracingConfig) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&tracedFarm{}))

	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	recorder := installRecorder(t)
	db := newTracedDB(t, DBTracingConfig{Enabled: false})

	require.NoError(t, db.Create(&tracedFarm{Name: "El Bonito"}).Error)

	assert.Empty(t, recorder.Ended())
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	recorder := installRecorder(t)
	db := newTracedDB(t, DBTracingConfig{Enabled: true, DBName: "bonito"})
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&tracedFarm{Name: "El Bonito"}).Error)
	var farms []tracedFarm
	require.NoError(t, db.WithContext(ctx).Find(&farms).Error)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	var sawTable bool
	for _, s := range spans {
		for _, attr := range s.Attributes() {
			if attr == attribute.String("db.sql.table", "traced_farms") {
				sawTable = true
			}
		}
	}
	assert.True(t, sawTable, "spans should carry the table name")
}

func TestDBTracingPlugin_FlagsSlowQueries(t *testing.T) {
	recorder := installRecorder(t)
	db := newTracedDB(t, DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond})

	var farms []tracedFarm
	require.NoError(t, db.WithContext(context.Background()).Find(&farms).Error)

	var slow bool
	for _, s := range recorder.Ended() {
		for _, attr := range s.Attributes() {
			if attr == attribute.Bool("db.slow_query", true) {
				slow = true
			}
		}
	}
	assert.True(t, slow)
}
