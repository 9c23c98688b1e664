package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans; never in production
	SlowQueryThresh time.Duration
	DBName          string
}

// DBTracingPlugin registers otelgorm plus slow-query and error annotation callbacks
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type startTimeKey struct{}

// Register installs the plugin on db. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	// annotations must run before otelgorm's after hooks end the span
	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("bonito_timing:before_create", markStart),
		cb.Query().Before("gorm:query").Register("bonito_timing:before_query", markStart),
		cb.Update().Before("gorm:update").Register("bonito_timing:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("bonito_timing:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("bonito_timing:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("bonito_timing:before_raw", markStart),
		cb.Create().After("gorm:create").Before("otel:after:create").Register("bonito_timing:after_create", p.annotateSpan),
		cb.Query().After("gorm:query").Before("otel:after:query").Register("bonito_timing:after_query", p.annotateSpan),
		cb.Update().After("gorm:update").Before("otel:after:update").Register("bonito_timing:after_update", p.annotateSpan),
		cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("bonito_timing:after_delete", p.annotateSpan),
		cb.Row().After("gorm:row").Before("otel:after:row").Register("bonito_timing:after_row", p.annotateSpan),
		cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("bonito_timing:after_raw", p.annotateSpan),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	p.logger.Info("database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, startTimeKey{}, time.Now())
	}
}

// annotateSpan adds table, row count, error status and the slow-query flag
// to the span otelgorm opened for the statement.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
