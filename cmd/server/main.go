package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/bonitoviento/backend/docs"
	agendaapp "github.com/bonitoviento/backend/internal/application/agenda"
	draftapp "github.com/bonitoviento/backend/internal/application/draft"
	farmapp "github.com/bonitoviento/backend/internal/application/farm"
	tradeapp "github.com/bonitoviento/backend/internal/application/trade"
	warehouseapp "github.com/bonitoviento/backend/internal/application/warehouse"
	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/auth"
	"github.com/bonitoviento/backend/internal/infrastructure/cache"
	"github.com/bonitoviento/backend/internal/infrastructure/config"
	"github.com/bonitoviento/backend/internal/infrastructure/docstore"
	"github.com/bonitoviento/backend/internal/infrastructure/logger"
	"github.com/bonitoviento/backend/internal/infrastructure/memstore"
	"github.com/bonitoviento/backend/internal/infrastructure/persistence"
	"github.com/bonitoviento/backend/internal/infrastructure/telemetry"
	"github.com/bonitoviento/backend/internal/interfaces/http/handler"
	"github.com/bonitoviento/backend/internal/interfaces/http/middleware"
	"github.com/bonitoviento/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//	@title			Bonito Viento Backend API
//	@version		1.0
//	@description	Farm, bodega, sale and auction records with the derived audit agenda
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Bonito Viento backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("agenda_store", cfg.Agenda.Store),
		zap.String("draft_store", cfg.Draft.Store),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics export", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	poolMetrics, err := telemetry.RegisterDBPoolMetrics(meterProvider.Meter(telemetry.TracerName), sqlDB)
	if err != nil {
		log.Fatal("Failed to register pool metrics", zap.Error(err))
	}
	defer func() { _ = poolMetrics.Unregister() }()

	checks := map[string]handler.HealthCheck{"database": sqlDB.PingContext}
	loc := agenda.LoadLocation(cfg.Agenda.Timezone)

	events, closeEvents, err := openEventStore(ctx, cfg, db.DB, loc, checks)
	if err != nil {
		log.Fatal("Failed to open agenda event store", zap.Error(err))
	}
	defer closeEvents()

	drafts, closeDrafts, err := openDraftRepository(ctx, cfg, checks)
	if err != nil {
		log.Fatal("Failed to open draft store", zap.Error(err))
	}
	defer closeDrafts()

	registry := telemetry.NewRegistry()
	clock := shared.SystemClock{}
	emitter := agendaapp.NewEmitter(events, log,
		agendaapp.WithRecorder(telemetry.NewEmissionMetrics(registry)),
		agendaapp.WithClock(clock),
	)

	farmRepo := persistence.NewGormFarmRepository(db.DB)
	livestockRepo := persistence.NewGormLivestockMovementRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseMovementRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	auctionRepo := persistence.NewGormAuctionMovementRepository(db.DB)

	handlers := router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name, version, checks),
		Farm: handler.NewFarmHandler(
			farmapp.NewFarmService(farmRepo, livestockRepo, emitter),
			farmapp.NewLivestockService(farmRepo, livestockRepo, emitter),
		),
		Warehouse: handler.NewWarehouseHandler(warehouseapp.NewWarehouseService(warehouseRepo, farmRepo, emitter)),
		Sale: handler.NewSaleHandler(
			tradeapp.NewSaleService(persistence.NewGormTransactionScope(db.DB), saleRepo, farmRepo, emitter,
				tradeapp.WithDraftRepository(drafts),
				tradeapp.WithSaleLogger(log),
			),
			draftapp.NewDraftService(drafts, log),
		),
		Auction: handler.NewAuctionHandler(tradeapp.NewAuctionService(auctionRepo, farmRepo, emitter)),
		Agenda: handler.NewAgendaHandler(
			agendaapp.NewEventService(events, clock),
			agendaapp.NewScheduleService(events, clock),
			agendaapp.NewFulfillmentService(events, clock, log),
			handler.AgendaHandlerConfig{Location: loc, UpcomingDays: cfg.Agenda.UpcomingDays},
		),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cors := middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}
	engine := router.NewEngine(router.EngineConfig{
		ServiceName:    serviceName,
		Logger:         log,
		CORS:           cors,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		HTTPMetrics:    telemetry.NewHTTPMetrics(registry),
		MetricsHandler: telemetry.MetricsHandler(registry),
		Swagger:        cfg.HTTP.SwaggerEnabled,
	})
	router.Mount(engine, auth.NewVerifier(cfg.Auth), log, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openEventStore selects the agenda backend and wraps it with tracing.
// Backends with their own connection add a health check.
func openEventStore(ctx context.Context, cfg *config.Config, db *gorm.DB, loc *time.Location, checks map[string]handler.HealthCheck) (agenda.EventStore, func(), error) {
	switch cfg.Agenda.Store {
	case config.AgendaStoreMongo:
		client, err := docstore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		store := docstore.NewEventStore(client, cfg.Mongo.Database, cfg.Mongo.Collection, loc)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return telemetry.NewTracedEventStore(store, config.AgendaStoreMongo), closeFn, nil
	case config.AgendaStoreMemory:
		return telemetry.NewTracedEventStore(memstore.NewEventStore(loc), config.AgendaStoreMemory), func() {}, nil
	default:
		store := persistence.NewGormEventStore(db, loc)
		return telemetry.NewTracedEventStore(store, config.AgendaStorePostgres), func() {}, nil
	}
}

// openDraftRepository selects the draft backend
func openDraftRepository(ctx context.Context, cfg *config.Config, checks map[string]handler.HealthCheck) (draft.Repository, func(), error) {
	if cfg.Draft.Store == config.DraftStoreMemory {
		return cache.NewInMemoryDraftRepository(cfg.Draft.TTL), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return cache.NewRedisDraftRepository(client, cfg.Draft.KeyPrefix, cfg.Draft.TTL), func() { _ = client.Close() }, nil
}
