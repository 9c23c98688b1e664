package router

import (
	"net/http"

	"github.com/bonitoviento/backend/internal/infrastructure/logger"
	"github.com/bonitoviento/backend/internal/infrastructure/telemetry"
	"github.com/bonitoviento/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig holds the settings of the global middleware stack
type EngineConfig struct {
	ServiceName    string
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	// HTTPMetrics records request counts and latency; nil disables it
	HTTPMetrics *telemetry.HTTPMetrics
	// MetricsHandler is served at /metrics when set
	MetricsHandler http.Handler
	// Swagger serves the registered API docs at /swagger/*any
	Swagger bool
}

// NewEngine creates a gin engine with the global middleware stack applied in order:
// recovery, request ID, access log, tracing, metrics, CORS, body limit.
func NewEngine(cfg EngineConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	if cfg.ServiceName != "" {
		engine.Use(middleware.Tracing(cfg.ServiceName))
		engine.Use(middleware.SpanAnnotator())
	}
	if cfg.HTTPMetrics != nil {
		engine.Use(cfg.HTTPMetrics.Middleware())
	}
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}
	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return engine
}
