package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestEmissionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEmissionMetrics(reg)

	m.EventsEmitted(agenda.KindSale, 1)
	m.EventsEmitted(agenda.KindWarehouse, 2)
	m.EventsEmitted(agenda.KindWarehouse, 1)
	m.EmissionFailed(agenda.KindExit, "persist")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Emitted.WithLabelValues("sale")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Emitted.WithLabelValues("warehouse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failed.WithLabelValues("exit", "persist")))
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/farms/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/farms/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/farms/def", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/api/v1/farms/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetricsHandler(t *testing.T) {
	reg := NewRegistry()
	NewEmissionMetrics(reg).EventsEmitted(agenda.KindFarm, 1)

	w := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `bonito_agenda_events_emitted_total{kind="farm"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(7)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	pool, err := RegisterDBPoolMetrics(provider.Meter("test"), db)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = m.Data
		}
	}
	require.Contains(t, names, "db_pool_connections")
	require.Contains(t, names, "db_pool_wait_total")
	maxGauge, ok := names["db_pool_connections_max"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, maxGauge.DataPoints, 1)
	assert.Equal(t, int64(7), maxGauge.DataPoints[0].Value)

	assert.NoError(t, pool.Unregister())
}
