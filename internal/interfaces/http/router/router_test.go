package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouter_SetupAppliesAPIMiddleware(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	farms := NewDomainGroup("farm", "/farms")
	farms.GET("", func(c *gin.Context) { c.String(http.StatusOK, "farms") })
	r.Register(farms).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/farms").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("agenda", "/agenda")
		assert.Equal(t, "agenda", g.Name())
		assert.Equal(t, "/agenda", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("sale", "/sales")
		g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "get") }).
			POST("", func(c *gin.Context) { c.String(http.StatusCreated, "created") }).
			PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, "updated") }).
			DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
			status int
		}{
			{http.MethodGet, "/api/v1/sales/42", http.StatusOK},
			{http.MethodPost, "/api/v1/sales", http.StatusCreated},
			{http.MethodPut, "/api/v1/sales/42", http.StatusOK},
			{http.MethodDelete, "/api/v1/sales/42", http.StatusNoContent},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.status, serve(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("static segments coexist with parameters", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("sale", "/sales")
		g.GET("/draft", func(c *gin.Context) { c.String(http.StatusOK, "draft") }).
			GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "sale "+c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "draft", serve(engine, http.MethodGet, "/api/v1/sales/draft").Body.String())
		assert.Equal(t, "sale 7", serve(engine, http.MethodGet, "/api/v1/sales/7").Body.String())
	})

	t.Run("group middleware and subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("warehouse", "/warehouse")
		g.Use(func(c *gin.Context) {
			c.Header("X-Domain", "warehouse")
			c.Next()
		})
		g.GET("/stock", func(c *gin.Context) { c.String(http.StatusOK, "stock") })
		g.Group("movements", "/movements").
			GET("", func(c *gin.Context) { c.String(http.StatusOK, "movements") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/warehouse/movements")
		assert.Equal(t, "movements", w.Body.String())
		assert.Equal(t, "warehouse", w.Header().Get("X-Domain"))
		assert.Equal(t, "stock", serve(engine, http.MethodGet, "/api/v1/warehouse/stock").Body.String())
	})
}
