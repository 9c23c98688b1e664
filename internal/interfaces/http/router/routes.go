package router

import (
	"github.com/bonitoviento/backend/internal/interfaces/http/handler"
	"github.com/bonitoviento/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	System    *handler.SystemHandler
	Farm      *handler.FarmHandler
	Warehouse *handler.WarehouseHandler
	Sale      *handler.SaleHandler
	Auction   *handler.AuctionHandler
	Agenda    *handler.AgendaHandler
}

// Mount registers the public endpoints on engine and every domain route
// under /api/v1 behind bearer authentication.
func Mount(engine *gin.Engine, verifier middleware.TokenVerifier, log *zap.Logger, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/api/v1/system/ping", h.System.Ping)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.Authenticate(verifier, log))
	for _, group := range h.domainGroups() {
		r.Register(group)
	}
	r.Setup()
}

func (h Handlers) domainGroups() []*DomainGroup {
	farms := NewDomainGroup("farm", "/farms")
	farms.POST("", h.Farm.Create).
		GET("", h.Farm.List).
		GET("/:id", h.Farm.GetByID).
		PUT("/:id", h.Farm.Update).
		DELETE("/:id", h.Farm.Delete).
		GET("/:id/herd", h.Farm.Herd).
		POST("/:id/livestock", h.Farm.RecordLivestock).
		GET("/:id/livestock", h.Farm.ListLivestock)

	livestock := NewDomainGroup("livestock", "/livestock")
	livestock.GET("/:id", h.Farm.GetLivestock).
		PUT("/:id", h.Farm.UpdateLivestock).
		DELETE("/:id", h.Farm.DeleteLivestock)

	warehouse := NewDomainGroup("warehouse", "/warehouse")
	warehouse.GET("/stock", h.Warehouse.Stock)
	warehouse.Group("movements", "/movements").
		POST("", h.Warehouse.Create).
		GET("", h.Warehouse.List).
		GET("/:id", h.Warehouse.GetByID).
		PUT("/:id", h.Warehouse.Update).
		DELETE("/:id", h.Warehouse.Delete)

	sales := NewDomainGroup("sale", "/sales")
	sales.PUT("/draft", h.Sale.SaveDraft).
		GET("/draft", h.Sale.LoadDraft).
		DELETE("/draft", h.Sale.DiscardDraft).
		POST("", h.Sale.Create).
		GET("", h.Sale.List).
		GET("/:id", h.Sale.GetByID).
		PUT("/:id", h.Sale.Update).
		DELETE("/:id", h.Sale.Delete)

	auctions := NewDomainGroup("auction", "/auctions")
	auctions.GET("/balance", h.Auction.Balance)
	auctions.Group("movements", "/movements").
		POST("", h.Auction.Create).
		GET("", h.Auction.List).
		GET("/:id", h.Auction.GetByID).
		PUT("/:id", h.Auction.Update).
		DELETE("/:id", h.Auction.Delete)

	agenda := NewDomainGroup("agenda", "/agenda")
	agenda.GET("/month", h.Agenda.Month).
		GET("/day", h.Agenda.Day).
		GET("/pending", h.Agenda.Pending).
		GET("/fulfilled", h.Agenda.Fulfilled).
		GET("/overdue", h.Agenda.Overdue).
		GET("/upcoming", h.Agenda.Upcoming).
		GET("/history/:kind/:id", h.Agenda.History)
	agenda.Group("events", "/events").
		POST("", h.Agenda.Create).
		GET("", h.Agenda.List).
		GET("/:id", h.Agenda.GetByID).
		POST("/:id/fulfill", h.Agenda.Fulfill)

	return []*DomainGroup{farms, livestock, warehouse, sales, auctions, agenda}
}
