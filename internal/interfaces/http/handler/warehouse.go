package handler

import (
	warehouseapp "github.com/bonitoviento/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WarehouseHandler handles bodega movement endpoints
type WarehouseHandler struct {
	BaseHandler
	service *warehouseapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(service *warehouseapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

// Create records a bodega movement
// @ID			createWarehouseMovement
//
//	@Summary		Record a bodega movement
//	@Tags			warehouse
//	@Accept			json
//	@Produce		json
//	@Param			request	body	warehouseapp.RecordMovementRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[warehouseapp.MovementResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/movements [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req warehouseapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	movement, err := h.service.Record(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// GetByID returns a bodega movement
// @ID			getWarehouseMovement
//
//	@Summary		Get a bodega movement
//	@Tags			warehouse
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		200	{object}	APIResponse[warehouseapp.MovementResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/movements/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	movement, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// List returns a page of bodega movements
// @ID			listWarehouseMovements
//
//	@Summary		List bodega movements
//	@Tags			warehouse
//	@Produce		json
//	@Param			search	query	string	false	"Search term (product, notes)"
//	@Param			farm_id	query	string	false	"Farm ID"	format(uuid)
//	@Param			direction	query	string	false	"Movement direction"	Enums(in, out)
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Success		200	{object}	APIResponse[[]warehouseapp.MovementResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/movements [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter warehouseapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	movements, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, movements, total, page, pageSize)
}

// Update changes a bodega movement not owned by a sale
// @ID			updateWarehouseMovement
//
//	@Summary		Update a bodega movement
//	@Tags			warehouse
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Param			request	body	warehouseapp.RecordMovementRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[warehouseapp.MovementResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/movements/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req warehouseapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	movement, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// Delete removes a bodega movement not owned by a sale
// @ID			deleteWarehouseMovement
//
//	@Summary		Delete a bodega movement
//	@Tags			warehouse
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/movements/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stock returns the balance per product, optionally for one farm
// @ID			getWarehouseStock
//
//	@Summary		Get stock per product
//	@Tags			warehouse
//	@Produce		json
//	@Param			farm_id	query	string	false	"Farm ID; all farms when absent"	format(uuid)
//	@Success		200	{object}	APIResponse[[]warehouseapp.StockLevelResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouse/stock [get]
func (h *WarehouseHandler) Stock(c *gin.Context) {
	var farmID *uuid.UUID
	if raw := c.Query("farm_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid farm_id format")
			return
		}
		farmID = &id
	}

	levels, err := h.service.StockSummary(c.Request.Context(), farmID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}
