package handler

import (
	farmapp "github.com/bonitoviento/backend/internal/application/farm"
	"github.com/gin-gonic/gin"
)

// FarmHandler handles farm and herd endpoints
type FarmHandler struct {
	BaseHandler
	farms     *farmapp.FarmService
	livestock *farmapp.LivestockService
}

// NewFarmHandler creates a new FarmHandler
func NewFarmHandler(farms *farmapp.FarmService, livestock *farmapp.LivestockService) *FarmHandler {
	return &FarmHandler{farms: farms, livestock: livestock}
}

// Create registers a farm
// @ID			createFarm
//
//	@Summary		Register a farm
//	@Tags			farms
//	@Accept			json
//	@Produce		json
//	@Param			request	body	farmapp.CreateFarmRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[farmapp.FarmResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms [post]
func (h *FarmHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req farmapp.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	farm, err := h.farms.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, farm)
}

// GetByID returns a farm
// @ID			getFarm
//
//	@Summary		Get a farm
//	@Tags			farms
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Success		200	{object}	APIResponse[farmapp.FarmResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id} [get]
func (h *FarmHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	farm, err := h.farms.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farm)
}

// List returns a page of farms
// @ID			listFarms
//
//	@Summary		List farms
//	@Tags			farms
//	@Produce		json
//	@Param			search	query	string	false	"Search term (name, location, owner)"
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Param			order_by	query	string	false	"Order by field"	Enums(name, location, created_at)
//	@Param			order_dir	query	string	false	"Order direction"	Enums(asc, desc)
//	@Success		200	{object}	APIResponse[[]farmapp.FarmResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms [get]
func (h *FarmHandler) List(c *gin.Context) {
	var filter farmapp.FarmListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	farms, total, err := h.farms.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, farms, total, page, pageSize)
}

// Update changes a farm
// @ID			updateFarm
//
//	@Summary		Update a farm
//	@Tags			farms
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Param			request	body	farmapp.UpdateFarmRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[farmapp.FarmResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id} [put]
func (h *FarmHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req farmapp.UpdateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	farm, err := h.farms.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farm)
}

// Delete removes a farm without livestock movements
// @ID			deleteFarm
//
//	@Summary		Delete a farm
//	@Description	A farm that still has livestock movements cannot be deleted
//	@Tags			farms
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id} [delete]
func (h *FarmHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.farms.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Herd returns the head count per category
// @ID			getFarmHerd
//
//	@Summary		Get herd totals of a farm
//	@Tags			farms
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Success		200	{object}	APIResponse[farmapp.HerdSummaryResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id}/herd [get]
func (h *FarmHandler) Herd(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.farms.HerdSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RecordLivestock records a herd entry or exit on a farm
// @ID			recordLivestock
//
//	@Summary		Record a herd entry or exit
//	@Tags			livestock
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Param			request	body	farmapp.RecordLivestockRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[farmapp.LivestockResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id}/livestock [post]
func (h *FarmHandler) RecordLivestock(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	farmID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req farmapp.RecordLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	movement, err := h.livestock.Record(c.Request.Context(), actor, farmID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// ListLivestock returns a farm's herd movements
// @ID			listLivestock
//
//	@Summary		List herd movements of a farm
//	@Tags			livestock
//	@Produce		json
//	@Param			id	path	string	true	"Farm ID"	format(uuid)
//	@Param			type	query	string	false	"Movement direction"	Enums(entry, exit)
//	@Param			category	query	string	false	"Animal category"
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Success		200	{object}	APIResponse[[]farmapp.LivestockResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/farms/{id}/livestock [get]
func (h *FarmHandler) ListLivestock(c *gin.Context) {
	farmID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var filter farmapp.LivestockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	movements, total, err := h.livestock.ListByFarm(c.Request.Context(), farmID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, movements, total, page, pageSize)
}

// GetLivestock returns one herd movement
// @ID			getLivestock
//
//	@Summary		Get a herd movement
//	@Tags			livestock
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		200	{object}	APIResponse[farmapp.LivestockResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/livestock/{id} [get]
func (h *FarmHandler) GetLivestock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	movement, err := h.livestock.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// UpdateLivestock changes a herd movement not owned by a sale
// @ID			updateLivestock
//
//	@Summary		Update a herd movement
//	@Description	Movements created by a sale are changed through the sale
//	@Tags			livestock
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Param			request	body	farmapp.RecordLivestockRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[farmapp.LivestockResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/livestock/{id} [put]
func (h *FarmHandler) UpdateLivestock(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req farmapp.RecordLivestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	movement, err := h.livestock.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// DeleteLivestock removes a herd movement not owned by a sale
// @ID			deleteLivestock
//
//	@Summary		Delete a herd movement
//	@Description	Movements created by a sale are removed through the sale
//	@Tags			livestock
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/livestock/{id} [delete]
func (h *FarmHandler) DeleteLivestock(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.livestock.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
