package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	draftapp "github.com/bonitoviento/backend/internal/application/draft"
	tradeapp "github.com/bonitoviento/backend/internal/application/trade"
	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale endpoints and the sale form draft
type SaleHandler struct {
	BaseHandler
	sales  *tradeapp.SaleService
	drafts *draftapp.DraftService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *tradeapp.SaleService, drafts *draftapp.DraftService) *SaleHandler {
	return &SaleHandler{sales: sales, drafts: drafts}
}

// Create registers a sale together with its herd exit and bodega consumption
// @ID			createSale
//
//	@Summary		Register a sale
//	@Description	Creates the sale with its herd exit and bodega outputs in one transaction
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			request	body	tradeapp.CreateSaleRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[tradeapp.SaleResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID returns a sale
// @ID			getSale
//
//	@Summary		Get a sale
//	@Tags			sales
//	@Produce		json
//	@Param			id	path	string	true	"Sale ID"	format(uuid)
//	@Success		200	{object}	APIResponse[tradeapp.SaleResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.sales.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List returns a page of sales
// @ID			listSales
//
//	@Summary		List sales
//	@Tags			sales
//	@Produce		json
//	@Param			search	query	string	false	"Search term (buyer, notes)"
//	@Param			farm_id	query	string	false	"Farm ID"	format(uuid)
//	@Param			from	query	string	false	"First sale date"	format(date)
//	@Param			to	query	string	false	"Last sale date"	format(date)
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Success		200	{object}	APIResponse[[]tradeapp.SaleResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	sales, total, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, sales, total, page, pageSize)
}

// Update changes the commercial terms of a sale
// @ID			updateSale
//
//	@Summary		Update a sale
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Sale ID"	format(uuid)
//	@Param			request	body	tradeapp.UpdateSaleRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[tradeapp.SaleResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.sales.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes a sale and the movements it generated
// @ID			deleteSale
//
//	@Summary		Delete a sale
//	@Tags			sales
//	@Produce		json
//	@Param			id	path	string	true	"Sale ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SaveDraft stores the caller's in-progress sale form. The body is kept
// verbatim; it only has to be a JSON object.
// @ID			saveSaleDraft
//
//	@Summary		Save the sale form draft
//	@Tags			sales
//	@Produce		json
//	@Param			request	body	object	true	"Any JSON object"
//	@Success		200	{object}	APIResponse[draftapp.DraftResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		413	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/draft [put]
func (h *SaleHandler) SaveDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooBig, "Draft exceeds the request size limit")
			return
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Could not read request body")
		return
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Draft must be a JSON object")
		return
	}

	saved, err := h.drafts.Save(c.Request.Context(), actor, draft.FormSale, json.RawMessage(body))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, saved)
}

// LoadDraft returns the caller's in-progress sale form
// @ID			getSaleDraft
//
//	@Summary		Get the sale form draft
//	@Tags			sales
//	@Produce		json
//	@Success		200	{object}	APIResponse[draftapp.DraftResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/draft [get]
func (h *SaleHandler) LoadDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	saved, err := h.drafts.Load(c.Request.Context(), actor, draft.FormSale)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, saved)
}

// DiscardDraft drops the caller's in-progress sale form
// @ID			deleteSaleDraft
//
//	@Summary		Discard the sale form draft
//	@Tags			sales
//	@Produce		json
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sales/draft [delete]
func (h *SaleHandler) DiscardDraft(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.drafts.Discard(c.Request.Context(), actor, draft.FormSale); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
