package handler

import (
	tradeapp "github.com/bonitoviento/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// AuctionHandler handles auction movement endpoints
type AuctionHandler struct {
	BaseHandler
	service *tradeapp.AuctionService
}

// NewAuctionHandler creates a new AuctionHandler
func NewAuctionHandler(service *tradeapp.AuctionService) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// Create records an auction purchase or sale
// @ID			createAuctionMovement
//
//	@Summary		Record an auction purchase or sale
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Param			request	body	tradeapp.RecordAuctionRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[tradeapp.AuctionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/movements [post]
func (h *AuctionHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req tradeapp.RecordAuctionRequest
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

// GetByID returns an auction movement
// @ID			getAuctionMovement
//
//	@Summary		Get an auction movement
//	@Tags			auctions
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		200	{object}	APIResponse[tradeapp.AuctionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/movements/{id} [get]
func (h *AuctionHandler) GetByID(c *gin.Context) {
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

// List returns a page of auction movements
// @ID			listAuctionMovements
//
//	@Summary		List auction movements
//	@Tags			auctions
//	@Produce		json
//	@Param			search	query	string	false	"Search term"
//	@Param			auction_name	query	string	false	"Auction name"
//	@Param			type	query	string	false	"Movement type"	Enums(purchase, sale)
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Success		200	{object}	APIResponse[[]tradeapp.AuctionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/movements [get]
func (h *AuctionHandler) List(c *gin.Context) {
	var filter tradeapp.AuctionListFilter
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

// Update changes an auction movement
// @ID			updateAuctionMovement
//
//	@Summary		Update an auction movement
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Param			request	body	tradeapp.RecordAuctionRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[tradeapp.AuctionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/movements/{id} [put]
func (h *AuctionHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.RecordAuctionRequest
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

// Delete removes an auction movement
// @ID			deleteAuctionMovement
//
//	@Summary		Delete an auction movement
//	@Tags			auctions
//	@Produce		json
//	@Param			id	path	string	true	"Movement ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/movements/{id} [delete]
func (h *AuctionHandler) Delete(c *gin.Context) {
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

// Balance summarizes auction cash flow, optionally for one auction
// @ID			getAuctionBalance
//
//	@Summary		Get the auction balance
//	@Tags			auctions
//	@Produce		json
//	@Param			auction_name	query	string	false	"Auction name; every auction when absent"
//	@Success		200	{object}	APIResponse[tradeapp.AuctionBalanceResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auctions/balance [get]
func (h *AuctionHandler) Balance(c *gin.Context) {
	balance, err := h.service.Balance(c.Request.Context(), c.Query("auction_name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}
