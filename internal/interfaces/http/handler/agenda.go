package handler

import (
	"strconv"
	"strings"
	"time"

	agendaapp "github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// AgendaHandler serves the calendar, status views and fulfillment of audit events
type AgendaHandler struct {
	BaseHandler
	events       *agendaapp.EventService
	schedule     *agendaapp.ScheduleService
	fulfillment  *agendaapp.FulfillmentService
	loc          *time.Location
	upcomingDays int
}

// AgendaHandlerConfig holds calendar defaults for the agenda endpoints
type AgendaHandlerConfig struct {
	Location     *time.Location
	UpcomingDays int
}

// NewAgendaHandler creates a new AgendaHandler
func NewAgendaHandler(
	events *agendaapp.EventService,
	schedule *agendaapp.ScheduleService,
	fulfillment *agendaapp.FulfillmentService,
	cfg AgendaHandlerConfig,
) *AgendaHandler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = 7
	}
	return &AgendaHandler{
		events:       events,
		schedule:     schedule,
		fulfillment:  fulfillment,
		loc:          cfg.Location,
		upcomingDays: cfg.UpcomingDays,
	}
}

// Create adds a standalone agenda item
// @ID			createAgendaEvent
//
//	@Summary		Add an agenda item
//	@Tags			agenda
//	@Accept			json
//	@Produce		json
//	@Param			request	body	agendaapp.CreateEventRequest	true	"Request body"
//	@Success		201	{object}	APIResponse[agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/events [post]
func (h *AgendaHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req agendaapp.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	event, err := h.events.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// GetByID returns one event
// @ID			getAgendaEvent
//
//	@Summary		Get an agenda event
//	@Tags			agenda
//	@Produce		json
//	@Param			id	path	string	true	"Event ID"	format(uuid)
//	@Success		200	{object}	APIResponse[agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/events/{id} [get]
func (h *AgendaHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	event, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// List returns a page of events filtered by kind, status and date range
// @ID			listAgendaEvents
//
//	@Summary		List agenda events
//	@Tags			agenda
//	@Produce		json
//	@Param			kind	query	[]string	false	"Event kinds"	collectionFormat(multi)
//	@Param			status	query	string	false	"Display status"	Enums(pending, fulfilled, expired)
//	@Param			from	query	string	false	"First occurrence date"	format(date)
//	@Param			to	query	string	false	"Last occurrence date"	format(date)
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(50)	maximum(200)
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/events [get]
func (h *AgendaHandler) List(c *gin.Context) {
	var filter agendaapp.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.schedule.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Month returns every event of a calendar month
// @ID			getAgendaMonth
//
//	@Summary		Get the events of a month
//	@Tags			agenda
//	@Produce		json
//	@Param			year	query	int	true	"Year"
//	@Param			month	query	int	true	"Month"	minimum(1)	maximum(12)
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/month [get]
func (h *AgendaHandler) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "month must be an integer")
		return
	}

	events, err := h.schedule.Month(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Day returns every event of a calendar day
// @ID			getAgendaDay
//
//	@Summary		Get the events of a day
//	@Tags			agenda
//	@Produce		json
//	@Param			date	query	string	true	"Day as YYYY-MM-DD"	format(date)
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/day [get]
func (h *AgendaHandler) Day(c *gin.Context) {
	date, err := time.ParseInLocation(dateLayout, c.Query("date"), h.loc)
	if err != nil {
		h.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}

	events, err := h.schedule.Day(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Pending returns pending events not past due at as_of (now when absent).
// as_of accepts RFC 3339 or a bare date, read as local midnight.
// @ID			getAgendaPending
//
//	@Summary		Get pending events
//	@Tags			agenda
//	@Produce		json
//	@Param			as_of	query	string	false	"RFC 3339 instant or YYYY-MM-DD; now when absent"
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/pending [get]
func (h *AgendaHandler) Pending(c *gin.Context) {
	var asOf *time.Time
	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		t, err := h.parseInstant(raw)
		if err != nil {
			h.BadRequest(c, "as_of must be RFC 3339 or YYYY-MM-DD")
			return
		}
		asOf = &t
	}

	events, err := h.schedule.Pending(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Fulfilled returns fulfilled events
// @ID			getAgendaFulfilled
//
//	@Summary		Get fulfilled events
//	@Tags			agenda
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/fulfilled [get]
func (h *AgendaHandler) Fulfilled(c *gin.Context) {
	events, err := h.schedule.Fulfilled(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Overdue returns pending events whose due date has passed
// @ID			getAgendaOverdue
//
//	@Summary		Get overdue events
//	@Tags			agenda
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/overdue [get]
func (h *AgendaHandler) Overdue(c *gin.Context) {
	events, err := h.schedule.Overdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Upcoming returns pending events within the next days
// @ID			getAgendaUpcoming
//
//	@Summary		Get events due soon
//	@Tags			agenda
//	@Produce		json
//	@Param			days	query	int	false	"Window in days; configured default when absent"	minimum(0)
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/upcoming [get]
func (h *AgendaHandler) Upcoming(c *gin.Context) {
	days := h.upcomingDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "days must be an integer")
			return
		}
		days = n
	}

	events, err := h.schedule.Upcoming(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// History returns every event derived from one entity
// @ID			getAgendaHistory
//
//	@Summary		Get the events derived from an entity
//	@Tags			agenda
//	@Produce		json
//	@Param			kind	path	string	true	"Entity kind"	Enums(farm, sale, warehouse_movement, livestock_movement, auction_movement)
//	@Param			id	path	string	true	"Entity ID"	format(uuid)
//	@Success		200	{object}	APIResponse[[]agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/history/{kind}/{id} [get]
func (h *AgendaHandler) History(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	events, err := h.schedule.History(c.Request.Context(), c.Param("kind"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Fulfill marks an event as attended. fulfilled_by defaults to the caller.
// @ID			fulfillAgendaEvent
//
//	@Summary		Fulfill an agenda event
//	@Tags			agenda
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Event ID"	format(uuid)
//	@Param			request	body	agendaapp.FulfillRequest	true	"Request body"
//	@Success		200	{object}	APIResponse[agendaapp.EventResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/agenda/events/{id}/fulfill [post]
func (h *AgendaHandler) Fulfill(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req agendaapp.FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if strings.TrimSpace(req.FulfilledBy) == "" {
		req.FulfilledBy = actor.DisplayName()
	}

	event, err := h.fulfillment.Fulfill(c.Request.Context(), id, req.FulfilledBy, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

func (h *AgendaHandler) parseInstant(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, raw, h.loc)
}
