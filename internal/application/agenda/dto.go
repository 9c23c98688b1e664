package agenda

import (
	"encoding/json"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/google/uuid"
)

// BackReferenceResponse points at the entity an event was derived from
type BackReferenceResponse struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

// EventResponse is an audit event as shown to readers. DisplayStatus and
// DaysUntilDue are derived at read time and never stored.
type EventResponse struct {
	ID               uuid.UUID              `json:"id"`
	OccursAt         time.Time              `json:"occurs_at"`
	Kind             string                 `json:"kind"`
	Subkind          string                 `json:"subkind,omitempty"`
	Title            string                 `json:"title,omitempty"`
	Description      string                 `json:"description"`
	Location         string                 `json:"location,omitempty"`
	Status           string                 `json:"status"`
	DisplayStatus    string                 `json:"display_status"`
	DueAt            *time.Time             `json:"due_at,omitempty"`
	DaysUntilDue     *int                   `json:"days_until_due,omitempty"`
	FulfilledBy      string                 `json:"fulfilled_by,omitempty"`
	FulfillmentNotes string                 `json:"fulfillment_notes,omitempty"`
	FulfilledAt      *time.Time             `json:"fulfilled_at,omitempty"`
	BackReference    *BackReferenceResponse `json:"back_reference,omitempty"`
	Action           string                 `json:"action,omitempty"`
	Snapshot         json.RawMessage        `json:"snapshot,omitempty"`
	CreatedBy        string                 `json:"created_by,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ToEventResponse projects an event as seen at now
func ToEventResponse(e *agenda.AuditEvent, now time.Time) EventResponse {
	resp := EventResponse{
		ID:               e.ID,
		OccursAt:         e.OccursAt,
		Kind:             string(e.Kind),
		Subkind:          e.Subkind,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		Status:           string(e.Status),
		DisplayStatus:    string(e.DisplayStatus(now)),
		DueAt:            e.DueAt,
		FulfilledBy:      e.FulfilledBy,
		FulfillmentNotes: e.FulfillmentNotes,
		FulfilledAt:      e.FulfilledAt,
		Action:           string(e.Action),
		Snapshot:         e.Snapshot,
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if days, ok := e.DaysUntilDue(now); ok && !e.IsFulfilled() {
		resp.DaysUntilDue = &days
	}
	if ref := e.BackReference(); ref != nil {
		resp.BackReference = &BackReferenceResponse{Kind: string(ref.Kind), ID: ref.ID}
	}
	return resp
}

// ToEventResponses projects a slice of events as seen at now
func ToEventResponses(events []agenda.AuditEvent, now time.Time) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = ToEventResponse(&events[i], now)
	}
	return out
}

// CreateEventRequest is a user-entered agenda item
//
//	@Description	Request body for adding an agenda item
type CreateEventRequest struct {
	OccursAt    time.Time  `json:"occurs_at" binding:"required" example:"2024-05-01T08:00:00-05:00"`
	Kind        string     `json:"kind" binding:"required,agenda_kind" example:"farm"`
	Subkind     string     `json:"subkind" binding:"max=100" example:"vacunación"`
	Title       string     `json:"title" binding:"max=200" example:"Vacunación aftosa"`
	Description string     `json:"description" binding:"required,max=2000" example:"Vacunar el lote de novillas"`
	Location    string     `json:"location" binding:"max=300" example:"Potrero 3"`
	DueAt       *time.Time `json:"due_at" example:"2024-05-03T18:00:00-05:00"`
}

// FulfillRequest marks an event as attended
//
//	@Description	Request body for fulfilling an event; fulfilled_by defaults to the caller
type FulfillRequest struct {
	FulfilledBy string `json:"fulfilled_by" binding:"max=200" example:"Luis Pérez"`
	Notes       string `json:"notes" binding:"max=2000" example:"Se vacunaron 42 animales"`
}

// EventListFilter is the query for the paginated event list
type EventListFilter struct {
	Kinds    []string   `form:"kind"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending fulfilled expired"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// EventPage is one page of events
type EventPage struct {
	Items    []EventResponse
	Total    int64
	Page     int
	PageSize int
}
