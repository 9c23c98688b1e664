package agenda

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventService manages agenda items entered directly by users
type EventService struct {
	store agenda.EventStore
	clock shared.Clock
}

// NewEventService creates an EventService
func NewEventService(store agenda.EventStore, clock shared.Clock) *EventService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &EventService{store: store, clock: clock}
}

// Create stores a standalone pending event with no back-reference
func (s *EventService) Create(ctx context.Context, actor shared.Actor, req CreateEventRequest) (*EventResponse, error) {
	kind, ok := agenda.ParseKind(req.Kind)
	if !ok {
		return nil, shared.NewValidationErrorf("invalid event kind %q", req.Kind)
	}
	event, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:    req.OccursAt,
		Kind:        kind,
		Subkind:     req.Subkind,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DueAt:       req.DueAt,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, event); err != nil {
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	resp := ToEventResponse(event, s.clock.Now())
	return &resp, nil
}

// GetByID returns one event
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Audit event")
		}
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	resp := ToEventResponse(event, s.clock.Now())
	return &resp, nil
}
