package agenda

import (
	"context"
	"strings"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FulfillmentService marks agenda events as attended
type FulfillmentService struct {
	store  agenda.EventStore
	clock  shared.Clock
	logger *zap.Logger
}

// NewFulfillmentService creates a FulfillmentService
func NewFulfillmentService(store agenda.EventStore, clock shared.Clock, logger *zap.Logger) *FulfillmentService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FulfillmentService{store: store, clock: clock, logger: logger.Named("agenda.fulfillment")}
}

// Fulfill records who attended event id and how. Blank actor or notes are
// rejected before the store is touched. Fulfilling again overwrites the
// previous actor and notes.
func (s *FulfillmentService) Fulfill(ctx context.Context, id uuid.UUID, actor, notes string) (*EventResponse, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, shared.NewValidationError("fulfilled_by is required")
	}
	if strings.TrimSpace(notes) == "" {
		return nil, shared.NewValidationError("fulfillment notes are required")
	}

	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Audit event")
		}
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}

	refulfill := event.IsFulfilled()
	now := s.clock.Now()
	if err := event.Fulfill(actor, notes, now); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, event); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Audit event")
		}
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}

	s.logger.Info("Agenda event fulfilled",
		zap.String("event_id", id.String()),
		zap.String("kind", string(event.Kind)),
		zap.String("fulfilled_by", event.FulfilledBy),
		zap.Bool("overwrote_previous", refulfill))

	resp := ToEventResponse(event, now)
	return &resp, nil
}
