// Package draft lets a user park a partially filled form and resume it later.
package draft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DraftResponse is a saved draft
type DraftResponse struct {
	Form      string          `json:"form"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DraftService saves, loads and discards the current user's drafts
type DraftService struct {
	repo   draft.Repository
	logger *zap.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(repo draft.Repository, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{repo: repo, logger: logger.Named("draft")}
}

// Save replaces the actor's draft for form
func (s *DraftService) Save(ctx context.Context, actor shared.Actor, form draft.Form, payload json.RawMessage) (*DraftResponse, error) {
	d, err := draft.NewDraft(actor.ID, form, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, shared.WrapDependency("draft store", err)
	}
	s.logger.Debug("Draft saved", zap.String("owner", actor.ID), zap.String("form", string(form)), zap.Int("bytes", len(payload)))
	return toResponse(d), nil
}

// Load returns the actor's draft for form, or a not-found error
func (s *DraftService) Load(ctx context.Context, actor shared.Actor, form draft.Form) (*DraftResponse, error) {
	d, err := s.repo.Load(ctx, actor.ID, form)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Draft")
		}
		return nil, shared.WrapDependency("draft store", err)
	}
	return toResponse(d), nil
}

// Discard removes the actor's draft for form. Discarding nothing succeeds.
func (s *DraftService) Discard(ctx context.Context, actor shared.Actor, form draft.Form) error {
	if err := s.repo.Clear(ctx, actor.ID, form); err != nil {
		return shared.WrapDependency("draft store", err)
	}
	return nil
}

func toResponse(d *draft.Draft) *DraftResponse {
	return &DraftResponse{Form: string(d.Form), Payload: d.Payload, UpdatedAt: d.UpdatedAt}
}
