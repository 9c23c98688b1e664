// Package draft holds partially completed forms saved per user so they can
// be resumed after navigating away.
package draft

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
)

// Form names the form a draft belongs to
type Form string

// FormSale is the multi-step sale registration form
const FormSale Form = "sale"

// Draft is an opaque JSON payload owned by a single user
type Draft struct {
	Owner     string
	Form      Form
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// NewDraft validates and creates a draft
func NewDraft(owner string, form Form, payload json.RawMessage) (*Draft, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, shared.NewValidationError("draft owner is required")
	}
	if form == "" {
		return nil, shared.NewValidationError("draft form is required")
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return nil, shared.NewValidationError("draft payload must be valid JSON")
	}
	return &Draft{
		Owner:     owner,
		Form:      form,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Repository stores at most one draft per (owner, form).
// Load returns shared.ErrNotFound when nothing is saved. Clear is idempotent.
type Repository interface {
	Save(ctx context.Context, d *Draft) error
	Load(ctx context.Context, owner string, form Form) (*Draft, error)
	Clear(ctx context.Context, owner string, form Form) error
}
