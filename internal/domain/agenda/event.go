package agenda

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BackReference links a derived event to the entity whose mutation produced it.
// The entity may since have been deleted; the reference is kept regardless.
type BackReference struct {
	Kind RefKind
	ID   uuid.UUID
}

// AuditEvent is an agenda entry: either derived from a domain mutation or
// entered directly by a user.
type AuditEvent struct {
	shared.BaseEntity
	OccursAt         time.Time
	Kind             Kind
	Subkind          string
	Title            string
	Description      string
	Location         string
	Status           Status
	DueAt            *time.Time
	FulfilledBy      string
	FulfillmentNotes string
	FulfilledAt      *time.Time
	Action           Action
	Snapshot         json.RawMessage
	CreatedBy        string

	backReference *BackReference
}

// NewEventParams carries the fields accepted when an event is created
type NewEventParams struct {
	OccursAt      time.Time
	Kind          Kind
	Subkind       string
	Title         string
	Description   string
	Location      string
	DueAt         *time.Time
	BackReference *BackReference
	Action        Action
	Snapshot      json.RawMessage
	CreatedBy     string
}

// NewAuditEvent validates params and creates a pending event with a fresh ID
func NewAuditEvent(p NewEventParams) (*AuditEvent, error) {
	if !p.Kind.IsValid() {
		return nil, shared.NewValidationErrorf("invalid event kind %q", p.Kind)
	}
	if p.OccursAt.IsZero() {
		return nil, shared.NewValidationError("event date is required")
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return nil, shared.NewValidationError("event description is required")
	}
	if p.Action != "" && !p.Action.IsValid() {
		return nil, shared.NewValidationErrorf("invalid event action %q", p.Action)
	}
	if p.Snapshot != nil && !json.Valid(p.Snapshot) {
		return nil, shared.NewValidationError("event snapshot must be valid JSON")
	}

	var ref *BackReference
	if p.BackReference != nil {
		if !p.BackReference.Kind.IsValid() {
			return nil, shared.NewValidationErrorf("invalid back-reference kind %q", p.BackReference.Kind)
		}
		if p.BackReference.ID == uuid.Nil {
			return nil, shared.NewValidationError("back-reference id is required")
		}
		copied := *p.BackReference
		ref = &copied
	}

	e := &AuditEvent{
		BaseEntity:    shared.NewBaseEntity(),
		OccursAt:      p.OccursAt.UTC(),
		Kind:          p.Kind,
		Subkind:       strings.TrimSpace(p.Subkind),
		Title:         strings.TrimSpace(p.Title),
		Description:   description,
		Location:      strings.TrimSpace(p.Location),
		Status:        StatusPending,
		Action:        p.Action,
		Snapshot:      p.Snapshot,
		CreatedBy:     p.CreatedBy,
		backReference: ref,
	}
	if p.DueAt != nil {
		due := p.DueAt.UTC()
		e.DueAt = &due
	}
	return e, nil
}

// Rehydrate rebuilds an event loaded from a store, restoring its back-reference
func Rehydrate(e AuditEvent, ref *BackReference) *AuditEvent {
	if ref != nil {
		copied := *ref
		e.backReference = &copied
	} else {
		e.backReference = nil
	}
	return &e
}

// BackReference returns a copy of the back-reference, or nil for standalone events
func (e *AuditEvent) BackReference() *BackReference {
	if e.backReference == nil {
		return nil
	}
	copied := *e.backReference
	return &copied
}

// IsStandalone reports whether the event was entered directly rather than derived
func (e *AuditEvent) IsStandalone() bool {
	return e.backReference == nil
}

// Fulfill marks the event as attended. Repeated calls overwrite the actor and
// notes (last write wins); there is no way back to pending.
func (e *AuditEvent) Fulfill(actor, notes string, at time.Time) error {
	actor = strings.TrimSpace(actor)
	notes = strings.TrimSpace(notes)
	if actor == "" {
		return shared.NewValidationError("fulfilled_by is required")
	}
	if notes == "" {
		return shared.NewValidationError("fulfillment notes are required")
	}

	stamp := at.UTC()
	e.Status = StatusFulfilled
	e.FulfilledBy = actor
	e.FulfillmentNotes = notes
	e.FulfilledAt = &stamp
	e.UpdatedAt = stamp
	return nil
}

// IsFulfilled reports whether the event reached its terminal state
func (e *AuditEvent) IsFulfilled() bool {
	return e.Status == StatusFulfilled
}

// IsOverdue reports whether a pending event's due date has passed.
// Fulfilled events are never overdue.
func (e *AuditEvent) IsOverdue(now time.Time) bool {
	if e.IsFulfilled() || e.DueAt == nil {
		return false
	}
	return e.DueAt.Before(now)
}

// DisplayStatus derives the status shown to readers at the given instant
func (e *AuditEvent) DisplayStatus(now time.Time) Status {
	if e.IsFulfilled() {
		return StatusFulfilled
	}
	if e.IsOverdue(now) {
		return StatusExpired
	}
	return StatusPending
}

// DaysUntilDue returns whole days from now until the due date, rounded down,
// so any time past due reads negative. ok is false when the event has no due date.
func (e *AuditEvent) DaysUntilDue(now time.Time) (days int, ok bool) {
	if e.DueAt == nil {
		return 0, false
	}
	return int(math.Floor(e.DueAt.Sub(now).Hours() / 24)), true
}
