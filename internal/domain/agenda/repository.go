package agenda

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventStore persists audit events.
//
// Month and day queries interpret boundaries in the store's configured
// calendar location. CreateAll is atomic: either every event is stored or none.
type EventStore interface {
	Create(ctx context.Context, event *AuditEvent) error
	CreateAll(ctx context.Context, events []*AuditEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*AuditEvent, error)
	FindByMonth(ctx context.Context, year int, month time.Month) ([]AuditEvent, error)
	FindByDay(ctx context.Context, day time.Time) ([]AuditEvent, error)
	// FindPending returns pending events with no due date or a due date at or after asOf
	FindPending(ctx context.Context, asOf time.Time) ([]AuditEvent, error)
	// FindOverdue returns pending events whose due date is before asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]AuditEvent, error)
	FindFulfilled(ctx context.Context) ([]AuditEvent, error)
	FindByBackReference(ctx context.Context, kind RefKind, id uuid.UUID) ([]AuditEvent, error)
	FindAll(ctx context.Context, filter EventFilter) ([]AuditEvent, error)
	Count(ctx context.Context, filter EventFilter) (int64, error)
	Update(ctx context.Context, event *AuditEvent) error
}

// EventFilter narrows list queries
type EventFilter struct {
	Kinds    []Kind
	Status   Status
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// DefaultEventFilter returns a filter for the first page of all events
func DefaultEventFilter() EventFilter {
	return EventFilter{Page: 1, PageSize: 50}
}
