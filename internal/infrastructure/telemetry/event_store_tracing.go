package telemetry

import (
	"context"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// TracedEventStore decorates an EventStore with one span per call, so the
// agenda backend (postgres, mongo, memory) shows up the same in traces.
type TracedEventStore struct {
	next    agenda.EventStore
	backend string
}

// NewTracedEventStore wraps next; backend is recorded as the "agenda.store" attribute
func NewTracedEventStore(next agenda.EventStore, backend string) *TracedEventStore {
	return &TracedEventStore{next: next, backend: backend}
}

func (s *TracedEventStore) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String("agenda.store", s.backend))
	ctx, span := StartSpan(ctx, "agenda.store."+op, attrs...)
	return ctx, func(err error) { endSpan(span, err) }
}

// Create implements agenda.EventStore
func (s *TracedEventStore) Create(ctx context.Context, event *agenda.AuditEvent) (err error) {
	ctx, end := s.start(ctx, "create", attribute.String("agenda.kind", string(event.Kind)))
	defer func() { end(err) }()
	return s.next.Create(ctx, event)
}

// CreateAll implements agenda.EventStore
func (s *TracedEventStore) CreateAll(ctx context.Context, events []*agenda.AuditEvent) (err error) {
	ctx, end := s.start(ctx, "create_all", attribute.Int("agenda.count", len(events)))
	defer func() { end(err) }()
	return s.next.CreateAll(ctx, events)
}

// FindByID implements agenda.EventStore
func (s *TracedEventStore) FindByID(ctx context.Context, id uuid.UUID) (_ *agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_by_id", attribute.String("agenda.event_id", id.String()))
	defer func() { end(err) }()
	return s.next.FindByID(ctx, id)
}

// FindByMonth implements agenda.EventStore
func (s *TracedEventStore) FindByMonth(ctx context.Context, year int, month time.Month) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_by_month", attribute.Int("agenda.year", year), attribute.Int("agenda.month", int(month)))
	defer func() { end(err) }()
	return s.next.FindByMonth(ctx, year, month)
}

// FindByDay implements agenda.EventStore
func (s *TracedEventStore) FindByDay(ctx context.Context, day time.Time) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_by_day", attribute.String("agenda.day", day.Format(time.DateOnly)))
	defer func() { end(err) }()
	return s.next.FindByDay(ctx, day)
}

// FindPending implements agenda.EventStore
func (s *TracedEventStore) FindPending(ctx context.Context, asOf time.Time) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_pending")
	defer func() { end(err) }()
	return s.next.FindPending(ctx, asOf)
}

// FindOverdue implements agenda.EventStore
func (s *TracedEventStore) FindOverdue(ctx context.Context, asOf time.Time) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_overdue")
	defer func() { end(err) }()
	return s.next.FindOverdue(ctx, asOf)
}

// FindFulfilled implements agenda.EventStore
func (s *TracedEventStore) FindFulfilled(ctx context.Context) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_fulfilled")
	defer func() { end(err) }()
	return s.next.FindFulfilled(ctx)
}

// FindByBackReference implements agenda.EventStore
func (s *TracedEventStore) FindByBackReference(ctx context.Context, kind agenda.RefKind, id uuid.UUID) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_by_back_reference",
		attribute.String("agenda.ref_kind", string(kind)),
		attribute.String("agenda.ref_id", id.String()))
	defer func() { end(err) }()
	return s.next.FindByBackReference(ctx, kind, id)
}

// FindAll implements agenda.EventStore
func (s *TracedEventStore) FindAll(ctx context.Context, filter agenda.EventFilter) (_ []agenda.AuditEvent, err error) {
	ctx, end := s.start(ctx, "find_all")
	defer func() { end(err) }()
	return s.next.FindAll(ctx, filter)
}

// Count implements agenda.EventStore
func (s *TracedEventStore) Count(ctx context.Context, filter agenda.EventFilter) (_ int64, err error) {
	ctx, end := s.start(ctx, "count")
	defer func() { end(err) }()
	return s.next.Count(ctx, filter)
}

// Update implements agenda.EventStore
func (s *TracedEventStore) Update(ctx context.Context, event *agenda.AuditEvent) (err error) {
	ctx, end := s.start(ctx, "update", attribute.String("agenda.event_id", event.ID.String()))
	defer func() { end(err) }()
	return s.next.Update(ctx, event)
}

var _ agenda.EventStore = (*TracedEventStore)(nil)
