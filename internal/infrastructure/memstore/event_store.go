// Package memstore provides in-process stores for development and tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventStore is an agenda.EventStore held in memory
type EventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]agenda.AuditEvent
	loc    *time.Location
}

// NewEventStore creates an empty store using loc for calendar boundaries
func NewEventStore(loc *time.Location) *EventStore {
	if loc == nil {
		loc = time.UTC
	}
	return &EventStore{
		events: make(map[uuid.UUID]agenda.AuditEvent),
		loc:    loc,
	}
}

// Clear removes every event
func (s *EventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[uuid.UUID]agenda.AuditEvent)
}

// Len returns the number of stored events
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Create stores a single event
func (s *EventStore) Create(ctx context.Context, event *agenda.AuditEvent) error {
	return s.CreateAll(ctx, []*agenda.AuditEvent{event})
}

// CreateAll stores every event or none of them
func (s *EventStore) CreateAll(_ context.Context, events []*agenda.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		if _, exists := s.events[e.ID]; exists {
			return shared.NewDomainError("ALREADY_EXISTS", "audit event already exists")
		}
		if !e.Status.IsStored() && e.Status != "" {
			return shared.NewValidationErrorf("status %q cannot be stored", e.Status)
		}
	}
	for _, e := range events {
		stored := *e
		if stored.Status == "" {
			stored.Status = agenda.StatusPending
		}
		s.events[e.ID] = stored
	}
	return nil
}

// FindByID returns the event with the given id
func (s *EventStore) FindByID(_ context.Context, id uuid.UUID) (*agenda.AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

// FindByMonth returns events occurring in the calendar month
func (s *EventStore) FindByMonth(_ context.Context, year int, month time.Month) ([]agenda.AuditEvent, error) {
	start, end := agenda.MonthRange(year, month, s.loc)
	return s.filter(func(e agenda.AuditEvent) bool { return inRange(e.OccursAt, start, end) }), nil
}

// FindByDay returns events occurring on the calendar day
func (s *EventStore) FindByDay(_ context.Context, day time.Time) ([]agenda.AuditEvent, error) {
	start, end := agenda.DayRange(day, s.loc)
	return s.filter(func(e agenda.AuditEvent) bool { return inRange(e.OccursAt, start, end) }), nil
}

// FindPending returns pending events not yet past due at asOf
func (s *EventStore) FindPending(_ context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.filter(func(e agenda.AuditEvent) bool {
		return e.Status == agenda.StatusPending && (e.DueAt == nil || !e.DueAt.Before(asOf))
	}), nil
}

// FindOverdue returns pending events past due at asOf
func (s *EventStore) FindOverdue(_ context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.filter(func(e agenda.AuditEvent) bool {
		return e.Status == agenda.StatusPending && e.DueAt != nil && e.DueAt.Before(asOf)
	}), nil
}

// FindFulfilled returns fulfilled events
func (s *EventStore) FindFulfilled(_ context.Context) ([]agenda.AuditEvent, error) {
	return s.filter(func(e agenda.AuditEvent) bool { return e.Status == agenda.StatusFulfilled }), nil
}

// FindByBackReference returns events derived from the given entity
func (s *EventStore) FindByBackReference(_ context.Context, kind agenda.RefKind, id uuid.UUID) ([]agenda.AuditEvent, error) {
	return s.filter(func(e agenda.AuditEvent) bool {
		ref := e.BackReference()
		return ref != nil && ref.Kind == kind && ref.ID == id
	}), nil
}

// FindAll returns a page of events matching filter
func (s *EventStore) FindAll(_ context.Context, filter agenda.EventFilter) ([]agenda.AuditEvent, error) {
	items := s.filter(matcher(filter))
	if filter.PageSize <= 0 {
		return items, nil
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * filter.PageSize
	}
	if offset >= len(items) {
		return []agenda.AuditEvent{}, nil
	}
	end := offset + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// Count returns the number of events matching filter
func (s *EventStore) Count(_ context.Context, filter agenda.EventFilter) (int64, error) {
	return int64(len(s.filter(matcher(filter)))), nil
}

// Update replaces a stored event
func (s *EventStore) Update(_ context.Context, event *agenda.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return shared.ErrNotFound
	}
	if !event.Status.IsStored() {
		return shared.NewValidationErrorf("status %q cannot be stored", event.Status)
	}
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) filter(keep func(agenda.AuditEvent) bool) []agenda.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]agenda.AuditEvent, 0)
	for _, e := range s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccursAt.Equal(out[j].OccursAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].OccursAt.Before(out[j].OccursAt)
	})
	return out
}

func matcher(f agenda.EventFilter) func(agenda.AuditEvent) bool {
	return func(e agenda.AuditEvent) bool {
		if len(f.Kinds) > 0 {
			found := false
			for _, k := range f.Kinds {
				if e.Kind == k {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if f.Status != "" && e.Status != f.Status {
			return false
		}
		if f.From != nil && e.OccursAt.Before(*f.From) {
			return false
		}
		if f.To != nil && !e.OccursAt.Before(*f.To) {
			return false
		}
		return true
	}
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

var _ agenda.EventStore = (*EventStore)(nil)
