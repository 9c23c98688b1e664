package agenda

import (
	"context"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const eventStoreDependency = "event store"

// ScheduleService answers calendar and status queries over the agenda.
// It never writes; the expired label is computed from the clock on each read.
type ScheduleService struct {
	store agenda.EventStore
	clock shared.Clock
}

// NewScheduleService creates a ScheduleService
func NewScheduleService(store agenda.EventStore, clock shared.Clock) *ScheduleService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &ScheduleService{store: store, clock: clock}
}

// Month returns every event in the calendar month, any status
func (s *ScheduleService) Month(ctx context.Context, year int, month time.Month) ([]EventResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, shared.NewValidationError("year is out of range")
	}
	if month < time.January || month > time.December {
		return nil, shared.NewValidationError("month must be between 1 and 12")
	}
	events, err := s.store.FindByMonth(ctx, year, month)
	return s.project(events, err)
}

// Day returns every event on the calendar day of date
func (s *ScheduleService) Day(ctx context.Context, date time.Time) ([]EventResponse, error) {
	if date.IsZero() {
		return nil, shared.NewValidationError("date is required")
	}
	events, err := s.store.FindByDay(ctx, date)
	return s.project(events, err)
}

// Pending returns pending events not yet past due at asOf (now when nil)
func (s *ScheduleService) Pending(ctx context.Context, asOf *time.Time) ([]EventResponse, error) {
	at := s.clock.Now()
	if asOf != nil {
		at = *asOf
	}
	events, err := s.store.FindPending(ctx, at)
	return s.project(events, err)
}

// Overdue returns pending events whose due date has passed
func (s *ScheduleService) Overdue(ctx context.Context) ([]EventResponse, error) {
	events, err := s.store.FindOverdue(ctx, s.clock.Now())
	return s.project(events, err)
}

// Fulfilled returns fulfilled events
func (s *ScheduleService) Fulfilled(ctx context.Context) ([]EventResponse, error) {
	events, err := s.store.FindFulfilled(ctx)
	return s.project(events, err)
}

// Upcoming returns pending events that occur or fall due within the next days
func (s *ScheduleService) Upcoming(ctx context.Context, days int) ([]EventResponse, error) {
	if days <= 0 {
		return nil, shared.NewValidationError("days must be greater than zero")
	}
	now := s.clock.Now()
	horizon := now.AddDate(0, 0, days)

	events, err := s.store.FindPending(ctx, now)
	if err != nil {
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	upcoming := make([]agenda.AuditEvent, 0, len(events))
	for _, e := range events {
		occurs := !e.OccursAt.Before(now) && e.OccursAt.Before(horizon)
		due := e.DueAt != nil && e.DueAt.Before(horizon)
		if occurs || due {
			upcoming = append(upcoming, e)
		}
	}
	return ToEventResponses(upcoming, now), nil
}

// History returns every event derived from one entity, including after its deletion
func (s *ScheduleService) History(ctx context.Context, kind string, id uuid.UUID) ([]EventResponse, error) {
	refKind := agenda.RefKind(kind)
	if !refKind.IsValid() {
		return nil, shared.NewValidationErrorf("invalid reference kind %q", kind)
	}
	events, err := s.store.FindByBackReference(ctx, refKind, id)
	return s.project(events, err)
}

// List returns a page of events. The expired status filter is answered from
// pending events past due, since expired is never stored.
func (s *ScheduleService) List(ctx context.Context, f EventListFilter) (*EventPage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 50
	}
	now := s.clock.Now()

	filter := agenda.EventFilter{From: f.From, To: f.To, Page: f.Page, PageSize: f.PageSize}
	for _, raw := range f.Kinds {
		kind, ok := agenda.ParseKind(raw)
		if !ok {
			return nil, shared.NewValidationErrorf("invalid event kind %q", raw)
		}
		filter.Kinds = append(filter.Kinds, kind)
	}

	if agenda.Status(f.Status) == agenda.StatusExpired {
		overdue, err := s.store.FindOverdue(ctx, now)
		if err != nil {
			return nil, shared.WrapDependency(eventStoreDependency, err)
		}
		matched := make([]agenda.AuditEvent, 0, len(overdue))
		for _, e := range overdue {
			if matchesFilter(e, filter) {
				matched = append(matched, e)
			}
		}
		start := (f.Page - 1) * f.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + f.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		return &EventPage{
			Items:    ToEventResponses(matched[start:end], now),
			Total:    int64(len(matched)),
			Page:     f.Page,
			PageSize: f.PageSize,
		}, nil
	}

	filter.Status = agenda.Status(f.Status)
	events, err := s.store.FindAll(ctx, filter)
	if err != nil {
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	return &EventPage{
		Items:    ToEventResponses(events, now),
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}

func (s *ScheduleService) project(events []agenda.AuditEvent, err error) ([]EventResponse, error) {
	if err != nil {
		return nil, shared.WrapDependency(eventStoreDependency, err)
	}
	return ToEventResponses(events, s.clock.Now()), nil
}

func matchesFilter(e agenda.AuditEvent, f agenda.EventFilter) bool {
	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if k == e.Kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && e.OccursAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.OccursAt.Before(*f.To) {
		return false
	}
	return true
}
