package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventStore is a mock implementation of agenda.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, event *agenda.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventStore) CreateAll(ctx context.Context, events []*agenda.AuditEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventStore) FindByID(ctx context.Context, id uuid.UUID) (*agenda.AuditEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindByMonth(ctx context.Context, year int, month time.Month) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindByDay(ctx context.Context, day time.Time) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindPending(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindOverdue(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindFulfilled(ctx context.Context) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindByBackReference(ctx context.Context, kind agenda.RefKind, id uuid.UUID) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) FindAll(ctx context.Context, filter agenda.EventFilter) ([]agenda.AuditEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agenda.AuditEvent), args.Error(1)
}

func (m *MockEventStore) Count(ctx context.Context, filter agenda.EventFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventStore) Update(ctx context.Context, event *agenda.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// countingRecorder tallies recorder calls
type countingRecorder struct {
	mu       sync.Mutex
	emitted  map[agenda.Kind]int
	failures map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{emitted: map[agenda.Kind]int{}, failures: map[string]int{}}
}

func (r *countingRecorder) EventsEmitted(kind agenda.Kind, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted[kind] += n
}

func (r *countingRecorder) EmissionFailed(kind agenda.Kind, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[string(kind)+":"+stage]++
}

var _ agenda.EventStore = (*MockEventStore)(nil)
