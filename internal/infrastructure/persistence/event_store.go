package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventStore implements agenda.EventStore using GORM.
// Calendar queries use loc to decide where a month or day begins.
type GormEventStore struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormEventStore creates a new GormEventStore. A nil loc means UTC.
func NewGormEventStore(db *gorm.DB, loc *time.Location) *GormEventStore {
	if loc == nil {
		loc = time.UTC
	}
	return &GormEventStore{db: db, loc: loc}
}

// Create stores a single event
func (s *GormEventStore) Create(ctx context.Context, event *agenda.AuditEvent) error {
	if err := checkStoredStatus(event); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(models.AuditEventModelFromDomain(event)).Error
}

// CreateAll stores every event in a single transaction
func (s *GormEventStore) CreateAll(ctx context.Context, events []*agenda.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	eventModels := make([]*models.AuditEventModel, len(events))
	for i, e := range events {
		if err := checkStoredStatus(e); err != nil {
			return err
		}
		eventModels[i] = models.AuditEventModelFromDomain(e)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&eventModels).Error
	})
}

// FindByID finds an event by its ID
func (s *GormEventStore) FindByID(ctx context.Context, id uuid.UUID) (*agenda.AuditEvent, error) {
	var model models.AuditEventModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMonth returns events occurring in the calendar month
func (s *GormEventStore) FindByMonth(ctx context.Context, year int, month time.Month) ([]agenda.AuditEvent, error) {
	start, end := agenda.MonthRange(year, month, s.loc)
	return s.find(s.query(ctx).Where("occurs_at >= ? AND occurs_at < ?", start, end))
}

// FindByDay returns events occurring on the calendar day, whatever their status
func (s *GormEventStore) FindByDay(ctx context.Context, day time.Time) ([]agenda.AuditEvent, error) {
	start, end := agenda.DayRange(day, s.loc)
	return s.find(s.query(ctx).Where("occurs_at >= ? AND occurs_at < ?", start, end))
}

// FindPending returns pending events with no due date or one at or after asOf
func (s *GormEventStore) FindPending(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.find(s.query(ctx).
		Where("status = ?", agenda.StatusPending).
		Where("(due_at IS NULL OR due_at >= ?)", asOf.UTC()))
}

// FindOverdue returns pending events whose due date is before asOf
func (s *GormEventStore) FindOverdue(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.find(s.query(ctx).
		Where("status = ?", agenda.StatusPending).
		Where("due_at IS NOT NULL AND due_at < ?", asOf.UTC()))
}

// FindFulfilled returns fulfilled events
func (s *GormEventStore) FindFulfilled(ctx context.Context) ([]agenda.AuditEvent, error) {
	return s.find(s.query(ctx).Where("status = ?", agenda.StatusFulfilled))
}

// FindByBackReference returns the events derived from an entity, including after its deletion
func (s *GormEventStore) FindByBackReference(ctx context.Context, kind agenda.RefKind, id uuid.UUID) ([]agenda.AuditEvent, error) {
	return s.find(s.query(ctx).Where("ref_kind = ? AND ref_id = ?", string(kind), id))
}

// FindAll returns a page of events matching the filter
func (s *GormEventStore) FindAll(ctx context.Context, filter agenda.EventFilter) ([]agenda.AuditEvent, error) {
	query := s.applyFilter(s.query(ctx), filter)
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return s.find(query)
}

// Count counts events matching the filter
func (s *GormEventStore) Count(ctx context.Context, filter agenda.EventFilter) (int64, error) {
	var count int64
	query := s.applyFilter(s.db.WithContext(ctx).Model(&models.AuditEventModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update writes the mutable fields of an event. The back-reference, creator
// and creation time are never rewritten.
func (s *GormEventStore) Update(ctx context.Context, event *agenda.AuditEvent) error {
	if err := checkStoredStatus(event); err != nil {
		return err
	}
	model := models.AuditEventModelFromDomain(event)
	result := s.db.WithContext(ctx).
		Model(model).
		Select(models.MutableAuditEventColumns).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *GormEventStore) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.AuditEventModel{}).
		Order("occurs_at ASC").
		Order("created_at ASC")
}

func (s *GormEventStore) applyFilter(query *gorm.DB, filter agenda.EventFilter) *gorm.DB {
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		query = query.Where("kind IN ?", kinds)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		query = query.Where("occurs_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("occurs_at < ?", filter.To.UTC())
	}
	return query
}

func (s *GormEventStore) find(query *gorm.DB) ([]agenda.AuditEvent, error) {
	var eventModels []models.AuditEventModel
	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]agenda.AuditEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

func checkStoredStatus(event *agenda.AuditEvent) error {
	if event.Status != "" && !event.Status.IsStored() {
		return shared.NewValidationErrorf("status %q cannot be stored", event.Status)
	}
	return nil
}

var _ agenda.EventStore = (*GormEventStore)(nil)
