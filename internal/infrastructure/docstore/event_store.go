package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection is the collection audit events are written to
const DefaultCollection = "audit_events"

// EventStore implements agenda.EventStore on a MongoDB collection.
// CreateAll runs inside a session transaction, so the server must be a
// replica set member.
type EventStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	loc        *time.Location
}

// NewEventStore creates a store over database.collection. A nil loc means UTC.
func NewEventStore(client *mongo.Client, database, collection string, loc *time.Location) *EventStore {
	if collection == "" {
		collection = DefaultCollection
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EventStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		loc:        loc,
	}
}

// EnsureIndexes creates the indexes the calendar and back-reference queries rely on
func (s *EventStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurs_at", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_at", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
		{Keys: bson.D{{Key: "ref.kind", Value: 1}, {Key: "ref.id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create audit event indexes: %w", err)
	}
	return nil
}

// Create stores a single event
func (s *EventStore) Create(ctx context.Context, event *agenda.AuditEvent) error {
	if err := checkStoredStatus(event); err != nil {
		return err
	}
	_, err := s.collection.InsertOne(ctx, documentFromDomain(event))
	return mapWriteError(err)
}

// CreateAll stores every event in one transaction
func (s *EventStore) CreateAll(ctx context.Context, events []*agenda.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]any, len(events))
	for i, e := range events {
		if err := checkStoredStatus(e); err != nil {
			return err
		}
		docs[i] = documentFromDomain(e)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongodb session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		_, err := s.collection.InsertMany(sc, docs)
		return nil, err
	})
	return mapWriteError(err)
}

// FindByID finds an event by its ID
func (s *EventStore) FindByID(ctx context.Context, id uuid.UUID) (*agenda.AuditEvent, error) {
	var doc eventDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// FindByMonth returns events occurring in the calendar month
func (s *EventStore) FindByMonth(ctx context.Context, year int, month time.Month) ([]agenda.AuditEvent, error) {
	start, end := agenda.MonthRange(year, month, s.loc)
	return s.find(ctx, occursBetween(start, end), nil)
}

// FindByDay returns events occurring on the calendar day, whatever their status
func (s *EventStore) FindByDay(ctx context.Context, day time.Time) ([]agenda.AuditEvent, error) {
	start, end := agenda.DayRange(day, s.loc)
	return s.find(ctx, occursBetween(start, end), nil)
}

// FindPending returns pending events with no due date or one at or after asOf
func (s *EventStore) FindPending(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.find(ctx, bson.M{
		"status": string(agenda.StatusPending),
		"$or": bson.A{
			bson.M{"due_at": nil},
			bson.M{"due_at": bson.M{"$gte": asOf.UTC()}},
		},
	}, nil)
}

// FindOverdue returns pending events whose due date is before asOf
func (s *EventStore) FindOverdue(ctx context.Context, asOf time.Time) ([]agenda.AuditEvent, error) {
	return s.find(ctx, bson.M{
		"status": string(agenda.StatusPending),
		"due_at": bson.M{"$ne": nil, "$lt": asOf.UTC()},
	}, nil)
}

// FindFulfilled returns fulfilled events
func (s *EventStore) FindFulfilled(ctx context.Context) ([]agenda.AuditEvent, error) {
	return s.find(ctx, bson.M{"status": string(agenda.StatusFulfilled)}, nil)
}

// FindByBackReference returns the events derived from an entity, including after its deletion
func (s *EventStore) FindByBackReference(ctx context.Context, kind agenda.RefKind, id uuid.UUID) ([]agenda.AuditEvent, error) {
	return s.find(ctx, bson.M{"ref.kind": string(kind), "ref.id": id.String()}, nil)
}

// FindAll returns a page of events matching the filter
func (s *EventStore) FindAll(ctx context.Context, filter agenda.EventFilter) ([]agenda.AuditEvent, error) {
	opts := options.Find()
	if filter.PageSize > 0 {
		skip := int64(0)
		if filter.Page > 1 {
			skip = int64((filter.Page - 1) * filter.PageSize)
		}
		opts.SetSkip(skip).SetLimit(int64(filter.PageSize))
	}
	return s.find(ctx, filterQuery(filter), opts)
}

// Count counts events matching the filter
func (s *EventStore) Count(ctx context.Context, filter agenda.EventFilter) (int64, error) {
	return s.collection.CountDocuments(ctx, filterQuery(filter))
}

// Update writes the mutable fields of an event. The back-reference, creator
// and creation time are never rewritten.
func (s *EventStore) Update(ctx context.Context, event *agenda.AuditEvent) error {
	if err := checkStoredStatus(event); err != nil {
		return err
	}
	doc := documentFromDomain(event)
	set := bson.M{
		"occurs_at":         doc.OccursAt,
		"subkind":           doc.Subkind,
		"title":             doc.Title,
		"description":       doc.Description,
		"location":          doc.Location,
		"status":            doc.Status,
		"due_at":            doc.DueAt,
		"fulfilled_by":      doc.FulfilledBy,
		"fulfillment_notes": doc.FulfillmentNotes,
		"fulfilled_at":      doc.FulfilledAt,
		"updated_at":        doc.UpdatedAt,
	}
	result, err := s.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *EventStore) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]agenda.AuditEvent, error) {
	if opts == nil {
		opts = options.Find()
	}
	opts.SetSort(bson.D{
		{Key: "occurs_at", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]agenda.AuditEvent, 0, len(docs))
	for _, doc := range docs {
		e, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("corrupt audit event %s: %w", doc.ID, err)
		}
		events = append(events, *e)
	}
	return events, nil
}

func occursBetween(start, end time.Time) bson.M {
	return bson.M{"occurs_at": bson.M{"$gte": start.UTC(), "$lt": end.UTC()}}
}

func filterQuery(filter agenda.EventFilter) bson.M {
	query := bson.M{}
	if len(filter.Kinds) > 0 {
		kinds := make(bson.A, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		query["kind"] = bson.M{"$in": kinds}
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	occurs := bson.M{}
	if filter.From != nil {
		occurs["$gte"] = filter.From.UTC()
	}
	if filter.To != nil {
		occurs["$lt"] = filter.To.UTC()
	}
	if len(occurs) > 0 {
		query["occurs_at"] = occurs
	}
	return query
}

func checkStoredStatus(event *agenda.AuditEvent) error {
	if event.Status != "" && !event.Status.IsStored() {
		return shared.NewValidationErrorf("status %q cannot be stored", event.Status)
	}
	return nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return shared.NewDomainError("ALREADY_EXISTS", "audit event already exists")
	}
	return err
}

var _ agenda.EventStore = (*EventStore)(nil)
