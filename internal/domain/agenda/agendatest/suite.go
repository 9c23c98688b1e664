// Package agendatest provides a behavioural test suite shared by every
// agenda.EventStore implementation.
package agendatest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreFactory returns an empty store whose calendar location is UTC
type StoreFactory func(t *testing.T) agenda.EventStore

// NewEvent builds a valid pending event for tests
func NewEvent(t *testing.T, kind agenda.Kind, occursAt time.Time, due *time.Time) *agenda.AuditEvent {
	t.Helper()
	e, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:    occursAt,
		Kind:        kind,
		Title:       "Evento de prueba",
		Description: "Descripción " + string(kind),
		DueAt:       due,
		CreatedBy:   "tester",
	})
	require.NoError(t, err)
	return e
}

func ptr(t time.Time) *time.Time { return &t }

// Run exercises the EventStore contract against stores produced by factory
func Run(t *testing.T, factory StoreFactory) {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("create then find by id round-trips every field", func(t *testing.T) {
		store := factory(t)
		saleID := uuid.New()
		due := asOf.Add(48 * time.Hour)
		e, err := agenda.NewAuditEvent(agenda.NewEventParams{
			OccursAt:      asOf,
			Kind:          agenda.KindSale,
			Subkind:       "contado",
			Title:         "Venta registrada",
			Description:   "Venta de 10 novillos",
			Location:      "La Esperanza",
			DueAt:         &due,
			BackReference: &agenda.BackReference{Kind: agenda.RefSale, ID: saleID},
			Action:        agenda.ActionCreate,
			Snapshot:      json.RawMessage(`{"buyer":"Frigorífico","animal_count":10}`),
			CreatedBy:     "user-1",
		})
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, e))

		got, err := store.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, got.ID)
		assert.Equal(t, agenda.StatusPending, got.Status)
		assert.Equal(t, agenda.KindSale, got.Kind)
		assert.Equal(t, "contado", got.Subkind)
		assert.Equal(t, "Venta registrada", got.Title)
		assert.Equal(t, "Venta de 10 novillos", got.Description)
		assert.Equal(t, "La Esperanza", got.Location)
		assert.Equal(t, agenda.ActionCreate, got.Action)
		assert.Equal(t, "user-1", got.CreatedBy)
		assert.True(t, asOf.Equal(got.OccursAt))
		require.NotNil(t, got.DueAt)
		assert.True(t, due.Equal(*got.DueAt))
		assert.Nil(t, got.FulfilledAt)
		assert.JSONEq(t, `{"buyer":"Frigorífico","animal_count":10}`, string(got.Snapshot))

		ref := got.BackReference()
		require.NotNil(t, ref)
		assert.Equal(t, agenda.RefSale, ref.Kind)
		assert.Equal(t, saleID, ref.ID)
	})

	t.Run("find by id of unknown event is not found", func(t *testing.T) {
		store := factory(t)
		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("find by month respects boundaries", func(t *testing.T) {
		store := factory(t)
		first := NewEvent(t, agenda.KindFarm, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil)
		last := NewEvent(t, agenda.KindFarm, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), nil)
		next := NewEvent(t, agenda.KindFarm, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), nil)
		prev := NewEvent(t, agenda.KindFarm, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), nil)
		require.NoError(t, store.CreateAll(ctx, []*agenda.AuditEvent{first, last, next, prev}))

		got, err := store.FindByMonth(ctx, 2024, time.March)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{first.ID, last.ID}, ids(got))
	})

	t.Run("find by day includes fulfilled events", func(t *testing.T) {
		store := factory(t)
		morning := NewEvent(t, agenda.KindEntry, time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC), nil)
		night := NewEvent(t, agenda.KindExit, time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC), nil)
		other := NewEvent(t, agenda.KindExit, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), nil)
		require.NoError(t, store.CreateAll(ctx, []*agenda.AuditEvent{morning, night, other}))

		require.NoError(t, night.Fulfill("A", "hecho", asOf))
		require.NoError(t, store.Update(ctx, night))

		got, err := store.FindByDay(ctx, time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{morning.ID, night.ID}, ids(got))
	})

	t.Run("pending uses due date against as-of", func(t *testing.T) {
		store := factory(t)
		noDue := NewEvent(t, agenda.KindFarm, asOf, nil)
		dueNow := NewEvent(t, agenda.KindFarm, asOf, ptr(asOf))
		dueLater := NewEvent(t, agenda.KindFarm, asOf, ptr(asOf.Add(time.Hour)))
		overdue := NewEvent(t, agenda.KindFarm, asOf, ptr(asOf.Add(-time.Hour)))
		done := NewEvent(t, agenda.KindFarm, asOf, ptr(asOf.Add(time.Hour)))
		require.NoError(t, store.CreateAll(ctx, []*agenda.AuditEvent{noDue, dueNow, dueLater, overdue, done}))
		require.NoError(t, done.Fulfill("A", "listo", asOf))
		require.NoError(t, store.Update(ctx, done))

		pending, err := store.FindPending(ctx, asOf)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{noDue.ID, dueNow.ID, dueLater.ID}, ids(pending))

		late, err := store.FindOverdue(ctx, asOf)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{overdue.ID}, ids(late))
	})

	t.Run("event due last month is overdue not pending", func(t *testing.T) {
		store := factory(t)
		created := time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)
		vaccination := NewEvent(t, agenda.KindFarm, created, ptr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, store.Create(ctx, vaccination))
		june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		pending, err := store.FindPending(ctx, june)
		require.NoError(t, err)
		assert.Empty(t, pending)

		late, err := store.FindOverdue(ctx, june)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{vaccination.ID}, ids(late))

		pending, err = store.FindPending(ctx, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{vaccination.ID}, ids(pending))
	})

	t.Run("fulfilled events are persisted and listed", func(t *testing.T) {
		store := factory(t)
		e := NewEvent(t, agenda.KindWarehouse, asOf, ptr(asOf.Add(-24*time.Hour)))
		require.NoError(t, store.Create(ctx, e))
		require.NoError(t, e.Fulfill("María", "Inventario revisado", asOf))
		require.NoError(t, store.Update(ctx, e))

		got, err := store.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, agenda.StatusFulfilled, got.Status)
		assert.Equal(t, "María", got.FulfilledBy)
		assert.Equal(t, "Inventario revisado", got.FulfillmentNotes)
		require.NotNil(t, got.FulfilledAt)
		assert.True(t, asOf.Equal(*got.FulfilledAt))

		fulfilled, err := store.FindFulfilled(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{e.ID}, ids(fulfilled))

		late, err := store.FindOverdue(ctx, asOf)
		require.NoError(t, err)
		assert.Empty(t, late)
	})

	t.Run("update of unknown event is not found", func(t *testing.T) {
		store := factory(t)
		e := NewEvent(t, agenda.KindFarm, asOf, nil)
		err := store.Update(ctx, e)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("find by back-reference returns orphaned history", func(t *testing.T) {
		store := factory(t)
		farmID := uuid.New()
		mk := func(action agenda.Action) *agenda.AuditEvent {
			e, err := agenda.NewAuditEvent(agenda.NewEventParams{
				OccursAt:      asOf,
				Kind:          agenda.KindFarm,
				Description:   "finca " + string(action),
				Action:        action,
				BackReference: &agenda.BackReference{Kind: agenda.RefFarm, ID: farmID},
			})
			require.NoError(t, err)
			return e
		}
		created, deleted := mk(agenda.ActionCreate), mk(agenda.ActionDelete)
		unrelated := NewEvent(t, agenda.KindFarm, asOf, nil)
		require.NoError(t, store.CreateAll(ctx, []*agenda.AuditEvent{created, deleted, unrelated}))

		got, err := store.FindByBackReference(ctx, agenda.RefFarm, farmID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{created.ID, deleted.ID}, ids(got))

		none, err := store.FindByBackReference(ctx, agenda.RefSale, farmID)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find all filters by kind and paginates", func(t *testing.T) {
		store := factory(t)
		var batch []*agenda.AuditEvent
		for i := 0; i < 5; i++ {
			batch = append(batch, NewEvent(t, agenda.KindSale, asOf.Add(time.Duration(i)*time.Hour), nil))
		}
		batch = append(batch, NewEvent(t, agenda.KindFarm, asOf, nil))
		require.NoError(t, store.CreateAll(ctx, batch))

		filter := agenda.EventFilter{Kinds: []agenda.Kind{agenda.KindSale}, Page: 2, PageSize: 2}
		page, err := store.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, batch[2].ID, page[0].ID)
		assert.Equal(t, batch[3].ID, page[1].ID)

		total, err := store.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		all, err := store.Count(ctx, agenda.EventFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(6), all)
	})
}

func ids(events []agenda.AuditEvent) []uuid.UUID {
	out := make([]uuid.UUID, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
