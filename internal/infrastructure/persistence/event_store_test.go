package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/agenda/agendatest"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormEventStore_Contract(t *testing.T) {
	agendatest.Run(t, func(t *testing.T) agenda.EventStore {
		return NewGormEventStore(newSQLiteDB(t), time.UTC)
	})
}

func TestGormEventStore_CalendarLocation(t *testing.T) {
	ctx := context.Background()
	bogota := agenda.LoadLocation("America/Bogota")
	if bogota == time.UTC {
		t.Skip("time zone database unavailable")
	}
	store := NewGormEventStore(newSQLiteDB(t), bogota)

	// 2024-04-01 02:00 UTC is still March 31st in Bogotá (UTC-5)
	lateMarch := agendatest.NewEvent(t, agenda.KindSale, time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC), nil)
	require.NoError(t, store.Create(ctx, lateMarch))

	march, err := store.FindByMonth(ctx, 2024, time.March)
	require.NoError(t, err)
	april, err := store.FindByMonth(ctx, 2024, time.April)
	require.NoError(t, err)
	assert.Len(t, march, 1)
	assert.Empty(t, april)

	day, err := store.FindByDay(ctx, time.Date(2024, 3, 31, 12, 0, 0, 0, bogota))
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestGormEventStore_UpdateKeepsBackReference(t *testing.T) {
	ctx := context.Background()
	store := NewGormEventStore(newSQLiteDB(t), time.UTC)

	saleID := uuid.New()
	e, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Kind:          agenda.KindSale,
		Description:   "Venta de 10 novillos",
		BackReference: &agenda.BackReference{Kind: agenda.RefSale, ID: saleID},
		Action:        agenda.ActionCreate,
		CreatedBy:     "user-1",
	})
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, e))

	// an event rebuilt without its reference must not erase the stored one
	detached := agenda.Rehydrate(*e, nil)
	require.NoError(t, detached.Fulfill("Carlos", "Factura enviada", time.Now()))
	require.NoError(t, store.Update(ctx, detached))

	got, err := store.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, agenda.StatusFulfilled, got.Status)
	assert.Equal(t, "user-1", got.CreatedBy)
	require.NotNil(t, got.BackReference())
	assert.Equal(t, saleID, got.BackReference().ID)
}

func TestGormEventStore_RejectsDerivedStatus(t *testing.T) {
	store := NewGormEventStore(newSQLiteDB(t), time.UTC)
	e := agendatest.NewEvent(t, agenda.KindFarm, time.Now(), nil)
	e.Status = agenda.StatusExpired

	assert.True(t, shared.IsValidation(store.Create(context.Background(), e)))
	assert.True(t, shared.IsValidation(store.CreateAll(context.Background(), []*agenda.AuditEvent{e})))
}

func TestGormEventStore_CreateAll_Transaction(t *testing.T) {
	t.Run("inserts the batch in one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		store := NewGormEventStore(db.DB, time.UTC)

		at := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		events := []*agenda.AuditEvent{
			agendatest.NewEvent(t, agenda.KindSale, at, nil),
			agendatest.NewEvent(t, agenda.KindExit, at, nil),
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "audit_events" .* VALUES \(.*\),\(.*\)`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, store.CreateAll(context.Background(), events))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the insert fails", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		store := NewGormEventStore(db.DB, time.UTC)

		events := []*agenda.AuditEvent{agendatest.NewEvent(t, agenda.KindSale, time.Now(), nil)}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "audit_events"`).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := store.CreateAll(context.Background(), events)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEventStore_FindPending_Query(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	store := NewGormEventStore(db.DB, time.UTC)

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "audit_events" WHERE status = \$1 AND \(due_at IS NULL OR due_at >= \$2\) ORDER BY occurs_at ASC,created_at ASC`).
		WithArgs(agenda.StatusPending, asOf).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := store.FindPending(context.Background(), asOf)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
