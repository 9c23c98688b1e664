package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var scheduleNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func seedEvent(t *testing.T, store agenda.EventStore, kind agenda.Kind, occursAt time.Time, due *time.Time) *agenda.AuditEvent {
	t.Helper()
	e, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:    occursAt,
		Kind:        kind,
		Description: "Vacunación contra aftosa",
		DueAt:       due,
	})
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), e))
	return e
}

func at(t time.Time) *time.Time { return &t }

func newScheduleFixture(t *testing.T) (*ScheduleService, *memstore.EventStore) {
	t.Helper()
	store := memstore.NewEventStore(time.UTC)
	return NewScheduleService(store, shared.FixedClock(scheduleNow)), store
}

func TestScheduleService_MonthValidatesInput(t *testing.T) {
	svc, _ := newScheduleFixture(t)

	_, err := svc.Month(context.Background(), 2024, 13)
	assert.True(t, shared.IsValidation(err))

	_, err = svc.Month(context.Background(), 0, time.March)
	assert.True(t, shared.IsValidation(err))
}

func TestScheduleService_MonthProjectsDerivedStatus(t *testing.T) {
	svc, store := newScheduleFixture(t)
	overdue := seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 0, -5), at(scheduleNow.AddDate(0, 0, -1)))
	onTime := seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 0, 1), at(scheduleNow.AddDate(0, 0, 3)))
	seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 1, 0), nil)

	items, err := svc.Month(context.Background(), 2024, time.March)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, overdue.ID, items[0].ID)
	assert.Equal(t, "pending", items[0].Status)
	assert.Equal(t, "expired", items[0].DisplayStatus)
	require.NotNil(t, items[0].DaysUntilDue)
	assert.Equal(t, -1, *items[0].DaysUntilDue)

	assert.Equal(t, onTime.ID, items[1].ID)
	assert.Equal(t, "pending", items[1].DisplayStatus)
	require.NotNil(t, items[1].DaysUntilDue)
	assert.Equal(t, 3, *items[1].DaysUntilDue)

	stored, err := store.FindByID(context.Background(), overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, agenda.StatusPending, stored.Status, "expired is never written back")
}

func TestScheduleService_PendingAndOverdueSplit(t *testing.T) {
	svc, store := newScheduleFixture(t)
	noDue := seedEvent(t, store, agenda.KindSale, scheduleNow, nil)
	future := seedEvent(t, store, agenda.KindSale, scheduleNow, at(scheduleNow.Add(time.Hour)))
	past := seedEvent(t, store, agenda.KindSale, scheduleNow, at(scheduleNow.Add(-time.Hour)))
	fulfilled := seedEvent(t, store, agenda.KindSale, scheduleNow, at(scheduleNow.Add(-time.Hour)))
	require.NoError(t, fulfilled.Fulfill("Ana", "Atendido", scheduleNow))
	require.NoError(t, store.Update(context.Background(), fulfilled))

	pending, err := svc.Pending(context.Background(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{noDue.ID, future.ID}, idsOf(pending))

	overdue, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{past.ID}, idsOf(overdue))

	done, err := svc.Fulfilled(context.Background())
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "fulfilled", done[0].DisplayStatus)
	assert.Nil(t, done[0].DaysUntilDue)

	earlier := scheduleNow.Add(-2 * time.Hour)
	asOfEarlier, err := svc.Pending(context.Background(), &earlier)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{noDue.ID, future.ID, past.ID}, idsOf(asOfEarlier))
}

func TestScheduleService_Upcoming(t *testing.T) {
	svc, store := newScheduleFixture(t)
	soon := seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 0, 2), nil)
	dueSoon := seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 0, -10), at(scheduleNow.AddDate(0, 0, 3)))
	seedEvent(t, store, agenda.KindFarm, scheduleNow.AddDate(0, 0, 20), nil)

	items, err := svc.Upcoming(context.Background(), 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{soon.ID, dueSoon.ID}, idsOf(items))

	_, err = svc.Upcoming(context.Background(), 0)
	assert.True(t, shared.IsValidation(err))
}

func TestScheduleService_History(t *testing.T) {
	svc, store := newScheduleFixture(t)
	saleID := uuid.New()
	e, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:      scheduleNow,
		Kind:          agenda.KindSale,
		Description:   "Venta",
		BackReference: &agenda.BackReference{Kind: agenda.RefSale, ID: saleID},
	})
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), e))

	items, err := svc.History(context.Background(), "sale", saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].BackReference)
	assert.Equal(t, saleID, items[0].BackReference.ID)

	_, err = svc.History(context.Background(), "cosecha", saleID)
	assert.True(t, shared.IsValidation(err))
}

func TestScheduleService_ListExpiredFilter(t *testing.T) {
	svc, store := newScheduleFixture(t)
	for i := 0; i < 3; i++ {
		seedEvent(t, store, agenda.KindExit, scheduleNow.Add(time.Duration(i)*time.Hour), at(scheduleNow.Add(-time.Hour)))
	}
	seedEvent(t, store, agenda.KindEntry, scheduleNow, at(scheduleNow.Add(-time.Hour)))
	seedEvent(t, store, agenda.KindExit, scheduleNow, nil)

	page, err := svc.List(context.Background(), EventListFilter{Kinds: []string{"exit"}, Status: "expired", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "expired", page.Items[0].DisplayStatus)

	_, err = svc.List(context.Background(), EventListFilter{Kinds: []string{"harvest"}})
	assert.True(t, shared.IsValidation(err))
}

func TestScheduleService_ListDefaults(t *testing.T) {
	svc, store := newScheduleFixture(t)
	seedEvent(t, store, agenda.KindFarm, scheduleNow, nil)

	page, err := svc.List(context.Background(), EventListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.PageSize)
	assert.Equal(t, int64(1), page.Total)
}

func TestScheduleService_StoreFailureIsDependencyError(t *testing.T) {
	store := new(MockEventStore)
	store.On("FindByDay", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))
	svc := NewScheduleService(store, shared.FixedClock(scheduleNow))

	_, err := svc.Day(context.Background(), scheduleNow)
	require.Error(t, err)
	assert.True(t, shared.IsDependencyFailure(err))
}

func idsOf(items []EventResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
