package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateStandalone(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewEventStore(time.UTC)
	svc := NewEventService(store, shared.FixedClock(scheduleNow))
	due := scheduleNow.AddDate(0, 0, 2)

	resp, err := svc.Create(ctx, testActor, CreateEventRequest{
		OccursAt:    scheduleNow,
		Kind:        "farm",
		Title:       "Visita veterinaria",
		Description: "Revisión de preñez del lote 3",
		DueAt:       &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.BackReference)
	assert.Equal(t, testActor.ID, resp.CreatedBy)
	require.NotNil(t, resp.DaysUntilDue)
	assert.Equal(t, 2, *resp.DaysUntilDue)

	got, err := svc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revisión de preñez del lote 3", got.Description)
}

func TestEventService_CreateValidation(t *testing.T) {
	svc := NewEventService(memstore.NewEventStore(time.UTC), nil)

	_, err := svc.Create(context.Background(), testActor, CreateEventRequest{OccursAt: scheduleNow, Kind: "cosecha", Description: "x"})
	assert.True(t, shared.IsValidation(err))

	_, err = svc.Create(context.Background(), testActor, CreateEventRequest{OccursAt: scheduleNow, Kind: "farm", Description: "  "})
	assert.True(t, shared.IsValidation(err))
}

func TestEventService_GetByIDNotFound(t *testing.T) {
	svc := NewEventService(memstore.NewEventStore(time.UTC), nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.True(t, shared.IsNotFound(err))
}
