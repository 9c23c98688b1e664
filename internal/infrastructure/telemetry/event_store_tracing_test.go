package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestTracedEventStore(t *testing.T) {
	recorder := installRecorder(t)
	store := NewTracedEventStore(memstore.NewEventStore(time.UTC), "memory")
	ctx := context.Background()

	event, err := agenda.NewAuditEvent(agenda.NewEventParams{
		OccursAt:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Kind:        agenda.KindFarm,
		Description: "Vacunación aftosa lote 3",
		CreatedBy:   "user-1",
	})
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, event))
	found, err := store.FindByMonth(ctx, 2025, time.March)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = store.FindByID(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, "agenda.store.create", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("agenda.store", "memory"))
	assert.Equal(t, "agenda.store.find_by_month", spans[1].Name())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("agenda.month", 3))
	assert.Equal(t, "agenda.store.find_by_id", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}
