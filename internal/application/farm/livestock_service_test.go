package farm

import (
	"context"
	"errors"
	"testing"
	"time"

	domainagenda "github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var movementDate = time.Date(2024, 4, 2, 7, 0, 0, 0, time.UTC)

func TestLivestockService_Record(t *testing.T) {
	f := newFarm(t)
	farms := new(MockFarmRepository)
	livestock := new(MockLivestockRepository)
	emitter := new(MockEventEmitter)
	svc := NewLivestockService(farms, livestock, emitter)

	farms.On("FindByID", mock.Anything, f.ID).Return(f, nil)
	livestock.On("Save", mock.Anything, mock.AnythingOfType("*farm.LivestockMovement")).Return(nil)
	emitter.On("LivestockMovementChanged", mock.Anything, isAction(domainagenda.ActionCreate),
		mock.AnythingOfType("*farm.LivestockMovement"), "La Esperanza").Return()

	resp, err := svc.Record(context.Background(), actor, f.ID, RecordLivestockRequest{
		Type:       "entry",
		Category:   "terneros",
		Quantity:   6,
		Reason:     "nacimiento",
		OccurredAt: movementDate,
	})

	require.NoError(t, err)
	assert.Equal(t, f.ID, resp.FarmID)
	assert.Equal(t, "entry", resp.Type)
	emitter.AssertExpectations(t)
}

func TestLivestockService_RecordUnknownFarm(t *testing.T) {
	farms := new(MockFarmRepository)
	svc := NewLivestockService(farms, new(MockLivestockRepository), new(MockEventEmitter))
	id := uuid.New()
	farms.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Record(context.Background(), actor, id, RecordLivestockRequest{
		Type: "entry", Category: "vacas", Quantity: 1, OccurredAt: movementDate,
	})

	assert.True(t, shared.IsNotFound(err))
}

func TestLivestockService_DeleteSaleExitRefused(t *testing.T) {
	f := newFarm(t)
	exit, err := farm.NewSaleExit(actor.ID, f.ID, uuid.New(), "novillos", 10, movementDate)
	require.NoError(t, err)

	livestock := new(MockLivestockRepository)
	emitter := new(MockEventEmitter)
	svc := NewLivestockService(new(MockFarmRepository), livestock, emitter)
	livestock.On("FindByID", mock.Anything, exit.ID).Return(exit, nil)

	err = svc.Delete(context.Background(), actor, exit.ID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	livestock.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	emitter.AssertNotCalled(t, "LivestockMovementChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLivestockService_DeleteEmits(t *testing.T) {
	f := newFarm(t)
	mv, err := farm.NewLivestockMovement(actor.ID, f.ID, farm.LivestockMovementParams{
		Type: farm.MovementExit, Category: "vacas", Quantity: 1, Reason: "muerte", OccurredAt: movementDate,
	})
	require.NoError(t, err)

	farms := new(MockFarmRepository)
	livestock := new(MockLivestockRepository)
	emitter := new(MockEventEmitter)
	svc := NewLivestockService(farms, livestock, emitter)

	livestock.On("FindByID", mock.Anything, mv.ID).Return(mv, nil)
	farms.On("FindByID", mock.Anything, f.ID).Return(f, nil)
	livestock.On("Delete", mock.Anything, mv.ID).Return(nil)
	emitter.On("LivestockMovementChanged", mock.Anything, isAction(domainagenda.ActionDelete), mv, "La Esperanza").Return().Once()

	require.NoError(t, svc.Delete(context.Background(), actor, mv.ID))
	emitter.AssertExpectations(t)
}

func TestLivestockService_ListByFarmFilters(t *testing.T) {
	f := newFarm(t)
	farms := new(MockFarmRepository)
	livestock := new(MockLivestockRepository)
	svc := NewLivestockService(farms, livestock, new(MockEventEmitter))

	farms.On("FindByID", mock.Anything, f.ID).Return(f, nil)
	matchFilter := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["type"] == "exit" && filter.OrderBy == "occurred_at" && filter.PageSize == 20
	})
	livestock.On("FindByFarm", mock.Anything, f.ID, matchFilter).Return([]farm.LivestockMovement{}, nil)
	livestock.On("CountByFarm", mock.Anything, f.ID, matchFilter).Return(int64(0), nil)

	items, total, err := svc.ListByFarm(context.Background(), f.ID, LivestockListFilter{Type: "exit"})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestLivestockService_StoreFailureIsDependencyError(t *testing.T) {
	f := newFarm(t)
	farms := new(MockFarmRepository)
	livestock := new(MockLivestockRepository)
	emitter := new(MockEventEmitter)
	svc := NewLivestockService(farms, livestock, emitter)
	farms.On("FindByID", mock.Anything, f.ID).Return(f, nil)
	livestock.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset by peer"))

	_, err := svc.Record(context.Background(), actor, f.ID, RecordLivestockRequest{
		Type: "entry", Category: "vacas", Quantity: 3, OccurredAt: movementDate,
	})

	assert.True(t, shared.IsDependencyFailure(err))
	emitter.AssertNotCalled(t, "LivestockMovementChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
