package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/application/agenda"
	domainagenda "github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/infrastructure/memstore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var auctionAt = time.Date(2024, 8, 14, 11, 0, 0, 0, time.UTC)

func auctionRequest(kind string) RecordAuctionRequest {
	return RecordAuctionRequest{
		AuctionName:    "Subasta Ganadera del Meta",
		Location:       "Villavicencio",
		Type:           kind,
		AnimalCategory: "terneros",
		AnimalCount:    10,
		WeightKg:       decimal.NewFromInt(2000),
		PricePerKg:     decimal.NewFromInt(9000),
		Commission:     decimal.NewFromInt(360000),
		OccurredAt:     auctionAt,
	}
}

func TestAuctionService_RecordEmitsByType(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuctionRepository)
	events := memstore.NewEventStore(time.UTC)
	svc := NewAuctionService(repo, new(MockFarmRepository), agenda.NewEmitter(events, nil))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	purchase, err := svc.Record(ctx, seller, auctionRequest("purchase"))
	require.NoError(t, err)
	sale, err := svc.Record(ctx, seller, auctionRequest("sale"))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(-18360000).Equal(purchase.Net))
	assert.True(t, decimal.NewFromInt(17640000).Equal(sale.Net))

	p, err := events.FindByBackReference(ctx, domainagenda.RefAuctionMovement, purchase.ID)
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, domainagenda.KindPurchase, p[0].Kind)

	s, err := events.FindByBackReference(ctx, domainagenda.RefAuctionMovement, sale.ID)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, domainagenda.KindAuction, s[0].Kind)
}

func TestAuctionService_RecordInvalidType(t *testing.T) {
	svc := NewAuctionService(new(MockAuctionRepository), new(MockFarmRepository), agenda.NewEmitter(memstore.NewEventStore(time.UTC), nil))

	_, err := svc.Record(context.Background(), seller, auctionRequest("trueque"))

	assert.True(t, shared.IsValidation(err))
}

func TestAuctionService_Balance(t *testing.T) {
	repo := new(MockAuctionRepository)
	svc := NewAuctionService(repo, new(MockFarmRepository), nil)

	var movements []trade.AuctionMovement
	for _, kind := range []trade.AuctionType{trade.AuctionPurchase, trade.AuctionSale} {
		req := auctionRequest(string(kind))
		m, err := trade.NewAuctionMovement(seller.ID, toAuctionParams(req))
		require.NoError(t, err)
		movements = append(movements, *m)
	}
	repo.On("FindForBalance", mock.Anything, "Subasta Ganadera del Meta").Return(movements, nil)

	b, err := svc.Balance(context.Background(), "  Subasta Ganadera del Meta ")

	require.NoError(t, err)
	assert.Equal(t, 10, b.HeadsBought)
	assert.Equal(t, 10, b.HeadsSold)
	assert.True(t, decimal.NewFromInt(720000).Equal(b.Commissions))
	assert.True(t, decimal.NewFromInt(-720000).Equal(b.Net))
}

func TestAuctionService_DeleteNotFound(t *testing.T) {
	repo := new(MockAuctionRepository)
	svc := NewAuctionService(repo, new(MockFarmRepository), nil)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), seller, id)

	assert.True(t, shared.IsNotFound(err))
}

func TestAuctionService_StoreFailureIsDependencyError(t *testing.T) {
	repo := new(MockAuctionRepository)
	svc := NewAuctionService(repo, new(MockFarmRepository), agenda.NewEmitter(memstore.NewEventStore(time.UTC), nil))
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	repo.On("FindForBalance", mock.Anything, "Subasta Ganadera del Meta").Return([]trade.AuctionMovement(nil), errors.New("i/o timeout"))

	_, err := svc.Record(context.Background(), seller, auctionRequest("purchase"))
	assert.True(t, shared.IsDependencyFailure(err))

	_, err = svc.Balance(context.Background(), "Subasta Ganadera del Meta")
	assert.True(t, shared.IsDependencyFailure(err))
}
