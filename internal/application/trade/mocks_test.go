package trade

import (
	"context"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.AuctionMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.AuctionMovement), args.Error(1)
}

func (m *MockAuctionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.AuctionMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.AuctionMovement), args.Error(1)
}

func (m *MockAuctionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuctionRepository) FindForBalance(ctx context.Context, auctionName string) ([]trade.AuctionMovement, error) {
	args := m.Called(ctx, auctionName)
	return args.Get(0).([]trade.AuctionMovement), args.Error(1)
}

func (m *MockAuctionRepository) Save(ctx context.Context, movement *trade.AuctionMovement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockAuctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindAll(ctx context.Context, filter shared.Filter) ([]farm.Farm, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFarmRepository) Save(ctx context.Context, f *farm.Farm) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockLivestockRepository struct {
	mock.Mock
}

func (m *MockLivestockRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.LivestockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.LivestockMovement), args.Error(1)
}

func (m *MockLivestockRepository) FindByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) ([]farm.LivestockMovement, error) {
	args := m.Called(ctx, farmID, filter)
	return args.Get(0).([]farm.LivestockMovement), args.Error(1)
}

func (m *MockLivestockRepository) CountByFarm(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, farmID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLivestockRepository) FindAllByFarm(ctx context.Context, farmID uuid.UUID) ([]farm.LivestockMovement, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).([]farm.LivestockMovement), args.Error(1)
}

func (m *MockLivestockRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]farm.LivestockMovement, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).([]farm.LivestockMovement), args.Error(1)
}

func (m *MockLivestockRepository) Save(ctx context.Context, movement *farm.LivestockMovement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockLivestockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLivestockRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return m.Called(ctx, saleID).Error(0)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Movement), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehouse.Movement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehouse.Movement), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) FindForStock(ctx context.Context, farmID *uuid.UUID) ([]warehouse.Movement, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).([]warehouse.Movement), args.Error(1)
}

func (m *MockWarehouseRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]warehouse.Movement, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).([]warehouse.Movement), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, movement *warehouse.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockWarehouseRepository) SaveBatch(ctx context.Context, movements []*warehouse.Movement) error {
	return m.Called(ctx, movements).Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWarehouseRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	return m.Called(ctx, saleID).Error(0)
}

type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDraftRepository) Load(ctx context.Context, owner string, form draft.Form) (*draft.Draft, error) {
	args := m.Called(ctx, owner, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*draft.Draft), args.Error(1)
}

func (m *MockDraftRepository) Clear(ctx context.Context, owner string, form draft.Form) error {
	return m.Called(ctx, owner, form).Error(0)
}

// failingScope fails the transaction without running fn's commit
type failingScope struct {
	repos TransactionalRepositories
	err   error
}

func (s failingScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	if err := fn(s.repos); err != nil {
		return err
	}
	return s.err
}
