package farm

import (
	"context"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFarmRepository is a mock implementation of farm.FarmRepository
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
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFarmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLivestockRepository is a mock implementation of farm.LivestockMovementRepository
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
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockLivestockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLivestockRepository) DeleteBySale(ctx context.Context, saleID uuid.UUID) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// MockEventEmitter is a mock implementation of agenda.EventEmitter
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) FarmChanged(ctx context.Context, mu agenda.Mutation, f *farm.Farm) agenda.EmissionReport {
	m.Called(ctx, mu, f)
	return agenda.EmissionReport{}
}

func (m *MockEventEmitter) LivestockMovementChanged(ctx context.Context, mu agenda.Mutation, mv *farm.LivestockMovement, farmName string) agenda.EmissionReport {
	m.Called(ctx, mu, mv, farmName)
	return agenda.EmissionReport{}
}

func (m *MockEventEmitter) WarehouseMovementChanged(ctx context.Context, mu agenda.Mutation, mv *warehouse.Movement) agenda.EmissionReport {
	m.Called(ctx, mu, mv)
	return agenda.EmissionReport{}
}

func (m *MockEventEmitter) SaleChanged(ctx context.Context, mu agenda.Mutation, s *trade.Sale, farmName string) agenda.EmissionReport {
	m.Called(ctx, mu, s, farmName)
	return agenda.EmissionReport{}
}

func (m *MockEventEmitter) AuctionMovementChanged(ctx context.Context, mu agenda.Mutation, mv *trade.AuctionMovement) agenda.EmissionReport {
	m.Called(ctx, mu, mv)
	return agenda.EmissionReport{}
}
