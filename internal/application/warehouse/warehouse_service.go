package warehouse

import (
	"context"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
)

// databaseDependency names the store in DependencyError messages
const databaseDependency = "database"

// WarehouseService records bodega movements and reports stock
type WarehouseService struct {
	movementRepo warehouse.MovementRepository
	farmRepo     farm.FarmRepository
	emitter      agenda.EventEmitter
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(movementRepo warehouse.MovementRepository, farmRepo farm.FarmRepository, emitter agenda.EventEmitter) *WarehouseService {
	return &WarehouseService{
		movementRepo: movementRepo,
		farmRepo:     farmRepo,
		emitter:      emitter,
	}
}

// Record registers a bodega movement
func (s *WarehouseService) Record(ctx context.Context, actor shared.Actor, req RecordMovementRequest) (*MovementResponse, error) {
	if err := s.checkFarm(ctx, req.FarmID); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	movement, err := warehouse.NewMovement(actor.ID, toParams(req))
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.WarehouseMovementChanged(ctx, agenda.Create(actor), movement)

	response := ToMovementResponse(movement)
	return &response, nil
}

// GetByID retrieves a movement
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	response := ToMovementResponse(movement)
	return &response, nil
}

// List retrieves movements, newest first
func (s *WarehouseService) List(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "occurred_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.FarmID != nil {
		domainFilter.Filters["farm_id"] = *filter.FarmID
	}
	if filter.Direction != "" {
		domainFilter.Filters["direction"] = filter.Direction
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	return ToMovementResponses(movements), total, nil
}

// Update changes a movement that was recorded directly
func (s *WarehouseService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	if movement.SaleID != nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "movement belongs to a sale and cannot be edited")
	}
	if err := s.checkFarm(ctx, req.FarmID); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	if err := movement.Update(toParams(req)); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.WarehouseMovementChanged(ctx, agenda.Update(actor), movement)

	response := ToMovementResponse(movement)
	return &response, nil
}

// Delete removes a movement that was recorded directly
func (s *WarehouseService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	if movement.SaleID != nil {
		return shared.NewDomainError(shared.CodeInvalidState, "movement belongs to a sale; delete the sale instead")
	}
	if err := s.movementRepo.Delete(ctx, id); err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.WarehouseMovementChanged(ctx, agenda.Delete(actor), movement)
	return nil
}

// StockSummary returns balances per product, for one farm or the whole bodega
func (s *WarehouseService) StockSummary(ctx context.Context, farmID *uuid.UUID) ([]StockLevelResponse, error) {
	if err := s.checkFarm(ctx, farmID); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	movements, err := s.movementRepo.FindForStock(ctx, farmID)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	return toStockLevelResponses(warehouse.ComputeStockLevels(movements)), nil
}

func (s *WarehouseService) checkFarm(ctx context.Context, farmID *uuid.UUID) error {
	if farmID == nil {
		return nil
	}
	_, err := s.farmRepo.FindByID(ctx, *farmID)
	return shared.WrapDependency(databaseDependency, err)
}

func toParams(req RecordMovementRequest) warehouse.MovementParams {
	return warehouse.MovementParams{
		FarmID:     req.FarmID,
		Direction:  warehouse.Direction(req.Direction),
		Product:    req.Product,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		UnitCost:   req.UnitCost,
		OccurredAt: req.OccurredAt,
		Notes:      req.Notes,
	}
}
