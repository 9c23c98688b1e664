package farm

import (
	"context"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LivestockService records herd entries and exits
type LivestockService struct {
	farmRepo      farm.FarmRepository
	livestockRepo farm.LivestockMovementRepository
	emitter       agenda.EventEmitter
}

// NewLivestockService creates a new LivestockService
func NewLivestockService(farmRepo farm.FarmRepository, livestockRepo farm.LivestockMovementRepository, emitter agenda.EventEmitter) *LivestockService {
	return &LivestockService{
		farmRepo:      farmRepo,
		livestockRepo: livestockRepo,
		emitter:       emitter,
	}
}

// Record registers a movement on a farm
func (s *LivestockService) Record(ctx context.Context, actor shared.Actor, farmID uuid.UUID, req RecordLivestockRequest) (*LivestockResponse, error) {
	f, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	movement, err := farm.NewLivestockMovement(actor.ID, farmID, toParams(req))
	if err != nil {
		return nil, err
	}
	if err := s.livestockRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.LivestockMovementChanged(ctx, agenda.Create(actor), movement, f.Name)

	response := ToLivestockResponse(movement)
	return &response, nil
}

// GetByID retrieves a movement
func (s *LivestockService) GetByID(ctx context.Context, id uuid.UUID) (*LivestockResponse, error) {
	movement, err := s.livestockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	response := ToLivestockResponse(movement)
	return &response, nil
}

// ListByFarm retrieves a farm's movements, newest first
func (s *LivestockService) ListByFarm(ctx context.Context, farmID uuid.UUID, filter LivestockListFilter) ([]LivestockResponse, int64, error) {
	if _, err := s.farmRepo.FindByID(ctx, farmID); err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
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
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	movements, err := s.livestockRepo.FindByFarm(ctx, farmID, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	total, err := s.livestockRepo.CountByFarm(ctx, farmID, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	return ToLivestockResponses(movements), total, nil
}

// Update changes a movement. Exits created by a sale keep their direction.
func (s *LivestockService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req RecordLivestockRequest) (*LivestockResponse, error) {
	movement, err := s.livestockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	f, err := s.farmRepo.FindByID(ctx, movement.FarmID)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	if err := movement.Update(toParams(req)); err != nil {
		return nil, err
	}
	if err := s.livestockRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.LivestockMovementChanged(ctx, agenda.Update(actor), movement, f.Name)

	response := ToLivestockResponse(movement)
	return &response, nil
}

// Delete removes a movement. Exits created by a sale go away with the sale.
func (s *LivestockService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	movement, err := s.livestockRepo.FindByID(ctx, id)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	if movement.SaleID != nil {
		return shared.NewDomainError(shared.CodeInvalidState, "movement belongs to a sale; delete the sale instead")
	}

	farmName := ""
	if f, err := s.farmRepo.FindByID(ctx, movement.FarmID); err == nil {
		farmName = f.Name
	}

	if err := s.livestockRepo.Delete(ctx, id); err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.LivestockMovementChanged(ctx, agenda.Delete(actor), movement, farmName)
	return nil
}

func toParams(req RecordLivestockRequest) farm.LivestockMovementParams {
	return farm.LivestockMovementParams{
		Type:       farm.MovementType(req.Type),
		Category:   req.Category,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		OccurredAt: req.OccurredAt,
		Notes:      req.Notes,
	}
}
