package farm

import (
	"context"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// databaseDependency names the store in DependencyError messages
const databaseDependency = "database"

// FarmService handles farm registration and herd inventory
type FarmService struct {
	farmRepo      farm.FarmRepository
	livestockRepo farm.LivestockMovementRepository
	emitter       agenda.EventEmitter
}

// NewFarmService creates a new FarmService
func NewFarmService(farmRepo farm.FarmRepository, livestockRepo farm.LivestockMovementRepository, emitter agenda.EventEmitter) *FarmService {
	return &FarmService{
		farmRepo:      farmRepo,
		livestockRepo: livestockRepo,
		emitter:       emitter,
	}
}

// Create registers a farm
func (s *FarmService) Create(ctx context.Context, actor shared.Actor, req CreateFarmRequest) (*FarmResponse, error) {
	f, err := farm.NewFarm(actor.ID, farm.FarmParams{
		Name:         req.Name,
		Location:     req.Location,
		Owner:        req.Owner,
		AreaHectares: req.AreaHectares,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.farmRepo.Save(ctx, f); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.FarmChanged(ctx, agenda.Create(actor), f)

	response := ToFarmResponse(f)
	return &response, nil
}

// GetByID retrieves a farm
func (s *FarmService) GetByID(ctx context.Context, id uuid.UUID) (*FarmResponse, error) {
	f, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	response := ToFarmResponse(f)
	return &response, nil
}

// List retrieves farms with filtering and pagination
func (s *FarmService) List(ctx context.Context, filter FarmListFilter) ([]FarmResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	farms, err := s.farmRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	total, err := s.farmRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	return ToFarmResponses(farms), total, nil
}

// Update changes a farm's attributes. Concurrent updates are last-write-wins.
func (s *FarmService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateFarmRequest) (*FarmResponse, error) {
	f, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	params := farm.FarmParams{
		Name:         f.Name,
		Location:     f.Location,
		Owner:        f.Owner,
		AreaHectares: f.AreaHectares,
		Notes:        f.Notes,
	}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.Location != nil {
		params.Location = *req.Location
	}
	if req.Owner != nil {
		params.Owner = *req.Owner
	}
	if req.AreaHectares != nil {
		params.AreaHectares = *req.AreaHectares
	}
	if req.Notes != nil {
		params.Notes = *req.Notes
	}

	if err := f.Update(params); err != nil {
		return nil, err
	}
	if err := s.farmRepo.Save(ctx, f); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.FarmChanged(ctx, agenda.Update(actor), f)

	response := ToFarmResponse(f)
	return &response, nil
}

// Delete removes a farm that has no herd movements. Every sale leaves a herd
// exit behind, so this also refuses farms with sales. Agenda events that
// refer to the farm are kept.
func (s *FarmService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	f, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	movements, err := s.livestockRepo.CountByFarm(ctx, id, shared.DefaultFilter())
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	if movements > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "farm has livestock movements and cannot be deleted")
	}

	if err := s.farmRepo.Delete(ctx, id); err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.FarmChanged(ctx, agenda.Delete(actor), f)
	return nil
}

// HerdSummary returns the head count per category of a farm
func (s *FarmService) HerdSummary(ctx context.Context, id uuid.UUID) (*HerdSummaryResponse, error) {
	f, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	movements, err := s.livestockRepo.FindAllByFarm(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	summary := toHerdSummary(f, farm.ComputeHerdTotals(movements))
	return &summary, nil
}
