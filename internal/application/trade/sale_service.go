package trade

import (
	"context"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// databaseDependency names the store in DependencyError messages
const databaseDependency = "database"

// SaleService registers animal sales together with their herd exit and
// bodega consumption
type SaleService struct {
	txScope  TransactionScope
	saleRepo trade.SaleRepository
	farmRepo farm.FarmRepository
	drafts   draft.Repository
	emitter  agenda.EventEmitter
	logger   *zap.Logger
}

// SaleServiceOption configures a SaleService
type SaleServiceOption func(*SaleService)

// WithDraftRepository enables clearing the actor's sale draft after a sale is committed
func WithDraftRepository(drafts draft.Repository) SaleServiceOption {
	return func(s *SaleService) {
		s.drafts = drafts
	}
}

// WithSaleLogger sets the logger
func WithSaleLogger(logger *zap.Logger) SaleServiceOption {
	return func(s *SaleService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSaleService creates a new SaleService
func NewSaleService(
	txScope TransactionScope,
	saleRepo trade.SaleRepository,
	farmRepo farm.FarmRepository,
	emitter agenda.EventEmitter,
	opts ...SaleServiceOption,
) *SaleService {
	s := &SaleService{
		txScope:  txScope,
		saleRepo: saleRepo,
		farmRepo: farmRepo,
		emitter:  emitter,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a sale. The sale, its herd exit and one bodega exit per
// supply line are committed together; agenda events follow the commit and
// the actor's sale draft is cleared only once everything is stored.
func (s *SaleService) Create(ctx context.Context, actor shared.Actor, req CreateSaleRequest) (*SaleResponse, error) {
	f, err := s.farmRepo.FindByID(ctx, req.FarmID)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	sale, err := trade.NewSale(actor.ID, trade.SaleParams{
		FarmID:         req.FarmID,
		Buyer:          req.Buyer,
		SoldAt:         req.SoldAt,
		AnimalCategory: req.AnimalCategory,
		AnimalCount:    req.AnimalCount,
		TotalWeightKg:  req.TotalWeightKg,
		PricePerKg:     req.PricePerKg,
		SupplyLines:    toSupplyLines(req.SupplyLines),
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}

	exit, err := farm.NewSaleExit(actor.ID, sale.FarmID, sale.ID, sale.AnimalCategory, sale.AnimalCount, sale.SoldAt)
	if err != nil {
		return nil, err
	}
	consumptions := make([]*warehouse.Movement, 0, len(sale.SupplyLines))
	for _, line := range sale.SupplyLines {
		mv, err := warehouse.NewSaleConsumption(actor.ID, sale.FarmID, sale.ID, line, sale.SoldAt)
		if err != nil {
			return nil, err
		}
		consumptions = append(consumptions, mv)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.LivestockRepo().Save(ctx, exit); err != nil {
			return err
		}
		if len(consumptions) > 0 {
			return repos.WarehouseRepo().SaveBatch(ctx, consumptions)
		}
		return nil
	})
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.SaleChanged(ctx, agenda.Create(actor), sale, f.Name)
	s.clearDraft(ctx, actor)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales, most recent first
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "sold_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.FarmID != nil {
		domainFilter.Filters["farm_id"] = *filter.FarmID
	}
	if filter.From != nil {
		domainFilter.Filters["sold_from"] = *filter.From
	}
	if filter.To != nil {
		// the upper bound is the whole "to" day
		domainFilter.Filters["sold_to"] = filter.To.AddDate(0, 0, 1)
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	return ToSaleResponses(sales), total, nil
}

// Update changes the commercial terms of a sale. A new sale date moves the
// linked herd exit and bodega exits with it. Only the sale event is emitted.
func (s *SaleService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	upd := trade.SaleUpdate{
		Buyer:         sale.Buyer,
		SoldAt:        sale.SoldAt,
		TotalWeightKg: sale.TotalWeightKg,
		PricePerKg:    sale.PricePerKg,
		Notes:         sale.Notes,
	}
	if req.Buyer != nil {
		upd.Buyer = *req.Buyer
	}
	if req.SoldAt != nil {
		upd.SoldAt = *req.SoldAt
	}
	if req.TotalWeightKg != nil {
		upd.TotalWeightKg = *req.TotalWeightKg
	}
	if req.PricePerKg != nil {
		upd.PricePerKg = *req.PricePerKg
	}
	if req.Notes != nil {
		upd.Notes = *req.Notes
	}

	dateChanged := !upd.SoldAt.Equal(sale.SoldAt)
	if err := sale.Update(upd); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		if !dateChanged {
			return nil
		}
		return s.moveLinkedMovements(ctx, repos, sale)
	})
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.SaleChanged(ctx, agenda.Update(actor), sale, s.farmName(ctx, sale.FarmID))

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a sale together with its herd exit and bodega exits.
// A single delete event carries the sale's last-known state.
func (s *SaleService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	farmName := s.farmName(ctx, sale.FarmID)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.LivestockRepo().DeleteBySale(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.WarehouseRepo().DeleteBySale(ctx, sale.ID); err != nil {
			return err
		}
		return repos.SaleRepo().Delete(ctx, sale.ID)
	})
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.SaleChanged(ctx, agenda.Delete(actor), sale, farmName)
	return nil
}

func (s *SaleService) moveLinkedMovements(ctx context.Context, repos TransactionalRepositories, sale *trade.Sale) error {
	exits, err := repos.LivestockRepo().FindBySale(ctx, sale.ID)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	for i := range exits {
		mv := &exits[i]
		err := mv.Update(farm.LivestockMovementParams{
			Type:       mv.Type,
			Category:   mv.Category,
			Quantity:   mv.Quantity,
			Reason:     mv.Reason,
			OccurredAt: sale.SoldAt,
			Notes:      mv.Notes,
		})
		if err != nil {
			return err
		}
		if err := repos.LivestockRepo().Save(ctx, mv); err != nil {
			return err
		}
	}

	consumptions, err := repos.WarehouseRepo().FindBySale(ctx, sale.ID)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	for i := range consumptions {
		mv := &consumptions[i]
		err := mv.Update(warehouse.MovementParams{
			FarmID:     mv.FarmID,
			Direction:  mv.Direction,
			Product:    mv.Product,
			Quantity:   mv.Quantity,
			Unit:       mv.Unit,
			UnitCost:   mv.UnitCost,
			OccurredAt: sale.SoldAt,
			Notes:      mv.Notes,
		})
		if err != nil {
			return err
		}
		if err := repos.WarehouseRepo().Save(ctx, mv); err != nil {
			return err
		}
	}
	return nil
}

func (s *SaleService) farmName(ctx context.Context, farmID uuid.UUID) string {
	f, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		s.logger.Warn("Farm lookup failed while describing sale", zap.String("farm_id", farmID.String()), zap.Error(err))
		return ""
	}
	return f.Name
}

func (s *SaleService) clearDraft(ctx context.Context, actor shared.Actor) {
	if s.drafts == nil || actor.ID == "" {
		return
	}
	if err := s.drafts.Clear(ctx, actor.ID, draft.FormSale); err != nil {
		s.logger.Warn("Failed to clear sale draft after commit",
			zap.String("owner", actor.ID),
			zap.Error(err))
	}
}
