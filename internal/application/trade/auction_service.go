package trade

import (
	"context"
	"strings"

	"github.com/bonitoviento/backend/internal/application/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// AuctionService records purchases and sales at subastas
type AuctionService struct {
	auctionRepo trade.AuctionMovementRepository
	farmRepo    farm.FarmRepository
	emitter     agenda.EventEmitter
}

// NewAuctionService creates a new AuctionService
func NewAuctionService(auctionRepo trade.AuctionMovementRepository, farmRepo farm.FarmRepository, emitter agenda.EventEmitter) *AuctionService {
	return &AuctionService{
		auctionRepo: auctionRepo,
		farmRepo:    farmRepo,
		emitter:     emitter,
	}
}

// Record registers an auction movement
func (s *AuctionService) Record(ctx context.Context, actor shared.Actor, req RecordAuctionRequest) (*AuctionResponse, error) {
	if err := s.checkFarm(ctx, req.FarmID); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	movement, err := trade.NewAuctionMovement(actor.ID, toAuctionParams(req))
	if err != nil {
		return nil, err
	}
	if err := s.auctionRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.AuctionMovementChanged(ctx, agenda.Create(actor), movement)

	response := ToAuctionResponse(movement)
	return &response, nil
}

// GetByID retrieves an auction movement
func (s *AuctionService) GetByID(ctx context.Context, id uuid.UUID) (*AuctionResponse, error) {
	movement, err := s.auctionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	response := ToAuctionResponse(movement)
	return &response, nil
}

// List retrieves auction movements, newest first
func (s *AuctionService) List(ctx context.Context, filter AuctionListFilter) ([]AuctionResponse, int64, error) {
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
	if filter.AuctionName != "" {
		domainFilter.Filters["auction_name"] = filter.AuctionName
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	movements, err := s.auctionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	total, err := s.auctionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.WrapDependency(databaseDependency, err)
	}
	return ToAuctionResponses(movements), total, nil
}

// Update changes an auction movement
func (s *AuctionService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req RecordAuctionRequest) (*AuctionResponse, error) {
	movement, err := s.auctionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	if err := s.checkFarm(ctx, req.FarmID); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	if err := movement.Update(toAuctionParams(req)); err != nil {
		return nil, err
	}
	if err := s.auctionRepo.Save(ctx, movement); err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.AuctionMovementChanged(ctx, agenda.Update(actor), movement)

	response := ToAuctionResponse(movement)
	return &response, nil
}

// Delete removes an auction movement
func (s *AuctionService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	movement, err := s.auctionRepo.FindByID(ctx, id)
	if err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}
	if err := s.auctionRepo.Delete(ctx, id); err != nil {
		return shared.WrapDependency(databaseDependency, err)
	}

	s.emitter.AuctionMovementChanged(ctx, agenda.Delete(actor), movement)
	return nil
}

// Balance summarizes purchases, sales and commissions, for one auction or all
func (s *AuctionService) Balance(ctx context.Context, auctionName string) (*AuctionBalanceResponse, error) {
	auctionName = strings.TrimSpace(auctionName)
	movements, err := s.auctionRepo.FindForBalance(ctx, auctionName)
	if err != nil {
		return nil, shared.WrapDependency(databaseDependency, err)
	}
	b := trade.ComputeAuctionBalance(movements)
	return &AuctionBalanceResponse{
		AuctionName: auctionName,
		HeadsBought: b.HeadsBought,
		HeadsSold:   b.HeadsSold,
		Purchases:   b.Purchases,
		Sales:       b.Sales,
		Commissions: b.Commissions,
		Net:         b.Net,
	}, nil
}

func (s *AuctionService) checkFarm(ctx context.Context, farmID *uuid.UUID) error {
	if farmID == nil {
		return nil
	}
	_, err := s.farmRepo.FindByID(ctx, *farmID)
	return shared.WrapDependency(databaseDependency, err)
}

func toAuctionParams(req RecordAuctionRequest) trade.AuctionMovementParams {
	return trade.AuctionMovementParams{
		AuctionName:    req.AuctionName,
		Location:       req.Location,
		FarmID:         req.FarmID,
		Type:           trade.AuctionType(req.Type),
		AnimalCategory: req.AnimalCategory,
		AnimalCount:    req.AnimalCount,
		WeightKg:       req.WeightKg,
		PricePerKg:     req.PricePerKg,
		Commission:     req.Commission,
		OccurredAt:     req.OccurredAt,
		Notes:          req.Notes,
	}
}
