package agenda

import (
	"encoding/json"
	"time"

	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshots capture entity state at emission time. Delete events rely on
// them because the entity can no longer be read back.

type farmSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Owner        string          `json:"owner,omitempty"`
	AreaHectares decimal.Decimal `json:"area_hectares"`
	Notes        string          `json:"notes,omitempty"`
	Version      int             `json:"version"`
}

type livestockSnapshot struct {
	ID         uuid.UUID  `json:"id"`
	FarmID     uuid.UUID  `json:"farm_id"`
	FarmName   string     `json:"farm_name,omitempty"`
	Type       string     `json:"type"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Reason     string     `json:"reason,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
	SaleID     *uuid.UUID `json:"sale_id,omitempty"`
}

type warehouseSnapshot struct {
	ID         uuid.UUID       `json:"id"`
	FarmID     *uuid.UUID      `json:"farm_id,omitempty"`
	Direction  string          `json:"direction"`
	Product    string          `json:"product"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	OccurredAt time.Time       `json:"occurred_at"`
	SaleID     *uuid.UUID      `json:"sale_id,omitempty"`
}

type saleSnapshot struct {
	ID             uuid.UUID              `json:"id"`
	FarmID         uuid.UUID              `json:"farm_id"`
	FarmName       string                 `json:"farm_name,omitempty"`
	Buyer          string                 `json:"buyer"`
	SoldAt         time.Time              `json:"sold_at"`
	AnimalCategory string                 `json:"animal_category"`
	AnimalCount    int                    `json:"animal_count"`
	TotalWeightKg  decimal.Decimal        `json:"total_weight_kg"`
	PricePerKg     decimal.Decimal        `json:"price_per_kg"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	SupplyLines    []warehouse.SupplyLine `json:"supply_lines"`
	Version        int                    `json:"version"`
}

type auctionSnapshot struct {
	ID             uuid.UUID       `json:"id"`
	AuctionName    string          `json:"auction_name"`
	Location       string          `json:"location,omitempty"`
	FarmID         *uuid.UUID      `json:"farm_id,omitempty"`
	Type           string          `json:"type"`
	AnimalCategory string          `json:"animal_category"`
	AnimalCount    int             `json:"animal_count"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	Commission     decimal.Decimal `json:"commission"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

func snapshotFarm(f *farm.Farm) (json.RawMessage, error) {
	return json.Marshal(farmSnapshot{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		Owner:        f.Owner,
		AreaHectares: f.AreaHectares,
		Notes:        f.Notes,
		Version:      f.Version,
	})
}

func snapshotLivestock(m *farm.LivestockMovement, farmName string) (json.RawMessage, error) {
	return json.Marshal(livestockSnapshot{
		ID:         m.ID,
		FarmID:     m.FarmID,
		FarmName:   farmName,
		Type:       string(m.Type),
		Category:   m.Category,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		OccurredAt: m.OccurredAt,
		SaleID:     m.SaleID,
	})
}

func snapshotWarehouse(m *warehouse.Movement) (json.RawMessage, error) {
	return json.Marshal(warehouseSnapshot{
		ID:         m.ID,
		FarmID:     m.FarmID,
		Direction:  string(m.Direction),
		Product:    m.Product,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		UnitCost:   m.UnitCost,
		OccurredAt: m.OccurredAt,
		SaleID:     m.SaleID,
	})
}

func snapshotSale(s *trade.Sale, farmName string) (json.RawMessage, error) {
	lines := s.SupplyLines
	if lines == nil {
		lines = []warehouse.SupplyLine{}
	}
	return json.Marshal(saleSnapshot{
		ID:             s.ID,
		FarmID:         s.FarmID,
		FarmName:       farmName,
		Buyer:          s.Buyer,
		SoldAt:         s.SoldAt,
		AnimalCategory: s.AnimalCategory,
		AnimalCount:    s.AnimalCount,
		TotalWeightKg:  s.TotalWeightKg,
		PricePerKg:     s.PricePerKg,
		TotalAmount:    s.TotalAmount(),
		SupplyLines:    lines,
		Version:        s.Version,
	})
}

func snapshotAuction(m *trade.AuctionMovement) (json.RawMessage, error) {
	return json.Marshal(auctionSnapshot{
		ID:             m.ID,
		AuctionName:    m.AuctionName,
		Location:       m.Location,
		FarmID:         m.FarmID,
		Type:           string(m.Type),
		AnimalCategory: m.AnimalCategory,
		AnimalCount:    m.AnimalCount,
		WeightKg:       m.WeightKg,
		PricePerKg:     m.PricePerKg,
		Commission:     m.Commission,
		OccurredAt:     m.OccurredAt,
	})
}
