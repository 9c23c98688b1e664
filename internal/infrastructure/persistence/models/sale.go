package models

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SaleModel is the persistence model for the Sale aggregate.
// Supply lines are kept as a JSON column; the bodega movements they produced
// live in warehouse_movements with sale_id set.
type SaleModel struct {
	AggregateModel
	FarmID         uuid.UUID                                 `gorm:"type:uuid;not null;index"`
	Buyer          string                                    `gorm:"type:varchar(200);not null"`
	SoldAt         time.Time                                 `gorm:"not null;index"`
	AnimalCategory string                                    `gorm:"type:varchar(100);not null"`
	AnimalCount    int                                       `gorm:"not null"`
	TotalWeightKg  decimal.Decimal                           `gorm:"type:decimal(18,4);not null;default:0"`
	PricePerKg     decimal.Decimal                           `gorm:"type:decimal(18,4);not null;default:0"`
	SupplyLines    datatypes.JSONSlice[warehouse.SupplyLine] `gorm:"not null"`
	Notes          string                                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	lines := make([]warehouse.SupplyLine, len(m.SupplyLines))
	copy(lines, m.SupplyLines)
	return &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FarmID:            m.FarmID,
		Buyer:             m.Buyer,
		SoldAt:            m.SoldAt.UTC(),
		AnimalCategory:    m.AnimalCategory,
		AnimalCount:       m.AnimalCount,
		TotalWeightKg:     m.TotalWeightKg,
		PricePerKg:        m.PricePerKg,
		SupplyLines:       lines,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Sale.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.FarmID = s.FarmID
	m.Buyer = s.Buyer
	m.SoldAt = s.SoldAt.UTC()
	m.AnimalCategory = s.AnimalCategory
	m.AnimalCount = s.AnimalCount
	m.TotalWeightKg = s.TotalWeightKg
	m.PricePerKg = s.PricePerKg
	m.SupplyLines = datatypes.NewJSONSlice(append([]warehouse.SupplyLine{}, s.SupplyLines...))
	m.Notes = s.Notes
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// AuctionMovementModel is the persistence model for auction purchases and sales.
type AuctionMovementModel struct {
	AggregateModel
	AuctionName    string            `gorm:"type:varchar(200);not null;index"`
	Location       string            `gorm:"type:varchar(300)"`
	FarmID         *uuid.UUID        `gorm:"type:uuid;index"`
	Type           trade.AuctionType `gorm:"type:varchar(10);not null"`
	AnimalCategory string            `gorm:"type:varchar(100);not null"`
	AnimalCount    int               `gorm:"not null"`
	WeightKg       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	PricePerKg     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Commission     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	OccurredAt     time.Time         `gorm:"not null;index"`
	Notes          string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuctionMovementModel) TableName() string {
	return "auction_movements"
}

// ToDomain converts the persistence model to a domain AuctionMovement.
func (m *AuctionMovementModel) ToDomain() *trade.AuctionMovement {
	return &trade.AuctionMovement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AuctionName:       m.AuctionName,
		Location:          m.Location,
		FarmID:            uuidPtr(m.FarmID),
		Type:              m.Type,
		AnimalCategory:    m.AnimalCategory,
		AnimalCount:       m.AnimalCount,
		WeightKg:          m.WeightKg,
		PricePerKg:        m.PricePerKg,
		Commission:        m.Commission,
		OccurredAt:        m.OccurredAt.UTC(),
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain AuctionMovement.
func (m *AuctionMovementModel) FromDomain(a *trade.AuctionMovement) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AuctionName = a.AuctionName
	m.Location = a.Location
	m.FarmID = uuidPtr(a.FarmID)
	m.Type = a.Type
	m.AnimalCategory = a.AnimalCategory
	m.AnimalCount = a.AnimalCount
	m.WeightKg = a.WeightKg
	m.PricePerKg = a.PricePerKg
	m.Commission = a.Commission
	m.OccurredAt = a.OccurredAt.UTC()
	m.Notes = a.Notes
}

// AuctionMovementModelFromDomain creates a new persistence model from a domain AuctionMovement.
func AuctionMovementModelFromDomain(a *trade.AuctionMovement) *AuctionMovementModel {
	m := &AuctionMovementModel{}
	m.FromDomain(a)
	return m
}
