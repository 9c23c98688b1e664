package models

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseMovementModel is the persistence model for bodega stock movements.
type WarehouseMovementModel struct {
	AggregateModel
	FarmID     *uuid.UUID          `gorm:"type:uuid;index"`
	Direction  warehouse.Direction `gorm:"type:varchar(10);not null"`
	Product    string              `gorm:"type:varchar(200);not null;index"`
	Quantity   decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Unit       string              `gorm:"type:varchar(30);not null"`
	UnitCost   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	OccurredAt time.Time           `gorm:"not null;index"`
	Notes      string              `gorm:"type:text"`
	SaleID     *uuid.UUID          `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (WarehouseMovementModel) TableName() string {
	return "warehouse_movements"
}

// ToDomain converts the persistence model to a domain Movement.
func (m *WarehouseMovementModel) ToDomain() *warehouse.Movement {
	return &warehouse.Movement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FarmID:            uuidPtr(m.FarmID),
		Direction:         m.Direction,
		Product:           m.Product,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		UnitCost:          m.UnitCost,
		OccurredAt:        m.OccurredAt.UTC(),
		Notes:             m.Notes,
		SaleID:            uuidPtr(m.SaleID),
	}
}

// FromDomain populates the persistence model from a domain Movement.
func (m *WarehouseMovementModel) FromDomain(mv *warehouse.Movement) {
	m.FromDomainAggregateRoot(mv.BaseAggregateRoot)
	m.FarmID = uuidPtr(mv.FarmID)
	m.Direction = mv.Direction
	m.Product = mv.Product
	m.Quantity = mv.Quantity
	m.Unit = mv.Unit
	m.UnitCost = mv.UnitCost
	m.OccurredAt = mv.OccurredAt.UTC()
	m.Notes = mv.Notes
	m.SaleID = uuidPtr(mv.SaleID)
}

// WarehouseMovementModelFromDomain creates a new persistence model from a domain Movement.
func WarehouseMovementModelFromDomain(mv *warehouse.Movement) *WarehouseMovementModel {
	m := &WarehouseMovementModel{}
	m.FromDomain(mv)
	return m
}
