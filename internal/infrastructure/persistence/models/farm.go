package models

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FarmModel is the persistence model for the Farm aggregate.
type FarmModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Location     string          `gorm:"type:varchar(300);not null"`
	Owner        string          `gorm:"type:varchar(200)"`
	AreaHectares decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FarmModel) TableName() string {
	return "farms"
}

// ToDomain converts the persistence model to a domain Farm.
func (m *FarmModel) ToDomain() *farm.Farm {
	return &farm.Farm{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Location:          m.Location,
		Owner:             m.Owner,
		AreaHectares:      m.AreaHectares,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Farm.
func (m *FarmModel) FromDomain(f *farm.Farm) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Name = f.Name
	m.Location = f.Location
	m.Owner = f.Owner
	m.AreaHectares = f.AreaHectares
	m.Notes = f.Notes
}

// FarmModelFromDomain creates a new persistence model from a domain Farm.
func FarmModelFromDomain(f *farm.Farm) *FarmModel {
	m := &FarmModel{}
	m.FromDomain(f)
	return m
}

// LivestockMovementModel is the persistence model for herd movements.
type LivestockMovementModel struct {
	AggregateModel
	FarmID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type       farm.MovementType `gorm:"type:varchar(10);not null"`
	Category   string            `gorm:"type:varchar(100);not null"`
	Quantity   int               `gorm:"not null"`
	Reason     string            `gorm:"type:varchar(200)"`
	OccurredAt time.Time         `gorm:"not null;index"`
	Notes      string            `gorm:"type:text"`
	SaleID     *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LivestockMovementModel) TableName() string {
	return "livestock_movements"
}

// ToDomain converts the persistence model to a domain LivestockMovement.
func (m *LivestockMovementModel) ToDomain() *farm.LivestockMovement {
	return &farm.LivestockMovement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FarmID:            m.FarmID,
		Type:              m.Type,
		Category:          m.Category,
		Quantity:          m.Quantity,
		Reason:            m.Reason,
		OccurredAt:        m.OccurredAt.UTC(),
		Notes:             m.Notes,
		SaleID:            uuidPtr(m.SaleID),
	}
}

// FromDomain populates the persistence model from a domain LivestockMovement.
func (m *LivestockMovementModel) FromDomain(lm *farm.LivestockMovement) {
	m.FromDomainAggregateRoot(lm.BaseAggregateRoot)
	m.FarmID = lm.FarmID
	m.Type = lm.Type
	m.Category = lm.Category
	m.Quantity = lm.Quantity
	m.Reason = lm.Reason
	m.OccurredAt = lm.OccurredAt.UTC()
	m.Notes = lm.Notes
	m.SaleID = uuidPtr(lm.SaleID)
}

// LivestockMovementModelFromDomain creates a new persistence model from a domain movement.
func LivestockMovementModelFromDomain(lm *farm.LivestockMovement) *LivestockMovementModel {
	m := &LivestockMovementModel{}
	m.FromDomain(lm)
	return m
}
