package warehouse

import (
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether stock enters or leaves the bodega
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// IsValid reports whether d is in or out
func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Label returns the Spanish label used in agenda subkinds
func (d Direction) Label() string {
	if d == DirectionOut {
		return "salida"
	}
	return "entrada"
}

// Movement is a bodega stock movement of a single product
type Movement struct {
	shared.BaseAggregateRoot
	FarmID     *uuid.UUID
	Direction  Direction
	Product    string
	Quantity   decimal.Decimal
	Unit       string
	UnitCost   decimal.Decimal
	OccurredAt time.Time
	Notes      string
	SaleID     *uuid.UUID
}

// MovementParams holds the editable attributes of a movement
type MovementParams struct {
	FarmID     *uuid.UUID
	Direction  Direction
	Product    string
	Quantity   decimal.Decimal
	Unit       string
	UnitCost   decimal.Decimal
	OccurredAt time.Time
	Notes      string
}

// NewMovement records a stock movement
func NewMovement(createdBy string, p MovementParams) (*Movement, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	m := &Movement{BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy)}
	m.apply(p)
	return m, nil
}

// NewSaleConsumption creates the outgoing movement for a supply line consumed by a sale
func NewSaleConsumption(createdBy string, farmID, saleID uuid.UUID, line SupplyLine, at time.Time) (*Movement, error) {
	farm := farmID
	m, err := NewMovement(createdBy, MovementParams{
		FarmID:     &farm,
		Direction:  DirectionOut,
		Product:    line.Product,
		Quantity:   line.Quantity,
		Unit:       line.Unit,
		OccurredAt: at,
		Notes:      "Consumo asociado a venta",
	})
	if err != nil {
		return nil, err
	}
	sale := saleID
	m.SaleID = &sale
	return m, nil
}

// Update replaces the editable attributes
func (m *Movement) Update(p MovementParams) error {
	if err := validateParams(p); err != nil {
		return err
	}
	m.apply(p)
	m.UpdatedAt = time.Now().UTC()
	m.IncrementVersion()
	return nil
}

// Signed returns the quantity with the sign of its direction
func (m *Movement) Signed() decimal.Decimal {
	if m.Direction == DirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// TotalCost returns quantity × unit cost
func (m *Movement) TotalCost() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}

func (m *Movement) apply(p MovementParams) {
	if p.FarmID != nil {
		id := *p.FarmID
		m.FarmID = &id
	} else {
		m.FarmID = nil
	}
	m.Direction = p.Direction
	m.Product = strings.TrimSpace(p.Product)
	m.Quantity = p.Quantity
	m.Unit = strings.TrimSpace(p.Unit)
	m.UnitCost = p.UnitCost
	m.OccurredAt = p.OccurredAt.UTC()
	m.Notes = strings.TrimSpace(p.Notes)
}

func validateParams(p MovementParams) error {
	if !p.Direction.IsValid() {
		return shared.NewValidationErrorf("invalid warehouse direction %q", p.Direction)
	}
	if err := (SupplyLine{Product: p.Product, Quantity: p.Quantity, Unit: p.Unit}).Validate(); err != nil {
		return err
	}
	if p.UnitCost.IsNegative() {
		return shared.NewValidationError("unit cost cannot be negative")
	}
	if p.OccurredAt.IsZero() {
		return shared.NewValidationError("movement date is required")
	}
	return nil
}
