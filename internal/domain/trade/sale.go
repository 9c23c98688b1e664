package trade

import (
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a sale of animals from a farm, optionally consuming bodega supplies
type Sale struct {
	shared.BaseAggregateRoot
	FarmID         uuid.UUID
	Buyer          string
	SoldAt         time.Time
	AnimalCategory string
	AnimalCount    int
	TotalWeightKg  decimal.Decimal
	PricePerKg     decimal.Decimal
	SupplyLines    []warehouse.SupplyLine
	Notes          string
}

// SaleParams holds the attributes accepted when a sale is registered
type SaleParams struct {
	FarmID         uuid.UUID
	Buyer          string
	SoldAt         time.Time
	AnimalCategory string
	AnimalCount    int
	TotalWeightKg  decimal.Decimal
	PricePerKg     decimal.Decimal
	SupplyLines    []warehouse.SupplyLine
	Notes          string
}

// SaleUpdate holds the attributes that may change after registration.
// Farm, animals and supply lines are fixed once the sale has produced its
// herd exit and bodega movements.
type SaleUpdate struct {
	Buyer         string
	SoldAt        time.Time
	TotalWeightKg decimal.Decimal
	PricePerKg    decimal.Decimal
	Notes         string
}

// NewSale validates and creates a sale
func NewSale(createdBy string, p SaleParams) (*Sale, error) {
	if p.FarmID == uuid.Nil {
		return nil, shared.NewValidationError("farm is required")
	}
	if strings.TrimSpace(p.AnimalCategory) == "" {
		return nil, shared.NewValidationError("animal category is required")
	}
	if p.AnimalCount <= 0 {
		return nil, shared.NewValidationError("animal count must be greater than zero")
	}
	for i, line := range p.SupplyLines {
		if err := line.Validate(); err != nil {
			return nil, shared.NewValidationErrorf("supply line %d: %s", i+1, err.Error())
		}
	}
	upd := SaleUpdate{
		Buyer:         p.Buyer,
		SoldAt:        p.SoldAt,
		TotalWeightKg: p.TotalWeightKg,
		PricePerKg:    p.PricePerKg,
		Notes:         p.Notes,
	}
	if err := validateSaleUpdate(upd); err != nil {
		return nil, err
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy),
		FarmID:            p.FarmID,
		AnimalCategory:    strings.TrimSpace(p.AnimalCategory),
		AnimalCount:       p.AnimalCount,
		SupplyLines:       make([]warehouse.SupplyLine, len(p.SupplyLines)),
	}
	for i, line := range p.SupplyLines {
		s.SupplyLines[i] = warehouse.SupplyLine{
			Product:  strings.TrimSpace(line.Product),
			Quantity: line.Quantity,
			Unit:     strings.TrimSpace(line.Unit),
		}
	}
	s.apply(upd)
	return s, nil
}

// Update changes the commercial terms of the sale
func (s *Sale) Update(u SaleUpdate) error {
	if err := validateSaleUpdate(u); err != nil {
		return err
	}
	s.apply(u)
	s.UpdatedAt = time.Now().UTC()
	s.IncrementVersion()
	return nil
}

// TotalAmount is weight × price per kg
func (s *Sale) TotalAmount() decimal.Decimal {
	return s.TotalWeightKg.Mul(s.PricePerKg)
}

// AverageWeightKg is the mean weight per animal
func (s *Sale) AverageWeightKg() decimal.Decimal {
	if s.AnimalCount == 0 {
		return decimal.Zero
	}
	return s.TotalWeightKg.Div(decimal.NewFromInt(int64(s.AnimalCount))).Round(2)
}

func (s *Sale) apply(u SaleUpdate) {
	s.Buyer = strings.TrimSpace(u.Buyer)
	s.SoldAt = u.SoldAt.UTC()
	s.TotalWeightKg = u.TotalWeightKg
	s.PricePerKg = u.PricePerKg
	s.Notes = strings.TrimSpace(u.Notes)
}

func validateSaleUpdate(u SaleUpdate) error {
	if strings.TrimSpace(u.Buyer) == "" {
		return shared.NewValidationError("buyer is required")
	}
	if u.SoldAt.IsZero() {
		return shared.NewValidationError("sale date is required")
	}
	if u.TotalWeightKg.IsNegative() {
		return shared.NewValidationError("weight cannot be negative")
	}
	if u.PricePerKg.IsNegative() {
		return shared.NewValidationError("price per kg cannot be negative")
	}
	return nil
}
