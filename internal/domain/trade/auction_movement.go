package trade

import (
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionType is whether animals were bought or sold at auction
type AuctionType string

const (
	AuctionPurchase AuctionType = "purchase"
	AuctionSale     AuctionType = "sale"
)

// IsValid reports whether t is purchase or sale
func (t AuctionType) IsValid() bool {
	return t == AuctionPurchase || t == AuctionSale
}

// AuctionMovement is an animal purchase or sale at a subasta
type AuctionMovement struct {
	shared.BaseAggregateRoot
	AuctionName    string
	Location       string
	FarmID         *uuid.UUID
	Type           AuctionType
	AnimalCategory string
	AnimalCount    int
	WeightKg       decimal.Decimal
	PricePerKg     decimal.Decimal
	Commission     decimal.Decimal
	OccurredAt     time.Time
	Notes          string
}

// AuctionMovementParams holds the editable attributes
type AuctionMovementParams struct {
	AuctionName    string
	Location       string
	FarmID         *uuid.UUID
	Type           AuctionType
	AnimalCategory string
	AnimalCount    int
	WeightKg       decimal.Decimal
	PricePerKg     decimal.Decimal
	Commission     decimal.Decimal
	OccurredAt     time.Time
	Notes          string
}

// NewAuctionMovement validates and creates an auction movement
func NewAuctionMovement(createdBy string, p AuctionMovementParams) (*AuctionMovement, error) {
	if err := validateAuctionParams(p); err != nil {
		return nil, err
	}
	m := &AuctionMovement{BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy)}
	m.apply(p)
	return m, nil
}

// Update replaces the editable attributes
func (m *AuctionMovement) Update(p AuctionMovementParams) error {
	if err := validateAuctionParams(p); err != nil {
		return err
	}
	m.apply(p)
	m.UpdatedAt = time.Now().UTC()
	m.IncrementVersion()
	return nil
}

// Gross is weight × price per kg, before commission
func (m *AuctionMovement) Gross() decimal.Decimal {
	return m.WeightKg.Mul(m.PricePerKg)
}

// Net is the cash effect of the movement: positive for sales, negative for
// purchases, always reduced by the commission.
func (m *AuctionMovement) Net() decimal.Decimal {
	if m.Type == AuctionSale {
		return m.Gross().Sub(m.Commission)
	}
	return m.Gross().Add(m.Commission).Neg()
}

func (m *AuctionMovement) apply(p AuctionMovementParams) {
	m.AuctionName = strings.TrimSpace(p.AuctionName)
	m.Location = strings.TrimSpace(p.Location)
	if p.FarmID != nil {
		id := *p.FarmID
		m.FarmID = &id
	} else {
		m.FarmID = nil
	}
	m.Type = p.Type
	m.AnimalCategory = strings.TrimSpace(p.AnimalCategory)
	m.AnimalCount = p.AnimalCount
	m.WeightKg = p.WeightKg
	m.PricePerKg = p.PricePerKg
	m.Commission = p.Commission
	m.OccurredAt = p.OccurredAt.UTC()
	m.Notes = strings.TrimSpace(p.Notes)
}

func validateAuctionParams(p AuctionMovementParams) error {
	if strings.TrimSpace(p.AuctionName) == "" {
		return shared.NewValidationError("auction name is required")
	}
	if !p.Type.IsValid() {
		return shared.NewValidationErrorf("invalid auction type %q", p.Type)
	}
	if strings.TrimSpace(p.AnimalCategory) == "" {
		return shared.NewValidationError("animal category is required")
	}
	if p.AnimalCount <= 0 {
		return shared.NewValidationError("animal count must be greater than zero")
	}
	if p.WeightKg.IsNegative() || p.PricePerKg.IsNegative() || p.Commission.IsNegative() {
		return shared.NewValidationError("weight, price and commission cannot be negative")
	}
	if p.OccurredAt.IsZero() {
		return shared.NewValidationError("auction date is required")
	}
	return nil
}
