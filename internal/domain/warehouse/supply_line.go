package warehouse

import (
	"strings"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplyLine is a quantity of one bodega product (a line item)
type SupplyLine struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// Validate checks the line is usable as a stock movement
func (l SupplyLine) Validate() error {
	if strings.TrimSpace(l.Product) == "" {
		return shared.NewValidationError("product is required")
	}
	if !l.Quantity.IsPositive() {
		return shared.NewValidationError("quantity must be greater than zero")
	}
	if strings.TrimSpace(l.Unit) == "" {
		return shared.NewValidationError("unit is required")
	}
	return nil
}
