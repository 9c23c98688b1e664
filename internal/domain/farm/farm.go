package farm

import (
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Farm is a property operated by the company (finca)
type Farm struct {
	shared.BaseAggregateRoot
	Name         string
	Location     string
	Owner        string
	AreaHectares decimal.Decimal
	Notes        string
}

// FarmParams holds the editable attributes of a farm
type FarmParams struct {
	Name         string
	Location     string
	Owner        string
	AreaHectares decimal.Decimal
	Notes        string
}

// NewFarm creates a farm owned by createdBy
func NewFarm(createdBy string, p FarmParams) (*Farm, error) {
	if err := validateFarmParams(p); err != nil {
		return nil, err
	}
	f := &Farm{BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy)}
	f.apply(p)
	return f, nil
}

// Update replaces the editable attributes. Concurrent updates are not
// detected; the last one to be saved wins.
func (f *Farm) Update(p FarmParams) error {
	if err := validateFarmParams(p); err != nil {
		return err
	}
	f.apply(p)
	f.UpdatedAt = time.Now().UTC()
	f.IncrementVersion()
	return nil
}

func (f *Farm) apply(p FarmParams) {
	f.Name = strings.TrimSpace(p.Name)
	f.Location = strings.TrimSpace(p.Location)
	f.Owner = strings.TrimSpace(p.Owner)
	f.AreaHectares = p.AreaHectares
	f.Notes = strings.TrimSpace(p.Notes)
}

func validateFarmParams(p FarmParams) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewValidationError("farm name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("farm name cannot exceed 200 characters")
	}
	location := strings.TrimSpace(p.Location)
	if location == "" {
		return shared.NewValidationError("farm location is required")
	}
	if len(location) > 300 {
		return shared.NewValidationError("farm location cannot exceed 300 characters")
	}
	if p.AreaHectares.IsNegative() {
		return shared.NewValidationError("farm area cannot be negative")
	}
	return nil
}
