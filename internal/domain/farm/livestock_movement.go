package farm

import (
	"strings"
	"time"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType is the direction of a herd movement
type MovementType string

const (
	MovementEntry MovementType = "entry"
	MovementExit  MovementType = "exit"
)

// IsValid reports whether t is entry or exit
func (t MovementType) IsValid() bool {
	return t == MovementEntry || t == MovementExit
}

// LivestockMovement records animals entering or leaving a farm's herd
type LivestockMovement struct {
	shared.BaseAggregateRoot
	FarmID     uuid.UUID
	Type       MovementType
	Category   string
	Quantity   int
	Reason     string
	OccurredAt time.Time
	Notes      string
	SaleID     *uuid.UUID
}

// LivestockMovementParams holds the editable attributes of a movement
type LivestockMovementParams struct {
	Type       MovementType
	Category   string
	Quantity   int
	Reason     string
	OccurredAt time.Time
	Notes      string
}

// NewLivestockMovement records a movement on farmID
func NewLivestockMovement(createdBy string, farmID uuid.UUID, p LivestockMovementParams) (*LivestockMovement, error) {
	if farmID == uuid.Nil {
		return nil, shared.NewValidationError("farm is required")
	}
	if err := validateMovementParams(p); err != nil {
		return nil, err
	}
	m := &LivestockMovement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy),
		FarmID:            farmID,
	}
	m.apply(p)
	return m, nil
}

// NewSaleExit creates the exit movement that accompanies a sale
func NewSaleExit(createdBy string, farmID, saleID uuid.UUID, category string, quantity int, at time.Time) (*LivestockMovement, error) {
	m, err := NewLivestockMovement(createdBy, farmID, LivestockMovementParams{
		Type:       MovementExit,
		Category:   category,
		Quantity:   quantity,
		Reason:     "venta",
		OccurredAt: at,
	})
	if err != nil {
		return nil, err
	}
	id := saleID
	m.SaleID = &id
	return m, nil
}

// Update replaces the editable attributes
func (m *LivestockMovement) Update(p LivestockMovementParams) error {
	if m.SaleID != nil && p.Type != m.Type {
		return shared.NewDomainError(shared.CodeInvalidState, "sale exits cannot change direction")
	}
	if err := validateMovementParams(p); err != nil {
		return err
	}
	m.apply(p)
	m.UpdatedAt = time.Now().UTC()
	m.IncrementVersion()
	return nil
}

// Signed returns the quantity with the sign of its direction
func (m *LivestockMovement) Signed() int {
	if m.Type == MovementExit {
		return -m.Quantity
	}
	return m.Quantity
}

func (m *LivestockMovement) apply(p LivestockMovementParams) {
	m.Type = p.Type
	m.Category = strings.TrimSpace(p.Category)
	m.Quantity = p.Quantity
	m.Reason = strings.TrimSpace(p.Reason)
	m.OccurredAt = p.OccurredAt.UTC()
	m.Notes = strings.TrimSpace(p.Notes)
}

func validateMovementParams(p LivestockMovementParams) error {
	if !p.Type.IsValid() {
		return shared.NewValidationErrorf("invalid movement type %q", p.Type)
	}
	if strings.TrimSpace(p.Category) == "" {
		return shared.NewValidationError("animal category is required")
	}
	if p.Quantity <= 0 {
		return shared.NewValidationError("quantity must be greater than zero")
	}
	if p.OccurredAt.IsZero() {
		return shared.NewValidationError("movement date is required")
	}
	return nil
}
