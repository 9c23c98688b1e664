package warehouse

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest represents a bodega entry or exit
//
//	@Description	Request body for a bodega entry or exit
type RecordMovementRequest struct {
	FarmID     *uuid.UUID      `json:"farm_id"`
	Direction  string          `json:"direction" binding:"required,warehouse_direction" example:"in"`
	Product    string          `json:"product" binding:"required,min=1,max=200" example:"Sal mineralizada"`
	Quantity   decimal.Decimal `json:"quantity" swaggertype:"string" example:"20"`
	Unit       string          `json:"unit" binding:"required,min=1,max=50" example:"bulto"`
	UnitCost   decimal.Decimal `json:"unit_cost" swaggertype:"string" example:"85000"`
	OccurredAt time.Time       `json:"occurred_at" binding:"required" example:"2024-03-10T08:00:00-05:00"`
	Notes      string          `json:"notes" binding:"max=2000"`
}

// MovementResponse represents a bodega movement in API responses
type MovementResponse struct {
	ID         uuid.UUID       `json:"id"`
	FarmID     *uuid.UUID      `json:"farm_id,omitempty"`
	Direction  string          `json:"direction"`
	Product    string          `json:"product"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	OccurredAt time.Time       `json:"occurred_at"`
	Notes      string          `json:"notes,omitempty"`
	SaleID     *uuid.UUID      `json:"sale_id,omitempty"`
	Version    int             `json:"version"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MovementListFilter represents filter options for the bodega movement list
type MovementListFilter struct {
	Search    string     `form:"search"`
	FarmID    *uuid.UUID `form:"farm_id"`
	Direction string     `form:"direction" binding:"omitempty,warehouse_direction"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockLevelResponse is the balance of one product
type StockLevelResponse struct {
	Product   string          `json:"product"`
	Unit      string          `json:"unit"`
	In        decimal.Decimal `json:"in"`
	Out       decimal.Decimal `json:"out"`
	Balance   decimal.Decimal `json:"balance"`
	InputCost decimal.Decimal `json:"input_cost"`
}

// ToMovementResponse converts a domain Movement to MovementResponse
func ToMovementResponse(m *warehouse.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		FarmID:     m.FarmID,
		Direction:  string(m.Direction),
		Product:    m.Product,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		UnitCost:   m.UnitCost,
		TotalCost:  m.TotalCost(),
		OccurredAt: m.OccurredAt,
		Notes:      m.Notes,
		SaleID:     m.SaleID,
		Version:    m.Version,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToMovementResponses converts a slice of domain Movements
func ToMovementResponses(movements []warehouse.Movement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}

func toStockLevelResponses(levels []warehouse.StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, len(levels))
	for i, l := range levels {
		out[i] = StockLevelResponse{
			Product:   l.Product,
			Unit:      l.Unit,
			In:        l.In,
			Out:       l.Out,
			Balance:   l.Balance,
			InputCost: l.InputCost,
		}
	}
	return out
}
