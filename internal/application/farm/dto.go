package farm

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Farm DTOs
// =============================================================================

// CreateFarmRequest represents a request to register a farm
//
//	@Description	Request body for registering a farm
type CreateFarmRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200" example:"Hacienda Bonito Viento"`
	Location     string          `json:"location" binding:"required,min=1,max=300" example:"Puerto López, Meta"`
	Owner        string          `json:"owner" binding:"max=200" example:"Inversiones Bonito Viento SAS"`
	AreaHectares decimal.Decimal `json:"area_hectares" swaggertype:"string" example:"350.5"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// UpdateFarmRequest represents a request to update a farm. Nil fields are left unchanged.
//
//	@Description	Request body for updating a farm; absent fields are left unchanged
type UpdateFarmRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200" example:"Hacienda Bonito Viento"`
	Location     *string          `json:"location" binding:"omitempty,min=1,max=300" example:"Puerto López, Meta"`
	Owner        *string          `json:"owner" binding:"omitempty,max=200" example:"Inversiones Bonito Viento SAS"`
	AreaHectares *decimal.Decimal `json:"area_hectares" swaggertype:"string" example:"360"`
	Notes        *string          `json:"notes" binding:"omitempty,max=2000"`
}

// FarmResponse represents a farm in API responses
type FarmResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Owner        string          `json:"owner,omitempty"`
	AreaHectares decimal.Decimal `json:"area_hectares"`
	Notes        string          `json:"notes,omitempty"`
	Version      int             `json:"version"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FarmListFilter represents filter options for the farm list
type FarmListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name location created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFarmResponse converts a domain Farm to FarmResponse
func ToFarmResponse(f *farm.Farm) FarmResponse {
	return FarmResponse{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		Owner:        f.Owner,
		AreaHectares: f.AreaHectares,
		Notes:        f.Notes,
		Version:      f.Version,
		CreatedBy:    f.CreatedBy,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ToFarmResponses converts a slice of domain Farms
func ToFarmResponses(farms []farm.Farm) []FarmResponse {
	out := make([]FarmResponse, len(farms))
	for i := range farms {
		out[i] = ToFarmResponse(&farms[i])
	}
	return out
}

// =============================================================================
// Livestock DTOs
// =============================================================================

// RecordLivestockRequest represents a herd entry or exit
//
//	@Description	Request body for a herd entry or exit
type RecordLivestockRequest struct {
	Type       string    `json:"type" binding:"required,movement_type" example:"entry"`
	Category   string    `json:"category" binding:"required,min=1,max=100" example:"novillos"`
	Quantity   int       `json:"quantity" binding:"required,min=1" example:"12"`
	Reason     string    `json:"reason" binding:"max=100" example:"compra"`
	OccurredAt time.Time `json:"occurred_at" binding:"required" example:"2024-03-15T09:00:00-05:00"`
	Notes      string    `json:"notes" binding:"max=2000"`
}

// LivestockResponse represents a herd movement in API responses
type LivestockResponse struct {
	ID         uuid.UUID  `json:"id"`
	FarmID     uuid.UUID  `json:"farm_id"`
	Type       string     `json:"type"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Reason     string     `json:"reason,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
	Notes      string     `json:"notes,omitempty"`
	SaleID     *uuid.UUID `json:"sale_id,omitempty"`
	Version    int        `json:"version"`
	CreatedBy  string     `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LivestockListFilter represents filter options for a farm's movements
type LivestockListFilter struct {
	Type     string `form:"type" binding:"omitempty,movement_type"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryCountResponse is the head count of one category
type CategoryCountResponse struct {
	Category string `json:"category"`
	Entries  int    `json:"entries"`
	Exits    int    `json:"exits"`
	Heads    int    `json:"heads"`
}

// HerdSummaryResponse is the current herd inventory of a farm
type HerdSummaryResponse struct {
	FarmID     uuid.UUID               `json:"farm_id"`
	FarmName   string                  `json:"farm_name"`
	Categories []CategoryCountResponse `json:"categories"`
	Total      int                     `json:"total"`
}

// ToLivestockResponse converts a domain LivestockMovement to LivestockResponse
func ToLivestockResponse(m *farm.LivestockMovement) LivestockResponse {
	return LivestockResponse{
		ID:         m.ID,
		FarmID:     m.FarmID,
		Type:       string(m.Type),
		Category:   m.Category,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		OccurredAt: m.OccurredAt,
		Notes:      m.Notes,
		SaleID:     m.SaleID,
		Version:    m.Version,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToLivestockResponses converts a slice of domain LivestockMovements
func ToLivestockResponses(movements []farm.LivestockMovement) []LivestockResponse {
	out := make([]LivestockResponse, len(movements))
	for i := range movements {
		out[i] = ToLivestockResponse(&movements[i])
	}
	return out
}

func toHerdSummary(f *farm.Farm, totals farm.HerdTotals) HerdSummaryResponse {
	categories := make([]CategoryCountResponse, len(totals.Categories))
	for i, c := range totals.Categories {
		categories[i] = CategoryCountResponse{Category: c.Category, Entries: c.Entries, Exits: c.Exits, Heads: c.Heads}
	}
	return HerdSummaryResponse{FarmID: f.ID, FarmName: f.Name, Categories: categories, Total: totals.Total}
}
