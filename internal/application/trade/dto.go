package trade

import (
	"time"

	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Sale DTOs
// =============================================================================

// SupplyLineRequest is one bodega product consumed by a sale
//
//	@Description	A bodega product consumed by a sale
type SupplyLineRequest struct {
	Product  string          `json:"product" binding:"required,min=1,max=200" example:"Sal mineralizada"`
	Quantity decimal.Decimal `json:"quantity" swaggertype:"string" example:"2.5"`
	Unit     string          `json:"unit" binding:"required,min=1,max=50" example:"bulto"`
}

// CreateSaleRequest represents a request to register a sale
//
//	@Description	Request body for registering a sale
type CreateSaleRequest struct {
	FarmID         uuid.UUID           `json:"farm_id" binding:"required"`
	Buyer          string              `json:"buyer" binding:"required,min=1,max=200" example:"Frigorífico Guadalupe"`
	SoldAt         time.Time           `json:"sold_at" binding:"required" example:"2024-03-20T10:00:00-05:00"`
	AnimalCategory string              `json:"animal_category" binding:"required,min=1,max=100" example:"novillos"`
	AnimalCount    int                 `json:"animal_count" binding:"required,min=1" example:"10"`
	TotalWeightKg  decimal.Decimal     `json:"total_weight_kg" swaggertype:"string" example:"4500"`
	PricePerKg     decimal.Decimal     `json:"price_per_kg" swaggertype:"string" example:"8900"`
	SupplyLines    []SupplyLineRequest `json:"supply_lines" binding:"omitempty,dive"`
	Notes          string              `json:"notes" binding:"max=2000"`
}

// UpdateSaleRequest changes the commercial terms of a sale
//
//	@Description	Request body for updating a sale; absent fields are left unchanged
type UpdateSaleRequest struct {
	Buyer         *string          `json:"buyer" binding:"omitempty,min=1,max=200" example:"Frigorífico Guadalupe"`
	SoldAt        *time.Time       `json:"sold_at" example:"2024-03-20T10:00:00-05:00"`
	TotalWeightKg *decimal.Decimal `json:"total_weight_kg" swaggertype:"string" example:"4520"`
	PricePerKg    *decimal.Decimal `json:"price_per_kg" swaggertype:"string" example:"8900"`
	Notes         *string          `json:"notes" binding:"omitempty,max=2000"`
}

// SupplyLineResponse is one consumed bodega product
type SupplyLineResponse struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID              uuid.UUID            `json:"id"`
	FarmID          uuid.UUID            `json:"farm_id"`
	Buyer           string               `json:"buyer"`
	SoldAt          time.Time            `json:"sold_at"`
	AnimalCategory  string               `json:"animal_category"`
	AnimalCount     int                  `json:"animal_count"`
	TotalWeightKg   decimal.Decimal      `json:"total_weight_kg"`
	AverageWeightKg decimal.Decimal      `json:"average_weight_kg"`
	PricePerKg      decimal.Decimal      `json:"price_per_kg"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	SupplyLines     []SupplyLineResponse `json:"supply_lines"`
	Notes           string               `json:"notes,omitempty"`
	Version         int                  `json:"version"`
	CreatedBy       string               `json:"created_by,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Search   string     `form:"search"`
	FarmID   *uuid.UUID `form:"farm_id"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	lines := make([]SupplyLineResponse, len(s.SupplyLines))
	for i, l := range s.SupplyLines {
		lines[i] = SupplyLineResponse{Product: l.Product, Quantity: l.Quantity, Unit: l.Unit}
	}
	return SaleResponse{
		ID:              s.ID,
		FarmID:          s.FarmID,
		Buyer:           s.Buyer,
		SoldAt:          s.SoldAt,
		AnimalCategory:  s.AnimalCategory,
		AnimalCount:     s.AnimalCount,
		TotalWeightKg:   s.TotalWeightKg,
		AverageWeightKg: s.AverageWeightKg(),
		PricePerKg:      s.PricePerKg,
		TotalAmount:     s.TotalAmount(),
		SupplyLines:     lines,
		Notes:           s.Notes,
		Version:         s.Version,
		CreatedBy:       s.CreatedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToSaleResponses converts a slice of domain Sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i])
	}
	return out
}

func toSupplyLines(req []SupplyLineRequest) []warehouse.SupplyLine {
	lines := make([]warehouse.SupplyLine, len(req))
	for i, l := range req {
		lines[i] = warehouse.SupplyLine{Product: l.Product, Quantity: l.Quantity, Unit: l.Unit}
	}
	return lines
}

// =============================================================================
// Auction DTOs
// =============================================================================

// RecordAuctionRequest represents an auction purchase or sale
//
//	@Description	Request body for an auction purchase or sale
type RecordAuctionRequest struct {
	AuctionName    string          `json:"auction_name" binding:"required,min=1,max=200" example:"Subasta Ganadera del Meta"`
	Location       string          `json:"location" binding:"max=300" example:"Villavicencio"`
	FarmID         *uuid.UUID      `json:"farm_id"`
	Type           string          `json:"type" binding:"required,auction_type" example:"purchase"`
	AnimalCategory string          `json:"animal_category" binding:"required,min=1,max=100" example:"terneros"`
	AnimalCount    int             `json:"animal_count" binding:"required,min=1" example:"8"`
	WeightKg       decimal.Decimal `json:"weight_kg" swaggertype:"string" example:"1600"`
	PricePerKg     decimal.Decimal `json:"price_per_kg" swaggertype:"string" example:"9500"`
	Commission     decimal.Decimal `json:"commission" swaggertype:"string" example:"250000"`
	OccurredAt     time.Time       `json:"occurred_at" binding:"required" example:"2024-04-02T11:00:00-05:00"`
	Notes          string          `json:"notes" binding:"max=2000"`
}

// AuctionResponse represents an auction movement in API responses
type AuctionResponse struct {
	ID             uuid.UUID       `json:"id"`
	AuctionName    string          `json:"auction_name"`
	Location       string          `json:"location,omitempty"`
	FarmID         *uuid.UUID      `json:"farm_id,omitempty"`
	Type           string          `json:"type"`
	AnimalCategory string          `json:"animal_category"`
	AnimalCount    int             `json:"animal_count"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	Commission     decimal.Decimal `json:"commission"`
	Gross          decimal.Decimal `json:"gross"`
	Net            decimal.Decimal `json:"net"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Notes          string          `json:"notes,omitempty"`
	Version        int             `json:"version"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AuctionListFilter represents filter options for the auction movement list
type AuctionListFilter struct {
	Search      string `form:"search"`
	AuctionName string `form:"auction_name"`
	Type        string `form:"type" binding:"omitempty,auction_type"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AuctionBalanceResponse summarizes auction cash flow
type AuctionBalanceResponse struct {
	AuctionName string          `json:"auction_name,omitempty"`
	HeadsBought int             `json:"heads_bought"`
	HeadsSold   int             `json:"heads_sold"`
	Purchases   decimal.Decimal `json:"purchases"`
	Sales       decimal.Decimal `json:"sales"`
	Commissions decimal.Decimal `json:"commissions"`
	Net         decimal.Decimal `json:"net"`
}

// ToAuctionResponse converts a domain AuctionMovement to AuctionResponse
func ToAuctionResponse(m *trade.AuctionMovement) AuctionResponse {
	return AuctionResponse{
		ID:             m.ID,
		AuctionName:    m.AuctionName,
		Location:       m.Location,
		FarmID:         m.FarmID,
		Type:           string(m.Type),
		AnimalCategory: m.AnimalCategory,
		AnimalCount:    m.AnimalCount,
		WeightKg:       m.WeightKg,
		PricePerKg:     m.PricePerKg,
		Commission:     m.Commission,
		Gross:          m.Gross(),
		Net:            m.Net(),
		OccurredAt:     m.OccurredAt,
		Notes:          m.Notes,
		Version:        m.Version,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToAuctionResponses converts a slice of domain AuctionMovements
func ToAuctionResponses(movements []trade.AuctionMovement) []AuctionResponse {
	out := make([]AuctionResponse, len(movements))
	for i := range movements {
		out[i] = ToAuctionResponse(&movements[i])
	}
	return out
}
