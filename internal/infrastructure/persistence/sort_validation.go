package persistence

import (
	"strings"
	"time"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// FarmSortFields contains allowed sort fields for farms
var FarmSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"location":      true,
	"owner":         true,
	"area_hectares": true,
}

// LivestockMovementSortFields contains allowed sort fields for herd movements
var LivestockMovementSortFields = map[string]bool{
	"id":          true,
	"updated_at":  true,
	"created_at":  true,
	"occurred_at": true,
	"category":    true,
	"quantity":    true,
	"type":        true,
}

// WarehouseMovementSortFields contains allowed sort fields for bodega movements
var WarehouseMovementSortFields = map[string]bool{
	"id":          true,
	"updated_at":  true,
	"created_at":  true,
	"occurred_at": true,
	"product":     true,
	"quantity":    true,
	"direction":   true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":           true,
	"updated_at":   true,
	"created_at":   true,
	"sold_at":      true,
	"buyer":        true,
	"animal_count": true,
	"price_per_kg": true,
}

// AuctionMovementSortFields contains allowed sort fields for auction movements
var AuctionMovementSortFields = map[string]bool{
	"id":           true,
	"updated_at":   true,
	"created_at":   true,
	"occurred_at":  true,
	"auction_name": true,
	"animal_count": true,
	"type":         true,
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// utcArg normalizes time arguments to UTC so they compare correctly against stored values
func utcArg(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC()
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC()
	}
	return value
}
