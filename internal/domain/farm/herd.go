package farm

import "github.com/bonitoviento/backend/internal/domain/shared"

// CategoryCount is the head count of one animal category
type CategoryCount struct {
	Category string
	Entries  int
	Exits    int
	Heads    int
}

// HerdTotals is the herd inventory derived from a farm's movements
type HerdTotals struct {
	Categories []CategoryCount
	Total      int
}

// ComputeHerdTotals folds movements into per-category head counts.
// Categories are matched case-sensitively as recorded and sorted in Spanish order.
func ComputeHerdTotals(movements []LivestockMovement) HerdTotals {
	index := make(map[string]int)
	var categories []CategoryCount
	total := 0

	for _, m := range movements {
		i, ok := index[m.Category]
		if !ok {
			i = len(categories)
			index[m.Category] = i
			categories = append(categories, CategoryCount{Category: m.Category})
		}
		if m.Type == MovementEntry {
			categories[i].Entries += m.Quantity
		} else {
			categories[i].Exits += m.Quantity
		}
		categories[i].Heads += m.Signed()
		total += m.Signed()
	}

	shared.SortSpanish(categories, func(c CategoryCount) string { return c.Category })
	return HerdTotals{Categories: categories, Total: total}
}
