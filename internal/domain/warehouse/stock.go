package warehouse

import (
	"strings"

	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel is the balance of one product in one unit
type StockLevel struct {
	Product   string
	Unit      string
	In        decimal.Decimal
	Out       decimal.Decimal
	Balance   decimal.Decimal
	InputCost decimal.Decimal
}

// ComputeStockLevels folds movements into balances per (product, unit).
// Product names are grouped case-insensitively; the first spelling seen is kept.
func ComputeStockLevels(movements []Movement) []StockLevel {
	index := make(map[string]int)
	var levels []StockLevel

	for _, m := range movements {
		key := strings.ToLower(m.Product) + "\x00" + strings.ToLower(m.Unit)
		i, ok := index[key]
		if !ok {
			i = len(levels)
			index[key] = i
			levels = append(levels, StockLevel{
				Product:   m.Product,
				Unit:      m.Unit,
				In:        decimal.Zero,
				Out:       decimal.Zero,
				Balance:   decimal.Zero,
				InputCost: decimal.Zero,
			})
		}
		l := &levels[i]
		if m.Direction == DirectionIn {
			l.In = l.In.Add(m.Quantity)
			l.InputCost = l.InputCost.Add(m.TotalCost())
		} else {
			l.Out = l.Out.Add(m.Quantity)
		}
		l.Balance = l.Balance.Add(m.Signed())
	}

	shared.SortSpanish(levels, func(l StockLevel) string { return l.Product })
	return levels
}
