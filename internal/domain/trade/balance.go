package trade

import "github.com/shopspring/decimal"

// AuctionBalance summarizes the cash effect of auction movements
type AuctionBalance struct {
	HeadsBought int
	HeadsSold   int
	Purchases   decimal.Decimal
	Sales       decimal.Decimal
	Commissions decimal.Decimal
	Net         decimal.Decimal
}

// ComputeAuctionBalance folds auction movements into a balance
func ComputeAuctionBalance(movements []AuctionMovement) AuctionBalance {
	b := AuctionBalance{
		Purchases:   decimal.Zero,
		Sales:       decimal.Zero,
		Commissions: decimal.Zero,
		Net:         decimal.Zero,
	}
	for _, m := range movements {
		switch m.Type {
		case AuctionPurchase:
			b.HeadsBought += m.AnimalCount
			b.Purchases = b.Purchases.Add(m.Gross())
		case AuctionSale:
			b.HeadsSold += m.AnimalCount
			b.Sales = b.Sales.Add(m.Gross())
		}
		b.Commissions = b.Commissions.Add(m.Commission)
		b.Net = b.Net.Add(m.Net())
	}
	return b
}
