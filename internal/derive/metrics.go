package derive

import (
	"strings"

	"github.com/shopspring/decimal"

	"concession-inventory-api/internal/model"
)

// RevenueByCategory sums purchase totals into the three category
// buckets. A purchase whose itemId does not resolve against the item
// collection contributes to no bucket, as does one whose item's
// category is outside the food/drink/merchandise taxonomy. Category
// matching is case-insensitive. Sums are exact decimals; nothing is
// rounded here.
type RevenueByCategory struct {
	Food  decimal.Decimal
	Drink decimal.Decimal
	Merch decimal.Decimal
}

// SumRevenue aggregates purchases into per-category revenue totals.
func SumRevenue(items []model.InventoryItem, purchases []model.PurchaseHistory) RevenueByCategory {
	byID := make(map[int64]model.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	rev := RevenueByCategory{
		Food:  decimal.Zero,
		Drink: decimal.Zero,
		Merch: decimal.Zero,
	}
	for _, p := range purchases {
		item, ok := byID[p.ItemID]
		if !ok {
			continue
		}
		switch strings.ToLower(item.Category) {
		case model.CategoryFood:
			rev.Food = rev.Food.Add(p.TotalPrice)
		case model.CategoryDrink:
			rev.Drink = rev.Drink.Add(p.TotalPrice)
		case model.CategoryMerchandise:
			rev.Merch = rev.Merch.Add(p.TotalPrice)
		}
	}
	return rev
}

// RevenueChange returns the period-over-period change of current vs
// prior as a percentage rounded to one decimal place. A zero prior
// period yields 0 when the current period is also zero, 100 otherwise
// (revenue appeared from nothing).
func RevenueChange(current, prior decimal.Decimal) decimal.Decimal {
	if prior.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	hundred := decimal.NewFromInt(100)
	return current.Sub(prior).Div(prior).Mul(hundred).Round(1)
}

// CategoryMetrics computes the dashboard aggregate from a consistent
// snapshot of items plus the purchases of the current reporting window
// and of the prior comparable window. lowStockCount uses the same
// boundary as FilterLowStock.
func CategoryMetrics(items []model.InventoryItem, current, prior []model.PurchaseHistory) model.CategoryMetrics {
	cur := SumRevenue(items, current)
	prev := SumRevenue(items, prior)

	lowStock := 0
	for _, item := range items {
		if NeedsReorder(item.StockQuantity, item.ReorderLevel) {
			lowStock++
		}
	}

	return model.CategoryMetrics{
		FoodRevenue:        cur.Food,
		DrinkRevenue:       cur.Drink,
		MerchRevenue:       cur.Merch,
		LowStockCount:      lowStock,
		FoodRevenueChange:  RevenueChange(cur.Food, prev.Food),
		DrinkRevenueChange: RevenueChange(cur.Drink, prev.Drink),
		MerchRevenueChange: RevenueChange(cur.Merch, prev.Merch),
	}
}
