package model

import "github.com/shopspring/decimal"

// ItemWithStatus is an InventoryItem plus its computed stock status.
// Never persisted; recomputed on every read.
type ItemWithStatus struct {
	InventoryItem
	Status string `json:"status"` // 'In Stock', 'Low Stock', 'Out of Stock'
}

// CategoryMetrics aggregates revenue per category over a reporting
// window, each with a percentage change against the prior window, plus
// the count of items at or below their reorder level. Never persisted.
type CategoryMetrics struct {
	FoodRevenue        decimal.Decimal `json:"foodRevenue"`
	DrinkRevenue       decimal.Decimal `json:"drinkRevenue"`
	MerchRevenue       decimal.Decimal `json:"merchRevenue"`
	LowStockCount      int             `json:"lowStockCount"`
	FoodRevenueChange  decimal.Decimal `json:"foodRevenueChange"`
	DrinkRevenueChange decimal.Decimal `json:"drinkRevenueChange"`
	MerchRevenueChange decimal.Decimal `json:"merchRevenueChange"`
}
