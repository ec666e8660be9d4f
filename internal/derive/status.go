// Package derive computes the read-only views the dashboard displays:
// per-item stock status and aggregate category metrics. Everything here
// is a pure function over snapshots handed in by the caller; the package
// holds no state and is safe for concurrent use.
package derive

import "concession-inventory-api/internal/model"

// Status is the display label for an item's stock level.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// Classify maps a stock quantity and reorder threshold to exactly one
// status. Any integer inputs are valid: zero or negative stock is
// Out of Stock, stock at or below the reorder level is Low Stock,
// anything above it is In Stock. Every place that displays or filters
// on stock status goes through this function so the thresholds cannot
// diverge.
func Classify(stockQuantity, reorderLevel int) Status {
	switch {
	case stockQuantity <= 0:
		return StatusOutOfStock
	case stockQuantity <= reorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// NeedsReorder reports whether an item counts as insufficiently stocked
// (Low Stock or Out of Stock). This is the single boundary condition
// shared by FilterLowStock and the lowStockCount metric.
func NeedsReorder(stockQuantity, reorderLevel int) bool {
	return stockQuantity <= reorderLevel
}

// WithStatus decorates an item with its computed status.
func WithStatus(item model.InventoryItem) model.ItemWithStatus {
	return model.ItemWithStatus{
		InventoryItem: item,
		Status:        string(Classify(item.StockQuantity, item.ReorderLevel)),
	}
}

// ItemsWithStatus decorates a collection of items. The input slice is
// not modified.
func ItemsWithStatus(items []model.InventoryItem) []model.ItemWithStatus {
	out := make([]model.ItemWithStatus, len(items))
	for i, item := range items {
		out[i] = WithStatus(item)
	}
	return out
}

// FilterLowStock returns the items at or below their reorder level, in
// input order. Callers that need a different ordering re-sort.
func FilterLowStock(items []model.InventoryItem) []model.InventoryItem {
	out := make([]model.InventoryItem, 0)
	for _, item := range items {
		if NeedsReorder(item.StockQuantity, item.ReorderLevel) {
			out = append(out, item)
		}
	}
	return out
}
