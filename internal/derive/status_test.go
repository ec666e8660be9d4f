package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"concession-inventory-api/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reorder  int
		want     Status
	}{
		{"zero stock", 0, 5, StatusOutOfStock},
		{"negative stock", -3, 5, StatusOutOfStock},
		{"below reorder level", 3, 5, StatusLowStock},
		{"at reorder level", 5, 5, StatusLowStock},
		{"above reorder level", 6, 5, StatusInStock},
		{"zero stock zero reorder", 0, 0, StatusOutOfStock},
		{"one stock zero reorder", 1, 0, StatusInStock},
		{"negative reorder level", 1, -1, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.quantity, tt.reorder))
		})
	}
}

func TestClassifyIsTotalPartition(t *testing.T) {
	// Every (quantity, reorder) pair lands in exactly one of the three
	// statuses, and the boundaries match the <= rule.
	for q := -10; q <= 10; q++ {
		for r := -10; r <= 10; r++ {
			got := Classify(q, r)
			switch {
			case q <= 0:
				assert.Equal(t, StatusOutOfStock, got, "q=%d r=%d", q, r)
			case q <= r:
				assert.Equal(t, StatusLowStock, got, "q=%d r=%d", q, r)
			default:
				assert.Equal(t, StatusInStock, got, "q=%d r=%d", q, r)
			}
		}
	}
}

func TestFilterLowStock(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, StockQuantity: 3, ReorderLevel: 5},  // low
		{ID: 2, StockQuantity: 10, ReorderLevel: 5}, // in stock
		{ID: 3, StockQuantity: 0, ReorderLevel: 5},  // out
		{ID: 4, StockQuantity: 5, ReorderLevel: 5},  // boundary, low
	}

	low := FilterLowStock(items)

	ids := make([]int64, 0, len(low))
	for _, item := range low {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)
}

func TestFilterLowStockEmpty(t *testing.T) {
	assert.Empty(t, FilterLowStock(nil))
	assert.Empty(t, FilterLowStock([]model.InventoryItem{}))
}

func TestFilterLowStockMatchesLowStockCount(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "food", StockQuantity: 2, ReorderLevel: 5},
		{ID: 2, Category: "drink", StockQuantity: 8, ReorderLevel: 5},
		{ID: 3, Category: "merchandise", StockQuantity: 0, ReorderLevel: 3},
	}

	metrics := CategoryMetrics(items, nil, nil)
	assert.Equal(t, len(FilterLowStock(items)), metrics.LowStockCount)
}

func TestWithStatus(t *testing.T) {
	item := model.InventoryItem{ID: 7, Name: "Popcorn", StockQuantity: 2, ReorderLevel: 5}

	got := WithStatus(item)

	assert.Equal(t, item, got.InventoryItem)
	assert.Equal(t, "Low Stock", got.Status)
}

func TestItemsWithStatus(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, StockQuantity: 0, ReorderLevel: 5},
		{ID: 2, StockQuantity: 9, ReorderLevel: 5},
	}

	got := ItemsWithStatus(items)

	assert.Len(t, got, 2)
	assert.Equal(t, "Out of Stock", got[0].Status)
	assert.Equal(t, "In Stock", got[1].Status)
}
