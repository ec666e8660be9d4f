package derive

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concession-inventory-api/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCategoryMetricsEmpty(t *testing.T) {
	metrics := CategoryMetrics(nil, nil, nil)

	assert.True(t, metrics.FoodRevenue.IsZero())
	assert.True(t, metrics.DrinkRevenue.IsZero())
	assert.True(t, metrics.MerchRevenue.IsZero())
	assert.Equal(t, 0, metrics.LowStockCount)
	assert.True(t, metrics.FoodRevenueChange.IsZero())
}

func TestCategoryMetricsAggregation(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "food", StockQuantity: 3, ReorderLevel: 5},
		{ID: 2, Category: "drink", StockQuantity: 10, ReorderLevel: 5},
	}
	purchases := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("12.50")},
		{ItemID: 2, TotalPrice: dec("7.25")},
		{ItemID: 99, TotalPrice: dec("100")}, // dangling itemId, skipped
	}

	metrics := CategoryMetrics(items, purchases, nil)

	assert.True(t, metrics.FoodRevenue.Equal(dec("12.50")), "foodRevenue = %s", metrics.FoodRevenue)
	assert.True(t, metrics.DrinkRevenue.Equal(dec("7.25")), "drinkRevenue = %s", metrics.DrinkRevenue)
	assert.True(t, metrics.MerchRevenue.IsZero())
	assert.Equal(t, 1, metrics.LowStockCount)
}

func TestCategoryMetricsCaseInsensitiveCategory(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "Food", StockQuantity: 10, ReorderLevel: 5},
		{ID: 2, Category: "MERCHANDISE", StockQuantity: 10, ReorderLevel: 5},
	}
	purchases := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("4.00")},
		{ItemID: 2, TotalPrice: dec("19.99")},
	}

	metrics := CategoryMetrics(items, purchases, nil)

	assert.True(t, metrics.FoodRevenue.Equal(dec("4.00")))
	assert.True(t, metrics.MerchRevenue.Equal(dec("19.99")))
}

func TestCategoryMetricsUnknownCategoryDropped(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "apparel", StockQuantity: 10, ReorderLevel: 5},
	}
	purchases := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("50")},
	}

	metrics := CategoryMetrics(items, purchases, nil)

	assert.True(t, metrics.FoodRevenue.IsZero())
	assert.True(t, metrics.DrinkRevenue.IsZero())
	assert.True(t, metrics.MerchRevenue.IsZero())
}

func TestCategoryMetricsSubCentPrecision(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "drink", StockQuantity: 10, ReorderLevel: 5},
	}
	purchases := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("0.105")},
		{ItemID: 1, TotalPrice: dec("0.105")},
		{ItemID: 1, TotalPrice: dec("0.10")},
	}

	metrics := CategoryMetrics(items, purchases, nil)

	assert.True(t, metrics.DrinkRevenue.Equal(dec("0.31")), "drinkRevenue = %s", metrics.DrinkRevenue)
}

func TestCategoryMetricsIdempotent(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "food", StockQuantity: 1, ReorderLevel: 5},
	}
	purchases := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("3.33")},
	}
	prior := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("2.00")},
	}

	first := CategoryMetrics(items, purchases, prior)
	second := CategoryMetrics(items, purchases, prior)

	assert.Equal(t, first, second)
}

func TestCategoryMetricsRevenueChange(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "food", StockQuantity: 10, ReorderLevel: 5},
		{ID: 2, Category: "drink", StockQuantity: 10, ReorderLevel: 5},
		{ID: 3, Category: "merchandise", StockQuantity: 10, ReorderLevel: 5},
	}
	current := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("150")},
		{ItemID: 2, TotalPrice: dec("80")},
	}
	prior := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("100")},
		{ItemID: 2, TotalPrice: dec("100")},
		{ItemID: 3, TotalPrice: dec("40")},
	}

	metrics := CategoryMetrics(items, current, prior)

	assert.True(t, metrics.FoodRevenueChange.Equal(dec("50")), "food change = %s", metrics.FoodRevenueChange)
	assert.True(t, metrics.DrinkRevenueChange.Equal(dec("-20")), "drink change = %s", metrics.DrinkRevenueChange)
	assert.True(t, metrics.MerchRevenueChange.Equal(dec("-100")), "merch change = %s", metrics.MerchRevenueChange)
}

func TestRevenueChange(t *testing.T) {
	tests := []struct {
		name    string
		current string
		prior   string
		want    string
	}{
		{"growth", "120", "100", "20"},
		{"decline", "75", "100", "-25"},
		{"flat", "100", "100", "0"},
		{"rounded to one decimal", "100", "30", "233.3"},
		{"zero prior zero current", "0", "0", "0"},
		{"zero prior nonzero current", "10", "0", "100"},
		{"current drops to zero", "0", "50", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RevenueChange(dec(tt.current), dec(tt.prior))
			require.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestSumRevenueOrderIndependent(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "food"},
		{ID: 2, Category: "food"},
	}
	a := []model.PurchaseHistory{
		{ItemID: 1, TotalPrice: dec("1.10")},
		{ItemID: 2, TotalPrice: dec("2.20")},
		{ItemID: 1, TotalPrice: dec("3.30")},
	}
	b := []model.PurchaseHistory{a[2], a[0], a[1]}

	assert.True(t, SumRevenue(items, a).Food.Equal(SumRevenue(items, b).Food))
}
