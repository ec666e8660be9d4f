package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concession-inventory-api/internal/cache"
	"concession-inventory-api/internal/handler"
	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/router"
	"concession-inventory-api/internal/service"
	"concession-inventory-api/internal/square"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := repository.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })

	metricsService := service.NewMetricsService(store, store, c, service.MetricsConfig{})
	inventoryService := service.NewInventoryService(store, metricsService)
	purchaseService := service.NewPurchaseService(store, store, metricsService)
	syncService := service.NewSyncService(square.NewStubClient(), store)

	return router.New(router.Config{
		Handler:          handler.New("test"),
		InventoryHandler: handler.NewInventoryHandler(inventoryService),
		PurchaseHandler:  handler.NewPurchaseHandler(purchaseService),
		MetricsHandler:   handler.NewMetricsHandler(metricsService),
		SyncHandler:      handler.NewSyncHandler(syncService),
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createItem(t *testing.T, h http.Handler, body string) model.ItemWithStatus {
	t.Helper()

	rec, env := doRequest(t, h, http.MethodPost, "/api/inventory", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item model.ItemWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &item))
	return item
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryCRUD(t *testing.T) {
	h := newTestRouter(t)

	item := createItem(t, h, `{"name":"Hot Dog","category":"food","sku":"HD-1","price":"4.50","stockQuantity":20}`)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "In Stock", item.Status)
	assert.Equal(t, 5, item.ReorderLevel)

	rec, env := doRequest(t, h, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.ItemWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Hot Dog", items[0].Name)

	rec, env = doRequest(t, h, http.MethodGet, "/api/inventory/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.ItemWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "HD-1", got.SKU)

	rec, env = doRequest(t, h, http.MethodPut, "/api/inventory/1", `{"stockQuantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Out of Stock", got.Status)

	rec, _ = doRequest(t, h, http.MethodDelete, "/api/inventory/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = doRequest(t, h, http.MethodGet, "/api/inventory/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestLowStockRouteNotShadowedByID(t *testing.T) {
	h := newTestRouter(t)

	createItem(t, h, `{"name":"Soda","category":"drink","sku":"SD-1","stockQuantity":2,"reorderLevel":5}`)
	createItem(t, h, `{"name":"Cap","category":"merchandise","sku":"CP-1","stockQuantity":50}`)

	rec, env := doRequest(t, h, http.MethodGet, "/api/inventory/low-stock", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.ItemWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Soda", items[0].Name)
}

func TestListByCategory(t *testing.T) {
	h := newTestRouter(t)

	createItem(t, h, `{"name":"Nachos","category":"food","sku":"NC-1","stockQuantity":10}`)
	createItem(t, h, `{"name":"Water","category":"drink","sku":"WT-1","stockQuantity":10}`)

	rec, env := doRequest(t, h, http.MethodGet, "/api/inventory/category/Food", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.ItemWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Nachos", items[0].Name)
}

func TestCreateItemValidation(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doRequest(t, h, http.MethodPost, "/api/inventory", `{"category":"food","sku":"X-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, "Name", env.Error.Details[0].Field)

	rec, env = doRequest(t, h, http.MethodPost, "/api/inventory", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestCreateItemDuplicateSKU(t *testing.T) {
	h := newTestRouter(t)

	createItem(t, h, `{"name":"Pretzel","category":"food","sku":"PZ-1","stockQuantity":5}`)

	rec, env := doRequest(t, h, http.MethodPost, "/api/inventory", `{"name":"Other","category":"food","sku":"PZ-1","stockQuantity":5}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestInvalidIDParam(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/inventory/abc", "/api/inventory/0", "/api/purchases/item/xyz"} {
		rec, env := doRequest(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code, path)
	}
}

func TestPurchaseFlow(t *testing.T) {
	h := newTestRouter(t)

	item := createItem(t, h, `{"name":"Popcorn","category":"food","sku":"PC-1","stockQuantity":30}`)

	body := fmt.Sprintf(`{"itemId":%d,"quantity":3,"totalPrice":"13.50"}`, item.ID)
	rec, env := doRequest(t, h, http.MethodPost, "/api/purchases", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var purchase model.PurchaseHistory
	require.NoError(t, json.Unmarshal(env.Data, &purchase))
	assert.Equal(t, item.ID, purchase.ItemID)
	assert.Equal(t, 3, purchase.Quantity)
	assert.False(t, purchase.PurchaseDate.IsZero())

	rec, env = doRequest(t, h, http.MethodGet, "/api/purchases", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var purchases []model.PurchaseHistory
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Len(t, purchases, 1)

	rec, env = doRequest(t, h, http.MethodGet, fmt.Sprintf("/api/purchases/item/%d", item.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	purchases = nil
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Len(t, purchases, 1)
}

func TestPurchaseOrphanRejected(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doRequest(t, h, http.MethodPost, "/api/purchases", `{"itemId":999,"quantity":1,"totalPrice":"2.00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	rec, env = doRequest(t, h, http.MethodGet, "/api/purchases", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var purchases []model.PurchaseHistory
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Empty(t, purchases)
}

func TestPurchaseBadLimit(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/purchases?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestPurchaseDateRange(t *testing.T) {
	h := newTestRouter(t)

	item := createItem(t, h, `{"name":"Beer","category":"drink","sku":"BR-1","stockQuantity":100}`)
	body := fmt.Sprintf(`{"itemId":%d,"quantity":2,"totalPrice":"16.00"}`, item.ID)
	rec, _ := doRequest(t, h, http.MethodPost, "/api/purchases", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// No bounds: defaults cover everything recorded so far.
	rec, env := doRequest(t, h, http.MethodGet, "/api/purchases/date-range", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var purchases []model.PurchaseHistory
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Len(t, purchases, 1)

	// A window entirely in the past excludes it.
	rec, env = doRequest(t, h, http.MethodGet, "/api/purchases/date-range?startDate=2020-01-01&endDate=2020-12-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	purchases = nil
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Empty(t, purchases)

	rec, env = doRequest(t, h, http.MethodGet, "/api/purchases/date-range?startDate=not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestSyncRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/sync/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)

	rec, env = doRequest(t, h, http.MethodPost, "/api/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		SyncLog *model.SyncLog `json:"syncLog"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.SyncLog)
	assert.Equal(t, model.SyncStatusSuccess, result.SyncLog.Status)

	rec, env = doRequest(t, h, http.MethodGet, "/api/sync/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entry model.SyncLog
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, model.SyncStatusSuccess, entry.Status)
}

func TestMetricsRoute(t *testing.T) {
	h := newTestRouter(t)

	item := createItem(t, h, `{"name":"Burger","category":"food","sku":"BG-1","stockQuantity":10}`)
	body := fmt.Sprintf(`{"itemId":%d,"quantity":2,"totalPrice":"25.00"}`, item.ID)
	rec, _ := doRequest(t, h, http.MethodPost, "/api/purchases", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doRequest(t, h, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics model.CategoryMetrics
	require.NoError(t, json.Unmarshal(env.Data, &metrics))
	assert.True(t, metrics.FoodRevenue.Equal(decimal.NewFromInt(25)), metrics.FoodRevenue.String())
	assert.True(t, metrics.DrinkRevenue.IsZero())
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := doRequest(t, h, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
