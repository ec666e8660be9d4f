package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"concession-inventory-api/internal/model"
	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/service"
	"concession-inventory-api/pkg/apierror"
	"concession-inventory-api/pkg/response"
)

// PurchaseHandler handles purchase history HTTP requests.
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// ListPurchases handles GET /api/purchases?limit=N
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, apierror.BadRequest("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	purchases, err := h.purchaseService.ListPurchases(r.Context(), limit)
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, purchases)
}

// ListByDateRange handles GET /api/purchases/date-range?startDate=...&endDate=...
// Missing bounds default to the epoch and now respectively.
func (h *PurchaseHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	start := time.Unix(0, 0).UTC()
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("startDate must be an RFC 3339 timestamp or YYYY-MM-DD date"))
			return
		}
		start = parsed
	}

	end := time.Now().UTC()
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("endDate must be an RFC 3339 timestamp or YYYY-MM-DD date"))
			return
		}
		end = parsed
	}

	purchases, err := h.purchaseService.ListPurchasesByDateRange(r.Context(), start, end)
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, purchases)
}

// ListByItem handles GET /api/purchases/item/{itemId}
func (h *PurchaseHandler) ListByItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseID(w, r, "itemId")
	if !ok {
		return
	}

	purchases, err := h.purchaseService.ListPurchasesByItem(r.Context(), itemID)
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, purchases)
}

// CreatePurchase handles POST /api/purchases
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var insert model.InsertPurchaseHistory
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	purchase, err := h.purchaseService.CreatePurchase(r.Context(), insert)
	if err != nil {
		// A dangling itemId is a client error, not a missing resource.
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.BadRequest("referenced inventory item does not exist"))
			return
		}
		response.Error(w, mapServiceError(err))
		return
	}
	response.Created(w, purchase)
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
