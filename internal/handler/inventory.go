package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/service"
	"concession-inventory-api/pkg/apierror"
	"concession-inventory-api/pkg/response"

	"concession-inventory-api/internal/model"
)

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListItems handles GET /api/inventory
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.ListItems(r.Context())
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, items)
}

// ListLowStock handles GET /api/inventory/low-stock
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.ListLowStock(r.Context())
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, items)
}

// ListByCategory handles GET /api/inventory/category/{category}
func (h *InventoryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		response.Error(w, apierror.BadRequest("category is required"))
		return
	}

	items, err := h.inventoryService.ListItemsByCategory(r.Context(), category)
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, items)
}

// GetItem handles GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("Inventory item not found"))
			return
		}
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, item)
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var insert model.InsertInventoryItem
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	item, err := h.inventoryService.CreateItem(r.Context(), insert)
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.Created(w, item)
}

// UpdateItem handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var update model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	item, err := h.inventoryService.UpdateItem(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("Inventory item not found"))
			return
		}
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, item)
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("Inventory item not found"))
			return
		}
		response.Error(w, mapServiceError(err))
		return
	}
	response.NoContent(w)
}

// parseID reads a positive integer URL parameter, writing a 400 on failure.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, apierror.BadRequest(param+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// mapServiceError converts service and repository errors to API errors.
func mapServiceError(err error) error {
	var vErr *service.ErrValidation
	if errors.As(err, &vErr) {
		details := make([]apierror.FieldError, 0, len(vErr.Err))
		for _, fe := range vErr.Err {
			details = append(details, apierror.FieldError{
				Field:   fe.Field(),
				Message: fe.Tag(),
			})
		}
		return apierror.ValidationError("invalid request payload", details...)
	}
	switch {
	case errors.Is(err, repository.ErrDuplicateSKU):
		return apierror.Conflict("an item with this sku already exists")
	case errors.Is(err, repository.ErrDuplicateSquareID):
		return apierror.Conflict("an item with this squareId already exists")
	}
	return err
}
