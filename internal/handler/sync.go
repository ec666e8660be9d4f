package handler

import (
	"errors"
	"net/http"

	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/service"
	"concession-inventory-api/pkg/apierror"
	"concession-inventory-api/pkg/response"
)

// SyncHandler handles Square synchronization HTTP requests.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// TriggerSync handles POST /api/sync
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result, entry, err := h.syncService.Run(r.Context())
	if err != nil && entry == nil {
		response.Error(w, mapServiceError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"success": result.Success,
		"message": result.Message,
		"syncLog": entry,
	})
}

// GetLatest handles GET /api/sync/latest
func (h *SyncHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	entry, err := h.syncService.Latest(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("No sync logs found"))
			return
		}
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, entry)
}
