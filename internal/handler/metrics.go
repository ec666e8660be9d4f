package handler

import (
	"net/http"

	"concession-inventory-api/internal/service"
	"concession-inventory-api/pkg/response"
)

// MetricsHandler serves the dashboard's aggregate metrics.
type MetricsHandler struct {
	metricsService *service.MetricsService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
	}
}

// GetCategoryMetrics handles GET /api/metrics
func (h *MetricsHandler) GetCategoryMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsService.CategoryMetrics(r.Context())
	if err != nil {
		response.Error(w, mapServiceError(err))
		return
	}
	response.OK(w, metrics)
}
