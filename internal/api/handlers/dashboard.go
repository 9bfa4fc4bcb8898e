package handlers

import (
	"net/http"

	"github.com/ymoney/networth-backend/internal/service"
)

// DashboardHandler handles the live portfolio valuation endpoint
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard returns the current net worth, P/L and per-asset valuations.
//
// Endpoint: GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardService.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to compute dashboard")
		return
	}

	respondJSON(w, http.StatusOK, data)
}
