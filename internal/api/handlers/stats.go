package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/service"
)

// StatsHandler handles the analytics endpoints: net-worth history, per-asset
// history, rebalancing and goal forecasts.
type StatsHandler struct {
	snapshotService  *service.SnapshotService
	historyService   *service.HistoryService
	rebalanceService *service.RebalanceService
	forecastService  *service.ForecastService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(
	snapshotService *service.SnapshotService,
	historyService *service.HistoryService,
	rebalanceService *service.RebalanceService,
	forecastService *service.ForecastService,
) *StatsHandler {
	return &StatsHandler{
		snapshotService:  snapshotService,
		historyService:   historyService,
		rebalanceService: rebalanceService,
		forecastService:  forecastService,
	}
}

// NetWorthHistory returns one net-worth entry per calendar day in the range.
//
// A failed computation degrades to an empty list with 200 rather than an
// error: the chart renders empty instead of breaking the page.
//
// Endpoint: GET /api/stats/history?start_date=2025-01-01&end_date=2025-06-30
func (h *StatsHandler) NetWorthHistory(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date range", "detail": err.Error()})
		return
	}

	history, err := h.snapshotService.NetWorthHistory(r.Context(), startDate, endDate)
	if err != nil {
		log.Printf("net worth history failed: %v", err)
		respondJSON(w, http.StatusOK, []model.DailyNetWorth{})
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// AssetHistory returns one quantity/price/value entry per calendar day for
// a single asset.
//
// Endpoint: GET /api/stats/assets/{uuid}/history
func (h *StatsHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date range", "detail": err.Error()})
		return
	}

	history, err := h.historyService.AssetHistory(r.Context(), chi.URLParam(r, "uuid"), startDate, endDate)
	if err != nil {
		respondServiceError(w, err, "failed to compute asset history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Rebalance returns the current investable allocation and any suggestions
// against the target allocation.
//
// Endpoint: GET /api/stats/rebalance
func (h *StatsHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.rebalanceService.Analyze(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to analyze allocation")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Forecast returns the linear goal projections.
//
// Endpoint: GET /api/stats/forecast
func (h *StatsHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.forecastService.Forecast(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to compute forecast")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CaptureSnapshot recomputes and stores today's net-worth snapshot.
//
// Endpoint: POST /api/stats/snapshot
func (h *StatsHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.CaptureToday(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to capture snapshot")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}
