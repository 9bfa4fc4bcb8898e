package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/scheduler"
	"github.com/ymoney/networth-backend/internal/service"
)

// SettingHandler handles settings-related HTTP requests
type SettingHandler struct {
	settingService *service.SettingService
	scheduler      *scheduler.Scheduler
}

// NewSettingHandler creates a new SettingHandler. The scheduler may be nil
// in contexts that do not run the refresh cycle (tests).
func NewSettingHandler(settingService *service.SettingService, sched *scheduler.Scheduler) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
		scheduler:      sched,
	}
}

// Settings lists all settings, defaults included and secrets masked.
//
// Endpoint: GET /api/settings
func (h *SettingHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingService.GetSettings()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Setting returns one setting by key.
//
// Endpoint: GET /api/settings/{key}
func (h *SettingHandler) Setting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingService.GetSetting(chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve setting")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}

// SetSetting stores a setting value. Changing the update interval also
// reschedules the refresh cycle immediately.
//
// Endpoint: PUT /api/settings/{key}
func (h *SettingHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req request.SetSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := h.settingService.UpsertSetting(key, req.Value); err != nil {
		respondServiceError(w, err, "failed to store setting")
		return
	}

	if key == model.SettingUpdateInterval && h.scheduler != nil {
		if minutes, err := strconv.Atoi(req.Value); err == nil {
			h.scheduler.Reschedule(minutes)
		}
	}

	respondJSON(w, http.StatusOK, model.Setting{Key: key, Value: req.Value})
}

// DeleteSetting removes a stored setting, reverting reads to the default.
//
// Endpoint: DELETE /api/settings/{key}
func (h *SettingHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.settingService.DeleteSetting(chi.URLParam(r, "key")); err != nil {
		respondServiceError(w, err, "failed to delete setting")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
