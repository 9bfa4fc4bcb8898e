package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/integration"
	"github.com/ymoney/networth-backend/internal/model"
)

// IntegrationHandler handles balance-provider integration HTTP requests
type IntegrationHandler struct {
	syncService *integration.SyncService
	registry    *integration.Registry
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(syncService *integration.SyncService, registry *integration.Registry) *IntegrationHandler {
	return &IntegrationHandler{
		syncService: syncService,
		registry:    registry,
	}
}

// Integrations lists configured integrations. Credentials never appear in
// the response.
//
// Endpoint: GET /api/integrations
func (h *IntegrationHandler) Integrations(w http.ResponseWriter, r *http.Request) {
	integrations, err := h.syncService.GetIntegrations(false)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve integrations")
		return
	}

	respondJSON(w, http.StatusOK, integrations)
}

// Providers lists the balance providers this build supports.
//
// Endpoint: GET /api/integrations/providers
func (h *IntegrationHandler) Providers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.registry.Names())
}

// CreateIntegration configures a balance provider connection.
//
// Endpoint: POST /api/integrations
func (h *IntegrationHandler) CreateIntegration(w http.ResponseWriter, r *http.Request) {
	var req request.CreateIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := h.syncService.CreateIntegration(model.Integration{
		Provider: req.Provider,
		Name:     req.Name,
		IsActive: isActive,
	}, req.APIKey, req.APISecret)
	if err != nil {
		respondServiceError(w, err, "failed to create integration")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Sync runs one reconciliation for an integration.
//
// Endpoint: POST /api/integrations/{uuid}/sync
func (h *IntegrationHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Sync(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to sync integration")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeleteIntegration removes an integration.
//
// Endpoint: DELETE /api/integrations/{uuid}
func (h *IntegrationHandler) DeleteIntegration(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.DeleteIntegration(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete integration")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
