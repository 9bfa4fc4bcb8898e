package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/service"
	"github.com/ymoney/networth-backend/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets lists assets, optionally filtered by category or source.
//
// Endpoint: GET /api/assets?category=Stock&source=manual
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	filter := model.AssetFilter{
		Category:      r.URL.Query().Get("category"),
		Source:        r.URL.Query().Get("source"),
		OnlyIncluded:  r.URL.Query().Get("included") == "true",
		OnlyFavorites: r.URL.Query().Get("favorites") == "true",
	}

	assets, err := h.assetService.GetAssets(filter)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve assets")
		return
	}

	respondJSON(w, http.StatusOK, assets)
}

// Asset returns one asset by ID.
//
// Endpoint: GET /api/assets/{uuid}
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve asset")
		return
	}

	respondJSON(w, http.StatusOK, asset)
}

// CreateAsset creates an asset.
//
// Endpoint: POST /api/assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		respondValidationError(w, err)
		return
	}

	includeInNetWorth := true
	if req.IncludeInNetWorth != nil {
		includeInNetWorth = *req.IncludeInNetWorth
	}

	asset, err := h.assetService.CreateAsset(model.Asset{
		Name:              req.Name,
		Ticker:            req.Ticker,
		Category:          req.Category,
		SubCategory:       req.SubCategory,
		Source:            req.Source,
		CurrentPrice:      req.CurrentPrice,
		IncludeInNetWorth: includeInNetWorth,
		IsFavorite:        req.IsFavorite,
		Icon:              req.Icon,
		ManualAvgCost:     req.ManualAvgCost,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create asset")
		return
	}

	respondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset updates an asset's mutable fields.
//
// Endpoint: PUT /api/assets/{uuid}
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	var req request.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		respondValidationError(w, err)
		return
	}

	existing, err := h.assetService.GetAsset(assetID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve asset")
		return
	}

	existing.Name = req.Name
	existing.Ticker = req.Ticker
	existing.Category = req.Category
	existing.SubCategory = req.SubCategory
	if req.Source != "" {
		existing.Source = req.Source
	}
	if req.IncludeInNetWorth != nil {
		existing.IncludeInNetWorth = *req.IncludeInNetWorth
	}
	existing.IsFavorite = req.IsFavorite
	existing.Icon = req.Icon
	existing.ManualAvgCost = req.ManualAvgCost

	if err := h.assetService.UpdateAsset(existing); err != nil {
		respondServiceError(w, err, "failed to update asset")
		return
	}

	respondJSON(w, http.StatusOK, existing)
}

// DeleteAsset removes an asset and, via the schema's cascade, its ledger.
//
// Endpoint: DELETE /api/assets/{uuid}
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.DeleteAsset(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete asset")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices triggers an immediate price and FX refresh.
//
// Endpoint: POST /api/assets/refresh-prices
func (h *AssetHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	updated, err := h.assetService.RefreshPrices(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to refresh prices")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
