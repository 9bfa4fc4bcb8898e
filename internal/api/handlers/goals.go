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

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// Goals lists goals, optionally filtered by type.
//
// Endpoint: GET /api/goals?type=NET_WORTH
func (h *GoalHandler) Goals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.GetGoals(r.URL.Query().Get("type"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

// CreateGoal creates a goal.
//
// Endpoint: POST /api/goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req request.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateGoal(req); err != nil {
		respondValidationError(w, err)
		return
	}

	goal, err := h.goalService.CreateGoal(model.Goal{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		GoalType:     req.GoalType,
		Currency:     req.Currency,
		Description:  req.Description,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal edits a goal.
//
// Endpoint: PUT /api/goals/{uuid}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "uuid")

	var req request.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateGoal(req); err != nil {
		respondValidationError(w, err)
		return
	}

	existing, err := h.goalService.GetGoal(goalID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve goal")
		return
	}

	existing.Name = req.Name
	existing.TargetAmount = req.TargetAmount
	existing.GoalType = req.GoalType
	if req.Currency != "" {
		existing.Currency = req.Currency
	}
	existing.Description = req.Description

	if err := h.goalService.UpdateGoal(existing); err != nil {
		respondServiceError(w, err, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, existing)
}

// DeleteGoal removes a goal.
//
// Endpoint: DELETE /api/goals/{uuid}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goalService.DeleteGoal(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete goal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
