package service

import (
	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// GoalService handles savings and spending goal CRUD.
type GoalService struct {
	goalRepo *repository.GoalRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// GetGoals returns goals, optionally filtered by type.
func (s *GoalService) GetGoals(goalType string) ([]model.Goal, error) {
	return s.goalRepo.GetGoals(goalType)
}

// GetGoal returns one goal by ID.
func (s *GoalService) GetGoal(goalID string) (model.Goal, error) {
	if goalID == "" {
		return model.Goal{}, apperrors.ErrEmptyID
	}
	return s.goalRepo.GetGoal(goalID)
}

// CreateGoal validates and persists a new goal.
func (s *GoalService) CreateGoal(g model.Goal) (model.Goal, error) {
	if g.Name == "" {
		return model.Goal{}, apperrors.ErrInvalidName
	}
	if g.TargetAmount <= 0 {
		return model.Goal{}, apperrors.ErrNegativeAmount
	}
	if g.GoalType != model.GoalNetWorth && g.GoalType != model.GoalMonthlySpending {
		return model.Goal{}, apperrors.ErrMissingRequiredField
	}
	return s.goalRepo.CreateGoal(g)
}

// UpdateGoal validates and persists changes to a goal.
func (s *GoalService) UpdateGoal(g model.Goal) error {
	if g.ID == "" {
		return apperrors.ErrEmptyID
	}
	if g.Name == "" {
		return apperrors.ErrInvalidName
	}
	if g.TargetAmount <= 0 {
		return apperrors.ErrNegativeAmount
	}
	return s.goalRepo.UpdateGoal(g)
}

// DeleteGoal removes a goal.
func (s *GoalService) DeleteGoal(goalID string) error {
	if goalID == "" {
		return apperrors.ErrEmptyID
	}
	return s.goalRepo.DeleteGoal(goalID)
}
