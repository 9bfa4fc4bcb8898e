package service_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/service"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestGoalService(t *testing.T) {
	t.Run("create and list round trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewGoalService(repository.NewGoalRepository(db))

		created, err := svc.CreateGoal(model.Goal{
			Name:         "First Million",
			TargetAmount: 1_000_000,
			GoalType:     model.GoalNetWorth,
			Currency:     "TWD",
		})
		if err != nil {
			t.Fatalf("CreateGoal failed: %v", err)
		}
		if created.ID == "" {
			t.Fatal("Expected a generated ID")
		}

		goals, err := svc.GetGoals(model.GoalNetWorth)
		if err != nil {
			t.Fatalf("GetGoals failed: %v", err)
		}
		if len(goals) != 1 || goals[0].Name != "First Million" {
			t.Errorf("Unexpected goals: %+v", goals)
		}
	})

	t.Run("create validates its fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewGoalService(repository.NewGoalRepository(db))

		if _, err := svc.CreateGoal(model.Goal{TargetAmount: 100, GoalType: model.GoalNetWorth}); !errors.Is(err, apperrors.ErrInvalidName) {
			t.Errorf("Expected ErrInvalidName, got %v", err)
		}
		if _, err := svc.CreateGoal(model.Goal{Name: "Goal", TargetAmount: 0, GoalType: model.GoalNetWorth}); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
		if _, err := svc.CreateGoal(model.Goal{Name: "Goal", TargetAmount: 100, GoalType: "WISH"}); !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("Expected ErrMissingRequiredField, got %v", err)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewGoalService(repository.NewGoalRepository(db))

		goal := testutil.NewGoal().WithName("Old Name").Build(t, db)

		goal.Name = "New Name"
		goal.TargetAmount = 2_000_000
		if err := svc.UpdateGoal(goal); err != nil {
			t.Fatalf("UpdateGoal failed: %v", err)
		}

		got, err := svc.GetGoal(goal.ID)
		if err != nil {
			t.Fatalf("GetGoal failed: %v", err)
		}
		if got.Name != "New Name" || got.TargetAmount != 2_000_000 {
			t.Errorf("Update mismatch: %+v", got)
		}

		if err := svc.DeleteGoal(goal.ID); err != nil {
			t.Fatalf("DeleteGoal failed: %v", err)
		}
		if _, err := svc.GetGoal(goal.ID); !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("Expected ErrGoalNotFound after delete, got %v", err)
		}
	})
}
