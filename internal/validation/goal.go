package validation

import (
	"strings"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/model"
)

func ValidateGoal(req request.GoalRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.TargetAmount <= 0 {
		errors["targetAmount"] = "target amount must be positive"
	}

	if req.GoalType != model.GoalNetWorth && req.GoalType != model.GoalMonthlySpending {
		errors["goalType"] = "goal type must be NET_WORTH or MONTHLY_SPENDING"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
