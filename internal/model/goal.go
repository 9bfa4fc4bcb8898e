package model

import "time"

// Goal types supported by the forecast engine.
const (
	GoalNetWorth        = "NET_WORTH"
	GoalMonthlySpending = "MONTHLY_SPENDING"
)

// Goal represents a savings or spending target.
type Goal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"targetAmount"`
	GoalType     string    `json:"goalType"`
	Currency     string    `json:"currency"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Forecast statuses for goals that cannot be projected to a date.
const (
	ForecastAchieved = "Achieved"
	ForecastNoGrowth = "N/A (No Growth)"
)

// GoalForecast is the linear growth projection for one net-worth goal.
// PredictedDate is set only when the goal is reachable under the current
// average growth; otherwise Status explains why not.
type GoalForecast struct {
	GoalID           string  `json:"goalId"`
	GoalName         string  `json:"goalName"`
	CurrentAmount    float64 `json:"currentAmount"`
	TargetAmount     float64 `json:"targetAmount"`
	AvgMonthlyGrowth float64 `json:"avgMonthlyGrowth"`
	MonthsToReach    float64 `json:"monthsToReach"`
	PredictedDate    string  `json:"predictedDate,omitempty"` // e.g. "Mar 2027"
	Status           string  `json:"status,omitempty"`
}

// ForecastResult wraps the per-goal forecasts with the growth rate they
// were derived from.
type ForecastResult struct {
	AvgMonthlyGrowth float64        `json:"avgMonthlyGrowth"`
	Forecasts        []GoalForecast `json:"forecasts"`
}
