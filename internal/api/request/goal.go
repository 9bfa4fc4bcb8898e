package request

// GoalRequest is the body for creating or updating a goal.
type GoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	GoalType     string  `json:"goalType"`
	Currency     string  `json:"currency"`
	Description  string  `json:"description"`
}
