package model

// RebalanceSuggestion is one actionable deviation from the target allocation.
// Action is "Buy" or "Sell"; Amount is the absolute local-currency value to
// move to close the gap.
type RebalanceSuggestion struct {
	Category   string  `json:"category"`
	CurrentPct float64 `json:"currentPct"`
	TargetPct  float64 `json:"targetPct"`
	Amount     float64 `json:"amount"`
	Action     string  `json:"action"`
	Message    string  `json:"message"`
}

// RebalanceResult is the full rebalancing analysis: the allocation it was
// computed from, the targets applied and the suggestions that cleared the
// deviation threshold.
type RebalanceResult struct {
	TotalValue        float64               `json:"totalValue"`
	CurrentAllocation map[string]float64    `json:"currentAllocation"`
	Targets           map[string]float64    `json:"targets"`
	Suggestions       []RebalanceSuggestion `json:"suggestions"`
}
