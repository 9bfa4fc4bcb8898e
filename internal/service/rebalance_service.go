package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/ymoney/networth-backend/internal/model"
)

// DeviationThreshold is the minimum absolute percentage-point gap between
// current and target allocation before a rebalancing suggestion is emitted.
// Deviations below it are considered noise.
const DeviationThreshold = 2.0

// RebalanceService compares the portfolio's investable allocation against
// the user's target percentages and suggests buy/sell amounts.
type RebalanceService struct {
	dashboardService *DashboardService
	settingService   *SettingService
}

// NewRebalanceService creates a new RebalanceService.
func NewRebalanceService(dashboardService *DashboardService, settingService *SettingService) *RebalanceService {
	return &RebalanceService{
		dashboardService: dashboardService,
		settingService:   settingService,
	}
}

// investableCategories are the only categories rebalancing reasons about.
// Fixed assets, receivables and liabilities are not tradeable allocations.
var investableCategories = []string{
	model.CategoryFluid,
	model.CategoryStock,
	model.CategoryCrypto,
}

// Analyze computes the current investable allocation and the suggestions
// needed to close any deviation of at least DeviationThreshold percentage
// points against the persisted target allocation.
//
// The suggested amount is |total × deviation / 100|: the local-currency value
// to move. Only categories the targets name are compared; holdings in a
// category the targets leave out appear in the allocation but never prompt a
// suggestion.
//
// Targets are read through the setting service, so the built-in default
// allocation applies when the user never stored one. A malformed stored
// value degrades to empty targets (allocation is still reported, no
// suggestions are emitted) and is logged.
func (s *RebalanceService) Analyze(ctx context.Context) (model.RebalanceResult, error) {
	dashboard, err := s.dashboardService.Dashboard(ctx)
	if err != nil {
		return model.RebalanceResult{}, err
	}

	total := 0.0
	for _, category := range investableCategories {
		if v := dashboard.Breakdown[category]; v > 0 {
			total += v
		}
	}

	allocation := make(map[string]float64, len(investableCategories))
	for _, category := range investableCategories {
		pct := 0.0
		if total > 0 {
			if v := dashboard.Breakdown[category]; v > 0 {
				pct = v / total * 100
			}
		}
		allocation[category] = round2(pct)
	}

	targets := s.loadTargets()

	result := model.RebalanceResult{
		TotalValue:        round2(total),
		CurrentAllocation: allocation,
		Targets:           targets,
		Suggestions:       []model.RebalanceSuggestion{},
	}

	if total <= 0 || len(targets) == 0 {
		return result, nil
	}

	categories := make([]string, 0, len(targets))
	for category := range targets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		current := allocation[category]
		target := targets[category]
		deviation := current - target
		if math.Abs(deviation) < DeviationThreshold {
			continue
		}

		action := "Buy"
		if deviation > 0 {
			action = "Sell"
		}
		amount := round2(math.Abs(total * deviation / 100))

		result.Suggestions = append(result.Suggestions, model.RebalanceSuggestion{
			Category:   category,
			CurrentPct: current,
			TargetPct:  target,
			Amount:     amount,
			Action:     action,
			Message:    fmt.Sprintf("%s %.0f of %s to move from %.1f%% to %.1f%%", action, amount, category, current, target),
		})
	}

	return result, nil
}

// loadTargets parses the target allocation, a JSON object mapping category
// name to target percentage. Read through the setting service so the
// built-in default applies when no value is stored.
func (s *RebalanceService) loadTargets() map[string]float64 {
	setting, err := s.settingService.GetSetting(model.SettingTargetAllocation)
	if err != nil {
		return map[string]float64{}
	}

	targets := map[string]float64{}
	if err := json.Unmarshal([]byte(setting.Value), &targets); err != nil {
		log.Printf("malformed target allocation setting: %v", err)
		return map[string]float64{}
	}
	return targets
}
