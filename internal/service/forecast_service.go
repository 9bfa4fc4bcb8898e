package service

import (
	"context"
	"math"
	"time"

	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// forecastLookbackMonths is the window the average monthly growth is derived
// from.
const forecastLookbackMonths = 6

// ForecastService projects when net-worth goals will be reached, using a
// linear extrapolation of recent growth.
//
// The projection is deliberately naive: average the last six months of
// growth and extend the line. It answers "at this pace, when?" and nothing
// more; volatility, contributions and market cycles are out of its scope.
type ForecastService struct {
	goalRepo        *repository.GoalRepository
	snapshotService *SnapshotService
}

// NewForecastService creates a new ForecastService.
func NewForecastService(goalRepo *repository.GoalRepository, snapshotService *SnapshotService) *ForecastService {
	return &ForecastService{
		goalRepo:        goalRepo,
		snapshotService: snapshotService,
	}
}

// Forecast projects every net-worth goal against the current trajectory.
//
// Growth is (latest net worth − net worth six months ago) / 6, read from the
// reconstructed history so sparse snapshot coverage does not skew the rate.
// Per goal:
//   - already at or past the target → Status "Achieved"
//   - growth ≤ 0 with the target still ahead → Status "N/A (No Growth)"
//   - otherwise months = remaining / growth, and PredictedDate is today plus
//     months × 30 days, formatted like "Mar 2027".
func (s *ForecastService) Forecast(ctx context.Context) (model.ForecastResult, error) {
	goals, err := s.goalRepo.GetGoals(model.GoalNetWorth)
	if err != nil {
		return model.ForecastResult{}, err
	}

	current, growth, err := s.growthRate(ctx)
	if err != nil {
		return model.ForecastResult{}, err
	}

	result := model.ForecastResult{
		AvgMonthlyGrowth: round2(growth),
		Forecasts:        make([]model.GoalForecast, 0, len(goals)),
	}

	now := time.Now().UTC()
	for _, goal := range goals {
		forecast := model.GoalForecast{
			GoalID:           goal.ID,
			GoalName:         goal.Name,
			CurrentAmount:    round2(current),
			TargetAmount:     goal.TargetAmount,
			AvgMonthlyGrowth: round2(growth),
		}

		remaining := goal.TargetAmount - current
		switch {
		case remaining <= 0:
			forecast.Status = model.ForecastAchieved
		case growth <= 0:
			forecast.Status = model.ForecastNoGrowth
		default:
			months := remaining / growth
			forecast.MonthsToReach = round2(months)
			forecast.PredictedDate = now.AddDate(0, 0, int(math.Round(months*30))).Format("Jan 2006")
		}

		result.Forecasts = append(result.Forecasts, forecast)
	}

	return result, nil
}

// growthRate returns the current net worth and the average monthly growth
// over the lookback window, derived from the daily history endpoints.
func (s *ForecastService) growthRate(ctx context.Context) (current, growth float64, err error) {
	end := time.Now().UTC()
	start := end.AddDate(0, -forecastLookbackMonths, 0)

	history, err := s.snapshotService.NetWorthHistory(ctx, start, end)
	if err != nil {
		return 0, 0, err
	}
	if len(history) == 0 {
		return 0, 0, nil
	}

	first := history[0].Value
	last := history[len(history)-1].Value
	return last, (last - first) / forecastLookbackMonths, nil
}
