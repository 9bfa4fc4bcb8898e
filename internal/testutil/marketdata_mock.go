package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/ymoney/networth-backend/internal/marketdata"
)

// ErrProviderDown is the error MockProvider returns when configured to fail.
var ErrProviderDown = errors.New("mock provider unavailable")

// MockProvider is a mock implementation of marketdata.Provider for testing.
// It serves predefined series instead of making actual API calls.
type MockProvider struct {
	// Series maps symbol to the series returned for it. Symbols with no
	// entry return an error, exercising the fallback path.
	Series map[string]marketdata.Series
	// FxRate is the rate returned by GetFxRate.
	FxRate float64
	// FailAll makes every call return ErrProviderDown.
	FailAll bool
	// FailFx makes only GetFxRate return ErrProviderDown.
	FailFx bool
	// CallCount tracks how many price queries were made.
	CallCount int
}

// NewMockProvider creates an empty mock with a USD/TWD-like FX rate.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Series: make(map[string]marketdata.Series),
		FxRate: 31.5,
	}
}

// WithSeries registers a close-price series for a symbol. Dates are
// "2006-01-02" strings paired positionally with closes.
func (m *MockProvider) WithSeries(symbol, currency string, dates []string, closes []float64) *MockProvider {
	points := make([]marketdata.Point, len(dates))
	for i, d := range dates {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic("invalid mock series date: " + d)
		}
		points[i] = marketdata.Point{Date: date, Close: closes[i]}
	}
	m.Series[symbol] = marketdata.Series{Symbol: symbol, Currency: currency, Points: points}
	return m
}

// WithFxRate sets the FX rate returned by GetFxRate.
func (m *MockProvider) WithFxRate(rate float64) *MockProvider {
	m.FxRate = rate
	return m
}

// GetClosePrices implements marketdata.Provider.
func (m *MockProvider) GetClosePrices(_ context.Context, symbol string, _, _ time.Time) (marketdata.Series, error) {
	m.CallCount++
	if m.FailAll {
		return marketdata.Series{}, ErrProviderDown
	}
	series, ok := m.Series[symbol]
	if !ok {
		return marketdata.Series{}, ErrProviderDown
	}
	return series, nil
}

// GetFxRate implements marketdata.Provider.
func (m *MockProvider) GetFxRate(_ context.Context, _ string) (float64, error) {
	if m.FailAll || m.FailFx {
		return 0, ErrProviderDown
	}
	return m.FxRate, nil
}
