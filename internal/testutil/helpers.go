package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/marketdata"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/service"
)

// TestValuationConfig is the valuation profile used by service tests:
// TWD-local, .TW suffix, USDTWD=X pair with a fallback rate of 32.
func TestValuationConfig() config.ValuationConfig {
	return config.ValuationConfig{
		LocalCurrency:     "TWD",
		LocalMarketSuffix: ".TW",
		FxSymbol:          "USDTWD=X",
		FallbackFxRate:    32.0,
		FxCacheTTL:        5 * time.Minute,
		FetchTimeout:      10 * time.Second,
		FetchConcurrency:  4,
		PriceBufferDays:   7,
	}
}

// NewTestFxCache creates an FX cache over the given provider with the test
// valuation profile and no persisted setting store.
func NewTestFxCache(t *testing.T, provider marketdata.Provider) *pricing.FxCache {
	t.Helper()

	cfg := TestValuationConfig()
	return pricing.NewFxCache(provider, nil, cfg.FxSymbol, model.SettingFxRate, cfg.FxCacheTTL, cfg.FallbackFxRate)
}

// NewTestHistoryService wires a HistoryService over the test database and
// the given market-data provider.
func NewTestHistoryService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.HistoryService {
	t.Helper()

	return service.NewHistoryService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		provider,
		NewTestFxCache(t, provider),
		TestValuationConfig(),
	)
}

// NewTestDashboardService wires a DashboardService over the test database.
func NewTestDashboardService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		NewTestFxCache(t, provider),
		TestValuationConfig(),
	)
}

// NewTestSnapshotService wires a SnapshotService over the test database.
func NewTestSnapshotService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		NewTestHistoryService(t, db, provider),
	)
}

// NewTestTransactionService wires a TransactionService over the test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		db,
		repository.NewTransactionRepository(db),
		repository.NewAssetRepository(db),
	)
}

// NewTestAssetService wires an AssetService over the test database and the
// given market-data provider.
func NewTestAssetService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		provider,
		NewTestFxCache(t, provider),
		TestValuationConfig(),
	)
}

// NewTestRebalanceService wires a RebalanceService over the test database.
func NewTestRebalanceService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.RebalanceService {
	t.Helper()

	return service.NewRebalanceService(
		NewTestDashboardService(t, db, provider),
		service.NewSettingService(repository.NewSettingRepository(db)),
	)
}

// NewTestForecastService wires a ForecastService over the test database.
func NewTestForecastService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.ForecastService {
	t.Helper()

	return service.NewForecastService(
		repository.NewGoalRepository(db),
		NewTestSnapshotService(t, db, provider),
	)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Savings")
//	// Returns: "Savings ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Today returns the current UTC date truncated to midnight.
func Today(t *testing.T) time.Time {
	t.Helper()

	return time.Now().UTC().Truncate(24 * time.Hour)
}

// Date parses a "2006-01-02" string, failing the test on error.
func Date(t *testing.T, value string) time.Time {
	t.Helper()

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Invalid test date %q: %v", value, err)
	}
	return date
}
