package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/testutil"
)

// fakeSettingStore is an in-memory SettingStore.
type fakeSettingStore struct {
	values map[string]string
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{values: map[string]string{}}
}

func (s *fakeSettingStore) GetValue(key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", errors.New("setting not found")
	}
	return value, nil
}

func (s *fakeSettingStore) UpsertValue(key, value string) error {
	s.values[key] = value
	return nil
}

func newFxCache(provider *testutil.MockProvider, store pricing.SettingStore) *pricing.FxCache {
	return pricing.NewFxCache(provider, store, "USDTWD=X", "exchange_rate_usdtwd", 5*time.Minute, 32.0)
}

func TestFxCache_Rate(t *testing.T) {
	t.Run("fetched rate is cached within the ttl", func(t *testing.T) {
		provider := testutil.NewMockProvider().WithFxRate(30)
		cache := newFxCache(provider, nil)

		if got := cache.Rate(context.Background()); got != 30 {
			t.Fatalf("Expected 30, got %v", got)
		}

		// The provider moves, but the cached rate holds until the TTL lapses.
		provider.FxRate = 99
		if got := cache.Rate(context.Background()); got != 30 {
			t.Errorf("Expected cached 30, got %v", got)
		}
	})

	t.Run("reset forces the next call through the provider", func(t *testing.T) {
		provider := testutil.NewMockProvider().WithFxRate(30)
		cache := newFxCache(provider, nil)

		cache.Rate(context.Background())
		provider.FxRate = 31
		cache.Reset()

		if got := cache.Rate(context.Background()); got != 31 {
			t.Errorf("Expected refetched 31, got %v", got)
		}
	})

	t.Run("provider failure falls back to the persisted rate", func(t *testing.T) {
		provider := testutil.NewMockProvider()
		provider.FailFx = true
		store := newFakeSettingStore()
		store.values["exchange_rate_usdtwd"] = "29.5"
		cache := newFxCache(provider, store)

		if got := cache.Rate(context.Background()); got != 29.5 {
			t.Errorf("Expected persisted 29.5, got %v", got)
		}
	})

	t.Run("no provider and no persisted rate yields the hardcoded fallback", func(t *testing.T) {
		provider := testutil.NewMockProvider()
		provider.FailFx = true
		cache := newFxCache(provider, newFakeSettingStore())

		if got := cache.Rate(context.Background()); got != 32.0 {
			t.Errorf("Expected fallback 32, got %v", got)
		}
	})

	t.Run("garbage persisted value is skipped", func(t *testing.T) {
		provider := testutil.NewMockProvider()
		provider.FailFx = true
		store := newFakeSettingStore()
		store.values["exchange_rate_usdtwd"] = "not a number"
		cache := newFxCache(provider, store)

		if got := cache.Rate(context.Background()); got != 32.0 {
			t.Errorf("Expected fallback 32, got %v", got)
		}
	})

	t.Run("successful fetch persists the last-known-good rate", func(t *testing.T) {
		provider := testutil.NewMockProvider().WithFxRate(30.25)
		store := newFakeSettingStore()
		cache := newFxCache(provider, store)

		cache.Rate(context.Background())

		if got := store.values["exchange_rate_usdtwd"]; got != "30.25" {
			t.Errorf("Expected persisted \"30.25\", got %q", got)
		}
	})
}

func TestFxCache_Refresh(t *testing.T) {
	t.Run("updates the cache and the persisted setting", func(t *testing.T) {
		provider := testutil.NewMockProvider().WithFxRate(30)
		store := newFakeSettingStore()
		cache := newFxCache(provider, store)

		rate, err := cache.Refresh(context.Background())
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if rate != 30 {
			t.Errorf("Expected 30, got %v", rate)
		}
		if got := store.values["exchange_rate_usdtwd"]; got != "30" {
			t.Errorf("Expected persisted \"30\", got %q", got)
		}
	})

	t.Run("propagates provider failure", func(t *testing.T) {
		provider := testutil.NewMockProvider()
		provider.FailFx = true
		cache := newFxCache(provider, nil)

		if _, err := cache.Refresh(context.Background()); err == nil {
			t.Error("Expected an error")
		}
	})

	t.Run("rejects a non-positive rate", func(t *testing.T) {
		provider := testutil.NewMockProvider().WithFxRate(0)
		cache := newFxCache(provider, nil)

		if _, err := cache.Refresh(context.Background()); err == nil {
			t.Error("Expected an error for a zero rate")
		}
	})
}
