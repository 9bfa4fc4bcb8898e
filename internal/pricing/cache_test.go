package pricing_test

import (
	"context"
	"testing"

	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestCache_Fetch(t *testing.T) {
	t.Run("fills weekends forward from the last close", func(t *testing.T) {
		provider := testutil.NewMockProvider().
			WithSeries("2330.TW", "TWD", []string{"2025-03-06", "2025-03-07"}, []float64{103, 104})
		cache := pricing.NewCache(provider, 7, 4)

		history := cache.Fetch(context.Background(),
			[]string{"2330.TW"},
			testutil.Date(t, "2025-03-07"),
			testutil.Date(t, "2025-03-10"))

		for _, day := range []string{"2025-03-08", "2025-03-09"} {
			point, ok := history.Lookup("2330.TW", day)
			if !ok {
				t.Fatalf("Expected a filled point for %s", day)
			}
			if point.Close != 104 {
				t.Errorf("Day %s: expected forward-filled close 104, got %v", day, point.Close)
			}
		}
	})

	t.Run("seeds days before the first close backward", func(t *testing.T) {
		provider := testutil.NewMockProvider().
			WithSeries("NVDA", "USD", []string{"2025-03-06"}, []float64{100})
		cache := pricing.NewCache(provider, 7, 4)

		history := cache.Fetch(context.Background(),
			[]string{"NVDA"},
			testutil.Date(t, "2025-03-04"),
			testutil.Date(t, "2025-03-06"))

		point, ok := history.Lookup("NVDA", "2025-03-04")
		if !ok {
			t.Fatal("Expected a backfilled point before the first close")
		}
		if point.Close != 100 {
			t.Errorf("Expected backfilled close 100, got %v", point.Close)
		}
	})

	t.Run("points carry the provider's quote currency", func(t *testing.T) {
		provider := testutil.NewMockProvider().
			WithSeries("NVDA", "USD", []string{"2025-03-06"}, []float64{100})
		cache := pricing.NewCache(provider, 7, 4)

		history := cache.Fetch(context.Background(),
			[]string{"NVDA"},
			testutil.Date(t, "2025-03-06"),
			testutil.Date(t, "2025-03-06"))

		point, ok := history.Lookup("NVDA", "2025-03-06")
		if !ok {
			t.Fatal("Expected a point")
		}
		if point.Currency != "USD" {
			t.Errorf("Expected currency USD, got %q", point.Currency)
		}
		if point.Origin != pricing.OriginFetched {
			t.Errorf("Expected OriginFetched, got %v", point.Origin)
		}
	})

	t.Run("failed symbol yields an empty series without failing the fetch", func(t *testing.T) {
		provider := testutil.NewMockProvider().
			WithSeries("2330.TW", "TWD", []string{"2025-03-06"}, []float64{100})
		cache := pricing.NewCache(provider, 7, 4)

		history := cache.Fetch(context.Background(),
			[]string{"2330.TW", "MISSING"},
			testutil.Date(t, "2025-03-06"),
			testutil.Date(t, "2025-03-06"))

		if _, ok := history.Lookup("2330.TW", "2025-03-06"); !ok {
			t.Error("Expected the healthy symbol to be present")
		}
		if _, ok := history.Lookup("MISSING", "2025-03-06"); ok {
			t.Error("Expected no point for the failed symbol")
		}
	})

	t.Run("cached symbols are not refetched", func(t *testing.T) {
		provider := testutil.NewMockProvider().
			WithSeries("2330.TW", "TWD", []string{"2025-03-06"}, []float64{100})
		cache := pricing.NewCache(provider, 7, 4)

		start := testutil.Date(t, "2025-03-06")
		cache.Fetch(context.Background(), []string{"2330.TW"}, start, start)
		cache.Fetch(context.Background(), []string{"2330.TW"}, start, start)

		if provider.CallCount != 1 {
			t.Errorf("Expected 1 provider call, got %d", provider.CallCount)
		}
	})
}
