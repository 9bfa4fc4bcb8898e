package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/api/handlers"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestStatsHandler_NetWorthHistory(t *testing.T) {
	t.Run("returns the daily series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()

		handler := handlers.NewStatsHandler(
			testutil.NewTestSnapshotService(t, db, provider),
			testutil.NewTestHistoryService(t, db, provider),
			testutil.NewTestRebalanceService(t, db, provider),
			testutil.NewTestForecastService(t, db, provider),
		)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(1000).OnDate("2025-03-01").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/stats/history?start_date=2025-03-02&end_date=2025-03-04", nil)
		rec := httptest.NewRecorder()
		handler.NetWorthHistory(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var days []model.DailyNetWorth
		if err := json.Unmarshal(rec.Body.Bytes(), &days); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(days) != 3 {
			t.Fatalf("Expected 3 days, got %d", len(days))
		}
		if days[0].Value != 1000 {
			t.Errorf("Expected value 1000, got %v", days[0].Value)
		}
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()

		handler := handlers.NewStatsHandler(
			testutil.NewTestSnapshotService(t, db, provider),
			testutil.NewTestHistoryService(t, db, provider),
			testutil.NewTestRebalanceService(t, db, provider),
			testutil.NewTestForecastService(t, db, provider),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/stats/history?start_date=2025-03-10&end_date=2025-03-01", nil)
		rec := httptest.NewRecorder()
		handler.NetWorthHistory(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestStatsHandler_AssetHistory(t *testing.T) {
	t.Run("unknown asset returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()

		handler := handlers.NewStatsHandler(
			testutil.NewTestSnapshotService(t, db, provider),
			testutil.NewTestHistoryService(t, db, provider),
			testutil.NewTestRebalanceService(t, db, provider),
			testutil.NewTestForecastService(t, db, provider),
		)

		router := chi.NewRouter()
		router.Get("/api/stats/assets/{uuid}/history", handler.AssetHistory)

		req := httptest.NewRequest(http.MethodGet, "/api/stats/assets/"+testutil.MakeID()+"/history", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestStatsHandler_CaptureSnapshot(t *testing.T) {
	t.Run("stores and returns today's snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()

		handler := handlers.NewStatsHandler(
			testutil.NewTestSnapshotService(t, db, provider),
			testutil.NewTestHistoryService(t, db, provider),
			testutil.NewTestRebalanceService(t, db, provider),
			testutil.NewTestForecastService(t, db, provider),
		)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(500).OnDate("2025-01-01").Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/stats/snapshot", nil)
		rec := httptest.NewRecorder()
		handler.CaptureSnapshot(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var snapshot model.NetWorthSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if snapshot.Value != 500 {
			t.Errorf("Expected value 500, got %v", snapshot.Value)
		}

		testutil.AssertRowCount(t, db, "net_worth_snapshot", 1)

		if _, err := repository.NewSnapshotRepository(db).Get(testutil.Today(t)); err != nil {
			t.Errorf("Expected today's snapshot to exist: %v", err)
		}
	})
}
