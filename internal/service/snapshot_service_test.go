package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestSnapshotService_Capture(t *testing.T) {
	t.Run("capturing the same date twice keeps one row with the latest value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(1000).OnDate("2025-03-01").Build(t, db)

		day := testutil.Date(t, "2025-03-10")

		first, err := svc.Capture(context.Background(), day)
		if err != nil {
			t.Fatalf("First capture failed: %v", err)
		}
		if first.Value != 1000 {
			t.Errorf("Expected snapshot value 1000, got %v", first.Value)
		}

		testutil.NewTransaction(cash.ID).WithAmount(500).OnDate("2025-03-05").Build(t, db)

		second, err := svc.Capture(context.Background(), day)
		if err != nil {
			t.Fatalf("Second capture failed: %v", err)
		}
		if second.Value != 1500 {
			t.Errorf("Expected snapshot value 1500 after backdated entry, got %v", second.Value)
		}

		testutil.AssertRowCount(t, db, "net_worth_snapshot", 1)

		stored, err := repository.NewSnapshotRepository(db).Get(day)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored.Value != 1500 {
			t.Errorf("Expected stored value 1500, got %v", stored.Value)
		}
	})

	t.Run("snapshot stores the category breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(2000).OnDate("2025-03-01").Build(t, db)
		loan := testutil.NewAsset().WithName("Loan").WithCategory(model.CategoryLiabilities).Build(t, db)
		testutil.NewTransaction(loan.ID).WithAmount(500).OnDate("2025-03-01").Build(t, db)

		snapshot, err := svc.Capture(context.Background(), testutil.Date(t, "2025-03-02"))
		if err != nil {
			t.Fatalf("Capture failed: %v", err)
		}

		if snapshot.Value != 1500 {
			t.Errorf("Expected value 1500, got %v", snapshot.Value)
		}
		if got := snapshot.Breakdown[model.CategoryLiabilities]; got != -500 {
			t.Errorf("Expected Liabilities -500, got %v", got)
		}
	})
}

func TestSnapshotService_NetWorthHistory(t *testing.T) {
	t.Run("interleaves stored snapshots with recomputed gap days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(1000).OnDate("2025-03-01").Build(t, db)

		// Store snapshots for the 10th and 12th with values that disagree with
		// the ledger, so the test can tell stored from recomputed.
		repo := repository.NewSnapshotRepository(db)
		for _, stored := range []model.NetWorthSnapshot{
			{Date: testutil.Date(t, "2025-03-10"), Value: 9990, Breakdown: map[string]float64{model.CategoryFluid: 9990}},
			{Date: testutil.Date(t, "2025-03-12"), Value: 9992, Breakdown: map[string]float64{model.CategoryFluid: 9992}},
		} {
			if err := repo.Upsert(stored); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		days, err := svc.NetWorthHistory(context.Background(), testutil.Date(t, "2025-03-09"), testutil.Date(t, "2025-03-13"))
		if err != nil {
			t.Fatalf("NetWorthHistory failed: %v", err)
		}

		wantDates := []string{"2025-03-09", "2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13"}
		wantValues := []float64{1000, 9990, 1000, 9992, 1000}
		if len(days) != len(wantDates) {
			t.Fatalf("Expected %d days, got %d", len(wantDates), len(days))
		}
		for i := range wantDates {
			if days[i].Date != wantDates[i] {
				t.Errorf("Day %d: expected date %s, got %s", i, wantDates[i], days[i].Date)
			}
			if days[i].Value != wantValues[i] {
				t.Errorf("Day %s: expected value %v, got %v", days[i].Date, wantValues[i], days[i].Value)
			}
		}
	})

	t.Run("fully stored range never recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		provider.FailAll = true
		svc := testutil.NewTestSnapshotService(t, db, provider)

		repo := repository.NewSnapshotRepository(db)
		for _, date := range []string{"2025-03-10", "2025-03-11"} {
			snapshot := model.NetWorthSnapshot{Date: testutil.Date(t, date), Value: 100, Breakdown: map[string]float64{}}
			if err := repo.Upsert(snapshot); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		days, err := svc.NetWorthHistory(context.Background(), testutil.Date(t, "2025-03-10"), testutil.Date(t, "2025-03-11"))
		if err != nil {
			t.Fatalf("NetWorthHistory failed: %v", err)
		}
		if len(days) != 2 {
			t.Fatalf("Expected 2 days, got %d", len(days))
		}
		if provider.CallCount != 0 {
			t.Errorf("Expected no market-data fetches, got %d", provider.CallCount)
		}
	})

	t.Run("empty store reconstructs the whole range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		cash := testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewTransaction(cash.ID).WithAmount(250).OnDate("2025-03-01").Build(t, db)

		days, err := svc.NetWorthHistory(context.Background(), testutil.Date(t, "2025-03-02"), testutil.Date(t, "2025-03-04"))
		if err != nil {
			t.Fatalf("NetWorthHistory failed: %v", err)
		}
		if len(days) != 3 {
			t.Fatalf("Expected 3 days, got %d", len(days))
		}
		for _, day := range days {
			if day.Value != 250 {
				t.Errorf("Day %s: expected 250, got %v", day.Date, day.Value)
			}
		}
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		_, err := svc.NetWorthHistory(context.Background(), testutil.Date(t, "2025-03-10"), testutil.Date(t, "2025-03-01"))
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestSnapshotService_Latest(t *testing.T) {
	t.Run("returns the most recent stored snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		repo := repository.NewSnapshotRepository(db)
		older := model.NetWorthSnapshot{Date: testutil.Today(t).AddDate(0, 0, -5), Value: 100, Breakdown: map[string]float64{}}
		newer := model.NetWorthSnapshot{Date: testutil.Today(t).AddDate(0, 0, -1), Value: 200, Breakdown: map[string]float64{}}
		for _, snapshot := range []model.NetWorthSnapshot{older, newer} {
			if err := repo.Upsert(snapshot); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		latest, err := svc.Latest()
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if latest.Value != 200 {
			t.Errorf("Expected latest value 200, got %v", latest.Value)
		}
	})

	t.Run("empty store returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		provider := testutil.NewMockProvider()
		svc := testutil.NewTestSnapshotService(t, db, provider)

		_, err := svc.Latest()
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})
}
