package repository_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestSnapshotRepository(t *testing.T) {
	t.Run("upsert overwrites the row for a date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		day := testutil.Date(t, "2025-03-10")
		breakdown := map[string]float64{model.CategoryFluid: 1000}

		if err := repo.Upsert(model.NetWorthSnapshot{Date: day, Value: 1000, Breakdown: breakdown}); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Upsert(model.NetWorthSnapshot{Date: day, Value: 1500, Breakdown: breakdown}); err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "net_worth_snapshot", 1)

		got, err := repo.Get(day)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Value != 1500 {
			t.Errorf("Expected value 1500, got %v", got.Value)
		}
		if got.Breakdown[model.CategoryFluid] != 1000 {
			t.Errorf("Breakdown mismatch: %v", got.Breakdown)
		}
	})

	t.Run("range is inclusive and date ordered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		for _, date := range []string{"2025-03-12", "2025-03-10", "2025-03-11", "2025-03-20"} {
			snapshot := model.NetWorthSnapshot{Date: testutil.Date(t, date), Value: 1, Breakdown: map[string]float64{}}
			if err := repo.Upsert(snapshot); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		got, err := repo.GetRange(testutil.Date(t, "2025-03-10"), testutil.Date(t, "2025-03-12"))
		if err != nil {
			t.Fatalf("GetRange failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 snapshots, got %d", len(got))
		}
		for i, want := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
			if got[i].Date.Format("2006-01-02") != want {
				t.Errorf("Position %d: expected %s, got %s", i, want, got[i].Date.Format("2006-01-02"))
			}
		}
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		_, err := repo.GetRange(testutil.Date(t, "2025-03-12"), testutil.Date(t, "2025-03-10"))
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("missing date returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		_, err := repo.Get(testutil.Date(t, "2025-03-10"))
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})
}
