package repository_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestSettingRepository(t *testing.T) {
	t.Run("upsert then get round trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.Upsert("theme", "dark"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		got, err := repo.Get("theme")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Value != "dark" {
			t.Errorf("Expected \"dark\", got %q", got.Value)
		}
	})

	t.Run("upsert overwrites by key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.Upsert("theme", "dark"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Upsert("theme", "light"); err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "setting", 1)

		got, err := repo.Get("theme")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Value != "light" {
			t.Errorf("Expected \"light\", got %q", got.Value)
		}
	})

	t.Run("missing key returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		_, err := repo.Get("missing")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.Upsert("theme", "dark"); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Delete("theme"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := repo.Delete("theme"); err != nil {
			t.Fatalf("Second delete failed: %v", err)
		}

		_, err := repo.Get("theme")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound after delete, got %v", err)
		}
	})

	t.Run("get all is key ordered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		for key, value := range map[string]string{"b_key": "2", "a_key": "1", "c_key": "3"} {
			if err := repo.Upsert(key, value); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("Expected 3 settings, got %d", len(all))
		}
		for i, want := range []string{"a_key", "b_key", "c_key"} {
			if all[i].Key != want {
				t.Errorf("Position %d: expected %s, got %s", i, want, all[i].Key)
			}
		}
	})
}
