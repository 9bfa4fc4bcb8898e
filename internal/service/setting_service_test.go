package service_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/service"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestSettingService(t *testing.T) {
	t.Run("well-known keys fall back to their defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSettingService(repository.NewSettingRepository(db))

		setting, err := svc.GetSetting(model.SettingUpdateInterval)
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if setting.Value != "60" {
			t.Errorf("Expected default \"60\", got %q", setting.Value)
		}
	})

	t.Run("stored values win over defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSettingService(repository.NewSettingRepository(db))

		if err := svc.UpsertSetting(model.SettingUpdateInterval, "15"); err != nil {
			t.Fatalf("UpsertSetting failed: %v", err)
		}

		setting, err := svc.GetSetting(model.SettingUpdateInterval)
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if setting.Value != "15" {
			t.Errorf("Expected stored \"15\", got %q", setting.Value)
		}
	})

	t.Run("deleting a stored value reverts to the default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSettingService(repository.NewSettingRepository(db))

		if err := svc.UpsertSetting(model.SettingUpdateInterval, "15"); err != nil {
			t.Fatalf("UpsertSetting failed: %v", err)
		}
		if err := svc.DeleteSetting(model.SettingUpdateInterval); err != nil {
			t.Fatalf("DeleteSetting failed: %v", err)
		}

		setting, err := svc.GetSetting(model.SettingUpdateInterval)
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if setting.Value != "60" {
			t.Errorf("Expected default \"60\" after delete, got %q", setting.Value)
		}
	})

	t.Run("unknown key with no default is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSettingService(repository.NewSettingRepository(db))

		_, err := svc.GetSetting("nonexistent")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("secret-bearing values are masked in listings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSettingService(repository.NewSettingRepository(db))

		if err := svc.UpsertSetting("webhook_token", "supersecret1234"); err != nil {
			t.Fatalf("UpsertSetting failed: %v", err)
		}
		if err := svc.UpsertSetting("theme", "dark"); err != nil {
			t.Fatalf("UpsertSetting failed: %v", err)
		}

		all, err := svc.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}

		values := make(map[string]string, len(all))
		for _, setting := range all {
			values[setting.Key] = setting.Value
		}

		if values["webhook_token"] != "****1234" {
			t.Errorf("Expected masked token, got %q", values["webhook_token"])
		}
		if values["theme"] != "dark" {
			t.Errorf("Expected plain theme value, got %q", values["theme"])
		}
		if _, ok := values[model.SettingTargetAllocation]; !ok {
			t.Error("Expected the default target allocation to be listed")
		}
	})
}
