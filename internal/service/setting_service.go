package service

import (
	"strings"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// settingDefaults are returned for well-known keys with no stored row.
var settingDefaults = map[string]string{
	model.SettingTargetAllocation: `{"Fluid": 10, "Stock": 70, "Crypto": 20}`,
	model.SettingUpdateInterval:   "60",
}

// SettingService handles persisted key/value configuration. It also
// implements pricing.SettingStore, backing the FX cache's last-known-good
// rate.
type SettingService struct {
	settingRepo *repository.SettingRepository
}

// NewSettingService creates a new SettingService.
func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// GetSetting returns a setting, falling back to the built-in default for
// well-known keys. Returns apperrors.ErrSettingNotFound when the key has
// neither a stored value nor a default.
func (s *SettingService) GetSetting(key string) (model.Setting, error) {
	if key == "" {
		return model.Setting{}, apperrors.ErrEmptyID
	}

	setting, err := s.settingRepo.Get(key)
	if err == nil {
		return setting, nil
	}
	if def, ok := settingDefaults[key]; ok {
		return model.Setting{Key: key, Value: def}, nil
	}
	return model.Setting{}, err
}

// GetSettings returns all stored settings plus defaults for well-known keys
// with no stored row. Values of keys that look secret-bearing are masked.
func (s *SettingService) GetSettings() ([]model.Setting, error) {
	stored, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	result := make([]model.Setting, 0, len(stored)+len(settingDefaults))
	for _, setting := range stored {
		seen[setting.Key] = true
		if isSecretKey(setting.Key) {
			setting.Value = maskValue(setting.Value)
		}
		result = append(result, setting)
	}
	for key, def := range settingDefaults {
		if !seen[key] {
			result = append(result, model.Setting{Key: key, Value: def})
		}
	}
	return result, nil
}

// UpsertSetting stores a setting value, creating or replacing the row.
func (s *SettingService) UpsertSetting(key, value string) error {
	if key == "" {
		return apperrors.ErrEmptyID
	}
	return s.settingRepo.Upsert(key, value)
}

// DeleteSetting removes a stored setting. Deleting a key with a built-in
// default reverts reads to the default.
func (s *SettingService) DeleteSetting(key string) error {
	if key == "" {
		return apperrors.ErrEmptyID
	}
	return s.settingRepo.Delete(key)
}

// GetValue implements pricing.SettingStore.
func (s *SettingService) GetValue(key string) (string, error) {
	setting, err := s.settingRepo.Get(key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// UpsertValue implements pricing.SettingStore.
func (s *SettingService) UpsertValue(key, value string) error {
	return s.settingRepo.Upsert(key, value)
}

// isSecretKey reports whether a setting key carries credential material.
func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "key") || strings.Contains(lower, "secret") || strings.Contains(lower, "token")
}

// maskValue hides all but the last four characters of a secret.
func maskValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
