package repository

import (
	"database/sql"
	"fmt"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting by key.
// Returns apperrors.ErrSettingNotFound if the key has no stored value.
func (r *SettingRepository) Get(key string) (model.Setting, error) {
	var s model.Setting

	err := r.db.QueryRow(`SELECT key, value FROM setting WHERE key = ?`, key).
		Scan(&s.Key, &s.Value)
	if err == sql.ErrNoRows {
		return model.Setting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting table: %w", err)
	}

	return s, nil
}

// GetAll retrieves all stored settings ordered by key.
func (r *SettingRepository) GetAll() ([]model.Setting, error) {
	rows, err := r.db.Query(`SELECT key, value FROM setting ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query setting table: %w", err)
	}
	defer rows.Close()

	settings := []model.Setting{}

	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting table results: %w", err)
		}
		settings = append(settings, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setting table: %w", err)
	}

	return settings, nil
}

// Upsert writes a setting, overwriting any existing value for the key.
// Atomic by key, the same shape as the snapshot upsert.
func (r *SettingRepository) Upsert(key, value string) error {
	query := `
		INSERT INTO setting (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

// Delete removes a setting by key. Deleting an absent key is not an error.
func (r *SettingRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM setting WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
