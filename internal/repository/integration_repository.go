package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// IntegrationRepository provides data access methods for the integration table.
// Credential columns hold fernet tokens produced by the integration service;
// this layer never sees plaintext secrets.
type IntegrationRepository struct {
	db *sql.DB
}

// NewIntegrationRepository creates a new IntegrationRepository with the provided database connection.
func NewIntegrationRepository(db *sql.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

// GetIntegrations retrieves all integrations, optionally only active ones.
func (r *IntegrationRepository) GetIntegrations(onlyActive bool) ([]model.Integration, error) {
	query := `
		SELECT id, provider, name, api_key, api_secret, is_active, last_synced_at, created_at
		FROM integration
	`
	if onlyActive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query integration table: %w", err)
	}
	defer rows.Close()

	integrations := []model.Integration{}

	for rows.Next() {
		i, err := scanIntegration(rows.Scan)
		if err != nil {
			return nil, err
		}
		integrations = append(integrations, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating integration table: %w", err)
	}

	return integrations, nil
}

// GetIntegration retrieves a single integration by ID.
// Returns apperrors.ErrIntegrationNotFound if it does not exist.
func (r *IntegrationRepository) GetIntegration(integrationID string) (model.Integration, error) {
	query := `
		SELECT id, provider, name, api_key, api_secret, is_active, last_synced_at, created_at
		FROM integration
		WHERE id = ?
	`

	row := r.db.QueryRow(query, integrationID)
	i, err := scanIntegration(row.Scan)
	if err == sql.ErrNoRows {
		return model.Integration{}, apperrors.ErrIntegrationNotFound
	}
	if err != nil {
		return model.Integration{}, err
	}

	return i, nil
}

// CreateIntegration inserts a new integration and returns it with its generated ID.
func (r *IntegrationRepository) CreateIntegration(i model.Integration) (model.Integration, error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	i.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO integration (id, provider, name, api_key, api_secret, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		i.ID,
		i.Provider,
		i.Name,
		nullString(i.APIKey),
		nullString(i.APISecret),
		i.IsActive,
		i.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Integration{}, fmt.Errorf("failed to insert integration: %w", err)
	}

	return i, nil
}

// MarkSynced records a successful sync timestamp for an integration.
func (r *IntegrationRepository) MarkSynced(integrationID string, syncedAt time.Time) error {
	result, err := r.db.Exec(
		`UPDATE integration SET last_synced_at = ? WHERE id = ?`,
		syncedAt.UTC().Format(time.RFC3339),
		integrationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update integration sync time: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrIntegrationNotFound
	}

	return nil
}

// DeleteIntegration removes an integration by ID.
func (r *IntegrationRepository) DeleteIntegration(integrationID string) error {
	result, err := r.db.Exec(`DELETE FROM integration WHERE id = ?`, integrationID)
	if err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrIntegrationNotFound
	}

	return nil
}

func scanIntegration(scan func(dest ...any) error) (model.Integration, error) {
	var i model.Integration
	var apiKey, apiSecret, lastSyncedStr, createdAtStr sql.NullString

	err := scan(
		&i.ID,
		&i.Provider,
		&i.Name,
		&apiKey,
		&apiSecret,
		&i.IsActive,
		&lastSyncedStr,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Integration{}, err
	}
	if err != nil {
		return model.Integration{}, fmt.Errorf("failed to scan integration table results: %w", err)
	}

	i.APIKey = apiKey.String
	i.APISecret = apiSecret.String

	if lastSyncedStr.Valid {
		t, err := ParseTime(lastSyncedStr.String)
		if err != nil {
			return model.Integration{}, fmt.Errorf("failed to parse last_synced_at: %w", err)
		}
		i.LastSyncedAt = &t
	}
	if createdAtStr.Valid {
		if i.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return model.Integration{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}

	return i, nil
}
