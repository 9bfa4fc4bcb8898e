package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, name, ticker, category, sub_category, source, current_price,
	include_in_net_worth, is_favorite, icon, manual_avg_cost, external_id, last_updated_at`

// scanAsset scans one asset row, handling nullable columns.
func scanAsset(scan func(dest ...any) error) (model.Asset, error) {
	var a model.Asset
	var ticker, subCategory, icon, externalID sql.NullString
	var manualAvgCost sql.NullFloat64
	var lastUpdatedStr sql.NullString

	err := scan(
		&a.ID,
		&a.Name,
		&ticker,
		&a.Category,
		&subCategory,
		&a.Source,
		&a.CurrentPrice,
		&a.IncludeInNetWorth,
		&a.IsFavorite,
		&icon,
		&manualAvgCost,
		&externalID,
		&lastUpdatedStr,
	)
	if err != nil {
		return model.Asset{}, err
	}

	a.Ticker = ticker.String
	a.SubCategory = subCategory.String
	a.Icon = icon.String
	a.ExternalID = externalID.String
	if manualAvgCost.Valid {
		v := manualAvgCost.Float64
		a.ManualAvgCost = &v
	}
	if lastUpdatedStr.Valid {
		a.LastUpdatedAt, err = ParseTime(lastUpdatedStr.String)
		if err != nil {
			return model.Asset{}, fmt.Errorf("failed to parse last_updated_at: %w", err)
		}
	}

	return a, nil
}

// GetAssets retrieves all assets matching the filter, ordered by name.
// Returns an empty slice if no assets are found.
func (r *AssetRepository) GetAssets(filter model.AssetFilter) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE 1=1`

	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	if filter.OnlyIncluded {
		query += ` AND include_in_net_worth = 1`
	}
	if filter.OnlyFavorites {
		query += ` AND is_favorite = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by ID.
// Returns apperrors.ErrAssetNotFound if no asset exists with the given ID.
func (r *AssetRepository) GetAsset(assetID string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE id = ?`

	row := r.db.QueryRow(query, assetID)
	a, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset table: %w", err)
	}

	return a, nil
}

// GetAssetByExternalID retrieves an asset by its provider-assigned external ID
// and source. Returns apperrors.ErrAssetNotFound when no such asset exists.
func (r *AssetRepository) GetAssetByExternalID(source, externalID string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE source = ? AND external_id = ?`

	row := r.db.QueryRow(query, source, externalID)
	a, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset table: %w", err)
	}

	return a, nil
}

// CreateAsset inserts a new asset and returns it with its generated ID.
// A tickerless asset with an unset price defaults to 1.0 so quantity doubles
// as value; market-priced assets start at 0 until the first refresh.
func (r *AssetRepository) CreateAsset(a model.Asset) (model.Asset, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Source == "" {
		a.Source = model.SourceManual
	}
	if a.CurrentPrice == 0 && a.Ticker == "" {
		a.CurrentPrice = 1.0
	}
	a.LastUpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO asset (id, name, ticker, category, sub_category, source, current_price,
			include_in_net_worth, is_favorite, icon, manual_avg_cost, external_id, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		a.ID,
		a.Name,
		nullString(a.Ticker),
		a.Category,
		nullString(a.SubCategory),
		a.Source,
		a.CurrentPrice,
		a.IncludeInNetWorth,
		a.IsFavorite,
		nullString(a.Icon),
		nullFloat(a.ManualAvgCost),
		nullString(a.ExternalID),
		a.LastUpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to insert asset: %w", err)
	}

	return a, nil
}

// UpdateAsset updates all mutable fields of an asset.
// Returns apperrors.ErrAssetNotFound if no row was updated.
func (r *AssetRepository) UpdateAsset(a model.Asset) error {
	query := `
		UPDATE asset
		SET name = ?, ticker = ?, category = ?, sub_category = ?, source = ?,
			include_in_net_worth = ?, is_favorite = ?, icon = ?, manual_avg_cost = ?,
			external_id = ?, last_updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		a.Name,
		nullString(a.Ticker),
		a.Category,
		nullString(a.SubCategory),
		a.Source,
		a.IncludeInNetWorth,
		a.IsFavorite,
		nullString(a.Icon),
		nullFloat(a.ManualAvgCost),
		nullString(a.ExternalID),
		time.Now().UTC().Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// UpdateAssetPrice updates only the cached current price of an asset.
// Used by the scheduled price refresh.
func (r *AssetRepository) UpdateAssetPrice(assetID string, price float64) error {
	query := `UPDATE asset SET current_price = ?, last_updated_at = ? WHERE id = ?`

	result, err := r.db.Exec(query, price, time.Now().UTC().Format(time.RFC3339), assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// DeleteAsset removes an asset. Its transactions are cascade-deleted by the
// asset_transaction foreign key.
func (r *AssetRepository) DeleteAsset(assetID string) error {
	result, err := r.db.Exec(`DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
