package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// SnapshotRepository provides data access methods for the net_worth_snapshot table.
// One row exists per calendar date; the breakdown is stored as a JSON object
// mapping category name to signed local-currency value.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes the snapshot for a date, overwriting value and breakdown if a
// row already exists.
//
// The write is a single INSERT ... ON CONFLICT DO UPDATE statement so that a
// manual refresh racing the scheduled one cannot produce duplicate rows or a
// lost update. created_at of the original row is preserved on overwrite.
func (r *SnapshotRepository) Upsert(snapshot model.NetWorthSnapshot) error {
	breakdownJSON, err := json.Marshal(snapshot.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO net_worth_snapshot (date, value, breakdown, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			value = excluded.value,
			breakdown = excluded.breakdown,
			updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query,
		snapshot.Date.Format("2006-01-02"),
		snapshot.Value,
		string(breakdownJSON),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot for a single date.
// Returns apperrors.ErrSnapshotNotFound if no row exists for that date.
func (r *SnapshotRepository) Get(date time.Time) (model.NetWorthSnapshot, error) {
	query := `
		SELECT date, value, breakdown, created_at, updated_at
		FROM net_worth_snapshot
		WHERE date = ?
	`

	row := r.db.QueryRow(query, date.Format("2006-01-02"))
	s, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return model.NetWorthSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.NetWorthSnapshot{}, err
	}

	return s, nil
}

// GetRange retrieves all snapshots within the inclusive date range,
// sorted by date ascending. Missing days are simply absent from the result;
// callers decide whether to recompute them.
func (r *SnapshotRepository) GetRange(startDate, endDate time.Time) ([]model.NetWorthSnapshot, error) {
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	query := `
		SELECT date, value, breakdown, created_at, updated_at
		FROM net_worth_snapshot
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query net_worth_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.NetWorthSnapshot{}

	for rows.Next() {
		s, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating net_worth_snapshot table: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(scan func(dest ...any) error) (model.NetWorthSnapshot, error) {
	var s model.NetWorthSnapshot
	var dateStr, breakdownJSON string
	var createdAtStr, updatedAtStr sql.NullString

	err := scan(&dateStr, &s.Value, &breakdownJSON, &createdAtStr, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.NetWorthSnapshot{}, err
	}
	if err != nil {
		return model.NetWorthSnapshot{}, fmt.Errorf("failed to scan net_worth_snapshot results: %w", err)
	}

	s.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.NetWorthSnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if err := json.Unmarshal([]byte(breakdownJSON), &s.Breakdown); err != nil {
		return model.NetWorthSnapshot{}, fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}

	if createdAtStr.Valid {
		if s.CreatedAt, err = ParseTime(createdAtStr.String); err != nil {
			return model.NetWorthSnapshot{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}
	if updatedAtStr.Valid {
		if s.UpdatedAt, err = ParseTime(updatedAtStr.String); err != nil {
			return model.NetWorthSnapshot{}, fmt.Errorf("failed to parse updated_at: %w", err)
		}
	}

	return s, nil
}
