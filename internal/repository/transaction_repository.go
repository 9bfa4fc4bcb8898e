package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
)

// TransactionRepository provides data access methods for the asset_transaction table.
// It handles retrieving and querying ledger transactions ordered by date.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetAllTransactions retrieves the complete ledger across all assets,
// sorted by date ascending and grouped by asset ID.
//
// The valuation engine always loads the FULL ledger regardless of the
// requested display range: held quantities on any date depend on every
// transaction before it.
//
// Returns a map of assetID -> []Transaction, each slice date-ascending.
func (r *TransactionRepository) GetAllTransactions() (map[string][]model.Transaction, error) {
	query := `
		SELECT id, asset_id, amount, unit_cost, date, is_transfer, note, created_at
		FROM asset_transaction
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_transaction table: %w", err)
	}
	defer rows.Close()

	transactionsByAsset := make(map[string][]model.Transaction)

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactionsByAsset[t.AssetID] = append(transactionsByAsset[t.AssetID], t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_transaction table: %w", err)
	}

	return transactionsByAsset, nil
}

// GetTransactionsByAsset retrieves all transactions for a single asset,
// sorted by date ascending. Returns an empty slice for an unknown asset;
// existence checks belong to the caller.
func (r *TransactionRepository) GetTransactionsByAsset(assetID string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, amount, unit_cost, date, is_transfer, note, created_at
		FROM asset_transaction
		WHERE asset_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.getQuerier().Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if it does not exist.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, asset_id, amount, unit_cost, date, is_transfer, note, created_at
		FROM asset_transaction
		WHERE id = ?
	`

	row := r.getQuerier().QueryRow(query, transactionID)
	t, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// CreateTransaction inserts a new ledger entry and returns it with its
// generated ID. An unset date defaults to today.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) (model.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}
	t.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO asset_transaction (id, asset_id, amount, unit_cost, date, is_transfer, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		t.ID,
		t.AssetID,
		t.Amount,
		t.UnitCost,
		t.Date.Format("2006-01-02"),
		t.IsTransfer,
		nullString(t.Note),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return t, nil
}

// UpdateTransaction updates the mutable fields of a ledger entry.
// Returns apperrors.ErrTransactionNotFound if no row was updated.
func (r *TransactionRepository) UpdateTransaction(t model.Transaction) error {
	query := `
		UPDATE asset_transaction
		SET amount = ?, unit_cost = ?, date = ?, is_transfer = ?, note = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().Exec(query,
		t.Amount,
		t.UnitCost,
		t.Date.Format("2006-01-02"),
		t.IsTransfer,
		nullString(t.Note),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a single ledger entry.
func (r *TransactionRepository) DeleteTransaction(transactionID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM asset_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var dateStr string
	var note sql.NullString
	var createdAtStr sql.NullString

	err := scan(
		&t.ID,
		&t.AssetID,
		&t.Amount,
		&t.UnitCost,
		&dateStr,
		&t.IsTransfer,
		&note,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan asset_transaction results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.Note = note.String
	if createdAtStr.Valid {
		t.CreatedAt, err = ParseTime(createdAtStr.String)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}

	return t, nil
}
