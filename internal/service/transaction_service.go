package service

import (
	"database/sql"
	"fmt"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// TransactionService handles ledger entries and internal transfers.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService. The database
// handle is used to run both legs of a transfer in one transaction.
func NewTransactionService(db *sql.DB, transactionRepo *repository.TransactionRepository, assetRepo *repository.AssetRepository) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransactions returns an asset's ledger in replay order.
func (s *TransactionService) GetTransactions(assetID string) ([]model.Transaction, error) {
	if assetID == "" {
		return nil, apperrors.ErrInvalidAssetID
	}
	return s.transactionRepo.GetTransactionsByAsset(assetID)
}

// GetTransaction returns one transaction by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, apperrors.ErrEmptyID
	}
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction validates and persists a ledger entry. The referenced
// asset must exist; the amount may be any non-zero signed quantity delta.
func (s *TransactionService) CreateTransaction(t model.Transaction) (model.Transaction, error) {
	if t.AssetID == "" {
		return model.Transaction{}, apperrors.ErrInvalidAssetID
	}
	if _, err := s.assetRepo.GetAsset(t.AssetID); err != nil {
		return model.Transaction{}, err
	}
	if t.UnitCost < 0 {
		return model.Transaction{}, apperrors.ErrNegativePrice
	}
	return s.transactionRepo.CreateTransaction(t)
}

// UpdateTransaction validates and persists changes to a ledger entry.
func (s *TransactionService) UpdateTransaction(t model.Transaction) error {
	if t.ID == "" {
		return apperrors.ErrEmptyID
	}
	if t.UnitCost < 0 {
		return apperrors.ErrNegativePrice
	}
	return s.transactionRepo.UpdateTransaction(t)
}

// DeleteTransaction removes a ledger entry. History recomputes without it on
// the next read; stored snapshots keep the stale value until recaptured.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	if transactionID == "" {
		return apperrors.ErrEmptyID
	}
	return s.transactionRepo.DeleteTransaction(transactionID)
}

// Transfer moves value between two assets as a pair of ledger entries dated
// the same day: a debit of the full amount on the source and a credit of
// amount minus fee on the destination. The fee is therefore borne by the
// destination leg; it leaves the source in full and simply never arrives.
//
// When the destination is a liability the credit's sign flips, because
// moving money into a loan reduces the amount owed.
//
// Both legs are flagged as transfers with unit cost 1 so they value at face
// amount but are distinguishable from trades in the ledger.
//
// The legs are written in one database transaction: either both appear in
// the ledger or neither does.
func (s *TransactionService) Transfer(tr model.Transfer) error {
	if tr.FromAssetID == "" || tr.ToAssetID == "" {
		return apperrors.ErrInvalidAssetID
	}
	if tr.FromAssetID == tr.ToAssetID {
		return apperrors.ErrSameAsset
	}
	if tr.Amount <= 0 {
		return apperrors.ErrNegativeAmount
	}
	if tr.Fee < 0 || tr.Fee > tr.Amount {
		return apperrors.ErrNegativeAmount
	}

	from, err := s.assetRepo.GetAsset(tr.FromAssetID)
	if err != nil {
		return err
	}
	to, err := s.assetRepo.GetAsset(tr.ToAssetID)
	if err != nil {
		return err
	}

	credited := tr.Amount - tr.Fee
	if to.IsLiability() {
		credited = -credited
	}

	debit := model.Transaction{
		AssetID:    from.ID,
		Amount:     -tr.Amount,
		UnitCost:   1,
		Date:       tr.Date,
		IsTransfer: true,
		Note:       fmt.Sprintf("Transfer to %s", to.Name),
	}
	credit := model.Transaction{
		AssetID:    to.ID,
		Amount:     credited,
		UnitCost:   1,
		Date:       tr.Date,
		IsTransfer: true,
		Note:       fmt.Sprintf("Transfer from %s", from.Name),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer tx.Rollback()

	repo := s.transactionRepo.WithTx(tx)
	if _, err := repo.CreateTransaction(debit); err != nil {
		return err
	}
	if _, err := repo.CreateTransaction(credit); err != nil {
		return err
	}
	return tx.Commit()
}
