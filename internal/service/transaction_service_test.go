package service_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("persists a valid entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		asset := testutil.NewAsset().Build(t, db)

		created, err := svc.CreateTransaction(model.Transaction{
			AssetID:  asset.ID,
			Amount:   10,
			UnitCost: 500,
			Date:     testutil.Date(t, "2025-03-01"),
		})
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected a generated ID")
		}
		testutil.AssertRowCount(t, db, "asset_transaction", 1)
	})

	t.Run("rejects an unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(model.Transaction{
			AssetID: testutil.MakeID(),
			Amount:  10,
			Date:    testutil.Date(t, "2025-03-01"),
		})
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("rejects a negative unit cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		asset := testutil.NewAsset().Build(t, db)

		_, err := svc.CreateTransaction(model.Transaction{
			AssetID:  asset.ID,
			Amount:   10,
			UnitCost: -1,
			Date:     testutil.Date(t, "2025-03-01"),
		})
		if !errors.Is(err, apperrors.ErrNegativePrice) {
			t.Errorf("Expected ErrNegativePrice, got %v", err)
		}
	})
}

func TestTransactionService_Transfer(t *testing.T) {
	t.Run("writes a debit and a fee-reduced credit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		from := testutil.NewAsset().WithName("Checking").Build(t, db)
		to := testutil.NewAsset().WithName("Savings").Build(t, db)

		err := svc.Transfer(model.Transfer{
			FromAssetID: from.ID,
			ToAssetID:   to.ID,
			Amount:      1000,
			Fee:         50,
			Date:        testutil.Date(t, "2025-03-01"),
		})
		if err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}

		fromLedger, err := svc.GetTransactions(from.ID)
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}
		toLedger, err := svc.GetTransactions(to.ID)
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}

		if len(fromLedger) != 1 || len(toLedger) != 1 {
			t.Fatalf("Expected one leg per asset, got %d and %d", len(fromLedger), len(toLedger))
		}

		debit := fromLedger[0]
		if debit.Amount != -1000 || !debit.IsTransfer || debit.UnitCost != 1 {
			t.Errorf("Unexpected debit leg: %+v", debit)
		}
		if debit.Note != "Transfer to Savings" {
			t.Errorf("Unexpected debit note %q", debit.Note)
		}

		credit := toLedger[0]
		if credit.Amount != 950 || !credit.IsTransfer {
			t.Errorf("Unexpected credit leg: %+v", credit)
		}
		if credit.Note != "Transfer from Checking" {
			t.Errorf("Unexpected credit note %q", credit.Note)
		}
	})

	t.Run("paying down a liability flips the credit sign", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		from := testutil.NewAsset().WithName("Checking").Build(t, db)
		loan := testutil.NewAsset().WithName("Car Loan").WithCategory(model.CategoryLiabilities).Build(t, db)

		err := svc.Transfer(model.Transfer{
			FromAssetID: from.ID,
			ToAssetID:   loan.ID,
			Amount:      5000,
			Date:        testutil.Date(t, "2025-03-01"),
		})
		if err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}

		loanLedger, err := svc.GetTransactions(loan.ID)
		if err != nil {
			t.Fatalf("GetTransactions failed: %v", err)
		}
		if len(loanLedger) != 1 {
			t.Fatalf("Expected 1 leg, got %d", len(loanLedger))
		}
		if loanLedger[0].Amount != -5000 {
			t.Errorf("Expected loan balance reduction of -5000, got %v", loanLedger[0].Amount)
		}
	})

	t.Run("rejects transfers to the same asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		asset := testutil.NewAsset().Build(t, db)

		err := svc.Transfer(model.Transfer{
			FromAssetID: asset.ID,
			ToAssetID:   asset.ID,
			Amount:      100,
			Date:        testutil.Date(t, "2025-03-01"),
		})
		if !errors.Is(err, apperrors.ErrSameAsset) {
			t.Errorf("Expected ErrSameAsset, got %v", err)
		}
	})

	t.Run("rejects a fee larger than the amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		from := testutil.NewAsset().Build(t, db)
		to := testutil.NewAsset().Build(t, db)

		err := svc.Transfer(model.Transfer{
			FromAssetID: from.ID,
			ToAssetID:   to.ID,
			Amount:      100,
			Fee:         150,
			Date:        testutil.Date(t, "2025-03-01"),
		})
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}

		testutil.AssertRowCount(t, db, "asset_transaction", 0)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		from := testutil.NewAsset().Build(t, db)
		to := testutil.NewAsset().Build(t, db)

		err := svc.Transfer(model.Transfer{
			FromAssetID: from.ID,
			ToAssetID:   to.ID,
			Amount:      0,
			Date:        testutil.Date(t, "2025-03-01"),
		})
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}
