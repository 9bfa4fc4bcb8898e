package repository_test

import (
	"errors"
	"testing"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/testutil"
)

func TestAssetRepository(t *testing.T) {
	t.Run("create and get round trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		manualCost := 95.5
		created, err := repo.CreateAsset(model.Asset{
			Name:              "US Broker",
			Ticker:            "NVDA",
			Category:          model.CategoryStock,
			SubCategory:       "Growth",
			CurrentPrice:      120,
			IncludeInNetWorth: true,
			ManualAvgCost:     &manualCost,
		})
		if err != nil {
			t.Fatalf("CreateAsset failed: %v", err)
		}
		if created.ID == "" {
			t.Fatal("Expected a generated ID")
		}
		if created.Source != model.SourceManual {
			t.Errorf("Expected default source %q, got %q", model.SourceManual, created.Source)
		}

		got, err := repo.GetAsset(created.ID)
		if err != nil {
			t.Fatalf("GetAsset failed: %v", err)
		}
		if got.Name != "US Broker" || got.Ticker != "NVDA" || got.CurrentPrice != 120 {
			t.Errorf("Round trip mismatch: %+v", got)
		}
		if got.ManualAvgCost == nil || *got.ManualAvgCost != 95.5 {
			t.Errorf("Expected manual avg cost 95.5, got %v", got.ManualAvgCost)
		}
	})

	t.Run("tickerless asset defaults to price 1", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		created, err := repo.CreateAsset(model.Asset{
			Name:              "Bank",
			Category:          model.CategoryFluid,
			IncludeInNetWorth: true,
		})
		if err != nil {
			t.Fatalf("CreateAsset failed: %v", err)
		}
		if created.CurrentPrice != 1.0 {
			t.Errorf("Expected default price 1.0, got %v", created.CurrentPrice)
		}
	})

	t.Run("market-priced asset starts at zero until refreshed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		created, err := repo.CreateAsset(model.Asset{
			Name:     "TSMC",
			Ticker:   "2330.TW",
			Category: model.CategoryStock,
		})
		if err != nil {
			t.Fatalf("CreateAsset failed: %v", err)
		}
		if created.CurrentPrice != 0 {
			t.Errorf("Expected price 0, got %v", created.CurrentPrice)
		}
	})

	t.Run("filters by category and inclusion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		testutil.NewAsset().WithName("Bank").Build(t, db)
		testutil.NewAsset().WithName("Stocks").WithCategory(model.CategoryStock).Build(t, db)
		testutil.NewAsset().WithName("Hidden").WithCategory(model.CategoryStock).Excluded().Build(t, db)

		stocks, err := repo.GetAssets(model.AssetFilter{Category: model.CategoryStock})
		if err != nil {
			t.Fatalf("GetAssets failed: %v", err)
		}
		if len(stocks) != 2 {
			t.Errorf("Expected 2 stock assets, got %d", len(stocks))
		}

		included, err := repo.GetAssets(model.AssetFilter{Category: model.CategoryStock, OnlyIncluded: true})
		if err != nil {
			t.Fatalf("GetAssets failed: %v", err)
		}
		if len(included) != 1 {
			t.Errorf("Expected 1 included stock asset, got %d", len(included))
		}
	})

	t.Run("update price touches only the price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		asset := testutil.NewAsset().WithName("TSMC").WithTicker("2330.TW").WithCategory(model.CategoryStock).WithPrice(900).Build(t, db)

		if err := repo.UpdateAssetPrice(asset.ID, 1050); err != nil {
			t.Fatalf("UpdateAssetPrice failed: %v", err)
		}

		got, err := repo.GetAsset(asset.ID)
		if err != nil {
			t.Fatalf("GetAsset failed: %v", err)
		}
		if got.CurrentPrice != 1050 {
			t.Errorf("Expected price 1050, got %v", got.CurrentPrice)
		}
		if got.Name != "TSMC" {
			t.Errorf("Name changed unexpectedly: %q", got.Name)
		}
	})

	t.Run("lookup by external id and source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		testutil.NewAsset().
			WithName("Exchange BTC").
			WithCategory(model.CategoryCrypto).
			WithSource(model.SourceExchange).
			WithExternalID("abc:BTC").
			Build(t, db)

		got, err := repo.GetAssetByExternalID(model.SourceExchange, "abc:BTC")
		if err != nil {
			t.Fatalf("GetAssetByExternalID failed: %v", err)
		}
		if got.Name != "Exchange BTC" {
			t.Errorf("Unexpected asset: %+v", got)
		}

		_, err = repo.GetAssetByExternalID(model.SourceManual, "abc:BTC")
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound for wrong source, got %v", err)
		}
	})

	t.Run("deleting an asset cascades to its transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithAmount(100).Build(t, db)
		testutil.NewTransaction(asset.ID).WithAmount(200).Build(t, db)

		if err := repo.DeleteAsset(asset.ID); err != nil {
			t.Fatalf("DeleteAsset failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "asset", 0)
		testutil.AssertRowCount(t, db, "asset_transaction", 0)
	})

	t.Run("unknown ids return not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		if _, err := repo.GetAsset(testutil.MakeID()); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from GetAsset, got %v", err)
		}
		if err := repo.UpdateAssetPrice(testutil.MakeID(), 1); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from UpdateAssetPrice, got %v", err)
		}
		if err := repo.DeleteAsset(testutil.MakeID()); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from DeleteAsset, got %v", err)
		}
	})
}
