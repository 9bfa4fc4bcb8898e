package service

import (
	"context"
	"log"
	"time"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/marketdata"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/repository"
)

// AssetService handles asset CRUD and the scheduled current-price refresh.
type AssetService struct {
	assetRepo *repository.AssetRepository
	provider  marketdata.Provider
	fxCache   *pricing.FxCache
	valuation config.ValuationConfig
}

// NewAssetService creates a new AssetService.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	provider marketdata.Provider,
	fxCache *pricing.FxCache,
	valuation config.ValuationConfig,
) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		provider:  provider,
		fxCache:   fxCache,
		valuation: valuation,
	}
}

// GetAssets returns assets matching the filter.
func (s *AssetService) GetAssets(filter model.AssetFilter) ([]model.Asset, error) {
	return s.assetRepo.GetAssets(filter)
}

// GetAsset returns one asset by ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	if assetID == "" {
		return model.Asset{}, apperrors.ErrEmptyID
	}
	return s.assetRepo.GetAsset(assetID)
}

// CreateAsset validates and persists a new asset.
func (s *AssetService) CreateAsset(a model.Asset) (model.Asset, error) {
	if a.Name == "" {
		return model.Asset{}, apperrors.ErrInvalidName
	}
	if !model.ValidCategory(a.Category) {
		return model.Asset{}, apperrors.ErrInvalidCategory
	}
	if a.CurrentPrice < 0 {
		return model.Asset{}, apperrors.ErrNegativePrice
	}
	return s.assetRepo.CreateAsset(a)
}

// UpdateAsset validates and persists changes to an existing asset.
func (s *AssetService) UpdateAsset(a model.Asset) error {
	if a.ID == "" {
		return apperrors.ErrEmptyID
	}
	if a.Name == "" {
		return apperrors.ErrInvalidName
	}
	if !model.ValidCategory(a.Category) {
		return apperrors.ErrInvalidCategory
	}
	if a.CurrentPrice < 0 {
		return apperrors.ErrNegativePrice
	}
	return s.assetRepo.UpdateAsset(a)
}

// DeleteAsset removes an asset. Its transactions are removed with it by the
// schema's cascade rule.
func (s *AssetService) DeleteAsset(assetID string) error {
	if assetID == "" {
		return apperrors.ErrEmptyID
	}
	return s.assetRepo.DeleteAsset(assetID)
}

// RefreshPrices fetches the latest quote for every market-priced asset and
// writes it as the asset's current price, then refreshes the FX rate.
//
// Per-asset failures are logged and skipped so one delisted ticker cannot
// block the rest of the refresh cycle. Returns the number of assets whose
// price was updated.
func (s *AssetService) RefreshPrices(ctx context.Context) (int, error) {
	assets, err := s.assetRepo.GetAssets(model.AssetFilter{})
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, asset := range assets {
		symbol := FetchSymbolFor(asset)
		if symbol == "" {
			continue
		}
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		close, currency, err := s.latestClose(ctx, symbol)
		if err != nil {
			log.Printf("price refresh failed for %s (%s): %v", asset.Name, symbol, err)
			continue
		}

		price := s.storedPrice(ctx, asset, close, currency)

		if err := s.assetRepo.UpdateAssetPrice(asset.ID, price); err != nil {
			log.Printf("price update failed for %s: %v", asset.Name, err)
			continue
		}
		updated++
	}

	if _, err := s.fxCache.Refresh(ctx); err != nil {
		log.Printf("fx refresh failed: %v", err)
	}

	return updated, nil
}

// latestClose fetches the most recent daily close for a symbol along with
// its provider-reported quote currency.
func (s *AssetService) latestClose(ctx context.Context, symbol string) (float64, string, error) {
	end := time.Now().UTC()
	series, err := s.provider.GetClosePrices(ctx, symbol, end.AddDate(0, 0, -7), end)
	if err != nil {
		return 0, "", err
	}
	if len(series.Points) == 0 {
		return 0, "", apperrors.ErrDataInconsistency
	}
	return series.Points[len(series.Points)-1].Close, series.Currency, nil
}

// storedPrice converts a fetched close into the currency the cached current
// price is read back in.
//
// The stored price carries no currency tag, so the dashboard and the history
// fallback path resolve it through the untagged policy. When that policy
// reads the price as local but the provider quoted it in a foreign currency
// (an exchange-synced crypto holding fetched as BTC-USD, for example), the
// FX conversion happens once here at write time. Quotes the readers convert
// themselves, like a foreign stock listing, are stored as fetched.
func (s *AssetService) storedPrice(ctx context.Context, asset model.Asset, close float64, currency string) float64 {
	untagged := pricing.PricePoint{Origin: pricing.OriginFetched}
	if ResolvePolicy(asset, untagged, s.valuation.LocalCurrency, s.valuation.LocalMarketSuffix) == PolicyForeignNeedsFx {
		return close
	}

	quoted := pricing.PricePoint{Origin: pricing.OriginFetched, Currency: currency}
	if ResolvePolicy(asset, quoted, s.valuation.LocalCurrency, s.valuation.LocalMarketSuffix) == PolicyForeignNeedsFx {
		return close * s.fxCache.Rate(ctx)
	}
	return close
}
