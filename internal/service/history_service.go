package service

import (
	"context"
	"math"
	"time"

	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/marketdata"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/repository"
)

// HistoryService is the daily reconstruction engine. It replays the full
// ledger day by day across a date range, pricing every asset with gap-filled
// market data and converting foreign quotes with that day's FX rate, to
// produce the net-worth series and per-category breakdowns.
type HistoryService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	provider        marketdata.Provider
	fxCache         *pricing.FxCache
	valuation       config.ValuationConfig
}

// NewHistoryService creates a new HistoryService with the provided dependencies.
func NewHistoryService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	provider marketdata.Provider,
	fxCache *pricing.FxCache,
	valuation config.ValuationConfig,
) *HistoryService {
	return &HistoryService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		provider:        provider,
		fxCache:         fxCache,
		valuation:       valuation,
	}
}

// History reconstructs total net worth and its per-category breakdown for
// every calendar day from startDate to endDate, inclusive.
//
// Calculation pipeline:
//  1. Load all assets and the complete ledger (held quantities on any date
//     depend on every transaction before it, so the load is never clipped
//     to the display range).
//  2. Fetch gap-filled price history for every market-priced asset plus the
//     FX pair, concurrently, into a cache scoped to this computation.
//  3. Walk the range one day at a time: advance each asset's replay cursor,
//     price the holding, resolve the currency policy per price point,
//     convert, and accumulate.
//
// Assets excluded from net worth are skipped entirely, including from the
// breakdown. Zero holdings are skipped (their cursor still advances).
// Liabilities contribute with a negated sign to both the total and their own
// category bucket. Output values are rounded to whole units of the local
// currency and never contain NaN or Infinity.
//
// If ctx is cancelled mid-walk the partial series computed so far is
// returned with a nil error; the price cache is additive-only, so nothing
// is left inconsistent.
func (s *HistoryService) History(ctx context.Context, startDate, endDate time.Time) ([]model.DailyNetWorth, error) {
	assets, err := s.assetRepo.GetAssets(model.AssetFilter{})
	if err != nil {
		return nil, err
	}

	transactionsByAsset, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		return nil, err
	}

	prices, fxHistory := s.fetchPriceHistory(ctx, assets, startDate, endDate)

	// Resolved once per computation; the per-day rate comes from the filled
	// FX series and this is the degraded value for days outside it.
	fallbackRate := s.fxCache.Rate(ctx)

	cursors := make(map[string]*ReplayCursor, len(assets))
	symbols := make(map[string]string, len(assets))
	for _, asset := range assets {
		cursors[asset.ID] = NewReplayCursor(transactionsByAsset[asset.ID])
		symbols[asset.ID] = FetchSymbolFor(asset)
	}

	result := []model.DailyNetWorth{}

	for day := dateOnly(startDate); !day.After(dateOnly(endDate)); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return result, nil
		}

		dateKey := day.Format("2006-01-02")
		dayTotal := 0.0
		breakdown := make(map[string]float64)

		for _, asset := range assets {
			quantity := cursors[asset.ID].Advance(day)

			if !asset.IncludeInNetWorth {
				continue
			}
			if quantity == 0 {
				continue
			}

			value := s.valueAsset(asset, quantity, prices, symbols[asset.ID], fxHistory, dateKey, fallbackRate)

			if asset.IsLiability() {
				dayTotal -= value
				breakdown[asset.Category] -= value
			} else {
				dayTotal += value
				breakdown[asset.Category] += value
			}
		}

		rounded := make(map[string]float64, len(breakdown))
		for category, v := range breakdown {
			rounded[category] = math.Round(sanitize(v))
		}

		result = append(result, model.DailyNetWorth{
			Date:      dateKey,
			Value:     math.Round(sanitize(dayTotal)),
			Breakdown: rounded,
		})
	}

	return result, nil
}

// AssetHistory reconstructs a single asset's daily quantity, price and value
// across the range. Returns apperrors.ErrAssetNotFound for an unknown ID;
// missing market data degrades to the asset's last known price as usual.
func (s *HistoryService) AssetHistory(ctx context.Context, assetID string, startDate, endDate time.Time) ([]model.AssetHistoryPoint, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactionsByAsset(assetID)
	if err != nil {
		return nil, err
	}

	prices, fxHistory := s.fetchPriceHistory(ctx, []model.Asset{asset}, startDate, endDate)
	fallbackRate := s.fxCache.Rate(ctx)

	cursor := NewReplayCursor(transactions)
	symbol := FetchSymbolFor(asset)

	result := []model.AssetHistoryPoint{}

	for day := dateOnly(startDate); !day.After(dateOnly(endDate)); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return result, nil
		}

		dateKey := day.Format("2006-01-02")
		quantity := cursor.Advance(day)

		localPrice := s.localPrice(asset, prices, symbol, fxHistory, dateKey, fallbackRate)

		result = append(result, model.AssetHistoryPoint{
			Date:     dateKey,
			Quantity: quantity,
			Price:    round2(sanitize(localPrice)),
			Value:    round2(sanitize(quantity * localPrice)),
		})
	}

	return result, nil
}

// fetchPriceHistory loads gap-filled close prices for every market-priced
// asset plus the FX pair into a computation-scoped cache.
func (s *HistoryService) fetchPriceHistory(ctx context.Context, assets []model.Asset, startDate, endDate time.Time) (pricing.History, map[string]pricing.PricePoint) {
	symbols := []string{s.valuation.FxSymbol}
	for _, asset := range assets {
		if symbol := FetchSymbolFor(asset); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	cache := pricing.NewCache(s.provider, s.valuation.PriceBufferDays, s.valuation.FetchConcurrency)
	history := cache.Fetch(ctx, symbols, dateOnly(startDate), dateOnly(endDate))

	return history, history[s.valuation.FxSymbol]
}

// valueAsset computes one asset's local-currency value for one day.
func (s *HistoryService) valueAsset(
	asset model.Asset,
	quantity float64,
	prices pricing.History,
	symbol string,
	fxHistory map[string]pricing.PricePoint,
	dateKey string,
	fallbackRate float64,
) float64 {
	return quantity * s.localPrice(asset, prices, symbol, fxHistory, dateKey, fallbackRate)
}

// localPrice resolves an asset's native price for a day and converts it to
// the local currency according to the per-point currency policy.
//
// Fallback chain for the native price: gap-filled fetched series → the
// asset's last cached current price. The fallback point is tagged
// OriginAssetFallback so the policy never FX-multiplies a price that an
// exchange integration already reported in local currency.
func (s *HistoryService) localPrice(
	asset model.Asset,
	prices pricing.History,
	symbol string,
	fxHistory map[string]pricing.PricePoint,
	dateKey string,
	fallbackRate float64,
) float64 {
	point := pricing.PricePoint{Close: asset.CurrentPrice, Origin: pricing.OriginAssetFallback}
	if symbol != "" {
		if fetched, ok := prices.Lookup(symbol, dateKey); ok {
			point = fetched
		}
	}

	price := point.Close
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	if ResolvePolicy(asset, point, s.valuation.LocalCurrency, s.valuation.LocalMarketSuffix) == PolicyForeignNeedsFx {
		rate := fallbackRate
		if fx, ok := fxHistory[dateKey]; ok {
			rate = fx.Close
		}
		price *= rate
	}

	return price
}

// sanitize maps non-finite intermediate results to zero so consumers never
// receive NaN or Infinity.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
