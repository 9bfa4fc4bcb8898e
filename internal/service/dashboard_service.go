package service

import (
	"context"
	"math"
	"time"

	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/repository"
)

// DashboardService computes the live portfolio valuation: today's net worth
// from each asset's cached current price, aggregate profit/loss against cost
// basis and the per-category breakdown.
type DashboardService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	fxCache         *pricing.FxCache
	valuation       config.ValuationConfig
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	fxCache *pricing.FxCache,
	valuation config.ValuationConfig,
) *DashboardService {
	return &DashboardService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		fxCache:         fxCache,
		valuation:       valuation,
	}
}

// Dashboard values every asset at its cached current price and aggregates.
//
// Unlike the historical walk, no provider fetch happens here: current prices
// are whatever the scheduled refresh last wrote, so the dashboard stays fast
// and works offline. Only the FX rate is resolved live (through its own
// cache and fallback chain).
//
// Cost basis per asset is the sum of amount × unit cost over its ledger,
// overridden by quantity × manual average cost when the user set one.
// Profit/loss and ROI are computed only for market-priced assets; cash and
// fixed assets always show zero P/L.
func (s *DashboardService) Dashboard(ctx context.Context) (model.DashboardData, error) {
	assets, err := s.assetRepo.GetAssets(model.AssetFilter{})
	if err != nil {
		return model.DashboardData{}, err
	}

	transactionsByAsset, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		return model.DashboardData{}, err
	}

	fxRate := s.fxCache.Rate(ctx)
	now := time.Now().UTC()

	data := model.DashboardData{
		ExchangeRate: fxRate,
		Breakdown:    make(map[string]float64),
		Assets:       make([]model.AssetValuation, 0, len(assets)),
		UpdatedAt:    now,
	}

	totalCost := 0.0

	for _, asset := range assets {
		if !asset.IncludeInNetWorth {
			continue
		}

		transactions := transactionsByAsset[asset.ID]
		quantity := QuantityAt(transactions, now)

		value := quantity * s.currentLocalPrice(asset, fxRate)
		value = round2(sanitize(value))

		valuation := model.AssetValuation{
			Asset:    asset,
			Quantity: quantity,
			Value:    value,
		}

		if IsMarketPriced(asset) {
			cost := s.costBasis(asset, transactions, quantity, fxRate)
			valuation.Cost = round2(sanitize(cost))
			valuation.UnrealizedPL = round2(sanitize(value - cost))
			if cost > 0 {
				valuation.ROI = round2(sanitize((value - cost) / cost * 100))
			}
			totalCost += valuation.Cost
			data.TotalPL += valuation.UnrealizedPL
		}

		if asset.IsLiability() {
			data.NetWorth -= value
			data.Breakdown[asset.Category] -= value
		} else {
			data.NetWorth += value
			data.Breakdown[asset.Category] += value
		}

		data.Assets = append(data.Assets, valuation)
	}

	data.NetWorth = math.Round(sanitize(data.NetWorth))
	data.TotalPL = round2(sanitize(data.TotalPL))
	if totalCost > 0 {
		data.TotalROI = round2(sanitize(data.TotalPL / totalCost * 100))
	}
	for category, v := range data.Breakdown {
		data.Breakdown[category] = math.Round(sanitize(v))
	}

	return data, nil
}

// currentLocalPrice converts the asset's cached current price to the local
// currency. The cached price has no provider currency tag, so the policy
// falls through to the source and category heuristics.
func (s *DashboardService) currentLocalPrice(asset model.Asset, fxRate float64) float64 {
	point := pricing.PricePoint{Close: asset.CurrentPrice, Origin: pricing.OriginFetched}

	price := sanitize(asset.CurrentPrice)
	if ResolvePolicy(asset, point, s.valuation.LocalCurrency, s.valuation.LocalMarketSuffix) == PolicyForeignNeedsFx {
		price *= fxRate
	}
	return price
}

// costBasis returns the local-currency acquisition cost of the held quantity.
//
// A manual average cost, when set, overrides the ledger-derived figure. Unit
// costs are entered in the asset's native currency, so the cost goes through
// the same FX policy as the price.
func (s *DashboardService) costBasis(asset model.Asset, transactions []model.Transaction, quantity, fxRate float64) float64 {
	point := pricing.PricePoint{Origin: pricing.OriginFetched}
	foreign := ResolvePolicy(asset, point, s.valuation.LocalCurrency, s.valuation.LocalMarketSuffix) == PolicyForeignNeedsFx

	cost := 0.0
	if asset.ManualAvgCost != nil {
		cost = quantity * *asset.ManualAvgCost
	} else {
		for _, t := range transactions {
			cost += t.Amount * t.UnitCost
		}
	}
	if foreign {
		cost *= fxRate
	}
	return cost
}
