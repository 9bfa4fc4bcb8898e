package service

import (
	"strings"

	"github.com/ymoney/networth-backend/internal/marketdata"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
)

// CurrencyPolicy is the tagged decision of how a native price converts to
// the local reporting currency.
type CurrencyPolicy int

const (
	// PolicyLocal means the native price is already in the local currency;
	// value = quantity × price with no conversion.
	PolicyLocal CurrencyPolicy = iota
	// PolicyForeignNeedsFx means the native price is quoted in the reference
	// foreign currency and must be multiplied by the day's FX rate.
	PolicyForeignNeedsFx
)

// ResolvePolicy decides the conversion policy for one price point of an asset.
//
// The decision is per point, not per asset: an exchange-synced asset's
// fallback price is already local currency, while a freshly fetched quote
// for the same asset may be foreign. The point's origin tag, written at
// fetch time, settles the ambiguity instead of inferring it afterwards.
//
// Rules, evaluated in order:
//  1. A ticker listed on the local exchange is always local.
//  2. A fetched point that reports its quote currency is trusted outright:
//     local currency → Local, anything else → ForeignNeedsFx.
//  3. Exchange-synced sources report prices already converted to the local
//     currency, so untagged points for them are local.
//  4. Crypto defaults to foreign-quoted.
//  5. A market-priced stock that survived rule 1 is a foreign listing.
//  6. Everything else (cash, fixed assets, receivables, manual entries) is
//     local; unresolved combinations deliberately avoid the FX multiply so a
//     wrong guess cannot inflate or deflate net worth.
func ResolvePolicy(asset model.Asset, point pricing.PricePoint, localCurrency, localSuffix string) CurrencyPolicy {
	if asset.Ticker != "" && marketdata.IsLocalListing(asset.Ticker, localSuffix) {
		return PolicyLocal
	}

	if point.Origin == pricing.OriginFetched && point.Currency != "" {
		if point.Currency == localCurrency {
			return PolicyLocal
		}
		return PolicyForeignNeedsFx
	}

	if asset.Source == model.SourceExchange {
		return PolicyLocal
	}

	if isCrypto(asset) {
		return PolicyForeignNeedsFx
	}

	if isStock(asset) && asset.Ticker != "" {
		return PolicyForeignNeedsFx
	}

	return PolicyLocal
}

// IsMarketPriced reports whether the asset's price comes from the market-data
// provider (and therefore participates in history fetches and scheduled
// refreshes) rather than being a manual or container price.
func IsMarketPriced(asset model.Asset) bool {
	return asset.Ticker != "" && (isStock(asset) || isCrypto(asset))
}

// FetchSymbolFor maps an asset to the provider symbol used for price lookups.
// Returns "" for assets that are not market-priced.
func FetchSymbolFor(asset model.Asset) string {
	if !IsMarketPriced(asset) {
		return ""
	}
	return marketdata.FetchSymbol(asset.Ticker, isCrypto(asset))
}

func isCrypto(asset model.Asset) bool {
	return asset.Category == model.CategoryCrypto || strings.Contains(asset.SubCategory, "Crypto")
}

func isStock(asset model.Asset) bool {
	return asset.Category == model.CategoryStock || strings.Contains(asset.SubCategory, "Stock")
}
