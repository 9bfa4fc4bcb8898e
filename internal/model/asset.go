package model

import "time"

// Asset categories form a fixed taxonomy. Every asset belongs to exactly one.
const (
	CategoryFluid       = "Fluid"
	CategoryStock       = "Stock"
	CategoryCrypto      = "Crypto"
	CategoryFixed       = "Fixed"
	CategoryReceivables = "Receivables"
	CategoryLiabilities = "Liabilities"
)

// Asset sources describe where balance data for the asset originates.
const (
	SourceManual   = "manual"   // quantities entered by the user
	SourceExchange = "exchange" // balances synced from an exchange integration
	SourceWallet   = "wallet"   // balances synced from an on-chain wallet
)

// Categories lists the full taxonomy in display order.
var Categories = []string{
	CategoryFluid,
	CategoryStock,
	CategoryCrypto,
	CategoryFixed,
	CategoryReceivables,
	CategoryLiabilities,
}

// ValidCategory reports whether c is part of the fixed taxonomy.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Asset represents a single holding tracked by the system: a bank account,
// a stock position, a crypto balance, a fixed asset or a liability.
//
// CurrentPrice is the most recent known price in the asset's native quote
// currency. For tickerless containers (cash, fixed assets) it defaults to 1.0
// so that quantity doubles as value.
type Asset struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Ticker            string    `json:"ticker,omitempty"`
	Category          string    `json:"category"`
	SubCategory       string    `json:"subCategory,omitempty"`
	Source            string    `json:"source"`
	CurrentPrice      float64   `json:"currentPrice"`
	IncludeInNetWorth bool      `json:"includeInNetWorth"`
	IsFavorite        bool      `json:"isFavorite"`
	Icon              string    `json:"icon,omitempty"`
	ManualAvgCost     *float64  `json:"manualAvgCost,omitempty"`
	ExternalID        string    `json:"externalId,omitempty"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// IsLiability reports whether the asset contributes with a negated sign to
// net worth totals.
func (a Asset) IsLiability() bool {
	return a.Category == CategoryLiabilities
}

// AssetValuation represents an asset enriched with computed valuation fields
// for API responses. Value is expressed in the local reporting currency.
type AssetValuation struct {
	Asset
	Quantity     float64 `json:"quantity"`
	Value        float64 `json:"value"`
	Cost         float64 `json:"cost"`
	UnrealizedPL float64 `json:"unrealizedPl"`
	ROI          float64 `json:"roi"`
}

// AssetFilter for querying assets
type AssetFilter struct {
	Category      string
	Source        string
	OnlyIncluded  bool
	OnlyFavorites bool
}
