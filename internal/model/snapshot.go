package model

import "time"

// NetWorthSnapshot is a persisted daily valuation: total net worth in the
// local currency plus a per-category breakdown. Exactly one row exists per
// calendar date; re-running the reconstruction for a date overwrites the
// stored value in place.
type NetWorthSnapshot struct {
	Date      time.Time          `json:"date"`
	Value     float64            `json:"value"`
	Breakdown map[string]float64 `json:"breakdown"`
	CreatedAt time.Time          `json:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}

// DailyNetWorth is one computed day of the reconstruction walk: the total
// net worth and signed per-category sums for that date. Values are rounded
// to whole units of the local currency.
type DailyNetWorth struct {
	Date      string             `json:"date"` // YYYY-MM-DD
	Value     float64            `json:"value"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// AssetHistoryPoint is one computed day of a single asset's history.
type AssetHistoryPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"` // local currency, after any FX conversion
	Value    float64 `json:"value"` // local currency
}
