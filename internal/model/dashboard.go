package model

import "time"

// DashboardData is the live valuation of the whole portfolio: current net
// worth in the local currency, aggregate profit/loss against cost basis and
// the per-asset valuations it was built from.
type DashboardData struct {
	NetWorth     float64            `json:"netWorth"`
	TotalPL      float64            `json:"totalPl"`
	TotalROI     float64            `json:"totalRoi"`
	ExchangeRate float64            `json:"exchangeRate"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Assets       []AssetValuation   `json:"assets"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
