package model

import "time"

// Transaction represents a single quantity-changing event in an asset's
// ledger. Amount is a signed quantity delta: positive acquires, negative
// disposes. UnitCost is the per-unit cost in the asset's native currency at
// the time of the transaction; it is 0 for balance adjustments written by
// external sync.
//
// The invariant the whole valuation engine rests on: the sum of Amount over
// all transactions of an asset dated on or before T is the held quantity at
// T, for any T.
type Transaction struct {
	ID         string    `json:"id"`
	AssetID    string    `json:"assetId"`
	Amount     float64   `json:"amount"`
	UnitCost   float64   `json:"unitCost"`
	Date       time.Time `json:"date"`
	IsTransfer bool      `json:"isTransfer"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Transfer describes an internal movement of value between two assets.
// The fee is deducted from the amount credited to the destination.
type Transfer struct {
	FromAssetID string    `json:"fromAssetId"`
	ToAssetID   string    `json:"toAssetId"`
	Amount      float64   `json:"amount"`
	Fee         float64   `json:"fee"`
	Date        time.Time `json:"date"`
}
