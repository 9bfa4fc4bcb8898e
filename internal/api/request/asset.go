// Package request defines the JSON request bodies accepted by the API.
package request

// CreateAssetRequest is the body for creating an asset.
type CreateAssetRequest struct {
	Name              string   `json:"name"`
	Ticker            string   `json:"ticker"`
	Category          string   `json:"category"`
	SubCategory       string   `json:"subCategory"`
	Source            string   `json:"source"`
	CurrentPrice      float64  `json:"currentPrice"`
	IncludeInNetWorth *bool    `json:"includeInNetWorth"`
	IsFavorite        bool     `json:"isFavorite"`
	Icon              string   `json:"icon"`
	ManualAvgCost     *float64 `json:"manualAvgCost"`
}

// UpdateAssetRequest is the body for updating an asset.
type UpdateAssetRequest struct {
	Name              string   `json:"name"`
	Ticker            string   `json:"ticker"`
	Category          string   `json:"category"`
	SubCategory       string   `json:"subCategory"`
	Source            string   `json:"source"`
	IncludeInNetWorth *bool    `json:"includeInNetWorth"`
	IsFavorite        bool     `json:"isFavorite"`
	Icon              string   `json:"icon"`
	ManualAvgCost     *float64 `json:"manualAvgCost"`
}
