package request

// CreateTransactionRequest is the body for adding a ledger entry.
// Date is "2006-01-02"; empty means today.
type CreateTransactionRequest struct {
	AssetID  string  `json:"assetId"`
	Amount   float64 `json:"amount"`
	UnitCost float64 `json:"unitCost"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
}

// UpdateTransactionRequest is the body for editing a ledger entry.
type UpdateTransactionRequest struct {
	Amount   float64 `json:"amount"`
	UnitCost float64 `json:"unitCost"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
}

// TransferRequest is the body for moving value between two assets.
type TransferRequest struct {
	FromAssetID string  `json:"fromAssetId"`
	ToAssetID   string  `json:"toAssetId"`
	Amount      float64 `json:"amount"`
	Fee         float64 `json:"fee"`
	Date        string  `json:"date"`
}
