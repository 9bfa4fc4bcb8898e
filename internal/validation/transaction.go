package validation

import (
	"strings"

	"github.com/ymoney/networth-backend/internal/api/request"
)

func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.AssetID) == "" {
		errors["assetId"] = "assetId is required"
	} else if err := ValidateUUID(req.AssetID); err != nil {
		errors["assetId"] = err.Error()
	}

	if req.Amount == 0 {
		errors["amount"] = "amount must be a non-zero quantity delta"
	}

	if req.UnitCost < 0 {
		errors["unitCost"] = "unit cost cannot be negative"
	}

	ValidateDate("date", req.Date, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Amount == 0 {
		errors["amount"] = "amount must be a non-zero quantity delta"
	}

	if req.UnitCost < 0 {
		errors["unitCost"] = "unit cost cannot be negative"
	}

	ValidateDate("date", req.Date, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateTransfer(req request.TransferRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FromAssetID) == "" {
		errors["fromAssetId"] = "fromAssetId is required"
	} else if err := ValidateUUID(req.FromAssetID); err != nil {
		errors["fromAssetId"] = err.Error()
	}

	if strings.TrimSpace(req.ToAssetID) == "" {
		errors["toAssetId"] = "toAssetId is required"
	} else if err := ValidateUUID(req.ToAssetID); err != nil {
		errors["toAssetId"] = err.Error()
	}

	if req.FromAssetID != "" && req.FromAssetID == req.ToAssetID {
		errors["toAssetId"] = "source and destination must differ"
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if req.Fee < 0 {
		errors["fee"] = "fee cannot be negative"
	}
	if req.Fee > req.Amount {
		errors["fee"] = "fee cannot exceed amount"
	}

	ValidateDate("date", req.Date, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
