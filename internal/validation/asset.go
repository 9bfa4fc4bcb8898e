package validation

import (
	"strings"
	"time"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/model"
)

func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !model.ValidCategory(req.Category) {
		errors["category"] = "category must be one of " + strings.Join(model.Categories, ", ")
	}

	if req.CurrentPrice < 0 {
		errors["currentPrice"] = "current price cannot be negative"
	}

	if req.ManualAvgCost != nil && *req.ManualAvgCost < 0 {
		errors["manualAvgCost"] = "manual average cost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !model.ValidCategory(req.Category) {
		errors["category"] = "category must be one of " + strings.Join(model.Categories, ", ")
	}

	if req.ManualAvgCost != nil && *req.ManualAvgCost < 0 {
		errors["manualAvgCost"] = "manual average cost cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDate checks an optional "2006-01-02" date string.
func ValidateDate(field, value string, errors map[string]string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = "date must be YYYY-MM-DD"
	}
}
