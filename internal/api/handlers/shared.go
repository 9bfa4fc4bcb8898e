package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps service-layer errors onto HTTP status codes:
// not-found sentinels become 404, validation sentinels 400, everything
// else 500.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrGoalNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound),
		errors.Is(err, apperrors.ErrIntegrationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrEmptyID),
		errors.Is(err, apperrors.ErrInvalidCategory),
		errors.Is(err, apperrors.ErrNegativePrice),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrSameAsset),
		errors.Is(err, apperrors.ErrInvalidAssetID),
		errors.Is(err, apperrors.ErrInvalidName),
		errors.Is(err, apperrors.ErrInvalidProvider),
		errors.Is(err, apperrors.ErrMissingEncryptionKey):
		status = http.StatusBadRequest
	}

	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}

// respondValidationError sends per-field validation failures as a 400.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	respondJSON(w, http.StatusBadRequest, map[string]string{
		"error":  "validation failed",
		"detail": err.Error(),
	})
}

// parseDateRange reads optional start_date/end_date query parameters.
// Defaults: start_date one year ago, end_date today. Accepts "2006-01-02"
// or RFC 3339.
func parseDateRange(r *http.Request) (startDate, endDate time.Time, err error) {
	now := time.Now().UTC()
	startDate = now.AddDate(-1, 0, 0)
	endDate = now

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if startDate, err = parseDate(raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if endDate, err = parseDate(raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// parseDate accepts "2006-01-02" or RFC 3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
