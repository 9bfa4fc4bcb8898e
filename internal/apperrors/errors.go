package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrGoalNotFound indicates that a goal with the given ID does not exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrSettingNotFound indicates that a setting key has no stored or default value.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrSnapshotNotFound indicates no net-worth snapshot exists for the requested date.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrIntegrationNotFound indicates that an integration with the given ID does not exist.
	ErrIntegrationNotFound = errors.New("integration not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
//
// Note: missing market data is deliberately absent from this taxonomy. A price
// or FX point that cannot be fetched is recovered inside the pricing layer via
// its fallback chain and never surfaces as an error to callers.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidCategory indicates an asset category outside the fixed taxonomy.
	ErrInvalidCategory = errors.New("invalid asset category")

	// ErrNegativePrice indicates that a price field has an invalid negative value.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrSameAsset indicates a transfer where source and destination are the same asset.
	ErrSameAsset = errors.New("transfer source and destination must differ")

	// ErrMissingEncryptionKey indicates integration credentials were supplied
	// but no fernet key is configured to encrypt them.
	ErrMissingEncryptionKey = errors.New("encryption key not configured")

	// Validation errors for required fields
	ErrInvalidAssetID   = errors.New("asset ID is required")
	ErrInvalidGoalID    = errors.New("goal ID is required")
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidDate      = errors.New("date parameter is required")
	ErrInvalidProvider  = errors.New("provider is required")
	ErrInvalidTargetPct = errors.New("target percentage must be between 0 and 100")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveGoals        = errors.New("failed to retrieve goals")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve snapshots")
	ErrFailedToComputeHistory       = errors.New("failed to compute net worth history")
	ErrFailedToUpsertSnapshot       = errors.New("failed to upsert snapshot")
	ErrFailedToSyncIntegration      = errors.New("failed to sync integration")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a transaction references an asset that no longer exists).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
