package model

import "time"

// Integration represents a configured connection to an external balance
// provider (an exchange or wallet). APIKey and APISecret are stored as
// fernet tokens, never in the clear.
type Integration struct {
	ID           string     `json:"id"`
	Provider     string     `json:"provider"`
	Name         string     `json:"name"`
	APIKey       string     `json:"-"`
	APISecret    string     `json:"-"`
	IsActive     bool       `json:"isActive"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
}

// ProviderBalance is one ticker+quantity pair reported by a balance
// provider during sync.
type ProviderBalance struct {
	Ticker   string
	Name     string
	Quantity float64
}

// IntegrationSyncResult summarizes one sync run for an integration.
type IntegrationSyncResult struct {
	IntegrationID string    `json:"integrationId"`
	Provider      string    `json:"provider"`
	AssetsSynced  int       `json:"assetsSynced"`
	Adjustments   int       `json:"adjustments"`
	SyncedAt      time.Time `json:"syncedAt"`
}
