package model

// Well-known setting keys.
const (
	SettingFxRate           = "exchange_rate_usdtwd"
	SettingTargetAllocation = "target_allocation"
	SettingUpdateInterval   = "price_update_interval_minutes"
)

// Setting is a persisted key/value pair. Values are stored as strings and
// parsed by their consumers; a malformed value degrades to the consumer's
// default rather than failing the request.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
