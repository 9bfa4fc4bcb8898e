package request

// CreateIntegrationRequest is the body for configuring a balance provider.
// Credentials are accepted in the clear over the API and encrypted before
// they are stored.
type CreateIntegrationRequest struct {
	Provider  string `json:"provider"`
	Name      string `json:"name"`
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
	IsActive  *bool  `json:"isActive"`
}
