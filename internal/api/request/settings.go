package request

// SetAPIKeyRequest is the request body for storing the market-data API key.
// The key is encrypted before it reaches the database.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// RetentionRequest is the request body for a manual snapshot pruning run.
// Zero values fall back to the configured defaults.
type RetentionRequest struct {
	Days      int   `json:"days,omitempty"`
	KeepDaily *bool `json:"keepDaily,omitempty"`
}
