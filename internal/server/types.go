package server

// CallRequest is the body of POST /mcp/call.
type CallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// HealthResponse is the readiness payload served at GET /health.
type HealthResponse struct {
	Status            string `json:"status"`
	CatalogLoaded     bool   `json:"catalog_loaded"`
	CredentialPresent bool   `json:"credential_present"`
}
