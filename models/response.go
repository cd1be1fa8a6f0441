package models

// ProductResponse is the response for POST /api/v1/product.
type ProductResponse struct {
	// Success indicates whether extraction completed without errors.
	Success bool `json:"success"`

	// ItemID is the numeric product identifier derived from the URL.
	ItemID string `json:"item_id,omitempty"`

	// SourceURL is the URL the client asked for.
	SourceURL string `json:"source_url,omitempty"`

	// FinalURL is the URL after following all redirects.
	FinalURL string `json:"final_url,omitempty"`

	// StatusCode is the HTTP status code from the fetched page.
	StatusCode int `json:"status_code,omitempty"`

	// Product is the normalized record. Present only on success.
	Product *Product `json:"product,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent downloading the page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent running the extraction cascade.
	ExtractMs int64 `json:"extract_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"` // "healthy"
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
