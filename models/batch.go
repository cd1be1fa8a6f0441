package models

import "sync"

// BatchRequest is the payload for POST /api/v1/batch/products.
type BatchRequest struct {
	// URLs is the list of product pages to extract. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=50"`

	// WebhookURL, when set, receives a signed batch.completed event
	// once every URL has been processed.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// BatchResponse is the immediate response for POST /api/v1/batch/products.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Completed int                `json:"completed"`
	Total     int                `json:"total"`
	Results   []*ProductResponse `json:"results,omitempty"`
}

// BatchJob tracks an in-progress batch extraction. Worker goroutines write
// results while status polls read them, so all mutable state goes through
// the mutex; readers take a Snapshot.
type BatchJob struct {
	ID         string
	Status     string // "processing", "completed", "failed", "partial"
	Total      int
	Completed  int
	Results    []*ProductResponse
	WebhookURL string
	CreatedAt  int64 // unix timestamp

	mu sync.Mutex
}

// SetResult records one finished URL and bumps the completion counter.
func (j *BatchJob) SetResult(idx int, resp *ProductResponse) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results[idx] = resp
	j.Completed++
}

// Finish moves the job to its terminal status.
func (j *BatchJob) Finish(status string) {
	j.mu.Lock()
	j.Status = status
	j.mu.Unlock()
}

// Snapshot returns a consistent view of the job for API responses.
func (j *BatchJob) Snapshot() BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]*ProductResponse, len(j.Results))
	copy(results, j.Results)
	return BatchStatusResponse{
		ID:        j.ID,
		Status:    j.Status,
		Completed: j.Completed,
		Total:     j.Total,
		Results:   results,
	}
}
