package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itemlens/itemlens/config"
	"github.com/itemlens/itemlens/extract"
	"github.com/itemlens/itemlens/fetcher"
	"github.com/itemlens/itemlens/models"
	"github.com/itemlens/itemlens/webhook"
)

// batchConcurrency bounds in-flight page fetches per batch job.
const batchConcurrency = 5

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				job := value.(*models.BatchJob)
				if job.CreatedAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// PostBatch returns a handler for POST /api/v1/batch/products.
// It validates the request, creates a batch job, and launches goroutines
// to extract each URL concurrently.
func PostBatch(f *fetcher.Fetcher, pl *extract.Pipeline, gate config.GateConfig, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		jobID := "batch-" + randomID()
		job := &models.BatchJob{
			ID:         jobID,
			Status:     "processing",
			Total:      len(req.URLs),
			Completed:  0,
			Results:    make([]*models.ProductResponse, len(req.URLs)),
			WebhookURL: req.WebhookURL,
			CreatedAt:  time.Now().Unix(),
		}
		batchStore.Store(jobID, job)

		// Launch extraction in background.
		go runBatch(f, pl, gate, webhookSecret, job, req)

		c.JSON(http.StatusOK, models.BatchResponse{
			ID:     jobID,
			Status: "processing",
			Total:  len(req.URLs),
		})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := batchStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}

		job := val.(*models.BatchJob)
		c.JSON(http.StatusOK, job.Snapshot())
	}
}

// runBatch processes all URLs in a batch job with concurrency limited by a semaphore.
func runBatch(f *fetcher.Fetcher, pl *extract.Pipeline, gate config.GateConfig, webhookSecret string, job *models.BatchJob, req models.BatchRequest) {
	sem := make(chan struct{}, batchConcurrency)

	var wg sync.WaitGroup
	var completed atomic.Int32
	var failed atomic.Int32

	for i, rawURL := range req.URLs {
		wg.Add(1)
		go func(idx int, targetURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resp := extractOne(f, pl, gate, targetURL)
			job.SetResult(idx, resp)

			if resp.Success {
				completed.Add(1)
			} else {
				failed.Add(1)
			}
		}(i, rawURL)
	}

	wg.Wait()

	failedCount := int(failed.Load())
	completedCount := int(completed.Load())

	var status string
	switch {
	case failedCount == job.Total:
		status = "failed"
	case failedCount > 0:
		status = "partial"
	default:
		status = "completed"
	}
	job.Finish(status)

	slog.Info("batch job finished",
		"id", job.ID,
		"status", status,
		"completed", completedCount,
		"failed", failedCount,
		"total", job.Total,
	)

	if job.WebhookURL != "" {
		webhook.DeliverAsync(job.WebhookURL, webhookSecret, &webhook.Event{
			Type:      "batch.completed",
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      job.Snapshot(),
		})
	}
}

// extractOne performs a single gate+fetch+extract for one URL.
func extractOne(f *fetcher.Fetcher, pl *extract.Pipeline, gate config.GateConfig, targetURL string) *models.ProductResponse {
	totalStart := time.Now()

	for _, sub := range gate.RequiredURLSubstrings {
		if !strings.Contains(targetURL, sub) {
			return &models.ProductResponse{
				Success:   false,
				SourceURL: targetURL,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "url does not look like a supported product page",
				},
				Timing: models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()},
			}
		}
	}

	itemID, ok := extract.ItemID(targetURL)
	if !ok {
		return &models.ProductResponse{
			Success:   false,
			SourceURL: targetURL,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeItemIDNotFound,
				Message: "no product identifier found in url path",
			},
			Timing: models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()},
		}
	}

	fetchStart := time.Now()
	page, err := f.Fetch(context.Background(), targetURL)
	fetchMs := time.Since(fetchStart).Milliseconds()

	if err != nil {
		prodErr, ok := err.(*models.ProductError)
		if !ok {
			prodErr = models.NewProductError(models.ErrCodeInternal, err.Error(), err)
		}
		return &models.ProductResponse{
			Success:   false,
			ItemID:    itemID,
			SourceURL: targetURL,
			Error:     prodErr.ToDetail(),
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: fetchMs,
			},
		}
	}

	extractStart := time.Now()
	product := pl.Run(targetURL, page.HTML)
	extractMs := time.Since(extractStart).Milliseconds()

	return &models.ProductResponse{
		Success:    true,
		ItemID:     itemID,
		SourceURL:  targetURL,
		FinalURL:   page.FinalURL,
		StatusCode: page.StatusCode,
		Product:    product,
		Timing: models.TimingInfo{
			TotalMs:   time.Since(totalStart).Milliseconds(),
			FetchMs:   fetchMs,
			ExtractMs: extractMs,
		},
	}
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
