package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itemlens/itemlens/config"
	"github.com/itemlens/itemlens/extract"
	"github.com/itemlens/itemlens/fetcher"
	"github.com/itemlens/itemlens/models"
)

// Product returns a handler for POST /api/v1/product.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Gate: required URL substrings, then item ID from the URL path.
//     A URL with no recognizable item ID is rejected before any fetch.
//  3. Fetcher.Fetch    → raw HTML                (records fetch_ms)
//  4. Pipeline.Run     → normalized record      (records extract_ms)
//  5. Fill Timing, return 200.
func Product(f *fetcher.Fetcher, pl *extract.Pipeline, gate config.GateConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ProductResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		// ── 2. Gate ─────────────────────────────────────────────────
		for _, sub := range gate.RequiredURLSubstrings {
			if !strings.Contains(req.URL, sub) {
				c.JSON(http.StatusBadRequest, models.ProductResponse{
					Success:   false,
					SourceURL: req.URL,
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeInvalidInput,
						Message: "url does not look like a supported product page",
					},
					Timing: models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()},
				})
				return
			}
		}

		itemID, ok := extract.ItemID(req.URL)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ProductResponse{
				Success:   false,
				SourceURL: req.URL,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeItemIDNotFound,
					Message: "no product identifier found in url path",
				},
				Timing: models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()},
			})
			return
		}

		// ── 3. Fetch ────────────────────────────────────────────────
		fetchStart := time.Now()
		page, err := f.Fetch(c.Request.Context(), req.URL)
		fetchMs := time.Since(fetchStart).Milliseconds()

		if err != nil {
			respondError(c, err, req.URL, itemID, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
				FetchMs: fetchMs,
			})
			return
		}

		// ── 4. Extract ──────────────────────────────────────────────
		extractStart := time.Now()
		product := pl.Run(req.URL, page.HTML)
		extractMs := time.Since(extractStart).Milliseconds()

		// ── 5. Fill timing and respond ──────────────────────────────
		c.JSON(http.StatusOK, models.ProductResponse{
			Success:    true,
			ItemID:     itemID,
			SourceURL:  req.URL,
			FinalURL:   page.FinalURL,
			StatusCode: page.StatusCode,
			Product:    product,
			Timing: models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				FetchMs:   fetchMs,
				ExtractMs: extractMs,
			},
		})
	}
}

// respondError maps a ProductError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, sourceURL, itemID string, timing models.TimingInfo) {
	prodErr, ok := err.(*models.ProductError)
	if !ok {
		prodErr = models.NewProductError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(prodErr), models.ProductResponse{
		Success:   false,
		ItemID:    itemID,
		SourceURL: sourceURL,
		Error:     prodErr.ToDetail(),
		Timing:    timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ProductError) int {
	switch e.Code {
	case models.ErrCodeFetchTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeFetchFailed:
		return http.StatusBadGateway // 502
	case models.ErrCodeItemIDNotFound, models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
