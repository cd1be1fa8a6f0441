// Package fetcher downloads product pages over plain HTTP with static
// browser-like headers. One attempt per request, no retries; timeouts
// surface as a distinct typed error so the boundary can map them to 504.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/itemlens/itemlens/config"
	"github.com/itemlens/itemlens/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Fetcher performs single-attempt page downloads.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
}

// Result carries a fetched page.
type Result struct {
	HTML       string
	StatusCode int
	FinalURL   string
}

// New creates a Fetcher from config.
func New(cfg config.FetchConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		timeout:      cfg.Timeout,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Fetch retrieves the target URL. Errors are always *models.ProductError:
// FETCH_TIMEOUT when the deadline expired, FETCH_FAILED otherwise.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewProductError(models.ErrCodeFetchFailed, "build request", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewProductError(models.ErrCodeFetchTimeout,
				fmt.Sprintf("page fetch exceeded %s", f.timeout), err)
		}
		return nil, models.NewProductError(models.ErrCodeFetchFailed, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewProductError(models.ErrCodeFetchFailed,
			fmt.Sprintf("HTTP %d for %s", resp.StatusCode, targetURL), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewProductError(models.ErrCodeFetchTimeout,
				fmt.Sprintf("page fetch exceeded %s", f.timeout), err)
		}
		return nil, models.NewProductError(models.ErrCodeFetchFailed, "read body", err)
	}

	return &Result{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
