// Command itemlens-mcp exposes the Itemlens HTTP API as MCP tools over stdio.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// productRequest mirrors the Itemlens API request model.
type productRequest struct {
	URL string `json:"url"`
}

// productResponse mirrors the Itemlens API response model.
type productResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"item_id"`
	Product *struct {
		Title         string   `json:"title"`
		SalePrice     float64  `json:"salePrice"`
		OriginalPrice float64  `json:"originalPrice"`
		Discount      *int     `json:"discount"`
		Rating        float64  `json:"rating"`
		Reviews       int      `json:"reviews"`
		Images        []string `json:"images"`
		Description   string   `json:"description"`
		Specs         []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"specs"`
	} `json:"product"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// batchResponse mirrors the Itemlens batch API response.
type batchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// batchStatusResponse mirrors the Itemlens batch status API response.
type batchStatusResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Completed int               `json:"completed"`
	Total     int               `json:"total"`
	Results   []json.RawMessage `json:"results"`
}

func main() {
	apiURL := os.Getenv("ITEMLENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("ITEMLENS_API_KEY")

	s := server.NewMCPServer(
		"itemlens",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	getProductTool := mcp.NewTool("get_product",
		mcp.WithDescription("Extract a normalized product record (title, prices, discount, rating, reviews, images, description, specs) from an e-commerce product page URL."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the product page"),
		),
	)
	s.AddTool(getProductTool, handleGetProduct(apiURL, apiKey))

	batchProductsTool := mcp.NewTool("batch_products",
		mcp.WithDescription("Extract normalized product records from multiple product page URLs in parallel."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of product page URLs"),
		),
	)
	s.AddTool(batchProductsTool, handleBatchProducts(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the Itemlens API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// pollJobCompletion polls a job endpoint until status is no longer "processing" or context is cancelled.
func pollJobCompletion(ctx context.Context, client *http.Client, apiURL, apiKey, endpoint string) ([]byte, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+endpoint, nil)
			if err != nil {
				return nil, fmt.Errorf("create poll request: %w", err)
			}
			if apiKey != "" {
				req.Header.Set("X-API-Key", apiKey)
			}

			resp, err := client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("poll request failed: %w", err)
			}

			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read poll response: %w", err)
			}

			// Quick check if still processing.
			var status struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(body, &status); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}

			if status.Status != "processing" {
				return body, nil
			}
		}
	}
}

func handleGetProduct(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/product", productRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("product request failed: %v", err)), nil
		}

		var prodResp productResponse
		if err := json.Unmarshal(respBody, &prodResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !prodResp.Success {
			errMsg := "extraction failed"
			if prodResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", prodResp.Error.Code, prodResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(formatProduct(&prodResp)), nil
	}
}

func handleBatchProducts(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		payload := map[string]interface{}{"urls": urls}

		// POST to create batch job.
		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/batch/products", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("batch request failed: %v", err)), nil
		}

		var batchResp batchResponse
		if err := json.Unmarshal(respBody, &batchResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch response: %v", err)), nil
		}

		if batchResp.ID == "" {
			return mcp.NewToolResultError("batch job creation failed"), nil
		}

		// Poll for completion.
		resultBody, err := pollJobCompletion(ctx, client, apiURL, apiKey, "/api/v1/batch/"+batchResp.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}

		var statusResp batchStatusResponse
		if err := json.Unmarshal(resultBody, &statusResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse batch status: %v", err)), nil
		}

		// Format results.
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Batch %s: %s (%d/%d completed)\n\n", statusResp.ID, statusResp.Status, statusResp.Completed, statusResp.Total))

		for i, raw := range statusResp.Results {
			var pr productResponse
			if err := json.Unmarshal(raw, &pr); err != nil {
				sb.WriteString(fmt.Sprintf("--- Result %d: parse error ---\n\n", i+1))
				continue
			}
			if pr.Success {
				sb.WriteString(fmt.Sprintf("--- [%d] ---\n%s\n", i+1, formatProduct(&pr)))
			} else {
				errMsg := "unknown error"
				if pr.Error != nil {
					errMsg = pr.Error.Message
				}
				sb.WriteString(fmt.Sprintf("--- [%d] FAILED: %s ---\n\n", i+1, errMsg))
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// formatProduct renders a product response as readable text.
func formatProduct(pr *productResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Item ID: %s\n", pr.ItemID))

	p := pr.Product
	if p == nil {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Title: %s\n", p.Title))
	sb.WriteString(fmt.Sprintf("Price: %.2f (original %.2f)\n", p.SalePrice, p.OriginalPrice))
	if p.Discount != nil {
		sb.WriteString(fmt.Sprintf("Discount: %d%%\n", *p.Discount))
	}
	sb.WriteString(fmt.Sprintf("Rating: %.1f (%d reviews)\n", p.Rating, p.Reviews))
	if len(p.Images) > 0 {
		sb.WriteString(fmt.Sprintf("Images: %d\n", len(p.Images)))
		for _, img := range p.Images {
			sb.WriteString("  " + img + "\n")
		}
	}
	if p.Description != "" {
		sb.WriteString("Description: " + p.Description + "\n")
	}
	for _, spec := range p.Specs {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", spec.Label, spec.Value))
	}
	return sb.String()
}
