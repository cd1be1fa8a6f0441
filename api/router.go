// Package api wires the HTTP surface: routing, middleware, and handlers.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itemlens/itemlens/api/handler"
	"github.com/itemlens/itemlens/api/middleware"
	"github.com/itemlens/itemlens/config"
	"github.com/itemlens/itemlens/extract"
	"github.com/itemlens/itemlens/fetcher"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(f *fetcher.Fetcher, pl *extract.Pipeline, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Single product
	protected.POST("/product", handler.Product(f, pl, cfg.Gate))

	// Batch
	protected.POST("/batch/products", handler.PostBatch(f, pl, cfg.Gate, cfg.Webhook.Secret))
	protected.GET("/batch/:id", handler.GetBatch())

	return r
}
