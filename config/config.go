package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Gate      GateConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the page fetcher.
type FetchConfig struct {
	// Timeout bounds a single page fetch. A single attempt is made per
	// request; there are no retries.
	Timeout time.Duration // default: 30s

	// MaxBodyBytes caps how much of a page body is read.
	MaxBodyBytes int64 // default: 10 MB
}

// GateConfig controls upfront URL validation at the boundary.
type GateConfig struct {
	// RequiredURLSubstrings must all appear in a requested URL before
	// the core is invoked. Empty disables the check.
	RequiredURLSubstrings []string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CORSConfig controls cross-origin response headers.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API.
	// "*" allows any origin.
	AllowedOrigins []string // default: ["*"]
}

// WebhookConfig controls signed batch-completion notifications.
type WebhookConfig struct {
	// Secret signs outgoing webhook payloads (HMAC-SHA256).
	// Empty disables signing.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("ITEMLENS_HOST", "0.0.0.0"),
			Port: envIntOr("ITEMLENS_PORT", 8080),
			Mode: envOr("ITEMLENS_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("ITEMLENS_FETCH_TIMEOUT", 30*time.Second),
			MaxBodyBytes: envInt64Or("ITEMLENS_MAX_BODY_BYTES", 10<<20),
		},
		Gate: GateConfig{
			RequiredURLSubstrings: envSliceOr("ITEMLENS_URL_SUBSTRINGS", nil),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("ITEMLENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("ITEMLENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("ITEMLENS_RATE_RPS", 5.0),
			Burst:             envIntOr("ITEMLENS_RATE_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: envSliceOr("ITEMLENS_CORS_ORIGINS", []string{"*"}),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("ITEMLENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("ITEMLENS_LOG_LEVEL", "info"),
			Format: envOr("ITEMLENS_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
