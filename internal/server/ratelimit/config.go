package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig converts the service configuration into limiter settings.
// Oracle-backed endpoints share the tighter oracle limit.
func NewConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: cfg.CleanupInterval,
		Whitelist:       toSet(cfg.Whitelist),
		Blacklist:       toSet(cfg.Blacklist),
		EndpointConfigs: OracleEndpointConfigs(cfg.OracleLimit, cfg.OracleWindow, cfg.OracleBurst),
	}
}

// OracleEndpointConfigs returns the limits for endpoints that call the oracle.
func OracleEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/insights", Method: "GET", Limit: limit, Window: window, Burst: burst},
		{Path: "/quiz", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/assessments", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/resume/score", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			result[item] = true
		}
	}
	return result
}
