// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is usable.
//
// A missing upstream URL is deliberately not an error: the server starts and
// every live fetch degrades. See Warnings.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateUpstream,
		c.validateSync,
		c.validateStore,
		c.validateReference,
		c.validateMap,
		c.validateRateLimits,
		c.validateLogging,
		c.validateTracing,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// Warnings returns non-fatal configuration problems to log at startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if !c.Upstream.Simulate && c.Upstream.URL == "" {
		warnings = append(warnings,
			"EXTERNAL_API_URL is not set and SIMULATE_DATA=false; every sync will serve cached data")
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		warnings = append(warnings,
			"CORS_ORIGINS=* in production; set explicit origins to restrict browser access")
	}
	if c.Security.RateLimitDisabled && c.IsProduction() {
		warnings = append(warnings, "rate limiting is disabled in production")
	}
	return warnings
}

// validateServer validates the HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Upstream bounds
const (
	minUpstreamTimeout = 100 * time.Millisecond
	maxUpstreamTimeout = 2 * time.Minute
	maxUpstreamRetries = 10
)

// validateUpstream validates the upstream feed configuration.
func (c *Config) validateUpstream() error {
	if c.Upstream.URL != "" {
		if err := validateHTTPURL(c.Upstream.URL, "EXTERNAL_API_URL"); err != nil {
			return fmt.Errorf("EXTERNAL_API_URL is invalid: %w", err)
		}
	}
	if c.Upstream.Timeout < minUpstreamTimeout || c.Upstream.Timeout > maxUpstreamTimeout {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be between %v and %v", minUpstreamTimeout, maxUpstreamTimeout)
	}
	if c.Upstream.MaxRetries < 0 || c.Upstream.MaxRetries > maxUpstreamRetries {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must be between 0 and %d", maxUpstreamRetries)
	}
	if c.Upstream.RetryBaseDelay < 0 {
		return fmt.Errorf("UPSTREAM_RETRY_BASE_DELAY must not be negative")
	}
	if c.Upstream.SimStep <= 0 || c.Upstream.SimStep > 10 {
		return fmt.Errorf("SIMULATION_STEP must be in (0, 10] degrees")
	}
	return nil
}

// validateSync validates sync intervals.
func (c *Config) validateSync() error {
	if c.Sync.MinInterval < 0 {
		return fmt.Errorf("SYNC_MIN_INTERVAL must not be negative")
	}
	if c.Sync.PollInterval < 0 {
		return fmt.Errorf("SYNC_POLL_INTERVAL must not be negative")
	}
	if c.Sync.PollInterval > 0 && c.Sync.PollInterval < time.Second {
		return fmt.Errorf("SYNC_POLL_INTERVAL must be at least 1s when enabled")
	}
	if c.Sync.ClientPollInterval < 500*time.Millisecond {
		return fmt.Errorf("POLL_INTERVAL_MS must be at least 500")
	}
	return nil
}

// validateStore validates snapshot persistence settings.
func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case StoreBackendFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required")
		}
	case StoreBackendBadger:
		if c.Store.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_BACKEND=badger")
		}
		if c.Store.HistoryLimit < 0 {
			return fmt.Errorf("STORE_HISTORY_LIMIT must not be negative")
		}
		if c.Store.GCInterval < 0 {
			return fmt.Errorf("STORE_GC_INTERVAL must not be negative")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: file, badger")
	}
	return nil
}

// validateReference validates reference data caching.
func (c *Config) validateReference() error {
	if c.Reference.CacheTTL < 0 {
		return fmt.Errorf("REFERENCE_CACHE_TTL must not be negative")
	}
	return nil
}

// validateMap validates map presentation settings.
func (c *Config) validateMap() error {
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		return fmt.Errorf("MAP_CENTER_LAT must be between -90 and 90")
	}
	if c.Map.CenterLng < -180 || c.Map.CenterLng > 180 {
		return fmt.Errorf("MAP_CENTER_LNG must be between -180 and 180")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		return fmt.Errorf("MAP_ZOOM must be between 0 and 22")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validTracingExporters defines the allowed span exporters
var validTracingExporters = map[string]bool{
	"":       true,
	"none":   true,
	"stdout": true,
	"otlp":   true,
}

// validateTracing validates OpenTelemetry settings.
func (c *Config) validateTracing() error {
	if !validTracingExporters[c.Tracing.Exporter] {
		return fmt.Errorf("TRACING_EXPORTER must be one of: none, stdout, otlp")
	}
	if c.Tracing.Exporter == "otlp" {
		if c.Tracing.Endpoint == "" {
			return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when TRACING_EXPORTER=otlp")
		}
		if err := validateHTTPURL(c.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
			return err
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0 and 1")
	}
	return nil
}
