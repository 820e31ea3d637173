// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML (CONFIG_PATH, config.yaml, /etc/trailwatch/config.yaml)
//  3. Environment Variables: override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	manager := sync.NewManager(st, source, cfg.Sync)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Sync      SyncConfig      `koanf:"sync"`
	Store     StoreConfig     `koanf:"store"`
	Reference ReferenceConfig `koanf:"reference"`
	Map       MapConfig       `koanf:"map"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Tracing   TracingConfig   `koanf:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig holds the external telemetry feed settings.
//
// Environment Variables:
//   - EXTERNAL_API_URL: feed URL (optional; every live fetch fails as unavailable without it)
//   - SIMULATE_DATA: advance stored positions locally instead of fetching
//   - UPSTREAM_TIMEOUT: per-fetch deadline (default: 5s)
//   - UPSTREAM_MAX_RETRIES: HTTP 429 retries within the deadline (default: 3)
//   - SIMULATION_STEP: maximum per-axis movement per cycle in degrees (default: 0.1)
type UpstreamConfig struct {
	URL            string        `koanf:"url"`
	Simulate       bool          `koanf:"simulate"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	SimStep        float64       `koanf:"sim_step"`
}

// SyncConfig holds sync cycle settings.
//
// MinInterval gates how often a request may trigger a fetch; 0 disables the
// gate. PollInterval runs a background cycle on that period; 0 disables the
// poller. ClientPollInterval is only reported to clients.
type SyncConfig struct {
	MinInterval        time.Duration `koanf:"min_interval"`
	PollInterval       time.Duration `koanf:"poll_interval"`
	ClientPollInterval time.Duration `koanf:"client_poll_interval"`
}

// Store backends.
const (
	StoreBackendFile   = "file"
	StoreBackendBadger = "badger"
)

// StoreConfig selects and configures snapshot persistence.
type StoreConfig struct {
	Backend      string        `koanf:"backend"`
	DataDir      string        `koanf:"data_dir"`
	BadgerPath   string        `koanf:"badger_path"`
	HistoryLimit int           `koanf:"history_limit"`
	GCInterval   time.Duration `koanf:"gc_interval"`
}

// ReferenceConfig configures the routes and checkpoints endpoints.
type ReferenceConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// MapConfig holds presentation settings passed through to clients.
type MapConfig struct {
	CenterLat float64 `koanf:"center_lat"`
	CenterLng float64 `koanf:"center_lng"`
	Zoom      int     `koanf:"zoom"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Exporter    string  `koanf:"exporter"` // none, stdout, otlp
	Endpoint    string  `koanf:"endpoint"`
	SampleRatio float64 `koanf:"sample_ratio"`
	ServiceName string  `koanf:"service_name"`
}

// Load reads the configuration. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
