// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trailwatch/config.yaml",
	"/etc/trailwatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Event base coordinate, also the start of every generated route.
const (
	defaultCenterLat = 37.429731
	defaultCenterLng = -1.523433
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Upstream: UpstreamConfig{
			URL:            "",
			Simulate:       false,
			Timeout:        5 * time.Second,
			MaxRetries:     3,
			RetryBaseDelay: 250 * time.Millisecond,
			SimStep:        0.1,
		},
		Sync: SyncConfig{
			MinInterval:        0,
			PollInterval:       0,
			ClientPollInterval: 6 * time.Second, // UI refetch interval
		},
		Store: StoreConfig{
			Backend:      StoreBackendFile,
			DataDir:      "data",
			BadgerPath:   "data/badger",
			HistoryLimit: 20,
			GCInterval:   10 * time.Minute,
		},
		Reference: ReferenceConfig{
			CacheTTL: 30 * time.Second,
		},
		Map: MapConfig{
			CenterLat: defaultCenterLat,
			CenterLng: defaultCenterLng,
			Zoom:      15,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			Endpoint:    "",
			SampleRatio: 1.0,
			ServiceName: "trailwatch",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
// defaults, then the optional YAML config file, then environment variables.
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	processMillisecondFields(k)

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths that accept comma-separated values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings from env vars into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// millisecondConfigPaths lists duration paths whose env var is a bare
// millisecond count (POLL_INTERVAL_MS=6000).
var millisecondConfigPaths = []string{
	"sync.client_poll_interval",
}

// processMillisecondFields rewrites bare integers at millisecondConfigPaths
// as "<n>ms" so they decode into time.Duration.
func processMillisecondFields(k *koanf.Koanf) {
	for _, path := range millisecondConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		if strings.Trim(strVal, "0123456789") == "" {
			_ = k.Set(path, strVal+"ms")
		}
	}
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"external_api_url":          "upstream.url",
	"simulate_data":             "upstream.simulate",
	"upstream_timeout":          "upstream.timeout",
	"upstream_max_retries":      "upstream.max_retries",
	"upstream_retry_base_delay": "upstream.retry_base_delay",
	"simulation_step":           "upstream.sim_step",

	"sync_min_interval":  "sync.min_interval",
	"sync_poll_interval": "sync.poll_interval",
	"poll_interval_ms":   "sync.client_poll_interval",

	"store_backend":       "store.backend",
	"data_dir":            "store.data_dir",
	"badger_path":         "store.badger_path",
	"store_history_limit": "store.history_limit",
	"store_gc_interval":   "store.gc_interval",

	"reference_cache_ttl": "reference.cache_ttl",

	"map_center_lat": "map.center_lat",
	"map_center_lng": "map.center_lng",
	"map_zoom":       "map.zoom",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"tracing_exporter":            "tracing.exporter",
	"otel_exporter_otlp_endpoint": "tracing.endpoint",
	"tracing_sample_ratio":        "tracing.sample_ratio",
	"otel_service_name":           "tracing.service_name",
}

// envTransformFunc maps environment variable names to config paths.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
