// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing upstream url is allowed", mutate: func(c *Config) { c.Upstream.URL = "" }},
		{name: "upstream url with path", mutate: func(c *Config) { c.Upstream.URL = "https://api.example.com/v2/teams?event=1" }},
		{
			name:    "upstream url bad scheme",
			mutate:  func(c *Config) { c.Upstream.URL = "ftp://api.example.com" },
			wantErr: "EXTERNAL_API_URL",
		},
		{
			name:    "upstream url with credentials",
			mutate:  func(c *Config) { c.Upstream.URL = "https://user:pw@api.example.com" },
			wantErr: "credentials",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.Upstream.Timeout = time.Millisecond },
			wantErr: "UPSTREAM_TIMEOUT",
		},
		{
			name:    "sim step zero",
			mutate:  func(c *Config) { c.Upstream.SimStep = 0 },
			wantErr: "SIMULATION_STEP",
		},
		{
			name:    "poll interval below one second",
			mutate:  func(c *Config) { c.Sync.PollInterval = 100 * time.Millisecond },
			wantErr: "SYNC_POLL_INTERVAL",
		},
		{
			name:    "client poll too fast",
			mutate:  func(c *Config) { c.Sync.ClientPollInterval = 10 * time.Millisecond },
			wantErr: "POLL_INTERVAL_MS",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "sqlite" },
			wantErr: "STORE_BACKEND",
		},
		{
			name:    "badger without path",
			mutate:  func(c *Config) { c.Store.Backend = StoreBackendBadger; c.Store.BadgerPath = "" },
			wantErr: "BADGER_PATH",
		},
		{
			name:    "map latitude",
			mutate:  func(c *Config) { c.Map.CenterLat = 91 },
			wantErr: "MAP_CENTER_LAT",
		},
		{
			name:    "rate limit window",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = time.Millisecond },
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name: "rate limit ignored when disabled",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{
			name:    "log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "otlp without endpoint",
			mutate:  func(c *Config) { c.Tracing.Exporter = "otlp" },
			wantErr: "OTEL_EXPORTER_OTLP_ENDPOINT",
		},
		{
			name: "otlp with endpoint",
			mutate: func(c *Config) {
				c.Tracing.Exporter = "otlp"
				c.Tracing.Endpoint = "http://collector:4318"
			},
		},
		{
			name:    "sample ratio",
			mutate:  func(c *Config) { c.Tracing.SampleRatio = 1.5 },
			wantErr: "TRACING_SAMPLE_RATIO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := defaultConfig()
	if w := cfg.Warnings(); len(w) != 1 || !strings.Contains(w[0], "EXTERNAL_API_URL") {
		t.Errorf("Warnings() = %v, want missing upstream URL warning", w)
	}

	cfg.Upstream.Simulate = true
	if w := cfg.Warnings(); len(w) != 0 {
		t.Errorf("Warnings() in simulation = %v, want none", w)
	}

	cfg.Server.Environment = "production"
	if w := cfg.Warnings(); len(w) != 1 || !strings.Contains(w[0], "CORS") {
		t.Errorf("Warnings() in production = %v, want CORS warning", w)
	}
}

func TestEnvironmentModes(t *testing.T) {
	cases := map[string][2]bool{
		"":            {false, true},
		"development": {false, true},
		"staging":     {false, false},
		"production":  {true, false},
		"PROD":        {true, false},
	}
	for env, want := range cases {
		cfg := defaultConfig()
		cfg.Server.Environment = env
		if got := cfg.IsProduction(); got != want[0] {
			t.Errorf("IsProduction(%q) = %v", env, got)
		}
		if got := cfg.IsDevelopment(); got != want[1] {
			t.Errorf("IsDevelopment(%q) = %v", env, got)
		}
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
