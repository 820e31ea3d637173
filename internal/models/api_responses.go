// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package models

import (
	"time"
)

// APIResponse is the envelope for endpoints outside the polling contract
// (health, config, meta) and for request validation failures.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "route must be one of: family long short"
//	  },
//	  "metadata": {"timestamp": "2026-05-02T09:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// APIError represents a structured error in the APIResponse envelope.
//
// Codes used by the API:
//   - VALIDATION_ERROR: query parameters failed validation
//   - INTERNAL_ERROR: unexpected server failure
//   - NOT_READY: readiness probe failed
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorBody is the error member of the polling contract responses.
type ErrorBody struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// TeamsResponse is the body of GET /api/teams.
type TeamsResponse struct {
	Teams []Team     `json:"teams"`
	Error *ErrorBody `json:"error,omitempty"`
}

// RoutesResponse is the body of GET /api/routes.
type RoutesResponse struct {
	Routes []Route    `json:"routes"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// CheckpointsErrorResponse is returned by GET /api/checkpoints when the
// checkpoints cannot be served as a plain array.
type CheckpointsErrorResponse struct {
	Checkpoints []Checkpoint `json:"checkpoints"`
	Error       *ErrorBody   `json:"error"`
}

// HealthResponse is the payload of the readiness probe.
type HealthResponse struct {
	Status         string     `json:"status"`
	StoreReadable  bool       `json:"store_readable"`
	StoreBackend   string     `json:"store_backend"`
	SnapshotTeams  int        `json:"snapshot_teams"`
	CircuitBreaker string     `json:"circuit_breaker"`
	Simulated      bool       `json:"simulated"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	Uptime         float64    `json:"uptime_seconds"`
}

// ClientConfig is the payload of GET /api/v1/config. Map settings are
// presentation-only and passed through from configuration.
type ClientConfig struct {
	PollIntervalMS int64     `json:"pollIntervalMs"`
	Simulate       bool      `json:"simulate"`
	Map            MapConfig `json:"map"`
}

// MapConfig is the initial map viewport.
type MapConfig struct {
	Center Coordinate `json:"center"`
	Zoom   int        `json:"zoom"`
}

// EnumLabel describes how a route type or status is presented.
type EnumLabel struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	Icon        string `json:"icon,omitempty"`
}

// Meta is the payload of GET /api/v1/meta.
type Meta struct {
	Routes   []EnumLabel `json:"routes"`
	Statuses []EnumLabel `json:"statuses"`
}
