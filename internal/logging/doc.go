// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// Package logging provides centralized zerolog-based structured logging for Trailwatch.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output for production, console output for development
//   - Context-aware logging with request, correlation and trace IDs
//   - slog adapter for Suture v4 integration
//   - Sanitization of untrusted values before they reach a log line
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:   "info",
//	    Format:  "json",
//	    Service: "trailwatch",
//	    Version: version,
//	})
//
//	logging.Info().Int("teams", n).Msg("Snapshot loaded")
//	logging.CtxFor(ctx, logging.ComponentSync).Warn().Err(err).Msg("Upstream unavailable, serving cached data")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// # Components
//
// Every subsystem logs through a Component-tagged logger: long-lived ones
// hold For(ComponentStore) and friends, request and cycle code calls
// CtxFor(ctx, ComponentSync). The server stamps service and version on
// every line through Config.
//
// # Context Fields
//
// Ctx(ctx) and CtxFor(ctx, c) add, when present:
//   - request_id: set by the HTTP request ID middleware
//   - correlation_id: one per request or background sync cycle
//   - trace_id, span_id: from the active OpenTelemetry span
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Values that came from a client or the upstream feed go through
// SanitizeValue first:
//
//	logging.Warn().Str("lastPoint", logging.SanitizeValue(raw)).Msg("Ignoring malformed lastPoint")
package logging
