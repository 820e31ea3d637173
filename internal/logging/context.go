// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Component names the subsystem a log line came from. It is written as the
// "component" field so operators can filter one pipeline stage.
type Component string

const (
	ComponentAPI        Component = "api"
	ComponentSync       Component = "sync"
	ComponentUpstream   Component = "upstream"
	ComponentStore      Component = "store"
	ComponentSupervisor Component = "supervisor"
)

// For returns a logger tagged with component c.
//
//	logger: logging.For(logging.ComponentStore),
func For(c Component) zerolog.Logger {
	return current().With().Str("component", string(c)).Logger()
}

// traceIDs carries the identifiers that tie one poll or one background cycle
// together across the API, sync and store log lines.
type traceIDs struct {
	requestID string
	cycleID   string
}

type idsKey struct{}

func idsFrom(ctx context.Context) traceIDs {
	ids, _ := ctx.Value(idsKey{}).(traceIDs)
	return ids
}

// GenerateRequestID returns a UUID for a request that arrived without an
// X-Request-ID header.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID records the HTTP request ID on ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.requestID = id
	return context.WithValue(ctx, idsKey{}, ids)
}

// ContextWithNewCorrelationID gives ctx a fresh short correlation ID. Every
// request and every background sync cycle gets one, so the lines of a cycle
// that several polls joined still group under a single ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	ids := idsFrom(ctx)
	ids.cycleID = uuid.New().String()[:8]
	return context.WithValue(ctx, idsKey{}, ids)
}

// Ctx returns the process logger with request_id, correlation_id and the
// active span's trace_id and span_id attached when present.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := withIDs(ctx, current().With()).Logger()
	return &l
}

// CtxFor is Ctx plus a component tag.
//
//	logging.CtxFor(ctx, logging.ComponentSync).Warn().Msg("Serving stored snapshot")
func CtxFor(ctx context.Context, c Component) *zerolog.Logger {
	l := withIDs(ctx, current().With().Str("component", string(c))).Logger()
	return &l
}

func withIDs(ctx context.Context, zc zerolog.Context) zerolog.Context {
	ids := idsFrom(ctx)
	if ids.requestID != "" {
		zc = zc.Str("request_id", ids.requestID)
	}
	if ids.cycleID != "" {
		zc = zc.Str("correlation_id", ids.cycleID)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
	}
	return zc
}
