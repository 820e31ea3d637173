// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package middleware provides HTTP instrumentation middleware.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so label cardinality is bounded by the route table
  - Tracing: one OpenTelemetry server span per request, continuing any
    incoming W3C traceparent

Both read the chi route pattern after the handler returns, so they must be
installed inside a chi router:

	r.Use(middleware.Tracing)
	r.Route("/api", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Get("/teams", handler.Teams)
	})

Thread Safety:

All middleware components are safe for concurrent use. Prometheus collectors
use atomic operations and each request gets its own response writer wrapper.

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/metrics: Prometheus metrics definitions
  - internal/tracing: tracer provider setup
*/
package middleware
