// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// UpstreamErrorKind classifies a failed fetch.
type UpstreamErrorKind string

// Upstream error kinds, also used as the details.kind value of degraded
// responses.
const (
	KindTimeout     UpstreamErrorKind = "timeout"
	KindFormat      UpstreamErrorKind = "format"
	KindUnavailable UpstreamErrorKind = "unavailable"
)

var (
	// ErrUpstreamTimeout matches fetches that exceeded their deadline.
	ErrUpstreamTimeout = errors.New("upstream timed out")

	// ErrUpstreamFormat matches non-2xx responses and payloads that are not
	// a JSON array.
	ErrUpstreamFormat = errors.New("upstream returned an unusable response")

	// ErrUpstreamUnavailable matches every other fetch failure: transport
	// errors, a missing upstream URL, an open circuit breaker.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoData is reported when a cycle ends with no teams at all.
	ErrNoData = errors.New("no team data available")

	errNoUpstreamURL = errors.New("external API URL is not configured")
)

// UpstreamError is the single error type returned by sources.
type UpstreamError struct {
	Kind UpstreamErrorKind
	Op   string
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("upstream %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamTimeout:
		return e.Kind == KindTimeout
	case ErrUpstreamFormat:
		return e.Kind == KindFormat
	case ErrUpstreamUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

func newUpstreamError(kind UpstreamErrorKind, op string, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, Op: op, Err: err}
}

// classifyTransportError maps a transport-level failure to timeout or
// unavailable.
func classifyTransportError(op string, err error) *UpstreamError {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newUpstreamError(KindTimeout, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newUpstreamError(KindTimeout, op, err)
	}
	return newUpstreamError(KindUnavailable, op, err)
}

// UpstreamKind returns the kind of an upstream error, or "" when err is not
// one.
func UpstreamKind(err error) UpstreamErrorKind {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}
