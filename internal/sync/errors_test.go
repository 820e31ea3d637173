// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	t.Parallel()

	existing := newUpstreamError(KindFormat, opFetch, errors.New("bad"))

	tests := []struct {
		name     string
		err      error
		want     UpstreamErrorKind
		sentinel error
	}{
		{"deadline", context.DeadlineExceeded, KindTimeout, ErrUpstreamTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), KindTimeout, ErrUpstreamTimeout},
		{"net timeout", timeoutErr{}, KindTimeout, ErrUpstreamTimeout},
		{"connection refused", errors.New("connection refused"), KindUnavailable, ErrUpstreamUnavailable},
		{"already classified", existing, KindFormat, ErrUpstreamFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyTransportError(opFetch, tt.err)
			if got.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.want)
			}
			if !errors.Is(got, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", got, tt.sentinel)
			}
			if UpstreamKind(got) != tt.want {
				t.Errorf("UpstreamKind() = %q, want %q", UpstreamKind(got), tt.want)
			}
		})
	}
}

func TestUpstreamError_IsOnlyMatchesOwnKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("cycle: %w", newUpstreamError(KindTimeout, opFetch, context.DeadlineExceeded))
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Error("expected ErrUpstreamTimeout")
	}
	if errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrUpstreamFormat) {
		t.Error("timeout error matched another kind")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestUpstreamKind_NotUpstream(t *testing.T) {
	t.Parallel()

	if got := UpstreamKind(errors.New("other")); got != "" {
		t.Errorf("UpstreamKind() = %q, want empty", got)
	}
	if got := UpstreamKind(nil); got != "" {
		t.Errorf("UpstreamKind(nil) = %q, want empty", got)
	}
}

func TestUpstreamError_Message(t *testing.T) {
	t.Parallel()

	if got := (&UpstreamError{Kind: KindUnavailable, Op: "breaker"}).Error(); got != "upstream breaker: unavailable" {
		t.Errorf("Error() = %q", got)
	}
	withCause := newUpstreamError(KindFormat, opFetch, errors.New("HTTP status 500"))
	if got := withCause.Error(); got != "upstream fetch (format): HTTP status 500" {
		t.Errorf("Error() = %q", got)
	}
}
