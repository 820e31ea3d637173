// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package services

import (
	"context"
	"errors"
	"fmt"
)

// Runner is a blocking loop that returns when ctx is done.
//
// Satisfied by *sync.Manager (Run polls the upstream on the configured
// interval).
type Runner interface {
	Run(ctx context.Context) error
}

// PollerService supervises the background sync loop that keeps the snapshot
// warm between client polls.
type PollerService struct {
	runner Runner
}

// NewPollerService wraps runner.
func NewPollerService(runner Runner) *PollerService {
	return &PollerService{runner: runner}
}

// Serve implements suture.Service. A return before ctx is done is reported
// as a failure so suture restarts the loop.
func (s *PollerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("returned unexpectedly")
	}
	return fmt.Errorf("sync poller: %w", err)
}

// String implements fmt.Stringer.
func (s *PollerService) String() string {
	return "sync-poller"
}
