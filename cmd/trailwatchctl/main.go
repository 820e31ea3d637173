// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// Command trailwatchctl is the operator CLI for a Trailwatch deployment:
// seeding demo data, checking data files and running a one-off sync.
package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/logging"
)

func main() {
	logging.Init(logging.Config{Level: "error", Format: "console", Service: "trailwatchctl"})

	app := &cliApp{
		fs:         afero.NewOsFs(),
		loadConfig: config.Load,
	}
	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
