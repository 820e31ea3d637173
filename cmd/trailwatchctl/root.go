// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tomtom215/trailwatch/internal/config"
)

// cliApp holds the dependencies shared by every command.
type cliApp struct {
	fs         afero.Fs
	loadConfig func() (*config.Config, error)

	dataDir string
}

// config loads the configuration and applies the --data-dir override.
func (a *cliApp) config() (*config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if a.dataDir != "" {
		cfg.Store.DataDir = a.dataDir
	}
	return cfg, nil
}

func newRootCmd(app *cliApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "trailwatchctl",
		Short:        "Operator tools for the Trailwatch team tracking server",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&app.dataDir, "data-dir", "",
		"directory holding teams.json, routes.json and checkpoints.json (default: DATA_DIR)")

	rootCmd.AddCommand(
		newSeedCmd(app),
		newValidateCmd(app),
		newSyncCmd(app),
	)
	return rootCmd
}
