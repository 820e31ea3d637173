// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/seed"
	"github.com/tomtom215/trailwatch/internal/store"
	"github.com/tomtom215/trailwatch/internal/validation"
)

type seedOptions struct {
	force bool
	seed  int64
}

func newSeedCmd(app *cliApp) *cobra.Command {
	opts := &seedOptions{}

	seedCmd := &cobra.Command{
		Use:       "seed teams|routes|checkpoints|all",
		Short:     "Write demo data into the data directory",
		Long:      "Writes the canonical teams, random-walk routes and their checkpoints. Existing data is kept unless --force is given.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"teams", "routes", "checkpoints", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}
			return runSeed(cmd, app, cfg, args[0], opts)
		},
	}
	seedCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing data")
	seedCmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for route generation (0 uses the clock)")
	return seedCmd
}

func runSeed(cmd *cobra.Command, app *cliApp, cfg *config.Config, what string, opts *seedOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	var routes []models.Route
	if what == "routes" || what == "all" {
		rngSeed := opts.seed
		if rngSeed == 0 {
			rngSeed = time.Now().UnixNano()
		}
		routes = seed.Routes(rand.New(rand.NewSource(rngSeed))) //nolint:gosec // demo data
	}

	if what == "teams" || what == "all" {
		if err := seedTeams(ctx, app, cfg, opts.force); err != nil {
			return err
		}
		fmt.Fprintf(out, "teams: wrote %d teams\n", len(seed.Teams()))
	}

	if routes != nil {
		if err := seed.WriteReference(app.fs, cfg.Store.DataDir, store.RoutesFile, routes, opts.force); err != nil {
			return err
		}
		fmt.Fprintf(out, "routes: wrote %d routes\n", len(routes))
	}

	if what == "checkpoints" || what == "all" {
		if routes == nil {
			res, err := store.NewReferenceReader(app.fs, cfg.Store.DataDir, store.RoutesFile, validation.CheckRoute).Read(ctx)
			if err != nil {
				return fmt.Errorf("checkpoints are derived from routes, seed routes first: %w", err)
			}
			routes = res.Records
		}
		checkpoints := seed.Checkpoints(routes)
		if err := seed.WriteReference(app.fs, cfg.Store.DataDir, store.CheckpointsFile, checkpoints, opts.force); err != nil {
			return err
		}
		fmt.Fprintf(out, "checkpoints: wrote %d checkpoints\n", len(checkpoints))
	}

	return nil
}

// seedTeams writes the canonical teams through the configured snapshot store
// so that a running server's precondition check sees the change.
func seedTeams(ctx context.Context, app *cliApp, cfg *config.Config, force bool) error {
	st, closer, err := store.Open(cfg.Store, app.fs)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck // best effort on exit

	ifMatch := store.AnyVersion
	if !force {
		snap := st.Load(ctx)
		if snap.ETag != "" {
			return fmt.Errorf("team snapshot (%s): %w", st.Backend(), seed.ErrExists)
		}
		ifMatch = snap.ETag
	}

	if _, err := st.Save(ctx, seed.Teams(), ifMatch); err != nil {
		if errors.Is(err, store.ErrSnapshotConflict) {
			return fmt.Errorf("team snapshot was written concurrently, retry with --force: %w", err)
		}
		return err
	}
	return nil
}
