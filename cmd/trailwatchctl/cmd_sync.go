// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/trailwatch/internal/store"
	"github.com/tomtom215/trailwatch/internal/sync"
)

func newSyncCmd(app *cliApp) *cobra.Command {
	var once bool

	syncCmd := &cobra.Command{
		Use:   "sync --once",
		Short: "Run one sync cycle against the configured source and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !once {
				return errors.New("only --once is supported; the server runs continuous syncs")
			}
			cfg, err := app.config()
			if err != nil {
				return err
			}

			st, closer, err := store.Open(cfg.Store, app.fs)
			if err != nil {
				return err
			}
			defer closer.Close() //nolint:errcheck // best effort on exit

			source, _ := sync.NewSourceFromConfig(cfg.Upstream, st)
			mgr := sync.NewManager(st, source, cfg.Sync)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			result := mgr.Cycle(ctx)
			printCycle(cmd.OutOrStdout(), result)
			return result.Err()
		},
	}
	syncCmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	return syncCmd
}

func printCycle(out io.Writer, r sync.CycleResult) {
	fmt.Fprintf(out, "outcome:          %s\n", r.Outcome())
	fmt.Fprintf(out, "teams:            %d\n", len(r.Teams))
	fmt.Fprintf(out, "accepted:         %d\n", r.Reconcile.Accepted)
	fmt.Fprintf(out, "invalid:          %d\n", r.Reconcile.Invalid)
	fmt.Fprintf(out, "duplicates:       %d\n", r.Reconcile.Duplicates)
	fmt.Fprintf(out, "carried forward:  %d\n", r.Reconcile.CarriedForward)
	if r.UpstreamErr != nil {
		fmt.Fprintf(out, "upstream error:   %v\n", r.UpstreamErr)
	}
	if r.PersistErr != nil {
		fmt.Fprintf(out, "persist error:    %v\n", r.PersistErr)
	}
}
