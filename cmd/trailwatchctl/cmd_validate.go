// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tomtom215/trailwatch/internal/models"
	"github.com/tomtom215/trailwatch/internal/store"
	"github.com/tomtom215/trailwatch/internal/validation"
)

// errInvalidData is returned by validate when any file has a problem.
var errInvalidData = errors.New("data directory has invalid records")

func newValidateCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check teams, routes and checkpoints files for invalid records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), app.fs, cfg.Store.DataDir)
		},
	}
}

// fileReport is the validation outcome for one data file.
type fileReport struct {
	file    string
	total   int
	invalid []string
	err     error
}

func (r fileReport) ok() bool {
	return r.err == nil && len(r.invalid) == 0 && r.total > 0
}

func runValidate(out io.Writer, fs afero.Fs, dataDir string) error {
	reports := []fileReport{
		checkFile(fs, dataDir, store.TeamsFile, func(elem json.RawMessage) error {
			var raw models.RawTeam
			if err := json.Unmarshal(elem, &raw); err != nil {
				raw = models.RawTeam{Undecodable: err}
			}
			if verr := validation.ValidateTeam(&raw); verr != nil {
				return verr
			}
			return nil
		}),
		checkFile(fs, dataDir, store.RoutesFile, decodeAndCheck(validation.CheckRoute)),
		checkFile(fs, dataDir, store.CheckpointsFile, decodeAndCheck(validation.CheckCheckpoint)),
	}

	failed := false
	for _, r := range reports {
		switch {
		case r.err != nil:
			fmt.Fprintf(out, "%v\n", r.err)
		case r.total == 0:
			fmt.Fprintf(out, "%s: no records\n", r.file)
		default:
			fmt.Fprintf(out, "%s: %d records, %d invalid\n", r.file, r.total, len(r.invalid))
			for _, msg := range r.invalid {
				fmt.Fprintf(out, "  %s\n", msg)
			}
		}
		if !r.ok() {
			failed = true
		}
	}

	if failed {
		return errInvalidData
	}
	return nil
}

func checkFile(fs afero.Fs, dataDir, file string, check func(json.RawMessage) error) fileReport {
	report := fileReport{file: file}
	elems, err := store.NewReferenceReader[json.RawMessage](fs, dataDir, file, nil).ReadRaw()
	if err != nil {
		report.err = err
		return report
	}
	report.total = len(elems)
	for i, elem := range elems {
		if err := check(elem); err != nil {
			report.invalid = append(report.invalid, fmt.Sprintf("[%d] %v", i, err))
		}
	}
	return report
}

func decodeAndCheck[T any](validate func(*T) error) func(json.RawMessage) error {
	return func(elem json.RawMessage) error {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			return err
		}
		return validate(&rec)
	}
}
