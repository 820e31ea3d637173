// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trailwatch/internal/models"
)

// AnyVersion passed as ifMatch skips the precondition check on Save.
const AnyVersion = "*"

// Read failure reasons, used as the store_read_errors_total label.
const (
	ReasonMissing = "missing"
	ReasonRead    = "read"
	ReasonParse   = "parse"
)

var (
	// ErrSnapshotConflict is matched by every *ConflictError.
	ErrSnapshotConflict = errors.New("snapshot changed since it was loaded")

	// ErrPersistenceWrite is matched by every *WriteError.
	ErrPersistenceWrite = errors.New("snapshot could not be written")
)

// SnapshotStore is the durable home of the team snapshot.
//
// Load never fails: an absent, unreadable or malformed document yields an
// empty snapshot and the failure is logged and counted. Save replaces the
// whole document atomically, provided ifMatch equals the ETag of the document
// currently stored (or is AnyVersion).
type SnapshotStore interface {
	Load(ctx context.Context) models.Snapshot
	Save(ctx context.Context, teams []models.Team, ifMatch string) (string, error)
	Backend() string

	// Ping reports whether the backing storage can be read.
	Ping(ctx context.Context) error
}

// ConflictError reports a Save whose precondition did not hold.
type ConflictError struct {
	Expected string
	Current  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("snapshot conflict: expected etag %q, current %q", e.Expected, e.Current)
}

// Is reports whether target is ErrSnapshotConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrSnapshotConflict
}

// WriteError wraps the underlying failure of a Save.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write snapshot (%s): %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPersistenceWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrPersistenceWrite
}

// ReadError describes why Load fell back to an empty snapshot. It is only
// logged; Load never returns it.
type ReadError struct {
	Reason string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read snapshot (%s): %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// ETag returns the version tag of a persisted document: the hex xxhash64 of
// its bytes. An empty document has no version and yields "".
func ETag(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// checkPrecondition compares ifMatch against the current document's ETag.
func checkPrecondition(ifMatch, current string) error {
	if ifMatch == AnyVersion || ifMatch == current {
		return nil
	}
	return &ConflictError{Expected: ifMatch, Current: current}
}

// encodeTeams serializes a snapshot in its on-disk form: a two-space indented
// JSON array with a trailing newline. A nil slice is written as [].
func encodeTeams(teams []models.Team) ([]byte, error) {
	if teams == nil {
		teams = []models.Team{}
	}
	data, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeTeams parses a persisted snapshot. Anything but a JSON array of team
// objects is an error.
func decodeTeams(data []byte) ([]models.Team, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("document is not a JSON array")
	}
	var teams []models.Team
	if err := json.Unmarshal(trimmed, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
