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
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/logging"
)

var (
	// ErrReferenceMissing is returned when a reference file is absent or empty.
	ErrReferenceMissing = errors.New("reference data not found")

	// ErrReferenceFormat is returned when a reference file is not a JSON array.
	ErrReferenceFormat = errors.New("reference data is not a JSON array")
)

// ReferenceResult is the outcome of reading a reference file.
type ReferenceResult[T any] struct {
	Records []T
	Dropped int
}

// ReferenceReader reads a read-only JSON array file of T (routes, checkpoints)
// through afero. Each element is decoded and validated on its own, so a bad
// record is dropped instead of failing the whole file.
type ReferenceReader[T any] struct {
	fs       afero.Fs
	path     string
	kind     string
	validate func(*T) error
}

// NewReferenceReader creates a reader for <dataDir>/<file>. validate may be
// nil, in which case every decodable record is accepted.
func NewReferenceReader[T any](fs afero.Fs, dataDir, file string, validate func(*T) error) *ReferenceReader[T] {
	return &ReferenceReader[T]{
		fs:       fs,
		path:     filepath.Join(dataDir, file),
		kind:     file,
		validate: validate,
	}
}

// Path returns the file read by r.
func (r *ReferenceReader[T]) Path() string {
	return r.path
}

// ReadRaw returns the file's array elements undecoded.
func (r *ReferenceReader[T]) ReadRaw() ([]json.RawMessage, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", r.kind, ErrReferenceMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.kind, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", r.kind, ErrReferenceMissing)
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%s: %w", r.kind, ErrReferenceFormat)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", r.kind, ErrReferenceFormat, err)
	}
	return elems, nil
}

// Read decodes and validates every record. It fails with ErrReferenceMissing
// when the file is absent, empty, or holds no valid record.
func (r *ReferenceReader[T]) Read(ctx context.Context) (ReferenceResult[T], error) {
	elems, err := r.ReadRaw()
	if err != nil {
		return ReferenceResult[T]{}, err
	}

	result := ReferenceResult[T]{Records: make([]T, 0, len(elems))}
	for i, elem := range elems {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			result.Dropped++
			r.dropped(ctx, i, err)
			continue
		}
		if r.validate != nil {
			if err := r.validate(&rec); err != nil {
				result.Dropped++
				r.dropped(ctx, i, err)
				continue
			}
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		return result, fmt.Errorf("%s has no valid records: %w", r.kind, ErrReferenceMissing)
	}
	return result, nil
}

func (r *ReferenceReader[T]) dropped(ctx context.Context, index int, err error) {
	logging.CtxFor(ctx, logging.ComponentStore).Warn().
		Str("file", r.kind).
		Int("index", index).
		Str("reason", logging.SanitizeError(err)).
		Msg("Dropping invalid reference record")
}
