// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
)

// Data file names under the data directory.
const (
	TeamsFile       = "teams.json"
	RoutesFile      = "routes.json"
	CheckpointsFile = "checkpoints.json"
)

// BackendFile is the Backend() name of FileStore.
const BackendFile = "file"

// FileStore keeps the snapshot as a single JSON document on an afero
// filesystem. Writes go to a temporary file in the same directory and are
// renamed over the document, so readers never observe a partial write.
type FileStore struct {
	fs     afero.Fs
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFileStore creates a FileStore for <dataDir>/teams.json on fs.
func NewFileStore(fs afero.Fs, dataDir string) *FileStore {
	return &FileStore{
		fs:     fs,
		path:   filepath.Join(dataDir, TeamsFile),
		logger: logging.For(logging.ComponentStore),
	}
}

// Backend returns "file".
func (s *FileStore) Backend() string {
	return BackendFile
}

// Ping stats the snapshot document. A document that does not exist yet is
// not a failure.
func (s *FileStore) Ping(_ context.Context) error {
	if _, err := s.fs.Stat(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return nil
}

// Path returns the snapshot document path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. It never fails; see SnapshotStore.
func (s *FileStore) Load(ctx context.Context) models.Snapshot {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		reason := ReasonRead
		if errors.Is(err, os.ErrNotExist) {
			reason = ReasonMissing
		}
		s.readFailed(ctx, &ReadError{Reason: reason, Err: err})
		return models.Snapshot{}
	}

	etag := ETag(data)
	teams, err := decodeTeams(data)
	if err != nil {
		s.readFailed(ctx, &ReadError{Reason: ReasonParse, Err: err})
		return models.Snapshot{ETag: etag}
	}

	return models.Snapshot{Teams: teams, ETag: etag}
}

func (s *FileStore) readFailed(ctx context.Context, rerr *ReadError) {
	metrics.RecordStoreReadError(rerr.Reason)
	logging.Ctx(ctx).Warn().
		Str("component", "store").
		Str("path", s.path).
		Str("reason", rerr.Reason).
		Err(rerr.Err).
		Msg("Snapshot unreadable, using empty snapshot")
}

// Save atomically replaces the snapshot if ifMatch still names the stored
// version, returning the new ETag.
func (s *FileStore) Save(ctx context.Context, teams []models.Team, ifMatch string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &WriteError{Op: "context", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentETag()
	if err != nil {
		metrics.RecordStoreWrite(BackendFile, "error")
		return "", &WriteError{Op: "read current", Err: err}
	}
	if err := checkPrecondition(ifMatch, current); err != nil {
		metrics.RecordStoreWrite(BackendFile, "conflict")
		return "", err
	}

	data, err := encodeTeams(teams)
	if err != nil {
		metrics.RecordStoreWrite(BackendFile, "error")
		return "", &WriteError{Op: "encode", Err: err}
	}

	if err := s.writeAtomic(data); err != nil {
		metrics.RecordStoreWrite(BackendFile, "error")
		return "", err
	}

	etag := ETag(data)
	metrics.RecordStoreWrite(BackendFile, "ok")
	s.logger.Debug().
		Int("teams", len(teams)).
		Str("etag", etag).
		Msg("Snapshot saved")
	return etag, nil
}

// currentETag returns the ETag of the stored document, or "" when absent.
func (s *FileStore) currentETag() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ETag(data), nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Op: "mkdir", Err: err}
	}

	tmp, err := afero.TempFile(s.fs, dir, ".teams-*.json.tmp")
	if err != nil {
		return &WriteError{Op: "create temp", Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = s.fs.Remove(tmpName) // best-effort; the original document is untouched
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return &WriteError{Op: "write temp", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return &WriteError{Op: "sync temp", Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &WriteError{Op: "close temp", Err: err}
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return &WriteError{Op: "rename", Err: fmt.Errorf("%s -> %s: %w", tmpName, s.path, err)}
	}
	return nil
}
