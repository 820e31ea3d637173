// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/metrics"
	"github.com/tomtom215/trailwatch/internal/models"
)

// BackendBadger is the Backend() name of BadgerStore.
const BackendBadger = "badger"

// Key layout. The document and its ETag are written in the same transaction.
const (
	keySnapshot      = "snapshot/teams"
	keySnapshotETag  = "snapshot/teams/etag"
	prefixHistory    = "snapshot/teams/history/"
	defaultGCRatio   = 0.5
	defaultHistory   = 20
	historyKeyLength = len(prefixHistory) + 8
)

// ErrStoreClosed is returned by BadgerStore operations after Close.
var ErrStoreClosed = errors.New("badger store is closed")

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the database in memory (tests).
	InMemory bool

	// HistoryLimit is how many previous snapshots are kept for inspection.
	// Zero disables history.
	HistoryLimit int

	// GCRatio is the value log discard ratio passed to RunValueLogGC.
	GCRatio float64
}

// DefaultBadgerConfig returns a configuration for path with default tuning.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:         path,
		HistoryLimit: defaultHistory,
		GCRatio:      defaultGCRatio,
	}
}

// Revision describes one retained snapshot.
type Revision struct {
	Seq     uint64    `json:"seq"`
	ETag    string    `json:"etag"`
	SavedAt time.Time `json:"saved_at"`
	Teams   int       `json:"teams"`
}

// historyEntry is the stored form of a retained snapshot.
type historyEntry struct {
	ETag     string          `json:"etag"`
	SavedAt  time.Time       `json:"saved_at"`
	Teams    int             `json:"teams"`
	Document json.RawMessage `json:"document"`
}

// BadgerStore keeps the snapshot in BadgerDB and retains the last
// HistoryLimit versions under snapshot/teams/history/<seq>.
type BadgerStore struct {
	db     *badger.DB
	config BadgerConfig
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) a BadgerStore.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = defaultGCRatio
	}
	if cfg.HistoryLimit < 0 {
		cfg.HistoryLimit = 0
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		config: cfg,
		logger: logging.For(logging.ComponentStore),
	}

	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("history_limit", cfg.HistoryLimit).
		Msg("Badger snapshot store opened")
	return s, nil
}

// Backend returns "badger".
func (s *BadgerStore) Backend() string {
	return BackendBadger
}

// Load reads the snapshot. It never fails; see SnapshotStore.
func (s *BadgerStore) Load(ctx context.Context) models.Snapshot {
	var data []byte
	var etag string

	err := s.view(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySnapshot))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		etag, err = readETag(txn)
		return err
	})
	if err != nil {
		reason := ReasonRead
		if errors.Is(err, badger.ErrKeyNotFound) {
			reason = ReasonMissing
		}
		s.readFailed(ctx, &ReadError{Reason: reason, Err: err})
		return models.Snapshot{}
	}
	if etag == "" {
		etag = ETag(data)
	}

	teams, err := decodeTeams(data)
	if err != nil {
		s.readFailed(ctx, &ReadError{Reason: ReasonParse, Err: err})
		return models.Snapshot{ETag: etag}
	}
	return models.Snapshot{Teams: teams, ETag: etag}
}

func (s *BadgerStore) readFailed(ctx context.Context, rerr *ReadError) {
	metrics.RecordStoreReadError(rerr.Reason)
	logging.Ctx(ctx).Warn().
		Str("component", "store").
		Str("backend", BackendBadger).
		Str("reason", rerr.Reason).
		Err(rerr.Err).
		Msg("Snapshot unreadable, using empty snapshot")
}

// Save replaces the snapshot if ifMatch still names the stored version. The
// precondition is checked inside the read-write transaction; a concurrent
// commit surfaces as badger.ErrConflict and is reported as *ConflictError.
func (s *BadgerStore) Save(ctx context.Context, teams []models.Team, ifMatch string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &WriteError{Op: "context", Err: err}
	}

	data, err := encodeTeams(teams)
	if err != nil {
		metrics.RecordStoreWrite(BackendBadger, "error")
		return "", &WriteError{Op: "encode", Err: err}
	}
	etag := ETag(data)

	err = s.update(func(txn *badger.Txn) error {
		current, err := readETag(txn)
		if err != nil {
			return err
		}
		if err := checkPrecondition(ifMatch, current); err != nil {
			return err
		}
		if err := txn.Set([]byte(keySnapshot), data); err != nil {
			return err
		}
		if err := txn.Set([]byte(keySnapshotETag), []byte(etag)); err != nil {
			return err
		}
		return s.appendHistory(txn, etag, len(teams), data)
	})

	var conflict *ConflictError
	switch {
	case err == nil:
		metrics.RecordStoreWrite(BackendBadger, "ok")
		return etag, nil
	case errors.As(err, &conflict):
		metrics.RecordStoreWrite(BackendBadger, "conflict")
		return "", conflict
	case errors.Is(err, badger.ErrConflict):
		metrics.RecordStoreWrite(BackendBadger, "conflict")
		return "", &ConflictError{Expected: ifMatch}
	default:
		metrics.RecordStoreWrite(BackendBadger, "error")
		return "", &WriteError{Op: "commit", Err: err}
	}
}

// appendHistory stores the new version and prunes the oldest beyond the limit.
func (s *BadgerStore) appendHistory(txn *badger.Txn, etag string, teams int, data []byte) error {
	if s.config.HistoryLimit == 0 {
		return nil
	}

	seqs, err := historySeqs(txn)
	if err != nil {
		return err
	}

	next := uint64(1)
	if len(seqs) > 0 {
		next = seqs[len(seqs)-1] + 1
	}

	entry, err := json.Marshal(historyEntry{
		ETag:     etag,
		SavedAt:  time.Now().UTC(),
		Teams:    teams,
		Document: data,
	})
	if err != nil {
		return err
	}
	if err := txn.Set(historyKey(next), entry); err != nil {
		return err
	}

	seqs = append(seqs, next)
	for excess := len(seqs) - s.config.HistoryLimit; excess > 0; excess-- {
		if err := txn.Delete(historyKey(seqs[0])); err != nil {
			return err
		}
		seqs = seqs[1:]
	}
	return nil
}

// Revisions lists retained snapshots, newest first.
func (s *BadgerStore) Revisions() ([]Revision, error) {
	var revs []Revision
	err := s.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefixHistory)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration seeks from the largest possible key in the prefix.
		seek := append([]byte(prefixHistory), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		for it.Seek(seek); it.Valid(); it.Next() {
			item := it.Item()
			var entry historyEntry
			if err := item.Value(func(v []byte) error {
				return json.Unmarshal(v, &entry)
			}); err != nil {
				return err
			}
			revs = append(revs, Revision{
				Seq:     parseHistoryKey(item.Key()),
				ETag:    entry.ETag,
				SavedAt: entry.SavedAt,
				Teams:   entry.Teams,
			})
		}
		return nil
	})
	return revs, err
}

// Revision returns the teams stored at history sequence seq.
func (s *BadgerStore) Revision(seq uint64) ([]models.Team, error) {
	var teams []models.Team
	err := s.view(func(txn *badger.Txn) error {
		item, err := txn.Get(historyKey(seq))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			var entry historyEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			teams, err = decodeTeams(entry.Document)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("revision %d: %w", seq, err)
	}
	return teams, nil
}

// RunGC triggers BadgerDB value log garbage collection until nothing more
// can be rewritten.
func (s *BadgerStore) RunGC() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	if s.config.InMemory {
		return nil
	}

	defer metrics.StoreGCRuns.Inc()
	for {
		err := s.db.RunValueLogGC(s.config.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Ping reads the current ETag.
func (s *BadgerStore) Ping(_ context.Context) error {
	return s.view(func(txn *badger.Txn) error {
		_, err := readETag(txn)
		return err
	})
}

// Close closes the database. Further operations return ErrStoreClosed.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *BadgerStore) view(fn func(txn *badger.Txn) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.View(fn)
}

func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(fn)
}

// readETag returns the stored ETag, or "" when no snapshot exists.
func readETag(txn *badger.Txn) (string, error) {
	item, err := txn.Get([]byte(keySnapshotETag))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	v, err := item.ValueCopy(nil)
	return string(v), err
}

// historySeqs returns the retained history sequence numbers in ascending order.
func historySeqs(txn *badger.Txn) ([]uint64, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixHistory)
	it := txn.NewIterator(opts)
	defer it.Close()

	var seqs []uint64
	for it.Rewind(); it.Valid(); it.Next() {
		seqs = append(seqs, parseHistoryKey(it.Item().Key()))
	}
	return seqs, nil
}

func historyKey(seq uint64) []byte {
	key := make([]byte, historyKeyLength)
	copy(key, prefixHistory)
	binary.BigEndian.PutUint64(key[len(prefixHistory):], seq)
	return key
}

func parseHistoryKey(key []byte) uint64 {
	if len(key) != historyKeyLength {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(prefixHistory):])
}
