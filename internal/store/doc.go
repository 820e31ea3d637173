// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package store persists the team snapshot and reads the static reference data.

# Snapshot Stores

Two SnapshotStore implementations are provided:

  - FileStore: teams.json under the data directory, on any afero.Fs.
    Writes go to a temporary file and are renamed into place.
  - BadgerStore: the same document kept in BadgerDB, with the previous
    versions retained for inspection (Revisions, Revision).

Both use the same on-disk encoding (a two-space indented JSON array) and the
same version tag, the xxhash64 of the document bytes, so a snapshot saved by
one backend has the same ETag in the other.

# Optimistic Concurrency

Save takes the ETag the caller loaded. If the stored document changed in the
meantime Save fails with an error matching ErrSnapshotConflict and nothing is
written. Pass "" to create only if absent, or AnyVersion to overwrite
unconditionally:

	snap := s.Load(ctx)
	etag, err := s.Save(ctx, merged, snap.ETag)
	if errors.Is(err, store.ErrSnapshotConflict) {
		// reload and merge again
	}

Load never fails. A missing, unreadable or malformed document yields an empty
snapshot; the reason is logged and counted in
trailwatch_store_read_errors_total.

# Reference Data

ReferenceReader reads routes.json and checkpoints.json. Records are validated
one by one and invalid records are dropped, so a single bad entry does not
hide the rest of the file.
*/
package store
