// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package cache provides a generic thread-safe in-memory cache with TTL expiry.

TTL backs the reference endpoints (routes and checkpoints), which re-read
their files at most once per reference.cache_ttl.

	routes := cache.NewTTL[store.ReferenceResult[models.Route]](30 * time.Second)
	res, hit, err := routes.GetOrLoad("routes", func() (store.ReferenceResult[models.Route], error) {
	    return reader.Read(ctx)
	})

Expiry is lazy (checked on Get) so there is no background goroutine to stop.
Concurrent misses for one key share a single load through singleflight, and
failed loads are never cached.

The clock is injectable with WithClock for deterministic tests.
*/
package cache
