// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

/*
Package services adapts Trailwatch components to suture.Service.

  - HTTPServerService: the API server, with graceful shutdown (api layer)
  - PollerService: the background sync loop, sync.Manager.Run (sync layer)
  - StoreGCService: periodic Badger value log GC (data layer)

Each service blocks in Serve until its context is cancelled and returns
ctx.Err() on a clean stop, so suture does not count shutdown as a failure.

Example:

	tree.AddDataService(services.NewStoreGCService(badgerStore, cfg.Store.GCInterval))
	tree.AddSyncService(services.NewPollerService(syncMgr))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
*/
package services
