// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

// @title Trailwatch API
// @version 1.0
// @description Live team positions, routes and checkpoints for outdoor events.
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	_ "github.com/tomtom215/trailwatch/docs" // Import generated swagger docs
	"github.com/tomtom215/trailwatch/internal/api"
	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/store"
	"github.com/tomtom215/trailwatch/internal/supervisor"
	"github.com/tomtom215/trailwatch/internal/supervisor/services"
	"github.com/tomtom215/trailwatch/internal/sync"
	"github.com/tomtom215/trailwatch/internal/tracing"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Service: "trailwatch",
		Version: version,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Msg("Starting Trailwatch with supervisor tree")

	for _, w := range cfg.Warnings() {
		logging.Warn().Msg(w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Exporter:       cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer done()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error flushing traces")
		}
	}()

	fs := afero.NewOsFs()

	st, closer, err := store.Open(cfg.Store, fs)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open snapshot store")
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()
	logging.Info().
		Str("backend", st.Backend()).
		Str("data_dir", cfg.Store.DataDir).
		Msg("Snapshot store opened")

	source, breaker := sync.NewSourceFromConfig(cfg.Upstream, st)
	if cfg.Upstream.Simulate {
		logging.Info().Float64("step", cfg.Upstream.SimStep).Msg("Simulation mode enabled - upstream feed is not called")
	} else {
		logging.Info().Str("upstream_url", logging.SanitizeValue(cfg.Upstream.URL)).Msg("Upstream feed configured")
	}

	syncManager := sync.NewManager(st, source, cfg.Sync)

	var handlerOpts []api.HandlerOption
	if breaker != nil {
		handlerOpts = append(handlerOpts, api.WithBreaker(breaker))
	}
	handler := api.NewHandler(cfg, syncManager, fs, handlerOpts...)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.ComponentSupervisor), supervisor.DefaultTreeConfig())

	if gc, ok := st.(*store.BadgerStore); ok {
		tree.AddDataService(services.NewStoreGCService(gc, cfg.Store.GCInterval))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store GC service added")
	}

	if cfg.Sync.PollInterval > 0 {
		tree.AddSyncService(services.NewPollerService(syncManager))
		logging.Info().Dur("interval", cfg.Sync.PollInterval).Msg("Background sync poller added")
	} else {
		logging.Info().Msg("Background polling disabled - snapshot syncs on read")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
