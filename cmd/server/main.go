// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/tomtom215/alteat-recommend/internal/api"
	"github.com/tomtom215/alteat-recommend/internal/config"
	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/metrics"
	"github.com/tomtom215/alteat-recommend/internal/supervisor"
	"github.com/tomtom215/alteat-recommend/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", cfg.Server.Version).
		Str("db_driver", cfg.Database.Driver).
		Bool("breaker", cfg.Datasource.BreakerEnabled).
		Bool("cache", cfg.Recommend.Cache.Enabled).
		Msg("Starting AltEat recommendation service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.WithComponent("recommend")
	comps, err := initRecommend(ctx, cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer comps.Close(&logger)

	metrics.SetAppInfo(cfg.Server.Version, runtime.Version())

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); restrict it in production")
			break
		}
	}

	handler := api.NewHandler(comps.Engine, comps.DB, api.HandlerConfig{
		Version:        cfg.Server.Version,
		RequestTimeout: cfg.Server.Timeout,

		DefaultPersonalizedLimit: cfg.Recommend.Limits.DefaultPersonalized,
		DefaultSimilarLimit:      cfg.Recommend.Limits.DefaultSimilar,
		MaxLimit:                 cfg.Recommend.Limits.MaxLimit,
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	serviceLogger := logging.Logger()
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, serviceLogger))
	if comps.Cache != nil {
		tree.AddDataService(services.NewCacheJanitorService(comps.Cache, similarCacheName, cfg.Cache.JanitorInterval, serviceLogger))
	}
	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(comps.DB, cfg.Database.CheckpointInterval, serviceLogger))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// errCh delivers exactly one value and is never closed.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	tree.LogUnstoppedServices()

	if err := comps.DB.Checkpoint(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Final checkpoint failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
