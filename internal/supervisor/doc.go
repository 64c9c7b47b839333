// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package supervisor provides process supervision using suture v4.

The tree has two independently restarted layers:

	RootSupervisor ("alteat-recommend")
	├── DataSupervisor ("data-layer")
	│   ├── CacheJanitorService
	│   └── CheckpointService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog into the application's zerolog output via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewCacheJanitorService(store, "similar", time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}
	tree.LogUnstoppedServices()

See the services subpackage for the individual service wrappers.
*/
package supervisor
