// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package supervisor runs Tunila's long-lived services under a suture v4 tree.

	RootSupervisor ("tunila")
	├── DataSupervisor ("data-layer")
	│   └── StoreHealthService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing store health check restarts in the data layer without touching the
HTTP server, and a crashed HTTP listener is restarted with backoff.
Supervisor events (starts, failures, backoff) are written through sutureslog
to the zerolog-backed slog logger from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreHealthService(st, 30*time.Second, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
