// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package supervisor provides process supervision for MusicDB using suture v4.

The tree separates store maintenance from request serving so a failing
check never takes the HTTP listener down with it:

	RootSupervisor ("musicdb")
	├── DataSupervisor ("data-layer")
	│   └── StoreHealthService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. Failure counts decay over
time, and each layer counts its failures independently. Supervisor
events are logged through slog via sutureslog; the serve command hands
in a slog logger backed by zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreHealthService(db, cfg.Database.HealthEvery, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Serve blocks until ctx is canceled. When a service ignores cancellation
for longer than ShutdownTimeout, UnstoppedServiceReport lists it.
*/
package supervisor
