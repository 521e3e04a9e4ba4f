// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package services provides suture.Service wrappers for MusicDB components.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService runs ListenAndServe and, when its context is canceled,
calls Shutdown with a bounded timeout. http.ErrServerClosed is not
treated as a failure.

StoreHealthService pings the catalog store on an interval and publishes
musicdb_store_up and db_connections_open. Ping failures are
logged on the transition only and never returned, so the supervisor
does not restart the check while the store is down.

Both wrappers implement fmt.Stringer so supervisor logs name them.
*/
package services
