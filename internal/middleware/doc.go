// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package middleware provides HTTP middleware components for the API router.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one zerolog line per request, warn for slow or failed requests
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

All middleware use the standard func(http.Handler) http.Handler shape and
are mounted with chi's Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

See Also:

  - internal/auth: Authentication middleware
  - internal/authz: Authorization middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
