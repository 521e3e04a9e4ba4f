// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package api provides the HTTP REST API for the MusicDB catalog.

Every endpoint answers with the same JSON envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 2}
	}

Errors set status to "error" and carry an error object with a code such as
VALIDATION_ERROR, CONFLICT, INVALID_REFERENCE, UNAUTHORIZED, FORBIDDEN,
NOT_FOUND or DATABASE_ERROR.

# Routes

Public:
  - GET  /                 API description
  - GET  /metrics          Prometheus exposition
  - GET  /api/health       service and store health
  - POST /api/login        credential check, issues a JWT in jwt auth mode

Catalog (authenticated in jwt auth mode, authorized by Casbin policy):
  - /api/users, /api/singers, /api/albums, /api/songs, /api/genres
  - /api/favorites, /api/playlists
  - /api/stats/*, /api/popular-singers
  - /api/recommendations, /api/recommendations/popular

# Middleware

Requests pass through request ID propagation, real IP extraction, panic
recovery, access logging, CORS (go-chi/cors), gzip compression and
Prometheus instrumentation. API routes are additionally rate limited per
client IP with go-chi/httprate; login has its own stricter limit.

Path ids that are not positive integers answer 404.
*/
package api
