// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package metrics provides Prometheus metrics collection for MusicDB.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}: endpoint is the chi route pattern
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Store:
  - db_query_duration_seconds{operation,table}
  - db_query_errors_total{operation,table,error_type}
  - db_connections_open
  - musicdb_store_up

Domain:
  - recommendations_served_total{strategy}
  - auth_login_attempts_total{result}
*/
package metrics
