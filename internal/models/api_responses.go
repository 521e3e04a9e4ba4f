// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package models

import (
	"time"
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents the standard envelope used by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": 1, "name": "Jay Chou"},
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 2}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "NOT_FOUND", "message": "Singer not found"},
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: malformed body, missing or invalid field
//   - CONFLICT: duplicate unique value or association
//   - INVALID_REFERENCE: referenced user or song does not exist
//   - UNAUTHORIZED: bad credentials or missing token
//   - FORBIDDEN: policy denies the action
//   - NOT_FOUND: entity does not exist
//   - DATABASE_ERROR: store failure
//   - SERVICE_ERROR: store not configured
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Database   string            `json:"database"`
	Driver     string            `json:"driver"`
	Uptime     float64           `json:"uptime_seconds"`
	StatsCache *StatsCacheHealth `json:"stats_cache,omitempty"`
}

// StatsCacheHealth reports the stats cache when it is enabled.
type StatsCacheHealth struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// APIInfo is returned by GET /.
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// LoginResult is returned by a successful login. Token is only set when
// token authentication is enabled.
type LoginResult struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"`
}
