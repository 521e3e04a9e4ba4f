// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/musicdb/internal/logging"
	"github.com/tomtom215/musicdb/internal/models"
)

// healthPingTimeout bounds the store ping of the health endpoint.
const healthPingTimeout = 2 * time.Second

// Root describes the API.
//
// Method: GET
// Path: /
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, models.APIInfo{
		Message: "MusicDB API",
		Version: Version,
		Endpoints: map[string]string{
			"health":          "/api/health",
			"login":           "/api/login",
			"users":           "/api/users",
			"singers":         "/api/singers",
			"albums":          "/api/albums",
			"songs":           "/api/songs",
			"genres":          "/api/genres",
			"favorites":       "/api/favorites",
			"playlists":       "/api/playlists",
			"stats":           "/api/stats/overview",
			"recommendations": "/api/recommendations",
			"metrics":         "/metrics",
		},
	}, time.Now())
}

// Health reports service and store status. A store that cannot be reached
// makes the service degraded but the endpoint still answers 200.
//
// Method: GET
// Path: /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := models.HealthStatus{
		Status:   "healthy",
		Version:  Version,
		Database: "connected",
		Uptime:   time.Since(h.startTime).Seconds(),
	}

	if h.db == nil {
		status.Status = "degraded"
		status.Database = "not configured"
	} else {
		status.Driver = h.db.Driver()
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check ping failed")
			status.Status = "degraded"
			status.Database = "disconnected"
		}
	}

	if h.statsCache != nil {
		stats := h.statsCache.GetStats()
		status.StatsCache = &models.StatsCacheHealth{
			Entries: h.statsCache.Len(),
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			HitRate: h.statsCache.HitRate(),
		}
	}

	respondData(w, http.StatusOK, status, start)
}
