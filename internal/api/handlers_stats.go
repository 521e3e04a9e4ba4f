// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/musicdb/internal/cache"
	"github.com/tomtom215/musicdb/internal/metrics"
)

// statsQuery runs one aggregation and sends its result. The query is a
// method value on h.db, which is only called once the store is known.
// When the stats cache is enabled, results are served from it while it
// holds them. A result is not stored when a write cleared the cache while
// the query ran.
func statsQuery[T any](h *Handler, w http.ResponseWriter, r *http.Request, query func(context.Context) (T, error)) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	key := cache.GenerateKey(r.URL.Path, r.URL.Query())
	var gen uint64
	if h.statsCache != nil {
		gen = h.statsCache.Generation()
		if cached, ok := h.statsCache.Get(key); ok {
			if result, ok := cached.(T); ok {
				metrics.RecordCacheLookup(true)
				respondData(w, http.StatusOK, result, start)
				return
			}
		}
		metrics.RecordCacheLookup(false)
	}

	result, err := query(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if h.statsCache != nil {
		h.statsCache.SetIfGeneration(key, result, gen)
	}
	respondData(w, http.StatusOK, result, start)
}

// InvalidateStatsOnWrite clears the stats cache after every successful
// write so aggregates never lag behind the caller's own changes.
func (h *Handler) InvalidateStatsOnWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.statsCache == nil || r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if ww.Status() < http.StatusBadRequest {
			h.statsCache.Clear()
		}
	})
}

// StatsOverview returns catalog totals and today's activity.
//
// Method: GET
// Path: /api/stats/overview
func (h *Handler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetStatsOverview)
}

// StatsTopSingers returns the ten singers with the most favorites.
//
// Method: GET
// Path: /api/stats/top-singers
func (h *Handler) StatsTopSingers(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetTopSingers)
}

// StatsTopSongs returns the ten most favorited songs.
//
// Method: GET
// Path: /api/stats/top-songs
func (h *Handler) StatsTopSongs(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetTopSongs)
}

// StatsGenreDistribution returns the song count of every genre.
//
// Method: GET
// Path: /api/stats/genre-distribution
func (h *Handler) StatsGenreDistribution(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetGenreDistribution)
}

// StatsUserActivity returns daily favorite counts for the last seven days.
//
// Method: GET
// Path: /api/stats/user-activity
func (h *Handler) StatsUserActivity(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetUserActivity)
}

// StatsSingerNationality returns singer counts per nationality.
//
// Method: GET
// Path: /api/stats/singer-nationality
func (h *Handler) StatsSingerNationality(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetSingerNationality)
}

// PopularSingers returns the five favorited singers with the most favorites.
//
// Method: GET
// Path: /api/popular-singers
func (h *Handler) PopularSingers(w http.ResponseWriter, r *http.Request) {
	statsQuery(h, w, r, h.db.GetPopularSingers)
}
