// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/musicdb/internal/logging"
	"github.com/tomtom215/musicdb/internal/metrics"
)

// requireEngine checks that the recommendation engine is configured.
func (h *Handler) requireEngine(w http.ResponseWriter) bool {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Recommendation engine not available", nil)
		return false
	}
	return true
}

// Recommendations returns personalized songs for a user.
//
// Method: GET
// Path: /api/recommendations
//
// Query Parameters:
//   - user_id: id of the user to recommend for (required)
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !h.requireEngine(w) {
		return
	}

	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "user_id is required", nil)
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "user_id must be an integer", nil)
		return
	}
	if apiErr := validateRequest(&RecommendationQuery{UserID: userID}); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	result, err := h.engine.Recommend(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("user_id", userID).Msg("Recommendation failed")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to build recommendations", nil)
		return
	}

	metrics.RecordRecommendation(result.Strategy)
	respondData(w, http.StatusOK, result.Songs, start)
}

// PopularRecommendations returns the newest songs for anonymous visitors.
//
// Method: GET
// Path: /api/recommendations/popular
func (h *Handler) PopularRecommendations(w http.ResponseWriter, r *http.Request) {
	if !h.requireEngine(w) {
		return
	}

	start := time.Now()
	result, err := h.engine.Popular(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Popular recommendations failed")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to build recommendations", nil)
		return
	}

	metrics.RecordRecommendation(result.Strategy)
	respondData(w, http.StatusOK, result.Songs, start)
}
