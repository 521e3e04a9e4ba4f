// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/musicdb/internal/models"
)

// ListGenres returns every genre.
//
// Method: GET
// Path: /api/genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	genres, err := h.db.ListGenres(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, genres, start)
}

// CreateGenre adds a genre with a unique name.
//
// Method: POST
// Path: /api/genres
func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateGenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	genre, err := h.db.CreateGenre(r.Context(), models.NewGenre{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, genre, start)
}

// GetGenre returns one genre.
//
// Method: GET
// Path: /api/genres/{id}
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	genre, err := h.db.GetGenre(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, genre, start)
}

// UpdateGenre applies a partial update.
//
// Method: PUT
// Path: /api/genres/{id}
func (h *Handler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateGenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	genre, err := h.db.UpdateGenre(r.Context(), id, models.GenrePatch{
		Name:        trimmed(req.Name),
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, genre, start)
}

// DeleteGenre removes a genre and its song links.
//
// Method: DELETE
// Path: /api/genres/{id}
func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	if err := h.db.DeleteGenre(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Genre deleted successfully"}, start)
}
