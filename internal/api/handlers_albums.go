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

// ListAlbums returns every album.
//
// Method: GET
// Path: /api/albums
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	albums, err := h.db.ListAlbums(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, albums, start)
}

// CreateAlbum adds an album for an existing singer.
//
// Method: POST
// Path: /api/albums
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateAlbumRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	album, err := h.db.CreateAlbum(r.Context(), models.NewAlbum{
		Name:        strings.TrimSpace(req.Name),
		Cover:       req.Cover,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		SingerID:    req.SingerID,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, album, start)
}

// GetAlbum returns one album.
//
// Method: GET
// Path: /api/albums/{id}
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	album, err := h.db.GetAlbum(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, album, start)
}

// UpdateAlbum applies a partial update.
//
// Method: PUT
// Path: /api/albums/{id}
func (h *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateAlbumRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	album, err := h.db.UpdateAlbum(r.Context(), id, models.AlbumPatch{
		Name:        trimmed(req.Name),
		Cover:       req.Cover,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		SingerID:    req.SingerID,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, album, start)
}

// DeleteAlbum removes an album and its songs.
//
// Method: DELETE
// Path: /api/albums/{id}
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	if err := h.db.DeleteAlbum(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Album deleted successfully"}, start)
}
