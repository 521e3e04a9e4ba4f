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

// ListSongs returns every song with singer, album and genre names.
//
// Method: GET
// Path: /api/songs
func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	songs, err := h.db.ListSongs(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, songs, start)
}

// CreateSong adds a song and links the named genres that exist.
//
// Method: POST
// Path: /api/songs
func (h *Handler) CreateSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateSongRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	song, err := h.db.CreateSong(r.Context(), models.NewSong{
		Name:        strings.TrimSpace(req.Name),
		Duration:    req.Duration,
		Lyrics:      req.Lyrics,
		ReleaseDate: req.ReleaseDate,
		SingerID:    req.SingerID,
		AlbumID:     req.AlbumID,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, song, start)
}

// GetSong returns one song.
//
// Method: GET
// Path: /api/songs/{id}
func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	song, err := h.db.GetSong(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, song, start)
}

// UpdateSong applies a partial update. A present genre_ids replaces the
// song's genre links.
//
// Method: PUT
// Path: /api/songs/{id}
func (h *Handler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateSongRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	song, err := h.db.UpdateSong(r.Context(), id, models.SongPatch{
		Name:        trimmed(req.Name),
		Duration:    req.Duration,
		Lyrics:      req.Lyrics,
		ReleaseDate: req.ReleaseDate,
		SingerID:    req.SingerID,
		AlbumID:     req.AlbumID,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, song, start)
}

// DeleteSong removes a song with its favorites, playlist entries and
// genre links.
//
// Method: DELETE
// Path: /api/songs/{id}
func (h *Handler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	if err := h.db.DeleteSong(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Song deleted successfully"}, start)
}

// ListSongGenres returns the genre links of a song.
//
// Method: GET
// Path: /api/songs/{id}/genres
func (h *Handler) ListSongGenres(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	links, err := h.db.ListSongGenres(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, links, start)
}

// AddSongGenre links a genre to a song.
//
// Method: POST
// Path: /api/songs/{id}/genres
func (h *Handler) AddSongGenre(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req SongGenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	link, err := h.db.AddSongGenre(r.Context(), id, req.GenreID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, link, start)
}
