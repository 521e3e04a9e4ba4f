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

// ListPlaylists returns every playlist.
//
// Method: GET
// Path: /api/playlists
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	playlists, err := h.db.ListPlaylists(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, playlists, start)
}

// CreatePlaylist adds a playlist owned by an existing user.
//
// Method: POST
// Path: /api/playlists
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreatePlaylistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.authorizeOwner(w, r, req.UserID) {
		return
	}

	start := time.Now()
	playlist, err := h.db.CreatePlaylist(r.Context(), models.NewPlaylist{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Cover:       req.Cover,
		UserID:      req.UserID,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, playlist, start)
}

// GetPlaylist returns one playlist.
//
// Method: GET
// Path: /api/playlists/{id}
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	playlist, err := h.db.GetPlaylist(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, playlist, start)
}

// UpdatePlaylist applies a partial update.
//
// Method: PUT
// Path: /api/playlists/{id}
func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.authorizeOwnerOf(w, r, h.db.PlaylistOwner, id) {
		return
	}

	start := time.Now()
	playlist, err := h.db.UpdatePlaylist(r.Context(), id, models.PlaylistPatch{
		Name:        trimmed(req.Name),
		Description: req.Description,
		Cover:       req.Cover,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, playlist, start)
}

// DeletePlaylist removes a playlist and its entries.
//
// Method: DELETE
// Path: /api/playlists/{id}
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.authorizeOwnerOf(w, r, h.db.PlaylistOwner, id) {
		return
	}

	start := time.Now()
	if err := h.db.DeletePlaylist(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Playlist deleted successfully"}, start)
}

// ListPlaylistSongs returns the entries of a playlist in order.
//
// Method: GET
// Path: /api/playlists/{id}/songs
func (h *Handler) ListPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	entries, err := h.db.ListPlaylistSongs(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, entries, start)
}

// AddPlaylistSong appends a song to a playlist.
//
// Method: POST
// Path: /api/playlists/{id}/songs
func (h *Handler) AddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req PlaylistSongRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.authorizeOwnerOf(w, r, h.db.PlaylistOwner, id) {
		return
	}

	start := time.Now()
	entry, err := h.db.AddPlaylistSong(r.Context(), id, req.SongID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, entry, start)
}

// RemovePlaylistSong removes a song from a playlist.
//
// Method: DELETE
// Path: /api/playlists/{id}/songs/{song_id}
func (h *Handler) RemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	songID, ok := pathID(w, r, "song_id")
	if !ok {
		return
	}
	if !h.authorizeOwnerOf(w, r, h.db.PlaylistOwner, id) {
		return
	}

	start := time.Now()
	if err := h.db.RemovePlaylistSong(r.Context(), id, songID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Song removed from playlist"}, start)
}
