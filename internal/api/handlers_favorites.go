// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/musicdb/internal/models"
)

// ListFavorites returns every favorite.
//
// Method: GET
// Path: /api/favorites
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	favs, err := h.db.ListFavorites(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, favs, start)
}

// CreateFavorite records a user liking a song.
//
// Method: POST
// Path: /api/favorites
func (h *Handler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req FavoriteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if !h.authorizeOwner(w, r, req.UserID) {
		return
	}

	start := time.Now()
	fav, err := h.db.CreateFavorite(r.Context(), req.UserID, req.SongID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, fav, start)
}

// DeleteFavorite removes a favorite by id.
//
// Method: DELETE
// Path: /api/favorites/{id}
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.authorizeOwnerOf(w, r, h.db.FavoriteOwner, id) {
		return
	}

	start := time.Now()
	if err := h.db.DeleteFavorite(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Favorite removed successfully"}, start)
}

// DeleteUserSongFavorite removes the favorite a user holds for a song.
//
// Method: DELETE
// Path: /api/favorites/user/{user_id}/song/{song_id}
func (h *Handler) DeleteUserSongFavorite(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	songID, ok := pathID(w, r, "song_id")
	if !ok {
		return
	}
	if !h.authorizeOwner(w, r, userID) {
		return
	}

	start := time.Now()
	if err := h.db.DeleteUserSongFavorite(r.Context(), userID, songID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Favorite removed successfully"}, start)
}
