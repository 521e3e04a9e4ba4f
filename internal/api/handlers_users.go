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

// ListUsers returns every account except administrators.
//
// Method: GET
// Path: /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, users, start)
}

// CreateUser registers a regular user. The password is stored as a bcrypt
// hash and the role is always user.
//
// Method: POST
// Path: /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := h.hashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to hash password", err)
		return
	}

	start := time.Now()
	user, err := h.db.CreateUser(r.Context(), models.NewUser{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: hash,
		Avatar:       req.Avatar,
		Role:         models.RoleUser,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, user, start)
}

// GetUser returns one user.
//
// Method: GET
// Path: /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	user, err := h.db.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, user, start)
}

// UpdateUser applies a partial update. A new password is re-hashed.
//
// Method: PUT
// Path: /api/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := models.UserPatch{
		Username: trimmed(req.Username),
		Email:    req.Email,
		Avatar:   req.Avatar,
	}
	if req.Password != nil {
		hash, err := h.hashPassword(*req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to hash password", err)
			return
		}
		patch.PasswordHash = &hash
	}

	start := time.Now()
	user, err := h.db.UpdateUser(r.Context(), id, patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, user, start)
}

// DeleteUser removes a user together with their favorites and playlists.
//
// Method: DELETE
// Path: /api/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	if err := h.db.DeleteUser(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "User deleted successfully"}, start)
}

// ListUserFavorites returns the favorites of one user.
//
// Method: GET
// Path: /api/users/{id}/favorites
func (h *Handler) ListUserFavorites(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	favs, err := h.db.ListUserFavorites(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, favs, start)
}

// ListUserPlaylists returns the playlists owned by one user.
//
// Method: GET
// Path: /api/users/{id}/playlists
func (h *Handler) ListUserPlaylists(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	playlists, err := h.db.ListUserPlaylists(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, playlists, start)
}
