// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/models"
)

// ownerLookup resolves the user that owns a row.
type ownerLookup func(ctx context.Context, id int64) (int64, error)

// authorizeOwner lets a token holder change favorites and playlists only
// when they belong to that user. Admins may change anyone's. Requests
// without claims pass, since they only occur when token authentication is
// disabled. It returns false after sending a 403.
func (h *Handler) authorizeOwner(w http.ResponseWriter, r *http.Request, ownerID int64) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Role == models.RoleAdmin || claims.UserID == ownerID {
		return true
	}

	h.security.LogAccessDenied(claims.Username, claims.Role, r.Method, r.URL.Path)
	respondError(w, http.StatusForbidden, ErrCodeForbidden, "Forbidden: you can only change your own data", nil)
	return false
}

// authorizeOwnerOf is authorizeOwner for a row addressed by id. The owner
// is only looked up when the request carries claims.
func (h *Handler) authorizeOwnerOf(w http.ResponseWriter, r *http.Request, lookup ownerLookup, id int64) bool {
	if _, ok := auth.ClaimsFromContext(r.Context()); !ok {
		return true
	}

	ownerID, err := lookup(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return false
	}
	return h.authorizeOwner(w, r, ownerID)
}
