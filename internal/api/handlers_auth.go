// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/metrics"
	"github.com/tomtom215/musicdb/internal/models"
)

const invalidCredentialsMessage = "Invalid username or password"

// Login checks credentials and the requested role. A token is issued only
// in jwt auth mode.
//
// Method: POST
// Path: /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	ip := r.RemoteAddr

	start := time.Now()
	user, err := h.db.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.loginFailed(w, username, ip, "unknown_user", metrics.LoginInvalidCredentials, invalidCredentialsMessage)
			return
		}
		metrics.RecordLoginAttempt(metrics.LoginError)
		respondStoreError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		h.loginFailed(w, username, ip, "bad_password", metrics.LoginInvalidCredentials, invalidCredentialsMessage)
		return
	}

	if user.Role != req.Role {
		h.loginFailed(w, username, ip, "role_mismatch", metrics.LoginRoleMismatch, "Role does not match this account")
		return
	}

	result := models.LoginResult{ID: user.ID, Username: user.Username, Role: user.Role}
	if h.config.Security.AuthMode == config.AuthModeJWT && h.jwtManager != nil {
		token, err := h.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
		if err != nil {
			metrics.RecordLoginAttempt(metrics.LoginError)
			respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to issue token", err)
			return
		}
		result.Token = token
	}

	h.security.LogLoginSuccess(user.ID, user.Username, user.Role, ip)
	metrics.RecordLoginAttempt(metrics.LoginSuccess)
	respondData(w, http.StatusOK, result, start)
}

func (h *Handler) loginFailed(w http.ResponseWriter, username, ip, reason, result, message string) {
	h.security.LogLoginFailure(username, ip, reason)
	metrics.RecordLoginAttempt(result)
	respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message, nil)
}
