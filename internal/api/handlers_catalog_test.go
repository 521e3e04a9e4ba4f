// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/musicdb/internal/models"
)

func TestRoot(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodGet, "/", nil, "")
	expectStatus(t, rr, http.StatusOK)

	var info models.APIInfo
	decodeData(t, env, &info)
	if info.Endpoints["songs"] != "/api/songs" {
		t.Errorf("endpoints = %v, want songs entry", info.Endpoints)
	}
	if info.Version == "" {
		t.Error("expected version")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodGet, "/api/health", nil, "")
	expectStatus(t, rr, http.StatusOK)

	var health models.HealthStatus
	decodeData(t, env, &health)
	if health.Status != "healthy" || health.Database != "connected" {
		t.Errorf("health = %+v, want healthy/connected", health)
	}
	if health.Driver != "duckdb" {
		t.Errorf("driver = %q, want duckdb", health.Driver)
	}
	if health.StatsCache != nil {
		t.Errorf("stats_cache = %+v, want omitted when the cache is off", health.StatsCache)
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on API responses")
	}
}

func TestUsersCRUD(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodGet, "/api/users", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var users []models.User
	decodeData(t, env, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 non-admin users, got %d", len(users))
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			t.Errorf("admin %q listed", u.Username)
		}
	}

	rr, env = s.do(http.MethodPost, "/api/users", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret",
	}, "")
	expectStatus(t, rr, http.StatusCreated)
	if strings.Contains(string(env.Data), "password") {
		t.Errorf("password leaked: %s", env.Data)
	}
	var alice models.User
	decodeData(t, env, &alice)
	if alice.Role != models.RoleUser {
		t.Errorf("role = %q, want user", alice.Role)
	}

	rr, env = s.do(http.MethodPost, "/api/users", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret",
	}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)
	if env.Error.Message != "Username already exists" {
		t.Errorf("message = %q", env.Error.Message)
	}

	rr, env = s.do(http.MethodPost, "/api/users", map[string]string{
		"username": "bob", "email": "alice@example.com", "password": "secret",
	}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	path := fmt.Sprintf("/api/users/%d", alice.ID)
	rr, env = s.do(http.MethodPut, path, map[string]string{"username": "alice2", "password": "newpass"}, "")
	expectStatus(t, rr, http.StatusOK)
	var updated models.User
	decodeData(t, env, &updated)
	if updated.Username != "alice2" || updated.Email != "alice@example.com" {
		t.Errorf("updated = %+v", updated)
	}

	rr, env = s.do(http.MethodPost, "/api/login", map[string]string{"username": "alice2", "password": "newpass"}, "")
	expectStatus(t, rr, http.StatusOK)

	rr, env = s.do(http.MethodPut, path, map[string]string{"username": "user2"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodDelete, path, nil, "")
	expectStatus(t, rr, http.StatusOK)
	var msg models.MessageResponse
	decodeData(t, env, &msg)
	if msg.Message != "User deleted successfully" {
		t.Errorf("message = %q", msg.Message)
	}

	rr, env = s.do(http.MethodGet, path, nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body interface{}
	}{
		{"malformed", `{"username":`},
		{"missing email", map[string]string{"username": "carol", "password": "x"}},
		{"bad email", map[string]string{"username": "carol", "email": "nope", "password": "x"}},
		{"blank username", map[string]string{"username": "   ", "email": "c@example.com", "password": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := s.do(http.MethodPost, "/api/users", tt.body, "")
			expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)
		})
	}
}

func TestPathIDs(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{
		"/api/users/abc",
		"/api/users/0",
		"/api/users/-3",
		"/api/songs/999999",
		"/api/singers/999999",
		"/api/albums/999999",
		"/api/genres/999999",
		"/api/playlists/999999",
	} {
		t.Run(path, func(t *testing.T) {
			rr, env := s.do(http.MethodGet, path, nil, "")
			expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
		})
	}
}

func TestSubCollectionsOfUnknownParent(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{
		"/api/users/999999/favorites",
		"/api/users/999999/playlists",
		"/api/songs/999999/genres",
		"/api/playlists/999999/songs",
	} {
		t.Run(path, func(t *testing.T) {
			rr, env := s.do(http.MethodGet, path, nil, "")
			expectStatus(t, rr, http.StatusOK)
			if string(env.Data) != "[]" {
				t.Errorf("data = %s, want []", string(env.Data))
			}
		})
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodGet, "/api/nothing-here", nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)

	rr, env = s.do(http.MethodPatch, "/api/songs", nil, "")
	expectError(t, rr, env, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestSingersAndAlbums(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodPost, "/api/singers", map[string]string{"nationality": "France"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodPost, "/api/singers", map[string]string{"name": "Zaz", "birth_date": "1980/05/01"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodPost, "/api/singers", map[string]string{
		"name": "Zaz", "birth_date": "1980-05-01", "nationality": "France",
	}, "")
	expectStatus(t, rr, http.StatusCreated)
	var singer models.Singer
	decodeData(t, env, &singer)

	path := fmt.Sprintf("/api/singers/%d", singer.ID)
	rr, env = s.do(http.MethodPut, path, map[string]string{"birth_date": "", "description": "Chanson"}, "")
	expectStatus(t, rr, http.StatusOK)
	decodeData(t, env, &singer)
	if singer.BirthDate == nil || *singer.BirthDate != "1980-05-01" {
		t.Errorf("birth_date = %v, want kept 1980-05-01", singer.BirthDate)
	}
	if singer.Description == nil || *singer.Description != "Chanson" {
		t.Errorf("description = %v, want Chanson", singer.Description)
	}

	rr, env = s.do(http.MethodPost, "/api/albums", map[string]interface{}{"name": "Recto Verso", "singer_id": 999999}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeInvalidReference)

	rr, env = s.do(http.MethodPost, "/api/albums", map[string]interface{}{"singer_id": singer.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodPost, "/api/albums", map[string]interface{}{
		"name": "Recto Verso", "singer_id": singer.ID, "release_date": "2013-05-13",
	}, "")
	expectStatus(t, rr, http.StatusCreated)
	var album models.Album
	decodeData(t, env, &album)
	if album.SingerName == nil || *album.SingerName != "Zaz" {
		t.Errorf("singer_name = %v, want Zaz", album.SingerName)
	}

	rr, env = s.do(http.MethodDelete, path, nil, "")
	expectStatus(t, rr, http.StatusOK)

	rr, env = s.do(http.MethodGet, fmt.Sprintf("/api/albums/%d", album.ID), nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
}

func TestGenres(t *testing.T) {
	s := newTestServer(t, nil)

	rr, env := s.do(http.MethodGet, "/api/genres", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var genres []models.Genre
	decodeData(t, env, &genres)
	if len(genres) != 6 {
		t.Fatalf("expected 6 seeded genres, got %d", len(genres))
	}

	rr, env = s.do(http.MethodPost, "/api/genres", map[string]string{"name": "Pop"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodPost, "/api/genres", map[string]string{"name": "Jazz"}, "")
	expectStatus(t, rr, http.StatusCreated)
	var jazz models.Genre
	decodeData(t, env, &jazz)

	path := fmt.Sprintf("/api/genres/%d", jazz.ID)
	rr, env = s.do(http.MethodPut, path, map[string]string{"name": "Rock"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodPut, path, map[string]string{"name": "Jazz", "description": "Swing"}, "")
	expectStatus(t, rr, http.StatusOK)

	rr, _ = s.do(http.MethodDelete, path, nil, "")
	expectStatus(t, rr, http.StatusOK)
}
