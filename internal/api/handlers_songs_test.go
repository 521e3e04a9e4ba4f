// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/musicdb/internal/models"
)

// firstSinger returns the first seeded singer.
func firstSinger(t *testing.T, s *testServer) models.Singer {
	t.Helper()
	rr, env := s.do(http.MethodGet, "/api/singers", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var singers []models.Singer
	decodeData(t, env, &singers)
	if len(singers) == 0 {
		t.Fatal("expected seeded singers")
	}
	return singers[0]
}

// genreByName looks up a seeded genre.
func genreByName(t *testing.T, s *testServer, name string) models.Genre {
	t.Helper()
	rr, env := s.do(http.MethodGet, "/api/genres", nil, "")
	expectStatus(t, rr, http.StatusOK)
	var genres []models.Genre
	decodeData(t, env, &genres)
	for _, g := range genres {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("genre %q not seeded", name)
	return models.Genre{}
}

func TestSongsCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	singer := firstSinger(t, s)
	rock := genreByName(t, s, "Rock")

	rr, env := s.do(http.MethodPost, "/api/songs", map[string]interface{}{"name": "No Singer"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodPost, "/api/songs", map[string]interface{}{
		"name":      "Rainbow",
		"singer_id": singer.ID,
		"duration":  263,
		"genre_ids": []int64{rock.ID, 999999},
	}, "")
	expectStatus(t, rr, http.StatusCreated)
	var song models.Song
	decodeData(t, env, &song)
	if len(song.Genres) != 1 || song.Genres[0] != "Rock" {
		t.Errorf("genres = %v, want [Rock]", song.Genres)
	}
	if song.SingerName == nil || *song.SingerName != singer.Name {
		t.Errorf("singer_name = %v, want %s", song.SingerName, singer.Name)
	}

	rr, env = s.do(http.MethodPost, "/api/songs", map[string]interface{}{"name": "Rainbow", "singer_id": singer.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	path := fmt.Sprintf("/api/songs/%d", song.ID)
	rr, env = s.do(http.MethodPut, path, `{"duration": null, "genre_ids": []}`, "")
	expectStatus(t, rr, http.StatusOK)
	decodeData(t, env, &song)
	if song.Duration != nil {
		t.Errorf("duration = %v, want cleared", *song.Duration)
	}
	if len(song.Genres) != 0 {
		t.Errorf("genres = %v, want none", song.Genres)
	}

	rr, env = s.do(http.MethodPut, path, map[string]interface{}{"name": "Rainbow", "lyrics": "la la"}, "")
	expectStatus(t, rr, http.StatusOK)

	rr, env = s.do(http.MethodPut, path, map[string]interface{}{"name": "Simple Love"}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodPut, path, map[string]interface{}{"duration": -5}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, _ = s.do(http.MethodDelete, path, nil, "")
	expectStatus(t, rr, http.StatusOK)

	rr, env = s.do(http.MethodGet, path, nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
}

func TestSongGenres(t *testing.T) {
	s := newTestServer(t, nil)
	singer := firstSinger(t, s)
	folk := genreByName(t, s, "Folk")

	rr, env := s.do(http.MethodPost, "/api/songs", map[string]interface{}{"name": "Bare", "singer_id": singer.ID}, "")
	expectStatus(t, rr, http.StatusCreated)
	var song models.Song
	decodeData(t, env, &song)
	path := fmt.Sprintf("/api/songs/%d/genres", song.ID)

	rr, env = s.do(http.MethodPost, path, map[string]int64{"genre_id": 999999}, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)

	rr, env = s.do(http.MethodPost, "/api/songs/999999/genres", map[string]int64{"genre_id": folk.ID}, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)

	rr, env = s.do(http.MethodPost, path, map[string]int64{"genre_id": folk.ID}, "")
	expectStatus(t, rr, http.StatusCreated)
	var link models.SongGenre
	decodeData(t, env, &link)
	if link.SongID != song.ID || link.GenreID != folk.ID {
		t.Errorf("link = %+v", link)
	}

	rr, env = s.do(http.MethodPost, path, map[string]int64{"genre_id": folk.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodGet, path, nil, "")
	expectStatus(t, rr, http.StatusOK)
	var links []models.SongGenre
	decodeData(t, env, &links)
	if len(links) != 1 {
		t.Errorf("expected 1 link, got %d", len(links))
	}
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t, nil)
	singer := firstSinger(t, s)

	rr, env := s.do(http.MethodGet, "/api/users", nil, "")
	var users []models.User
	decodeData(t, env, &users)
	user := users[0]

	rr, env = s.do(http.MethodPost, "/api/songs", map[string]interface{}{"name": "Fresh", "singer_id": singer.ID}, "")
	expectStatus(t, rr, http.StatusCreated)
	var song models.Song
	decodeData(t, env, &song)

	body := map[string]int64{"user_id": user.ID, "song_id": song.ID}
	rr, env = s.do(http.MethodPost, "/api/favorites", body, "")
	expectStatus(t, rr, http.StatusCreated)
	var fav models.Favorite
	decodeData(t, env, &fav)

	rr, env = s.do(http.MethodPost, "/api/favorites", body, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeConflict)

	rr, env = s.do(http.MethodPost, "/api/favorites", map[string]int64{"user_id": 999999, "song_id": song.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeInvalidReference)

	rr, env = s.do(http.MethodPost, "/api/favorites", map[string]int64{"user_id": user.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/favorites", user.ID), nil, "")
	expectStatus(t, rr, http.StatusOK)
	var favs []models.Favorite
	decodeData(t, env, &favs)
	found := false
	for _, f := range favs {
		found = found || f.ID == fav.ID
	}
	if !found {
		t.Errorf("favorite %d missing from user favorites", fav.ID)
	}

	pairPath := fmt.Sprintf("/api/favorites/user/%d/song/%d", user.ID, song.ID)
	rr, _ = s.do(http.MethodDelete, pairPath, nil, "")
	expectStatus(t, rr, http.StatusOK)

	rr, env = s.do(http.MethodDelete, pairPath, nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)

	rr, env = s.do(http.MethodDelete, fmt.Sprintf("/api/favorites/%d", fav.ID), nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
}

func TestPlaylists(t *testing.T) {
	s := newTestServer(t, nil)
	singer := firstSinger(t, s)

	rr, env := s.do(http.MethodGet, "/api/users", nil, "")
	var users []models.User
	decodeData(t, env, &users)
	owner := users[1]

	rr, env = s.do(http.MethodPost, "/api/playlists", map[string]interface{}{"name": "", "user_id": owner.ID}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeValidation)

	rr, env = s.do(http.MethodPost, "/api/playlists", map[string]interface{}{"name": "Gym", "user_id": 999999}, "")
	expectError(t, rr, env, http.StatusBadRequest, ErrCodeInvalidReference)

	rr, env = s.do(http.MethodPost, "/api/playlists", map[string]interface{}{"name": "Gym", "user_id": owner.ID}, "")
	expectStatus(t, rr, http.StatusCreated)
	var playlist models.Playlist
	decodeData(t, env, &playlist)
	if playlist.IsPublic {
		t.Error("expected private playlist by default")
	}

	var songIDs []int64
	for _, name := range []string{"One", "Two"} {
		rr, env = s.do(http.MethodPost, "/api/songs", map[string]interface{}{"name": name, "singer_id": singer.ID}, "")
		expectStatus(t, rr, http.StatusCreated)
		var song models.Song
		decodeData(t, env, &song)
		songIDs = append(songIDs, song.ID)
	}

	songsPath := fmt.Sprintf("/api/playlists/%d/songs", playlist.ID)
	for i, id := range songIDs {
		rr, env = s.do(http.MethodPost, songsPath, map[string]int64{"song_id": id}, "")
		expectStatus(t, rr, http.StatusCreated)
		var entry models.PlaylistSong
		decodeData(t, env, &entry)
		if entry.Position != int64(i+1) {
			t.Errorf("order = %d, want %d", entry.Position, i+1)
		}
	}

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"missing song_id", songsPath, map[string]int64{}, http.StatusBadRequest, ErrCodeValidation},
		{"unknown song", songsPath, map[string]int64{"song_id": 999999}, http.StatusBadRequest, ErrCodeInvalidReference},
		{"unknown playlist", "/api/playlists/999999/songs", map[string]int64{"song_id": songIDs[0]}, http.StatusNotFound, ErrCodeNotFound},
		{"duplicate", songsPath, map[string]int64{"song_id": songIDs[0]}, http.StatusBadRequest, ErrCodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := s.do(http.MethodPost, tt.path, tt.body, "")
			expectError(t, rr, env, tt.status, tt.code)
		})
	}

	rr, env = s.do(http.MethodGet, songsPath, nil, "")
	expectStatus(t, rr, http.StatusOK)
	var entries []models.PlaylistSong
	decodeData(t, env, &entries)
	if len(entries) != 2 || entries[0].SongID != songIDs[0] || entries[1].SongID != songIDs[1] {
		t.Errorf("entries = %+v", entries)
	}

	playlistPath := fmt.Sprintf("/api/playlists/%d", playlist.ID)
	rr, env = s.do(http.MethodPut, playlistPath, map[string]interface{}{"is_public": true}, "")
	expectStatus(t, rr, http.StatusOK)
	decodeData(t, env, &playlist)
	if !playlist.IsPublic || playlist.Name != "Gym" {
		t.Errorf("playlist = %+v", playlist)
	}

	removePath := fmt.Sprintf("%s/%d", songsPath, songIDs[0])
	rr, _ = s.do(http.MethodDelete, removePath, nil, "")
	expectStatus(t, rr, http.StatusOK)
	rr, env = s.do(http.MethodDelete, removePath, nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)

	rr, env = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/playlists", owner.ID), nil, "")
	expectStatus(t, rr, http.StatusOK)

	rr, _ = s.do(http.MethodDelete, playlistPath, nil, "")
	expectStatus(t, rr, http.StatusOK)
	rr, env = s.do(http.MethodGet, playlistPath, nil, "")
	expectError(t, rr, env, http.StatusNotFound, ErrCodeNotFound)
	rr, env = s.do(http.MethodGet, songsPath, nil, "")
	expectStatus(t, rr, http.StatusOK)
	if string(env.Data) != "[]" {
		t.Errorf("entries of deleted playlist = %s, want []", string(env.Data))
	}
}
