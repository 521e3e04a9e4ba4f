// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Request bodies with go-playground/validator tags.
//
// Patch requests use pointer fields: an absent or null field keeps the
// stored value. omitnil validates a present value even when it is empty,
// so an empty username is rejected rather than ignored. Empty date strings
// are dropped by normalize before validation.

package api

import (
	"github.com/tomtom215/musicdb/internal/models"
)

// LoginRequest is the body of POST /api/login. Role defaults to user.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

func (r *LoginRequest) normalize() {
	if r.Role == "" {
		r.Role = models.RoleUser
	}
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,notblank,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,max=72"`
	Avatar   string `json:"avatar" validate:"max=255"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,notblank,max=80"`
	Email    *string `json:"email" validate:"omitnil,email,max=120"`
	Password *string `json:"password" validate:"omitnil,min=1,max=72"`
	Avatar   *string `json:"avatar" validate:"omitnil,max=255"`
}

// CreateSingerRequest is the body of POST /api/singers.
type CreateSingerRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Avatar      *string `json:"avatar" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	BirthDate   *string `json:"birth_date" validate:"omitnil,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitnil,max=50"`
}

func (r *CreateSingerRequest) normalize() {
	r.BirthDate = blankToNil(r.BirthDate)
}

// UpdateSingerRequest is the body of PUT /api/singers/{id}. An empty
// birth_date keeps the stored value.
type UpdateSingerRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Avatar      *string `json:"avatar" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	BirthDate   *string `json:"birth_date" validate:"omitnil,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitnil,max=50"`
}

func (r *UpdateSingerRequest) normalize() {
	r.BirthDate = blankToNil(r.BirthDate)
}

// CreateAlbumRequest is the body of POST /api/albums.
type CreateAlbumRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	SingerID    int64   `json:"singer_id" validate:"required,gt=0"`
	Cover       *string `json:"cover" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	ReleaseDate *string `json:"release_date" validate:"omitnil,datetime=2006-01-02"`
}

func (r *CreateAlbumRequest) normalize() {
	r.ReleaseDate = blankToNil(r.ReleaseDate)
}

// UpdateAlbumRequest is the body of PUT /api/albums/{id}. An empty
// release_date keeps the stored value.
type UpdateAlbumRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=200"`
	SingerID    *int64  `json:"singer_id" validate:"omitnil,gt=0"`
	Cover       *string `json:"cover" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	ReleaseDate *string `json:"release_date" validate:"omitnil,datetime=2006-01-02"`
}

func (r *UpdateAlbumRequest) normalize() {
	r.ReleaseDate = blankToNil(r.ReleaseDate)
}

// CreateSongRequest is the body of POST /api/songs.
type CreateSongRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	SingerID    int64   `json:"singer_id" validate:"required,gt=0"`
	Duration    *int64  `json:"duration" validate:"omitnil,gte=0"`
	Lyrics      *string `json:"lyrics"`
	ReleaseDate *string `json:"release_date" validate:"omitnil,datetime=2006-01-02"`
	AlbumID     *int64  `json:"album_id" validate:"omitnil,gt=0"`
	GenreIDs    []int64 `json:"genre_ids"`
}

func (r *CreateSongRequest) normalize() {
	r.ReleaseDate = blankToNil(r.ReleaseDate)
}

// UpdateSongRequest is the body of PUT /api/songs/{id}. Duration and
// album_id may be cleared with null. A present genre_ids replaces the
// song's genre links.
type UpdateSongRequest struct {
	Name        *string                `json:"name" validate:"omitnil,notblank,max=200"`
	Duration    models.Optional[int64] `json:"duration" validate:"omitempty,gte=0"`
	Lyrics      *string                `json:"lyrics"`
	ReleaseDate *string                `json:"release_date" validate:"omitnil,datetime=2006-01-02"`
	SingerID    *int64                 `json:"singer_id" validate:"omitnil,gt=0"`
	AlbumID     models.Optional[int64] `json:"album_id" validate:"omitempty,gt=0"`
	GenreIDs    *[]int64               `json:"genre_ids"`
}

func (r *UpdateSongRequest) normalize() {
	r.ReleaseDate = blankToNil(r.ReleaseDate)
}

// SongGenreRequest is the body of POST /api/songs/{id}/genres.
type SongGenreRequest struct {
	GenreID int64 `json:"genre_id" validate:"required,gt=0"`
}

// CreateGenreRequest is the body of POST /api/genres.
type CreateGenreRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=50"`
	Description *string `json:"description"`
}

// UpdateGenreRequest is the body of PUT /api/genres/{id}.
type UpdateGenreRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=50"`
	Description *string `json:"description"`
}

// FavoriteRequest is the body of POST /api/favorites.
type FavoriteRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	SongID int64 `json:"song_id" validate:"required,gt=0"`
}

// CreatePlaylistRequest is the body of POST /api/playlists.
type CreatePlaylistRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	Description *string `json:"description"`
	Cover       *string `json:"cover" validate:"omitnil,max=255"`
	IsPublic    bool    `json:"is_public"`
}

// UpdatePlaylistRequest is the body of PUT /api/playlists/{id}.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description"`
	Cover       *string `json:"cover" validate:"omitnil,max=255"`
	IsPublic    *bool   `json:"is_public"`
}

// PlaylistSongRequest is the body of POST /api/playlists/{id}/songs.
type PlaylistSongRequest struct {
	SongID int64 `json:"song_id" validate:"required,gt=0"`
}

// RecommendationQuery holds the query parameters of GET /api/recommendations.
type RecommendationQuery struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
