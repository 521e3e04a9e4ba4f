// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DateLayout is the format of birth_date and release_date values.
const DateLayout = "2006-01-02"

// User is a catalog account. The password hash is never serialized.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Avatar         string    `db:"avatar" json:"avatar"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	FavoritesCount int64     `db:"favorites_count" json:"favorites_count"`
}

// Singer is a performing artist.
type Singer struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Avatar      *string   `db:"avatar" json:"avatar"`
	Description *string   `db:"description" json:"description"`
	BirthDate   *string   `db:"birth_date" json:"birth_date"`
	Nationality *string   `db:"nationality" json:"nationality"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	AlbumsCount int64     `db:"albums_count" json:"albums_count"`
	SongsCount  int64     `db:"songs_count" json:"songs_count"`
}

// Album belongs to exactly one singer.
type Album struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Cover       *string   `db:"cover" json:"cover"`
	Description *string   `db:"description" json:"description"`
	ReleaseDate *string   `db:"release_date" json:"release_date"`
	SingerID    int64     `db:"singer_id" json:"singer_id"`
	SingerName  *string   `db:"singer_name" json:"singer_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	SongsCount  int64     `db:"songs_count" json:"songs_count"`
}

// Song belongs to a singer and optionally an album. Genres holds the names
// of linked genres and is filled by a second query.
type Song struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Duration      *int64    `db:"duration" json:"duration"`
	Lyrics        *string   `db:"lyrics" json:"lyrics"`
	ReleaseDate   *string   `db:"release_date" json:"release_date"`
	SingerID      int64     `db:"singer_id" json:"singer_id"`
	SingerName    *string   `db:"singer_name" json:"singer_name"`
	AlbumID       *int64    `db:"album_id" json:"album_id"`
	AlbumName     *string   `db:"album_name" json:"album_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
	FavoriteCount int64     `db:"favorite_count" json:"favorite_count"`
	Genres        []string  `db:"-" json:"genres"`
}

// Genre is a musical style that songs can be linked to.
type Genre struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	SongsCount  int64     `db:"songs_count" json:"songs_count"`
}

// SongGenre links a song to a genre.
type SongGenre struct {
	ID        int64     `db:"id" json:"id"`
	SongID    int64     `db:"song_id" json:"song_id"`
	GenreID   int64     `db:"genre_id" json:"genre_id"`
	SongName  *string   `db:"song_name" json:"song_name"`
	GenreName *string   `db:"genre_name" json:"genre_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Favorite records that a user liked a song.
type Favorite struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	SongID     int64     `db:"song_id" json:"song_id"`
	SongName   *string   `db:"song_name" json:"song_name"`
	SingerName *string   `db:"singer_name" json:"singer_name"`
	AlbumName  *string   `db:"album_name" json:"album_name"`
	Username   *string   `db:"username" json:"username"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Playlist is an ordered, user-owned collection of songs.
type Playlist struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Cover       *string   `db:"cover" json:"cover"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Username    *string   `db:"username" json:"username"`
	IsPublic    bool      `db:"is_public" json:"is_public"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	SongsCount  int64     `db:"songs_count" json:"songs_count"`
}

// PlaylistSong is one entry of a playlist. Position is 1-based and
// serialized as "order".
type PlaylistSong struct {
	ID         int64     `db:"id" json:"id"`
	PlaylistID int64     `db:"playlist_id" json:"playlist_id"`
	SongID     int64     `db:"song_id" json:"song_id"`
	Position   int64     `db:"position" json:"order"`
	SongName   *string   `db:"song_name" json:"song_name"`
	SingerName *string   `db:"singer_name" json:"singer_name"`
	AddedAt    time.Time `db:"added_at" json:"added_at"`
}
