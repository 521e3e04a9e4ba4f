// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package models

// Store inputs. Create types carry every column the caller may set; patch
// types use nil pointers for fields that keep their stored value.

// NewUser holds the columns of a user insert. The password is already hashed.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Avatar       string
	Role         string
}

// UserPatch holds a partial user update.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

// NewSinger holds the columns of a singer insert.
type NewSinger struct {
	Name        string
	Avatar      *string
	Description *string
	BirthDate   *string
	Nationality *string
}

// SingerPatch holds a partial singer update.
type SingerPatch struct {
	Name        *string
	Avatar      *string
	Description *string
	BirthDate   *string
	Nationality *string
}

// NewAlbum holds the columns of an album insert.
type NewAlbum struct {
	Name        string
	Cover       *string
	Description *string
	ReleaseDate *string
	SingerID    int64
}

// AlbumPatch holds a partial album update.
type AlbumPatch struct {
	Name        *string
	Cover       *string
	Description *string
	ReleaseDate *string
	SingerID    *int64
}

// NewSong holds the columns of a song insert plus the genres to link.
// Genre ids that do not exist are skipped.
type NewSong struct {
	Name        string
	Duration    *int64
	Lyrics      *string
	ReleaseDate *string
	SingerID    int64
	AlbumID     *int64
	GenreIDs    []int64
}

// SongPatch holds a partial song update. Duration and AlbumID may be
// cleared with an explicit null. A non-nil GenreIDs replaces the song's
// genre links, an empty slice removes them all.
type SongPatch struct {
	Name        *string
	Duration    Optional[int64]
	Lyrics      *string
	ReleaseDate *string
	SingerID    *int64
	AlbumID     Optional[int64]
	GenreIDs    *[]int64
}

// NewGenre holds the columns of a genre insert.
type NewGenre struct {
	Name        string
	Description *string
}

// GenrePatch holds a partial genre update.
type GenrePatch struct {
	Name        *string
	Description *string
}

// NewPlaylist holds the columns of a playlist insert.
type NewPlaylist struct {
	Name        string
	Description *string
	Cover       *string
	UserID      int64
	IsPublic    bool
}

// PlaylistPatch holds a partial playlist update.
type PlaylistPatch struct {
	Name        *string
	Description *string
	Cover       *string
	IsPublic    *bool
}
