// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package models

// StatsOverview is returned by GET /api/stats/overview.
type StatsOverview struct {
	BasicStats BasicStats `json:"basic_stats"`
	TodayStats TodayStats `json:"today_stats"`
}

// BasicStats holds total row counts per entity.
type BasicStats struct {
	Users     int64 `json:"users"`
	Singers   int64 `json:"singers"`
	Albums    int64 `json:"albums"`
	Songs     int64 `json:"songs"`
	Favorites int64 `json:"favorites"`
	Playlists int64 `json:"playlists"`
}

// TodayStats holds rows created since UTC midnight.
type TodayStats struct {
	Users     int64 `json:"users"`
	Songs     int64 `json:"songs"`
	Favorites int64 `json:"favorites"`
}

// TopSinger ranks a singer by favorites on their songs.
type TopSinger struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Avatar        *string `db:"avatar" json:"avatar"`
	FavoriteCount int64   `db:"favorite_count" json:"favorite_count"`
}

// PopularSinger is a TopSinger that also carries nationality.
type PopularSinger struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Avatar        *string `db:"avatar" json:"avatar"`
	Nationality   *string `db:"nationality" json:"nationality"`
	FavoriteCount int64   `db:"favorite_count" json:"favorite_count"`
}

// TopSong ranks a song by favorite count.
type TopSong struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Duration      *int64  `db:"duration" json:"duration"`
	SingerName    *string `db:"singer_name" json:"singer_name"`
	AlbumName     *string `db:"album_name" json:"album_name"`
	FavoriteCount int64   `db:"favorite_count" json:"favorite_count"`
}

// GenreCount is one row of the genre distribution.
type GenreCount struct {
	Name      string `db:"name" json:"name"`
	SongCount int64  `db:"song_count" json:"song_count"`
}

// DailyActivity counts favorites created on one UTC day.
type DailyActivity struct {
	Date      string `json:"date"`
	Favorites int64  `json:"favorites"`
}

// NationalityCount is one row of the singer nationality distribution.
type NationalityCount struct {
	Nationality string `db:"nationality" json:"nationality"`
	SingerCount int64  `db:"singer_count" json:"singer_count"`
}

// GenreAffinity is how many of a user's favorited songs are linked to a genre.
type GenreAffinity struct {
	GenreID   int64  `db:"genre_id" json:"genre_id"`
	GenreName string `db:"genre_name" json:"genre_name"`
	Count     int64  `db:"genre_count" json:"genre_count"`
}

// SingerAffinity is how many songs of a singer a user has favorited.
type SingerAffinity struct {
	SingerID   int64  `db:"singer_id" json:"singer_id"`
	SingerName string `db:"singer_name" json:"singer_name"`
	Count      int64  `db:"favorite_count" json:"favorite_count"`
}
