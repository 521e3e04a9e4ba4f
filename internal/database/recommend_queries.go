// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/musicdb/internal/models"
)

// Queries backing the recommendation engine. Song id lists are ordered so
// that results are stable between calls.

// FavoriteSongIDs returns the ids of songs a user has favorited.
func (db *DB) FavoriteSongIDs(ctx context.Context, userID int64) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "favorites", start, err) }(time.Now())

	ids = []int64{}
	if err = db.conn.SelectContext(ctx, &ids,
		`SELECT song_id FROM favorites WHERE user_id = ? ORDER BY id`, userID); err != nil {
		return nil, fmt.Errorf("failed to load favorites of user %d: %w", userID, err)
	}
	return ids, nil
}

// GenreAffinity counts, for each genre, how many of the user's favorited
// songs are linked to it, highest first.
func (db *DB) GenreAffinity(ctx context.Context, userID int64) (rows []models.GenreAffinity, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "song_genres", start, err) }(time.Now())

	rows = []models.GenreAffinity{}
	err = db.conn.SelectContext(ctx, &rows, `
		SELECT g.id AS genre_id, g.name AS genre_name, COUNT(sg.id) AS genre_count
		FROM favorites f
		JOIN song_genres sg ON sg.song_id = f.song_id
		JOIN genres g ON g.id = sg.genre_id
		WHERE f.user_id = ?
		GROUP BY g.id, g.name
		ORDER BY genre_count DESC, g.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute genre affinity: %w", err)
	}
	return rows, nil
}

// SingerAffinity ranks singers by how many of their songs the user has
// favorited.
func (db *DB) SingerAffinity(ctx context.Context, userID int64, limit int) (rows []models.SingerAffinity, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "favorites", start, err) }(time.Now())

	rows = []models.SingerAffinity{}
	err = db.conn.SelectContext(ctx, &rows, `
		SELECT si.id AS singer_id, si.name AS singer_name, COUNT(f.id) AS favorite_count
		FROM favorites f
		JOIN songs so ON so.id = f.song_id
		JOIN singers si ON si.id = so.singer_id
		WHERE f.user_id = ?
		GROUP BY si.id, si.name
		ORDER BY favorite_count DESC, si.id ASC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute singer affinity: %w", err)
	}
	return rows, nil
}

// SongIDsByGenre returns up to limit songs linked to a genre, skipping
// excluded ids.
func (db *DB) SongIDsByGenre(ctx context.Context, genreID int64, exclude []int64, limit int) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "song_genres", start, err) }(time.Now())

	return db.selectIDs(ctx,
		`SELECT sg.song_id FROM song_genres sg WHERE sg.genre_id = ?`, []interface{}{genreID},
		"sg.song_id", exclude, `ORDER BY sg.song_id ASC`, limit)
}

// SongIDsBySinger returns up to limit songs of a singer, skipping excluded
// ids.
func (db *DB) SongIDsBySinger(ctx context.Context, singerID int64, exclude []int64, limit int) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	return db.selectIDs(ctx,
		`SELECT so.id FROM songs so WHERE so.singer_id = ?`, []interface{}{singerID},
		"so.id", exclude, `ORDER BY so.id ASC`, limit)
}

// NewestSongIDs returns up to limit of the most recently created songs,
// skipping excluded ids.
func (db *DB) NewestSongIDs(ctx context.Context, exclude []int64, limit int) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	return db.selectIDs(ctx,
		`SELECT so.id FROM songs so WHERE 1 = 1`, nil,
		"so.id", exclude, `ORDER BY so.created_at DESC, so.id DESC`, limit)
}

// NewestSongs returns the most recently created songs.
func (db *DB) NewestSongs(ctx context.Context, limit int) (songs []models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	songs, err = selectSongs(ctx, db.conn, songSelect+` ORDER BY so.created_at DESC, so.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newest songs: %w", err)
	}
	return songs, nil
}

// selectIDs appends an optional NOT IN filter on column, then order and
// limit, to base and returns the selected ids.
func (db *DB) selectIDs(ctx context.Context, base string, args []interface{}, column string, exclude []int64, order string, limit int) ([]int64, error) {
	ids := []int64{}
	if limit <= 0 {
		return ids, nil
	}

	query := base
	if len(exclude) > 0 {
		query += ` AND ` + column + ` NOT IN (?)`
		args = append(args, exclude)
	}
	query += ` ` + order + ` LIMIT ?`
	args = append(args, limit)

	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand query: %w", err)
	}
	if err := db.conn.SelectContext(ctx, &ids, db.conn.Rebind(expanded), expandedArgs...); err != nil {
		return nil, fmt.Errorf("failed to select song ids: %w", err)
	}
	return ids, nil
}
