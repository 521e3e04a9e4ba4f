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

const favoriteSelect = `
SELECT f.id, f.user_id, f.song_id, so.name AS song_name, si.name AS singer_name, al.name AS album_name,
	u.username, f.created_at
FROM favorites f
LEFT JOIN songs so ON so.id = f.song_id
LEFT JOIN singers si ON si.id = so.singer_id
LEFT JOIN albums al ON al.id = so.album_id
LEFT JOIN users u ON u.id = f.user_id`

// ListFavorites returns every favorite ordered by id.
func (db *DB) ListFavorites(ctx context.Context) (favs []models.Favorite, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "favorites", start, err) }(time.Now())

	favs = []models.Favorite{}
	if err = db.conn.SelectContext(ctx, &favs, favoriteSelect+` ORDER BY f.id`); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// ListUserFavorites returns the favorites of one user ordered by id. An
// unknown user has no favorites.
func (db *DB) ListUserFavorites(ctx context.Context, userID int64) (favs []models.Favorite, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "favorites", start, err) }(time.Now())

	favs = []models.Favorite{}
	if err = db.conn.SelectContext(ctx, &favs, favoriteSelect+` WHERE f.user_id = ? ORDER BY f.id`, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites of user %d: %w", userID, err)
	}
	return favs, nil
}

// CreateFavorite records that a user liked a song. A duplicate pair is a
// conflict, checked before the user and song are verified.
func (db *DB) CreateFavorite(ctx context.Context, userID, songID int64) (fav *models.Favorite, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "favorites", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		fav, err = createFavorite(ctx, tx, userID, songID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fav, nil
}

func createFavorite(ctx context.Context, tx *sqlx.Tx, userID, songID int64) (*models.Favorite, error) {
	n, err := countWhere(ctx, tx, "favorites", "user_id = ? AND song_id = ?", userID, songID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, conflict("Song is already in favorites")
	}

	if err := requireRow(ctx, tx, "users", userID, "User not found"); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, tx, "songs", songID, "Song not found"); err != nil {
		return nil, err
	}

	id, err := insertReturningID(ctx, tx,
		`INSERT INTO favorites (user_id, song_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		userID, songID, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}

	var f models.Favorite
	if err := tx.GetContext(ctx, &f, favoriteSelect+` WHERE f.id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to load favorite %d: %w", id, err)
	}
	return &f, nil
}

// FavoriteOwner returns the id of the user holding a favorite.
func (db *DB) FavoriteOwner(ctx context.Context, id int64) (userID int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "favorites", start, err) }(time.Now())

	return ownerOf(ctx, db.conn, "favorites", id, "Favorite not found")
}

// DeleteFavorite removes a favorite by id.
func (db *DB) DeleteFavorite(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "favorites", start, err) }(time.Now())

	return db.deleteOne(ctx, `DELETE FROM favorites WHERE id = ?`, "Favorite not found", id)
}

// DeleteUserSongFavorite removes the favorite of a user for a song.
func (db *DB) DeleteUserSongFavorite(ctx context.Context, userID, songID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "favorites", start, err) }(time.Now())

	return db.deleteOne(ctx, `DELETE FROM favorites WHERE user_id = ? AND song_id = ?`, "Favorite not found", userID, songID)
}

// deleteOne runs a delete and reports a not-found error when no row matched.
func (db *DB) deleteOne(ctx context.Context, query, missing string, args ...interface{}) error {
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound("%s", missing)
	}
	return nil
}
