// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/musicdb/internal/models"
)

const albumSelect = `
SELECT a.id, a.name, a.cover, a.description, a.release_date, a.singer_id, s.name AS singer_name,
	a.created_at, a.updated_at,
	(SELECT COUNT(*) FROM songs so WHERE so.album_id = a.id) AS songs_count
FROM albums a
LEFT JOIN singers s ON s.id = a.singer_id`

func getAlbum(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Album, error) {
	var a models.Album
	err := sqlx.GetContext(ctx, q, &a, albumSelect+` WHERE a.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Album not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album %d: %w", id, err)
	}
	return &a, nil
}

// ListAlbums returns all albums ordered by id.
func (db *DB) ListAlbums(ctx context.Context) (albums []models.Album, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "albums", start, err) }(time.Now())

	albums = []models.Album{}
	if err = db.conn.SelectContext(ctx, &albums, albumSelect+` ORDER BY a.id`); err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

// GetAlbum returns one album by id.
func (db *DB) GetAlbum(ctx context.Context, id int64) (a *models.Album, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "albums", start, err) }(time.Now())

	return getAlbum(ctx, db.conn, id)
}

// CreateAlbum inserts an album. The singer must exist.
func (db *DB) CreateAlbum(ctx context.Context, in models.NewAlbum) (a *models.Album, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "albums", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		a, err = createAlbum(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func createAlbum(ctx context.Context, tx *sqlx.Tx, in models.NewAlbum) (*models.Album, error) {
	if err := requireRow(ctx, tx, "singers", in.SingerID, "Singer not found"); err != nil {
		return nil, err
	}

	now := nowUTC()
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO albums (name, cover, description, release_date, singer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Name, in.Cover, in.Description, in.ReleaseDate, in.SingerID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert album: %w", err)
	}
	return getAlbum(ctx, tx, id)
}

// UpdateAlbum applies a partial update and refreshes updated_at.
func (db *DB) UpdateAlbum(ctx context.Context, id int64, patch models.AlbumPatch) (a *models.Album, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "albums", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getAlbum(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			current.Name = *patch.Name
		}
		if patch.Cover != nil {
			current.Cover = patch.Cover
		}
		if patch.Description != nil {
			current.Description = patch.Description
		}
		if patch.ReleaseDate != nil {
			current.ReleaseDate = patch.ReleaseDate
		}
		if patch.SingerID != nil && *patch.SingerID != current.SingerID {
			if err := requireRow(ctx, tx, "singers", *patch.SingerID, "Singer not found"); err != nil {
				return err
			}
			current.SingerID = *patch.SingerID
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE albums SET name = ?, cover = ?, description = ?, release_date = ?, singer_id = ?, updated_at = ?
			WHERE id = ?`,
			current.Name, current.Cover, current.Description, current.ReleaseDate, current.SingerID, nowUTC(), id); err != nil {
			return fmt.Errorf("failed to update album %d: %w", id, err)
		}

		a, err = getAlbum(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAlbum removes an album, its songs and everything that references
// those songs.
func (db *DB) DeleteAlbum(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "albums", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "albums", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Album not found")
		}

		var songIDs []int64
		if err := tx.SelectContext(ctx, &songIDs, `SELECT id FROM songs WHERE album_id = ?`, id); err != nil {
			return fmt.Errorf("failed to collect songs of album %d: %w", id, err)
		}
		if err := deleteSongs(ctx, tx, songIDs); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete album %d: %w", id, err)
		}
		return nil
	})
}

// requireRow returns an invalid-reference error with msg when the row is
// missing.
func requireRow(ctx context.Context, q sqlx.QueryerContext, table string, id int64, msg string) error {
	ok, err := rowExists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidRef("%s", msg)
	}
	return nil
}
