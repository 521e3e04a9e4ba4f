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

const genreSelect = `
SELECT g.id, g.name, g.description, g.created_at,
	(SELECT COUNT(*) FROM song_genres sg WHERE sg.genre_id = g.id) AS songs_count
FROM genres g`

func getGenre(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Genre, error) {
	var g models.Genre
	err := sqlx.GetContext(ctx, q, &g, genreSelect+` WHERE g.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Genre not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre %d: %w", id, err)
	}
	return &g, nil
}

// ListGenres returns all genres ordered by id.
func (db *DB) ListGenres(ctx context.Context) (genres []models.Genre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "genres", start, err) }(time.Now())

	genres = []models.Genre{}
	if err = db.conn.SelectContext(ctx, &genres, genreSelect+` ORDER BY g.id`); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetGenre returns one genre by id.
func (db *DB) GetGenre(ctx context.Context, id int64) (g *models.Genre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "genres", start, err) }(time.Now())

	return getGenre(ctx, db.conn, id)
}

func checkGenreNameUnique(ctx context.Context, q sqlx.QueryerContext, name string, exceptID int64) error {
	n, err := countWhere(ctx, q, "genres", "name = ? AND id <> ?", name, exceptID)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Genre already exists")
	}
	return nil
}

// CreateGenre inserts a genre with an unused name.
func (db *DB) CreateGenre(ctx context.Context, in models.NewGenre) (g *models.Genre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "genres", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		g, err = createGenre(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func createGenre(ctx context.Context, tx *sqlx.Tx, in models.NewGenre) (*models.Genre, error) {
	if err := checkGenreNameUnique(ctx, tx, in.Name, 0); err != nil {
		return nil, err
	}

	id, err := insertReturningID(ctx, tx,
		`INSERT INTO genres (name, description, created_at) VALUES (?, ?, ?) RETURNING id`,
		in.Name, in.Description, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert genre: %w", err)
	}
	return getGenre(ctx, tx, id)
}

// UpdateGenre applies a partial update. Genres carry no updated_at.
func (db *DB) UpdateGenre(ctx context.Context, id int64, patch models.GenrePatch) (g *models.Genre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "genres", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getGenre(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != current.Name {
			if err := checkGenreNameUnique(ctx, tx, *patch.Name, id); err != nil {
				return err
			}
			current.Name = *patch.Name
		}
		if patch.Description != nil {
			current.Description = patch.Description
		}

		if _, err := tx.ExecContext(ctx, `UPDATE genres SET name = ?, description = ? WHERE id = ?`,
			current.Name, current.Description, id); err != nil {
			return fmt.Errorf("failed to update genre %d: %w", id, err)
		}

		g, err = getGenre(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGenre removes a genre and its song links.
func (db *DB) DeleteGenre(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "genres", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "genres", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Genre not found")
		}

		for _, stmt := range []string{
			`DELETE FROM song_genres WHERE genre_id = ?`,
			`DELETE FROM genres WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete genre %d: %w", id, err)
			}
		}
		return nil
	})
}
