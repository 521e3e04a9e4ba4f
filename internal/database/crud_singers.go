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

const singerSelect = `
SELECT s.id, s.name, s.avatar, s.description, s.birth_date, s.nationality, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM albums a WHERE a.singer_id = s.id) AS albums_count,
	(SELECT COUNT(*) FROM songs so WHERE so.singer_id = s.id) AS songs_count
FROM singers s`

func getSinger(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Singer, error) {
	var s models.Singer
	err := sqlx.GetContext(ctx, q, &s, singerSelect+` WHERE s.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Singer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get singer %d: %w", id, err)
	}
	return &s, nil
}

// ListSingers returns all singers ordered by id.
func (db *DB) ListSingers(ctx context.Context) (singers []models.Singer, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "singers", start, err) }(time.Now())

	singers = []models.Singer{}
	if err = db.conn.SelectContext(ctx, &singers, singerSelect+` ORDER BY s.id`); err != nil {
		return nil, fmt.Errorf("failed to list singers: %w", err)
	}
	return singers, nil
}

// GetSinger returns one singer by id.
func (db *DB) GetSinger(ctx context.Context, id int64) (s *models.Singer, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "singers", start, err) }(time.Now())

	return getSinger(ctx, db.conn, id)
}

// CreateSinger inserts a singer.
func (db *DB) CreateSinger(ctx context.Context, in models.NewSinger) (s *models.Singer, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "singers", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		s, err = createSinger(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func createSinger(ctx context.Context, tx *sqlx.Tx, in models.NewSinger) (*models.Singer, error) {
	now := nowUTC()
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO singers (name, avatar, description, birth_date, nationality, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Name, in.Avatar, in.Description, in.BirthDate, in.Nationality, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert singer: %w", err)
	}
	return getSinger(ctx, tx, id)
}

// UpdateSinger applies a partial update and refreshes updated_at.
func (db *DB) UpdateSinger(ctx context.Context, id int64, patch models.SingerPatch) (s *models.Singer, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "singers", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getSinger(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			current.Name = *patch.Name
		}
		if patch.Avatar != nil {
			current.Avatar = patch.Avatar
		}
		if patch.Description != nil {
			current.Description = patch.Description
		}
		if patch.BirthDate != nil {
			current.BirthDate = patch.BirthDate
		}
		if patch.Nationality != nil {
			current.Nationality = patch.Nationality
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE singers SET name = ?, avatar = ?, description = ?, birth_date = ?, nationality = ?, updated_at = ?
			WHERE id = ?`,
			current.Name, current.Avatar, current.Description, current.BirthDate, current.Nationality, nowUTC(), id); err != nil {
			return fmt.Errorf("failed to update singer %d: %w", id, err)
		}

		s, err = getSinger(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSinger removes a singer, their albums, every song by them or on
// their albums, and everything that references those songs.
func (db *DB) DeleteSinger(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "singers", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "singers", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Singer not found")
		}

		var songIDs []int64
		if err := tx.SelectContext(ctx, &songIDs, `
			SELECT id FROM songs
			WHERE singer_id = ? OR album_id IN (SELECT id FROM albums WHERE singer_id = ?)`, id, id); err != nil {
			return fmt.Errorf("failed to collect songs of singer %d: %w", id, err)
		}

		if err := deleteSongs(ctx, tx, songIDs); err != nil {
			return err
		}

		for _, stmt := range []string{
			`DELETE FROM albums WHERE singer_id = ?`,
			`DELETE FROM singers WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete singer %d: %w", id, err)
			}
		}
		return nil
	})
}
