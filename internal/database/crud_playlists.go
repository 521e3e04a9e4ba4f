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

const playlistSelect = `
SELECT p.id, p.name, p.description, p.cover, p.user_id, u.username, p.is_public, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id) AS songs_count
FROM playlists p
LEFT JOIN users u ON u.id = p.user_id`

// position is a keyword in DuckDB and is always table-qualified.
const playlistSongSelect = `
SELECT ps.id, ps.playlist_id, ps.song_id, ps.position, so.name AS song_name, si.name AS singer_name, ps.added_at
FROM playlist_songs ps
LEFT JOIN songs so ON so.id = ps.song_id
LEFT JOIN singers si ON si.id = so.singer_id`

func getPlaylist(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Playlist, error) {
	var p models.Playlist
	err := sqlx.GetContext(ctx, q, &p, playlistSelect+` WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Playlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist %d: %w", id, err)
	}
	return &p, nil
}

// ListPlaylists returns all playlists ordered by id.
func (db *DB) ListPlaylists(ctx context.Context) (playlists []models.Playlist, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "playlists", start, err) }(time.Now())

	playlists = []models.Playlist{}
	if err = db.conn.SelectContext(ctx, &playlists, playlistSelect+` ORDER BY p.id`); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// ListUserPlaylists returns the playlists owned by a user.
func (db *DB) ListUserPlaylists(ctx context.Context, userID int64) (playlists []models.Playlist, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "playlists", start, err) }(time.Now())

	playlists = []models.Playlist{}
	if err = db.conn.SelectContext(ctx, &playlists, playlistSelect+` WHERE p.user_id = ? ORDER BY p.id`, userID); err != nil {
		return nil, fmt.Errorf("failed to list playlists of user %d: %w", userID, err)
	}
	return playlists, nil
}

// GetPlaylist returns one playlist by id.
func (db *DB) GetPlaylist(ctx context.Context, id int64) (p *models.Playlist, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "playlists", start, err) }(time.Now())

	return getPlaylist(ctx, db.conn, id)
}

// CreatePlaylist inserts a playlist owned by an existing user.
func (db *DB) CreatePlaylist(ctx context.Context, in models.NewPlaylist) (p *models.Playlist, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "playlists", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		p, err = createPlaylist(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func createPlaylist(ctx context.Context, tx *sqlx.Tx, in models.NewPlaylist) (*models.Playlist, error) {
	if err := requireRow(ctx, tx, "users", in.UserID, "User not found"); err != nil {
		return nil, err
	}

	now := nowUTC()
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO playlists (name, description, cover, user_id, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Name, in.Description, in.Cover, in.UserID, in.IsPublic, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert playlist: %w", err)
	}
	return getPlaylist(ctx, tx, id)
}

// PlaylistOwner returns the id of the user owning a playlist.
func (db *DB) PlaylistOwner(ctx context.Context, id int64) (userID int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "playlists", start, err) }(time.Now())

	return ownerOf(ctx, db.conn, "playlists", id, "Playlist not found")
}

// UpdatePlaylist applies a partial update and refreshes updated_at.
func (db *DB) UpdatePlaylist(ctx context.Context, id int64, patch models.PlaylistPatch) (p *models.Playlist, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "playlists", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getPlaylist(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			current.Name = *patch.Name
		}
		if patch.Description != nil {
			current.Description = patch.Description
		}
		if patch.Cover != nil {
			current.Cover = patch.Cover
		}
		if patch.IsPublic != nil {
			current.IsPublic = *patch.IsPublic
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE playlists SET name = ?, description = ?, cover = ?, is_public = ?, updated_at = ?
			WHERE id = ?`,
			current.Name, current.Description, current.Cover, current.IsPublic, nowUTC(), id); err != nil {
			return fmt.Errorf("failed to update playlist %d: %w", id, err)
		}

		p, err = getPlaylist(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePlaylist removes a playlist and its entries.
func (db *DB) DeletePlaylist(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "playlists", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "playlists", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Playlist not found")
		}

		for _, stmt := range []string{
			`DELETE FROM playlist_songs WHERE playlist_id = ?`,
			`DELETE FROM playlists WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete playlist %d: %w", id, err)
			}
		}
		return nil
	})
}

// ListPlaylistSongs returns the entries of a playlist by ascending order.
func (db *DB) ListPlaylistSongs(ctx context.Context, playlistID int64) (entries []models.PlaylistSong, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "playlist_songs", start, err) }(time.Now())

	entries = []models.PlaylistSong{}
	if err = db.conn.SelectContext(ctx, &entries,
		playlistSongSelect+` WHERE ps.playlist_id = ? ORDER BY ps.position, ps.id`, playlistID); err != nil {
		return nil, fmt.Errorf("failed to list songs of playlist %d: %w", playlistID, err)
	}
	return entries, nil
}

// AddPlaylistSong appends a song to a playlist at max(order)+1. A missing
// song is an invalid reference, a missing playlist is not found and a song
// already in the playlist is a conflict, checked in that order.
func (db *DB) AddPlaylistSong(ctx context.Context, playlistID, songID int64) (entry *models.PlaylistSong, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "playlist_songs", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		entry, err = addPlaylistSong(ctx, tx, playlistID, songID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func addPlaylistSong(ctx context.Context, tx *sqlx.Tx, playlistID, songID int64) (*models.PlaylistSong, error) {
	if err := requireRow(ctx, tx, "songs", songID, "Song not found"); err != nil {
		return nil, err
	}

	ok, err := rowExists(ctx, tx, "playlists", playlistID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("Playlist not found")
	}

	n, err := countWhere(ctx, tx, "playlist_songs", "playlist_id = ? AND song_id = ?", playlistID, songID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, conflict("Song is already in the playlist")
	}

	var maxPos int64
	if err := tx.GetContext(ctx, &maxPos,
		`SELECT COALESCE(MAX(ps.position), 0) FROM playlist_songs ps WHERE ps.playlist_id = ?`, playlistID); err != nil {
		return nil, fmt.Errorf("failed to read playlist order: %w", err)
	}

	id, err := insertReturningID(ctx, tx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position, added_at)
		VALUES (?, ?, ?, ?) RETURNING id`,
		playlistID, songID, maxPos+1, nowUTC())
	if err != nil {
		return nil, fmt.Errorf("failed to add song %d to playlist %d: %w", songID, playlistID, err)
	}

	var ps models.PlaylistSong
	if err := tx.GetContext(ctx, &ps, playlistSongSelect+` WHERE ps.id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to load playlist entry %d: %w", id, err)
	}
	return &ps, nil
}

// RemovePlaylistSong removes a song from a playlist.
func (db *DB) RemovePlaylistSong(ctx context.Context, playlistID, songID int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "playlist_songs", start, err) }(time.Now())

	return db.deleteOne(ctx, `DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
		"Song is not in the playlist", playlistID, songID)
}
