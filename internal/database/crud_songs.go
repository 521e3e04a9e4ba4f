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

const songSelect = `
SELECT so.id, so.name, so.duration, so.lyrics, so.release_date, so.singer_id, si.name AS singer_name,
	so.album_id, al.name AS album_name, so.created_at, so.updated_at,
	(SELECT COUNT(*) FROM favorites f WHERE f.song_id = so.id) AS favorite_count
FROM songs so
LEFT JOIN singers si ON si.id = so.singer_id
LEFT JOIN albums al ON al.id = so.album_id`

// selectSongs runs a song projection query and attaches genre names.
func selectSongs(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) ([]models.Song, error) {
	songs := []models.Song{}
	if err := sqlx.SelectContext(ctx, q, &songs, query, args...); err != nil {
		return nil, err
	}
	if err := attachGenres(ctx, q, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// attachGenres fills Song.Genres with linked genre names in link order.
func attachGenres(ctx context.Context, q sqlx.QueryerContext, songs []models.Song) error {
	if len(songs) == 0 {
		return nil
	}

	ids := make([]int64, len(songs))
	index := make(map[int64]int, len(songs))
	for i := range songs {
		songs[i].Genres = []string{}
		ids[i] = songs[i].ID
		index[songs[i].ID] = i
	}

	query, args, err := sqlx.In(`
		SELECT sg.song_id, g.name
		FROM song_genres sg
		JOIN genres g ON g.id = sg.genre_id
		WHERE sg.song_id IN (?)
		ORDER BY sg.id`, ids)
	if err != nil {
		return fmt.Errorf("failed to expand genre query: %w", err)
	}

	var rows []struct {
		SongID int64  `db:"song_id"`
		Name   string `db:"name"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return fmt.Errorf("failed to load song genres: %w", err)
	}

	for _, row := range rows {
		if i, ok := index[row.SongID]; ok {
			songs[i].Genres = append(songs[i].Genres, row.Name)
		}
	}
	return nil
}

func getSong(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Song, error) {
	songs, err := selectSongs(ctx, q, songSelect+` WHERE so.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get song %d: %w", id, err)
	}
	if len(songs) == 0 {
		return nil, notFound("Song not found")
	}
	return &songs[0], nil
}

// ListSongs returns all songs ordered by id.
func (db *DB) ListSongs(ctx context.Context) (songs []models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	songs, err = selectSongs(ctx, db.conn, songSelect+` ORDER BY so.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// GetSong returns one song by id.
func (db *DB) GetSong(ctx context.Context, id int64) (s *models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	return getSong(ctx, db.conn, id)
}

// GetSongsByIDs returns the songs with the given ids in the order given.
// Unknown ids are skipped.
func (db *DB) GetSongsByIDs(ctx context.Context, ids []int64) (songs []models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "songs", start, err) }(time.Now())

	if len(ids) == 0 {
		return []models.Song{}, nil
	}

	query, args, err := sqlx.In(songSelect+` WHERE so.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to expand song query: %w", err)
	}
	found, err := selectSongs(ctx, db.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get songs by id: %w", err)
	}

	byID := make(map[int64]models.Song, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	songs = make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			songs = append(songs, s)
		}
	}
	return songs, nil
}

// CreateSong inserts a song and links the named genres that exist. The
// name must be unused, the singer must exist and so must the album when set.
func (db *DB) CreateSong(ctx context.Context, in models.NewSong) (s *models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "songs", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		s, err = createSong(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func createSong(ctx context.Context, tx *sqlx.Tx, in models.NewSong) (*models.Song, error) {
	if err := checkSongNameUnique(ctx, tx, in.Name, 0); err != nil {
		return nil, err
	}
	if err := requireRow(ctx, tx, "singers", in.SingerID, "Singer not found"); err != nil {
		return nil, err
	}
	if in.AlbumID != nil {
		if err := requireRow(ctx, tx, "albums", *in.AlbumID, "Album not found"); err != nil {
			return nil, err
		}
	}

	now := nowUTC()
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO songs (name, duration, lyrics, release_date, singer_id, album_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Name, in.Duration, in.Lyrics, in.ReleaseDate, in.SingerID, in.AlbumID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert song: %w", err)
	}

	if err := replaceSongGenres(ctx, tx, id, in.GenreIDs); err != nil {
		return nil, err
	}
	return getSong(ctx, tx, id)
}

func checkSongNameUnique(ctx context.Context, q sqlx.QueryerContext, name string, exceptID int64) error {
	n, err := countWhere(ctx, q, "songs", "name = ? AND id <> ?", name, exceptID)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Song already exists")
	}
	return nil
}

// UpdateSong applies a partial update and refreshes updated_at. When
// patch.GenreIDs is set the genre links are replaced.
func (db *DB) UpdateSong(ctx context.Context, id int64, patch models.SongPatch) (s *models.Song, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "songs", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getSong(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != current.Name {
			if err := checkSongNameUnique(ctx, tx, *patch.Name, id); err != nil {
				return err
			}
			current.Name = *patch.Name
		}
		current.Duration = patch.Duration.Apply(current.Duration)
		if patch.Lyrics != nil {
			current.Lyrics = patch.Lyrics
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
		if patch.AlbumID.Set {
			if patch.AlbumID.Value != nil {
				if err := requireRow(ctx, tx, "albums", *patch.AlbumID.Value, "Album not found"); err != nil {
					return err
				}
			}
			current.AlbumID = patch.AlbumID.Value
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE songs SET name = ?, duration = ?, lyrics = ?, release_date = ?, singer_id = ?, album_id = ?, updated_at = ?
			WHERE id = ?`,
			current.Name, current.Duration, current.Lyrics, current.ReleaseDate, current.SingerID, current.AlbumID, nowUTC(), id); err != nil {
			return fmt.Errorf("failed to update song %d: %w", id, err)
		}

		if patch.GenreIDs != nil {
			if err := replaceSongGenres(ctx, tx, id, *patch.GenreIDs); err != nil {
				return err
			}
		}

		s, err = getSong(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// replaceSongGenres makes the song's links equal the existing genres in
// genreIDs. Links are diffed rather than rewritten.
func replaceSongGenres(ctx context.Context, tx *sqlx.Tx, songID int64, genreIDs []int64) error {
	wanted := make(map[int64]bool)
	if len(genreIDs) > 0 {
		query, args, err := sqlx.In(`SELECT id FROM genres WHERE id IN (?)`, genreIDs)
		if err != nil {
			return fmt.Errorf("failed to expand genre query: %w", err)
		}
		var existing []int64
		if err := tx.SelectContext(ctx, &existing, query, args...); err != nil {
			return fmt.Errorf("failed to look up genres: %w", err)
		}
		for _, id := range existing {
			wanted[id] = true
		}
	}

	var linked []int64
	if err := tx.SelectContext(ctx, &linked, `SELECT genre_id FROM song_genres WHERE song_id = ?`, songID); err != nil {
		return fmt.Errorf("failed to load genre links of song %d: %w", songID, err)
	}

	have := make(map[int64]bool, len(linked))
	var stale []int64
	for _, id := range linked {
		have[id] = true
		if !wanted[id] {
			stale = append(stale, id)
		}
	}

	if len(stale) > 0 {
		if err := execIn(ctx, tx, `DELETE FROM song_genres WHERE song_id = ? AND genre_id IN (?)`, songID, stale); err != nil {
			return fmt.Errorf("failed to unlink genres of song %d: %w", songID, err)
		}
	}

	// Insert in request order so genre names keep the caller's ordering.
	now := nowUTC()
	for _, id := range genreIDs {
		if !wanted[id] || have[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO song_genres (song_id, genre_id, created_at) VALUES (?, ?, ?)`, songID, id, now); err != nil {
			return fmt.Errorf("failed to link genre %d to song %d: %w", id, songID, err)
		}
		have[id] = true
	}
	return nil
}

// DeleteSong removes a song with its favorites, genre links and playlist
// entries.
func (db *DB) DeleteSong(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "songs", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "songs", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Song not found")
		}
		return deleteSongs(ctx, tx, []int64{id})
	})
}

// deleteSongs removes songs and every row that references them.
func deleteSongs(ctx context.Context, tx *sqlx.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	for _, stmt := range []string{
		`DELETE FROM favorites WHERE song_id IN (?)`,
		`DELETE FROM song_genres WHERE song_id IN (?)`,
		`DELETE FROM playlist_songs WHERE song_id IN (?)`,
		`DELETE FROM songs WHERE id IN (?)`,
	} {
		if err := execIn(ctx, tx, stmt, ids); err != nil {
			return fmt.Errorf("failed to delete songs: %w", err)
		}
	}
	return nil
}

const songGenreSelect = `
SELECT sg.id, sg.song_id, sg.genre_id, so.name AS song_name, g.name AS genre_name, sg.created_at
FROM song_genres sg
LEFT JOIN songs so ON so.id = sg.song_id
LEFT JOIN genres g ON g.id = sg.genre_id`

// ListSongGenres returns the genre links of a song.
func (db *DB) ListSongGenres(ctx context.Context, songID int64) (links []models.SongGenre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "song_genres", start, err) }(time.Now())

	links = []models.SongGenre{}
	if err = db.conn.SelectContext(ctx, &links, songGenreSelect+` WHERE sg.song_id = ? ORDER BY sg.id`, songID); err != nil {
		return nil, fmt.Errorf("failed to list genres of song %d: %w", songID, err)
	}
	return links, nil
}

// AddSongGenre links a genre to a song. A missing song or genre is a
// not-found error and an existing link is a conflict.
func (db *DB) AddSongGenre(ctx context.Context, songID, genreID int64) (link *models.SongGenre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "song_genres", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, check := range []struct {
			table string
			id    int64
			msg   string
		}{
			{"songs", songID, "Song not found"},
			{"genres", genreID, "Genre not found"},
		} {
			ok, err := rowExists(ctx, tx, check.table, check.id)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("%s", check.msg)
			}
		}

		n, err := countWhere(ctx, tx, "song_genres", "song_id = ? AND genre_id = ?", songID, genreID)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("Song is already linked to this genre")
		}

		id, err := insertReturningID(ctx, tx,
			`INSERT INTO song_genres (song_id, genre_id, created_at) VALUES (?, ?, ?) RETURNING id`,
			songID, genreID, nowUTC())
		if err != nil {
			return fmt.Errorf("failed to link genre %d to song %d: %w", genreID, songID, err)
		}

		var sg models.SongGenre
		if err := tx.GetContext(ctx, &sg, songGenreSelect+` WHERE sg.id = ?`, id); err != nil {
			return fmt.Errorf("failed to load song genre %d: %w", id, err)
		}
		link = &sg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}
