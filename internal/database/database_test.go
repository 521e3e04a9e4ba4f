// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/models"
)

// newTestDB opens an isolated store for the given driver. DuckDB runs in
// memory and SQLite uses a file under t.TempDir.
func newTestDB(t *testing.T, driver string) *DB {
	t.Helper()

	path := MemoryPath
	if driver == config.DriverSQLite {
		path = filepath.Join(t.TempDir(), "musicdb.sqlite")
	}

	db, err := New(&config.DatabaseConfig{Driver: driver, Path: path, Threads: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// forEachDriver runs fn against a fresh store per driver.
func forEachDriver(t *testing.T, fn func(t *testing.T, db *DB)) {
	t.Helper()
	for _, driver := range []string{config.DriverDuckDB, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			fn(t, newTestDB(t, driver))
		})
	}
}

func plainHash(password string) (string, error) {
	return "hashed:" + password, nil
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// fixture is a small catalog shared by store tests.
type fixture struct {
	user    *models.User
	other   *models.User
	singer  *models.Singer
	singer2 *models.Singer
	album   *models.Album
	pop     *models.Genre
	rock    *models.Genre
	song    *models.Song
	song2   *models.Song
}

func newFixture(t *testing.T, db *DB) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{}
	var err error

	f.user, err = db.CreateUser(ctx, models.NewUser{Username: "zhangsan", Email: "zs@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	f.other, err = db.CreateUser(ctx, models.NewUser{Username: "lisi", Email: "ls@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	f.singer, err = db.CreateSinger(ctx, models.NewSinger{Name: "Jay Chou", Nationality: strPtr("China")})
	require.NoError(t, err)
	f.singer2, err = db.CreateSinger(ctx, models.NewSinger{Name: "JJ Lin"})
	require.NoError(t, err)

	f.album, err = db.CreateAlbum(ctx, models.NewAlbum{Name: "Fantasy", SingerID: f.singer.ID})
	require.NoError(t, err)

	f.pop, err = db.CreateGenre(ctx, models.NewGenre{Name: "Pop"})
	require.NoError(t, err)
	f.rock, err = db.CreateGenre(ctx, models.NewGenre{Name: "Rock"})
	require.NoError(t, err)

	f.song, err = db.CreateSong(ctx, models.NewSong{
		Name: "Simple Love", SingerID: f.singer.ID, AlbumID: &f.album.ID,
		Duration: int64Ptr(270), GenreIDs: []int64{f.pop.ID},
	})
	require.NoError(t, err)
	f.song2, err = db.CreateSong(ctx, models.NewSong{Name: "Jiang Nan", SingerID: f.singer2.ID})
	require.NoError(t, err)

	return f
}

func TestNewAppliesMigrations(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()

		version, err := db.GetCurrentSchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, version)

		history, err := db.GetMigrationHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "initial_schema", history[0].Name)
		assert.False(t, history[0].AppliedAt.IsZero())

		applied, err := db.Migrate(ctx)
		require.NoError(t, err)
		assert.Zero(t, applied, "migrations must run once")

		require.NoError(t, db.Ping(ctx))
		assert.Equal(t, db.Driver(), db.cfg.Driver)
	})
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "postgres", Path: MemoryPath})
	assert.Error(t, err)
}

func TestReopenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.duckdb")
	cfg := &config.DatabaseConfig{Driver: config.DriverDuckDB, Path: path, Threads: 1}

	db, err := New(cfg)
	require.NoError(t, err)
	_, err = db.CreateGenre(context.Background(), models.NewGenre{Name: "Jazz"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(cfg)
	require.NoError(t, err)
	defer db.Close()

	genres, err := db.ListGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Jazz", genres[0].Name)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(`
-- header comment
CREATE TABLE a (id INTEGER);

-- second
CREATE INDEX i ON a(id);
`)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INTEGER)", stmts[0])
	assert.Equal(t, "CREATE INDEX i ON a(id)", stmts[1])
}

func TestErrorKinds(t *testing.T) {
	err := conflict("Username already exists")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Username already exists", err.Error())
	assert.True(t, isDomainError(notFound("x")))
	assert.True(t, isDomainError(invalidRef("x")))
	assert.False(t, isDomainError(assert.AnError))
}
