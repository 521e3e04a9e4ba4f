// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	_ "embed"
	"strings"

	"github.com/tomtom215/musicdb/internal/config"
)

//go:embed schema_duckdb.sql
var duckdbSchema string

//go:embed schema_sqlite.sql
var sqliteSchema string

// schemaFor returns the initial schema for a driver.
func schemaFor(driver string) string {
	if driver == config.DriverSQLite {
		return sqliteSchema
	}
	return duckdbSchema
}

// linkIndexes indexes the association tables. These tables are insert and
// delete only, so DuckDB's index update restrictions never apply.
const linkIndexes = `
CREATE INDEX IF NOT EXISTS idx_song_genres_genre ON song_genres(genre_id);
CREATE INDEX IF NOT EXISTS idx_favorites_song ON favorites(song_id);
CREATE INDEX IF NOT EXISTS idx_favorites_created ON favorites(created_at);
CREATE INDEX IF NOT EXISTS idx_playlist_songs_song ON playlist_songs(song_id);
`

// splitStatements splits a SQL script on semicolons, dropping comment-only
// and empty statements. Scripts must not contain semicolons inside literals.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, part := range parts {
		var b strings.Builder
		for _, line := range strings.Split(part, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if stmt := strings.TrimSpace(b.String()); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
