// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/musicdb/internal/logging"
)

// Migration represents a versioned database migration.
type Migration struct {
	Version     int       `db:"version"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	SQL         string    `db:"-"`
	AppliedAt   time.Time `db:"applied_at"`
}

// schemaMigrationsTable creates the migration tracking table
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL
)`

// getMigrations returns all versioned migrations in order.
//
// Migrations MUST be append-only. Never modify or remove a migration once
// databases exist that recorded it.
func (db *DB) getMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "initial_schema", Description: "Create catalog tables", SQL: schemaFor(db.driver)},
		{Version: 2, Name: "link_indexes", Description: "Index association tables by foreign column", SQL: linkIndexes},
	}
}

func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	var rows []Migration
	if err := db.conn.SelectContext(ctx, &rows,
		`SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	applied := make(map[int]Migration, len(rows))
	for _, m := range rows {
		applied[m.Version] = m
	}
	return applied, nil
}

// runVersionedMigrations executes only migrations that have not been
// applied yet. Each migration and its ledger row commit together.
func (db *DB) runVersionedMigrations(ctx context.Context) (int, error) {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range db.getMigrations() {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		tx, err := db.conn.BeginTxx(ctx, nil)
		if err != nil {
			return count, fmt.Errorf("failed to begin migration v%d: %w", m.Version, err)
		}
		for _, stmt := range splitStatements(m.SQL) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return count, fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
			m.Version, m.Name, m.Description, time.Now().UTC()); err != nil {
			_ = tx.Rollback()
			return count, fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return count, fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
		}
		count++
	}

	if count > 0 {
		logging.Info().Int("applied", count).Str("driver", db.driver).Msg("Applied database migrations")
	}
	return count, nil
}

// Migrate applies pending migrations and returns how many ran.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.runVersionedMigrations(ctx)
}

// GetCurrentSchemaVersion returns the highest applied migration version
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	if err := db.conn.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// GetMigrationHistory returns all applied migrations in order
func (db *DB) GetMigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var history []Migration
	if err := db.conn.SelectContext(ctx, &history,
		`SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	return history, nil
}
