// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
database_utils.go - Database Utility Functions

Context Management:
  - ensureContext(): Creates a context with 30-second timeout if none provided

Transactions:
  - withTx(): Runs a function inside one transaction, rolling back on error
  - Helpers that run inside a transaction take sqlx.ExtContext or
    sqlx.QueryerContext so the same code serves the pool and a tx

Metrics:
  - observe(): Records query duration and failures per operation and table.
    Not-found, conflict and invalid-reference outcomes are not failures.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/metrics"
)

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// withTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// observe records a finished query for the metrics endpoint.
func observe(operation, table string, start time.Time, err error) {
	if isDomainError(err) {
		err = nil
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt := "CHECKPOINT"
	if db.driver == config.DriverSQLite {
		stmt = "PRAGMA wal_checkpoint(TRUNCATE)"
	}

	if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// rowExists reports whether table has a row with the given id. table is
// always a constant from this package.
func rowExists(ctx context.Context, q sqlx.QueryerContext, table string, id int64) (bool, error) {
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	return n > 0, nil
}

// ownerOf reads the user_id column of a row. table is always a constant
// from this package.
func ownerOf(ctx context.Context, q sqlx.QueryerContext, table string, id int64, missing string) (int64, error) {
	var userID int64
	err := sqlx.GetContext(ctx, q, &userID, "SELECT user_id FROM "+table+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notFound("%s", missing)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read owner of %s %d: %w", table, id, err)
	}
	return userID, nil
}

// countWhere runs SELECT COUNT(*) FROM table WHERE cond.
func countWhere(ctx context.Context, q sqlx.QueryerContext, table, cond string, args ...interface{}) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM "+table+" WHERE "+cond, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// insertReturningID executes an INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := sqlx.GetContext(ctx, q, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// execIn expands an IN (?) list and executes the statement.
func execIn(ctx context.Context, e sqlx.ExtContext, query string, args ...interface{}) error {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("failed to expand query: %w", err)
	}
	_, err = e.ExecContext(ctx, e.Rebind(q), expanded...)
	return err
}

// nowUTC is the timestamp written to created_at and updated_at columns.
func nowUTC() time.Time {
	return time.Now().UTC()
}
