// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Package database implements the relational catalog store.
//
// Two embedded engines are supported behind the same API: DuckDB (default)
// and SQLite. Rows are mapped with sqlx into the structs of package models.
// Each dialect has its own embedded schema file; all queries use ? bindvars
// and are shared.
//
// # Consistency
//
// Uniqueness of usernames, emails, genre names and song names is checked by
// the store before writing. Cascading deletes run explicitly inside one
// transaction, children before parents, so both engines behave the same
// whether or not they enforce foreign keys.
//
// # Errors
//
// Expected outcomes are reported as *Error values wrapping ErrNotFound,
// ErrConflict or ErrInvalidReference. Match them with errors.Is; the Error
// message is safe to return to clients. Anything else is a store failure.
//
// # Migrations
//
// The schema is versioned in schema_migrations and brought up to date by
// New. Migrations are append-only.
package database
