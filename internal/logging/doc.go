// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Package logging provides centralized zerolog-based structured logging for MusicDB.
//
// The package provides:
//   - A process-global zerolog logger with JSON or console output
//   - Context-aware logging that attaches request_id and correlation_id
//   - An slog adapter so suture's sutureslog hook logs through zerolog
//   - A security logger for login and authorization events with masked usernames
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("driver", "duckdb").Msg("Store opened")
//	logging.Ctx(r.Context()).Error().Err(err).Msg("Query failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never written.
package logging
