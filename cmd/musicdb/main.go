// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Package main is the entry point for the MusicDB server.
//
// MusicDB serves a music catalog (users, singers, albums, songs, genres,
// favorites and playlists) over a JSON REST API, with catalog statistics
// and rule-based song recommendations.
//
// # Commands
//
//	musicdb serve     run the API under the supervisor tree
//	musicdb seed      populate an empty catalog with sample data
//	musicdb migrate   apply schema migrations and print the version
//	musicdb version   print the build version
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables, including values from a .env file
//   - Config file (config.yaml, or the path given by --config or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Development with the sample catalog:
//
//	export AUTH_MODE=none
//	export DB_SEED_ON_START=true
//	./musicdb serve
//
// Production with JWT and SQLite:
//
//	export AUTH_MODE=jwt
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DB_DRIVER=sqlite3
//	export DB_PATH=/var/lib/musicdb/music.db
//	./musicdb serve
//
// The version string is set at build time:
//
//	go build -ldflags "-X github.com/tomtom215/musicdb/internal/api.Version=v1.0.0" ./cmd/musicdb
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/musicdb/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
