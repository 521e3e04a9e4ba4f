// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package config provides centralized configuration management for MusicDB.

Configuration is assembled with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/musicdb/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

A .env file in the working directory is loaded into the process environment
before the env layer. Variables already set in the environment win over .env.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 5000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT

Database:
  - DB_DRIVER: duckdb (default) or sqlite3
  - DB_PATH or DB_NAME: database file (default: ./data/musicdb.duckdb)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - DB_SEED_ON_START, DB_HEALTH_INTERVAL

Security:
  - AUTH_MODE: none (default) or jwt
  - JWT_SECRET: at least 32 characters in jwt mode
  - SESSION_TIMEOUT, BCRYPT_COST
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CASBIN_MODEL_PATH, CASBIN_POLICY_PATH

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Recommendations:
  - RECOMMEND_LIMIT and the RECOMMEND_* caps

# Example config.yaml

	server:
	  port: 5000
	database:
	  driver: sqlite3
	  path: ./data/musicdb.db
	security:
	  auth_mode: jwt
	  jwt_secret: "a-random-secret-of-at-least-32-characters"
	logging:
	  level: debug
	  format: console
*/
package config
