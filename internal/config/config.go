// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	store, err := database.New(&cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	StatsCacheTTL   time.Duration `koanf:"stats_cache_ttl"` // 0 disables the stats cache
	Environment     string        `koanf:"environment"`     // "development", "staging", "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds relational store settings
type DatabaseConfig struct {
	Driver      string        `koanf:"driver"` // "duckdb" or "sqlite3"
	Path        string        `koanf:"path"`
	MaxMemory   string        `koanf:"max_memory"` // DuckDB only
	Threads     int           `koanf:"threads"`    // DuckDB threads (0 = use NumCPU)
	SeedOnStart bool          `koanf:"seed_on_start"`
	HealthEvery time.Duration `koanf:"health_interval"`
}

// SecurityConfig holds authentication and authorization settings
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// Optional overrides for the embedded Casbin model and policy.
	CasbinModelPath  string `koanf:"casbin_model_path"`
	CasbinPolicyPath string `koanf:"casbin_policy_path"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds the caps used by the recommendation engine.
type RecommendConfig struct {
	Limit                 int `koanf:"limit"`
	TopGenreSongs         int `koanf:"top_genre_songs"`
	TopSingers            int `koanf:"top_singers"`
	SongsPerSinger        int `koanf:"songs_per_singer"`
	FallbackGenres        int `koanf:"fallback_genres"`
	SongsPerFallbackGenre int `koanf:"songs_per_fallback_genre"`
}

// Load loads configuration using Koanf v2 with layered sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
