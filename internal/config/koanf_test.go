// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearConfigEnv resets every mapped environment variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, k)
	}
	for _, k := range keys {
		upper := strings.ToUpper(k)
		if old, ok := os.LookupEnv(upper); ok {
			t.Cleanup(func() { os.Setenv(upper, old) })
		}
		os.Unsetenv(upper)
	}
}

// chdirTemp switches into a fresh temp directory and restores the original on cleanup.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	return tmpDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Database.Driver != DriverDuckDB {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.Path != "./data/musicdb.duckdb" {
		t.Errorf("Database.Path = %q, want ./data/musicdb.duckdb", cfg.Database.Path)
	}
	if cfg.Security.AuthMode != AuthModeNone {
		t.Errorf("Security.AuthMode = %q, want none", cfg.Security.AuthMode)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	r := cfg.Recommend
	if r.Limit != 10 || r.TopGenreSongs != 5 || r.TopSingers != 3 ||
		r.SongsPerSinger != 3 || r.FallbackGenres != 2 || r.SongsPerFallbackGenre != 2 {
		t.Errorf("unexpected recommend defaults: %+v", r)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"DB_DRIVER", "database.driver"},
		{"DB_PATH", "database.path"},
		{"DB_NAME", "database.path"},
		{"DUCKDB_MAX_MEMORY", "database.max_memory"},
		{"AUTH_MODE", "security.auth_mode"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"RECOMMEND_LIMIT", "recommend.limit"},

		// Accepted but unused
		{"DB_HOST", ""},
		{"DB_PORT", ""},
		{"DB_USERNAME", ""},
		{"DB_PASSWORD", ""},

		// Unknown variables are skipped
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)
	chdirTemp(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_NAME", "music.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("RECOMMEND_LIMIT", "20")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want sqlite3", cfg.Database.Driver)
	}
	if cfg.Database.Path != "music.db" {
		t.Errorf("Database.Path = %q, want music.db", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Limit != 20 {
		t.Errorf("Recommend.Limit = %d, want 20", cfg.Recommend.Limit)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "http://b.example" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}

	// Defaults remain for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Recommend.TopSingers != 3 {
		t.Errorf("Recommend.TopSingers = %d, want 3 (default)", cfg.Recommend.TopSingers)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	configContent := `
server:
  port: 8888
  host: "127.0.0.1"

database:
  driver: sqlite3
  path: "/var/lib/musicdb/music.db"

logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "musicdb.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Database.Path != "/var/lib/musicdb/music.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Security.AuthMode != AuthModeNone {
		t.Errorf("Security.AuthMode = %q, want none (default)", cfg.Security.AuthMode)
	}
}

func TestLoadFrom(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	configPath := filepath.Join(tmpDir, "explicit.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 7001\n"), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}

	if _, err := LoadFrom(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}

	cfg, err = LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom(\"\") error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want default 5000", cfg.Server.Port)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv("HTTP_PORT", "7500")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7500 {
		t.Errorf("Server.Port = %d, want 7500 (env overrides file)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfDotEnv(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	dotenv := "LOG_FORMAT=console\nHTTP_PORT=6100\nDB_HOST=localhost\n"
	if err := os.WriteFile(filepath.Join(tmpDir, DotEnvFile), []byte(dotenv), 0o644); err != nil {
		t.Fatalf("Failed to create .env: %v", err)
	}
	// Process env wins over .env
	t.Setenv("HTTP_PORT", "6200")
	t.Cleanup(func() {
		os.Unsetenv("LOG_FORMAT")
		os.Unsetenv("DB_HOST")
	})

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console from .env", cfg.Logging.Format)
	}
	if cfg.Server.Port != 6200 {
		t.Errorf("Server.Port = %d, want 6200 from process env", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"invalid port", map[string]string{"HTTP_PORT": "70000"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "postgres"}},
		{"unknown auth mode", map[string]string{"AUTH_MODE": "oidc"}},
		{"jwt without secret", map[string]string{"AUTH_MODE": "jwt"}},
		{"jwt with short secret", map[string]string{"AUTH_MODE": "jwt", "JWT_SECRET": "short"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"zero recommend limit", map[string]string{"RECOMMEND_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadWithKoanf(); err == nil {
				t.Error("LoadWithKoanf() expected validation error, got nil")
			}
		})
	}
}

func TestLoadBackwardCompatibility(t *testing.T) {
	clearConfigEnv(t)
	chdirTemp(t)

	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_USERNAME", "root")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Security.AuthMode != AuthModeJWT {
		t.Errorf("Security.AuthMode = %q, want jwt", cfg.Security.AuthMode)
	}
}
