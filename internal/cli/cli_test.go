// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/database"
)

// isolateEnv runs the test in a temp directory with a SQLite store so no
// config.yaml or .env from the package directory is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", filepath.Join(dir, "music.db"))
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "musicdb", cmd.Use)

	for _, name := range []string{"serve", "seed", "migrate", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, flag := range []string{"config", "log-level", "log-format"} {
		f := cmd.PersistentFlags().Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "musicdb dev")
}

func TestSeedCommand(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 users")
	assert.Contains(t, out, "12 songs")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")
}

func TestMigrateCommand(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "initial_schema")
	assert.Contains(t, out, "schema version")
	assert.Contains(t, out, "(sqlite3)")
}

func TestConfigFlag(t *testing.T) {
	dir := isolateEnv(t)

	_, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), "migrate")
	require.Error(t, err)

	path := filepath.Join(dir, "musicdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: console\n"), 0o644))
	_, err = execute(t, "--config", path, "migrate")
	require.NoError(t, err)
}

func TestLogFlagsAreValidated(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "--log-level", "loud", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")

	_, err = execute(t, "--log-format", "xml", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")

	_, err = execute(t, "--log-level", "debug", "--log-format", "console", "migrate")
	require.NoError(t, err)
}

func newTestStore(t *testing.T) (*config.Config, *database.DB) {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = database.MemoryPath
	cfg.Security.BcryptCost = 4
	cfg.Security.RateLimitDisabled = true

	db, err := database.New(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return cfg, db
}

func TestBuildHandler(t *testing.T) {
	t.Run("no auth", func(t *testing.T) {
		cfg, db := newTestStore(t)
		h, err := buildHandler(cfg, db)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/songs", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("jwt", func(t *testing.T) {
		cfg, db := newTestStore(t)
		cfg.Security.AuthMode = config.AuthModeJWT
		cfg.Security.JWTSecret = "cli-test-secret-that-is-at-least-32-chars"
		h, err := buildHandler(cfg, db)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/songs", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("jwt without secret", func(t *testing.T) {
		cfg, db := newTestStore(t)
		cfg.Security.AuthMode = config.AuthModeJWT
		_, err := buildHandler(cfg, db)
		require.Error(t, err)
	})
}

func TestRecommendConfig(t *testing.T) {
	rc := recommendConfig(config.Default().Recommend)
	assert.Equal(t, 10, rc.Limit)
	assert.Equal(t, 5, rc.TopGenreSongs)
	assert.Equal(t, 3, rc.TopSingers)
	assert.Equal(t, 3, rc.SongsPerSinger)
	assert.Equal(t, 2, rc.FallbackGenres)
	assert.Equal(t, 2, rc.SongsPerFallbackGenre)
	require.NoError(t, rc.Validate())
}

func serveConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "serve.db")
	cfg.Database.SeedOnStart = true
	cfg.Security.BcryptCost = 4
	return cfg
}

func seededUsers(t *testing.T, cfg *config.Config) int {
	t.Helper()

	db, err := database.New(&cfg.Database)
	require.NoError(t, err)
	defer db.Close()

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	return len(users)
}

func TestRunServeStopsOnCancel(t *testing.T) {
	cfg := serveConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg, func() { close(ready) }) }()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("serve returned before starting: %v", err)
	case <-time.After(30 * time.Second):
		t.Fatal("serve did not become ready")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	assert.Equal(t, 2, seededUsers(t, cfg), "seed completed before serving")
}

func TestRunServeCanceledBeforeStart(t *testing.T) {
	cfg := serveConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	readyCalled := false
	err := runServe(ctx, cfg, func() { readyCalled = true })
	require.NoError(t, err)
	assert.False(t, readyCalled)
	assert.Zero(t, seededUsers(t, cfg), "canceled seed writes nothing")
}
