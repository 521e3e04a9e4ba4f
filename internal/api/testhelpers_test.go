// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/authz"
	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/models"
	"github.com/tomtom215/musicdb/internal/recommend"
)

const testJWTSecret = "test-secret-that-is-at-least-32-characters"

// testEnvelope is the decoded response envelope with data left raw.
type testEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

// testServer bundles a routed handler with its seeded store.
type testServer struct {
	t       *testing.T
	handler http.Handler
	api     *Handler
	db      *database.DB
	jwt     *auth.JWTManager
}

// newTestServer builds the full router on a seeded in-memory DuckDB.
// Rate limiting is off unless mutate turns it back on.
func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = config.DriverDuckDB
	cfg.Database.Path = database.MemoryPath
	cfg.Security.BcryptCost = bcrypt.MinCost
	cfg.Security.RateLimitDisabled = true
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Seed(context.Background(), auth.Hasher(bcrypt.MinCost)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop(), db)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	var (
		jwtManager *auth.JWTManager
		authzMw    *authz.Middleware
	)
	if cfg.Security.AuthMode == config.AuthModeJWT {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			t.Fatalf("failed to create JWT manager: %v", err)
		}
		enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{})
		if err != nil {
			t.Fatalf("failed to create enforcer: %v", err)
		}
		authzMw = authz.NewMiddleware(enforcer)
	}

	handler := NewHandler(db, engine, cfg, jwtManager)
	router := NewRouter(handler, auth.NewMiddleware(jwtManager, cfg.Security.AuthMode), authzMw, nil)

	return &testServer{t: t, handler: router.SetupChi(), api: handler, db: db, jwt: jwtManager}
}

// do sends a request. body may be nil, a raw string or a value to encode.
func (s *testServer) do(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, testEnvelope) {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env testEnvelope
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rr.Body.String(), err)
		}
	}
	return rr, env
}

// expectStatus fails the test when the response status differs.
func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d, body: %s", rr.Code, want, rr.Body.String())
	}
}

// expectError checks an error envelope's status and code.
func expectError(t *testing.T, rr *httptest.ResponseRecorder, env testEnvelope, wantStatus int, wantCode string) {
	t.Helper()
	expectStatus(t, rr, wantStatus)
	if env.Status != models.StatusError {
		t.Errorf("envelope status = %q, want %q", env.Status, models.StatusError)
	}
	if env.Error == nil {
		t.Fatalf("expected error object, body: %s", rr.Body.String())
	}
	if env.Error.Code != wantCode {
		t.Errorf("error code = %q, want %q (message %q)", env.Error.Code, wantCode, env.Error.Message)
	}
}

// decodeData unmarshals the envelope data into dst.
func decodeData(t *testing.T, env testEnvelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode data %s: %v", string(env.Data), err)
	}
}
