// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/cache"
	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/logging"
	"github.com/tomtom215/musicdb/internal/recommend"
)

// Version is reported by the root and health endpoints. Release builds set
// it with -ldflags "-X github.com/tomtom215/musicdb/internal/api.Version=...".
var Version = "dev"

// Handler handles HTTP requests for the catalog API
type Handler struct {
	db           *database.DB
	engine       *recommend.Engine
	config       *config.Config
	jwtManager   *auth.JWTManager
	security     *logging.SecurityLogger
	hashPassword func(string) (string, error)
	statsCache   *cache.Cache // nil when STATS_CACHE_TTL is 0
	startTime    time.Time
}

// NewHandler creates a new Handler instance. jwtManager may be nil when
// token authentication is disabled.
func NewHandler(db *database.DB, engine *recommend.Engine, cfg *config.Config, jwtManager *auth.JWTManager) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	var statsCache *cache.Cache
	if cfg.Server.StatsCacheTTL > 0 {
		statsCache = cache.New(cfg.Server.StatsCacheTTL)
	}
	return &Handler{
		db:           db,
		engine:       engine,
		config:       cfg,
		jwtManager:   jwtManager,
		security:     logging.NewSecurityLogger(),
		hashPassword: auth.Hasher(cfg.Security.BcryptCost),
		statsCache:   statsCache,
		startTime:    time.Now(),
	}
}

// requireDB checks that the store is configured and sends a 503 otherwise.
func (h *Handler) requireDB(w http.ResponseWriter) bool {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database not available", nil)
		return false
	}
	return true
}
