// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/musicdb/internal/api"
	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/authz"
	"github.com/tomtom215/musicdb/internal/config"
	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/logging"
	"github.com/tomtom215/musicdb/internal/metrics"
	"github.com/tomtom215/musicdb/internal/recommend"
	"github.com/tomtom215/musicdb/internal/supervisor"
	"github.com/tomtom215/musicdb/internal/supervisor/services"
)

// NewServeCommand runs the HTTP API under the supervisor tree until
// SIGINT or SIGTERM.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, nil)
		},
	}
}

// runServe opens the store, seeds it when configured and serves until ctx
// is canceled or a shutdown signal arrives. ready, when set, is called once
// the supervisor tree is about to start. A shutdown requested before then
// is not an error.
func runServe(ctx context.Context, cfg *config.Config, ready func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().
		Str("version", api.Version).
		Str("driver", cfg.Database.Driver).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting MusicDB with supervisor tree")
	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	if cfg.IsProduction() && cfg.Security.AuthMode == config.AuthModeNone {
		logging.Warn().Str("environment", cfg.Server.Environment).Msg("Authentication disabled in a production environment")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Strs("cors_origins", cfg.Security.CORSOrigins).Msg("Wildcard CORS origin combined with authentication")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedOnStart {
		res, err := db.Seed(ctx, auth.Hasher(cfg.Security.BcryptCost))
		if err != nil {
			if ctx.Err() != nil {
				logging.Info().Msg("Shutdown requested during seed, nothing was written")
				return nil
			}
			return fmt.Errorf("seed: %w", err)
		}
		logging.Info().Bool("skipped", res.Skipped).Int("songs", res.Songs).Msg("Seed on start complete")
	}

	handler, err := buildHandler(cfg, db)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + treeCfg.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewStoreHealthService(db, cfg.Database.HealthEvery, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)
	if ready != nil {
		ready()
	}

	serveErr := <-errCh
	if errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}
	if serveErr != nil {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("MusicDB stopped")
	return serveErr
}

// buildHandler wires the recommendation engine, authentication and
// authorization into the routed API handler.
func buildHandler(cfg *config.Config, db *database.DB) (http.Handler, error) {
	engine, err := recommend.NewEngine(recommendConfig(cfg.Recommend), logging.Logger(), db)
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	var (
		jwtManager *auth.JWTManager
		authzMw    *authz.Middleware
	)
	if cfg.Security.AuthMode == config.AuthModeJWT {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("jwt: %w", err)
		}
		enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
			ModelPath:  cfg.Security.CasbinModelPath,
			PolicyPath: cfg.Security.CasbinPolicyPath,
		})
		if err != nil {
			return nil, fmt.Errorf("authorization: %w", err)
		}
		authzMw = authz.NewMiddleware(enforcer)
		logging.Info().Msg("JWT authentication and role authorization enabled")
	} else {
		logging.Warn().Msg("Authentication disabled (AUTH_MODE=none)")
	}

	h := api.NewHandler(db, engine, cfg, jwtManager)
	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(h, auth.NewMiddleware(jwtManager, cfg.Security.AuthMode), authzMw, chiMw)
	return router.SetupChi(), nil
}

func recommendConfig(c config.RecommendConfig) recommend.Config {
	return recommend.Config{
		Limit:                 c.Limit,
		TopGenreSongs:         c.TopGenreSongs,
		TopSingers:            c.TopSingers,
		SongsPerSinger:        c.SongsPerSinger,
		FallbackGenres:        c.FallbackGenres,
		SongsPerFallbackGenre: c.SongsPerFallbackGenre,
	}
}
