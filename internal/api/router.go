// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/authz"
	"github.com/tomtom215/musicdb/internal/middleware"
)

// compressionLevel is the gzip level used for responses.
const compressionLevel = 5

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. authzMiddleware is only applied when token
// authentication is enabled and may be nil otherwise.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, authzMiddleware *authz.Middleware, chiMw *ChiMiddleware) *Router {
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil, "")
	}
	if chiMw == nil {
		chiMw = NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&handler.config.Security))
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		authz:         authzMiddleware,
		chiMiddleware: chiMw,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(compressionLevel))
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Get("/", router.handler.Root)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		// ========================
		// Public Endpoints
		// ========================
		r.Get("/health", router.handler.Health)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)

		// ========================
		// Catalog Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.auth.Authenticate)
			if router.auth.Enabled() && router.authz != nil {
				r.Use(router.authz.AuthorizeRequest)
			}
			r.Use(router.handler.InvalidateStatsOnWrite)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", router.handler.ListUsers)
				r.Post("/", router.handler.CreateUser)
				r.Get("/{id}", router.handler.GetUser)
				r.Put("/{id}", router.handler.UpdateUser)
				r.Delete("/{id}", router.handler.DeleteUser)
				r.Get("/{id}/favorites", router.handler.ListUserFavorites)
				r.Get("/{id}/playlists", router.handler.ListUserPlaylists)
			})

			r.Route("/singers", func(r chi.Router) {
				r.Get("/", router.handler.ListSingers)
				r.Post("/", router.handler.CreateSinger)
				r.Get("/{id}", router.handler.GetSinger)
				r.Put("/{id}", router.handler.UpdateSinger)
				r.Delete("/{id}", router.handler.DeleteSinger)
			})

			r.Route("/albums", func(r chi.Router) {
				r.Get("/", router.handler.ListAlbums)
				r.Post("/", router.handler.CreateAlbum)
				r.Get("/{id}", router.handler.GetAlbum)
				r.Put("/{id}", router.handler.UpdateAlbum)
				r.Delete("/{id}", router.handler.DeleteAlbum)
			})

			r.Route("/songs", func(r chi.Router) {
				r.Get("/", router.handler.ListSongs)
				r.Post("/", router.handler.CreateSong)
				r.Get("/{id}", router.handler.GetSong)
				r.Put("/{id}", router.handler.UpdateSong)
				r.Delete("/{id}", router.handler.DeleteSong)
				r.Get("/{id}/genres", router.handler.ListSongGenres)
				r.Post("/{id}/genres", router.handler.AddSongGenre)
			})

			r.Route("/genres", func(r chi.Router) {
				r.Get("/", router.handler.ListGenres)
				r.Post("/", router.handler.CreateGenre)
				r.Get("/{id}", router.handler.GetGenre)
				r.Put("/{id}", router.handler.UpdateGenre)
				r.Delete("/{id}", router.handler.DeleteGenre)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", router.handler.ListFavorites)
				r.Post("/", router.handler.CreateFavorite)
				r.Delete("/{id}", router.handler.DeleteFavorite)
				r.Delete("/user/{user_id}/song/{song_id}", router.handler.DeleteUserSongFavorite)
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Get("/", router.handler.ListPlaylists)
				r.Post("/", router.handler.CreatePlaylist)
				r.Get("/{id}", router.handler.GetPlaylist)
				r.Put("/{id}", router.handler.UpdatePlaylist)
				r.Delete("/{id}", router.handler.DeletePlaylist)
				r.Get("/{id}/songs", router.handler.ListPlaylistSongs)
				r.Post("/{id}/songs", router.handler.AddPlaylistSong)
				r.Delete("/{id}/songs/{song_id}", router.handler.RemovePlaylistSong)
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/overview", router.handler.StatsOverview)
				r.Get("/top-singers", router.handler.StatsTopSingers)
				r.Get("/top-songs", router.handler.StatsTopSongs)
				r.Get("/genre-distribution", router.handler.StatsGenreDistribution)
				r.Get("/user-activity", router.handler.StatsUserActivity)
				r.Get("/singer-nationality", router.handler.StatsSingerNationality)
			})
			r.Get("/popular-singers", router.handler.PopularSingers)

			r.Get("/recommendations", router.handler.Recommendations)
			r.Get("/recommendations/popular", router.handler.PopularRecommendations)
		})
	})

	return r
}
