// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/musicdb/internal/models"
)

// Strategy names reported with each result.
const (
	// StrategyNewest is used for users without favorites.
	StrategyNewest = "newest"

	// StrategyPersonalized is the genre and singer based selection.
	StrategyPersonalized = "personalized"

	// StrategyPopular is the user-independent list.
	StrategyPopular = "popular"
)

// DataProvider defines the queries the engine runs. It is implemented by
// the database package.
type DataProvider interface {
	// FavoriteSongIDs returns the songs a user has favorited.
	FavoriteSongIDs(ctx context.Context, userID int64) ([]int64, error)

	// GenreAffinity ranks genres by how many favorited songs link to them.
	GenreAffinity(ctx context.Context, userID int64) ([]models.GenreAffinity, error)

	// SingerAffinity ranks singers by how many of their songs were favorited.
	SingerAffinity(ctx context.Context, userID int64, limit int) ([]models.SingerAffinity, error)

	// SongIDsByGenre returns songs of a genre that are not excluded.
	SongIDsByGenre(ctx context.Context, genreID int64, exclude []int64, limit int) ([]int64, error)

	// SongIDsBySinger returns songs of a singer that are not excluded.
	SongIDsBySinger(ctx context.Context, singerID int64, exclude []int64, limit int) ([]int64, error)

	// NewestSongIDs returns the newest songs that are not excluded.
	NewestSongIDs(ctx context.Context, exclude []int64, limit int) ([]int64, error)

	// NewestSongs returns full projections of the newest songs.
	NewestSongs(ctx context.Context, limit int) ([]models.Song, error)

	// GetSongsByIDs returns song projections in the order of ids.
	GetSongsByIDs(ctx context.Context, ids []int64) ([]models.Song, error)
}

// Result is one recommendation list.
type Result struct {
	Songs    []models.Song
	Strategy string
}

// Engine produces rule-based song recommendations. It holds no state
// beyond its configuration and is safe for concurrent use.
type Engine struct {
	config Config
	logger zerolog.Logger
	data   DataProvider
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger, data DataProvider) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		data:   data,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Popular returns the newest songs regardless of user.
func (e *Engine) Popular(ctx context.Context) (*Result, error) {
	songs, err := e.data.NewestSongs(ctx, e.config.Limit)
	if err != nil {
		return nil, fmt.Errorf("newest songs: %w", err)
	}
	return &Result{Songs: songs, Strategy: StrategyPopular}, nil
}

// Recommend builds the list for a user. Users without favorites get the
// newest songs. Otherwise songs are drawn, in order, from the top genre of
// the user's favorites, from the user's top singers, from the next ranked
// genres and finally from the newest songs, never repeating a song and
// never suggesting one the user already favorited.
func (e *Engine) Recommend(ctx context.Context, userID int64) (*Result, error) {
	start := time.Now()
	logger := e.logger.With().Int64("user_id", userID).Logger()

	favorites, err := e.data.FavoriteSongIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}

	if len(favorites) == 0 {
		songs, err := e.data.NewestSongs(ctx, e.config.Limit)
		if err != nil {
			return nil, fmt.Errorf("newest songs: %w", err)
		}
		logger.Debug().Int("returned", len(songs)).Msg("no favorites, returning newest songs")
		return &Result{Songs: songs, Strategy: StrategyNewest}, nil
	}

	ids, err := e.selectSongs(ctx, userID, favorites, logger)
	if err != nil {
		return nil, err
	}

	songs, err := e.data.GetSongsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}

	logger.Debug().
		Int("favorites", len(favorites)).
		Int("returned", len(songs)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return &Result{Songs: songs, Strategy: StrategyPersonalized}, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) selectSongs(ctx context.Context, userID int64, favorites []int64, logger zerolog.Logger) ([]int64, error) {
	cfg := e.config
	sel := newSelection(favorites)

	genres, err := e.data.GenreAffinity(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("genre affinity: %w", err)
	}
	singers, err := e.data.SingerAffinity(ctx, userID, cfg.TopSingers)
	if err != nil {
		return nil, fmt.Errorf("singer affinity: %w", err)
	}

	if len(genres) > 0 {
		ids, err := e.data.SongIDsByGenre(ctx, genres[0].GenreID, favorites, cfg.TopGenreSongs)
		if err != nil {
			return nil, fmt.Errorf("top genre songs: %w", err)
		}
		sel.add(ids, 0)
	}
	logger.Debug().Int("selected", sel.len()).Msg("top genre stage")

	for _, singer := range singers {
		ids, err := e.data.SongIDsBySinger(ctx, singer.SingerID, favorites, cfg.SongsPerSinger)
		if err != nil {
			return nil, fmt.Errorf("songs of singer %d: %w", singer.SingerID, err)
		}
		sel.add(ids, 0)
	}
	logger.Debug().Int("selected", sel.len()).Msg("favorite singer stage")

	for i := 1; i <= cfg.FallbackGenres && i < len(genres) && sel.len() < cfg.Limit; i++ {
		ids, err := e.data.SongIDsByGenre(ctx, genres[i].GenreID, favorites, cfg.SongsPerFallbackGenre)
		if err != nil {
			return nil, fmt.Errorf("fallback genre songs: %w", err)
		}
		sel.add(ids, cfg.Limit)
	}

	if sel.len() < cfg.Limit {
		ids, err := e.data.NewestSongIDs(ctx, sel.excluded(), cfg.Limit-sel.len())
		if err != nil {
			return nil, fmt.Errorf("newest fill: %w", err)
		}
		sel.add(ids, cfg.Limit)
	}

	return sel.take(cfg.Limit), nil
}

// selection is an ordered set of chosen song ids that rejects favorites
// and repeats.
type selection struct {
	ids       []int64
	seen      map[int64]bool
	favorites []int64
}

func newSelection(favorites []int64) *selection {
	seen := make(map[int64]bool, len(favorites))
	for _, id := range favorites {
		seen[id] = true
	}
	return &selection{seen: seen, favorites: favorites}
}

// add appends unseen ids. A positive limit stops adding once reached.
func (s *selection) add(ids []int64, limit int) {
	for _, id := range ids {
		if limit > 0 && len(s.ids) >= limit {
			return
		}
		if s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.ids = append(s.ids, id)
	}
}

func (s *selection) len() int {
	return len(s.ids)
}

// excluded returns favorites plus chosen ids.
func (s *selection) excluded() []int64 {
	out := make([]int64, 0, len(s.favorites)+len(s.ids))
	out = append(out, s.favorites...)
	return append(out, s.ids...)
}

func (s *selection) take(limit int) []int64 {
	if len(s.ids) > limit {
		return s.ids[:limit]
	}
	return s.ids
}
