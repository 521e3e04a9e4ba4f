// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package recommend

import (
	"fmt"
)

// Config contains the caps applied by each stage of the engine.
type Config struct {
	// Limit is the maximum number of songs returned.
	Limit int `json:"limit"`

	// TopGenreSongs is how many songs the user's top genre contributes.
	TopGenreSongs int `json:"top_genre_songs"`

	// TopSingers is how many of the user's favorite singers are used.
	TopSingers int `json:"top_singers"`

	// SongsPerSinger is how many songs each favorite singer contributes.
	SongsPerSinger int `json:"songs_per_singer"`

	// FallbackGenres is how many genres after the top one are used when
	// the list is still short.
	FallbackGenres int `json:"fallback_genres"`

	// SongsPerFallbackGenre is how many songs each fallback genre contributes.
	SongsPerFallbackGenre int `json:"songs_per_fallback_genre"`
}

// DefaultConfig returns the standard caps: 10 songs, 5 from the top genre,
// 3 from each of 3 singers and 2 from each of 2 fallback genres.
func DefaultConfig() Config {
	return Config{
		Limit:                 10,
		TopGenreSongs:         5,
		TopSingers:            3,
		SongsPerSinger:        3,
		FallbackGenres:        2,
		SongsPerFallbackGenre: 2,
	}
}

// Validate checks that every cap is usable.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	for name, v := range map[string]int{
		"top_genre_songs":          c.TopGenreSongs,
		"top_singers":              c.TopSingers,
		"songs_per_singer":         c.SongsPerSinger,
		"fallback_genres":          c.FallbackGenres,
		"songs_per_fallback_genre": c.SongsPerFallbackGenre,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}
