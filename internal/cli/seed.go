// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/musicdb/internal/auth"
	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/logging"
)

// NewSeedCommand populates an empty catalog with sample data.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty catalog with sample data",
		Long: "Creates the admin account (admin / " + database.SeedPassword + "), two regular users, " +
			"singers, albums, genres, songs, favorites and a playlist. A catalog that already has users is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
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

			res, err := db.Seed(cmd.Context(), auth.Hasher(cfg.Security.BcryptCost))
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			out := cmd.OutOrStdout()
			if res.Skipped {
				_, err = fmt.Fprintln(out, "catalog already has users, nothing seeded")
				return err
			}
			_, err = fmt.Fprintf(out,
				"seeded %d users, %d singers, %d albums, %d genres, %d songs, %d favorites, %d playlists\n",
				res.Users, res.Singers, res.Albums, res.Genres, res.Songs, res.Favorites, res.Playlists)
			return err
		},
	}
}
