// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/musicdb/internal/database"
	"github.com/tomtom215/musicdb/internal/logging"
)

// NewMigrateCommand applies pending migrations and prints the schema version.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			// New applies pending migrations before returning.
			db, err := database.New(&cfg.Database)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing database")
				}
			}()

			history, err := db.GetMigrationHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration history: %w", err)
			}
			version, err := db.GetCurrentSchemaVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("schema version: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, m := range history {
				if _, err := fmt.Fprintf(out, "%3d  %-24s %s\n", m.Version, m.Name, m.AppliedAt.Format(time.RFC3339)); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "schema version %d (%s)\n", version, db.Driver())
			return err
		},
	}
}
