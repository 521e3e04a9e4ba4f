// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package services

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/musicdb/internal/metrics"
)

// StorePinger is the subset of *database.DB the health check needs.
type StorePinger interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

// StoreHealthService periodically pings the catalog store and publishes
// the result as metrics. A failed ping is logged, not returned, so the
// supervisor never restarts the check because the store is down.
type StoreHealthService struct {
	store    StorePinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string

	healthy atomic.Bool
	checks  atomic.Int64
}

// NewStoreHealthService creates a health check that runs every interval.
// A non-positive interval defaults to 30 seconds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreHealthService(store StorePinger, interval time.Duration, logger zerolog.Logger) *StoreHealthService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := 2 * time.Second
	if interval < timeout {
		timeout = interval
	}
	return &StoreHealthService{
		store:    store,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("service", "store-health").Logger(),
		name:     "store-health",
	}
}

// Serve implements suture.Service. The first check runs immediately.
func (s *StoreHealthService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("store health check started")

	// Assume healthy so only a real failure is reported as a transition.
	s.healthy.Store(true)
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("store health check stopped")
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *StoreHealthService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	up := err == nil
	stats := s.store.Stats()
	metrics.UpdateStoreHealth(up, stats.OpenConnections)
	s.checks.Add(1)

	was := s.healthy.Swap(up)
	switch {
	case !up && was:
		s.logger.Error().Err(err).Msg("catalog store unreachable")
	case up && !was:
		s.logger.Info().Int("open_connections", stats.OpenConnections).Msg("catalog store reachable again")
	}
}

// Healthy reports the result of the most recent check.
func (s *StoreHealthService) Healthy() bool {
	return s.healthy.Load()
}

// Checks returns how many checks have run.
func (s *StoreHealthService) Checks() int64 {
	return s.checks.Load()
}

// String implements fmt.Stringer for suture logging.
func (s *StoreHealthService) String() string {
	return s.name
}
