// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tunila/internal/metrics"
)

// Pinger is the part of store.Store the health check uses.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// StoreHealthService pings the store every interval, exports the result as
// tunila_store_up{backend} and logs transitions between up and down.
type StoreHealthService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
	healthy  atomic.Bool
	checked  atomic.Bool
}

// NewStoreHealthService creates the service. A non-positive interval means 30s.
// Each ping is bounded by the smaller of the interval and 5s.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewStoreHealthService(store Pinger, interval time.Duration, logger zerolog.Logger) *StoreHealthService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StoreHealthService{
		store:    store,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		logger:   logger.With().Str("service", "store-health").Str("backend", store.Backend()).Logger(),
		name:     "store-health",
	}
}

// Serve implements suture.Service. It checks once immediately, then on
// every tick until ctx is canceled.
func (s *StoreHealthService) Serve(ctx context.Context) error {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
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
	if ctx.Err() != nil {
		return
	}
	up := err == nil
	metrics.SetStoreUp(s.store.Backend(), up)

	was := s.healthy.Swap(up)
	first := !s.checked.Swap(true)
	switch {
	case !up && (was || first):
		s.logger.Warn().Err(err).Msg("store unreachable")
	case up && !was && !first:
		s.logger.Info().Msg("store reachable again")
	}
}

// Healthy reports the result of the last completed check.
func (s *StoreHealthService) Healthy() bool {
	return s.healthy.Load()
}

// String names the service in supervisor events.
func (s *StoreHealthService) String() string {
	return s.name
}
