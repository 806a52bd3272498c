// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/store"
	"github.com/tomtom215/tunila/internal/store/badgerstore"
	"github.com/tomtom215/tunila/internal/store/mongostore"
)

// openStore opens the configured backend and wraps it with metrics and, when
// enabled, the circuit breaker. For Badger the seed file is imported into an
// empty store before the wrappers are applied.
func openStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	var backend store.Store

	switch cfg.Backend {
	case config.BackendMongo:
		s, err := mongostore.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		logging.Info().
			Str("database", cfg.Mongo.Database).
			Str("collection", cfg.Mongo.Collection).
			Msg("MongoDB store connected")
		backend = s

	case config.BackendBadger:
		s, err := badgerstore.Open(cfg.Badger)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		if cfg.Badger.SeedFile != "" {
			if _, err := s.SeedFile(ctx, cfg.Badger.SeedFile); err != nil {
				_ = s.Close(ctx)
				return nil, fmt.Errorf("seed badger store: %w", err)
			}
		}
		backend = s

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	return store.Wrap(backend, cfg.Breaker), nil
}
