// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine serves recommendation requests against a Catalog.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog Catalog

	requests          atomic.Int64
	ranked            atomic.Int64
	fallbacks         atomic.Int64
	noRecommendations atomic.Int64
	failures          atomic.Int64
}

// NewEngine creates an engine reading from catalog. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog Catalog, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: catalog,
	}, nil
}

// Recommend fetches the catalog and the user's liked songs and ranks them.
// It never returns nil; failures are reported through Result.Status and Result.Err.
func (e *Engine) Recommend(ctx context.Context, req Request) *Result {
	start := time.Now()
	e.requests.Add(1)

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()

	limit, err := e.resolveLimit(req.Limit)
	if err != nil {
		return e.fail(logger, err)
	}

	catalog, err := e.catalog.FetchAllItems(ctx)
	if err != nil {
		return e.fail(logger, storageError("fetch catalog", err))
	}
	if len(catalog) == 0 {
		e.noRecommendations.Add(1)
		logger.Debug().Msg("catalog is empty")
		return &Result{
			Status: StatusNoRecommendations,
			Songs:  []Item{},
			Error:  ErrEmptyCorpus.Error(),
			Err:    ErrEmptyCorpus,
		}
	}

	liked, err := e.catalog.FetchLikedItems(ctx, req.UserID)
	if err != nil {
		return e.fail(logger, storageError("fetch liked songs", err))
	}

	scored, err := RankScored(catalog, liked, limit)
	if err != nil {
		return e.fail(logger, err)
	}

	status := StatusRanked
	if len(liked) == 0 {
		status = StatusFallback
		e.fallbacks.Add(1)
	} else {
		e.ranked.Add(1)
	}

	songs := make([]Item, len(scored))
	for i := range scored {
		songs[i] = scored[i].Item
	}

	event := logger.Debug().
		Str("status", string(status)).
		Int("catalog_size", len(catalog)).
		Int("liked", len(liked)).
		Int("returned", len(songs)).
		Dur("latency", time.Since(start))
	if len(scored) > 0 {
		event = event.Float64("top_score", scored[0].Score)
	}
	event.Msg("recommendation complete")

	return &Result{Success: true, Status: status, Songs: songs}
}

// resolveLimit applies the configured default and maximum.
func (e *Engine) resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
	case limit == 0:
		return e.config.Limits.DefaultLimit, nil
	case limit > e.config.Limits.MaxLimit:
		return e.config.Limits.MaxLimit, nil
	default:
		return limit, nil
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) fail(logger zerolog.Logger, err error) *Result {
	e.failures.Add(1)
	if errors.Is(err, context.Canceled) {
		logger.Debug().Err(err).Msg("recommendation canceled")
	} else {
		logger.Warn().Err(err).Msg("recommendation failed")
	}
	return &Result{
		Status: StatusError,
		Songs:  []Item{},
		Error:  err.Error(),
		Err:    err,
	}
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:          e.requests.Load(),
		Ranked:            e.ranked.Load(),
		Fallbacks:         e.fallbacks.Load(),
		NoRecommendations: e.noRecommendations.Load(),
		Errors:            e.failures.Load(),
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
