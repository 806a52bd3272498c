// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package store

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/metrics"
	"github.com/tomtom215/tunila/internal/recommend"
)

// BreakerStore wraps a Store with a circuit breaker.
//
// Once the backend has failed FailureThreshold times in a row, calls are
// rejected immediately with ErrUnavailable until Timeout has passed; then up
// to MaxRequests trial calls decide whether the circuit closes again.
// ErrNotFound, ErrInvalidID and caller cancellation are not failures.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

var _ Store = (*BreakerStore)(nil)

// NewBreakerStore wraps next. The breaker is named "store-<backend>" in
// metrics and logs.
func NewBreakerStore(next Store, cfg config.BreakerConfig) *BreakerStore {
	name := "store-" + next.Backend()
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("opening store circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("store circuit state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrInvalidID) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// guarded runs fn through the breaker of b.
func guarded[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()

	if result == nil {
		return zero, nil
	}
	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("store circuit %s: unexpected result type %T", b.name, result)
	}
	return v, nil
}

// FetchAllItems implements recommend.Catalog.
func (b *BreakerStore) FetchAllItems(ctx context.Context) ([]recommend.Item, error) {
	return guarded(b, func() ([]recommend.Item, error) {
		return b.next.FetchAllItems(ctx)
	})
}

// FetchLikedItems implements recommend.Catalog.
func (b *BreakerStore) FetchLikedItems(ctx context.Context, userID string) ([]recommend.Item, error) {
	return guarded(b, func() ([]recommend.Item, error) {
		return b.next.FetchLikedItems(ctx, userID)
	})
}

// LikeSong implements Store.
func (b *BreakerStore) LikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return guarded(b, func() ([]string, error) {
		return b.next.LikeSong(ctx, songID, userID)
	})
}

// UnlikeSong implements Store.
func (b *BreakerStore) UnlikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return guarded(b, func() ([]string, error) {
		return b.next.UnlikeSong(ctx, songID, userID)
	})
}

// Ping goes through the breaker, so an open circuit reports unavailable
// without touching the backend.
func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := guarded(b, func() (struct{}, error) {
		return struct{}{}, b.next.Ping(ctx)
	})
	return err
}

// Close closes the wrapped store.
func (b *BreakerStore) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}

// Backend returns the wrapped store's backend name.
func (b *BreakerStore) Backend() string {
	return b.next.Backend()
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
