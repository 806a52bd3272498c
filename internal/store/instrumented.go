// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/metrics"
	"github.com/tomtom215/tunila/internal/recommend"
)

// InstrumentedStore records latency and errors of every backend call in
// tunila_store_operation_duration_seconds and tunila_store_operation_errors_total.
type InstrumentedStore struct {
	next Store
}

var _ Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps next.
func NewInstrumentedStore(next Store) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
		err = nil
	}
	metrics.RecordStoreOperation(s.next.Backend(), op, time.Since(start), err)
}

// FetchAllItems implements recommend.Catalog.
func (s *InstrumentedStore) FetchAllItems(ctx context.Context) ([]recommend.Item, error) {
	start := time.Now()
	items, err := s.next.FetchAllItems(ctx)
	s.observe("fetch_all", start, err)
	return items, err
}

// FetchLikedItems implements recommend.Catalog.
func (s *InstrumentedStore) FetchLikedItems(ctx context.Context, userID string) ([]recommend.Item, error) {
	start := time.Now()
	items, err := s.next.FetchLikedItems(ctx, userID)
	s.observe("fetch_liked", start, err)
	return items, err
}

// LikeSong implements Store.
func (s *InstrumentedStore) LikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	start := time.Now()
	likedBy, err := s.next.LikeSong(ctx, songID, userID)
	s.observe("like", start, err)
	return likedBy, err
}

// UnlikeSong implements Store.
func (s *InstrumentedStore) UnlikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	start := time.Now()
	likedBy, err := s.next.UnlikeSong(ctx, songID, userID)
	s.observe("unlike", start, err)
	return likedBy, err
}

// Ping implements Store.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	s.observe("ping", start, err)
	return err
}

// Close implements Store.
func (s *InstrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}

// Backend implements Store.
func (s *InstrumentedStore) Backend() string {
	return s.next.Backend()
}

// Wrap applies the standard wrappers: instrumentation closest to the
// backend, then the circuit breaker when enabled.
func Wrap(backend Store, cfg config.BreakerConfig) Store {
	var s Store = NewInstrumentedStore(backend)
	if cfg.Enabled {
		s = NewBreakerStore(s, cfg)
	}
	return s
}
