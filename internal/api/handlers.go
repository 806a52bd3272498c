// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"time"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendations
//   - handlers_songs.go: catalog listing, liked songs, like/unlike
//   - handlers_health.go: root, liveness and readiness
type Handler struct {
	store     store.Store
	engine    *recommend.Engine
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler serving songs from st and recommendations
// from engine. cfg may be nil in tests; request deadlines are then disabled.
func NewHandler(st store.Store, engine *recommend.Engine, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
}
