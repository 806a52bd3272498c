// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tunila/internal/auth"
	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/middleware"
)

// Router wires handlers and middleware onto a Chi router.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil authMiddleware disables authentication;
// a nil chiMiddleware selects the default CORS and rate-limit settings.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMiddleware *ChiMiddleware) *Router {
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil, config.AuthModeNone, "")
	}
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMiddleware,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)

	r.Get("/", router.handler.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/recommend/{userID}", router.handler.GetRecommendations)
		r.Get("/stats/recommend", router.handler.GetRecommendStats)

		r.Route("/songs", func(r chi.Router) {
			r.Get("/", router.handler.GetSongs)
			r.Get("/popular", router.handler.GetPopularSongs)
			r.Get("/liked-songs/{userID}", router.handler.GetLikedSongs)

			r.Group(func(r chi.Router) {
				r.Use(router.auth.RequireUser)
				r.Post("/like", router.handler.LikeSong)
				r.Post("/unlike", router.handler.UnlikeSong)
			})
		})
	})

	return r
}
