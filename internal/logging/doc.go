// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package logging wraps zerolog behind a process-wide logger for Tunila.
//
// The server calls Init once with the values from the logging section of the
// configuration. Everything else either uses the package-level helpers or
// derives a component logger:
//
//	logging.Info().Str("backend", "mongo").Msg("store opened")
//
//	logger := logging.With().Str("component", "recommend").Logger()
//	logger.Debug().Int("catalog_size", n).Msg("vectorizing catalog")
//
// HTTP handlers should prefer Ctx, which attaches the request and correlation
// IDs placed in the context by the request ID middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("liked set fetch failed")
//
// Suture only speaks log/slog, so NewSlogLogger returns an slog.Logger whose
// handler forwards every record to the zerolog backend.
//
// Always end an event chain with Msg or Send; an unterminated event is
// silently dropped.
package logging
