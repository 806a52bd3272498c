// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/metrics"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/validation"
)

// GetRecommendations handles GET /api/recommend/{userID}.
// The body is the engine Result for every outcome the engine produces.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	if !validation.IsIdentifier(userID) {
		respondError(w, r, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, errInvalidLimit.Error(), err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result := h.engine.Recommend(ctx, recommend.Request{
		UserID:    userID,
		Limit:     limit,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})

	metrics.RecordRecommendation(string(result.Status), time.Since(start), len(result.Songs))

	status := recommendStatusCode(result)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Err(result.Err).
			Str("user_id", sanitizeLogValue(userID)).
			Msg("recommendation failed")
	}
	respondJSON(w, status, result)
}

// GetRecommendStats handles GET /api/stats/recommend.
func (h *Handler) GetRecommendStats(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   h.engine.Stats(),
	})
}

// statusClientClosedRequest is the nginx convention for a client that went
// away before the response was written.
const statusClientClosedRequest = 499

// recommendStatusCode maps a Result to an HTTP status.
func recommendStatusCode(result *recommend.Result) int {
	switch result.Status {
	case recommend.StatusRanked, recommend.StatusFallback, recommend.StatusNoRecommendations:
		return http.StatusOK
	}
	switch {
	case errors.Is(result.Err, recommend.ErrInvalidLimit):
		return http.StatusBadRequest
	case errors.Is(result.Err, recommend.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(result.Err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
