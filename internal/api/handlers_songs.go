// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tunila/internal/auth"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/metrics"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
	"github.com/tomtom215/tunila/internal/validation"
)

// PopularLimit is the number of songs returned by GET /api/songs/popular.
const PopularLimit = 20

// likeRequest is the body of like and unlike requests. UserID comes from the
// token when auth is enabled and from the body otherwise.
type likeRequest struct {
	SongID string `json:"songId" validate:"required,identifier"`
	UserID string `json:"userId" validate:"required,identifier"`
}

// likeResponse is the body of a successful like or unlike.
type likeResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	LikedBy []string `json:"likedBy"`
}

type songsResponse struct {
	Success bool             `json:"success"`
	Songs   []recommend.Item `json:"songs"`
}

type likedSongsResponse struct {
	Success    bool             `json:"success"`
	LikedSongs []recommend.Item `json:"likedSongs"`
}

// GetSongs handles GET /api/songs.
func (h *Handler) GetSongs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	songs, err := h.store.FetchAllItems(ctx)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, &songsResponse{Success: true, Songs: nonNil(songs)})
}

// GetPopularSongs handles GET /api/songs/popular: the PopularLimit songs with
// the most likes. Songs with equal counts keep their catalog order.
func (h *Handler) GetPopularSongs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	songs, err := h.store.FetchAllItems(ctx)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, &songsResponse{Success: true, Songs: mostLiked(songs, PopularLimit)})
}

// GetLikedSongs handles GET /api/songs/liked-songs/{userID}.
func (h *Handler) GetLikedSongs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !validation.IsIdentifier(userID) {
		respondError(w, r, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	songs, err := h.store.FetchLikedItems(ctx, userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, &likedSongsResponse{Success: true, LikedSongs: nonNil(songs)})
}

// LikeSong handles POST /api/songs/like.
func (h *Handler) LikeSong(w http.ResponseWriter, r *http.Request) {
	h.updateLike(w, r, "like", "Song liked", h.store.LikeSong)
}

// UnlikeSong handles POST /api/songs/unlike.
func (h *Handler) UnlikeSong(w http.ResponseWriter, r *http.Request) {
	h.updateLike(w, r, "unlike", "Song unliked", h.store.UnlikeSong)
}

type likeFunc func(ctx context.Context, songID, userID string) ([]string, error)

func (h *Handler) updateLike(w http.ResponseWriter, r *http.Request, action, message string, apply likeFunc) {
	var req likeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		metrics.RecordLike(action, "invalid")
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		req.UserID = userID
	}
	if req.SongID == "" || req.UserID == "" {
		metrics.RecordLike(action, "invalid")
		respondError(w, r, http.StatusBadRequest, "User ID and Song ID are required", nil)
		return
	}
	if msg := validateRequest(&req); msg != "" {
		metrics.RecordLike(action, "invalid")
		respondError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	likedBy, err := apply(ctx, req.SongID, req.UserID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		metrics.RecordLike(action, "not_found")
		respondError(w, r, http.StatusNotFound, "Song not found", nil)
		return
	case errors.Is(err, store.ErrInvalidID):
		metrics.RecordLike(action, "invalid")
		respondError(w, r, http.StatusBadRequest, "Invalid song ID", nil)
		return
	default:
		metrics.RecordLike(action, "error")
		respondStoreError(w, r, err)
		return
	}

	metrics.RecordLike(action, "ok")
	logging.Ctx(r.Context()).Info().
		Str("action", action).
		Str("song_id", sanitizeLogValue(req.SongID)).
		Str("user_id", sanitizeLogValue(req.UserID)).
		Int("likes", len(likedBy)).
		Msg("like updated")

	if likedBy == nil {
		likedBy = []string{}
	}
	respondJSON(w, http.StatusOK, &likeResponse{Success: true, Message: message, LikedBy: likedBy})
}

// respondStoreError renders a store failure: 503 when the backend is
// unavailable, 500 otherwise.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		respondError(w, r, http.StatusServiceUnavailable, "Song storage is unavailable", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
}

// mostLiked returns up to n songs ordered by like count, descending. The
// input is not modified.
func mostLiked(songs []recommend.Item, n int) []recommend.Item {
	sorted := slices.Clone(songs)
	slices.SortStableFunc(sorted, func(a, b recommend.Item) int {
		return len(b.LikedBy) - len(a.LikedBy)
	})
	return nonNil(sorted[:min(n, len(sorted))])
}

func nonNil(songs []recommend.Item) []recommend.Item {
	if songs == nil {
		return []recommend.Item{}
	}
	return songs
}
