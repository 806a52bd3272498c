// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/validation"
)

// maxBodyBytes bounds request bodies; like requests are a few dozen bytes.
const maxBodyBytes = 64 << 10

var errInvalidLimit = errors.New("limit must be a positive integer")

// errorResponse is the body of every error response. Error and Message carry
// the same text; the web client reads message, API consumers read error.
type errorResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error response. err, when set, is logged with the
// request ID but never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &errorResponse{
		Success: false,
		Status:  "error",
		Error:   message,
		Message: message,
	})
}

// decodeJSONBody decodes a size-limited JSON request body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// validateRequest validates a struct using go-playground/validator and
// returns a client-facing message, or "" when v is valid.
func validateRequest(v any) string {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.Error()
	}
	return ""
}

// parseLimit reads the optional ?limit= parameter. Absent means zero, which
// the engine replaces with its default.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w, got %q", errInvalidLimit, raw)
	}
	return n, nil
}

// requestContext applies the configured per-request deadline to store access.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.config == nil || h.config.Server.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.config.Server.RequestTimeout)
}
