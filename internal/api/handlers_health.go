// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"context"
	"net/http"
	"time"
)

// readyPingTimeout bounds the store ping of a readiness probe.
const readyPingTimeout = 2 * time.Second

// Root handles GET / with the plain-text banner load balancers check for.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("API Working"))
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of the store.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  "alive",
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only if the store answers a ping, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
	defer cancel()

	err := h.store.Ping(ctx)

	statusCode := http.StatusOK
	status := "ready"
	if err != nil {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	body := map[string]any{
		"success":         err == nil,
		"status":          status,
		"backend":         h.store.Backend(),
		"store_connected": err == nil,
		"uptime":          time.Since(h.startTime).Seconds(),
	}
	if err != nil {
		body["error"] = "store ping failed"
	}
	respondJSON(w, statusCode, body)
}
