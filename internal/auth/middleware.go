// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
)

type contextKey string

const userIDContextKey contextKey = "user-id"

// NotAuthorizedMessage is the 401 message the web client expects.
const NotAuthorizedMessage = "Not Authorized. Login Again"

// ContextWithUserID returns ctx carrying the authenticated user ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the user ID set by RequireUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok && id != ""
}

// Middleware authenticates requests according to the configured mode.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
	cookieName string
}

// NewMiddleware creates the middleware. jwtManager may be nil when authMode
// is config.AuthModeNone.
func NewMiddleware(jwtManager *JWTManager, authMode, cookieName string) *Middleware {
	if cookieName == "" {
		cookieName = "token"
	}
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   authMode,
		cookieName: cookieName,
	}
}

// Enabled reports whether requests must carry a token.
func (m *Middleware) Enabled() bool {
	return m.authMode == config.AuthModeJWT
}

// RequireUser rejects requests without a valid token and stores the token's
// user ID in the request context. With auth disabled it passes requests
// through untouched.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := m.tokenFromRequest(r)
		if token == "" || m.jwtManager == nil {
			unauthorized(w, NotAuthorizedMessage)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("rejected token")
			unauthorized(w, NotAuthorizedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), claims.ID)))
	})
}

// tokenFromRequest prefers the cookie and falls back to a Bearer header.
func (m *Middleware) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
