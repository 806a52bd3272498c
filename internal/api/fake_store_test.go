// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tunila/internal/auth"
	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
)

// fakeStore is an in-memory store.Store with scriptable failures.
type fakeStore struct {
	mu      sync.Mutex
	songs   []recommend.Item
	err     error // returned by every operation when set
	pingErr error
}

func (f *fakeStore) FetchAllItems(context.Context) ([]recommend.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]recommend.Item, len(f.songs))
	copy(out, f.songs)
	return out, nil
}

func (f *fakeStore) FetchLikedItems(_ context.Context, userID string) ([]recommend.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var liked []recommend.Item
	for _, s := range f.songs {
		if s.IsLikedBy(userID) {
			liked = append(liked, s)
		}
	}
	return liked, nil
}

func (f *fakeStore) LikeSong(_ context.Context, songID, userID string) ([]string, error) {
	return f.update(songID, func(likedBy []string) []string { return store.AddLike(likedBy, userID) })
}

func (f *fakeStore) UnlikeSong(_ context.Context, songID, userID string) ([]string, error) {
	return f.update(songID, func(likedBy []string) []string { return store.RemoveLike(likedBy, userID) })
}

func (f *fakeStore) update(songID string, fn func([]string) []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.songs {
		if f.songs[i].ID == songID {
			f.songs[i].LikedBy = fn(f.songs[i].LikedBy)
			return f.songs[i].LikedBy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeStore) Close(context.Context) error { return nil }

func (f *fakeStore) Backend() string { return "fake" }

func song(id, title, genre string, likedBy ...string) recommend.Item {
	if likedBy == nil {
		likedBy = []string{}
	}
	return recommend.Item{ID: id, Title: title, Genre: genre, LikedBy: likedBy}
}

const testSecret = "api-test-secret-with-some-length"

type testServerOption func(*config.Config)

func withJWTAuth() testServerOption {
	return func(c *config.Config) { c.Security.AuthMode = config.AuthModeJWT }
}

func withRateLimit(reqs int) testServerOption {
	return func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = reqs
	}
}

// newTestRouter builds the full router over st with auth disabled and no
// rate limit unless options say otherwise.
func newTestRouter(t *testing.T, st *fakeStore, opts ...testServerOption) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Security = config.SecurityConfig{
		AuthMode:          config.AuthModeNone,
		JWTSecret:         testSecret,
		JWTCookieName:     "token",
		CORSOrigins:       []string{"http://localhost:3000"},
		RateLimitDisabled: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	engine, err := recommend.NewEngine(st, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	var mgr *auth.JWTManager
	if cfg.Security.AuthMode == config.AuthModeJWT {
		mgr, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			t.Fatalf("NewJWTManager() error = %v", err)
		}
	}

	handler := NewHandler(st, engine, cfg)
	authMW := auth.NewMiddleware(mgr, cfg.Security.AuthMode, cfg.Security.JWTCookieName)
	chiMW := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security))
	return NewRouter(handler, authMW, chiMW).Setup()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func songIDs(items []recommend.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
