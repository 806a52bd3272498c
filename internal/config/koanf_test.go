// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file and runs from an empty
// directory so no stray config.yaml is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendMongo {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, BackendMongo)
	}
	if cfg.Store.Mongo.Database != "FYP_DEVELOPMENT" {
		t.Errorf("Store.Mongo.Database = %q, want FYP_DEVELOPMENT", cfg.Store.Mongo.Database)
	}
	if cfg.Store.Mongo.Collection != "songs" {
		t.Errorf("Store.Mongo.Collection = %q, want songs", cfg.Store.Mongo.Collection)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("Recommend.DefaultLimit = %d, want 10", cfg.Recommend.DefaultLimit)
	}
	if cfg.Security.AuthMode != AuthModeNone {
		t.Errorf("Security.AuthMode = %q, want none", cfg.Security.AuthMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:5000", cfg.Server.Addr())
	}
	if cfg.Store.Breaker.Timeout != 30*time.Second {
		t.Errorf("Store.Breaker.Timeout = %v, want 30s", cfg.Store.Breaker.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("BADGER_IN_MEMORY", "true")
	t.Setenv("SEED_FILE", "/tmp/songs.json")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RECOMMEND_LIMIT", "20")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Backend != BackendBadger || !cfg.Store.Badger.InMemory {
		t.Errorf("Store = %+v, want in-memory badger", cfg.Store)
	}
	if cfg.Store.Badger.SeedFile != "/tmp/songs.json" {
		t.Errorf("Store.Badger.SeedFile = %q", cfg.Store.Badger.SeedFile)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultLimit != 20 {
		t.Errorf("Recommend.DefaultLimit = %d, want 20", cfg.Recommend.DefaultLimit)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("Security.RateLimitWindow = %v, want 30s", cfg.Security.RateLimitWindow)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "tunila.yaml")
	yamlDoc := `
store:
  backend: mongo
  mongo:
    uri: mongodb://catalog:27017
    collection: tracks
recommend:
  default_limit: 15
  max_limit: 50
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_MAX_LIMIT", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Mongo.URI != "mongodb://catalog:27017" {
		t.Errorf("Store.Mongo.URI = %q", cfg.Store.Mongo.URI)
	}
	if cfg.Store.Mongo.Collection != "tracks" {
		t.Errorf("Store.Mongo.Collection = %q, want tracks", cfg.Store.Mongo.Collection)
	}
	if cfg.Store.Mongo.Database != "FYP_DEVELOPMENT" {
		t.Errorf("Store.Mongo.Database = %q, default should survive", cfg.Store.Mongo.Database)
	}
	if cfg.Recommend.DefaultLimit != 15 {
		t.Errorf("Recommend.DefaultLimit = %d, want 15", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.MaxLimit != 40 {
		t.Errorf("Recommend.MaxLimit = %d, env should win over file", cfg.Recommend.MaxLimit)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"MONGO_URI", "store.mongo.uri"},
		{"MONGODB_URI", "store.mongo.uri"},
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"RECOMMEND_LIMIT", "recommend.default_limit"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
