// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

//go:build integration

package testinfra

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMongoContainer_Integration(t *testing.T) {
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongo, err := NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("NewMongoContainer() error = %v", err)
	}
	defer CleanupContainer(t, ctx, mongo)

	if !strings.HasPrefix(mongo.URI, "mongodb://") {
		t.Errorf("URI = %q, want mongodb:// prefix", mongo.URI)
	}

	state, err := mongo.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if !state.Running {
		t.Errorf("container state = %q, want running", state.Status)
	}
}

func TestMongoOptions(t *testing.T) {
	cfg := &mongoConfig{image: DefaultMongoImage, startTimeout: time.Minute}

	WithMongoImage("mongo:6")(cfg)
	WithMongoStartTimeout(5 * time.Second)(cfg)

	if cfg.image != "mongo:6" {
		t.Errorf("image = %q, want mongo:6", cfg.image)
	}
	if cfg.startTimeout != 5*time.Second {
		t.Errorf("startTimeout = %v, want 5s", cfg.startTimeout)
	}
}

func TestIsDockerAvailable(t *testing.T) {
	t.Logf("Docker available: %v", IsDockerAvailable())
}
