// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package testinfra starts throwaway containers for integration tests.
//
// Everything here is behind the "integration" build tag and needs a Docker
// daemon; tests call SkipIfNoDocker first so they degrade to a skip on
// machines without one.
//
//	//go:build integration
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//	    // connect to mongo.URI
//	}
//
// Run with:
//
//	go test -tags integration ./...
package testinfra
