// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package recommend produces content-based song recommendations.
//
// # Pipeline
//
// A request runs entirely in memory over a catalog snapshot:
//
//  1. Fetch the full catalog and the user's liked songs from the Catalog.
//  2. Fit a TF-IDF space on every song's title and genre, and project the
//     liked songs into that same space.
//  3. Score each catalog song by its mean cosine similarity to the liked songs.
//  4. Sort by score, keeping catalog order for ties, drop songs the user
//     already likes and keep the first Limit.
//
// A user with no liked songs gets the first Limit songs of the catalog, in
// catalog order. An empty catalog is reported as StatusNoRecommendations and
// a failed fetch as StatusError; neither reaches the ranking step.
//
// # Usage
//
//	engine, err := recommend.NewEngine(catalog, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	res := engine.Recommend(ctx, recommend.Request{UserID: userID, Limit: 10})
//	if !res.Success {
//	    // errors.Is(res.Err, recommend.ErrEmptyCorpus) or ErrStorageUnavailable
//	}
//
// # Thread Safety
//
// Engine is safe for concurrent use. Nothing computed for one request is
// shared with another; the vector space is rebuilt on every call so there is
// no cache to invalidate when the catalog changes.
//
// This package has no dependencies on other internal packages. Storage
// backends implement Catalog.
package recommend
