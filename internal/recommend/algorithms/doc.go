// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package algorithms holds the numeric building blocks of the content-based
// recommender: a TF-IDF vectorizer and cosine similarity over its sparse rows.
//
// # Vectorization
//
// FitTransform learns a VectorSpace from the catalog's feature texts and
// returns the catalog matrix in the same call. Any other text (the user's
// liked songs) must be projected with the same VectorSpace:
//
//	space, catalog, err := algorithms.FitTransform(catalogTexts)
//	if err != nil {
//	    return err // ErrEmptyCorpus
//	}
//	liked := space.Transform(likedTexts)
//	scores := algorithms.MeanSimilarity(liked, catalog)
//
// Weighting follows the common smoothed TF-IDF recipe:
//
//	tf(t, d)  = raw count of t in d
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d)   = tf(t, d) * idf(t), then each row is scaled to unit L2 norm
//
// Terms outside the fitted vocabulary are ignored by Transform. A text with
// no in-vocabulary tokens becomes an all-zero row; its cosine similarity with
// anything is 0.
//
// Nothing in this package keeps state between calls, so all functions are
// safe for concurrent use. A VectorSpace is immutable once fitted.
package algorithms
