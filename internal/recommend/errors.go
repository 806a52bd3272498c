// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/tunila/internal/recommend/algorithms"
)

var (
	// ErrEmptyCorpus means the catalog has no songs, so nothing can be recommended.
	ErrEmptyCorpus = algorithms.ErrEmptyCorpus

	// ErrStorageUnavailable means the catalog or liked set could not be read.
	// Catalog implementations should wrap their failures with it.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidLimit is returned for a negative result size.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// storageError tags err as ErrStorageUnavailable unless it already is or the
// caller canceled the request.
func storageError(op string, err error) error {
	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
