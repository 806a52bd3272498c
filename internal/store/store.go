// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package store defines the song storage contract shared by the Mongo and
// Badger backends, plus the wrappers (circuit breaker, instrumentation) that
// sit between a backend and the recommendation engine.
//
// Every backend decodes its native records into Song, which is validated
// before it is handed to the rest of the service as a recommend.Item.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/validation"
)

// Backend names, as used in config and metric labels.
const (
	BackendMongo  = "mongo"
	BackendBadger = "badger"
)

var (
	// ErrNotFound means the song does not exist.
	ErrNotFound = errors.New("song not found")

	// ErrInvalidID means the song ID cannot address a record in the backend.
	ErrInvalidID = errors.New("invalid song id")

	// ErrUnavailable is recommend.ErrStorageUnavailable, re-exported so callers
	// of this package do not need to import recommend to test for it.
	ErrUnavailable = recommend.ErrStorageUnavailable
)

// Unavailable wraps a backend failure so it matches ErrUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// Store is a song catalog that also records which users like which songs.
type Store interface {
	recommend.Catalog

	// LikeSong adds userID to the song's likedBy list and returns the new list.
	// Liking twice is a no-op.
	LikeSong(ctx context.Context, songID, userID string) ([]string, error)

	// UnlikeSong removes userID from the song's likedBy list and returns the new list.
	UnlikeSong(ctx context.Context, songID, userID string) ([]string, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend handle.
	Close(ctx context.Context) error

	// Backend returns the backend name (BackendMongo, BackendBadger).
	Backend() string
}

// Song is the storage representation of a song.
//
// Title and Genre are pointers so a missing field is told apart from an
// empty one: missing is rejected, empty text is allowed and simply produces
// a zero feature vector.
type Song struct {
	ID         string   `json:"_id" validate:"required,identifier"`
	Title      *string  `json:"title" validate:"required"`
	Artist     string   `json:"artist"`
	Genre      *string  `json:"genre" validate:"required"`
	FilePath   string   `json:"filePath"`
	CoverImage string   `json:"coverImage"`
	LikedBy    []string `json:"likedBy" validate:"dive,required"`
}

// Validate checks the song against its validation tags.
func (s *Song) Validate() error {
	if verr := validation.ValidateStruct(s); verr != nil {
		return verr
	}
	return nil
}

// Item validates the song and converts it to a recommend.Item. Blank entries
// in LikedBy are dropped rather than rejecting the whole record.
func (s *Song) Item() (recommend.Item, error) {
	clean := *s
	clean.LikedBy = CompactLikes(s.LikedBy)
	if err := clean.Validate(); err != nil {
		return recommend.Item{}, err
	}
	return recommend.Item{
		ID:         s.ID,
		Title:      *s.Title,
		Artist:     s.Artist,
		Genre:      *s.Genre,
		FilePath:   s.FilePath,
		CoverImage: s.CoverImage,
		LikedBy:    clean.LikedBy,
	}, nil
}

// SongFromItem is the inverse of Song.Item.
func SongFromItem(item recommend.Item) Song {
	title, genre := item.Title, item.Genre
	return Song{
		ID:         item.ID,
		Title:      &title,
		Artist:     item.Artist,
		Genre:      &genre,
		FilePath:   item.FilePath,
		CoverImage: item.CoverImage,
		LikedBy:    item.LikedBy,
	}
}

// ToItems converts songs in order, dropping records that fail validation.
// Dropped records are logged with their ID and the failed rules.
func ToItems(songs []Song, logger zerolog.Logger) []recommend.Item {
	items := make([]recommend.Item, 0, len(songs))
	for i := range songs {
		item, err := songs[i].Item()
		if err != nil {
			logger.Warn().Err(err).Str("song_id", songs[i].ID).Msg("skipping invalid song record")
			continue
		}
		items = append(items, item)
	}
	return items
}

// CompactLikes returns likedBy without empty user IDs. The result is never nil.
func CompactLikes(likedBy []string) []string {
	out := make([]string, 0, len(likedBy))
	for _, id := range likedBy {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// AddLike returns likedBy with userID appended unless already present.
func AddLike(likedBy []string, userID string) []string {
	for _, id := range likedBy {
		if id == userID {
			return likedBy
		}
	}
	return append(likedBy, userID)
}

// RemoveLike returns likedBy without any occurrence of userID.
func RemoveLike(likedBy []string, userID string) []string {
	out := make([]string, 0, len(likedBy))
	for _, id := range likedBy {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
