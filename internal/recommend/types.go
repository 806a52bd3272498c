// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import "context"

// Item is a song in the catalog.
type Item struct {
	// ID is the storage identifier rendered as text (a Mongo ObjectID in hex
	// for the production catalog). The JSON name matches what the web client reads.
	ID string `json:"_id"`

	// Title is the song title.
	Title string `json:"title"`

	// Artist is the performing artist.
	Artist string `json:"artist"`

	// Genre is a free-text genre label.
	Genre string `json:"genre"`

	// FilePath is the path of the uploaded audio file.
	FilePath string `json:"filePath"`

	// CoverImage is the path of the cover art.
	CoverImage string `json:"coverImage"`

	// LikedBy lists the IDs of users who liked the song.
	LikedBy []string `json:"likedBy"`
}

// FeatureText is the text the vectorizer sees: title and genre joined by a space.
func (i *Item) FeatureText() string {
	return i.Title + " " + i.Genre
}

// IsLikedBy reports whether userID appears in LikedBy.
func (i *Item) IsLikedBy(userID string) bool {
	for _, id := range i.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ScoredItem is a catalog item with its aggregate similarity to the liked set.
type ScoredItem struct {
	Item

	// Score is the mean cosine similarity to the liked songs, in [0, 1].
	// Fallback results carry a zero score.
	Score float64 `json:"score"`
}

// Catalog is the read side of song storage. Both methods return songs in the
// storage's natural order, which the ranker uses to break ties.
type Catalog interface {
	// FetchAllItems returns every song.
	FetchAllItems(ctx context.Context) ([]Item, error)

	// FetchLikedItems returns the songs whose LikedBy contains userID.
	FetchLikedItems(ctx context.Context, userID string) ([]Item, error)
}

// Request is a recommendation request.
type Request struct {
	// UserID identifies the user whose liked songs anchor the ranking.
	UserID string

	// Limit is the maximum number of songs returned. Zero selects the
	// configured default; values above the configured maximum are capped.
	Limit int

	// RequestID is attached to log lines. Empty is allowed.
	RequestID string
}

// Status classifies the outcome of a request.
type Status string

const (
	// StatusRanked means songs were ranked against the user's liked set.
	StatusRanked Status = "ranked"

	// StatusFallback means the user has no liked songs and the leading
	// catalog songs were returned unranked.
	StatusFallback Status = "fallback"

	// StatusNoRecommendations means the catalog is empty.
	StatusNoRecommendations Status = "no_recommendations"

	// StatusError means the request failed, typically because storage was unavailable.
	StatusError Status = "error"
)

// Result is the outcome of Engine.Recommend. Its JSON form is the response
// body of the recommendation endpoint.
type Result struct {
	Success bool   `json:"success"`
	Status  Status `json:"status"`
	Songs   []Item `json:"recommended_songs"`
	Error   string `json:"error,omitempty"`

	// Err is the underlying error for StatusNoRecommendations and StatusError.
	Err error `json:"-"`
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests          int64 `json:"requests"`
	Ranked            int64 `json:"ranked"`
	Fallbacks         int64 `json:"fallbacks"`
	NoRecommendations int64 `json:"no_recommendations"`
	Errors            int64 `json:"errors"`
}
