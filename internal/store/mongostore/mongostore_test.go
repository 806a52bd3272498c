// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package mongostore

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tomtom215/tunila/internal/store"
)

func TestStore_ImplementsStore(t *testing.T) {
	var _ store.Store = (*Store)(nil)
}

func TestNew_NilCollection(t *testing.T) {
	s := New(nil)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
	if s.Backend() != store.BackendMongo {
		t.Errorf("Backend() = %q, want %q", s.Backend(), store.BackendMongo)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Ping() without client = %v, want ErrUnavailable", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close() on unowned store = %v, want nil", err)
	}
}

func TestFormatID(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		id   any
		want string
	}{
		{"object id", oid, oid.Hex()},
		{"string", "song-1", "song-1"},
		{"nil", nil, ""},
		{"int", int32(7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatID(tt.id); got != tt.want {
				t.Errorf("formatID(%v) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIDFilter(t *testing.T) {
	oid := bson.NewObjectID()

	filter, err := idFilter(oid.Hex())
	if err != nil {
		t.Fatalf("idFilter(hex) error = %v", err)
	}
	if got, ok := filter["_id"].(bson.ObjectID); !ok || got != oid {
		t.Errorf("idFilter(hex) = %v, want ObjectID %s", filter, oid.Hex())
	}

	filter, err = idFilter("custom-id")
	if err != nil {
		t.Fatalf("idFilter(string) error = %v", err)
	}
	if got, ok := filter["_id"].(string); !ok || got != "custom-id" {
		t.Errorf("idFilter(string) = %v, want string _id", filter)
	}

	if _, err := idFilter(""); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("idFilter(\"\") error = %v, want ErrInvalidID", err)
	}
}

func TestDocumentSong(t *testing.T) {
	title, genre := "Giant Steps", "jazz"
	oid := bson.NewObjectID()
	doc := document{
		ID:         oid,
		Title:      &title,
		Artist:     "Coltrane",
		Genre:      &genre,
		FilePath:   "/uploads/songs/a.mp3",
		CoverImage: "/uploads/covers/a.png",
		LikedBy:    []string{"u1"},
	}

	song := doc.song()
	item, err := song.Item()
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if item.ID != oid.Hex() || item.Title != title || item.Genre != genre || item.Artist != "Coltrane" {
		t.Errorf("item = %+v", item)
	}
	if len(item.LikedBy) != 1 || item.LikedBy[0] != "u1" {
		t.Errorf("LikedBy = %v, want [u1]", item.LikedBy)
	}
}

func TestDocumentRoundTripsThroughBSON(t *testing.T) {
	title, genre := "So What", "jazz"
	oid := bson.NewObjectID()
	in := document{ID: oid, Title: &title, Genre: &genre, LikedBy: []string{"u1", "u2"}}

	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out document
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if formatID(out.ID) != oid.Hex() {
		t.Errorf("ID = %v, want %s", out.ID, oid.Hex())
	}
	if out.Title == nil || *out.Title != title {
		t.Errorf("Title = %v, want %q", out.Title, title)
	}
}

func TestDocumentMissingTitleFailsValidation(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": "x", "genre": "rock"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var doc document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	song := doc.song()
	if _, err := song.Item(); err == nil {
		t.Error("expected validation error for missing title")
	}
}
