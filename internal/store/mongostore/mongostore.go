// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package mongostore implements store.Store on a MongoDB songs collection.
//
// Documents use the layout of the existing Tunila web backend:
//
//	{
//	  "_id": ObjectId("..."),
//	  "title": "...", "artist": "...", "genre": "...",
//	  "filePath": "/uploads/songs/...", "coverImage": "/uploads/covers/...",
//	  "likedBy": ["<user id>", ...]
//	}
//
// ObjectIDs are exposed as their 24-character hex form; string _id values
// are passed through unchanged.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
)

// document is the BSON layout of one song.
type document struct {
	ID         any      `bson:"_id"`
	Title      *string  `bson:"title"`
	Artist     string   `bson:"artist"`
	Genre      *string  `bson:"genre"`
	FilePath   string   `bson:"filePath"`
	CoverImage string   `bson:"coverImage"`
	LikedBy    []string `bson:"likedBy"`
}

func (d *document) song() store.Song {
	return store.Song{
		ID:         formatID(d.ID),
		Title:      d.Title,
		Artist:     d.Artist,
		Genre:      d.Genre,
		FilePath:   d.FilePath,
		CoverImage: d.CoverImage,
		LikedBy:    d.LikedBy,
	}
}

// formatID renders an _id value as the string used in the API.
func formatID(id any) string {
	switch v := id.(type) {
	case bson.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// idFilter builds the _id filter for songID. Hex strings of ObjectID length
// match ObjectIDs; anything else matches a string _id.
func idFilter(songID string) (bson.M, error) {
	if songID == "" {
		return nil, store.ErrInvalidID
	}
	if oid, err := bson.ObjectIDFromHex(songID); err == nil {
		return bson.M{"_id": oid}, nil
	}
	return bson.M{"_id": songID}, nil
}

// Store is a MongoDB-backed store.Store.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     zerolog.Logger
	ownClient  bool
}

var _ store.Store = (*Store)(nil)

// Open connects to cfg.URI, verifies the connection with a ping and returns
// a Store on cfg.Database/cfg.Collection. The caller must Close it.
func Open(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := New(client.Database(cfg.Database).Collection(cfg.Collection))
	s.client = client
	s.ownClient = true

	s.logger.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("connected to mongo")
	return s, nil
}

// New returns a Store on an existing collection. Close does not disconnect
// the collection's client.
func New(collection *mongo.Collection) *Store {
	s := &Store{
		collection: collection,
		logger:     logging.With().Str("component", "mongostore").Logger(),
	}
	if collection != nil {
		s.client = collection.Database().Client()
	}
	return s
}

// find runs a query and converts the valid documents in cursor order.
func (s *Store) find(ctx context.Context, op string, filter bson.M) ([]recommend.Item, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, store.Unavailable(op, err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.Unavailable(op, err)
	}

	songs := make([]store.Song, len(docs))
	for i := range docs {
		songs[i] = docs[i].song()
	}
	return store.ToItems(songs, s.logger), nil
}

// FetchAllItems returns every song in natural collection order.
func (s *Store) FetchAllItems(ctx context.Context) ([]recommend.Item, error) {
	return s.find(ctx, "find songs", bson.M{})
}

// FetchLikedItems returns the songs whose likedBy contains userID.
func (s *Store) FetchLikedItems(ctx context.Context, userID string) ([]recommend.Item, error) {
	return s.find(ctx, "find liked songs", bson.M{"likedBy": userID})
}

// LikeSong adds userID to likedBy with $addToSet.
func (s *Store) LikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return s.updateLikes(ctx, "like song", songID, bson.M{"$addToSet": bson.M{"likedBy": userID}})
}

// UnlikeSong removes userID from likedBy with $pull.
func (s *Store) UnlikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return s.updateLikes(ctx, "unlike song", songID, bson.M{"$pull": bson.M{"likedBy": userID}})
}

func (s *Store) updateLikes(ctx context.Context, op, songID string, update bson.M) ([]string, error) {
	filter, err := idFilter(songID)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likedBy": 1})

	var doc document
	err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, store.Unavailable(op, err)
	}

	if doc.LikedBy == nil {
		return []string{}, nil
	}
	return doc.LikedBy, nil
}

// Insert adds songs in order and returns their IDs. Songs without an ID get
// a new ObjectID. It is used for seeding and tests.
func (s *Store) Insert(ctx context.Context, songs []store.Song) ([]string, error) {
	if len(songs) == 0 {
		return nil, nil
	}

	docs := make([]any, len(songs))
	ids := make([]string, len(songs))
	for i := range songs {
		var id any = bson.NewObjectID()
		if songs[i].ID != "" {
			if oid, err := bson.ObjectIDFromHex(songs[i].ID); err == nil {
				id = oid
			} else {
				id = songs[i].ID
			}
		}
		likedBy := songs[i].LikedBy
		if likedBy == nil {
			likedBy = []string{}
		}
		docs[i] = document{
			ID:         id,
			Title:      songs[i].Title,
			Artist:     songs[i].Artist,
			Genre:      songs[i].Genre,
			FilePath:   songs[i].FilePath,
			CoverImage: songs[i].CoverImage,
			LikedBy:    likedBy,
		}
		ids[i] = formatID(id)
	}

	if _, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, store.Unavailable("insert songs", err)
	}
	return ids, nil
}

// Count returns the number of songs in the collection.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, store.Unavailable("count songs", err)
	}
	return n, nil
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return store.Unavailable("ping", errors.New("no mongo client"))
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return store.Unavailable("ping", err)
	}
	return nil
}

// Close disconnects the client when the Store opened it.
func (s *Store) Close(ctx context.Context) error {
	if !s.ownClient || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// Backend implements store.Store.
func (s *Store) Backend() string {
	return store.BackendMongo
}
