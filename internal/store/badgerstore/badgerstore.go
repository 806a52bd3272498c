// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package badgerstore implements store.Store on an embedded BadgerDB, for
// running Tunila without a MongoDB deployment.
//
// Key layout:
//
//	song:<seq>              JSON-encoded store.Song; seq is a big-endian uint64
//	song_id:<id>            -> song:<seq>
//	like:<user>\x00<seq>    present while <user> likes the song at <seq>
//	meta:seq                last assigned seq
//
// Songs iterate in seq order, which is the order they were first written;
// that order is the catalog order seen by the ranker.
package badgerstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tunila/internal/config"
	"github.com/tomtom215/tunila/internal/logging"
	"github.com/tomtom215/tunila/internal/recommend"
	"github.com/tomtom215/tunila/internal/store"
)

const (
	songKeyPrefix   = "song:"
	songIDKeyPrefix = "song_id:"
	likeKeyPrefix   = "like:"
	seqKey          = "meta:seq"
)

func songKey(seq uint64) []byte {
	key := make([]byte, len(songKeyPrefix)+8)
	copy(key, songKeyPrefix)
	binary.BigEndian.PutUint64(key[len(songKeyPrefix):], seq)
	return key
}

func songIDKey(id string) []byte {
	return []byte(songIDKeyPrefix + id)
}

func likePrefix(userID string) []byte {
	return []byte(likeKeyPrefix + userID + "\x00")
}

func likeKey(userID string, seq uint64) []byte {
	prefix := likePrefix(userID)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], seq)
	return key
}

// Store is a BadgerDB-backed store.Store.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
	ownDB  bool
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database at cfg.Path, or an in-memory
// database when cfg.InMemory is set. The caller must Close it.
func Open(cfg config.BadgerConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := New(db)
	s.ownDB = true
	s.logger.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("opened badger store")
	return s, nil
}

// New returns a Store on an already open database. Close does not close db.
func New(db *badger.DB) *Store {
	return &Store{
		db:     db,
		logger: logging.With().Str("component", "badgerstore").Logger(),
	}
}

// Put inserts or replaces songs, in order. A song with an existing ID keeps
// its catalog position; new songs are appended. Songs without an ID get a
// random UUID. Every song is validated before anything is written.
func (s *Store) Put(ctx context.Context, songs []store.Song) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, len(songs))
	for i := range songs {
		if songs[i].ID == "" {
			songs[i].ID = uuid.NewString()
		}
		songs[i].LikedBy = store.CompactLikes(songs[i].LikedBy)
		if err := songs[i].Validate(); err != nil {
			return nil, fmt.Errorf("song %d: %w", i+1, err)
		}
		ids[i] = songs[i].ID
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		next, err := readSeq(txn)
		if err != nil {
			return err
		}

		for i := range songs {
			seq, existing, err := lookupSeq(txn, songs[i].ID)
			if err != nil {
				return err
			}
			if existing {
				old, err := getSong(txn, seq)
				if err != nil {
					return err
				}
				if err := unindexLikes(txn, old.LikedBy, seq); err != nil {
					return err
				}
			} else {
				next++
				seq = next
				if err := txn.Set(songIDKey(songs[i].ID), songKey(seq)); err != nil {
					return fmt.Errorf("set song id: %w", err)
				}
			}

			if err := putSong(txn, seq, &songs[i]); err != nil {
				return err
			}
		}

		return writeSeq(txn, next)
	})
	if err != nil {
		return nil, store.Unavailable("put songs", err)
	}
	return ids, nil
}

// SeedFile loads songs from path (see store.DecodeSeed) into an empty
// database. A database that already holds songs is left untouched and 0 is
// returned.
func (s *Store) SeedFile(ctx context.Context, path string) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int("songs", n).Str("seed_file", path).Msg("store already populated, skipping seed")
		return 0, nil
	}

	songs, err := store.LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := s.Put(ctx, songs); err != nil {
		return 0, fmt.Errorf("seed %s: %w", path, err)
	}
	s.logger.Info().Int("songs", len(songs)).Str("seed_file", path).Msg("seeded store")
	return len(songs), nil
}

// Count returns the number of stored songs.
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(songKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, store.Unavailable("count songs", err)
	}
	return n, nil
}

// FetchAllItems returns every valid song in catalog order.
func (s *Store) FetchAllItems(ctx context.Context) ([]recommend.Item, error) {
	var songs []store.Song
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(songKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var song store.Song
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &song)
			})
			if err != nil {
				return fmt.Errorf("decode %q: %w", it.Item().Key(), err)
			}
			songs = append(songs, song)
		}
		return nil
	})
	if err != nil {
		return nil, store.Unavailable("scan songs", err)
	}
	return store.ToItems(songs, s.logger), nil
}

// FetchLikedItems returns the songs userID likes, in catalog order.
func (s *Store) FetchLikedItems(ctx context.Context, userID string) ([]recommend.Item, error) {
	var songs []store.Song
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := likePrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().Key()
			seq := binary.BigEndian.Uint64(key[len(prefix):])
			song, err := getSong(txn, seq)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			songs = append(songs, *song)
		}
		return nil
	})
	if err != nil {
		return nil, store.Unavailable("scan liked songs", err)
	}
	return store.ToItems(songs, s.logger), nil
}

// LikeSong implements store.Store.
func (s *Store) LikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return s.updateLikes(ctx, "like song", songID, func(txn *badger.Txn, song *store.Song, seq uint64) error {
		song.LikedBy = store.AddLike(song.LikedBy, userID)
		return txn.Set(likeKey(userID, seq), nil)
	})
}

// UnlikeSong implements store.Store.
func (s *Store) UnlikeSong(ctx context.Context, songID, userID string) ([]string, error) {
	return s.updateLikes(ctx, "unlike song", songID, func(txn *badger.Txn, song *store.Song, seq uint64) error {
		song.LikedBy = store.RemoveLike(song.LikedBy, userID)
		return txn.Delete(likeKey(userID, seq))
	})
}

func (s *Store) updateLikes(ctx context.Context, op, songID string, apply func(*badger.Txn, *store.Song, uint64) error) ([]string, error) {
	if songID == "" {
		return nil, store.ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var likedBy []string
	err := s.db.Update(func(txn *badger.Txn) error {
		seq, ok, err := lookupSeq(txn, songID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrNotFound
		}
		song, err := getSong(txn, seq)
		if err != nil {
			return err
		}
		if err := apply(txn, song, seq); err != nil {
			return err
		}
		likedBy = song.LikedBy
		return putSong(txn, seq, song)
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Unavailable(op, err)
	}
	if likedBy == nil {
		likedBy = []string{}
	}
	return likedBy, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil || s.db.IsClosed() {
		return store.Unavailable("ping", errors.New("badger db is closed"))
	}
	return ctx.Err()
}

// Close closes the database when the Store opened it.
func (s *Store) Close(context.Context) error {
	if !s.ownDB || s.db == nil || s.db.IsClosed() {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger db: %w", err)
	}
	return nil
}

// Backend implements store.Store.
func (s *Store) Backend() string {
	return store.BackendBadger
}

func readSeq(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get([]byte(seqKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get seq: %w", err)
	}
	var seq uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("seq value has %d bytes", len(val))
		}
		seq = binary.BigEndian.Uint64(val)
		return nil
	})
	return seq, err
}

func writeSeq(txn *badger.Txn, seq uint64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, seq)
	if err := txn.Set([]byte(seqKey), val); err != nil {
		return fmt.Errorf("set seq: %w", err)
	}
	return nil
}

// lookupSeq resolves a song ID to its seq.
func lookupSeq(txn *badger.Txn, id string) (uint64, bool, error) {
	item, err := txn.Get(songIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get song id: %w", err)
	}
	var seq uint64
	err = item.Value(func(val []byte) error {
		if len(val) != len(songKeyPrefix)+8 {
			return fmt.Errorf("song id %q points at malformed key", id)
		}
		seq = binary.BigEndian.Uint64(val[len(songKeyPrefix):])
		return nil
	})
	return seq, err == nil, err
}

func getSong(txn *badger.Txn, seq uint64) (*store.Song, error) {
	item, err := txn.Get(songKey(seq))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	var song store.Song
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &song)
	}); err != nil {
		return nil, fmt.Errorf("decode song: %w", err)
	}
	return &song, nil
}

func putSong(txn *badger.Txn, seq uint64, song *store.Song) error {
	data, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("marshal song: %w", err)
	}
	if err := txn.Set(songKey(seq), data); err != nil {
		return fmt.Errorf("set song: %w", err)
	}
	for _, userID := range song.LikedBy {
		if err := txn.Set(likeKey(userID, seq), nil); err != nil {
			return fmt.Errorf("set like index: %w", err)
		}
	}
	return nil
}

func unindexLikes(txn *badger.Txn, likedBy []string, seq uint64) error {
	for _, userID := range likedBy {
		if err := txn.Delete(likeKey(userID, seq)); err != nil {
			return fmt.Errorf("delete like index: %w", err)
		}
	}
	return nil
}
