// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// seedSong accepts either a plain string _id or the Extended JSON form
// {"$oid": "..."} written by mongoexport.
type seedSong struct {
	Song
	RawID json.RawMessage `json:"_id"`
}

func (s *seedSong) id() (string, error) {
	raw := bytes.TrimSpace(s.RawID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	var ext struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &ext); err != nil {
		return "", err
	}
	if ext.OID == "" {
		return "", errors.New(`_id object has no "$oid"`)
	}
	return ext.OID, nil
}

// DecodeSeed reads songs from a JSON array or from newline-delimited JSON
// (one song per line, as used by mongoimport). Songs are returned in file
// order without validation.
func DecodeSeed(r io.Reader) ([]Song, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	dec := json.NewDecoder(br)
	var raw []seedSong
	if first == '[' {
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode seed array: %w", err)
		}
	} else {
		for n := 1; ; n++ {
			var s seedSong
			err := dec.Decode(&s)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("decode seed record %d: %w", n, err)
			}
			raw = append(raw, s)
		}
	}

	songs := make([]Song, len(raw))
	for i := range raw {
		id, err := raw[i].id()
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i+1, err)
		}
		songs[i] = raw[i].Song
		songs[i].ID = id
	}
	return songs, nil
}

// LoadSeedFile opens path and decodes it with DecodeSeed.
func LoadSeedFile(path string) ([]Song, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return DecodeSeed(f)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
