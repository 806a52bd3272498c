// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func song(id, title, genre string) Item {
	return Item{ID: id, Title: title, Genre: genre}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestRankScenarios(t *testing.T) {
	t.Parallel()

	a := song("A", "rock anthem", "rock")
	b := song("B", "rock anthem", "rock")
	c := song("C", "jazz tune", "jazz")
	five := []Item{
		song("1", "one", "pop"), song("2", "two", "pop"), song("3", "three", "rock"),
		song("4", "four", "jazz"), song("5", "five", "blues"),
	}

	tests := []struct {
		name    string
		catalog []Item
		liked   []Item
		limit   int
		want    []string
		wantErr error
	}{
		{
			name:    "similar song outranks dissimilar, liked excluded",
			catalog: []Item{a, b, c},
			liked:   []Item{a},
			limit:   10,
			want:    []string{"B", "C"},
		},
		{
			name:    "empty liked set falls back to catalog order",
			catalog: five,
			limit:   3,
			want:    []string{"1", "2", "3"},
		},
		{
			name:    "fallback shorter than limit",
			catalog: five[:2],
			limit:   5,
			want:    []string{"1", "2"},
		},
		{
			name:    "empty catalog and empty liked set",
			limit:   10,
			wantErr: ErrEmptyCorpus,
		},
		{
			name:    "empty catalog with liked songs",
			liked:   []Item{a},
			limit:   10,
			wantErr: ErrEmptyCorpus,
		},
		{
			name:    "zero limit",
			catalog: five,
			limit:   0,
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "everything liked leaves nothing",
			catalog: []Item{a, c},
			liked:   []Item{a, c},
			limit:   10,
			want:    []string{},
		},
		{
			name:    "truncates to limit",
			catalog: []Item{a, b, c, song("D", "rock ballad", "rock")},
			liked:   []Item{a},
			limit:   2,
			want:    []string{"B", "D"},
		},
		{
			name:    "liked song missing from catalog still anchors ranking",
			catalog: []Item{c, b},
			liked:   []Item{a},
			limit:   10,
			want:    []string{"B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rankItems(tt.catalog, tt.liked, tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("rankItems() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("rankItems() error = %v", err)
			}
			if gotIDs := ids(got); !reflect.DeepEqual(gotIDs, tt.want) {
				t.Errorf("rankItems() = %v, want %v", gotIDs, tt.want)
			}
		})
	}
}

func TestRankTieBreakUsesCatalogOrder(t *testing.T) {
	t.Parallel()

	liked := song("L", "summer", "pop")
	catalog := []Item{
		song("X", "winter", "metal"),
		song("P", "summer", "pop"),
		song("Y", "autumn", "folk"),
		song("Q", "summer", "pop"),
		liked,
		song("Z", "spring", "ska"),
	}

	got, err := RankScored(catalog, []Item{liked}, 10)
	if err != nil {
		t.Fatalf("RankScored() error = %v", err)
	}

	want := []string{"P", "Q", "X", "Y", "Z"}
	var gotIDs []string
	for _, s := range got {
		gotIDs = append(gotIDs, s.ID)
	}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("order = %v, want %v", gotIDs, want)
	}
	if got[0].Score != got[1].Score {
		t.Errorf("identical songs scored %v and %v", got[0].Score, got[1].Score)
	}
	for _, s := range got[2:] {
		if s.Score != 0 {
			t.Errorf("%s score = %v, want 0", s.ID, s.Score)
		}
	}
}

func TestRankToleratesBlankFeatureText(t *testing.T) {
	t.Parallel()

	catalog := []Item{
		song("blank", "", ""),
		song("space", "  ", " "),
		song("rock", "stone", "rock"),
	}
	liked := []Item{song("blank", "", "")}

	got, err := RankScored(catalog, liked, 10)
	if err != nil {
		t.Fatalf("RankScored() error = %v, want tolerance of blank text", err)
	}
	if gotIDs := ids(unscore(got)); !reflect.DeepEqual(gotIDs, []string{"space", "rock"}) {
		t.Errorf("order = %v, want catalog order for all-zero scores", gotIDs)
	}
}

func unscore(in []ScoredItem) []Item {
	out := make([]Item, len(in))
	for i := range in {
		out[i] = in[i].Item
	}
	return out
}

// randomCatalog builds n songs from a small vocabulary so overlaps and ties are common.
func randomCatalog(rng *rand.Rand, n int) []Item {
	words := []string{"love", "night", "rock", "pop", "blue", "fire", "dance", "jazz", "soul", "rain"}
	items := make([]Item, n)
	for i := range items {
		title := words[rng.Intn(len(words))] + " " + words[rng.Intn(len(words))]
		items[i] = song(fmt.Sprintf("s%03d", i), title, words[rng.Intn(len(words))])
	}
	return items
}

func TestRankProperties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data

	for iter := 0; iter < 200; iter++ {
		catalog := randomCatalog(rng, 1+rng.Intn(30))
		limit := 1 + rng.Intn(15)

		var liked []Item
		for i := range catalog {
			if rng.Intn(4) == 0 {
				liked = append(liked, catalog[i])
			}
		}

		got, err := rankItems(catalog, liked, limit)
		if err != nil {
			t.Fatalf("iter %d: rankItems() error = %v", iter, err)
		}

		likedIDs := make(map[string]bool, len(liked))
		for _, l := range liked {
			likedIDs[l.ID] = true
		}

		if len(got) > limit {
			t.Fatalf("iter %d: len = %d > limit %d", iter, len(got), limit)
		}
		if len(got) > len(catalog)-len(likedIDs) {
			t.Fatalf("iter %d: len = %d > |catalog| - |liked| = %d", iter, len(got), len(catalog)-len(likedIDs))
		}
		if want := min(limit, len(catalog)-len(likedIDs)); len(liked) > 0 && len(got) != want {
			t.Fatalf("iter %d: len = %d, want %d", iter, len(got), want)
		}
		for _, g := range got {
			if likedIDs[g.ID] {
				t.Fatalf("iter %d: liked song %s returned", iter, g.ID)
			}
		}

		if len(liked) == 0 {
			want := ids(catalog[:min(limit, len(catalog))])
			if !reflect.DeepEqual(ids(got), want) {
				t.Fatalf("iter %d: fallback = %v, want %v", iter, ids(got), want)
			}
		}

		again, _ := rankItems(catalog, liked, limit)
		if !reflect.DeepEqual(got, again) {
			t.Fatalf("iter %d: rankItems() not deterministic", iter)
		}
	}
}

func TestRankScoresAreOrdered(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11)) //nolint:gosec // deterministic test data
	catalog := randomCatalog(rng, 40)
	liked := []Item{catalog[3], catalog[17]}

	got, err := RankScored(catalog, liked, 40)
	if err != nil {
		t.Fatal(err)
	}

	position := make(map[string]int, len(catalog))
	for i := range catalog {
		position[catalog[i].ID] = i
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Score > prev.Score {
			t.Errorf("scores not descending at %d: %v > %v", i, cur.Score, prev.Score)
		}
		if cur.Score == prev.Score && position[cur.ID] < position[prev.ID] {
			t.Errorf("tie between %s and %s not in catalog order", prev.ID, cur.ID)
		}
	}
}
