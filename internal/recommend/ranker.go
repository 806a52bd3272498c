// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import (
	"sort"

	"github.com/tomtom215/tunila/internal/recommend/algorithms"
)

// rankItems orders catalog by similarity to liked and returns at most limit songs
// the user does not already like. See RankScored.
func rankItems(catalog, liked []Item, limit int) ([]Item, error) {
	scored, err := RankScored(catalog, liked, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Item, len(scored))
	for i := range scored {
		out[i] = scored[i].Item
	}
	return out, nil
}

// RankScored is rankItems with the aggregate score kept on each result.
//
// An empty catalog yields ErrEmptyCorpus, even when liked is also empty.
// An empty liked set yields the first limit catalog songs in catalog order
// with zero scores. Otherwise every catalog song is scored by its mean
// cosine similarity to the liked songs, sorted by descending score with
// catalog order breaking ties, and liked songs (matched by ID) are dropped.
func RankScored(catalog, liked []Item, limit int) ([]ScoredItem, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCorpus
	}
	if len(liked) == 0 {
		return leading(catalog, limit), nil
	}

	scores, err := scoreCatalog(catalog, liked)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(catalog))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	exclude := make(map[string]struct{}, len(liked))
	for i := range liked {
		exclude[liked[i].ID] = struct{}{}
	}

	out := make([]ScoredItem, 0, min(limit, len(catalog)))
	for _, idx := range order {
		if len(out) == limit {
			break
		}
		if _, ok := exclude[catalog[idx].ID]; ok {
			continue
		}
		out = append(out, ScoredItem{Item: catalog[idx], Score: scores[idx]})
	}
	return out, nil
}

// scoreCatalog returns one mean similarity per catalog song. The vector space
// is fitted on the catalog only; the liked songs are projected into it.
func scoreCatalog(catalog, liked []Item) ([]float64, error) {
	space, catalogMatrix, err := algorithms.FitTransform(featureTexts(catalog))
	if err != nil {
		return nil, err
	}
	likedMatrix := space.Transform(featureTexts(liked))
	return algorithms.MeanSimilarity(likedMatrix, catalogMatrix), nil
}

func featureTexts(items []Item) []string {
	texts := make([]string, len(items))
	for i := range items {
		texts[i] = items[i].FeatureText()
	}
	return texts
}

func leading(catalog []Item, limit int) []ScoredItem {
	n := min(limit, len(catalog))
	out := make([]ScoredItem, n)
	for i := 0; i < n; i++ {
		out[i] = ScoredItem{Item: catalog[i]}
	}
	return out
}
