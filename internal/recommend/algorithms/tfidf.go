// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package algorithms

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyCorpus is returned when a VectorSpace is fitted on zero documents.
var ErrEmptyCorpus = errors.New("empty corpus: cannot fit vocabulary on zero documents")

// VectorSpace is a fitted TF-IDF vocabulary. Columns are ordered by term so
// fitting the same corpus always yields the same layout.
type VectorSpace struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	documents  int
}

// Fit learns the vocabulary and inverse document frequencies of texts.
func Fit(texts []string) (*VectorSpace, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	vs := &VectorSpace{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		documents:  len(texts),
	}
	for col, term := range terms {
		vs.vocabulary[term] = col
		vs.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vs, nil
}

// FitTransform fits a VectorSpace on texts and returns their matrix.
func FitTransform(texts []string) (*VectorSpace, *Matrix, error) {
	vs, err := Fit(texts)
	if err != nil {
		return nil, nil, err
	}
	return vs, vs.Transform(texts), nil
}

// Transform projects texts into the fitted space, one row per text in input
// order. Unknown terms are ignored; an empty input yields an empty matrix.
func (vs *VectorSpace) Transform(texts []string) *Matrix {
	m := &Matrix{
		rows: make([]Vector, len(texts)),
		cols: len(vs.terms),
	}
	for i, text := range texts {
		m.rows[i] = vs.vectorize(text)
	}
	return m
}

func (vs *VectorSpace) vectorize(text string) Vector {
	counts := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if col, ok := vs.vocabulary[tok]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		v.Indices = append(v.Indices, col)
	}
	sort.Ints(v.Indices)

	for _, col := range v.Indices {
		v.Values = append(v.Values, float64(counts[col])*vs.idf[col])
	}

	norm := v.Norm()
	for k := range v.Values {
		v.Values[k] /= norm
	}
	return v
}

// Len returns the vocabulary size.
func (vs *VectorSpace) Len() int {
	return len(vs.terms)
}

// documentCount returns how many texts the space was fitted on.
func (vs *VectorSpace) documentCount() int {
	return vs.documents
}

// vocabularyTerms returns the vocabulary in column order.
func (vs *VectorSpace) vocabularyTerms() []string {
	out := make([]string, len(vs.terms))
	copy(out, vs.terms)
	return out
}

// termIDF returns the inverse document frequency of term.
func (vs *VectorSpace) termIDF(term string) (float64, bool) {
	col, ok := vs.vocabulary[term]
	if !ok {
		return 0, false
	}
	return vs.idf[col], true
}
