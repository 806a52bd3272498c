// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package algorithms

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector is zero.
func CosineSimilarity(a, b Vector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// PairwiseCosine returns an a.Rows() x b.Rows() matrix of cosine similarities.
func PairwiseCosine(a, b *Matrix) [][]float64 {
	out := make([][]float64, a.Rows())
	for i := range out {
		row := make([]float64, b.Rows())
		ai := a.Row(i)
		for j := range row {
			row[j] = CosineSimilarity(ai, b.Row(j))
		}
		out[i] = row
	}
	return out
}

// ColumnMeans averages sim over its rows, returning one value per column.
// Every row must have cols entries. With no rows the result is all zeros.
func ColumnMeans(sim [][]float64, cols int) []float64 {
	means := make([]float64, cols)
	if len(sim) == 0 {
		return means
	}
	for _, row := range sim {
		for j := 0; j < cols; j++ {
			means[j] += row[j]
		}
	}
	n := float64(len(sim))
	for j := range means {
		means[j] /= n
	}
	return means
}

// MeanSimilarity scores every row of target by its mean cosine similarity to
// the rows of query.
func MeanSimilarity(query, target *Matrix) []float64 {
	return ColumnMeans(PairwiseCosine(query, target), target.Rows())
}
