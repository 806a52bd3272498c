// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package algorithms

import "math"

// Vector is a sparse row. Indices are strictly ascending column numbers and
// Values[i] is the weight at Indices[i]. Zero weights are never stored.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero entries.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product with w.
func (v Vector) Dot(w Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] == w.Indices[j]:
			sum += v.Values[i] * w.Values[j]
			i++
			j++
		case v.Indices[i] < w.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// dense expands the vector to cols columns.
func (v Vector) dense(cols int) []float64 {
	out := make([]float64, cols)
	for k, idx := range v.Indices {
		if idx < cols {
			out[idx] = v.Values[k]
		}
	}
	return out
}

// Matrix is an ordered list of sparse rows sharing one column space.
type Matrix struct {
	rows []Vector
	cols int
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Cols returns the number of columns (the vocabulary size).
func (m *Matrix) Cols() int {
	return m.cols
}

// Row returns row i. The returned vector shares memory with the matrix and
// must not be modified.
func (m *Matrix) Row(i int) Vector {
	return m.rows[i]
}
