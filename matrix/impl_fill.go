// SPDX-License-Identifier: MIT

// Package matrix - bulk initialization and export.
//
// Purpose:
//   - Fill / RandomFill write through the shared buffer (views included).
//   - FromFlat / FromNested build fresh owners from Go slices.
//   - ToNested / ToFlat materialize independent copies (never alias the buffer).
//
// Determinism:
//   - RandomFill uses a seeded PCG generator and a fixed row-major visiting
//     order, so equal (seed, shape, range) reproduce identical contents.

package matrix

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	ctxFill       = "Fill"
	ctxRandomFill = "RandomFill"
	ctxFromFlat   = "FromFlat"
	ctxFromNested = "FromNested"
)

// Fill sets every element of m to v.
// Errors: ErrNilMatrix, ErrReleased, ErrNaNInf (finite-only policy).
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if err := liveDense(m); err != nil {
		return matrixErrorf(ctxFill, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return matrixErrorf(ctxFill, ErrNaNInf)
	}
	for i := 0; i < m.r; i++ {
		row := m.row(i)
		for j := range row {
			row[j] = v
		}
	}

	return nil
}

// RandomFill fills m with values drawn uniformly from [low, high) using a
// generator seeded with seed.
// MAIN DESCRIPTION:
//   - Reproducible pseudo-random initialization for tests and benchmarks.
//
// Implementation:
//   - Stage 1: validate low < high, both finite, high-low finite.
//   - Stage 2: seed PCG(seed, seed); visit cells row-major; v = low + (high-low)*u.
//   - Stage 3: clamp the rare rounding case v == high to the largest value below high.
//
// Errors:
//   - ErrInvalidArgument for an empty or non-finite range, or one wider than MaxFloat64.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) RandomFill(seed uint64, low, high float64) error {
	if err := liveDense(m); err != nil {
		return matrixErrorf(ctxRandomFill, err)
	}
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) || low >= high {
		return matrixErrorf(ctxRandomFill, fmt.Errorf("range [%g, %g): %w", low, high, ErrInvalidArgument))
	}
	span := high - low
	if math.IsInf(span, 0) {
		return matrixErrorf(ctxRandomFill, fmt.Errorf("range [%g, %g) width overflows: %w", low, high, ErrInvalidArgument))
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	var v float64
	for i := 0; i < m.r; i++ {
		row := m.row(i)
		for j := range row {
			v = low + span*rng.Float64()
			if v >= high {
				v = math.Nextafter(high, low)
			}
			row[j] = v
		}
	}

	return nil
}

// FromFlat builds a rows×cols owner from a row-major slice of length rows*cols.
// Errors: ErrAllocation for a non-positive shape; ErrDimensionMismatch when
// len(values) != rows*cols; ErrNaNInf under the finite-only policy.
func FromFlat(rows, cols int, values []float64, opts ...Option) (*Dense, error) {
	m, err := Allocate(rows, cols, opts...)
	if err != nil {
		return nil, matrixErrorf(ctxFromFlat, err)
	}
	if len(values) != rows*cols {
		_ = m.Release()
		return nil, matrixErrorf(ctxFromFlat, fmt.Errorf("%d values for %dx%d: %w", len(values), rows, cols, ErrDimensionMismatch))
	}
	if m.validateNaNInf {
		for idx, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				_ = m.Release()
				return nil, matrixErrorf(ctxFromFlat, denseErrorf(ctxSet, idx/cols, idx%cols, ErrNaNInf))
			}
		}
	}
	copy(m.buf.data, values)

	return m, nil
}

// FromNested builds an owner from a rectangular slice of rows.
// Errors: ErrAllocation for no rows or empty rows; ErrDimensionMismatch for ragged input.
func FromNested(values [][]float64, opts ...Option) (*Dense, error) {
	rows := len(values)
	if rows == 0 {
		return nil, matrixErrorf(ctxFromNested, fmt.Errorf("%w: no rows: %w", ErrAllocation, ErrInvalidDimensions))
	}
	cols := len(values[0])
	for i, r := range values {
		if len(r) != cols {
			return nil, matrixErrorf(ctxFromNested, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), cols, ErrDimensionMismatch))
		}
	}
	m, err := Allocate(rows, cols, opts...)
	if err != nil {
		return nil, matrixErrorf(ctxFromNested, err)
	}
	for i, r := range values {
		for j, v := range r {
			if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
				_ = m.Release()
				return nil, matrixErrorf(ctxFromNested, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
			m.put(i, j, v)
		}
	}

	return m, nil
}

// ToNested returns a row-major [][]float64 copy of m. The result never
// aliases the matrix buffer. A nil or released matrix yields nil.
// Complexity: O(r*c).
func (m *Dense) ToNested() [][]float64 {
	if liveDense(m) != nil {
		return nil
	}
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.row(i)...)
	}

	return out
}

// ToFlat returns a row-major copy of m of length Rows()*Cols().
func (m *Dense) ToFlat() []float64 {
	if liveDense(m) != nil {
		return nil
	}
	out := make([]float64, 0, m.r*m.c)
	for i := 0; i < m.r; i++ {
		out = append(out, m.row(i)...)
	}

	return out
}
