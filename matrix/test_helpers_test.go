// SPDX-License-Identifier: MIT

// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/numc/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) kernel paths.
// Aliasing checks only see *Dense operands, so never hide an operand that
// shares the result buffer.
type hide struct{ matrix.Matrix }

// tb is the subset of testing.TB used by helpers (tests and benchmarks).
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

// mustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func mustDense(t tb, r, c int, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	m, err := matrix.Allocate(r, c, opts...)
	if err != nil {
		t.Fatalf("Allocate(%d,%d): %v", r, c, err)
	}

	return m
}

// mustNested builds a *Dense from rows or fails the test.
func mustNested(t tb, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromNested(rows)
	if err != nil {
		t.Fatalf("FromNested: %v", err)
	}

	return m
}

// mustFilled allocates an r×c matrix with every cell set to v.
func mustFilled(t tb, r, c int, v float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFilled(r, c, v)
	if err != nil {
		t.Fatalf("NewFilled(%d,%d,%g): %v", r, c, v, err)
	}

	return m
}

// mustRandom allocates an r×c matrix with RandomFill(seed, -1, 1).
func mustRandom(t tb, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewRandom(r, c, seed, -1, 1)
	if err != nil {
		t.Fatalf("NewRandom(%d,%d): %v", r, c, err)
	}

	return m
}

// requireCells asserts m's contents equal want exactly (row-major nested).
func requireCells(t *testing.T, want [][]float64, m *matrix.Dense) {
	t.Helper()
	require.Equal(t, want, m.ToNested())
}

// requireEqual asserts exact element-wise equality of two matrices.
func requireEqual(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.Equal(got, want)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// naiveMul is the reference triple sum: cell = 0 + Σ_k a[i,k]*b[k,j] in ascending k,
// with each product rounded separately.
func naiveMul(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a), len(b), len(b[0])
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			s := 0.0
			for k := 0; k < inner; k++ {
				s += float64(a[i][k] * b[k][j])
			}
			out[i][j] = s
		}
	}

	return out
}

func nan() float64 { return math.NaN() }

func inf() float64 { return math.Inf(1) }
