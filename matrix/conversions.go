// SPDX-License-Identifier: MIT

// Package matrix - gonum interoperability.
//
// Purpose:
//   - Expose a *Dense to gonum algorithms without copying (Gonum()).
//   - Accept gonum matrices as kernel operands (WrapGonum) or copy them in/out
//     (FromGonum / ToGonum).
//
// Notes:
//   - gonum's mat.Matrix panics on bad indices; the adapters translate our
//     checked accessors accordingly (panic on a programmer error only).
//   - Reading through Gonum() after Release panics with the ErrReleased error.

package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// gonumView is a zero-copy read adapter: *Dense seen as mat.Matrix.
type gonumView struct{ d *Dense }

var _ mat.Matrix = gonumView{}

// Dims implements mat.Matrix.
func (g gonumView) Dims() (r, c int) { return g.d.r, g.d.c }

// At implements mat.Matrix. Panics with mat.ErrIndexOutOfRange on bad
// indices, and with the wrapped ErrReleased / ErrNilMatrix error when the
// underlying handle is no longer usable.
func (g gonumView) At(i, j int) float64 {
	v, err := g.d.At(i, j)
	if errors.Is(err, ErrOutOfRange) {
		panic(mat.ErrIndexOutOfRange)
	}
	if err != nil {
		panic(err)
	}

	return v
}

// T implements mat.Matrix via gonum's lazy transpose.
func (g gonumView) T() mat.Matrix { return mat.Transpose{Matrix: g} }

// Gonum returns m as a read-only gonum matrix sharing m's buffer.
// The adapter must not be used after m is released.
func (m *Dense) Gonum() mat.Matrix { return gonumView{d: m} }

// ToGonum copies any Matrix into a fresh *mat.Dense.
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	r, c := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		return mat.NewDense(r, c, d.ToFlat()), nil
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf("ToGonum", err)
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// FromGonum copies a gonum matrix into a fresh owner.
// Errors: ErrNilMatrix for nil; ErrAllocation for gonum's empty matrices.
func FromGonum(g mat.Matrix, opts ...Option) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	m, err := Allocate(r, c, opts...)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}
	for i := 0; i < r; i++ {
		row := m.row(i)
		for j := range row {
			row[j] = g.At(i, j)
		}
	}
	if err = checkFinite("FromGonum", m); err != nil {
		_ = m.Release()
		return nil, err
	}

	return m, nil
}

// gonumOperand adapts a mat.Matrix to the package Matrix interface so it can
// be passed to the kernels (fallback path).
type gonumOperand struct{ g mat.Matrix }

var _ Matrix = gonumOperand{}

// WrapGonum returns g as a Matrix operand. Set succeeds only when g is mat.Mutable.
func WrapGonum(g mat.Matrix) Matrix {
	if g == nil {
		return nil
	}

	return gonumOperand{g: g}
}

func (o gonumOperand) Rows() int {
	r, _ := o.g.Dims()
	return r
}

func (o gonumOperand) Cols() int {
	_, c := o.g.Dims()
	return c
}

func (o gonumOperand) inBounds(i, j int) bool {
	r, c := o.g.Dims()
	return i >= 0 && i < r && j >= 0 && j < c
}

func (o gonumOperand) At(i, j int) (float64, error) {
	if !o.inBounds(i, j) {
		return 0, fmt.Errorf("gonum.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return o.g.At(i, j), nil
}

func (o gonumOperand) Set(i, j int, v float64) error {
	mu, ok := o.g.(mat.Mutable)
	if !ok {
		return fmt.Errorf("gonum.Set(%d,%d): %w", i, j, ErrMatrixNotImplemented)
	}
	if !o.inBounds(i, j) {
		return fmt.Errorf("gonum.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	mu.Set(i, j, v)

	return nil
}

// Clone returns a *Dense copy (nil for an empty gonum matrix).
func (o gonumOperand) Clone() Matrix {
	d, err := FromGonum(o.g)
	if err != nil {
		return nil
	}

	return d
}
