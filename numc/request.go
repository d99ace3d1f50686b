// SPDX-License-Identifier: MIT

// Package numc is a thin, allocating facade over package matrix.
//
// Purpose:
//   - Describe how a matrix is built with a closed set of request variants
//     (Zeros, Filled, Random, Flat, Nested) instead of overloaded constructors.
//   - Offer value-returning operators (a.Add(b), a.Pow(3), ...) that allocate
//     their result, for callers that do not manage result buffers themselves.
//   - Expose row subscripts as zero-copy views and a list-of-lists export.
//
// Every *Matrix owns exactly one handle on a shared buffer; Close releases it.
// Row subscripts are views: they keep the buffer alive until they are closed too.
package numc

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/numc/matrix"
)

// Request is a closed tagged variant describing how New builds a matrix.
// The implementations are Zeros, Filled, Random, Flat and Nested.
type Request interface {
	build(opts ...matrix.Option) (*matrix.Dense, error)
}

// Zeros requests a Rows×Cols matrix of zeros.
type Zeros struct {
	Rows, Cols int
}

// Filled requests a Rows×Cols matrix with every element equal to Value.
type Filled struct {
	Rows, Cols int
	Value      float64
}

// Random requests a Rows×Cols matrix of uniform values in [Low, High).
// Low == High == 0 selects the default range [0, 1).
// Equal Seed, shape and range reproduce identical contents.
type Random struct {
	Rows, Cols int
	Seed       uint64
	Low, High  float64
}

// Flat requests a Rows×Cols matrix from a row-major slice of Rows*Cols values.
type Flat struct {
	Rows, Cols int
	Values     []float64
}

// Nested requests a matrix from a rectangular list of rows.
type Nested struct {
	Values [][]float64
}

// Default range of a Random request with both bounds left at zero.
const (
	DefaultRandomLow  = 0.0
	DefaultRandomHigh = 1.0
)

func (r Zeros) build(opts ...matrix.Option) (*matrix.Dense, error) {
	return matrix.NewZeros(r.Rows, r.Cols, opts...)
}

func (r Filled) build(opts ...matrix.Option) (*matrix.Dense, error) {
	return matrix.NewFilled(r.Rows, r.Cols, r.Value, opts...)
}

func (r Random) build(opts ...matrix.Option) (*matrix.Dense, error) {
	low, high := r.Low, r.High
	if low == 0 && high == 0 {
		low, high = DefaultRandomLow, DefaultRandomHigh
	}

	return matrix.NewRandom(r.Rows, r.Cols, r.Seed, low, high, opts...)
}

func (r Flat) build(opts ...matrix.Option) (*matrix.Dense, error) {
	return matrix.FromFlat(r.Rows, r.Cols, r.Values, opts...)
}

func (r Nested) build(opts ...matrix.Option) (*matrix.Dense, error) {
	return matrix.FromNested(r.Values, opts...)
}

// New builds a matrix from req. Options set the numeric policy of the new
// buffer and the kernel policy (workers, threshold) of its operators.
//
// Errors: ErrInvalidRequest for a nil request (including a nil *Zeros and
// the like); otherwise the matrix
// sentinels of the underlying constructor (ErrAllocation,
// ErrDimensionMismatch, ErrInvalidArgument, ErrNaNInf).
func New(req Request, opts ...matrix.Option) (*Matrix, error) {
	if req == nil {
		return nil, fmt.Errorf("New: %w", ErrInvalidRequest)
	}
	if v := reflect.ValueOf(req); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, fmt.Errorf("New(%T): %w", req, ErrInvalidRequest)
	}
	d, err := req.build(opts...)
	if err != nil {
		return nil, fmt.Errorf("New(%T): %w", req, err)
	}

	return wrap(d, opts), nil
}
