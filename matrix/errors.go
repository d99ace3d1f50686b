// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with
// operation context via %w) and tests MUST check them via errors.Is.
// No kernel panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Call sites add context with matrixErrorf /
// denseErrorf; callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> released -> shape/index -> dimension mismatch -> aliasing -> argument.

var (
	// ErrAllocation is returned when a matrix or view cannot be created:
	// non-positive shape, or a view window that leaves its parent.
	ErrAllocation = errors.New("matrix: allocation failed")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	// Allocation failures caused by shape are reported as ErrAllocation AND ErrInvalidDimensions.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/RowSlice) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands and/or result,
	// e.g., Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidArgument signals a scalar argument outside its domain
	// (negative exponent, empty random range, ...).
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrAliasing signals that result shares storage with an operand in a way
	// the operation cannot tolerate (any overlap for Mul/Pow, partial overlap otherwise).
	ErrAliasing = errors.New("matrix: result aliases operand")

	// ErrReleased indicates use of a matrix handle after Release.
	ErrReleased = errors.New("matrix: matrix already released")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value was written while the finite-only
	// numeric policy is enabled (see WithValidateNaNInf).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrMatrixNotImplemented marks an intentionally unsupported operation
	// (e.g., Set on a read-only gonum operand).
	ErrMatrixNotImplemented = errors.New("matrix: operation not implemented")
)

// ErrIndexOutOfBounds is a synonym of ErrOutOfRange: the same value, so
// errors.Is matches either name.
var ErrIndexOutOfBounds = ErrOutOfRange
