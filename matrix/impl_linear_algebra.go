// SPDX-License-Identifier: MIT

// Package matrix provides the arithmetic kernels of the engine: element-wise
// addition, subtraction, negation, absolute value, matrix product and integer
// power. Every kernel writes into a caller-supplied *Dense result, never
// allocates its own result, never mutates its operands, and fails fast with
// sentinel errors on shape, liveness or aliasing violations.
//
// Purpose:
//   - Keep ownership explicit: callers allocate (and may reuse) result buffers.
//   - Fast path on *Dense operands (row slices of the shared buffer); fallback via At.
//
// Notes:
//   - After a failed kernel, result content is unspecified.
//   - Products accumulate each cell as 0 + a[i,0]*b[0,j] + a[i,1]*b[1,j] + ...
//     with every product rounded separately, so serial, banded and fallback
//     paths are bit-identical to the naive triple sum.

package matrix

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opPow      = "Pow"
	opNeg      = "Neg"
	opAbs      = "Abs"
	opCopy     = "Copy"
	opIdentity = "Identity"
)

// ZeroSum is the initial accumulator of every product cell.
const ZeroSum = 0.0

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkFinite enforces result's finite-only policy after a kernel wrote it.
func checkFinite(tag string, result *Dense) error {
	if !result.validateNaNInf {
		return nil
	}
	for i := 0; i < result.r; i++ {
		for j, v := range result.row(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return matrixErrorf(tag, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// addSub computes result = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: ValidateElementwise(result, a, b).
//   - Stage 2: Fast path when a and b are *Dense: row slices of the shared buffers.
//     Otherwise fallback At with fixed i→j order.
//
// Behavior highlights:
//   - result may be a or b (same window); cells are read before they are written.
//   - -1*b is an exact negation, so a + (-1)*b == a - b bit for bit.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func addSub(result *Dense, a, b Matrix, sign float64, opTag string) error {
	if err := ValidateElementwise(result, a, b); err != nil {
		return matrixErrorf(opTag, err)
	}
	rows := result.r

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var ra, rb, rr []float64
			for i := 0; i < rows; i++ {
				ra, rb, rr = da.row(i), db.row(i), result.row(i)
				for j := range rr {
					rr[j] = ra[j] + sign*rb[j]
				}
			}

			return checkFinite(opTag, result)
		}
	}

	// Fallback: interface path with fixed i→j order.
	var av, bv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < result.c; j++ {
			if av, err = a.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			result.put(i, j, av+sign*bv)
		}
	}

	return checkFinite(opTag, result)
}

// Add computes result[i,j] = a[i,j] + b[i,j].
// Contract: result, a and b share one shape; result may alias a or b exactly.
// Errors: ErrNilMatrix, ErrReleased, ErrDimensionMismatch, ErrAliasing (partial overlap).
// Complexity: O(r*c).
func Add(result *Dense, a, b Matrix) error { return addSub(result, a, b, +1, opAdd) }

// Sub computes result[i,j] = a[i,j] - b[i,j].
// Same contract as Add.
func Sub(result *Dense, a, b Matrix) error { return addSub(result, a, b, -1, opSub) }

// unary computes result[i,j] = f(a[i,j]) with the element-wise contract.
func unary(result *Dense, a Matrix, f func(float64) float64, opTag string) error {
	if err := ValidateElementwise(result, a); err != nil {
		return matrixErrorf(opTag, err)
	}
	if da, ok := a.(*Dense); ok {
		for i := 0; i < result.r; i++ {
			ra, rr := da.row(i), result.row(i)
			for j := range rr {
				rr[j] = f(ra[j])
			}
		}

		return checkFinite(opTag, result)
	}
	for i := 0; i < result.r; i++ {
		for j := 0; j < result.c; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return matrixErrorf(opTag, err)
			}
			result.put(i, j, f(v))
		}
	}

	return checkFinite(opTag, result)
}

// Neg computes result[i,j] = -a[i,j]. result may alias a.
// Errors: ErrDimensionMismatch when shapes differ.
func Neg(result *Dense, a Matrix) error {
	return unary(result, a, func(v float64) float64 { return -v }, opNeg)
}

// Abs computes result[i,j] = |a[i,j]|. result may alias a.
// Errors: ErrDimensionMismatch when shapes differ.
func Abs(result *Dense, a Matrix) error { return unary(result, a, math.Abs, opAbs) }

// Copy writes src into dst cell by cell (element-wise contract).
func Copy(dst *Dense, src Matrix) error {
	return unary(dst, src, func(v float64) float64 { return v }, opCopy)
}

// Identity overwrites the square matrix result with I_n.
// Errors: ErrDimensionMismatch for a non-square result.
func Identity(result *Dense) error {
	if err := ValidateNotNil(result); err != nil {
		return matrixErrorf(opIdentity, err)
	}
	if err := ValidateSquare(result); err != nil {
		return matrixErrorf(opIdentity, err)
	}
	for i := 0; i < result.r; i++ {
		row := result.row(i)
		for j := range row {
			row[j] = 0
		}
		row[i] = 1
	}

	return nil
}

// Mul performs the matrix product result = a × b.
// Implementation:
//   - Stage 1: validate liveness, a.Cols == b.Rows, result is a.Rows × b.Cols, no aliasing.
//   - Stage 2: *Dense operands run the i→k→j row kernel; rows are split into bands
//     processed concurrently (errgroup) when rows*inner*cols reaches the parallel
//     threshold and more than one worker is configured.
//   - Stage 3: other operands use the fixed i→j→k fallback through At.
//
// Behavior highlights:
//   - Bit-identical output for every worker count (bands own disjoint result rows,
//     operands are read-only, per-cell summation order is fixed).
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch, ErrAliasing (result overlaps a or b).
//
// Complexity:
//   - Time O(r*n*c), Space O(1) beyond goroutines.
func Mul(result *Dense, a, b Matrix, opts ...Option) error {
	if err := validateMul(result, a, b); err != nil {
		return matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)
	if err := mulInto(result, a, b, o); err != nil {
		return matrixErrorf(opMul, err)
	}

	return checkFinite(opMul, result)
}

// validateMul runs the Mul contract in priority order.
func validateMul(result *Dense, a, b Matrix) error {
	if err := ValidateNotNil(result); err != nil {
		return err
	}
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if err := ValidateMulCompatible(result, a, b); err != nil {
		return err
	}

	return ValidateNoAlias(result, a, b)
}

// mulInto dispatches to the dense (possibly banded) kernel or the fallback.
// Preconditions: validateMul passed.
func mulInto(result *Dense, a, b Matrix, o Options) error {
	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if !okA || !okB {
		return mulFallback(result, a, b)
	}

	rows, inner, cols := da.r, da.c, db.c
	work := rows * inner * cols
	if o.workers < 2 || rows < 2 || work < o.parallelThreshold {
		mulRows(result, da, db, 0, rows)
		return nil
	}

	workers := o.workers
	if workers > rows {
		workers = rows
	}
	band := (rows + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < rows; lo += band {
		lo, hi := lo, lo+band
		if hi > rows {
			hi = rows
		}
		g.Go(func() error {
			mulRows(result, da, db, lo, hi)
			return nil
		})
	}

	return g.Wait()
}

// mulRows computes result rows [lo, hi) of da × db with the i→k→j order.
// For each cell the accumulation order over k is ascending, matching the
// naive triple sum. float64(...) forces rounding of every product so the
// compiler cannot fuse the multiply-add.
func mulRows(result, da, db *Dense, lo, hi int) {
	inner := da.c
	var av float64
	for i := lo; i < hi; i++ {
		rr := result.row(i)
		for j := range rr {
			rr[j] = ZeroSum
		}
		ra := da.row(i)
		for k := 0; k < inner; k++ {
			av = ra[k]
			rb := db.row(k)
			for j := range rr {
				rr[j] += float64(av * rb[j])
			}
		}
	}
}

// mulFallback is the generic interface triple loop (i→j→k).
func mulFallback(result *Dense, a, b Matrix) error {
	inner := a.Cols()
	var av, bv, current float64
	var err error
	for i := 0; i < result.r; i++ {
		for j := 0; j < result.c; j++ {
			current = ZeroSum
			for k := 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return err
				}
				if bv, err = b.At(k, j); err != nil {
					return err
				}
				current += float64(av * bv)
			}
			result.put(i, j, current)
		}
	}

	return nil
}

// Pow computes result = a^exponent for a square a and exponent >= 0.
// Implementation:
//   - Stage 1: validate liveness, square a, result shape, exponent >= 0, no aliasing.
//   - Stage 2: exponent 0 → identity; exponent 1 → copy.
//   - Stage 3: binary exponentiation with two scratch owners (released on return):
//     square the base for every bit, multiply the base into result for set bits.
//
// Behavior highlights:
//   - exponent 2 yields exactly Mul(a, a). Larger exponents equal iterated
//     multiplication up to floating-point reassociation (exact for integer-valued data).
//
// Errors:
//   - ErrDimensionMismatch (a not square, or result not a.Rows × a.Rows),
//     ErrInvalidArgument (exponent < 0), ErrAliasing (result overlaps a).
//
// Complexity:
//   - Time O(n^3 log e), Space O(n^2).
func Pow(result *Dense, a Matrix, exponent int, opts ...Option) error {
	if err := ValidateNotNil(result); err != nil {
		return matrixErrorf(opPow, err)
	}
	if err := ValidateNotNil(a); err != nil {
		return matrixErrorf(opPow, err)
	}
	if err := ValidateSquare(a); err != nil {
		return matrixErrorf(opPow, err)
	}
	if err := ValidateSameShape(result, a); err != nil {
		return matrixErrorf(opPow, err)
	}
	if err := ValidateNoAlias(result, a); err != nil {
		return matrixErrorf(opPow, err)
	}
	if exponent < 0 {
		return matrixErrorf(opPow, fmt.Errorf("exponent %d: %w", exponent, ErrInvalidArgument))
	}

	switch exponent {
	case 0:
		return Identity(result)
	case 1:
		if err := Copy(result, a); err != nil {
			return matrixErrorf(opPow, err)
		}
		return nil
	}

	o := gatherOptions(opts...)
	n := a.Rows()
	base, err := Allocate(n, n)
	if err != nil {
		return matrixErrorf(opPow, err)
	}
	defer base.Release()
	tmp, err := Allocate(n, n)
	if err != nil {
		return matrixErrorf(opPow, err)
	}
	defer tmp.Release()
	if err = Copy(base, a); err != nil {
		return matrixErrorf(opPow, err)
	}

	started := false
	for e := exponent; e > 0; e >>= 1 {
		if e&1 == 1 {
			if !started {
				if err = Copy(result, base); err != nil {
					return matrixErrorf(opPow, err)
				}
				started = true
			} else {
				if err = mulInto(tmp, result, base, o); err != nil {
					return matrixErrorf(opPow, err)
				}
				if err = Copy(result, tmp); err != nil {
					return matrixErrorf(opPow, err)
				}
			}
		}
		if e > 1 {
			if err = mulInto(tmp, base, base, o); err != nil {
				return matrixErrorf(opPow, err)
			}
			// base and tmp are private scratch owners, so swapping handles is safe.
			base, tmp = tmp, base
		}
	}

	return checkFinite(opPow, result)
}
