// SPDX-License-Identifier: MIT

// Package: matrix
//
// Purpose:
//   - Element-wise comparison kernels (ew*) shared by the public AllClose/Equal
//     facades and by tests that compare kernel paths.
//
// Determinism & Performance:
//   - Fixed i→j loop order; early exit on the first violation.
//   - *Dense operands are read through row slices; no allocations.

package matrix

import "math"

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil, live, and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - NaN is close to nothing (not even NaN); equal infinities are close.
//
// Complexity: Time O(r*c). Space O(1).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for i := 0; i < r; i++ {
				ra, rb := da.row(i), db.row(i)
				for j := range ra {
					if !closeTo(ra[j], rb[j], rtol, atol) {
						return false, nil
					}
				}
			}

			return true, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if !closeTo(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeTo is the scalar predicate behind ewAllClose.
func closeTo(av, bv, rtol, atol float64) bool {
	if av == bv {
		return true // covers equal infinities and exact matches
	}
	if math.IsNaN(av) || math.IsNaN(bv) || math.IsInf(av, 0) || math.IsInf(bv, 0) {
		return false
	}

	return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
}
