// SPDX-License-Identifier: MIT

// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.
//   - Use ZerosLike to preallocate result buffers for the kernels.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized owner of size rows×cols.
// Thin alias of Allocate with an intention-revealing name.
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return Allocate(rows, cols, opts...)
}

// NewFilled returns a rows×cols owner with every element set to v.
func NewFilled(rows, cols int, v float64, opts ...Option) (*Dense, error) {
	m, err := Allocate(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if err = m.Fill(v); err != nil {
		_ = m.Release()
		return nil, err
	}

	return m, nil
}

// NewRandom returns a rows×cols owner filled by RandomFill(seed, low, high).
func NewRandom(rows, cols int, seed uint64, low, high float64, opts ...Option) (*Dense, error) {
	m, err := Allocate(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if err = m.RandomFill(seed, low, high); err != nil {
		_ = m.Release()
		return nil, err
	}

	return m, nil
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	I, err := Allocate(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.put(i, i, 1.0)
	}

	return I, nil
}

// CloneMatrix returns a structural clone of m (a *Dense owner when m is *Dense).
// Thin wrapper over Matrix.Clone for API discoverability.
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// ZerosLike returns a new zero owner with the same shape as m.
// Handy to preallocate result buffers for Add/Sub/Mul/...
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return Allocate(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// ---------- Numeric compare (thin wrappers → ew*) ----------

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN is never close; equal infinities are close.
// Time: O(r*c). Space: O(1). Deterministic.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// Equal reports exact element-wise equality (zero tolerance).
func Equal(a, b Matrix) (bool, error) {
	return ewAllClose(a, b, 0, 0)
}
