// SPDX-License-Identifier: MIT

// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating nil/liveness/shape/aliasing checks here.
//   - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic, O(1) and allocate nothing on success.
//
// Note:
//   - Each composite validator follows a fixed sequence (NotNil → Live → Shape → Aliasing),
//     which is the documented error priority.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// liveDense ensures a *Dense is non-nil and not released.
func liveDense(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.buf == nil {
		return ErrReleased
	}

	return nil
}

// ValidateNotNil – Ensures the matrix reference is non-nil and, for *Dense,
// still live.
//
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense),
// ErrReleased for a released *Dense.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok {
		if err := liveDense(d); err != nil {
			return validatorErrorf("ValidateNotNil", err)
		}
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Errors: ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible checks result = a × b is well-formed:
// a.Cols == b.Rows, result is a.Rows × b.Cols.
//
// Implementation: Assumes all three are non-nil (caller must ensure).
// Complexity: O(1).
func ValidateMulCompatible(result, a, b Matrix) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible: inner", ErrDimensionMismatch)
	}
	if result.Rows() != a.Rows() || result.Cols() != b.Cols() {
		return validatorErrorf("ValidateMulCompatible: result", ErrDimensionMismatch)
	}

	return nil
}

// ValidateElementwise – Composite for result = f(operands...) cell by cell:
// NotNil(result) → NotNil(each) → SameShape(result, each) → aliasing.
// Exact aliasing (the same window) is allowed; partial overlap is ErrAliasing.
//
// Complexity: O(k) for k operands.
func ValidateElementwise(result *Dense, operands ...Matrix) error {
	if err := ValidateNotNil(result); err != nil {
		return validatorErrorf("ValidateElementwise", err)
	}
	for _, op := range operands {
		if err := ValidateNotNil(op); err != nil {
			return validatorErrorf("ValidateElementwise", err)
		}
	}
	for _, op := range operands {
		if err := ValidateSameShape(result, op); err != nil {
			return validatorErrorf("ValidateElementwise", err)
		}
	}
	for _, op := range operands {
		if d, ok := op.(*Dense); ok && overlaps(result, d) && !sameWindow(result, d) {
			return validatorErrorf("ValidateElementwise", ErrAliasing)
		}
	}

	return nil
}

// ValidateNoAlias – Ensures result shares no element with any *Dense operand.
// Required by kernels whose output cells read several input cells (Mul, Pow).
//
// Implementation: Assumes all values are live (caller must ensure).
// Complexity: O(k).
func ValidateNoAlias(result *Dense, operands ...Matrix) error {
	for _, op := range operands {
		if d, ok := op.(*Dense); ok && overlaps(result, d) {
			return validatorErrorf("ValidateNoAlias", ErrAliasing)
		}
	}

	return nil
}
