// SPDX-License-Identifier: MIT

package numc

import (
	"fmt"

	"github.com/katalvlaran/numc/matrix"
)

// Operation tags for error wrapping.
const (
	opGet          = "Get"
	opSet          = "Set"
	opSubscript    = "Subscript"
	opSetSubscript = "SetSubscript"
	opToList       = "ToList"
)

// Matrix is one handle on a reference-counted dense buffer.
//   - d is the underlying owner or view; released by Close.
//   - opts are the options New was called with. Results of operators are
//     allocated with them, so numeric and kernel policy carry over.
type Matrix struct {
	d    *matrix.Dense
	opts []matrix.Option
}

// wrap adopts d (taking over its single reference).
func wrap(d *matrix.Dense, opts []matrix.Option) *Matrix {
	return &Matrix{d: d, opts: opts}
}

// live returns the underlying handle or a sentinel error for nil / closed matrices.
func (m *Matrix) live() (*matrix.Dense, error) {
	if m == nil || m.d == nil {
		return nil, matrix.ErrNilMatrix
	}
	if m.d.Released() {
		return nil, matrix.ErrReleased
	}

	return m.d, nil
}

// Shape returns (rows, cols). A nil matrix reports (0, 0).
func (m *Matrix) Shape() (rows, cols int) {
	if m == nil || m.d == nil {
		return 0, 0
	}

	return m.d.Shape()
}

// Dense exposes the underlying handle for use with package matrix kernels.
// The handle stays owned by m.
func (m *Matrix) Dense() *matrix.Dense {
	if m == nil {
		return nil
	}

	return m.d
}

// Get returns the element at (row, col).
// Errors: matrix.ErrOutOfRange, matrix.ErrReleased.
func (m *Matrix) Get(row, col int) (float64, error) {
	d, err := m.live()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opGet, err)
	}
	v, err := d.At(row, col)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opGet, err)
	}

	return v, nil
}

// Set writes v at (row, col). The write is visible through every matrix
// sharing the buffer (parents, row subscripts).
func (m *Matrix) Set(row, col int, v float64) error {
	d, err := m.live()
	if err != nil {
		return fmt.Errorf("%s: %w", opSet, err)
	}
	if err = d.Set(row, col, v); err != nil {
		return fmt.Errorf("%s: %w", opSet, err)
	}

	return nil
}

// Item is the result of Subscript: a scalar for single-column matrices,
// otherwise a row view.
type Item struct {
	row    *Matrix
	scalar float64
}

// IsScalar reports whether the item holds a number rather than a row.
func (it Item) IsScalar() bool { return it.row == nil }

// Scalar returns the number held by a scalar item (0 for a row item).
func (it Item) Scalar() float64 { return it.scalar }

// Row returns the 1×cols view held by a row item (nil for a scalar item).
// The caller owns the view and should Close it.
func (it Item) Row() *Matrix { return it.row }

// Subscript returns row i. For a single-column matrix the item is the scalar
// m[i,0]; otherwise it is a 1×cols view sharing m's buffer.
// Errors: matrix.ErrOutOfRange for i outside [0, rows).
func (m *Matrix) Subscript(i int) (Item, error) {
	d, err := m.live()
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", opSubscript, err)
	}
	if d.Cols() == 1 {
		v, err := d.At(i, 0)
		if err != nil {
			return Item{}, fmt.Errorf("%s(%d): %w", opSubscript, i, err)
		}

		return Item{scalar: v}, nil
	}
	row, err := d.RowSlice(i)
	if err != nil {
		return Item{}, fmt.Errorf("%s(%d): %w", opSubscript, i, err)
	}

	return Item{row: wrap(row, m.opts)}, nil
}

// SetSubscript overwrites row i. A single-column matrix takes exactly one
// value; otherwise exactly cols values are required. Nothing is written
// unless the whole row is valid.
// Errors: matrix.ErrOutOfRange, matrix.ErrDimensionMismatch, matrix.ErrNaNInf.
func (m *Matrix) SetSubscript(i int, values ...float64) error {
	d, err := m.live()
	if err != nil {
		return fmt.Errorf("%s: %w", opSetSubscript, err)
	}
	if i < 0 || i >= d.Rows() {
		return fmt.Errorf("%s(%d): %w", opSetSubscript, i, matrix.ErrOutOfRange)
	}
	if len(values) != d.Cols() {
		return fmt.Errorf("%s(%d): %d values for %d columns: %w",
			opSetSubscript, i, len(values), d.Cols(), matrix.ErrDimensionMismatch)
	}
	row, err := d.RowSlice(i)
	if err != nil {
		return fmt.Errorf("%s(%d): %w", opSetSubscript, i, err)
	}
	defer row.Release()

	staged, err := matrix.FromFlat(1, len(values), values, m.opts...)
	if err != nil {
		return fmt.Errorf("%s(%d): %w", opSetSubscript, i, err)
	}
	defer staged.Release()

	if err = matrix.Copy(row, staged); err != nil {
		return fmt.Errorf("%s(%d): %w", opSetSubscript, i, err)
	}

	return nil
}

// binary allocates a result of the given shape and runs kernel into it.
// The result is released again when the kernel fails.
func (m *Matrix) binary(op string, other *Matrix, shape func(a, b *matrix.Dense) (int, int),
	kernel func(result, a, b *matrix.Dense) error) (*Matrix, error) {
	a, err := m.live()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b, err := other.live()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, c := shape(a, b)
	result, err := matrix.Allocate(r, c, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = kernel(result, a, b); err != nil {
		_ = result.Release()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return wrap(result, m.opts), nil
}

// unary allocates a result shaped like m and runs kernel into it.
func (m *Matrix) unary(op string, kernel func(result, a *matrix.Dense) error) (*Matrix, error) {
	a, err := m.live()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := matrix.Allocate(a.Rows(), a.Cols(), m.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = kernel(result, a); err != nil {
		_ = result.Release()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return wrap(result, m.opts), nil
}

func sameShape(a, _ *matrix.Dense) (int, int) { return a.Shape() }

func productShape(a, b *matrix.Dense) (int, int) { return a.Rows(), b.Cols() }

// Add returns a new matrix m + other.
// Errors: matrix.ErrDimensionMismatch when shapes differ.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	return m.binary("Add", other, sameShape, func(result, a, b *matrix.Dense) error {
		return matrix.Add(result, a, b)
	})
}

// Sub returns a new matrix m - other.
// Errors: matrix.ErrDimensionMismatch when shapes differ.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	return m.binary("Sub", other, sameShape, func(result, a, b *matrix.Dense) error {
		return matrix.Sub(result, a, b)
	})
}

// Mul returns a new matrix m × other, computed with m's kernel options.
// Errors: matrix.ErrDimensionMismatch when m.cols != other.rows.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	return m.binary("Mul", other, productShape, func(result, a, b *matrix.Dense) error {
		return matrix.Mul(result, a, b, m.opts...)
	})
}

// Neg returns a new matrix -m.
func (m *Matrix) Neg() (*Matrix, error) {
	return m.unary("Neg", func(result, a *matrix.Dense) error { return matrix.Neg(result, a) })
}

// Abs returns a new matrix |m|.
func (m *Matrix) Abs() (*Matrix, error) {
	return m.unary("Abs", func(result, a *matrix.Dense) error { return matrix.Abs(result, a) })
}

// Pow returns a new matrix m^n. m must be square and n >= 0; m^0 is the identity.
// Errors: matrix.ErrDimensionMismatch, matrix.ErrInvalidArgument.
func (m *Matrix) Pow(n int) (*Matrix, error) {
	return m.unary("Pow", func(result, a *matrix.Dense) error {
		return matrix.Pow(result, a, n, m.opts...)
	})
}

// ToList returns the contents as an independent list of rows.
// A nil or closed matrix yields nil.
func (m *Matrix) ToList() [][]float64 {
	d, err := m.live()
	if err != nil {
		return nil
	}

	return d.ToNested()
}

// ToList is the package-level form of (*Matrix).ToList that reports why
// nothing could be exported.
func ToList(m *Matrix) ([][]float64, error) {
	if _, err := m.live(); err != nil {
		return nil, fmt.Errorf("%s: %w", opToList, err)
	}

	return m.ToList(), nil
}

// String renders the matrix as a list of lists, e.g. "[[1.0, 2.0], [3.0, 4.0]]".
func (m *Matrix) String() string {
	d, err := m.live()
	switch {
	case err == nil:
		return formatList(d.ToNested())
	case m == nil || m.d == nil:
		return "<nil>"
	default:
		return "<released>"
	}
}

// Close releases this handle. The buffer is freed once every matrix sharing
// it (parents and row subscripts) has been closed.
// Errors: matrix.ErrReleased on a second Close.
func (m *Matrix) Close() error {
	if m == nil || m.d == nil {
		return matrix.ErrNilMatrix
	}

	return m.d.Release()
}
