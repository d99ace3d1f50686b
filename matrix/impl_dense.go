// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major), views & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major matrix that either owns its buffer or
//     is a zero-copy window (view) into another matrix's buffer.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Two access tiers: unexported at/put for kernels, checked At/Set for callers.
//   - Explicit lifetime: Release drops this handle's reference; the buffer is
//     freed when the owner and every view have been released.
//
// AI-Hints:
//   - Use View/RowSlice/AllocateView to avoid copies; writes are visible through every handle.
//   - Use Clone to materialize an independent owner with its own lifetime.
//   - A released handle answers every call with ErrReleased; Release twice is an error, never a double free.
//
// Complexity quicksheet:
//   - Allocate: O(r*c) zero-init; At/Set: O(1); View/RowSlice: O(1); Clone: O(r*c); Release: O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxView     = "View"     // ctor tag for Dense.View / AllocateView
	ctxRowSlice = "RowSlice" // ctor tag for Dense.RowSlice
	ctxRelease  = "Release"  // lifecycle tag
	ctxAlloc    = "Allocate" // ctor tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; preserves the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 matrix handle.
//   - r,c hold the logical shape (both > 0).
//   - buf is the shared, reference-counted storage; nil after Release.
//   - off is the linear offset of element (0,0) in buf.data; the row stride is buf.stride.
//   - parent is a non-owning lineage link to the matrix this view was taken from
//     (nil for owners). Nothing is ever released through it.
//   - validateNaNInf enables optional NaN/Inf rejection in Set (inherited by views).
type Dense struct {
	r, c           int
	off            int
	buf            *buffer
	parent         *Dense
	validateNaNInf bool
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// Allocate creates a zero-initialized owning rows×cols matrix whose buffer
// starts with a reference count of 1.
// MAIN DESCRIPTION:
//   - Buffer allocator entry point; every other constructor funnels through it.
//
// Implementation:
//   - Stage 1: resolve options (numeric policy).
//   - Stage 2: allocate the buffer (validates shape and element-count overflow).
//
// Errors:
//   - ErrAllocation (also matching ErrInvalidDimensions) when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Allocate(rows, cols int, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	buf, err := newBuffer(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxAlloc, err)
	}

	return &Dense{
		r:              rows,
		c:              cols,
		buf:            buf,
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDense creates an r×c zero matrix using row-major storage.
// Thin alias of Allocate kept for discoverability.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	return Allocate(rows, cols, opts...)
}

// AllocateView constructs a rows×cols view over parent's buffer whose (0,0)
// element is parent's logical element at linear offset `offset`
// (row offset/Cols, column offset%Cols). The view shares parent's row stride.
//
// Errors:
//   - ErrNilMatrix / ErrReleased for an unusable parent.
//   - ErrAllocation (with ErrInvalidDimensions) for non-positive shape.
//   - ErrAllocation (with ErrOutOfRange) when the window leaves the parent.
//
// Complexity: O(1); increments the shared reference count.
func AllocateView(parent *Dense, offset, rows, cols int) (*Dense, error) {
	if err := liveDense(parent); err != nil {
		return nil, matrixErrorf(ctxView, err)
	}
	if offset < 0 || offset >= parent.r*parent.c {
		return nil, fmt.Errorf("%s: offset %d: %w: %w", ctxView, offset, ErrAllocation, ErrOutOfRange)
	}

	return parent.View(offset/parent.c, offset%parent.c, rows, cols)
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
// MAIN DESCRIPTION:
//   - Lightweight submatrix referencing the base buffer (shared storage).
//
// Implementation:
//   - Stage 1: validate liveness, positive shape and window bounds.
//   - Stage 2: retain the buffer and return a Dense sharing it.
//
// Behavior highlights:
//   - Writes via the view reflect in the base and every other view; policy is inherited.
//   - Views of views share the same root buffer and stride.
//
// Errors:
//   - ErrAllocation when the window is empty or leaves m.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) View(r0, c0, rows, cols int) (*Dense, error) {
	if err := liveDense(m); err != nil {
		return nil, matrixErrorf(ctxView, err)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w: %w", ctxView, r0, c0, rows, cols, ErrAllocation, ErrInvalidDimensions)
	}
	if r0 < 0 || c0 < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w: %w", ctxView, r0, c0, rows, cols, ErrAllocation, ErrOutOfRange)
	}
	m.buf.retain()

	return &Dense{
		r:              rows,
		c:              cols,
		off:            m.off + r0*m.buf.stride + c0,
		buf:            m.buf,
		parent:         m,
		validateNaNInf: m.validateNaNInf,
	}, nil
}

// RowSlice returns a 1×Cols view of row `row`.
// Errors: ErrOutOfRange for a row outside [0, Rows()).
func (m *Dense) RowSlice(row int) (*Dense, error) {
	if err := liveDense(m); err != nil {
		return nil, matrixErrorf(ctxRowSlice, err)
	}
	if row < 0 || row >= m.r {
		return nil, denseErrorf(ctxRowSlice, row, 0, ErrOutOfRange)
	}

	return m.View(row, 0, 1, m.c)
}

// Release drops this handle's reference to the shared buffer. The buffer is
// freed when the last handle (owner or view) is released. The descriptor is
// dead afterwards: every method reports ErrReleased, and a second Release
// returns ErrReleased without touching the count.
func (m *Dense) Release() error {
	if err := liveDense(m); err != nil {
		return matrixErrorf(ctxRelease, err)
	}
	m.buf.release()
	m.buf = nil

	return nil
}

// Released reports whether Release has been called on this handle.
func (m *Dense) Released() bool { return m != nil && m.buf == nil }

// RefCount reports the number of live handles sharing this matrix's buffer
// (0 for a released handle).
func (m *Dense) RefCount() int {
	if m == nil || m.buf == nil {
		return 0
	}

	return int(m.buf.refs.Load())
}

// Parent returns the matrix this view was taken from, or nil for an owner.
// The link is for lineage only; it carries no ownership.
func (m *Dense) Parent() *Dense { return m.parent }

// IsView reports whether m shares a buffer it did not allocate.
func (m *Dense) IsView() bool { return m.parent != nil }

// Shares reports whether m and other are live handles on the same buffer.
func (m *Dense) Shares(other *Dense) bool {
	return m != nil && other != nil && m.buf != nil && m.buf == other.buf
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// index returns the buffer offset of (i,j). No checks.
func (m *Dense) index(i, j int) int { return m.off + i*m.buf.stride + j }

// at is the unchecked fast accessor used by kernels.
// Callers guarantee liveness and 0<=i<r, 0<=j<c.
func (m *Dense) at(i, j int) float64 { return m.buf.data[m.index(i, j)] }

// put is the unchecked fast writer used by kernels.
func (m *Dense) put(i, j int, v float64) { m.buf.data[m.index(i, j)] = v }

// row returns the c-length slice of row i backed by the shared buffer.
func (m *Dense) row(i int) []float64 {
	base := m.index(i, 0)

	return m.buf.data[base : base+m.c : base+m.c]
}

// checkIndex validates liveness and bounds for (row, col).
func (m *Dense) checkIndex(row, col int) error {
	if err := liveDense(m); err != nil {
		return err
	}
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return ErrOutOfRange
	}

	return nil
}

// At returns the value at (row, col) or ErrOutOfRange / ErrReleased.
// Never panics on user input.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if err := m.checkIndex(row, col); err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.at(row, col), nil
}

// Set stores v at (row, col). The write is visible through every handle
// sharing the buffer.
// Errors: ErrOutOfRange, ErrReleased, ErrNaNInf (finite-only policy).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	if err := m.checkIndex(row, col); err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.put(row, col, v)

	return nil
}

// Clone returns a deep copy as a fresh owner (same shape and numeric policy).
// Cloning a view materializes only the window. A nil or released receiver yields nil.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp, err := m.CloneDense()
	if err != nil {
		return nil
	}

	return cp
}

// CloneDense is Clone with a concrete result and an explicit error.
func (m *Dense) CloneDense() (*Dense, error) {
	if err := liveDense(m); err != nil {
		return nil, matrixErrorf("Clone", err)
	}
	buf, err := newBuffer(m.r, m.c)
	if err != nil {
		return nil, matrixErrorf("Clone", err)
	}
	for i := 0; i < m.r; i++ {
		copy(buf.data[i*m.c:(i+1)*m.c], m.row(i))
	}

	return &Dense{r: m.r, c: m.c, buf: buf, validateNaNInf: m.validateNaNInf}, nil
}

// String provides a readable row-wise dump for diagnostics:
// one "[a, b, c]" line per row, values formatted with %g.
// Complexity: O(r*c).
func (m *Dense) String() string {
	if m == nil {
		return "<nil>"
	}
	if m.buf == nil {
		return "<released>"
	}
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.at(i, j)))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// footprint returns the half-open rectangle [r0,r1)×[c0,c1) covered by m in
// root-buffer coordinates.
func (m *Dense) footprint() (r0, c0, r1, c1 int) {
	s := m.buf.stride
	r0, c0 = m.off/s, m.off%s

	return r0, c0, r0 + m.r, c0 + m.c
}

// overlaps reports whether two live handles can reach a common element.
func overlaps(a, b *Dense) bool {
	if a.buf != b.buf {
		return false
	}
	ar0, ac0, ar1, ac1 := a.footprint()
	br0, bc0, br1, bc1 := b.footprint()

	return ar0 < br1 && br0 < ar1 && ac0 < bc1 && bc0 < ac1
}

// sameWindow reports whether two handles address exactly the same elements.
func sameWindow(a, b *Dense) bool {
	return a.buf == b.buf && a.off == b.off && a.r == b.r && a.c == b.c
}
