// SPDX-License-Identifier: MIT

// Package matrix - reference-counted backing storage.
//
// Purpose:
//   - Own one contiguous row-major run of float64 shared by an owner and its views.
//   - Count live handles (owner + every view) and drop the storage exactly once.
//
// Concurrency:
//   - refs is atomic: retain/release may race safely across goroutines.
//   - Element reads/writes are NOT synchronized; callers serialize access.

package matrix

import (
	"fmt"
	"math"
	"sync/atomic"
)

// MaxElements caps rows*cols of a single buffer (32 GiB of float64).
// Larger shapes fail with ErrAllocation instead of reaching make.
const MaxElements int64 = 1 << 32

// buffer is the shared-ownership handle behind every Dense.
// Element (i,j) of a window starting at linear offset off lives at
// data[off + i*stride + j].
type buffer struct {
	data   []float64    // row-major storage; nil once freed
	stride int          // row stride in elements (owner's column count)
	refs   atomic.Int32 // live handles; storage dropped when it reaches 0
	frees  atomic.Int32 // number of times storage was dropped (0 or 1)
}

// newBuffer allocates a zeroed rows×cols buffer with one reference.
// Stage 1 (Validate): rows>0, cols>0, rows*cols within MaxElements and
// within the addressable byte range.
// Stage 2 (Prepare): make() zero-fills the slice.
// Complexity: O(r*c) time and memory.
func newBuffer(rows, cols int) (*buffer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrAllocation, rows, cols, ErrInvalidDimensions)
	}
	if rows > math.MaxInt/8/cols || int64(rows) > MaxElements/int64(cols) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d elements", ErrAllocation, rows, cols, MaxElements)
	}
	b := &buffer{
		data:   make([]float64, rows*cols),
		stride: cols,
	}
	b.refs.Store(1)

	return b, nil
}

// retain registers one more live handle.
func (b *buffer) retain() { b.refs.Add(1) }

// release drops one handle and frees the storage when it was the last one.
// Returns true exactly once per buffer: for the call that freed it.
func (b *buffer) release() bool {
	if b.refs.Add(-1) != 0 {
		return false
	}
	b.data = nil // storage becomes collectable; no handle can reach it anymore
	b.frees.Add(1)

	return true
}
