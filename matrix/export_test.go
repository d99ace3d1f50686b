// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for buffer lifetime instrumentation.
//
// Purpose:
//   - Let matrix_test observe the shared buffer behind a handle (reference
//     count, live storage, number of frees) without widening the prod API.
//   - Compiled only by `go test`; invisible in production builds.

// BufferProbe is a read-only window on a handle's shared buffer.
type BufferProbe struct{ b *buffer }

// ProbeBuffer captures m's buffer so it can be observed after m is released.
func ProbeBuffer(m *Dense) BufferProbe { return BufferProbe{b: m.buf} }

// Refs reports the live handle count.
func (p BufferProbe) Refs() int { return int(p.b.refs.Load()) }

// Frees reports how many times the storage was dropped (must never exceed 1).
func (p BufferProbe) Frees() int { return int(p.b.frees.Load()) }

// Live reports whether the storage is still held.
func (p BufferProbe) Live() bool { return p.b.data != nil }

// Stride reports the row stride shared by every handle on the buffer.
func (p BufferProbe) Stride() int { return p.b.stride }
