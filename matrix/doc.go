// Package matrix is a dense float64 matrix engine with reference-counted,
// zero-copy views.
//
// The matrix package provides:
//
//   - Dense: a row-major matrix that either owns a zeroed buffer (Allocate)
//     or is a window into another matrix's buffer (View, RowSlice, AllocateView).
//     Every owner and view holds one reference; the buffer is dropped exactly
//     once, when the last handle calls Release.
//   - Two access tiers: checked At/Set at the API boundary (ErrOutOfRange),
//     unchecked row kernels internally.
//   - Kernels writing into caller-supplied results: Add, Sub, Mul, Pow, Neg,
//     Abs (plus Copy and Identity). Element-wise kernels tolerate result == operand;
//     Mul and Pow reject any overlap with ErrAliasing.
//   - Fill, RandomFill (seeded, reproducible), FromFlat, FromNested, ToNested.
//   - gonum interop: Gonum, ToGonum, FromGonum, WrapGonum.
//
// Errors are package sentinels (errors.go) wrapped with operation context;
// match them with errors.Is. Configuration uses functional options
// (options.go): numeric policy at allocation, worker count and parallel
// threshold for Mul/Pow.
//
// Concurrency: reference counts are atomic; element access is not
// synchronized, so callers serialize reads and writes of a shared buffer.
// Mul may split its result into row bands computed concurrently; the output
// is bit-identical for every worker count.
package matrix
