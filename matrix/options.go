// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for allocation policy and kernel
// scheduling. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic results: scheduling options never change numeric output.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Numeric policy (validateNaNInf) is captured by a matrix at allocation time
//     and inherited by every view taken from it.
//   - Kernel policy (workers, parallelThreshold) is read per call by Mul and Pow.
package matrix

import "runtime"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	// Off by default: the engine follows IEEE-754 and lets NaN/Inf flow.
	DefaultValidateNaNInf = false

	// DefaultWorkers selects the number of goroutines used by Mul.
	// Zero means runtime.GOMAXPROCS(0) at call time.
	DefaultWorkers = 0

	// DefaultParallelThreshold is the minimal rows*inner*cols multiply-add count
	// for which Mul splits the result into row bands.
	DefaultParallelThreshold = 1 << 18
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid   = "matrix: WithWorkers: n must be >= 0"
	panicThresholdInvalid = "matrix: WithParallelThreshold: flops must be >= 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	// numeric policy
	validateNaNInf bool // DefaultValidateNaNInf

	// kernel policy
	workers           int // >= 1 after finalizeOptions
	parallelThreshold int // DefaultParallelThreshold
}

// ---------- Constructors (WithX) ----------

// WithValidateNaNInf enables strict finite-value validation on Set for
// matrices allocated with this option (and their views).
//
// Complexity: O(1).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (default).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithWorkers sets the number of goroutines Mul may use for row bands.
// Implementation:
//   - Stage 1: validate n >= 0 (0 restores the GOMAXPROCS default).
//   - Stage 2: return a setter that writes n into Options.
//
// Behavior highlights:
//   - n == 1 forces the serial kernel regardless of size.
//   - Output is bit-identical for every worker count.
//
// Errors:
//   - Panics with a stable message when n < 0.
//
// AI-Hints:
//   - Use WithWorkers(1) in tests that compare against a serial baseline.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithParallelThreshold sets the multiply-add count below which Mul stays serial.
// Zero makes every product eligible for banding.
func WithParallelThreshold(flops int) Option {
	if flops < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.parallelThreshold = flops }
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against documented defaults.
// Last-writer-wins; pure function.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants.
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: finalizeOptions resolves workers==0 to GOMAXPROCS.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf:    DefaultValidateNaNInf,
		workers:           DefaultWorkers,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
// MUST be called after applying all Option setters.
func finalizeOptions(o *Options) {
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.workers < 1 {
		o.workers = 1
	}
}

// ValidateNaNInf reports whether the finite-only policy is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Workers reports the resolved goroutine count for Mul (always >= 1).
func (o Options) Workers() int { return o.workers }

// ParallelThreshold reports the multiply-add count that enables banding.
func (o Options) ParallelThreshold() int { return o.parallelThreshold }
