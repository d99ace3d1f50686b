// Package numc is a dense float64 matrix engine with reference-counted,
// zero-copy views, plus the small hashing toolkit it ships with.
//
// 🚀 What is in numc?
//
//	• Owners and views over one shared row-major buffer, freed exactly once
//	• Kernels writing into caller-supplied results: Add, Sub, Mul, Pow, Neg, Abs
//	• Row-band parallel Mul, bit-identical to the serial triple sum
//	• gonum interop in both directions
//	• A generic chained hash table and a spell checker built on it
//
// ✨ Guarantees
//
//   - Checked access at the API boundary, sentinel errors everywhere
//   - Use-after-release and double release are reported, never undefined
//   - Deterministic seeded random fill
//
// Packages:
//
//	matrix/    buffers, views, kernels, validators, options, gonum adapters
//	numc/      allocating facade: construction requests, operators, row subscripts
//	hashtable/ generic fixed-size chained hash table
//	spell/     dictionary-backed spell checker ("[sic]" marking)
//	cmd/       philspel and numcbench commands
//
// Quick example:
//
//	a, _ := matrix.FromNested([][]float64{{1, 1}, {1, 0}})
//	out, _ := matrix.NewZeros(2, 2)
//	_ = matrix.Pow(out, a, 10) // [[89 55] [55 34]]
//
//	go get github.com/katalvlaran/numc
package numc
