// SPDX-License-Identifier: MIT

package matrix_test

import (
	"runtime"
	"testing"

	"github.com/katalvlaran/numc/matrix"
	"github.com/stretchr/testify/require"
)

// TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptions()

	require.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
	require.Equal(t, runtime.GOMAXPROCS(0), o.Workers(), "zero workers resolves to GOMAXPROCS")
	require.Equal(t, matrix.DefaultParallelThreshold, o.ParallelThreshold())
}

// TestNewMatrixOptions_LastWriterWins ensures setters apply in order.
func TestNewMatrixOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithValidateNaNInf(), matrix.WithNoValidateNaNInf())
	require.False(t, o.ValidateNaNInf())

	o = matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.True(t, o.ValidateNaNInf())

	o = matrix.NewMatrixOptions(matrix.WithWorkers(3), matrix.WithWorkers(5), nil)
	require.Equal(t, 5, o.Workers())

	o = matrix.NewMatrixOptions(matrix.WithParallelThreshold(0))
	require.Equal(t, 0, o.ParallelThreshold())
}

// TestOptions_PanicOnInvalid checks constructors reject programmer errors.
func TestOptions_PanicOnInvalid(t *testing.T) {
	require.PanicsWithValue(t, "matrix: WithWorkers: n must be >= 0", func() {
		matrix.WithWorkers(-1)
	})
	require.PanicsWithValue(t, "matrix: WithParallelThreshold: flops must be >= 0", func() {
		matrix.WithParallelThreshold(-5)
	})
	require.NotPanics(t, func() {
		matrix.WithWorkers(0)
		matrix.WithParallelThreshold(0)
	})
}

// TestOptions_PolicyInheritedByViews: the finite-only policy follows the buffer.
func TestOptions_PolicyInheritedByViews(t *testing.T) {
	m := mustDense(t, 2, 2, matrix.WithValidateNaNInf())
	v, err := m.View(0, 0, 1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, v.Set(0, 0, nan()), matrix.ErrNaNInf)

	clone, err := m.CloneDense()
	require.NoError(t, err)
	require.ErrorIs(t, clone.Set(0, 0, inf()), matrix.ErrNaNInf)
}
