// Package matrix_test contains unit tests for the arithmetic kernels:
// Add, Sub, Neg, Abs, Mul and Pow.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/numc/matrix"
	"github.com/stretchr/testify/require"
)

// TestAddSub checks the basic sums and that (a+b)-b == a for integer data.
func TestAddSub(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustNested(t, [][]float64{{10, 20, 30}, {40, 50, 60}})
	sum := mustDense(t, 2, 3)
	require.NoError(t, matrix.Add(sum, a, b))
	requireCells(t, [][]float64{{11, 22, 33}, {44, 55, 66}}, sum)

	diff := mustDense(t, 2, 3)
	require.NoError(t, matrix.Sub(diff, sum, b))
	requireEqual(t, a, diff)

	require.NoError(t, matrix.Sub(diff, a, b))
	requireCells(t, [][]float64{{-9, -18, -27}, {-36, -45, -54}}, diff)

	ones := mustFilled(t, 2, 2, 1)
	twos := mustFilled(t, 2, 2, 2)
	r := mustDense(t, 2, 2)
	require.NoError(t, matrix.Add(r, ones, twos))
	requireCells(t, [][]float64{{3, 3}, {3, 3}}, r)
	require.NoError(t, matrix.Sub(r, r, twos))
	requireCells(t, [][]float64{{1, 1}, {1, 1}}, r)
}

// TestAddSubInverse: sub(add(a,b),b) reproduces a within tolerance for random data.
func TestAddSubInverse(t *testing.T) {
	t.Parallel()

	a := mustRandom(t, 9, 7, 1)
	b := mustRandom(t, 9, 7, 2)
	tmp := mustDense(t, 9, 7)
	require.NoError(t, matrix.Add(tmp, a, b))
	require.NoError(t, matrix.Sub(tmp, tmp, b))

	ok, err := matrix.AllClose(tmp, a, 1e-12, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestElementwiseShapeMismatch: 2×3 against 3×2 is rejected.
func TestElementwiseShapeMismatch(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 2, 3)
	b := mustDense(t, 3, 2)
	out := mustDense(t, 2, 3)
	require.ErrorIs(t, matrix.Add(out, a, b), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Sub(out, a, b), matrix.ErrDimensionMismatch)

	wrong := mustDense(t, 3, 3)
	require.ErrorIs(t, matrix.Add(wrong, a, a), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Neg(wrong, a), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.Abs(wrong, a), matrix.ErrDimensionMismatch)
}

// TestElementwiseNil covers nil result and operands.
func TestElementwiseNil(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 2, 2)
	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.Add(nil, a, a), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.Add(a, nil, a), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.Add(a, a, typedNil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.Neg(a, nil), matrix.ErrNilMatrix)
}

// TestNegAbs checks neg(neg(a)) == a and abs yields non-negative magnitudes.
func TestNegAbs(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{-1.5, 0, 2}, {3, -4, math.Copysign(0, -1)}})
	n := mustDense(t, 2, 3)
	require.NoError(t, matrix.Neg(n, a))
	requireCells(t, [][]float64{{1.5, 0, -2}, {-3, 4, 0}}, n)
	require.NoError(t, matrix.Neg(n, n))
	requireEqual(t, a, n)

	abs := mustDense(t, 2, 3)
	require.NoError(t, matrix.Abs(abs, a))
	requireCells(t, [][]float64{{1.5, 0, 2}, {3, 4, 0}}, abs)
	for _, v := range abs.ToFlat() {
		require.False(t, math.Signbit(v), "abs must clear the sign bit")
	}
}

// TestNaNPropagates: NaN and Inf flow through kernels under the default policy,
// and are rejected for a strict result.
func TestNaNPropagates(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{nan(), inf()}})
	b := mustNested(t, [][]float64{{1, 1}})
	out := mustDense(t, 1, 2)
	require.NoError(t, matrix.Add(out, a, b))
	v, err := out.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
	v, err = out.At(0, 1)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))

	strict := mustDense(t, 1, 2, matrix.WithValidateNaNInf())
	require.ErrorIs(t, matrix.Add(strict, a, b), matrix.ErrNaNInf)
}

// TestElementwiseAliasing: result == operand is fine; partial overlap is not.
func TestElementwiseAliasing(t *testing.T) {
	t.Parallel()

	base := mustNested(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	b := mustFilled(t, 3, 3, 1)
	require.NoError(t, matrix.Add(base, base, b))
	requireCells(t, [][]float64{{2, 3, 4}, {5, 6, 7}, {8, 9, 10}}, base)

	// Identical windows taken separately still count as exact aliasing.
	w1, err := base.View(0, 0, 2, 2)
	require.NoError(t, err)
	w2, err := base.View(0, 0, 2, 2)
	require.NoError(t, err)
	require.NoError(t, matrix.Neg(w1, w2))
	requireCells(t, [][]float64{{-2, -3, 4}, {-5, -6, 7}, {8, 9, 10}}, base)

	// Shifted window: partial overlap.
	shifted, err := base.View(1, 1, 2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.Add(w1, shifted, w2), matrix.ErrAliasing)
	require.ErrorIs(t, matrix.Abs(shifted, w1), matrix.ErrAliasing)

	// Disjoint windows of one buffer do not alias.
	top, err := base.View(0, 0, 1, 3)
	require.NoError(t, err)
	bottom, err := base.View(2, 0, 1, 3)
	require.NoError(t, err)
	require.NoError(t, matrix.Abs(bottom, top))
	requireCells(t, [][]float64{{2, 3, 4}}, bottom)
}

// TestMulIdentity: mul(a, I) == a.
func TestMulIdentity(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{1, 2}, {3, 4}})
	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	out := mustDense(t, 2, 2)
	require.NoError(t, matrix.Mul(out, a, id))
	requireEqual(t, a, out)
	require.NoError(t, matrix.Mul(out, id, a))
	requireEqual(t, a, out)

	require.NoError(t, matrix.Mul(out, a, a))
	requireCells(t, [][]float64{{7, 10}, {15, 22}}, out)
}

// TestMulShapes checks rectangular products and the inner-dimension rule.
func TestMulShapes(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustNested(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	out := mustDense(t, 2, 2)
	require.NoError(t, matrix.Mul(out, a, b))
	requireCells(t, [][]float64{{58, 64}, {139, 154}}, out)

	// 2×3 × 2×3: inner dimensions disagree.
	bad := mustDense(t, 2, 3)
	require.ErrorIs(t, matrix.Mul(bad, a, a), matrix.ErrDimensionMismatch)

	// Wrong result shape.
	wrong := mustDense(t, 3, 3)
	require.ErrorIs(t, matrix.Mul(wrong, a, b), matrix.ErrDimensionMismatch)

	// Vector shapes: 1×n × n×1 → 1×1.
	row := mustNested(t, [][]float64{{1, 2, 3}})
	col := mustNested(t, [][]float64{{4}, {5}, {6}})
	dot := mustDense(t, 1, 1)
	require.NoError(t, matrix.Mul(dot, row, col))
	requireCells(t, [][]float64{{32}}, dot)
}

// TestMulMatchesNaive: the product is bit-identical to the naive triple sum.
func TestMulMatchesNaive(t *testing.T) {
	t.Parallel()

	for _, shape := range [][3]int{{1, 1, 1}, {3, 5, 2}, {17, 9, 13}, {32, 32, 32}} {
		r, n, c := shape[0], shape[1], shape[2]
		t.Run(fmt.Sprintf("%dx%dx%d", r, n, c), func(t *testing.T) {
			a := mustRandom(t, r, n, uint64(r*100+n))
			b := mustRandom(t, n, c, uint64(n*100+c))
			out := mustDense(t, r, c)
			require.NoError(t, matrix.Mul(out, a, b, matrix.WithWorkers(1)))
			require.Equal(t, naiveMul(a.ToNested(), b.ToNested()), out.ToNested())
		})
	}
}

// TestMulParallelMatchesSerial: banding never changes a single bit.
func TestMulParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	a := mustRandom(t, 37, 23, 7)
	b := mustRandom(t, 23, 41, 8)
	serial := mustDense(t, 37, 41)
	require.NoError(t, matrix.Mul(serial, a, b, matrix.WithWorkers(1)))

	for _, workers := range []int{2, 3, 8, 64} {
		par := mustDense(t, 37, 41)
		require.NoError(t, matrix.Mul(par, a, b,
			matrix.WithWorkers(workers), matrix.WithParallelThreshold(0)))
		requireEqual(t, serial, par)
	}
}

// TestMulFallbackMatchesFastPath: hiding the concrete type takes the At path
// with the same result.
func TestMulFallbackMatchesFastPath(t *testing.T) {
	t.Parallel()

	a := mustRandom(t, 6, 4, 11)
	b := mustRandom(t, 4, 5, 12)
	fast := mustDense(t, 6, 5)
	slow := mustDense(t, 6, 5)
	require.NoError(t, matrix.Mul(fast, a, b))
	require.NoError(t, matrix.Mul(slow, hide{a}, hide{b}))
	requireEqual(t, fast, slow)

	sumFast := mustDense(t, 6, 4)
	sumSlow := mustDense(t, 6, 4)
	require.NoError(t, matrix.Add(sumFast, a, a))
	require.NoError(t, matrix.Add(sumSlow, hide{a}, a))
	requireEqual(t, sumFast, sumSlow)
}

// TestMulThroughViews multiplies windows of larger buffers.
func TestMulThroughViews(t *testing.T) {
	t.Parallel()

	big := mustNested(t, [][]float64{
		{9, 9, 9, 9},
		{9, 1, 2, 9},
		{9, 3, 4, 9},
		{9, 9, 9, 9},
	})
	inner, err := big.View(1, 1, 2, 2)
	require.NoError(t, err)
	outBuf := mustDense(t, 3, 3)
	out, err := outBuf.View(1, 1, 2, 2)
	require.NoError(t, err)

	require.NoError(t, matrix.Mul(out, inner, inner))
	requireCells(t, [][]float64{{0, 0, 0}, {0, 7, 10}, {0, 15, 22}}, outBuf)
}

// TestMulAliasing: any overlap between result and an operand is rejected.
func TestMulAliasing(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{1, 2}, {3, 4}})
	require.ErrorIs(t, matrix.Mul(a, a, a), matrix.ErrAliasing)

	big := mustDense(t, 3, 3)
	w1, err := big.View(0, 0, 2, 2)
	require.NoError(t, err)
	w2, err := big.View(1, 1, 2, 2)
	require.NoError(t, err)
	other := mustFilled(t, 2, 2, 1)
	require.ErrorIs(t, matrix.Mul(w1, other, w2), matrix.ErrAliasing)
	require.ErrorIs(t, matrix.Pow(w1, w2, 3), matrix.ErrAliasing)
}

// TestPowSmallExponents: 0 → identity, 1 → copy, 2 → exactly mul(a,a).
func TestPowSmallExponents(t *testing.T) {
	t.Parallel()

	a := mustRandom(t, 5, 5, 99)
	out := mustDense(t, 5, 5)
	out2 := mustDense(t, 5, 5)

	require.NoError(t, out.Fill(3))
	require.NoError(t, matrix.Pow(out, a, 0))
	id, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	requireEqual(t, id, out)

	require.NoError(t, matrix.Pow(out, a, 1))
	requireEqual(t, a, out)

	require.NoError(t, matrix.Pow(out, a, 2))
	require.NoError(t, matrix.Mul(out2, a, a))
	requireEqual(t, out2, out)
}

// TestPowMatchesRepeatedMul compares against iterated multiplication: exact
// for integer data, within tolerance for random data.
func TestPowMatchesRepeatedMul(t *testing.T) {
	t.Parallel()

	ints := mustNested(t, [][]float64{{1, 1, 0}, {1, 0, 1}, {0, 1, 1}})
	random := mustRandom(t, 4, 4, 5)

	for _, tc := range []struct {
		name  string
		a     *matrix.Dense
		exact bool
	}{
		{"integers", ints, true},
		{"random", random, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.a.Rows()
			for e := 2; e <= 7; e++ {
				want := mustDense(t, n, n)
				tmp := mustDense(t, n, n)
				require.NoError(t, matrix.Copy(want, tc.a))
				for k := 1; k < e; k++ {
					require.NoError(t, matrix.Mul(tmp, want, tc.a))
					require.NoError(t, matrix.Copy(want, tmp))
				}
				got := mustDense(t, n, n)
				require.NoError(t, matrix.Pow(got, tc.a, e))
				if tc.exact {
					requireEqual(t, want, got)
					continue
				}
				ok, err := matrix.AllClose(got, want, 1e-9, 1e-12)
				require.NoError(t, err)
				require.True(t, ok, "exponent %d", e)
			}
		})
	}
}

// TestPowLeavesOperand ensures a is untouched and scratch buffers do not leak
// into the result handle.
func TestPowLeavesOperand(t *testing.T) {
	t.Parallel()

	a := mustNested(t, [][]float64{{2, 0}, {0, 3}})
	out := mustDense(t, 2, 2)
	require.NoError(t, matrix.Pow(out, a, 5))
	requireCells(t, [][]float64{{32, 0}, {0, 243}}, out)
	requireCells(t, [][]float64{{2, 0}, {0, 3}}, a)
	require.Equal(t, 1, out.RefCount())
	require.Equal(t, 1, a.RefCount())
}

// TestPowErrors covers the argument and shape rules.
func TestPowErrors(t *testing.T) {
	t.Parallel()

	sq := mustDense(t, 2, 2)
	out := mustDense(t, 2, 2)
	require.ErrorIs(t, matrix.Pow(out, sq, -1), matrix.ErrInvalidArgument)

	rect := mustDense(t, 2, 3)
	rectOut := mustDense(t, 2, 3)
	require.ErrorIs(t, matrix.Pow(rectOut, rect, 2), matrix.ErrDimensionMismatch)

	big := mustDense(t, 3, 3)
	require.ErrorIs(t, matrix.Pow(big, sq, 2), matrix.ErrDimensionMismatch)

	require.ErrorIs(t, matrix.Pow(nil, sq, 2), matrix.ErrNilMatrix)
	require.NoError(t, sq.Release())
	require.ErrorIs(t, matrix.Pow(out, sq, 2), matrix.ErrReleased)
}

// TestIdentityAndCopy covers the helper kernels used by Pow.
func TestIdentityAndCopy(t *testing.T) {
	t.Parallel()

	m := mustFilled(t, 3, 3, 5)
	require.NoError(t, matrix.Identity(m))
	requireCells(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, m)
	require.ErrorIs(t, matrix.Identity(mustDense(t, 2, 3)), matrix.ErrDimensionMismatch)

	dst := mustDense(t, 3, 3)
	require.NoError(t, matrix.Copy(dst, m))
	requireEqual(t, m, dst)
}
