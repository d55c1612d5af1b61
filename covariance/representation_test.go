package covariance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

const (
	rtol = 1e-10
	atol = 1e-12
)

// denseCases returns the isotropic fixtures plus a dense SPD matrix given both
// as Matrix and as Cholesky, together with the reference dense Σ.
func denseCases(t *testing.T, n int) ([]namedSpec, []*mat.SymDense) {
	t.Helper()
	const variance = 2.5
	iso := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		iso.SetSym(i, i, variance)
	}
	spd := randomSPD(t, n, 7)

	cases := isotropicEncodings(n, variance)
	refs := []*mat.SymDense{iso, iso, iso, iso}
	cases = append(cases,
		namedSpec{"spd-matrix", covariance.Matrix{Cov: spd}},
		namedSpec{"spd-cholesky", covariance.Cholesky{L: lowerOf(t, spd)}},
	)
	refs = append(refs, spd, spd)

	return cases, refs
}

func TestCholeskyFactor_RoundTrip(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	for i, tc := range cases {
		want := refs[i]
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)
			L := r.CholeskyFactor()

			var got mat.Dense
			got.Mul(L, L.T())
			requireMatClose(t, want, &got, rtol, atol)
			requireMatClose(t, want, r.Sym(), rtol, atol)

			var fromLower mat.Dense
			lower := r.Lower()
			fromLower.Mul(lower, lower.T())
			requireMatClose(t, want, &fromLower, rtol, atol)
		})
	}
}

func TestCholeskyFactor_SuppliedFactorUnchanged(t *testing.T) {
	L := lowerOf(t, randomSPD(t, 4, 3))
	r := mustNew(t, covariance.Cholesky{L: L}, 4)

	got, ok := r.CholeskyFactor().(*mat.Dense)
	require.True(t, ok, "supplied factor type must be preserved")
	require.Same(t, L, got)
}

func TestCholeskyFactor_ScalarIsImplicit(t *testing.T) {
	r := mustNew(t, covariance.Scalar{Variance: 4}, 1000)
	L := r.CholeskyFactor()

	_, isDense := L.(*mat.Dense)
	require.False(t, isDense)
	rows, cols := L.Dims()
	require.Equal(t, 1000, rows)
	require.Equal(t, 1000, cols)
	require.Equal(t, 2.0, L.At(999, 999))
	require.Equal(t, 0.0, L.At(0, 999))
	require.Panics(t, func() { L.At(1000, 0) })
}

func TestLogDet(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	for i, tc := range cases {
		want, sign := mat.LogDet(refs[i])
		require.Equal(t, 1.0, sign)
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)
			require.InDelta(t, want, r.LogDet(), 1e-10)
		})
	}

	t.Run("vector", func(t *testing.T) {
		r := mustNew(t, covariance.Vector{Variances: []float64{1, math.E, math.E * math.E}}, 3)
		require.InDelta(t, 3.0, r.LogDet(), 1e-14)
	})
}

func TestApplyInverse(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	v := randomVec(n, 11)
	m := mat.NewDense(n, 3, []float64{
		1, 0, -2,
		0.5, 3, 1,
		-1, 2, 0,
		4, -1, 1,
		0, 0, 1,
	})
	for i, tc := range cases {
		sigma := refs[i]
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)

			x, err := r.ApplyInverseVec(v)
			require.NoError(t, err)
			var back mat.VecDense
			back.MulVec(sigma, x)
			requireVecClose(t, v, &back, 1e-9, 1e-12)

			X, err := r.ApplyInverse(m)
			require.NoError(t, err)
			var backM mat.Dense
			backM.Mul(sigma, X)
			requireMatClose(t, m, &backM, 1e-9, 1e-12)
		})
	}
}

func TestWhiten_QuadraticForm(t *testing.T) {
	const n = 5
	cases, _ := denseCases(t, n)
	v := randomVec(n, 5)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)

			w, err := r.Whiten(v)
			require.NoError(t, err)
			x, err := r.ApplyInverseVec(v)
			require.NoError(t, err)

			require.InDelta(t, mat.Dot(v, x), mat.Dot(w, w), 1e-12)

			// L·(L⁻¹v) = v
			back, err := r.FactorVec(w)
			require.NoError(t, err)
			requireVecClose(t, v, back, 1e-10, 1e-12)
		})
	}
}

func TestMulFactor_SandwichProduct(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	a := mat.NewDense(3, n, []float64{
		1, 2, 0, -1, 0.5,
		0, 1, 1, 1, -2,
		3, 0, -1, 0, 1,
	})
	for i, tc := range cases {
		sigma := refs[i]
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)

			aL, err := r.MulFactor(a)
			require.NoError(t, err)
			var got mat.Dense
			got.Mul(aL, aL.T())

			var tmp, want mat.Dense
			tmp.Mul(a, sigma)
			want.Mul(&tmp, a.T())
			requireMatClose(t, &want, &got, 1e-10, 1e-10)
		})
	}
}

func TestPrecision_TimesCovarianceIsIdentity(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	eye := mat.NewDiagDense(n, []float64{1, 1, 1, 1, 1})
	for i, tc := range cases {
		sigma := refs[i]
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)
			p, err := r.Precision()
			require.NoError(t, err)

			var prod mat.Dense
			prod.Mul(p, sigma)
			requireMatClose(t, eye, &prod, 0, 1e-10)
		})
	}
}

func TestAddTo(t *testing.T) {
	const n = 5
	cases, refs := denseCases(t, n)
	base := randomSPD(t, n, 99)
	for i, tc := range cases {
		sigma := refs[i]
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.spec, n)
			dst := mat.NewSymDense(n, nil)
			dst.CopySym(base)
			require.NoError(t, r.AddTo(dst))

			var want mat.SymDense
			want.AddSym(base, sigma)
			requireMatClose(t, &want, dst, 1e-12, 1e-12)
		})
	}

	r := mustNew(t, covariance.Scalar{Variance: 1}, n)
	err := r.AddTo(mat.NewSymDense(n+1, nil))
	require.ErrorIs(t, err, covariance.ErrDimensionMismatch)
}

func TestCond(t *testing.T) {
	require.Equal(t, 1.0, mustNew(t, covariance.Scalar{Variance: 3}, 4).Cond())
	require.InDelta(t, 8.0, mustNew(t, covariance.Vector{Variances: []float64{0.5, 2, 4}}, 3).Cond(), 1e-15)

	spd := randomSPD(t, 6, 1)
	c := mustNew(t, covariance.Matrix{Cov: spd}, 6).Cond()
	require.GreaterOrEqual(t, c, 1.0)
	require.False(t, math.IsInf(c, 0))
}

func TestVector_CopiesVariances(t *testing.T) {
	v := []float64{1, 2, 3}
	r := mustNew(t, covariance.Vector{Variances: v}, 3)
	v[0] = 100

	require.InDelta(t, math.Log(6), r.LogDet(), 1e-14)
}

func TestKind(t *testing.T) {
	for _, tc := range isotropicEncodings(2, 1) {
		r := mustNew(t, tc.spec, 2)
		require.Equal(t, tc.name, r.Kind().String())
		require.Equal(t, 2, r.Dim())
	}
	require.Equal(t, "unknown", covariance.Kind(42).String())
}
