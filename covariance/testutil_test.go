package covariance_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// namedSpec pairs a covariance encoding with a label for t.Run.
type namedSpec struct {
	name string
	spec covariance.Spec
}

// isotropicEncodings returns all four encodings of variance·I_n.
func isotropicEncodings(n int, variance float64) []namedSpec {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = variance
	}
	dense := mat.NewDense(n, n, nil)
	lower := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		dense.Set(i, i, variance)
		lower.Set(i, i, math.Sqrt(variance))
	}

	return []namedSpec{
		{"scalar", covariance.Scalar{Variance: variance}},
		{"vector", covariance.Vector{Variances: ones}},
		{"matrix", covariance.Matrix{Cov: dense}},
		{"cholesky", covariance.Cholesky{L: lower}},
	}
}

// diagonalEncodings returns the three encodings able to express diag(v).
func diagonalEncodings(v []float64) []namedSpec {
	n := len(v)
	dense := mat.NewDense(n, n, nil)
	lower := mat.NewDense(n, n, nil)
	for i, x := range v {
		dense.Set(i, i, x)
		lower.Set(i, i, math.Sqrt(x))
	}

	return []namedSpec{
		{"vector", covariance.Vector{Variances: append([]float64(nil), v...)}},
		{"matrix", covariance.Matrix{Cov: dense}},
		{"cholesky", covariance.Cholesky{L: lower}},
	}
}

// randomSPD returns B·Bᵗ + n·I for a seeded random B; well conditioned.
func randomSPD(t testing.TB, n int, seed int64) *mat.SymDense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(i, j, rng.Float64()*2-1)
		}
	}
	var s mat.SymDense
	s.SymOuterK(1, b)
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)+float64(n))
	}

	return &s
}

// lowerOf returns the lower Cholesky factor of s as a plain *mat.Dense, so the
// triangularity scan is exercised.
func lowerOf(t testing.TB, s mat.Symmetric) *mat.Dense {
	t.Helper()
	var chol mat.Cholesky
	require.True(t, chol.Factorize(s), "fixture must be SPD")
	var l mat.TriDense
	chol.LTo(&l)

	return mat.DenseCopyOf(&l)
}

// randomVec returns a seeded vector with entries in [-1, 1).
func randomVec(n int, seed int64) *mat.VecDense {
	rng := rand.New(rand.NewSource(seed))
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, rng.Float64()*2-1)
	}

	return v
}

// mustNew builds a Representation or fails the test.
func mustNew(t testing.TB, spec covariance.Spec, n int, opts ...covariance.Option) *covariance.Representation {
	t.Helper()
	r, err := covariance.New(spec, n, opts...)
	require.NoError(t, err)

	return r
}

// requireMatClose asserts |a−b| ≤ atol + rtol·|b| elementwise.
func requireMatClose(t testing.TB, want, got mat.Matrix, rtol, atol float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr, "rows")
	require.Equal(t, wc, gc, "cols")
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			w, g := want.At(i, j), got.At(i, j)
			require.LessOrEqualf(t, math.Abs(w-g), atol+rtol*math.Abs(w), "[%d,%d] want %g got %g", i, j, w, g)
		}
	}
}

// requireVecClose asserts |a−b| ≤ atol + rtol·|b| elementwise.
func requireVecClose(t testing.TB, want, got mat.Vector, rtol, atol float64) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len(), "length")
	for i := 0; i < want.Len(); i++ {
		w, g := want.AtVec(i), got.AtVec(i)
		require.LessOrEqualf(t, math.Abs(w-g), atol+rtol*math.Abs(w), "[%d] want %g got %g", i, w, g)
	}
}
