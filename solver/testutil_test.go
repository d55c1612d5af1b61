package solver_test

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
	vars := make([]float64, n)
	dense := mat.NewDense(n, n, nil)
	lower := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		vars[i] = variance
		dense.Set(i, i, variance)
		lower.Set(i, i, math.Sqrt(variance))
	}

	return []namedSpec{
		{"scalar", covariance.Scalar{Variance: variance}},
		{"vector", covariance.Vector{Variances: vars}},
		{"matrix", covariance.Matrix{Cov: dense}},
		{"cholesky", covariance.Cholesky{L: lower}},
	}
}

// harmonicDesign is a small rotational forward model: column 0 is a constant
// and column j is cos(j·φᵢ + θ) sampled on a uniform phase grid. Changing θ
// rotates the column space, so a wrong θ cannot be absorbed by the
// coefficients.
func harmonicDesign(n, k int, theta float64) *mat.Dense {
	a := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		a.Set(i, 0, 1)
		for j := 1; j < k; j++ {
			a.Set(i, j, math.Cos(float64(j)*phi+theta))
		}
	}

	return a
}

// synthetic returns b = A·y + σ·ε with seeded standard normal ε.
func synthetic(a mat.Matrix, y []float64, sigma float64, seed int64) *mat.VecDense {
	n, _ := a.Dims()
	rng := rand.New(rand.NewSource(seed))
	b := mat.NewVecDense(n, nil)
	b.MulVec(a, mat.NewVecDense(len(y), y))
	for i := 0; i < n; i++ {
		b.SetVec(i, b.AtVec(i)+sigma*rng.NormFloat64())
	}

	return b
}

// randomDense returns a seeded r×c matrix with entries in [-1, 1).
func randomDense(r, c int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, rng.Float64()*2-1)
		}
	}

	return m
}

// randomSPD returns B·Bᵗ + n·I for a seeded random B.
func randomSPD(n int, seed int64) *mat.SymDense {
	var s mat.SymDense
	s.SymOuterK(1, randomDense(n, n, seed))
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)+float64(n))
	}

	return &s
}

// randomVec returns a seeded vector with entries in [-1, 1).
func randomVec(n int, seed int64) *mat.VecDense {
	return mat.NewVecDense(n, randomDense(1, n, seed).RawRowView(0))
}

// lowerOf returns the lower Cholesky factor of s as a plain *mat.Dense.
func lowerOf(t testing.TB, s mat.Symmetric) *mat.Dense {
	t.Helper()
	var chol mat.Cholesky
	require.True(t, chol.Factorize(s), "fixture must be SPD")
	var l mat.TriDense
	chol.LTo(&l)

	return mat.DenseCopyOf(&l)
}

// requireMatClose asserts |w−g| ≤ atol + rtol·|w| elementwise.
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

// requireVecClose asserts |w−g| ≤ atol + rtol·|w| elementwise.
func requireVecClose(t testing.TB, want, got mat.Vector, rtol, atol float64) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len(), "length")
	for i := 0; i < want.Len(); i++ {
		w, g := want.AtVec(i), got.AtVec(i)
		require.LessOrEqualf(t, math.Abs(w-g), atol+rtol*math.Abs(w), "[%d] want %g got %g", i, w, g)
	}
}

// referencePosterior computes the posterior with explicit inverses.
func referencePosterior(t testing.TB, a mat.Matrix, b, mean mat.Vector, priorCov, dataCov mat.Matrix) (*mat.VecDense, *mat.Dense) {
	t.Helper()
	var pInv, dInv mat.Dense
	require.NoError(t, pInv.Inverse(priorCov))
	require.NoError(t, dInv.Inverse(dataCov))

	var tmp, lambda mat.Dense
	tmp.Mul(a.T(), &dInv)
	lambda.Mul(&tmp, a)
	lambda.Add(&lambda, &pInv)

	var cov mat.Dense
	require.NoError(t, cov.Inverse(&lambda))

	_, k := a.Dims()
	rhs := mat.NewVecDense(k, nil)
	rhs.MulVec(&tmp, b)
	if mean != nil {
		var pm mat.VecDense
		pm.MulVec(&pInv, mean)
		rhs.AddVec(rhs, &pm)
	}
	mu := mat.NewVecDense(k, nil)
	mu.MulVec(&cov, rhs)

	return mu, &cov
}
