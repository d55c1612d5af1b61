// SPDX-License-Identifier: MIT
// Package solver: marginal log-likelihood.
//
// Both paths compute
//
//	ln L = −½ (rᵗΣ_marg⁻¹r + log|Σ_marg| + N·log 2π),  r = b − A·μ_prior,
//	Σ_marg = A·Σ_prior·Aᵗ + Σ_data,
//
// and differ only in which matrix they factor. The quadratic form is always
// a squared norm of a whitened vector on the direct path.

package solver

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

var log2Pi = math.Log(2 * math.Pi)

// LnLike returns log N(b | A·μ_prior, A·Σ_prior·Aᵗ + Σ_data).
//
// useWoodbury selects the path and is never overridden:
//   - false: factor the N×N marginal covariance directly.
//   - true:  factor the K×K posterior precision and apply the Woodbury
//     identity and the matrix determinant lemma; no N×N matrix is formed
//     for scalar/vector Σ_data.
//
// The result may be −Inf for extremely unlikely data; it is never NaN for
// valid input.
func LnLike(a mat.Matrix, b mat.Vector, prior Prior, data covariance.Spec, useWoodbury bool, opts ...Option) (float64, error) {
	o := NewOptions(opts...)
	n, k, err := validateProblem(opLnLike, a, b, prior, data, o)
	if err != nil {
		return 0, err
	}

	path := "direct"
	if useWoodbury {
		path = "woodbury"
	}
	o.logger.Debug("lnlike", zap.String("path", path), zap.Int("n", n), zap.Int("k", k))

	if useWoodbury {
		f, err := precompute(opLnLike, a, prior.Cov, data, n, k, o)
		if err != nil {
			return 0, err
		}
		return f.lnLikeWoodbury(opLnLike, b, prior.Mean)
	}

	return lnLikeDirect(opLnLike, a, b, prior, data, n, k, o)
}

// lnLikeDirect factors Σ_marg = (A·L_p)(A·L_p)ᵗ + Σ_data.
// Complexity: O(N²·K + N³) time, O(N²) memory.
func lnLikeDirect(op string, a mat.Matrix, b mat.Vector, prior Prior, data covariance.Spec, n, k int, o Options) (float64, error) {
	priorRep, err := buildRep(op, whatPriorCov, prior.Cov, k, o)
	if err != nil {
		return 0, err
	}
	dataRep, err := buildRep(op, whatDataCov, data, n, o)
	if err != nil {
		return 0, err
	}

	aL, err := priorRep.MulFactor(a)
	if err != nil {
		return 0, solverErrorf(op, whatPriorCov, err)
	}
	var marg mat.SymDense
	marg.SymOuterK(1, aL)
	if err = dataRep.AddTo(&marg); err != nil {
		return 0, solverErrorf(op, whatDataCov, err)
	}

	margRep, err := factorSPD(op, whatMarginal, &marg, o)
	if err != nil {
		return 0, err
	}

	return gaussianLogDensity(op, margRep, residual(a, b, prior.Mean))
}

// lnLikeWoodbury evaluates the likelihood from the shared factorization.
//
//	δ = Λ_post⁻¹·Aᵗ·Σ_d⁻¹·r
//	rᵗΣ_marg⁻¹r = ‖L_d⁻¹(r − A·δ)‖² + ‖L_p⁻¹δ‖²
//	log|Σ_marg| = log|Σ_d| + log|Σ_p| + log|Λ_post|
//
// Both terms of the quadratic form are squared norms, so it stays
// non-negative when the data term dominates the prior term.
func (f *Factorization) lnLikeWoodbury(op string, b, priorMean mat.Vector) (float64, error) {
	r := residual(f.a, b, priorMean)

	u := mat.NewVecDense(f.k, nil)
	u.MulVec(f.cinvA.T(), r)
	delta, err := f.post.ApplyInverseVec(u)
	if err != nil {
		return 0, solverErrorf(op, whatPostPrec, err)
	}

	fit := mat.NewVecDense(f.n, nil)
	fit.MulVec(f.a, delta)
	fit.SubVec(r, fit)
	wd, err := f.data.Whiten(fit)
	if err != nil {
		return 0, solverErrorf(op, whatDataCov, err)
	}
	wp, err := f.prior.Whiten(delta)
	if err != nil {
		return 0, solverErrorf(op, whatPriorCov, err)
	}

	quad := mat.Dot(wd, wd) + mat.Dot(wp, wp)
	logDet := f.data.LogDet() + f.prior.LogDet() + f.post.LogDet()

	return finiteLnLike(op, -0.5*(quad+logDet+float64(f.n)*log2Pi))
}

// gaussianLogDensity returns log N(r | 0, Σ) for the Σ held by rep.
func gaussianLogDensity(op string, rep *covariance.Representation, r mat.Vector) (float64, error) {
	w, err := rep.Whiten(r)
	if err != nil {
		return 0, solverErrorf(op, "", err)
	}

	return finiteLnLike(op, -0.5*(mat.Dot(w, w)+rep.LogDet()+float64(rep.Dim())*log2Pi))
}

// residual returns b − A·mean; a nil mean is zero.
func residual(a mat.Matrix, b, mean mat.Vector) *mat.VecDense {
	n, _ := a.Dims()
	r := mat.NewVecDense(n, nil)
	if !covariance.IsNil(mean) {
		r.MulVec(a, mean)
	}
	r.SubVec(b, r)

	return r
}

func finiteLnLike(op string, v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, solverErrorf(op, "log-likelihood", ErrNaNInf)
	}

	return v, nil
}
