// SPDX-License-Identifier: MIT
// Package solver: the shared K×K factorization.
//
// Purpose:
//   - Build Λ_post = Σ_prior⁻¹ + Aᵗ·Σ_data⁻¹·A once and factor it once.
//   - Serve both the posterior (Solve) and the Woodbury likelihood from the
//     same factor, for as many observation vectors as the caller has.
//
// Determinism & Policy:
//   - A is copied on entry; later mutation of the caller's matrix has no effect.
//   - A Factorization is immutable and safe for concurrent use.

package solver

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// Factorization holds everything about a problem that does not depend on b
// or μ_prior.
type Factorization struct {
	a     *mat.Dense                 // N×K copy of A
	cinvA *mat.Dense                 // Σ_data⁻¹·A, N×K
	prior *covariance.Representation // Σ_prior, K×K
	data  *covariance.Representation // Σ_data, N×N
	post  *covariance.Representation // Λ_post, K×K
	n, k  int
	opts  Options
}

// Precompute validates A, Σ_prior and Σ_data and factors the posterior
// precision Λ_post.
//
// Errors: ErrNilInput, ErrBadShape, ErrDimensionMismatch (*DimensionError),
// ErrNaNInf, ErrNotPositiveDefinite, and the structural covariance errors.
//
// Complexity: O(N·K² + K³) for scalar/vector Σ_data, O(N²·K + N³) for dense.
func Precompute(a mat.Matrix, priorCov, dataCov covariance.Spec, opts ...Option) (*Factorization, error) {
	o := NewOptions(opts...)
	n, k, err := validateDesign(opPrecompute, a, o)
	if err != nil {
		return nil, err
	}
	if err = validateSpec(opPrecompute, whatPriorCov, priorCov, k); err != nil {
		return nil, err
	}
	if err = validateSpec(opPrecompute, whatDataCov, dataCov, n); err != nil {
		return nil, err
	}

	return precompute(opPrecompute, a, priorCov, dataCov, n, k, o)
}

// precompute assumes validated inputs.
func precompute(op string, a mat.Matrix, priorCov, dataCov covariance.Spec, n, k int, o Options) (*Factorization, error) {
	prior, err := buildRep(op, whatPriorCov, priorCov, k, o)
	if err != nil {
		return nil, err
	}
	data, err := buildRep(op, whatDataCov, dataCov, n, o)
	if err != nil {
		return nil, err
	}

	f := &Factorization{a: mat.DenseCopyOf(a), prior: prior, data: data, n: n, k: k, opts: o}
	if f.cinvA, err = data.ApplyInverse(f.a); err != nil {
		return nil, solverErrorf(op, whatDataCov, err)
	}

	precPrior, err := prior.Precision()
	if err != nil {
		return nil, solverErrorf(op, whatPriorCov, err)
	}
	var g mat.Dense
	g.Mul(f.a.T(), f.cinvA)

	// Aᵗ·Σ_data⁻¹·A is symmetric in exact arithmetic; average the triangles.
	lambda := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			lambda.SetSym(i, j, precPrior.At(i, j)+0.5*(g.At(i, j)+g.At(j, i)))
		}
	}
	if f.post, err = factorSPD(op, whatPostPrec, lambda, o); err != nil {
		return nil, err
	}

	o.logger.Debug("posterior precision factorized",
		zap.String("op", op),
		zap.Int("n", n),
		zap.Int("k", k),
		zap.Stringer("prior", prior.Kind()),
		zap.Stringer("data", data.Kind()),
	)

	return f, nil
}

// Dims reports (N, K).
func (f *Factorization) Dims() (int, int) { return f.n, f.k }

// Solve returns the posterior for observations b and prior mean priorMean
// (nil means zero). Non-finite results are reported as for the package-level
// Solve: ErrNaNInf for a NaN mean, and CovFactor is finite whenever err is nil.
//
// Complexity: O(N·K + K³).
func (f *Factorization) Solve(b, priorMean mat.Vector) (Posterior, error) {
	if err := f.validateObs(opFactSolve, b, priorMean); err != nil {
		return Posterior{}, err
	}

	return f.solve(opFactSolve, b, priorMean)
}

// LnLike returns the marginal log-likelihood of b through the Woodbury path.
//
// Complexity: O(N·K + K²) given the factorization, plus O(N²) for dense Σ_data.
func (f *Factorization) LnLike(b, priorMean mat.Vector) (float64, error) {
	if err := f.validateObs(opFactLnLike, b, priorMean); err != nil {
		return 0, err
	}

	return f.lnLikeWoodbury(opFactLnLike, b, priorMean)
}

func (f *Factorization) validateObs(op string, b, priorMean mat.Vector) error {
	if err := validateVec(op, whatB, b, f.n, true, f.opts); err != nil {
		return err
	}

	return validateVec(op, whatPriorMean, priorMean, f.k, false, f.opts)
}

// solve computes μ_post = Λ_post⁻¹(Σ_prior⁻¹·μ_prior + Aᵗ·Σ_data⁻¹·b) and the
// lower factor of Σ_post = Λ_post⁻¹.
func (f *Factorization) solve(op string, b, priorMean mat.Vector) (Posterior, error) {
	rhs := mat.NewVecDense(f.k, nil)
	rhs.MulVec(f.cinvA.T(), b)
	if !covariance.IsNil(priorMean) {
		pm, err := f.prior.ApplyInverseVec(priorMean)
		if err != nil {
			return Posterior{}, solverErrorf(op, whatPriorMean, err)
		}
		rhs.AddVec(rhs, pm)
	}

	mean, err := f.post.ApplyInverseVec(rhs)
	if err != nil {
		return Posterior{}, solverErrorf(op, whatPostPrec, err)
	}
	for i := 0; i < f.k; i++ {
		if math.IsNaN(mean.AtVec(i)) {
			return Posterior{}, solverErrorf(op, "posterior mean", ErrNaNInf)
		}
	}

	cov, err := f.post.Precision()
	if err != nil {
		return Posterior{}, solverErrorf(op, whatPostCov, err)
	}
	covRep, err := factorSPD(op, whatPostCov, cov, f.opts)
	if err != nil {
		return Posterior{}, err
	}

	return Posterior{Mean: mean, CovFactor: covRep.Lower()}, nil
}

// buildRep normalizes a caller-supplied covariance and logs poor conditioning.
func buildRep(op, what string, spec covariance.Spec, n int, o Options) (*covariance.Representation, error) {
	rep, err := covariance.New(spec, n, o.CovarianceOptions()...)
	if err != nil {
		return nil, solverErrorf(op, what, err)
	}
	warnCondition(op, what, rep, o)

	return rep, nil
}

// factorSPD factors a symmetric matrix assembled by the solver itself. It is
// the single place where Λ_post, Σ_post and Σ_marg meet Cholesky.
func factorSPD(op, what string, sym *mat.SymDense, o Options) (*covariance.Representation, error) {
	n, _ := sym.Dims()

	return buildRep(op, what, covariance.Matrix{Cov: sym}, n, o)
}

func warnCondition(op, what string, rep *covariance.Representation, o Options) {
	if c := rep.Cond(); c > o.condWarn {
		o.logger.Warn("ill-conditioned matrix",
			zap.String("op", op),
			zap.String("matrix", what),
			zap.Float64("cond", c),
			zap.Float64("threshold", o.condWarn),
		)
	}
}
