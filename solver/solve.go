// SPDX-License-Identifier: MIT

package solver

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// Solve returns the posterior N(μ_post, Σ_post) of the coefficients of the
// linear model b = A·y + noise, y ~ prior, noise ~ N(0, data).
//
// Steps:
//  1. Validate every shape (ErrDimensionMismatch before any factorization).
//  2. Factor Σ_prior and Σ_data in their own encodings.
//  3. Λ_post = Σ_prior⁻¹ + Aᵗ·Σ_data⁻¹·A, Cholesky once.
//  4. μ_post by triangular solves; Σ_post = Λ_post⁻¹ and its lower factor.
//
// Inputs are not mutated.
//
// ErrNaNInf is returned for non-finite inputs when the scan is enabled, and
// always for a NaN posterior mean. A non-finite Λ_post or Σ_post is caught by
// the same scan when the solver factors it; with the scan disabled it fails
// Cholesky and surfaces as ErrNotPositiveDefinite instead. The returned
// CovFactor is therefore finite whenever err is nil.
func Solve(a mat.Matrix, b mat.Vector, prior Prior, data covariance.Spec, opts ...Option) (Posterior, error) {
	o := NewOptions(opts...)
	n, k, err := validateProblem(opSolve, a, b, prior, data, o)
	if err != nil {
		return Posterior{}, err
	}
	o.logger.Debug("solve", zap.Int("n", n), zap.Int("k", k))

	f, err := precompute(opSolve, a, prior.Cov, data, n, k, o)
	if err != nil {
		return Posterior{}, err
	}

	return f.solve(opSolve, b, prior.Mean)
}
