// SPDX-License-Identifier: MIT
// Package solver: eager input validation.
//
// Every shape conflict among A, b, μ_prior, Σ_prior and Σ_data is reported
// before the first factorization, so a caller never pays O(N³) to learn that
// its vectors have the wrong length.

package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// validateDesign checks A and returns (N, K).
func validateDesign(op string, a mat.Matrix, o Options) (int, int, error) {
	if covariance.IsNil(a) {
		return 0, 0, solverErrorf(op, whatA, ErrNilInput)
	}
	n, k := a.Dims()
	if n <= 0 || k <= 0 {
		return 0, 0, solverErrorf(op, whatA, ErrBadShape)
	}
	if o.validateNaNInf {
		if err := covariance.ValidateFinite(a); err != nil {
			return 0, 0, solverErrorf(op, whatA, err)
		}
	}

	return n, k, nil
}

// validateSpec checks that spec is present and, where the encoding carries
// its own size, that it matches n. A nil Cov or L is left for covariance.New
// to reject with ErrNilSpec.
func validateSpec(op, what string, spec covariance.Spec, n int) error {
	if covariance.IsNil(spec) {
		return solverErrorf(op, what, ErrNilInput)
	}

	switch s := spec.(type) {
	case covariance.Vector:
		if len(s.Variances) != n {
			return &DimensionError{Op: op, What: what, Got: len(s.Variances), Want: n}
		}
	case covariance.Matrix:
		if !covariance.IsNil(s.Cov) {
			return covariance.ValidateShape(op, what, s.Cov, n, n)
		}
	case covariance.Cholesky:
		if !covariance.IsNil(s.L) {
			return covariance.ValidateShape(op, what, s.L, n, n)
		}
	}

	return nil
}

// validateVec checks an optional vector operand of length n. A typed nil
// counts as absent.
func validateVec(op, what string, v mat.Vector, n int, required bool, o Options) error {
	if covariance.IsNil(v) {
		if required {
			return solverErrorf(op, what, ErrNilInput)
		}
		return nil
	}
	if err := covariance.ValidateVecLen(op, what, v, n); err != nil {
		return err
	}
	if o.validateNaNInf {
		if err := covariance.ValidateFiniteVec(v); err != nil {
			return solverErrorf(op, what, err)
		}
	}

	return nil
}

// validateProblem runs every shape and finiteness check of a full
// Solve/LnLike call and returns (N, K).
func validateProblem(op string, a mat.Matrix, b mat.Vector, prior Prior, data covariance.Spec, o Options) (int, int, error) {
	n, k, err := validateDesign(op, a, o)
	if err != nil {
		return 0, 0, err
	}
	if err = validateVec(op, whatB, b, n, true, o); err != nil {
		return 0, 0, err
	}
	if err = validateVec(op, whatPriorMean, prior.Mean, k, false, o); err != nil {
		return 0, 0, err
	}
	if err = validateSpec(op, whatPriorCov, prior.Cov, k); err != nil {
		return 0, 0, err
	}
	if err = validateSpec(op, whatDataCov, data, n); err != nil {
		return 0, 0, err
	}

	return n, k, nil
}
