// SPDX-License-Identifier: MIT
// Package solver: sentinel error set.
// The numerical sentinels are shared with package covariance so that
// errors.Is works regardless of which layer detected the failure.

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bayeslin/covariance"
)

var (
	// ErrNotPositiveDefinite is returned when Σ_prior, Σ_data, the marginal
	// covariance or the posterior precision fails Cholesky factorization.
	ErrNotPositiveDefinite = covariance.ErrNotPositiveDefinite

	// ErrDimensionMismatch is returned when A, b, μ_prior, Σ_prior and Σ_data
	// disagree on N or K.
	ErrDimensionMismatch = covariance.ErrDimensionMismatch

	// ErrNaNInf signals a NaN or ±Inf input, or a NaN result.
	ErrNaNInf = covariance.ErrNaNInf

	// ErrNilInput is returned for a nil design matrix, observation vector,
	// covariance spec, posterior factor or random source.
	ErrNilInput = errors.New("solver: nil input")

	// ErrBadShape is returned when A has a zero dimension.
	ErrBadShape = covariance.ErrBadShape
)

// DimensionError carries the offending operand and both dimensions.
type DimensionError = covariance.DimensionError

// solverErrorf tags err with op and the operand it concerns.
func solverErrorf(op, what string, err error) error {
	if what == "" {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %s: %w", op, what, err)
}
