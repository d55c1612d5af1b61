// SPDX-License-Identifier: MIT
// Package covariance: sentinel error set.
// This file defines the package-level sentinel errors used across the
// covariance package. Every constructor and operation returns these sentinels
// (possibly wrapped with an operation tag) and tests check them via errors.Is.
// No operation panics on user-triggered error conditions.

package covariance

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "covariance: ..." for consistency and easy
// grepping. Call sites wrap with fmt.Errorf("%s: %w", op, ErrX); callers match
// with errors.Is.

var (
	// ErrNilSpec is returned when a nil Spec, or a Spec wrapping a nil matrix,
	// is supplied.
	ErrNilSpec = errors.New("covariance: nil covariance spec")

	// ErrNilOperand is returned when a nil vector or matrix operand is passed
	// to a Representation operation.
	ErrNilOperand = errors.New("covariance: nil operand")

	// ErrBadShape is returned when the requested dimension is not positive.
	ErrBadShape = errors.New("covariance: dimension must be > 0")

	// ErrDimensionMismatch signals incompatible dimensions between a Spec (or an
	// operand) and the dimension the Representation was built for.
	ErrDimensionMismatch = errors.New("covariance: dimension mismatch")

	// ErrNotPositiveDefinite signals that a covariance failed Cholesky
	// factorization or carries a non-positive variance. It is a caller contract
	// violation and is never recovered from internally.
	ErrNotPositiveDefinite = errors.New("covariance: matrix is not positive definite")

	// ErrAsymmetry signals that a dense covariance is not symmetric within the
	// configured relative epsilon.
	ErrAsymmetry = errors.New("covariance: matrix is not symmetric within eps")

	// ErrNotLowerTriangular signals that a supplied Cholesky factor has non-zero
	// entries above the diagonal.
	ErrNotLowerTriangular = errors.New("covariance: cholesky factor is not lower triangular")

	// ErrUnsupportedSpec is returned for a Spec value outside the four encodings,
	// e.g. a pointer to one of them.
	ErrUnsupportedSpec = errors.New("covariance: unsupported covariance encoding")

	// ErrNaNInf signals a NaN or ±Inf entry under the strict finite-value policy.
	ErrNaNInf = errors.New("covariance: NaN or Inf encountered")
)

// DimensionError describes a shape conflict. It unwraps to ErrDimensionMismatch,
// so both errors.Is(err, ErrDimensionMismatch) and errors.As(err, &de) work.
type DimensionError struct {
	Op   string // operation that detected the conflict
	What string // offending operand, e.g. "prior mean" or "data covariance rows"
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s has dimension %d, want %d: %v", e.Op, e.What, e.Got, e.Want, ErrDimensionMismatch)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// covErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Use only when err != nil.
func covErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
