// SPDX-License-Identifier: MIT

// Package covariance: the closed Spec sum type.
// This file contains ONLY the four covariance encodings and the Kind tag.
// The set is sealed by an unexported method, so every dispatch site is a
// type switch over exactly these four cases.
package covariance

import "gonum.org/v1/gonum/mat"

// Kind tags the encoding of a Spec.
type Kind int

const (
	// KindScalar is an isotropic covariance σ²·I.
	KindScalar Kind = iota

	// KindVector is a diagonal covariance diag(v).
	KindVector

	// KindMatrix is a dense symmetric positive-definite covariance.
	KindMatrix

	// KindCholesky is a covariance given by its lower Cholesky factor L.
	KindCholesky
)

// String returns the lower-case encoding name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindCholesky:
		return "cholesky"
	default:
		return "unknown"
	}
}

// Spec is one of Scalar, Vector, Matrix or Cholesky.
// The interface is sealed; callers cannot add encodings.
type Spec interface {
	// Kind reports the encoding.
	Kind() Kind

	sealed()
}

// Scalar encodes Σ = Variance·I. The dimension comes from the caller of New.
type Scalar struct {
	Variance float64
}

// Vector encodes Σ = diag(Variances).
type Vector struct {
	Variances []float64
}

// Matrix encodes a dense covariance. Cov must be square and symmetric; a
// mat.Symmetric value skips the symmetry scan.
type Matrix struct {
	Cov mat.Matrix
}

// Cholesky encodes Σ = L·Lᵗ with L lower triangular and a strictly positive
// diagonal. A mat.Triangular value of kind mat.Lower skips the triangularity scan.
type Cholesky struct {
	L mat.Matrix
}

func (Scalar) Kind() Kind   { return KindScalar }
func (Vector) Kind() Kind   { return KindVector }
func (Matrix) Kind() Kind   { return KindMatrix }
func (Cholesky) Kind() Kind { return KindCholesky }

func (Scalar) sealed()   {}
func (Vector) sealed()   {}
func (Matrix) sealed()   {}
func (Cholesky) sealed() {}
