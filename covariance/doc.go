// SPDX-License-Identifier: MIT

// Package covariance normalizes the four accepted encodings of a symmetric
// positive-definite covariance into the operations a Gaussian linear solver
// actually needs.
//
// What
//
//   - Spec is a closed sum type over Scalar (σ²·I), Vector (diag(v)),
//     Matrix (dense SPD Σ) and Cholesky (lower L with Σ = L·Lᵗ).
//   - New validates a Spec against a dimension n and returns a Representation
//     exposing, for every encoding:
//   - ApplyInverseVec / ApplyInverse: Σ⁻¹v and Σ⁻¹M
//   - CholeskyFactor / Lower:         L with Σ = L·Lᵗ
//   - LogDet:                         log|Σ|
//   - Whiten:                         L⁻¹v (so vᵗΣ⁻¹v = ‖L⁻¹v‖²)
//   - FactorVec / MulFactor:          L·z and M·L
//   - Precision / Sym / AddTo:        Σ⁻¹, Σ, dst += Σ
//
// Why
//
//	Scalar and diagonal covariances are kept in O(1) / O(n) storage and all
//	operations on them are elementwise. Dense and Cholesky encodings are
//	factorized exactly once at construction; every later operation is a pair
//	of triangular solves or a triangular product.
//
// Errors
//
//   - ErrNotPositiveDefinite – Cholesky failed, or a variance / diagonal entry
//     of L is not strictly positive.
//   - ErrDimensionMismatch   – carried by *DimensionError (errors.As for detail).
//   - ErrAsymmetry, ErrNotLowerTriangular, ErrNaNInf, ErrNilSpec, ErrBadShape.
//
// Complexity (n = dimension)
//
//   - New:    O(1) scalar, O(n) vector, O(n³) matrix, O(n²) cholesky
//   - Solves: O(n) scalar/vector, O(n²) per vector for dense encodings
//
// A Representation is immutable after New and safe for concurrent readers.
package covariance
