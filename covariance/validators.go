// SPDX-License-Identifier: MIT
// Package: covariance
//
// Purpose:
//  - Provide a single, canonical source of truth for the structural checks
//    applied to covariance encodings and to solver operands.
//  - Return plain sentinel errors (tagged with the validator name) so call
//    sites can wrap uniformly with an operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry and triangularity checks scan the strict upper triangle once.
//
// Note:
//  - Validators assume a non-nil argument unless they say otherwise; IsNil
//    also catches typed nils stored in mat interfaces.

package covariance

import (
	"fmt"
	"math"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying sentinel with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// IsNil reports whether x is nil or an interface holding a nil pointer, map,
// slice, func or chan, such as a mat.Vector set to (*mat.VecDense)(nil).
// Complexity: O(1).
func IsNil(x interface{}) bool {
	if x == nil {
		return true
	}
	switch v := reflect.ValueOf(x); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}

	return false
}

// ValidateShape checks that m is rows×cols and reports the first mismatch as a
// *DimensionError attributed to op/what.
// Complexity: O(1).
func ValidateShape(op, what string, m mat.Matrix, rows, cols int) error {
	r, c := m.Dims()
	if r != rows {
		return &DimensionError{Op: op, What: what + " rows", Got: r, Want: rows}
	}
	if c != cols {
		return &DimensionError{Op: op, What: what + " cols", Got: c, Want: cols}
	}

	return nil
}

// ValidateVecLen checks that v has length n.
// Complexity: O(1).
func ValidateVecLen(op, what string, v mat.Vector, n int) error {
	if v.Len() != n {
		return &DimensionError{Op: op, What: what, Got: v.Len(), Want: n}
	}

	return nil
}

// ValidateFinite returns ErrNaNInf if any entry of m is NaN or ±Inf.
// Complexity: O(r·c).
func ValidateFinite(m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateFiniteVec returns ErrNaNInf if any element of v is NaN or ±Inf.
// Complexity: O(n).
func ValidateFiniteVec(v mat.Vector) error {
	for i := 0; i < v.Len(); i++ {
		if x := v.AtVec(i); math.IsNaN(x) || math.IsInf(x, 0) {
			return validatorErrorf("ValidateFiniteVec", ErrNaNInf)
		}
	}

	return nil
}

// ValidateSymmetric checks |mᵢⱼ − mⱼᵢ| ≤ tol·max(|mᵢⱼ|, |mⱼᵢ|) for all i<j.
//
// The tolerance is relative so that covariances of very small or very large
// magnitude are judged alike; exact equality always passes.
// Errors: ErrDimensionMismatch (not square), ErrNaNInf (bad tol), ErrAsymmetry.
// Complexity: O(n²), Space O(1).
func ValidateSymmetric(m mat.Matrix, tol float64) error {
	r, c := m.Dims()
	if r != c {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			aij, aji := m.At(i, j), m.At(j, i)
			if aij == aji {
				continue
			}
			if math.Abs(aij-aji) > tol*math.Max(math.Abs(aij), math.Abs(aji)) {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateLowerTriangular checks that every strictly-upper entry of m is zero
// within tol·max|mₖₖ|. A mat.Triangular of kind mat.Lower passes trivially.
// Errors: ErrDimensionMismatch (not square), ErrNaNInf (bad tol), ErrNotLowerTriangular.
// Complexity: O(n²), Space O(1).
func ValidateLowerTriangular(m mat.Matrix, tol float64) error {
	r, c := m.Dims()
	if r != c {
		return validatorErrorf("ValidateLowerTriangular", ErrDimensionMismatch)
	}
	if t, ok := m.(mat.Triangular); ok {
		if _, kind := t.Triangle(); kind == mat.Lower {
			return nil
		}
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateLowerTriangular", ErrNaNInf)
	}

	var scale float64
	for k := 0; k < r; k++ {
		scale = math.Max(scale, math.Abs(m.At(k, k)))
	}
	limit := math.Abs(tol) * scale
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			if math.Abs(m.At(i, j)) > limit {
				return validatorErrorf("ValidateLowerTriangular", ErrNotLowerTriangular)
			}
		}
	}

	return nil
}
