// SPDX-License-Identifier: MIT
// Package covariance: the normalized Representation and its kernels.
//
// Purpose:
//   - Turn any Spec into one immutable value that answers the questions a
//     Gaussian solver asks (Σ⁻¹v, L, log|Σ|, L⁻¹v, L·z) in the cheapest form
//     the encoding allows.
//
// Determinism & Policy:
//   - Dense and Cholesky encodings are factorized once, in New; no operation
//     refactorizes.
//   - Scalar and Vector encodings are never densified by the solving kernels;
//     only Sym / Precision / Lower materialize them on request.
//   - gonum reports ill-conditioned solves through mat.Condition; that is a
//     warning, not a failure, and is not surfaced from these kernels. Callers
//     inspect Cond() when they need a conditioning policy.

package covariance

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Operation name constants for uniform error wrapping.
const (
	opNew          = "covariance.New"
	opApplyInverse = "ApplyInverse"
	opWhiten       = "Whiten"
	opFactorVec    = "FactorVec"
	opMulFactor    = "MulFactor"
	opPrecision    = "Precision"
	opAddTo        = "AddTo"
)

// Representation is a validated, factorized covariance of dimension n.
// It is immutable after New and safe for concurrent use.
type Representation struct {
	spec  Spec
	n     int
	diag  []float64     // KindVector: private copy of the variances
	lower *mat.TriDense // KindMatrix, KindCholesky: L with Σ = L·Lᵗ
	chol  *mat.Cholesky // KindMatrix, KindCholesky: same factor, solver form
	opts  Options
}

// New validates spec as an n×n covariance and normalizes it.
//
// Implementation:
//   - Scalar:   σ² must be > 0 (finite under the NaN/Inf policy).
//   - Vector:   length n; every entry > 0; the slice is copied.
//   - Matrix:   n×n; symmetric within eps unless it is a mat.Symmetric;
//     factorized once with mat.Cholesky.
//   - Cholesky: n×n; lower triangular within eps; strictly positive diagonal;
//     installed as the factor without refactorizing.
//
// Errors:
//   - ErrNilSpec, ErrUnsupportedSpec, ErrBadShape (n ≤ 0), *DimensionError,
//     ErrNaNInf, ErrAsymmetry, ErrNotLowerTriangular, ErrNotPositiveDefinite.
//
// Complexity:
//   - O(1) scalar, O(n) vector, O(n³) matrix, O(n²) cholesky.
func New(spec Spec, n int, opts ...Option) (*Representation, error) {
	if IsNil(spec) {
		return nil, covErrorf(opNew, ErrNilSpec)
	}
	if n <= 0 {
		return nil, covErrorf(opNew, ErrBadShape)
	}

	r := &Representation{spec: spec, n: n, opts: gatherOptions(opts...)}

	var err error
	switch s := spec.(type) {
	case Scalar:
		err = r.initScalar(s)
	case Vector:
		err = r.initVector(s)
	case Matrix:
		err = r.initMatrix(s)
	case Cholesky:
		err = r.initCholesky(s)
	default:
		err = covErrorf(opNew, ErrUnsupportedSpec)
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Representation) initScalar(s Scalar) error {
	if r.opts.validateNaNInf && isNonFinite(s.Variance) {
		return covErrorf(opNew, ErrNaNInf)
	}
	if !(s.Variance > 0) {
		return covErrorf(opNew, ErrNotPositiveDefinite)
	}

	return nil
}

func (r *Representation) initVector(s Vector) error {
	if len(s.Variances) != r.n {
		return &DimensionError{Op: opNew, What: "variances", Got: len(s.Variances), Want: r.n}
	}
	r.diag = make([]float64, r.n)
	for i, v := range s.Variances {
		if r.opts.validateNaNInf && isNonFinite(v) {
			return covErrorf(opNew, ErrNaNInf)
		}
		if !(v > 0) {
			return covErrorf(opNew, ErrNotPositiveDefinite)
		}
		r.diag[i] = v
	}

	return nil
}

func (r *Representation) initMatrix(s Matrix) error {
	if IsNil(s.Cov) {
		return covErrorf(opNew, ErrNilSpec)
	}
	if err := ValidateShape(opNew, "covariance", s.Cov, r.n, r.n); err != nil {
		return err
	}
	if r.opts.validateNaNInf {
		if err := ValidateFinite(s.Cov); err != nil {
			return covErrorf(opNew, err)
		}
	}

	sym, ok := s.Cov.(mat.Symmetric)
	if !ok {
		if err := ValidateSymmetric(s.Cov, r.opts.eps); err != nil {
			return covErrorf(opNew, err)
		}
		sym = symmetrize(s.Cov)
	}

	r.chol = new(mat.Cholesky)
	if !r.chol.Factorize(sym) {
		return covErrorf(opNew, ErrNotPositiveDefinite)
	}
	r.lower = new(mat.TriDense)
	r.chol.LTo(r.lower)

	return nil
}

func (r *Representation) initCholesky(s Cholesky) error {
	if IsNil(s.L) {
		return covErrorf(opNew, ErrNilSpec)
	}
	if err := ValidateShape(opNew, "cholesky factor", s.L, r.n, r.n); err != nil {
		return err
	}
	if r.opts.validateNaNInf {
		if err := ValidateFinite(s.L); err != nil {
			return covErrorf(opNew, err)
		}
	}
	if err := ValidateLowerTriangular(s.L, r.opts.eps); err != nil {
		return covErrorf(opNew, err)
	}

	lower := mat.NewTriDense(r.n, mat.Lower, nil)
	for i := 0; i < r.n; i++ {
		for j := 0; j <= i; j++ {
			lower.SetTri(i, j, s.L.At(i, j))
		}
		// A factor with a non-positive pivot does not describe an SPD matrix.
		if !(lower.At(i, i) > 0) {
			return covErrorf(opNew, ErrNotPositiveDefinite)
		}
	}

	r.lower = lower
	r.chol = new(mat.Cholesky)
	r.chol.SetFromU(lower.TTri())

	return nil
}

// Kind reports the encoding the Representation was built from.
func (r *Representation) Kind() Kind { return r.spec.Kind() }

// Dim reports n.
func (r *Representation) Dim() int { return r.n }

// ApplyInverseVec returns Σ⁻¹v.
// Scalar/Vector: elementwise division, O(n). Dense forms: L·Lᵗ·x = v by two
// triangular solves through the stored factor, O(n²).
func (r *Representation) ApplyInverseVec(v mat.Vector) (*mat.VecDense, error) {
	if IsNil(v) {
		return nil, covErrorf(opApplyInverse, ErrNilOperand)
	}
	if err := ValidateVecLen(opApplyInverse, "vector", v, r.n); err != nil {
		return nil, err
	}

	out := mat.NewVecDense(r.n, nil)
	switch s := r.spec.(type) {
	case Scalar:
		out.ScaleVec(1/s.Variance, v)
	case Vector:
		for i, d := range r.diag {
			out.SetVec(i, v.AtVec(i)/d)
		}
	default:
		if err := r.chol.SolveVecTo(out, v); err != nil && !isCondition(err) {
			return nil, covErrorf(opApplyInverse, err)
		}
	}

	return out, nil
}

// ApplyInverse returns Σ⁻¹M for an n×c matrix M, column by column.
// Complexity: O(n·c) scalar/vector, O(n²·c) dense forms.
func (r *Representation) ApplyInverse(m mat.Matrix) (*mat.Dense, error) {
	if IsNil(m) {
		return nil, covErrorf(opApplyInverse, ErrNilOperand)
	}
	rows, cols := m.Dims()
	if rows != r.n {
		return nil, &DimensionError{Op: opApplyInverse, What: "matrix rows", Got: rows, Want: r.n}
	}

	out := mat.NewDense(rows, cols, nil)
	switch s := r.spec.(type) {
	case Scalar:
		out.Scale(1/s.Variance, m)
	case Vector:
		out.Apply(func(i, _ int, v float64) float64 { return v / r.diag[i] }, m)
	default:
		if err := r.chol.SolveTo(out, m); err != nil && !isCondition(err) {
			return nil, covErrorf(opApplyInverse, err)
		}
	}

	return out, nil
}

// Whiten returns L⁻¹v, so that vᵗΣ⁻¹v = ‖Whiten(v)‖² is computed as a sum of
// squares and never goes negative through cancellation.
// Dense forms use a single forward substitution (BLAS trsv) on the stored L.
func (r *Representation) Whiten(v mat.Vector) (*mat.VecDense, error) {
	if IsNil(v) {
		return nil, covErrorf(opWhiten, ErrNilOperand)
	}
	if err := ValidateVecLen(opWhiten, "vector", v, r.n); err != nil {
		return nil, err
	}

	x := make([]float64, r.n)
	for i := range x {
		x[i] = v.AtVec(i)
	}
	switch s := r.spec.(type) {
	case Scalar:
		floats.Scale(1/math.Sqrt(s.Variance), x)
	case Vector:
		for i, d := range r.diag {
			x[i] /= math.Sqrt(d)
		}
	default:
		blas64.Trsv(blas.NoTrans, r.lower.RawTriangular(), blas64.Vector{N: r.n, Inc: 1, Data: x})
	}

	return mat.NewVecDense(r.n, x), nil
}

// FactorVec returns L·z. With z ~ N(0, I), L·z ~ N(0, Σ).
func (r *Representation) FactorVec(z mat.Vector) (*mat.VecDense, error) {
	if IsNil(z) {
		return nil, covErrorf(opFactorVec, ErrNilOperand)
	}
	if err := ValidateVecLen(opFactorVec, "vector", z, r.n); err != nil {
		return nil, err
	}

	out := mat.NewVecDense(r.n, nil)
	switch s := r.spec.(type) {
	case Scalar:
		out.ScaleVec(math.Sqrt(s.Variance), z)
	case Vector:
		for i, d := range r.diag {
			out.SetVec(i, math.Sqrt(d)*z.AtVec(i))
		}
	default:
		out.MulVec(r.lower, z)
	}

	return out, nil
}

// MulFactor returns M·L for an r×n matrix M. It is the building block of
// M·Σ·Mᵗ = (M·L)(M·L)ᵗ, which is then formed with a symmetric rank-k update.
func (r *Representation) MulFactor(m mat.Matrix) (*mat.Dense, error) {
	if IsNil(m) {
		return nil, covErrorf(opMulFactor, ErrNilOperand)
	}
	rows, cols := m.Dims()
	if cols != r.n {
		return nil, &DimensionError{Op: opMulFactor, What: "matrix cols", Got: cols, Want: r.n}
	}

	out := mat.NewDense(rows, r.n, nil)
	switch s := r.spec.(type) {
	case Scalar:
		out.Scale(math.Sqrt(s.Variance), m)
	case Vector:
		sd := make([]float64, r.n)
		for j, d := range r.diag {
			sd[j] = math.Sqrt(d)
		}
		out.Apply(func(_, j int, v float64) float64 { return v * sd[j] }, m)
	default:
		out.Mul(m, r.lower)
	}

	return out, nil
}

// CholeskyFactor returns L with Σ = L·Lᵗ.
//
//   - Scalar:   √σ²·I, held implicitly in O(1) storage.
//   - Vector:   diag(√v) as a *mat.DiagDense.
//   - Matrix:   a copy of the factor computed once in New (*mat.TriDense).
//   - Cholesky: the supplied factor, unchanged.
func (r *Representation) CholeskyFactor() mat.Matrix {
	switch s := r.spec.(type) {
	case Scalar:
		return scaledIdentity{n: r.n, s: math.Sqrt(s.Variance)}
	case Vector:
		sd := make([]float64, r.n)
		for i, d := range r.diag {
			sd[i] = math.Sqrt(d)
		}
		return mat.NewDiagDense(r.n, sd)
	case Cholesky:
		return s.L
	default:
		return r.Lower()
	}
}

// Lower returns a freshly allocated lower-triangular L with Σ = L·Lᵗ for every
// encoding. Unlike CholeskyFactor it always densifies.
func (r *Representation) Lower() *mat.TriDense {
	out := mat.NewTriDense(r.n, mat.Lower, nil)
	switch s := r.spec.(type) {
	case Scalar:
		sd := math.Sqrt(s.Variance)
		for i := 0; i < r.n; i++ {
			out.SetTri(i, i, sd)
		}
	case Vector:
		for i, d := range r.diag {
			out.SetTri(i, i, math.Sqrt(d))
		}
	default:
		out.Copy(r.lower)
	}

	return out
}

// LogDet returns log|Σ|: n·log σ², Σ log vᵢ, or 2·Σ log Lᵢᵢ.
func (r *Representation) LogDet() float64 {
	switch s := r.spec.(type) {
	case Scalar:
		return float64(r.n) * math.Log(s.Variance)
	case Vector:
		var sum float64
		for _, d := range r.diag {
			sum += math.Log(d)
		}
		return sum
	default:
		var sum float64
		for i := 0; i < r.n; i++ {
			sum += math.Log(r.lower.At(i, i))
		}
		return 2 * sum
	}
}

// Precision returns Σ⁻¹ as a dense symmetric matrix.
// Dense forms invert through the stored factor (triangular solves).
func (r *Representation) Precision() (*mat.SymDense, error) {
	switch s := r.spec.(type) {
	case Scalar:
		return diagSym(r.n, func(int) float64 { return 1 / s.Variance }), nil
	case Vector:
		return diagSym(r.n, func(i int) float64 { return 1 / r.diag[i] }), nil
	default:
		var inv mat.SymDense
		if err := r.chol.InverseTo(&inv); err != nil && !isCondition(err) {
			return nil, covErrorf(opPrecision, err)
		}
		return &inv, nil
	}
}

// Sym returns Σ densified. For dense forms it is reconstructed as L·Lᵗ.
func (r *Representation) Sym() *mat.SymDense {
	switch s := r.spec.(type) {
	case Scalar:
		return diagSym(r.n, func(int) float64 { return s.Variance })
	case Vector:
		return diagSym(r.n, func(i int) float64 { return r.diag[i] })
	default:
		var out mat.SymDense
		out.SymOuterK(1, r.lower)
		return &out
	}
}

// AddTo performs dst += Σ. Scalar and Vector encodings touch only the diagonal.
func (r *Representation) AddTo(dst *mat.SymDense) error {
	if dst == nil {
		return covErrorf(opAddTo, ErrNilOperand)
	}
	if err := ValidateShape(opAddTo, "destination", dst, r.n, r.n); err != nil {
		return err
	}

	switch s := r.spec.(type) {
	case Scalar:
		for i := 0; i < r.n; i++ {
			dst.SetSym(i, i, dst.At(i, i)+s.Variance)
		}
	case Vector:
		for i, d := range r.diag {
			dst.SetSym(i, i, dst.At(i, i)+d)
		}
	default:
		full := r.Sym()
		for i := 0; i < r.n; i++ {
			for j := i; j < r.n; j++ {
				dst.SetSym(i, j, dst.At(i, j)+full.At(i, j))
			}
		}
	}

	return nil
}

// Cond returns a condition-number estimate of Σ: 1 for Scalar, max/min for
// Vector, and gonum's factor-based estimate for dense forms.
func (r *Representation) Cond() float64 {
	switch r.spec.(type) {
	case Scalar:
		return 1
	case Vector:
		return floats.Max(r.diag) / floats.Min(r.diag)
	default:
		return r.chol.Cond()
	}
}

// scaledIdentity is s·I of size n without storage.
type scaledIdentity struct {
	n int
	s float64
}

func (m scaledIdentity) Dims() (int, int) { return m.n, m.n }

func (m scaledIdentity) At(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(mat.ErrIndexOutOfRange)
	}
	if i == j {
		return m.s
	}
	return 0
}

func (m scaledIdentity) T() mat.Matrix { return m }

func diagSym(n int, f func(i int) float64) *mat.SymDense {
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, f(i))
	}

	return out
}

// symmetrize averages the two triangles of an already-validated square matrix.
func symmetrize(m mat.Matrix) *mat.SymDense {
	n, _ := m.Dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return out
}

func isCondition(err error) bool {
	var c mat.Condition
	return errors.As(err, &c)
}

func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
