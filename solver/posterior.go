// SPDX-License-Identifier: MIT
// Package solver: utilities over a computed Posterior.
//
// Draws are μ_post + L·z with z ~ N(0, I) taken from the caller's
// *rand.Rand, so a fixed seed gives a reproducible sequence.

package solver

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// Cov returns Σ_post = L·Lᵗ.
func (p Posterior) Cov() *mat.SymDense {
	var s mat.SymDense
	s.SymOuterK(1, p.CovFactor)

	return &s
}

// Draw returns one sample from the posterior.
func (p Posterior) Draw(rng *rand.Rand) (*mat.VecDense, error) {
	draws, err := p.DrawN(rng, 1)
	if err != nil {
		return nil, err
	}

	return mat.VecDenseCopyOf(draws.RowView(0)), nil
}

// DrawN returns count samples from the posterior, one per row of a count×K
// matrix.
func (p Posterior) DrawN(rng *rand.Rand, count int) (*mat.Dense, error) {
	if rng == nil {
		return nil, solverErrorf(opDraw, whatRandSource, ErrNilInput)
	}
	if count <= 0 {
		return nil, solverErrorf(opDraw, "sample count", ErrBadShape)
	}
	rep, err := p.factor(opDraw)
	if err != nil {
		return nil, err
	}

	k := rep.Dim()
	out := mat.NewDense(count, k, nil)
	z := mat.NewVecDense(k, nil)
	for s := 0; s < count; s++ {
		for i := 0; i < k; i++ {
			z.SetVec(i, rng.NormFloat64())
		}
		x, err := rep.FactorVec(z)
		if err != nil {
			return nil, solverErrorf(opDraw, whatCovFactor, err)
		}
		x.AddVec(x, p.Mean)
		out.SetRow(s, x.RawVector().Data)
	}

	return out, nil
}

// LogProb returns the posterior log density at x.
func (p Posterior) LogProb(x mat.Vector) (float64, error) {
	rep, err := p.factor(opLogProb)
	if err != nil {
		return 0, err
	}
	if covariance.IsNil(x) {
		return 0, solverErrorf(opLogProb, "point", ErrNilInput)
	}
	if err = covariance.ValidateVecLen(opLogProb, "point", x, rep.Dim()); err != nil {
		return 0, err
	}

	r := mat.NewVecDense(rep.Dim(), nil)
	r.SubVec(x, p.Mean)

	return gaussianLogDensity(opLogProb, rep, r)
}

// factor wraps CovFactor as a Cholesky-encoded covariance.
func (p Posterior) factor(op string) (*covariance.Representation, error) {
	if p.Mean == nil || p.CovFactor == nil {
		return nil, solverErrorf(op, whatCovFactor, ErrNilInput)
	}
	k := p.Mean.Len()
	if err := covariance.ValidateShape(op, whatCovFactor, p.CovFactor, k, k); err != nil {
		return nil, err
	}
	rep, err := covariance.New(covariance.Cholesky{L: p.CovFactor}, k)
	if err != nil {
		return nil, solverErrorf(op, whatCovFactor, err)
	}

	return rep, nil
}
