// SPDX-License-Identifier: MIT

package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// Prior is the Gaussian prior N(Mean, Cov) over the K coefficients.
// A nil Mean is the zero vector.
type Prior struct {
	Mean mat.Vector
	Cov  covariance.Spec
}

// Posterior is the Gaussian posterior N(Mean, CovFactor·CovFactorᵗ) over the
// K coefficients. It is built fresh per call; the solver keeps no reference.
type Posterior struct {
	// Mean is μ_post, length K.
	Mean *mat.VecDense

	// CovFactor is the lower Cholesky factor of Σ_post, K×K.
	CovFactor *mat.TriDense
}

// Dim reports K.
func (p Posterior) Dim() int {
	if p.Mean == nil {
		return 0
	}

	return p.Mean.Len()
}

// Operation tags used for wrapping.
const (
	opSolve        = "solver.Solve"
	opLnLike       = "solver.LnLike"
	opPrecompute   = "solver.Precompute"
	opFactSolve    = "Factorization.Solve"
	opFactLnLike   = "Factorization.LnLike"
	opDraw         = "Posterior.Draw"
	opLogProb      = "Posterior.LogProb"
	whatA          = "design matrix"
	whatB          = "observations"
	whatPriorMean  = "prior mean"
	whatPriorCov   = "prior covariance"
	whatDataCov    = "data covariance"
	whatPostPrec   = "posterior precision"
	whatPostCov    = "posterior covariance"
	whatMarginal   = "marginal covariance"
	whatCovFactor  = "posterior covariance factor"
	whatRandSource = "random source"
)
