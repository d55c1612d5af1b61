// SPDX-License-Identifier: MIT

// Package bayeslin is a generalized Bayesian linear regression engine: given a
// linear forward model, a Gaussian prior over its coefficients and a Gaussian
// noise model over the data, it computes the posterior over the coefficients
// and the marginal likelihood of the data.
//
// 🚀 What is bayeslin?
//
//	A small library built on gonum that brings together:
//		• Covariance encodings: scalar σ², diagonal vector, dense SPD matrix,
//		  or a pre-factored lower Cholesky factor, all behind one representation
//		• Posterior solve: mean and lower-Cholesky covariance (information form)
//		• Marginal likelihood: direct N×N path or Woodbury K×K path
//		• Posterior draws and log densities
//		• An optional cache of K×K precision factorizations for repeated calls
//
// ✨ Why choose bayeslin?
//
//   - Structure-aware: scalar and diagonal covariances are never densified
//     unless a dense result is requested
//   - Cholesky everywhere: every SPD "inversion" is factorize-once-then-solve
//   - Honest errors: non positive-definite input fails loudly, no jitter
//   - Stateless: Solve and LnLike are pure functions, safe for concurrent use
//
// Under the hood, everything is organized under four subpackages:
//
//	covariance/  the closed Spec sum type and its normalized Representation
//	solver/      Solve, LnLike (direct and Woodbury), Precompute, Posterior
//	cache/       bounded, concurrency-safe store of reusable factorizations
//	config/      YAML configuration and zap logger construction
//
// Quick example:
//
//	post, err := solver.Solve(A, b,
//		solver.Prior{Cov: covariance.Scalar{Variance: 1}},
//		covariance.Vector{Variances: sigma2})
//	ll, err := solver.LnLike(A, b, prior, data, true) // Woodbury path
//
//	go get github.com/katalvlaran/bayeslin
package bayeslin
