// SPDX-License-Identifier: MIT

// Package solver implements generalized Bayesian linear regression.
//
// 🚀 What:
//
//	Given a design matrix A (N×K), observations b (length N), a Gaussian prior
//	N(μ_prior, Σ_prior) over the K coefficients and Gaussian noise N(0, Σ_data)
//	over the data, the package computes
//	  - the posterior N(μ_post, Σ_post) of the coefficients (Solve), returned as
//	    μ_post and the lower Cholesky factor of Σ_post;
//	  - the marginal log-likelihood log N(b | A·μ_prior, A·Σ_prior·Aᵗ + Σ_data)
//	    (LnLike), through either a direct N×N path or a Woodbury K×K path.
//
// ✨ Why:
//
//	Every covariance may be given in any of the four covariance encodings
//	(scalar, vector, matrix, cholesky). The information form keeps all work
//	structure aware: scalar and vector noise never become N×N matrices on the
//	Solve and Woodbury paths.
//
// ⚙️ Paths:
//
//	Λ_post = Σ_prior⁻¹ + Aᵗ·Σ_data⁻¹·A          (K×K, shared by Solve and Woodbury)
//	μ_post = Λ_post⁻¹ (Σ_prior⁻¹·μ_prior + Aᵗ·Σ_data⁻¹·b)
//	Σ_post = Λ_post⁻¹
//
//	direct:   Σ_marg = (A·L_p)(A·L_p)ᵗ + Σ_data, one N×N Cholesky.
//	woodbury: rᵗΣ_marg⁻¹r = ‖L_d⁻¹(r − A·δ)‖² + ‖L_p⁻¹δ‖²,  δ = Λ_post⁻¹·Aᵗ·Σ_d⁻¹·r
//	          log|Σ_marg| = log|Σ_d| + log|Σ_p| + log|Λ_post|
//
//	The useWoodbury flag is authoritative. Prefer it when N ≫ K or when Σ_data
//	is scalar/vector; prefer the direct path when N is small.
//
// 🧮 Complexity:
//
//	Solve:    O(N·K² + K³) time, O(N·K + K²) memory for scalar/vector noise.
//	direct:   O(N²·K + N³) time, O(N²) memory.
//	woodbury: O(N·K² + K³) time, O(N·K + K²) memory.
//
// ⚠️ Errors:
//
//	ErrDimensionMismatch (as *DimensionError) is raised before any factorization.
//	ErrNotPositiveDefinite surfaces when a covariance or Λ_post fails Cholesky.
//	ErrNaNInf marks non-finite inputs and a NaN posterior mean. While the
//	NaN/Inf scan is on it also marks a non-finite Λ_post, Σ_post or Σ_marg.
//	Ill-conditioned but factorizable matrices are logged at Warn level and the
//	computation proceeds.
//
// Precompute exposes the K×K factorization so repeated Solve/LnLike calls
// with fixed A, Σ_prior and Σ_data skip refactorization.
package solver
