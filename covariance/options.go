// SPDX-License-Identifier: MIT

// Package covariance: functional configuration of the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - No global state: the tolerance is threaded through New by the caller.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package covariance

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative tolerance used by the structural checks
	// (symmetry of a dense Σ, zero upper triangle of a supplied L).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in New.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "covariance: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the relative tolerance eps used by structural checks.
//
// A dense Σ passes the symmetry check when, for every i<j,
// |Σᵢⱼ − Σⱼᵢ| ≤ eps·max(|Σᵢⱼ|, |Σⱼᵢ|). A supplied L passes the triangularity
// check when every strictly-upper entry satisfies |Lᵢⱼ| ≤ eps·max|Lₖₖ|.
//
// Panics when eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-value scan. Non-finite entries then
// surface through factorization (ErrNotPositiveDefinite) or as ±Inf results.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// Epsilon reports the effective relative tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether the finite-value scan is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// gatherOptions applies user setters on top of the defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
