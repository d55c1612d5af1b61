// SPDX-License-Identifier: MIT

// Package solver: functional configuration.
//   - WithEpsilon / WithValidateNaNInf are forwarded to package covariance.
//   - WithConditionWarning sets the threshold above which a factorized matrix
//     is logged as ill-conditioned.
//   - WithLogger injects a *zap.Logger; the default discards everything.
package solver

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/bayeslin/covariance"
)

const (
	// DefaultEpsilon is the relative tolerance of the structural covariance checks.
	DefaultEpsilon = covariance.DefaultEpsilon

	// DefaultConditionWarning is the condition estimate above which a
	// factorization is logged at Warn level.
	DefaultConditionWarning = 1e12

	// DefaultValidateNaNInf enables the finite-value scan of every input.
	DefaultValidateNaNInf = covariance.DefaultValidateNaNInf
)

const (
	panicEpsilonInvalid   = "solver: WithEpsilon: eps must be finite, non-negative"
	panicConditionInvalid = "solver: WithConditionWarning: threshold must be >= 1 and not NaN"
)

// Option configures a solver call.
type Option func(*Options)

// Options is the effective configuration of a call.
type Options struct {
	eps            float64
	condWarn       float64
	validateNaNInf bool
	logger         *zap.Logger
}

// WithEpsilon sets the relative tolerance used when validating dense and
// Cholesky covariance encodings. Panics when eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithConditionWarning sets the Warn threshold for condition estimates.
// +Inf disables the warning. Panics when c < 1 or NaN.
func WithConditionWarning(c float64) Option {
	if math.IsNaN(c) || c < 1 {
		panic(panicConditionInvalid)
	}

	return func(o *Options) { o.condWarn = c }
}

// WithLogger sets the logger. A nil logger restores the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithValidateNaNInf enables the finite-value scan (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-value scan. A NaN result is still
// reported as ErrNaNInf.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// Epsilon reports the effective relative tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ConditionWarning reports the effective Warn threshold.
func (o Options) ConditionWarning() float64 { return o.condWarn }

// ValidateNaNInf reports whether the finite-value scan is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Logger reports the effective logger; never nil.
func (o Options) Logger() *zap.Logger { return o.logger }

// CovarianceOptions translates the numeric policy for covariance.New.
func (o Options) CovarianceOptions() []covariance.Option {
	nanInf := covariance.WithNoValidateNaNInf()
	if o.validateNaNInf {
		nanInf = covariance.WithValidateNaNInf()
	}

	return []covariance.Option{covariance.WithEpsilon(o.eps), nanInf}
}

// NewOptions applies opts on top of the defaults (last writer wins).
func NewOptions(opts ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		condWarn:       DefaultConditionWarning,
		validateNaNInf: DefaultValidateNaNInf,
		logger:         zap.NewNop(),
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}
