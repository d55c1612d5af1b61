// SPDX-License-Identifier: MIT

package cache

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/bayeslin/solver"
)

// DefaultCapacity is the number of factorizations kept when WithCapacity is
// not given.
const DefaultCapacity = 64

const panicCapacityInvalid = "cache: WithCapacity: capacity must be >= 1"

// Option configures a Cache.
type Option func(*options)

type options struct {
	capacity   int
	logger     *zap.Logger
	solverOpts []solver.Option
}

// WithCapacity bounds the number of stored factorizations. Panics when n < 1.
func WithCapacity(n int) Option {
	if n < 1 {
		panic(panicCapacityInvalid)
	}

	return func(o *options) { o.capacity = n }
}

// WithLogger sets the cache logger. A nil logger restores the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithSolverOptions sets the options every cached factorization is built with.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *options) { o.solverOpts = append([]solver.Option(nil), opts...) }
}
