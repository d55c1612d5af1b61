// SPDX-License-Identifier: MIT

package cache

import (
	"strconv"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
	"github.com/katalvlaran/bayeslin/solver"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache stores *solver.Factorization values keyed by their inputs.
type Cache struct {
	mu      sync.Mutex
	entries *simplelru.LRU[uint64, *solver.Factorization]
	stats   Stats

	group singleflight.Group
	opts  options
}

// New returns an empty Cache.
func New(opts ...Option) *Cache {
	o := options{capacity: DefaultCapacity, logger: zap.NewNop()}
	for _, set := range opts {
		set(&o)
	}

	c := &Cache{opts: o}
	entries, err := simplelru.NewLRU[uint64, *solver.Factorization](o.capacity, c.evicted)
	if err != nil {
		// WithCapacity rejects sizes NewLRU would refuse.
		panic(err)
	}
	c.entries = entries

	return c
}

// Factorization returns the cached factorization for (A, Σ_prior, Σ_data),
// building it on a miss. Failed builds are not cached.
func (c *Cache) Factorization(a mat.Matrix, priorCov, dataCov covariance.Spec) (*solver.Factorization, error) {
	if covariance.IsNil(a) || covariance.IsNil(priorCov) || covariance.IsNil(dataCov) {
		return solver.Precompute(a, priorCov, dataCov, c.opts.solverOpts...)
	}

	key := keyOf(a, priorCov, dataCov)
	if f, ok := c.lookup(key); ok {
		return f, nil
	}

	v, err, shared := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		if f, ok := c.peek(key); ok {
			return f, nil
		}
		f, err := solver.Precompute(a, priorCov, dataCov, c.opts.solverOpts...)
		if err != nil {
			return nil, err
		}
		return c.store(key, f), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.opts.logger.Debug("factorization shared", zap.Uint64("key", key))
	}

	return v.(*solver.Factorization), nil
}

// Solve is solver.Solve through the cache.
func (c *Cache) Solve(a mat.Matrix, b mat.Vector, prior solver.Prior, data covariance.Spec) (solver.Posterior, error) {
	f, err := c.Factorization(a, prior.Cov, data)
	if err != nil {
		return solver.Posterior{}, err
	}

	return f.Solve(b, prior.Mean)
}

// LnLike is solver.LnLike on the Woodbury path through the cache.
func (c *Cache) LnLike(a mat.Matrix, b mat.Vector, prior solver.Prior, data covariance.Spec) (float64, error) {
	f, err := c.Factorization(a, prior.Cov, data)
	if err != nil {
		return 0, err
	}

	return f.LnLike(b, prior.Mean)
}

// Len reports the number of stored factorizations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

// Stats returns a snapshot of the hit and miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Purge drops every entry and resets the counters.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	c.stats = Stats{}
}

func (c *Cache) lookup(key uint64) (*solver.Factorization, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.entries.Get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}

	return f, ok
}

func (c *Cache) peek(key uint64) (*solver.Factorization, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Peek(key)
}

// store inserts f unless key is already present, in which case the resident
// value wins so every caller observes one factorization per key.
func (c *Cache) store(key uint64, f *solver.Factorization) *solver.Factorization {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries.Peek(key); ok {
		return old
	}
	c.entries.Add(key, f)

	return f
}

// evicted runs under c.mu, from Add and Purge.
func (c *Cache) evicted(key uint64, _ *solver.Factorization) {
	c.opts.logger.Debug("factorization evicted", zap.Uint64("key", key))
}
