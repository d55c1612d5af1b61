// SPDX-License-Identifier: MIT

// Package cache keeps posterior-precision factorizations across calls.
//
// A caller that evaluates many observation vectors against the same design
// matrix and covariances (for example while sweeping a nuisance parameter of
// the data, not of A) pays the K×K factorization once. Entries are keyed by
// an xxhash64 digest of A, the prior covariance encoding and the data
// covariance encoding; concurrent misses on one key are collapsed with
// singleflight so the factorization runs once.
//
// Eviction drops the least recently used entry at a fixed capacity; a hit
// counts as a use. A Cache is safe for
// concurrent use; the cached *solver.Factorization values are immutable.
package cache
