// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayeslin/covariance"
)

// keyOf digests A and both covariance encodings. The encoding kind is part of
// the key, so the same Σ given as Matrix and as Cholesky occupies two slots.
func keyOf(a mat.Matrix, priorCov, dataCov covariance.Spec) uint64 {
	d := xxhash.New()
	h := hasher{d: d}
	h.matrix(a)
	h.spec(priorCov)
	h.spec(dataCov)

	return d.Sum64()
}

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) u64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) f64(v float64) { h.u64(math.Float64bits(v)) }

func (h *hasher) matrix(m mat.Matrix) {
	if covariance.IsNil(m) {
		h.u64(0)
		return
	}
	r, c := m.Dims()
	h.u64(uint64(r))
	h.u64(uint64(c))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			h.f64(m.At(i, j))
		}
	}
}

func (h *hasher) spec(s covariance.Spec) {
	h.u64(uint64(s.Kind()) + 1)
	switch s := s.(type) {
	case covariance.Scalar:
		h.f64(s.Variance)
	case covariance.Vector:
		h.u64(uint64(len(s.Variances)))
		for _, v := range s.Variances {
			h.f64(v)
		}
	case covariance.Matrix:
		h.matrix(s.Cov)
	case covariance.Cholesky:
		h.matrix(s.L)
	}
}
