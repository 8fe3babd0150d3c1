package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToBand returns a banded copy of m with lower bandwidth kl and upper
// bandwidth ku: entries with i-j <= kl and j-i <= ku are preserved
// bit-for-bit, everything else reads as zero. Bandwidths larger than the
// matrix dimensions are clamped, so ToBand(m, r-1, c-1) loses nothing.
// It returns error if m is nil or either bandwidth is negative.
func ToBand(m mat.Matrix, kl, ku int) (*mat.BandDense, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid matrix: %v", m)
	}

	if kl < 0 || ku < 0 {
		return nil, fmt.Errorf("invalid bandwidths: (%d, %d)", kl, ku)
	}

	r, c := m.Dims()
	if kl > r-1 {
		kl = r - 1
	}
	if ku > c-1 {
		ku = c - 1
	}

	b := mat.NewBandDense(r, c, kl, ku, nil)
	for i := 0; i < r; i++ {
		lo := i - kl
		if lo < 0 {
			lo = 0
		}
		hi := i + ku
		if hi > c-1 {
			hi = c - 1
		}
		for j := lo; j <= hi; j++ {
			b.SetBand(i, j, m.At(i, j))
		}
	}

	return b, nil
}

// Symmetrize returns (m + m^T)/2 as a symmetric matrix.
// It panics if m is nil or not square.
func Symmetrize(m mat.Matrix) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrShape)
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}

	return s
}
