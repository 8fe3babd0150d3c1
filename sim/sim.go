// Package sim generates synthetic Gaussian process data: prior sample
// paths over a time grid and noisy observations of them, the inputs an
// inference run is usually smoke-tested against.
package sim

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	gpcov "github.com/milosgajdos/go-gpcov"
	gprand "github.com/milosgajdos/go-gpcov/rand"
)

// Paths draws n sample paths of the zero-mean Gaussian process with
// kernel k over the time grid tvec and returns them stored in the columns
// of a len(tvec) x n matrix. jitter is added to the covariance diagonal
// before sampling; zero jitter is valid here since sampling does not
// invert anything. A nil rnd falls back to a time-seeded source.
// It returns error if k is nil, tvec is empty, jitter is negative or the
// covariance factorization fails.
func Paths(k gpcov.Kernel, tvec []float64, n int, jitter float64, rnd *rand.Rand) (*mat.Dense, error) {
	if k == nil {
		return nil, fmt.Errorf("invalid kernel: %v", k)
	}

	if len(tvec) == 0 {
		return nil, fmt.Errorf("empty time grid")
	}

	if jitter < 0 {
		return nil, fmt.Errorf("invalid jitter: %v", jitter)
	}

	size := len(tvec)
	cov := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			v := k.Cov(tvec[i], tvec[j])
			if i == j {
				v += jitter
			}
			cov.SetSym(i, j, v)
		}
	}

	return gprand.WithCovN(cov, n, rnd)
}

// Observe adds iid Gaussian measurement noise with standard deviation
// sigma to every entry of paths and returns the noisy copy.
// It returns error if paths is nil, sigma is not positive or the noise
// distribution fails to be created.
func Observe(paths mat.Matrix, sigma float64, src rand.Source) (*mat.Dense, error) {
	if paths == nil {
		return nil, fmt.Errorf("invalid paths: %v", paths)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("invalid noise standard deviation: %v", sigma)
	}

	r, c := paths.Dims()
	cov := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		cov.SetSym(i, i, sigma*sigma)
	}

	dist, ok := distmv.NewNormal(make([]float64, r), cov, src)
	if !ok {
		return nil, fmt.Errorf("failed to create noise distribution")
	}

	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		noise := dist.Rand(nil)
		for i := 0; i < r; i++ {
			out.Set(i, j, paths.At(i, j)+noise[i])
		}
	}

	return out, nil
}
