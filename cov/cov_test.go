package cov

import (
	"math"
	"testing"

	"github.com/milosgajdos/matrix"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
	"github.com/milosgajdos/go-gpcov/kernel"
)

const (
	variance    = 2.0
	lengthscale = 1.5
)

func grid(n int, step float64) []float64 {
	return floats.Span(make([]float64, n), 0, float64(n-1)*step)
}

func maxAbsDiff(a, b mat.Matrix) float64 {
	r, c := a.Dims()
	max := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if d := math.Abs(a.At(i, j) - b.At(i, j)); d > max {
				max = d
			}
		}
	}

	return max
}

func diffKernels(t *testing.T) map[string]gpcov.DifferentiableKernel {
	sqe, err := kernel.NewSquaredExp(variance, lengthscale)
	assert.NoError(t, err)
	m52, err := kernel.NewMatern52(variance, lengthscale)
	assert.NoError(t, err)
	m32, err := kernel.NewMatern32(variance, lengthscale)
	assert.NoError(t, err)
	gm, err := kernel.NewGeneralMatern(variance, lengthscale, 2.0)
	assert.NoError(t, err)

	return map[string]gpcov.DifferentiableKernel{
		"sqexp":    sqe,
		"matern52": m52,
		"matern32": m32,
		"matern20": gm,
	}
}

func TestComputeInvalid(t *testing.T) {
	assert := assert.New(t)

	k, err := kernel.NewMatern52(variance, lengthscale)
	assert.NoError(err)
	tvec := grid(5, 0.5)

	b, err := Compute(nil, tvec, 1, nil)
	assert.Nil(b)
	assert.Error(err)

	b, err = Compute(k, nil, 0, nil)
	assert.Nil(b)
	assert.Error(err)

	for _, bandsize := range []int{-1, 5, 10} {
		b, err = Compute(k, tvec, bandsize, nil)
		assert.Nil(b)
		assert.Error(err)
	}

	b, err = Compute(k, tvec, 1, &Config{Complexity: 1})
	assert.Nil(b)
	assert.Error(err)

	b, err = Compute(k, tvec, 1, &Config{Complexity: 2, Jitter: -1e-6})
	assert.Nil(b)
	assert.Error(err)
}

func TestComputeCovariance(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(8, 0.5)
	n := len(tvec)
	eye, err := matrix.NewDenseValIdentity(n, 1.0)
	assert.NoError(err)

	for name, k := range diffKernels(t) {
		b, err := Compute(k, tvec, 2, nil)
		assert.NotNil(b, "kernel %s", name)
		assert.NoError(err)

		// C is symmetric with the kernel variance on the diagonal
		for i := 0; i < n; i++ {
			assert.InDelta(variance, b.C.At(i, i), 1e-9, "kernel %s", name)
			for j := 0; j < n; j++ {
				assert.Equal(b.C.At(i, j), b.C.At(j, i), "kernel %s", name)
				assert.InDelta(k.Cov(tvec[i], tvec[j]), b.C.At(i, j), 1e-12, "kernel %s", name)
			}
		}

		// (C + jitter*I)*Cinv recovers the identity
		cjit := mat.NewSymDense(n, nil)
		cjit.CopySym(b.C)
		addDiag(cjit, DefaultJitter)

		prod := &mat.Dense{}
		prod.Mul(cjit, b.Cinv)
		assert.Less(maxAbsDiff(prod, eye), 1e-6, "kernel %s", name)

		assert.GreaterOrEqual(b.Cond, 1.0, "kernel %s", name)
	}
}

func TestComputeDerivatives(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(8, 0.5)
	n := len(tvec)
	eye, err := matrix.NewDenseValIdentity(n, 1.0)
	assert.NoError(err)

	for name, k := range diffKernels(t) {
		b, err := Compute(k, tvec, 2, nil)
		assert.NotNil(b, "kernel %s", name)
		assert.NoError(err)
		assert.Empty(b.Notices, "kernel %s", name)

		for i := 0; i < n; i++ {
			// Cprime is anti-symmetric with a zero diagonal
			assert.Equal(0.0, b.Cprime.At(i, i), "kernel %s", name)
			for j := 0; j < n; j++ {
				assert.InDelta(-b.Cprime.At(j, i), b.Cprime.At(i, j), 1e-12, "kernel %s", name)
				// Cdoubleprime is symmetric
				assert.Equal(b.Cdoubleprime.At(j, i), b.Cdoubleprime.At(i, j), "kernel %s", name)
			}
		}

		// Mphi = Cprime * Cinv
		mphi := &mat.Dense{}
		mphi.Mul(b.Cprime, b.Cinv)
		assert.Less(maxAbsDiff(mphi, b.Mphi), 1e-12, "kernel %s", name)

		// Kphi = symmetrize(Cdoubleprime - Mphi*Cprime^T) + jitter*I
		res := &mat.Dense{}
		res.Mul(b.Mphi, b.Cprime.T())
		res.Sub(b.Cdoubleprime, res)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := (res.At(i, j) + res.At(j, i)) / 2
				if i == j {
					want += DefaultJitter
				}
				assert.InDelta(want, b.Kphi.At(i, j), 1e-12, "kernel %s", name)
			}
		}

		// Kphi is positive definite
		var eig mat.EigenSym
		ok := eig.Factorize(b.Kphi, false)
		assert.True(ok, "kernel %s", name)
		for _, v := range eig.Values(nil) {
			assert.Greater(v, 0.0, "kernel %s", name)
		}

		// Kphi and Kinv are mutual inverses
		prod := &mat.Dense{}
		prod.Mul(b.Kphi, b.Kinv)
		assert.Less(maxAbsDiff(prod, eye), 1e-6, "kernel %s", name)
		prod.Mul(b.Kinv, b.Kphi)
		assert.Less(maxAbsDiff(prod, eye), 1e-6, "kernel %s", name)
	}
}

func TestComputeDiagConstants(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(6, 0.7)
	l2 := lengthscale * lengthscale

	sqe, err := kernel.NewSquaredExp(variance, lengthscale)
	assert.NoError(err)
	m52, err := kernel.NewMatern52(variance, lengthscale)
	assert.NoError(err)

	for _, test := range []struct {
		kernel gpcov.Kernel
		want   float64
	}{
		{sqe, variance / l2},
		{m52, 5 * variance / (3 * l2)},
	} {
		b, err := Compute(test.kernel, tvec, 2, nil)
		assert.NotNil(b)
		assert.NoError(err)

		for i := range tvec {
			assert.InDelta(test.want, b.Cdoubleprime.At(i, i), 1e-5)
		}
	}
}

func TestComputeBanded(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(7, 0.5)
	n := len(tvec)

	k, err := kernel.NewMatern52(variance, lengthscale)
	assert.NoError(err)

	for _, bandsize := range []int{0, 1, 3, n - 1} {
		b, err := Compute(k, tvec, bandsize, nil)
		assert.NotNil(b)
		assert.NoError(err)
		assert.Equal(bandsize, b.Bandsize)

		for _, pair := range []struct {
			dense  mat.Matrix
			banded *mat.BandDense
		}{
			{b.Cinv, b.CinvBand},
			{b.Mphi, b.MphiBand},
			{b.Kinv, b.KinvBand},
		} {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i-j <= bandsize && j-i <= bandsize {
						assert.Equal(pair.dense.At(i, j), pair.banded.At(i, j), "bandsize %d entry (%d,%d)", bandsize, i, j)
						continue
					}
					assert.Equal(0.0, pair.banded.At(i, j), "bandsize %d entry (%d,%d)", bandsize, i, j)
				}
			}
		}
	}
}

func TestComputeUnsupportedKernel(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(6, 0.5)
	n := len(tvec)

	// Matern 1/2 carries no derivatives
	m12, err := kernel.NewMatern12(variance, lengthscale)
	assert.NoError(err)
	// neither does a general Matern with nu <= 1
	gm, err := kernel.NewGeneralMatern(variance, lengthscale, 0.5)
	assert.NoError(err)

	for _, k := range []gpcov.Kernel{m12, gm} {
		b, err := Compute(k, tvec, 2, nil)
		assert.NotNil(b)
		assert.NoError(err)

		// the warning is observed exactly once
		assert.Len(b.Notices, 1)
		assert.Equal(gpcov.NoticeUnsupportedDerivative, b.Notices[0].Kind)

		zero := mat.NewDense(n, n, nil)
		assert.Equal(0.0, maxAbsDiff(zero, b.Cprime))
		assert.Equal(0.0, maxAbsDiff(zero, b.Cdoubleprime))
		assert.Equal(0.0, maxAbsDiff(zero, b.Mphi))

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					assert.InDelta(DefaultJitter, b.Kphi.At(i, j), 1e-15)
					assert.InDelta(1/DefaultJitter, b.Kinv.At(i, j), 1e-6)
					continue
				}
				assert.Equal(0.0, b.Kphi.At(i, j))
				assert.Equal(0.0, b.Kinv.At(i, j))
			}
		}
	}
}

func TestComputeComplexityZero(t *testing.T) {
	assert := assert.New(t)

	tvec := grid(6, 0.5)

	// complexity 0 must reproduce the unsupported-kernel fallback for any kernel
	m12, err := kernel.NewMatern12(variance, lengthscale)
	assert.NoError(err)
	want, err := Compute(m12, tvec, 2, nil)
	assert.NotNil(want)
	assert.NoError(err)

	m52, err := kernel.NewMatern52(variance, lengthscale)
	assert.NoError(err)
	b, err := Compute(m52, tvec, 2, &Config{Complexity: 0})
	assert.NotNil(b)
	assert.NoError(err)

	// no warning on the explicit regression-only path
	assert.Empty(b.Notices)

	assert.Equal(0.0, maxAbsDiff(want.Cprime, b.Cprime))
	assert.Equal(0.0, maxAbsDiff(want.Cdoubleprime, b.Cdoubleprime))
	assert.Equal(0.0, maxAbsDiff(want.Mphi, b.Mphi))
	assert.Equal(0.0, maxAbsDiff(want.Kphi, b.Kphi))
	assert.Equal(0.0, maxAbsDiff(want.Kinv, b.Kinv))
}

func TestComputeScalar(t *testing.T) {
	assert := assert.New(t)

	k, err := kernel.NewMatern52(1.5, 0.8)
	assert.NoError(err)

	b, err := Compute(k, []float64{1.0}, 0, nil)
	assert.NotNil(b)
	assert.NoError(err)

	assert.Equal(1.5, b.C.At(0, 0))
	assert.InDelta(1/(1.5+1e-6), b.Cinv.At(0, 0), 1e-12)
	assert.Equal(b.Cinv.At(0, 0), b.CinvBand.At(0, 0))
	assert.Equal(0.0, b.Cprime.At(0, 0))
	assert.InDelta(5*1.5/(3*0.8*0.8), b.Cdoubleprime.At(0, 0), 1e-9)
}

func TestComputeEchoesInputs(t *testing.T) {
	assert := assert.New(t)

	k, err := kernel.NewGeneralMatern(variance, lengthscale, 2.5)
	assert.NoError(err)

	tvec := grid(5, 0.3)
	b, err := Compute(k, tvec, 2, nil)
	assert.NotNil(b)
	assert.NoError(err)

	assert.Equal([]float64{variance, lengthscale, 2.5}, b.Phi)
	assert.Equal(tvec, b.Tvec)

	// the bundle owns copies of its inputs
	tvec[0] = 100.0
	assert.Equal(0.0, b.Tvec[0])
}

func TestComputeDeterministic(t *testing.T) {
	assert := assert.New(t)

	k, err := kernel.NewSquaredExp(variance, lengthscale)
	assert.NoError(err)
	tvec := grid(7, 0.4)

	b1, err := Compute(k, tvec, 2, nil)
	assert.NoError(err)
	b2, err := Compute(k, tvec, 2, nil)
	assert.NoError(err)

	assert.True(mat.Equal(b1.C, b2.C))
	assert.True(mat.Equal(b1.Cinv, b2.Cinv))
	assert.True(mat.Equal(b1.Cprime, b2.Cprime))
	assert.True(mat.Equal(b1.Cdoubleprime, b2.Cdoubleprime))
	assert.True(mat.Equal(b1.Mphi, b2.Mphi))
	assert.True(mat.Equal(b1.Kphi, b2.Kphi))
	assert.True(mat.Equal(b1.Kinv, b2.Kinv))
}

// degenerate covariance function used to exercise the fatal numerical path:
// it cancels the jitter exactly, leaving a zero matrix to invert.
type degenerateKernel struct {
	jitter float64
}

func (k *degenerateKernel) Cov(s, t float64) float64 {
	if s == t {
		return -k.jitter
	}

	return 0.0
}

func (k *degenerateKernel) Hyperparameters() []float64 {
	return []float64{k.jitter}
}

func TestComputeSingular(t *testing.T) {
	assert := assert.New(t)

	k := &degenerateKernel{jitter: DefaultJitter}
	b, err := Compute(k, grid(4, 1.0), 1, &Config{Complexity: 0})
	assert.Nil(b)
	assert.Error(err)
}

func TestComputeIllConditioned(t *testing.T) {
	assert := assert.New(t)

	// nearly coincident points with a long lengthscale: C alone is
	// numerically singular but C + jitter*I must still invert
	k, err := kernel.NewSquaredExp(1.0, 10.0)
	assert.NoError(err)

	tvec := []float64{0.0, 1e-8, 2e-8, 1.0, 1.0 + 1e-8}
	b, err := Compute(k, tvec, len(tvec)-1, nil)
	assert.NotNil(b)
	assert.NoError(err)

	n := len(tvec)
	eye, err := matrix.NewDenseValIdentity(n, 1.0)
	assert.NoError(err)

	cjit := mat.NewSymDense(n, nil)
	cjit.CopySym(b.C)
	addDiag(cjit, DefaultJitter)

	prod := &mat.Dense{}
	prod.Mul(cjit, b.Cinv)
	// identity recovery degrades with conditioning but must stay bounded
	assert.Less(maxAbsDiff(prod, eye), 1e-4)
	assert.Greater(b.Cond, 1e3)
}
