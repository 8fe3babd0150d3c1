package cov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
	"github.com/milosgajdos/go-gpcov/matrix"
)

// DefaultJitter is the default diagonal stabilizer added before inversion
const DefaultJitter = 1e-6

// Config is GP covariance computation configuration
type Config struct {
	// Complexity selects whether derivative-process quantities are
	// computed: 0 computes the covariance and its inverse only, 2 adds
	// the full derivative set needed for ODE-constrained inference.
	Complexity int
	// Jitter is a small positive value added to matrix diagonals to keep
	// the factorizations positive definite. Zero selects DefaultJitter.
	Jitter float64
}

// Bundle holds the GP covariance structures consumed by a downstream
// sampler: the dense covariance over the time grid, its stabilized
// inverse, the kernel time-derivative matrices, the conditional
// derivative-process quantities and their banded compressions.
type Bundle struct {
	// Phi echoes the kernel hyperparameters
	Phi []float64
	// Tvec is the time grid the covariances are evaluated over
	Tvec []float64
	// Bandsize is the half-bandwidth used for the banded compressions
	Bandsize int
	// C is the dense covariance, C[i,j] = k(t_i, t_j)
	C *mat.SymDense
	// Cinv is the inverse of C + jitter*I
	Cinv *mat.SymDense
	// Cprime is the first time-derivative matrix, dk(t_i,t_j)/dt_i
	Cprime *mat.Dense
	// Cdoubleprime is the mixed second-derivative matrix, d2k(t_i,t_j)/dt_i dt_j
	Cdoubleprime *mat.SymDense
	// Mphi holds the derivative-process mean weights, Cprime * Cinv
	Mphi *mat.Dense
	// Kphi is the derivative-process residual covariance,
	// symmetrize(Cdoubleprime - Mphi*Cprime^T) + jitter*I
	Kphi *mat.SymDense
	// Kinv is the inverse of Kphi
	Kinv *mat.SymDense
	// CinvBand is the banded compression of Cinv
	CinvBand *mat.BandDense
	// MphiBand is the banded compression of Mphi
	MphiBand *mat.BandDense
	// KinvBand is the banded compression of Kinv
	KinvBand *mat.BandDense
	// Cond is the condition number estimate of C + jitter*I
	Cond float64
	// Notices collects the non-fatal diagnostics raised while computing
	Notices []gpcov.Notice
}

// Compute evaluates the GP covariance structures for kernel k over the
// time grid tvec and returns them in a fully populated Bundle.
// The banded compressions use bandwidths (bandsize, bandsize).
// A nil config selects Complexity 2 and DefaultJitter.
// It returns error if either of the following conditions is met:
//   - k is nil, tvec is empty or bandsize is outside [0, len(tvec)-1]
//   - config carries a negative jitter or a complexity other than 0 or 2
//   - a covariance matrix is singular even after adding jitter
//
// Kernels without usable derivatives are not an error: the derivative
// quantities degrade to the complexity-0 values and the bundle carries a
// single NoticeUnsupportedDerivative.
func Compute(k gpcov.Kernel, tvec []float64, bandsize int, c *Config) (*Bundle, error) {
	if k == nil {
		return nil, fmt.Errorf("invalid kernel: %v", k)
	}

	n := len(tvec)
	if n == 0 {
		return nil, fmt.Errorf("empty time grid")
	}

	if bandsize < 0 || bandsize > n-1 {
		return nil, fmt.Errorf("invalid bandsize: %d not in [0, %d]", bandsize, n-1)
	}

	cfg := Config{Complexity: 2, Jitter: DefaultJitter}
	if c != nil {
		cfg = *c
		if cfg.Jitter == 0 {
			cfg.Jitter = DefaultJitter
		}
	}

	if cfg.Jitter < 0 {
		return nil, fmt.Errorf("invalid jitter: %v", cfg.Jitter)
	}

	if cfg.Complexity != 0 && cfg.Complexity != 2 {
		return nil, fmt.Errorf("invalid complexity: %d", cfg.Complexity)
	}

	b := &Bundle{
		Phi:      append([]float64(nil), k.Hyperparameters()...),
		Tvec:     append([]float64(nil), tvec...),
		Bandsize: bandsize,
	}

	b.C = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.C.SetSym(i, j, k.Cov(tvec[i], tvec[j]))
		}
	}

	cjit := mat.NewSymDense(n, nil)
	cjit.CopySym(b.C)
	addDiag(cjit, cfg.Jitter)

	var err error
	b.Cinv, b.Cond, err = invert(cjit)
	if err != nil {
		return nil, fmt.Errorf("covariance inversion failed: %v", err)
	}

	b.Cprime = mat.NewDense(n, n, nil)
	b.Cdoubleprime = mat.NewSymDense(n, nil)
	b.Mphi = mat.NewDense(n, n, nil)

	dk, ok := k.(gpcov.DifferentiableKernel)
	if ok && !dk.Differentiable() {
		ok = false
	}

	switch {
	case cfg.Complexity == 0:
		b.Kphi = scaledEye(n, cfg.Jitter)
		b.Kinv = scaledEye(n, 1/cfg.Jitter)
	case !ok:
		b.Notices = append(b.Notices, gpcov.Notice{
			Kind: gpcov.NoticeUnsupportedDerivative,
			Msg:  fmt.Sprintf("kernel %v has no usable derivatives: derivative quantities degraded to zero", k),
		})
		b.Kphi = scaledEye(n, cfg.Jitter)
		b.Kinv = scaledEye(n, 1/cfg.Jitter)
	default:
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				b.Cprime.Set(i, j, dk.DCov(tvec[i], tvec[j]))
			}
			for j := i; j < n; j++ {
				b.Cdoubleprime.SetSym(i, j, dk.D2Cov(tvec[i], tvec[j]))
			}
		}

		b.Mphi.Mul(b.Cprime, b.Cinv)

		res := &mat.Dense{}
		res.Mul(b.Mphi, b.Cprime.T())
		res.Sub(b.Cdoubleprime, res)

		b.Kphi = matrix.Symmetrize(res)
		addDiag(b.Kphi, cfg.Jitter)

		b.Kinv, _, err = invert(b.Kphi)
		if err != nil {
			return nil, fmt.Errorf("derivative covariance inversion failed: %v", err)
		}
	}

	if b.CinvBand, err = matrix.ToBand(b.Cinv, bandsize, bandsize); err != nil {
		return nil, err
	}
	if b.MphiBand, err = matrix.ToBand(b.Mphi, bandsize, bandsize); err != nil {
		return nil, err
	}
	if b.KinvBand, err = matrix.ToBand(b.Kinv, bandsize, bandsize); err != nil {
		return nil, err
	}

	return b, nil
}

// invert returns the inverse of the symmetric matrix a together with an
// estimate of its condition number. It factorizes with Cholesky first and
// falls back to LU with partial pivoting when a is not numerically
// positive definite. Singular input is a hard error: the jitter is owned
// by the caller and is never escalated here.
func invert(a *mat.SymDense) (*mat.SymDense, float64, error) {
	n := a.SymmetricDim()
	inv := mat.NewSymDense(n, nil)

	var chol mat.Cholesky
	if chol.Factorize(a) {
		if err := chol.InverseTo(inv); err == nil {
			return inv, chol.Cond(), nil
		}
	}

	d := mat.NewDense(n, n, nil)
	cond := 0.0
	if err := d.Inverse(a); err != nil {
		c, ok := err.(mat.Condition)
		if !ok || math.IsInf(float64(c), 0) {
			return nil, 0, fmt.Errorf("matrix is singular: %v", err)
		}
		cond = float64(c)
	}
	if cond == 0 {
		cond = mat.Cond(a, 1)
	}

	// the true inverse is symmetric; the LU inverse only up to roundoff
	return matrix.Symmetrize(d), cond, nil
}

// addDiag adds v to every diagonal entry of s.
func addDiag(s *mat.SymDense, v float64) {
	n := s.SymmetricDim()
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)+v)
	}
}

// scaledEye returns v times the identity matrix of order n.
func scaledEye(n int, v float64) *mat.SymDense {
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		s.SetSym(i, i, v)
	}

	return s
}
