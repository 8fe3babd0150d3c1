package kernel

import (
	"fmt"
	"math"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	maternNu *GeneralMatern
	_        gpcov.DifferentiableKernel = maternNu
)

// GeneralMatern is the Matern covariance kernel with arbitrary positive
// smoothness nu, evaluated through the modified Bessel function of the
// second kind:
//
//	k(s,t) = variance * 2^(1-nu)/Gamma(nu) * x^nu * K_nu(x),  x = sqrt(2*nu)*|s-t|/lengthscale
//
// Half-integer orders reproduce the closed-form Matern kernels.
type GeneralMatern struct {
	// variance is kernel variance
	variance float64
	// lengthscale is kernel lengthscale
	lengthscale float64
	// nu is kernel smoothness
	nu float64
	// scale is the precomputed rate sqrt(2*nu)/lengthscale
	scale float64
	// norm is the precomputed constant 2^(1-nu)/Gamma(nu)
	norm float64
}

// NewGeneralMatern creates new GeneralMatern kernel and returns it.
// It returns error if either of variance, lengthscale or nu is not positive.
func NewGeneralMatern(variance, lengthscale, nu float64) (*GeneralMatern, error) {
	if variance <= 0 || lengthscale <= 0 {
		return nil, fmt.Errorf("invalid hyperparameters: variance %v, lengthscale %v", variance, lengthscale)
	}

	if nu <= 0 {
		return nil, fmt.Errorf("invalid smoothness: %v", nu)
	}

	return &GeneralMatern{
		variance:    variance,
		lengthscale: lengthscale,
		nu:          nu,
		scale:       math.Sqrt(2*nu) / lengthscale,
		norm:        math.Pow(2, 1-nu) / math.Gamma(nu),
	}, nil
}

// Cov returns the covariance between time points s and t.
func (k *GeneralMatern) Cov(s, t float64) float64 {
	d := math.Abs(s - t)
	if d == 0 {
		return k.variance
	}
	x := k.scale * d

	return k.variance * k.norm * math.Pow(x, k.nu) * besselK(k.nu, x)
}

// DCov returns the derivative of the covariance in its first argument.
// It uses the identity d/dx [x^nu * K_nu(x)] = -x^nu * K_{nu-1}(x).
func (k *GeneralMatern) DCov(s, t float64) float64 {
	d := s - t
	if d == 0 {
		return 0
	}
	x := k.scale * math.Abs(d)
	v := k.variance * k.norm * k.scale * math.Pow(x, k.nu) * besselK(k.nu-1, x)
	if d < 0 {
		return v
	}

	return -v
}

// D2Cov returns the mixed second derivative of the covariance.
// On the diagonal it equals variance*nu/((nu-1)*lengthscale^2).
func (k *GeneralMatern) D2Cov(s, t float64) float64 {
	d := math.Abs(s - t)
	l := k.lengthscale
	if d == 0 {
		return k.variance * k.nu / ((k.nu - 1) * l * l)
	}
	x := k.scale * d

	return k.variance * k.norm * k.scale * k.scale *
		(math.Pow(x, k.nu-1)*besselK(k.nu-1, x) - math.Pow(x, k.nu)*besselK(k.nu-2, x))
}

// Differentiable reports whether kernel derivatives are available.
// The mixed second derivative only exists for nu > 1: rougher kernels fall
// back to the derivative-free covariance path.
func (k *GeneralMatern) Differentiable() bool {
	return k.nu > 1
}

// Hyperparameters returns kernel hyperparameters.
func (k *GeneralMatern) Hyperparameters() []float64 {
	return []float64{k.variance, k.lengthscale, k.nu}
}

// String implements the Stringer interface.
func (k *GeneralMatern) String() string {
	return fmt.Sprintf("GeneralMatern{Variance=%v, Lengthscale=%v, Nu=%v}", k.variance, k.lengthscale, k.nu)
}
