package kernel

import (
	"fmt"
	"math"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	sqExp *SquaredExp
	_     gpcov.DifferentiableKernel = sqExp
)

// SquaredExp is the squared-exponential (RBF) covariance kernel
type SquaredExp struct {
	// variance is kernel variance
	variance float64
	// lengthscale is kernel lengthscale
	lengthscale float64
}

// NewSquaredExp creates new SquaredExp kernel and returns it.
// It returns error if either variance or lengthscale is not positive.
func NewSquaredExp(variance, lengthscale float64) (*SquaredExp, error) {
	if variance <= 0 || lengthscale <= 0 {
		return nil, fmt.Errorf("invalid hyperparameters: variance %v, lengthscale %v", variance, lengthscale)
	}

	return &SquaredExp{
		variance:    variance,
		lengthscale: lengthscale,
	}, nil
}

// Cov returns the covariance between time points s and t.
func (k *SquaredExp) Cov(s, t float64) float64 {
	d := s - t
	l := k.lengthscale

	return k.variance * math.Exp(-d*d/(2*l*l))
}

// DCov returns the derivative of the covariance in its first argument.
func (k *SquaredExp) DCov(s, t float64) float64 {
	d := s - t
	l := k.lengthscale

	return -k.Cov(s, t) * d / (l * l)
}

// D2Cov returns the mixed second derivative of the covariance.
// On the diagonal it equals variance/lengthscale^2.
func (k *SquaredExp) D2Cov(s, t float64) float64 {
	d := s - t
	l2 := k.lengthscale * k.lengthscale

	return k.Cov(s, t) * (1/l2 - d*d/(l2*l2))
}

// Differentiable reports whether kernel derivatives are available.
// It always returns true: the squared-exponential is smooth.
func (k *SquaredExp) Differentiable() bool {
	return true
}

// Hyperparameters returns kernel hyperparameters.
func (k *SquaredExp) Hyperparameters() []float64 {
	return []float64{k.variance, k.lengthscale}
}

// String implements the Stringer interface.
func (k *SquaredExp) String() string {
	return fmt.Sprintf("SquaredExp{Variance=%v, Lengthscale=%v}", k.variance, k.lengthscale)
}
