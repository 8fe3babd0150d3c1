package kernel

import (
	"fmt"
	"math"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	matern52 *Matern52
	matern32 *Matern32
	matern12 *Matern12
	_        gpcov.DifferentiableKernel = matern52
	_        gpcov.DifferentiableKernel = matern32
	_        gpcov.Kernel               = matern12
)

// Matern52 is the Matern covariance kernel with smoothness 5/2
type Matern52 struct {
	// variance is kernel variance
	variance float64
	// lengthscale is kernel lengthscale
	lengthscale float64
	// lambda is the precomputed rate sqrt(5)/lengthscale
	lambda float64
}

// NewMatern52 creates new Matern52 kernel and returns it.
// It returns error if either variance or lengthscale is not positive.
func NewMatern52(variance, lengthscale float64) (*Matern52, error) {
	if variance <= 0 || lengthscale <= 0 {
		return nil, fmt.Errorf("invalid hyperparameters: variance %v, lengthscale %v", variance, lengthscale)
	}

	return &Matern52{
		variance:    variance,
		lengthscale: lengthscale,
		lambda:      math.Sqrt(5) / lengthscale,
	}, nil
}

// Cov returns the covariance between time points s and t.
func (k *Matern52) Cov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return k.variance * (1 + x + x*x/3) * math.Exp(-x)
}

// DCov returns the derivative of the covariance in its first argument.
func (k *Matern52) DCov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return -k.variance * k.lambda * k.lambda * (s - t) * (1 + x) * math.Exp(-x) / 3
}

// D2Cov returns the mixed second derivative of the covariance.
// On the diagonal it equals 5*variance/(3*lengthscale^2).
func (k *Matern52) D2Cov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return k.variance * k.lambda * k.lambda * (1 + x - x*x) * math.Exp(-x) / 3
}

// Differentiable reports whether kernel derivatives are available.
// It always returns true: the Matern 5/2 process is twice mean-square differentiable.
func (k *Matern52) Differentiable() bool {
	return true
}

// Hyperparameters returns kernel hyperparameters.
func (k *Matern52) Hyperparameters() []float64 {
	return []float64{k.variance, k.lengthscale}
}

// String implements the Stringer interface.
func (k *Matern52) String() string {
	return fmt.Sprintf("Matern52{Variance=%v, Lengthscale=%v}", k.variance, k.lengthscale)
}

// Matern32 is the Matern covariance kernel with smoothness 3/2
type Matern32 struct {
	// variance is kernel variance
	variance float64
	// lengthscale is kernel lengthscale
	lengthscale float64
	// lambda is the precomputed rate sqrt(3)/lengthscale
	lambda float64
}

// NewMatern32 creates new Matern32 kernel and returns it.
// It returns error if either variance or lengthscale is not positive.
func NewMatern32(variance, lengthscale float64) (*Matern32, error) {
	if variance <= 0 || lengthscale <= 0 {
		return nil, fmt.Errorf("invalid hyperparameters: variance %v, lengthscale %v", variance, lengthscale)
	}

	return &Matern32{
		variance:    variance,
		lengthscale: lengthscale,
		lambda:      math.Sqrt(3) / lengthscale,
	}, nil
}

// Cov returns the covariance between time points s and t.
func (k *Matern32) Cov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return k.variance * (1 + x) * math.Exp(-x)
}

// DCov returns the derivative of the covariance in its first argument.
func (k *Matern32) DCov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return -k.variance * k.lambda * k.lambda * (s - t) * math.Exp(-x)
}

// D2Cov returns the mixed second derivative of the covariance.
// On the diagonal it equals 3*variance/lengthscale^2.
func (k *Matern32) D2Cov(s, t float64) float64 {
	x := k.lambda * math.Abs(s-t)

	return k.variance * k.lambda * k.lambda * (1 - x) * math.Exp(-x)
}

// Differentiable reports whether kernel derivatives are available.
// It always returns true: the Matern 3/2 process is once mean-square differentiable,
// which is enough for the mixed second derivative to exist.
func (k *Matern32) Differentiable() bool {
	return true
}

// Hyperparameters returns kernel hyperparameters.
func (k *Matern32) Hyperparameters() []float64 {
	return []float64{k.variance, k.lengthscale}
}

// String implements the Stringer interface.
func (k *Matern32) String() string {
	return fmt.Sprintf("Matern32{Variance=%v, Lengthscale=%v}", k.variance, k.lengthscale)
}

// Matern12 is the Matern covariance kernel with smoothness 1/2 a.k.a.
// the exponential kernel. Its sample paths are not differentiable so it
// intentionally does not implement DifferentiableKernel.
type Matern12 struct {
	// variance is kernel variance
	variance float64
	// lengthscale is kernel lengthscale
	lengthscale float64
}

// NewMatern12 creates new Matern12 kernel and returns it.
// It returns error if either variance or lengthscale is not positive.
func NewMatern12(variance, lengthscale float64) (*Matern12, error) {
	if variance <= 0 || lengthscale <= 0 {
		return nil, fmt.Errorf("invalid hyperparameters: variance %v, lengthscale %v", variance, lengthscale)
	}

	return &Matern12{
		variance:    variance,
		lengthscale: lengthscale,
	}, nil
}

// Cov returns the covariance between time points s and t.
func (k *Matern12) Cov(s, t float64) float64 {
	return k.variance * math.Exp(-math.Abs(s-t)/k.lengthscale)
}

// Hyperparameters returns kernel hyperparameters.
func (k *Matern12) Hyperparameters() []float64 {
	return []float64{k.variance, k.lengthscale}
}

// String implements the Stringer interface.
func (k *Matern12) String() string {
	return fmt.Sprintf("Matern12{Variance=%v, Lengthscale=%v}", k.variance, k.lengthscale)
}
