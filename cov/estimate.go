package cov

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DerivEstimate is the estimate of the GP derivative process conditioned
// on observed function values: the quantity a downstream sampler matches
// against the ODE right hand side.
type DerivEstimate struct {
	// val is the conditional derivative mean
	val *mat.VecDense
	// cov is the conditional derivative covariance
	cov *mat.SymDense
}

// NewDerivEstimate returns the derivative-process estimate for the
// function values y under bundle b: the mean is Mphi*y and the covariance
// is Kphi.
// It returns error if b is nil or the length of y does not match the
// bundle time grid.
func NewDerivEstimate(b *Bundle, y mat.Vector) (*DerivEstimate, error) {
	if b == nil {
		return nil, fmt.Errorf("invalid bundle: %v", b)
	}

	n := len(b.Tvec)
	if y == nil || y.Len() != n {
		return nil, fmt.Errorf("invalid function values: want length %d", n)
	}

	val := mat.NewVecDense(n, nil)
	val.MulVec(b.Mphi, y)

	cov := mat.NewSymDense(n, nil)
	cov.CopySym(b.Kphi)

	return &DerivEstimate{
		val: val,
		cov: cov,
	}, nil
}

// Val returns the conditional derivative mean.
func (e *DerivEstimate) Val() mat.Vector {
	val := mat.NewVecDense(e.val.Len(), nil)
	val.CopyVec(e.val)

	return val
}

// Cov returns the conditional derivative covariance.
func (e *DerivEstimate) Cov() mat.Symmetric {
	cov := mat.NewSymDense(e.cov.SymmetricDim(), nil)
	cov.CopySym(e.cov)

	return cov
}
