// Package model provides ODE models of dynamical systems used to
// constrain Gaussian process trajectories: each model supplies the drift
// (the ODE right hand side) together with its partial derivatives wrt the
// system state and the system parameters. The models do not integrate
// anything; they are pure maps consumed by an inference sampler.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
)

// checkDims validates state and parameter dimensions against s.
func checkDims(s gpcov.System, x mat.Vector, theta []float64) error {
	nx, ntheta := s.Dims()

	if x == nil || x.Len() != nx {
		return fmt.Errorf("invalid state vector: must have length %d", nx)
	}

	if len(theta) != ntheta {
		return fmt.Errorf("invalid parameter vector: must have length %d", ntheta)
	}

	return nil
}
