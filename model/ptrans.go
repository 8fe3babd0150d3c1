package model

import (
	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	ptrans *ProteinTransduction
	_      gpcov.System = ptrans
)

// ProteinTransduction is the five-state signaling cascade with signal
// protein S, its degraded form Sd, response protein R, the complex RS and
// the phosphorylated response Rpp, driven by parameters
// (k1, k2, k3, k4, vm, km):
//
//	dS/dt   = -k1*S - k2*S*R + k3*RS
//	dSd/dt  = k1*S
//	dR/dt   = -k2*S*R + k3*RS + vm*Rpp/(km + Rpp)
//	dRS/dt  = k2*S*R - k3*RS - k4*RS
//	dRpp/dt = k4*RS - vm*Rpp/(km + Rpp)
type ProteinTransduction struct{}

// NewProteinTransduction creates new ProteinTransduction model and returns it.
func NewProteinTransduction() *ProteinTransduction {
	return &ProteinTransduction{}
}

// Dims returns state and parameter dimensions of the model.
func (m *ProteinTransduction) Dims() (int, int) {
	return 5, 6
}

// Drift returns the ODE right hand side at state x and parameters theta.
// It returns error if either x or theta has wrong dimension.
func (m *ProteinTransduction) Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	k1, k2, k3, k4, vm, km := theta[0], theta[1], theta[2], theta[3], theta[4], theta[5]
	s, r, rs, rpp := x.AtVec(0), x.AtVec(2), x.AtVec(3), x.AtVec(4)
	mm := vm * rpp / (km + rpp)

	return mat.NewVecDense(5, []float64{
		-k1*s - k2*s*r + k3*rs,
		k1 * s,
		-k2*s*r + k3*rs + mm,
		k2*s*r - k3*rs - k4*rs,
		k4*rs - mm,
	}), nil
}

// StateJacobian returns partial derivatives of the drift wrt the state.
// It returns error if either x or theta has wrong dimension.
func (m *ProteinTransduction) StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	k1, k2, k3, k4, vm, km := theta[0], theta[1], theta[2], theta[3], theta[4], theta[5]
	s, r, rpp := x.AtVec(0), x.AtVec(2), x.AtVec(4)
	// derivative of the Michaelis-Menten term vm*Rpp/(km+Rpp)
	dmm := vm * km / ((km + rpp) * (km + rpp))

	return mat.NewDense(5, 5, []float64{
		-k1 - k2*r, 0, -k2 * s, k3, 0,
		k1, 0, 0, 0, 0,
		-k2 * r, 0, -k2 * s, k3, dmm,
		k2 * r, 0, k2 * s, -k3 - k4, 0,
		0, 0, 0, k4, -dmm,
	}), nil
}

// ParamJacobian returns partial derivatives of the drift wrt the parameters.
// It returns error if either x or theta has wrong dimension.
func (m *ProteinTransduction) ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	vm, km := theta[4], theta[5]
	s, r, rs, rpp := x.AtVec(0), x.AtVec(2), x.AtVec(3), x.AtVec(4)
	den := km + rpp

	return mat.NewDense(5, 6, []float64{
		-s, -s * r, rs, 0, 0, 0,
		s, 0, 0, 0, 0, 0,
		0, -s * r, rs, 0, rpp / den, -vm * rpp / (den * den),
		0, s * r, -rs, -rs, 0, 0,
		0, 0, 0, rs, -rpp / den, vm * rpp / (den * den),
	}), nil
}

// String implements the Stringer interface.
func (m *ProteinTransduction) String() string {
	return "ProteinTransduction"
}
