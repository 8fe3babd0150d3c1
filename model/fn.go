package model

import (
	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	fn *FitzHughNagumo
	_  gpcov.System = fn
)

// FitzHughNagumo is the two-state neuronal oscillator with membrane
// voltage V and recovery variable R driven by parameters (a, b, c):
//
//	dV/dt = c*(V - V^3/3 + R)
//	dR/dt = -(V - a + b*R)/c
type FitzHughNagumo struct{}

// NewFitzHughNagumo creates new FitzHughNagumo model and returns it.
func NewFitzHughNagumo() *FitzHughNagumo {
	return &FitzHughNagumo{}
}

// Dims returns state and parameter dimensions of the model.
func (m *FitzHughNagumo) Dims() (int, int) {
	return 2, 3
}

// Drift returns the ODE right hand side at state x and parameters theta.
// It returns error if either x or theta has wrong dimension.
func (m *FitzHughNagumo) Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, c := theta[0], theta[1], theta[2]
	v, r := x.AtVec(0), x.AtVec(1)

	return mat.NewVecDense(2, []float64{
		c * (v - v*v*v/3 + r),
		-(v - a + b*r) / c,
	}), nil
}

// StateJacobian returns partial derivatives of the drift wrt the state.
// It returns error if either x or theta has wrong dimension.
func (m *FitzHughNagumo) StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	b, c := theta[1], theta[2]
	v := x.AtVec(0)

	return mat.NewDense(2, 2, []float64{
		c * (1 - v*v), c,
		-1 / c, -b / c,
	}), nil
}

// ParamJacobian returns partial derivatives of the drift wrt the parameters.
// It returns error if either x or theta has wrong dimension.
func (m *FitzHughNagumo) ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, c := theta[0], theta[1], theta[2]
	v, r := x.AtVec(0), x.AtVec(1)

	return mat.NewDense(2, 3, []float64{
		0, 0, v - v*v*v/3 + r,
		1 / c, -r / c, (v - a + b*r) / (c * c),
	}), nil
}

// String implements the Stringer interface.
func (m *FitzHughNagumo) String() string {
	return "FitzHughNagumo"
}
