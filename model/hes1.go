package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	hes1    *Hes1
	hes1log *Hes1Log
	_       gpcov.System = hes1
	_       gpcov.System = hes1log
)

// Hes1 is the three-state gene-regulation oscillator with protein P,
// mRNA M and Hes1-interacting factor H driven by parameters
// (a, b, c, d, e, f, g):
//
//	dP/dt = -a*P*H + b*M - c*P
//	dM/dt = -d*M + e/(1 + P^2)
//	dH/dt = -a*P*H + f/(1 + P^2) - g*H
type Hes1 struct{}

// NewHes1 creates new Hes1 model and returns it.
func NewHes1() *Hes1 {
	return &Hes1{}
}

// Dims returns state and parameter dimensions of the model.
func (m *Hes1) Dims() (int, int) {
	return 3, 7
}

// Drift returns the ODE right hand side at state x and parameters theta.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1) Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, c, d, e, f, g := theta[0], theta[1], theta[2], theta[3], theta[4], theta[5], theta[6]
	p, mr, h := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	hill := 1 / (1 + p*p)

	return mat.NewVecDense(3, []float64{
		-a*p*h + b*mr - c*p,
		-d*mr + e*hill,
		-a*p*h + f*hill - g*h,
	}), nil
}

// StateJacobian returns partial derivatives of the drift wrt the state.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1) StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, c, d := theta[0], theta[1], theta[2], theta[3]
	e, f, g := theta[4], theta[5], theta[6]
	p, h := x.AtVec(0), x.AtVec(2)
	// derivative of the Hill term 1/(1+P^2)
	dhill := -2 * p / ((1 + p*p) * (1 + p*p))

	return mat.NewDense(3, 3, []float64{
		-a*h - c, b, -a * p,
		e * dhill, -d, 0,
		-a*h + f*dhill, 0, -a*p - g,
	}), nil
}

// ParamJacobian returns partial derivatives of the drift wrt the parameters.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1) ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	p, mr, h := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	hill := 1 / (1 + p*p)

	return mat.NewDense(3, 7, []float64{
		-p * h, mr, -p, 0, 0, 0, 0,
		0, 0, 0, -mr, hill, 0, 0,
		-p * h, 0, 0, 0, 0, hill, -h,
	}), nil
}

// String implements the Stringer interface.
func (m *Hes1) String() string {
	return "Hes1"
}

// Hes1Log is the Hes1 oscillator on the log scale, x = (log P, log M, log H),
// which keeps the constrained trajectories positive:
//
//	dx1/dt = -a*exp(x3) + b*exp(x2-x1) - c
//	dx2/dt = -d + e*exp(-x2)/(1 + exp(2*x1))
//	dx3/dt = -a*exp(x1) + f*exp(-x3)/(1 + exp(2*x1)) - g
//
// The last parameter g may be fixed to a known constant, in which case it
// drops out of the parameter vector and its Jacobian.
type Hes1Log struct {
	// fixedG is the fixed value of g, nil when g is free
	fixedG *float64
}

// NewHes1Log creates new Hes1Log model with all seven parameters free and
// returns it.
func NewHes1Log() *Hes1Log {
	return &Hes1Log{}
}

// NewHes1LogFixedG creates new Hes1Log model with the degradation rate g
// fixed to the given value and returns it. The model then exposes six
// free parameters (a, b, c, d, e, f).
func NewHes1LogFixedG(g float64) *Hes1Log {
	return &Hes1Log{fixedG: &g}
}

// Dims returns state and parameter dimensions of the model.
func (m *Hes1Log) Dims() (int, int) {
	if m.fixedG != nil {
		return 3, 6
	}

	return 3, 7
}

// params unpacks the parameter vector, substituting the fixed g if set.
func (m *Hes1Log) params(theta []float64) (a, b, c, d, e, f, g float64) {
	a, b, c, d, e, f = theta[0], theta[1], theta[2], theta[3], theta[4], theta[5]
	if m.fixedG != nil {
		return a, b, c, d, e, f, *m.fixedG
	}

	return a, b, c, d, e, f, theta[6]
}

// Drift returns the ODE right hand side at state x and parameters theta.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1Log) Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, c, d, e, f, g := m.params(theta)
	x1, x2, x3 := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	hill := 1 / (1 + math.Exp(2*x1))

	return mat.NewVecDense(3, []float64{
		-a*math.Exp(x3) + b*math.Exp(x2-x1) - c,
		-d + e*math.Exp(-x2)*hill,
		-a*math.Exp(x1) + f*math.Exp(-x3)*hill - g,
	}), nil
}

// StateJacobian returns partial derivatives of the drift wrt the state.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1Log) StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	a, b, _, _, e, f, _ := m.params(theta)
	x1, x2, x3 := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	e2x1 := math.Exp(2 * x1)
	hill := 1 / (1 + e2x1)
	// d/dx1 of the Hill term 1/(1+exp(2*x1))
	dhill := -2 * e2x1 * hill * hill

	return mat.NewDense(3, 3, []float64{
		-b * math.Exp(x2-x1), b * math.Exp(x2 - x1), -a * math.Exp(x3),
		e * math.Exp(-x2) * dhill, -e * math.Exp(-x2) * hill, 0,
		-a*math.Exp(x1) + f*math.Exp(-x3)*dhill, 0, -f * math.Exp(-x3) * hill,
	}), nil
}

// ParamJacobian returns partial derivatives of the drift wrt the free parameters.
// It returns error if either x or theta has wrong dimension.
func (m *Hes1Log) ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	x1, x2, x3 := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	hill := 1 / (1 + math.Exp(2*x1))

	_, ntheta := m.Dims()
	jac := mat.NewDense(3, ntheta, nil)

	jac.Set(0, 0, -math.Exp(x3))
	jac.Set(0, 1, math.Exp(x2-x1))
	jac.Set(0, 2, -1)
	jac.Set(1, 3, -1)
	jac.Set(1, 4, math.Exp(-x2)*hill)
	jac.Set(2, 0, -math.Exp(x1))
	jac.Set(2, 5, math.Exp(-x3)*hill)
	if m.fixedG == nil {
		jac.Set(2, 6, -1)
	}

	return jac, nil
}

// String implements the Stringer interface.
func (m *Hes1Log) String() string {
	if m.fixedG != nil {
		return "Hes1Log{FixedG}"
	}

	return "Hes1Log"
}
