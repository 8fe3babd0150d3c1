package model

import (
	"gonum.org/v1/gonum/mat"

	gpcov "github.com/milosgajdos/go-gpcov"
)

var (
	hiv *HIV
	_   gpcov.System = hiv
)

// HIV is the four-state within-host infection model with target cells T,
// latently infected cells L, productively infected cells I and free virus
// V, driven by parameters (lambda, rho, beta, q, eta, delta, pi, c):
//
//	dT/dt = lambda - rho*T - beta*T*V
//	dL/dt = q*beta*T*V - eta*L
//	dI/dt = (1-q)*beta*T*V + eta*L - delta*I
//	dV/dt = pi*I - c*V
type HIV struct{}

// NewHIV creates new HIV model and returns it.
func NewHIV() *HIV {
	return &HIV{}
}

// Dims returns state and parameter dimensions of the model.
func (m *HIV) Dims() (int, int) {
	return 4, 8
}

// Drift returns the ODE right hand side at state x and parameters theta.
// It returns error if either x or theta has wrong dimension.
func (m *HIV) Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	lambda, rho, beta, q := theta[0], theta[1], theta[2], theta[3]
	eta, delta, pi, c := theta[4], theta[5], theta[6], theta[7]
	tc, l, in, v := x.AtVec(0), x.AtVec(1), x.AtVec(2), x.AtVec(3)

	return mat.NewVecDense(4, []float64{
		lambda - rho*tc - beta*tc*v,
		q*beta*tc*v - eta*l,
		(1-q)*beta*tc*v + eta*l - delta*in,
		pi*in - c*v,
	}), nil
}

// StateJacobian returns partial derivatives of the drift wrt the state.
// It returns error if either x or theta has wrong dimension.
func (m *HIV) StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	_, rho, beta, q := theta[0], theta[1], theta[2], theta[3]
	eta, delta, pi, c := theta[4], theta[5], theta[6], theta[7]
	tc, v := x.AtVec(0), x.AtVec(3)

	return mat.NewDense(4, 4, []float64{
		-rho - beta*v, 0, 0, -beta * tc,
		q * beta * v, -eta, 0, q * beta * tc,
		(1 - q) * beta * v, eta, -delta, (1 - q) * beta * tc,
		0, 0, pi, -c,
	}), nil
}

// ParamJacobian returns partial derivatives of the drift wrt the parameters.
// It returns error if either x or theta has wrong dimension.
func (m *HIV) ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error) {
	if err := checkDims(m, x, theta); err != nil {
		return nil, err
	}

	_, _, beta, q := theta[0], theta[1], theta[2], theta[3]
	tc, l, in, v := x.AtVec(0), x.AtVec(1), x.AtVec(2), x.AtVec(3)

	return mat.NewDense(4, 8, []float64{
		1, -tc, -tc * v, 0, 0, 0, 0, 0,
		0, 0, q * tc * v, beta * tc * v, -l, 0, 0, 0,
		0, 0, (1 - q) * tc * v, -beta * tc * v, l, -in, 0, 0,
		0, 0, 0, 0, 0, 0, in, -v,
	}), nil
}

// String implements the Stringer interface.
func (m *HIV) String() string {
	return "HIV"
}
