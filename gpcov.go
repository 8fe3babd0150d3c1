package gpcov

import "gonum.org/v1/gonum/mat"

// Kernel is a Gaussian process covariance function
type Kernel interface {
	// Cov returns the covariance between two time points
	Cov(s, t float64) float64
	// Hyperparameters returns kernel hyperparameters
	Hyperparameters() []float64
}

// DifferentiableKernel is a kernel with analytic time derivatives
type DifferentiableKernel interface {
	// Kernel is a GP covariance function
	Kernel
	// Differentiable reports whether the derivatives exist for
	// the kernel hyperparameters
	Differentiable() bool
	// DCov returns the derivative of the covariance in its first argument
	DCov(s, t float64) float64
	// D2Cov returns the mixed second derivative of the covariance
	D2Cov(s, t float64) float64
}

// System is a model of a dynamical system driven by an ODE
type System interface {
	// Dims returns state and parameter dimensions of the system
	Dims() (nx, ntheta int)
	// Drift returns the ODE right hand side at state x, parameters theta and time t
	Drift(x mat.Vector, theta []float64, t float64) (mat.Vector, error)
	// StateJacobian returns partial derivatives of the drift wrt the state
	StateJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error)
	// ParamJacobian returns partial derivatives of the drift wrt the parameters
	ParamJacobian(x mat.Vector, theta []float64, t float64) (mat.Matrix, error)
}

// NoticeKind is a kind of computation notice
type NoticeKind int

const (
	// NoticeUnsupportedDerivative is raised when kernel derivatives are not available
	NoticeUnsupportedDerivative NoticeKind = iota
)

// Notice is a non-fatal diagnostic raised during a computation.
// Notices are returned with results instead of being logged so that
// callers can assert on them deterministically.
type Notice struct {
	// Kind is notice kind
	Kind NoticeKind
	// Msg is human readable notice message
	Msg string
}

// String implements the Stringer interface.
func (n Notice) String() string {
	return n.Msg
}
