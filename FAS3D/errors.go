package FAS3D

import "errors"

var (
	// ErrInnerSolveStalled means the pointwise Jacobi iteration on the Newton
	// correction stopped reducing its residual within the sweep limit. The
	// smoother at the affected depth gives up; the solve continues.
	ErrInnerSolveStalled = errors.New("inner Jacobi relaxation stalled")

	// ErrNoDampingFactor means the backtracking line search exhausted every
	// step length in (0,1] without reducing the residual norm. Fatal to the
	// solve.
	ErrNoDampingFactor = errors.New("can't find suitable damping factor")

	// ErrOutOfDomain means an evaluation left the real domain, e.g. a
	// polynomial atom with negative base and fractional exponent.
	ErrOutOfDomain = errors.New("equation evaluation left the real domain")
)
