package Constraint3D

import (
	"fmt"
	"math"

	"github.com/LBJ-Wade/elliptic-solver/FAS3D"
)

// Constraint solves Hamiltonian-constraint-like nonlinear systems on a
// periodic N^3 grid: a single-field case lap(u) + rho u^5 = 0 with a
// compensated Gaussian source, and a coupled two-field case
// lap(u0) = u1 u0^2, lap(u1) = -u0.
type Constraint struct {
	N                                  int
	MaxDepth, NumCycles, MaxRelaxIters int
	Tolerance                          float64
	RhoAmplitude                       float64
	Case                               CaseType
	U                                  []*FAS3D.Grid
	FAS                                *FAS3D.FASMultigrid
}

type CaseType uint8

const (
	HAMILTONIAN CaseType = iota
	COUPLED
)

var caseNames = []string{
	"Hamiltonian constraint, lap(u) + rho u^5 = 0",
	"Coupled fields, lap(u0) = u1 u0^2, lap(u1) = -u0",
}

func NewConstraint(n, maxDepth, numCycles, maxRelaxIters int, tolerance float64,
	Case CaseType) (c *Constraint, err error) {
	c = &Constraint{
		N:             n,
		MaxDepth:      maxDepth,
		NumCycles:     numCycles,
		MaxRelaxIters: maxRelaxIters,
		Tolerance:     tolerance,
		RhoAmplitude:  1.e-4,
		Case:          Case,
	}
	switch Case {
	case HAMILTONIAN:
		c.U = []*FAS3D.Grid{FAS3D.NewGrid(n, n, n)}
		c.FAS, err = FAS3D.NewFASMultigrid(c.U, []int{2}, maxDepth, maxRelaxIters, tolerance)
		if err != nil {
			return
		}
		// molecule 0: lap(u); molecule 1: rho u^5
		c.FAS.InitMolecule(0, 0, 1, 1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Lap, UID: 0}, 0, 0)
		c.FAS.InitMolecule(0, 1, 2, 1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.ConstF}, 1, 0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Poly, UID: 0, Value: 5}, 1, 0)
		c.initHamiltonian()
	case COUPLED:
		c.U = []*FAS3D.Grid{FAS3D.NewGrid(n, n, n), FAS3D.NewGrid(n, n, n)}
		c.FAS, err = FAS3D.NewFASMultigrid(c.U, []int{2, 2}, maxDepth, maxRelaxIters, tolerance)
		if err != nil {
			return
		}
		// eqn 0: lap(u0) - u1 u0^2
		c.FAS.InitMolecule(0, 0, 1, 1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Lap, UID: 0}, 0, 0)
		c.FAS.InitMolecule(0, 1, 2, -1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Poly, UID: 1, Value: 1}, 1, 0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Poly, UID: 0, Value: 2}, 1, 0)
		// eqn 1: lap(u1) + u0
		c.FAS.InitMolecule(1, 0, 1, 1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Lap, UID: 1}, 0, 1)
		c.FAS.InitMolecule(1, 1, 1, 1.0)
		c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Poly, UID: 0, Value: 1}, 1, 1)
		c.initCoupled()
	}
	c.FAS.InitializeRhoHierarchy()
	return
}

// initHamiltonian seeds u = 1 and a Gaussian source centered in the box,
// compensated to zero mean so the periodic constraint admits a solution.
func (c *Constraint) initHamiltonian() {
	var (
		n     = c.N
		h     = FAS3D.HLenFrac / float64(n)
		sigma = 0.1 * FAS3D.HLenFrac
		rho   = make([]float64, n*n*n)
		total float64
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x := float64(i)*h - 0.5*FAS3D.HLenFrac
				y := float64(j)*h - 0.5*FAS3D.HLenFrac
				z := float64(k)*h - 0.5*FAS3D.HLenFrac
				r2 := x*x + y*y + z*z
				val := c.RhoAmplitude * math.Exp(-r2/(sigma*sigma))
				rho[(i*n+j)*n+k] = val
				total += val
			}
		}
	}
	mean := total / float64(n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				c.FAS.SetPolySrcAtPt(0, 1, i, j, k, rho[(i*n+j)*n+k]-mean)
				c.U[0].Set(i, j, k, 1.0)
			}
		}
	}
}

// initCoupled seeds a smooth small-amplitude guess; the exact solution of the
// coupled case is u0 = u1 = 0.
func (c *Constraint) initCoupled() {
	var (
		n = c.N
		h = FAS3D.HLenFrac / float64(n)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x, y, z := float64(i)*h, float64(j)*h, float64(k)*h
				c.U[0].Set(i, j, k, 0.1*math.Sin(2*math.Pi*x)*math.Sin(2*math.Pi*y)*math.Sin(2*math.Pi*z))
				c.U[1].Set(i, j, k, 0)
			}
		}
	}
}

func (c *Constraint) Run() (err error) {
	fmt.Printf("Nonlinear Elliptic Constraint in 3 Dimensions\n")
	fmt.Printf("Case: %s\n", caseNames[c.Case])
	fmt.Printf("Grid = %d^3, MaxDepth = %d, Cycles = %d, Tolerance = %g\n",
		c.N, c.MaxDepth, c.NumCycles, c.Tolerance)
	if err = c.FAS.VCycles(c.NumCycles); err != nil {
		return
	}
	c.FAS.PrintSolutionStrip(c.MaxDepth)
	return
}

func (c *Constraint) MaxResidual() float64 {
	return c.FAS.MaxResidualAllEqs(c.MaxDepth)
}
