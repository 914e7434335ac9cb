package Poisson3D

import (
	"fmt"
	"math"

	"github.com/LBJ-Wade/elliptic-solver/FAS3D"
)

// Poisson solves lap(u) = rho on a periodic N^3 grid with the FAS multigrid
// solver. The equation is held in residual form lap(u) - rho = 0 with rho
// supplied through a ConstF atom.
type Poisson struct {
	N                                  int // grid extent per axis
	MaxDepth, NumCycles, MaxRelaxIters int
	Tolerance                          float64
	Case                               CaseType
	U                                  []*FAS3D.Grid
	FAS                                *FAS3D.FASMultigrid
}

type CaseType uint8

const (
	SINUSOID CaseType = iota // rho = sin(2 pi x) sin(2 pi y) sin(2 pi z), u0 = 0
	CONSTANT                 // rho = 0, u0 = 1: the solver must leave u untouched
)

var caseNames = []string{
	"Sinusoidal source",
	"Zero source, constant solution",
}

func NewPoisson(n, maxDepth, numCycles, maxRelaxIters int, tolerance float64,
	Case CaseType) (c *Poisson, err error) {
	c = &Poisson{
		N:             n,
		MaxDepth:      maxDepth,
		NumCycles:     numCycles,
		MaxRelaxIters: maxRelaxIters,
		Tolerance:     tolerance,
		Case:          Case,
		U:             []*FAS3D.Grid{FAS3D.NewGrid(n, n, n)},
	}
	c.FAS, err = FAS3D.NewFASMultigrid(c.U, []int{2}, maxDepth, maxRelaxIters, tolerance)
	if err != nil {
		return
	}

	// molecule 0: lap(u); molecule 1: -rho
	c.FAS.InitMolecule(0, 0, 1, 1.0)
	c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.Lap, UID: 0}, 0, 0)
	c.FAS.InitMolecule(0, 1, 1, -1.0)
	c.FAS.AddAtomToEqn(FAS3D.Atom{Type: FAS3D.ConstF}, 1, 0)

	h := FAS3D.HLenFrac / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				switch Case {
				case SINUSOID:
					x, y, z := float64(i)*h, float64(j)*h, float64(k)*h
					c.FAS.SetPolySrcAtPt(0, 1, i, j, k, c.Source(x, y, z))
				case CONSTANT:
					c.U[0].Set(i, j, k, 1.0)
				}
			}
		}
	}
	c.FAS.InitializeRhoHierarchy()
	return
}

// Source is the continuum right-hand side for the sinusoidal case.
func (c *Poisson) Source(x, y, z float64) float64 {
	return math.Sin(2*math.Pi*x) * math.Sin(2*math.Pi*y) * math.Sin(2*math.Pi*z)
}

// AnalyticSolution is the continuum solution of the sinusoidal case,
// -rho / (12 pi^2), defined up to an additive constant.
func (c *Poisson) AnalyticSolution(x, y, z float64) float64 {
	return -c.Source(x, y, z) / (12 * math.Pi * math.Pi)
}

func (c *Poisson) Run() (err error) {
	fmt.Printf("Poisson Equation in 3 Dimensions\n")
	fmt.Printf("Case: %s\n", caseNames[c.Case])
	fmt.Printf("Grid = %d^3, MaxDepth = %d, Cycles = %d, Tolerance = %g\n",
		c.N, c.MaxDepth, c.NumCycles, c.Tolerance)
	if err = c.FAS.VCycles(c.NumCycles); err != nil {
		return
	}
	c.FAS.PrintSolutionStrip(c.MaxDepth)
	return
}

// MaxResidual reports the finest-level max residual after (or before) a run.
func (c *Poisson) MaxResidual() float64 {
	return c.FAS.MaxResidualAllEqs(c.MaxDepth)
}
