package FAS3D

import (
	"fmt"
	"runtime"

	"github.com/LBJ-Wade/elliptic-solver/utils"
)

// RelaxScheme selects the smoother used on every level.
type RelaxScheme int

const (
	InexactNewton RelaxScheme = iota
	InexactNewtonConstrained // extension point: volume renormalization after each step
	NewtonScheme
)

// FASMultigrid solves a coupled system of nonlinear elliptic equations
// F_e(u_0..u_{N-1}) = 0 on a periodic cubic grid with a Full Approximation
// Storage V-cycle. Equations are sums of molecules; molecules are products of
// atoms; see equation.go.
type FASMultigrid struct {
	UN        int          // number of solution fields / equations
	MoleculeN []int        // molecules per equation
	Eqns      [][]Molecule // [eqn][molecule]

	RelaxScheme         RelaxScheme
	StencilOrder        int
	MaxRelaxIters       int
	RelaxationTolerance float64

	MinDepth, MaxDepth int
	TotalDepths        int
	NxH, NyH, NzH      []int // extents per depth index

	// Grid hierarchies, indexed [eqn][depth index]. The finest level of U is
	// caller-owned storage; everything else belongs to the solver.
	U         [][]*Grid // current approximation
	CoarseSrc [][]*Grid // FAS right-hand side tau
	JacRHS    [][]*Grid // -F(u), RHS of the inner linear solve
	DampingV  [][]*Grid // Newton correction v
	Tmp       [][]*Grid // scratch; holds pre-correction coarse solution on ascent

	// Rho holds the spatially varying constants read by ConstF atoms, one
	// hierarchy per (equation, molecule).
	Rho [][][]*Grid

	// jacScratch receives the next Jacobi iterate so every cell of a sweep
	// reads the previous sweep's v.
	jacScratch [][]*Grid

	ParallelDegree int
	Partitions     []*utils.PartitionMap // per depth index, over the x extent

	checked bool
}

func (fas *FASMultigrid) dIdx(depth int) int {
	return depth - fas.MinDepth
}

// NewFASMultigrid builds the level hierarchy under the caller-supplied finest
// grids, one per equation. All finest grids must share their extents. Coarse
// extents halve per level, rounding up. No allocation happens after
// construction.
func NewFASMultigrid(uFinest []*Grid, moleculeN []int, maxDepth, maxRelaxIters int,
	relaxationTolerance float64) (fas *FASMultigrid, err error) {
	var (
		uN       = len(uFinest)
		minDepth = 1
	)
	if uN == 0 {
		return nil, fmt.Errorf("no solution fields supplied")
	}
	if len(moleculeN) != uN {
		return nil, fmt.Errorf("molecule counts (%d) do not match field count (%d)", len(moleculeN), uN)
	}
	if maxDepth < minDepth {
		return nil, fmt.Errorf("max depth %d below min depth %d", maxDepth, minDepth)
	}
	for eqnID := 1; eqnID < uN; eqnID++ {
		if uFinest[eqnID].Nx != uFinest[0].Nx ||
			uFinest[eqnID].Ny != uFinest[0].Ny ||
			uFinest[eqnID].Nz != uFinest[0].Nz {
			return nil, fmt.Errorf("finest grids must share extents")
		}
	}
	fas = &FASMultigrid{
		UN:                  uN,
		MoleculeN:           moleculeN,
		RelaxScheme:         InexactNewton,
		StencilOrder:        2,
		MaxRelaxIters:       maxRelaxIters,
		RelaxationTolerance: relaxationTolerance,
		MinDepth:            minDepth,
		MaxDepth:            maxDepth,
		TotalDepths:         maxDepth - minDepth + 1,
	}
	fas.NxH = make([]int, fas.TotalDepths)
	fas.NyH = make([]int, fas.TotalDepths)
	fas.NzH = make([]int, fas.TotalDepths)
	maxIdx := fas.dIdx(maxDepth)
	fas.NxH[maxIdx] = uFinest[0].Nx
	fas.NyH[maxIdx] = uFinest[0].Ny
	fas.NzH[maxIdx] = uFinest[0].Nz
	for dIdx := maxIdx - 1; dIdx >= 0; dIdx-- {
		fas.NxH[dIdx] = (fas.NxH[dIdx+1] + 1) / 2
		fas.NyH[dIdx] = (fas.NyH[dIdx+1] + 1) / 2
		fas.NzH[dIdx] = (fas.NzH[dIdx+1] + 1) / 2
	}

	fas.U = make([][]*Grid, uN)
	fas.CoarseSrc = make([][]*Grid, uN)
	fas.JacRHS = make([][]*Grid, uN)
	fas.DampingV = make([][]*Grid, uN)
	fas.Tmp = make([][]*Grid, uN)
	fas.jacScratch = make([][]*Grid, uN)
	fas.Rho = make([][][]*Grid, uN)
	fas.Eqns = make([][]Molecule, uN)
	for eqnID := 0; eqnID < uN; eqnID++ {
		fas.U[eqnID] = make([]*Grid, fas.TotalDepths)
		fas.CoarseSrc[eqnID] = make([]*Grid, fas.TotalDepths)
		fas.JacRHS[eqnID] = make([]*Grid, fas.TotalDepths)
		fas.DampingV[eqnID] = make([]*Grid, fas.TotalDepths)
		fas.Tmp[eqnID] = make([]*Grid, fas.TotalDepths)
		fas.jacScratch[eqnID] = make([]*Grid, fas.TotalDepths)
		for dIdx := 0; dIdx < fas.TotalDepths; dIdx++ {
			nx, ny, nz := fas.NxH[dIdx], fas.NyH[dIdx], fas.NzH[dIdx]
			if dIdx == maxIdx {
				fas.U[eqnID][dIdx] = uFinest[eqnID]
			} else {
				fas.U[eqnID][dIdx] = NewGrid(nx, ny, nz)
			}
			fas.CoarseSrc[eqnID][dIdx] = NewGrid(nx, ny, nz)
			fas.JacRHS[eqnID][dIdx] = NewGrid(nx, ny, nz)
			fas.DampingV[eqnID][dIdx] = NewGrid(nx, ny, nz)
			fas.Tmp[eqnID][dIdx] = NewGrid(nx, ny, nz)
			fas.jacScratch[eqnID][dIdx] = NewGrid(nx, ny, nz)
		}
		fas.Eqns[eqnID] = make([]Molecule, moleculeN[eqnID])
		fas.Rho[eqnID] = make([][]*Grid, moleculeN[eqnID])
		for molID := 0; molID < moleculeN[eqnID]; molID++ {
			fas.Rho[eqnID][molID] = make([]*Grid, fas.TotalDepths)
			for dIdx := 0; dIdx < fas.TotalDepths; dIdx++ {
				fas.Rho[eqnID][molID][dIdx] = NewGrid(fas.NxH[dIdx], fas.NyH[dIdx], fas.NzH[dIdx])
			}
		}
	}

	fas.SetParallelDegree(0)
	return
}

// SetParallelDegree fixes the number of goroutines used for grid sweeps.
// procLimit of 0 selects NumCPU. Each level partitions its x extent, so the
// effective degree on a coarse level never exceeds its nx.
func (fas *FASMultigrid) SetParallelDegree(procLimit int) {
	if procLimit != 0 {
		fas.ParallelDegree = procLimit
	} else {
		fas.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	fas.Partitions = make([]*utils.PartitionMap, fas.TotalDepths)
	for dIdx := 0; dIdx < fas.TotalDepths; dIdx++ {
		np := fas.ParallelDegree
		if np > fas.NxH[dIdx] {
			np = fas.NxH[dIdx]
		}
		fas.Partitions[dIdx] = utils.NewPartitionMap(np, fas.NxH[dIdx])
	}
}

// InitMolecule sets the constant coefficient of molecule molID of equation
// eqnID and reserves space for its atoms.
func (fas *FASMultigrid) InitMolecule(eqnID, molID, atomN int, constCoef float64) {
	fas.Eqns[eqnID][molID].Init(atomN, constCoef)
}

// AddAtomToEqn appends an atom to molecule molID of equation eqnID.
// Expressions are fixed once the first V-cycle runs.
func (fas *FASMultigrid) AddAtomToEqn(a Atom, molID, eqnID int) {
	fas.Eqns[eqnID][molID].AddAtom(a)
}

// SetPolySrcAtPt writes one cell of the finest-level source grid backing the
// ConstF atoms of molecule molID of equation eqnID.
func (fas *FASMultigrid) SetPolySrcAtPt(eqnID, molID, i, j, k int, value float64) {
	maxIdx := fas.dIdx(fas.MaxDepth)
	rho := fas.Rho[eqnID][molID][maxIdx]
	rho.Data[rho.Idx(i, j, k)] = value
}

// InitializeRhoHierarchy restricts every source grid from the finest level to
// all coarser levels. Call once, after all source values are set and before
// running cycles.
func (fas *FASMultigrid) InitializeRhoHierarchy() {
	for eqnID := 0; eqnID < fas.UN; eqnID++ {
		for molID := 0; molID < fas.MoleculeN[eqnID]; molID++ {
			for depth := fas.MaxDepth; depth > fas.MinDepth; depth-- {
				fas.restrictFine2Coarse(fas.Rho[eqnID][molID], depth)
			}
		}
	}
}
