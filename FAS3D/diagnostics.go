package FAS3D

import (
	"fmt"
	"math"
)

// MaxResidual returns max |F_eqnID(u) - coarseSrc| over the level at depth.
func (fas *FASMultigrid) MaxResidual(eqnID, depth int) float64 {
	var (
		dIdx      = fas.dIdx(depth)
		coarseSrc = fas.CoarseSrc[eqnID][dIdx]
	)
	return fas.sweepMax(dIdx, func(i, j, k int) float64 {
		return math.Abs(coarseSrc.Data[coarseSrc.Idx(i, j, k)] -
			fas.evalEqnPt(eqnID, dIdx, i, j, k))
	})
}

// MaxResidualAllEqs returns the largest per-equation max residual at depth.
func (fas *FASMultigrid) MaxResidualAllEqs(depth int) (maxForAll float64) {
	for eqnID := 0; eqnID < fas.UN; eqnID++ {
		maxForAll = math.Max(maxForAll, fas.MaxResidual(eqnID, depth))
	}
	return
}

func sign(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// SingularityExists reports whether the solution of eqnID changes sign
// anywhere relative to cell 0 at the given depth.
func (fas *FASMultigrid) SingularityExists(eqnID, depth int) bool {
	u := fas.U[eqnID][fas.dIdx(depth)]
	s0 := sign(u.Data[0])
	for i := 1; i < u.Pts; i++ {
		if sign(u.Data[i])*s0 < 0 {
			return true
		}
	}
	return false
}

func printStrip(out *Grid) {
	fmt.Printf("Values: { ")
	for i := 0; i < out.Nx; i++ {
		fmt.Printf("%.15f, ", out.Data[out.Idx(i, out.Ny/4, out.Nz/4)])
	}
	fmt.Printf("}\n")
}

// PrintSolutionStrip emits one line of the first field's solution along x at
// j = ny/4, k = nz/4 for the given depth.
func (fas *FASMultigrid) PrintSolutionStrip(depth int) {
	printStrip(fas.U[0][fas.dIdx(depth)])
}
