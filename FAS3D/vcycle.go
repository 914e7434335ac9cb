package FAS3D

import (
	"fmt"
)

func (fas *FASMultigrid) ensureChecked() error {
	if fas.checked {
		return nil
	}
	if err := fas.checkEquations(); err != nil {
		return err
	}
	fas.checked = true
	return nil
}

// VCycle runs one V-cycle: pre-smooth on the finest level, descend building
// the FAS source at every coarser level, then ascend smoothing each level
// and prolonging the coarse-grid error up, finishing with a post-smooth on
// the finest level.
func (fas *FASMultigrid) VCycle() error {
	if err := fas.ensureChecked(); err != nil {
		return err
	}

	if err := fas.relaxSolution(fas.MaxDepth, fas.MaxRelaxIters); err != nil {
		return err
	}
	fmt.Printf("  Initial max. residual on fine grid is: %g.\n",
		fas.MaxResidualAllEqs(fas.MaxDepth))

	for eqnID := 0; eqnID < fas.UN; eqnID++ {
		for depth := fas.MaxDepth; depth > fas.MinDepth; depth-- {
			fas.computeCoarseRestrictions(eqnID, depth)
		}
		fas.copyGrid(fas.U, fas.Tmp, eqnID, fas.MinDepth)
	}

	for coarseDepth := fas.MinDepth; coarseDepth < fas.MaxDepth; coarseDepth++ {
		if err := fas.relaxSolution(coarseDepth, fas.MaxRelaxIters); err != nil {
			return err
		}
		fmt.Printf("    Working on upward stroke at depth %d; residual after solving is: %g.\n",
			coarseDepth, fas.MaxResidualAllEqs(coarseDepth))

		// tmp holds the pre-correction approximation; convert to error
		for eqnID := 0; eqnID < fas.UN; eqnID++ {
			fas.changeApproximateSolutionToError(fas.Tmp[eqnID], fas.U[eqnID], coarseDepth)
		}
		// prolong the error and add; tmp on the finer level receives the
		// prior approximation there
		for eqnID := 0; eqnID < fas.UN; eqnID++ {
			fas.correctFineFromCoarseErr(fas.Tmp[eqnID], fas.U[eqnID], coarseDepth+1)
		}
	}

	if err := fas.relaxSolution(fas.MaxDepth, fas.MaxRelaxIters); err != nil {
		return err
	}
	fmt.Printf("  Final max. residual on fine grid is: %g.\n",
		fas.MaxResidualAllEqs(fas.MaxDepth))
	return nil
}

// VCycles runs numCycles V-cycles, a final 10-iteration post-smooth and the
// per-equation singularity report.
func (fas *FASMultigrid) VCycles(numCycles int) error {
	if err := fas.ensureChecked(); err != nil {
		return err
	}
	for cycle := 0; cycle < numCycles; cycle++ {
		if err := fas.VCycle(); err != nil {
			return err
		}
	}

	if err := fas.relaxSolution(fas.MaxDepth, 10); err != nil {
		return err
	}
	fmt.Printf("  Final solution residual is: %g\n",
		fas.MaxResidualAllEqs(fas.MaxDepth))

	maxIdx := fas.dIdx(fas.MaxDepth)
	for eqnID := 0; eqnID < fas.UN; eqnID++ {
		if fas.SingularityExists(eqnID, fas.MaxDepth) {
			fmt.Printf("  Warning! Solution crosses 0 at Eq. %d, solution may be singular at some points.\n", eqnID)
		} else {
			fmt.Printf("  Solution for variable %d stays positive or negative (no singularities seem to exist).\n", eqnID)
		}
		u := fas.U[eqnID][maxIdx]
		fmt.Printf("  With average / min / max value: %g / %g / %g.\n",
			u.Average(), u.Min(), u.Max())
	}
	return nil
}
