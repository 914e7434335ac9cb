package FAS3D

import (
	"sync"
)

// restrictFine2Coarse restricts one hierarchy level with the 27-point
// full-weighting kernel: 1/8 center, 1/16 faces, 1/32 edges, 1/64 corners,
// all indices wrapping periodically.
func (fas *FASMultigrid) restrictFine2Coarse(h []*Grid, fineDepth int) {
	var (
		fineIdx   = fas.dIdx(fineDepth)
		coarseIdx = fineIdx - 1
		fine      = h[fineIdx]
		coarse    = h[coarseIdx]
	)
	fas.sweep(coarseIdx, func(i, j, k int) {
		fi, fj, fk := 2*i, 2*j, 2*k
		coarse.Data[coarse.Idx(i, j, k)] =
			0.125*fine.Get(fi, fj, fk) +
				0.0625*(fine.Get(fi+1, fj, fk)+fine.Get(fi-1, fj, fk)+
					fine.Get(fi, fj+1, fk)+fine.Get(fi, fj-1, fk)+
					fine.Get(fi, fj, fk+1)+fine.Get(fi, fj, fk-1)) +
				0.03125*(fine.Get(fi+1, fj+1, fk)+fine.Get(fi+1, fj-1, fk)+
					fine.Get(fi-1, fj+1, fk)+fine.Get(fi-1, fj-1, fk)+
					fine.Get(fi+1, fj, fk+1)+fine.Get(fi+1, fj, fk-1)+
					fine.Get(fi-1, fj, fk+1)+fine.Get(fi-1, fj, fk-1)+
					fine.Get(fi, fj+1, fk+1)+fine.Get(fi, fj+1, fk-1)+
					fine.Get(fi, fj-1, fk+1)+fine.Get(fi, fj-1, fk-1)) +
				0.015625*(fine.Get(fi+1, fj+1, fk+1)+fine.Get(fi+1, fj+1, fk-1)+
					fine.Get(fi+1, fj-1, fk+1)+fine.Get(fi+1, fj-1, fk-1)+
					fine.Get(fi-1, fj+1, fk+1)+fine.Get(fi-1, fj+1, fk-1)+
					fine.Get(fi-1, fj-1, fk+1)+fine.Get(fi-1, fj-1, fk-1))
	})
}

// interpolateCoarse2Fine prolongs one hierarchy level with trilinear
// interpolation, written as accumulation: each coarse cell adds
// C / 2^(|di|+|dj|+|dk|) into the fine cells of its 3x3x3 neighborhood whose
// location under the actual fine extents coincides with the location under
// doubled coarse extents. The fine grid is zeroed first. Workers sweep
// disjoint slabs of coarse i in two parity passes so no two goroutines
// accumulate into the same fine cell.
func (fas *FASMultigrid) interpolateCoarse2Fine(h []*Grid, coarseDepth int) {
	var (
		coarseIdx = fas.dIdx(coarseDepth)
		fineIdx   = coarseIdx + 1
		coarse    = h[coarseIdx]
		fine      = h[fineIdx]
		ncx       = coarse.Nx
		ncy       = coarse.Ny
		ncz       = coarse.Nz
		pm        = fas.Partitions[coarseIdx]
	)
	fine.Zero()
	// The parity coloring keeps workers off each other's fine cells only when
	// the fine x extent doubles the coarse one and the coarse extent is even;
	// otherwise the wrap seam aliases across colors and the sweep runs serial.
	parallel := ncx%2 == 0 && fine.Nx == 2*ncx
	for parity := 0; parity < 2; parity++ {
		np0 := pm.ParallelDegree
		if !parallel {
			np0 = 1
		}
		wg := sync.WaitGroup{}
		for np := 0; np < np0; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				iMin, iMax := pm.GetBucketRange(np)
				if !parallel {
					iMin, iMax = 0, ncx
				}
				for i := iMin; i < iMax; i++ {
					if i%2 != parity {
						continue
					}
					for j := 0; j < ncy; j++ {
						for k := 0; k < ncz; k++ {
							var (
								fi, fj, fk = 2 * i, 2 * j, 2 * k
								cVal       = coarse.Data[coarse.Idx(i, j, k)]
							)
							for di := -1; di <= 1; di++ {
								for dj := -1; dj <= 1; dj++ {
									for dk := -1; dk <= 1; dk++ {
										fineLoc := fine.Idx(fi+di, fj+dj, fk+dk)
										doubledLoc := (wrap(fi+di, 2*ncx)*(2*ncy)+
											wrap(fj+dj, 2*ncy))*(2*ncz) + wrap(fk+dk, 2*ncz)
										if di == 0 && dj == 0 && dk == 0 {
											fine.Data[fineLoc] += cVal
										} else if fineLoc == doubledLoc {
											div := float64(int(1) << uint(abs(di)+abs(dj)+abs(dk)))
											fine.Data[fineLoc] += cVal / div
										}
									}
								}
							}
						}
					}
				}
			}(np)
		}
		wg.Wait()
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// evaluateEllipticEquation fills the level of resultH at depth with
// F_eqnID(u).
func (fas *FASMultigrid) evaluateEllipticEquation(resultH []*Grid, eqnID, depth int) {
	var (
		dIdx   = fas.dIdx(depth)
		result = resultH[dIdx]
	)
	fas.sweep(dIdx, func(i, j, k int) {
		result.Data[result.Idx(i, j, k)] = fas.evalEqnPt(eqnID, dIdx, i, j, k)
	})
}

// computeResidual fills the level of residualH at depth with
// coarseSrc - F_eqnID(u).
func (fas *FASMultigrid) computeResidual(residualH []*Grid, eqnID, depth int) {
	var (
		dIdx      = fas.dIdx(depth)
		coarseSrc = fas.CoarseSrc[eqnID][dIdx]
		residual  = residualH[dIdx]
	)
	fas.evaluateEllipticEquation(residualH, eqnID, depth)
	fas.sweep(dIdx, func(i, j, k int) {
		idx := residual.Idx(i, j, k)
		residual.Data[idx] = coarseSrc.Data[idx] - residual.Data[idx]
	})
}

// computeCoarseRestrictions builds the FAS source one level below fineDepth:
// restrict u, restrict the fine residual, evaluate the operator on the
// restricted u, and sum the two on the coarse level.
func (fas *FASMultigrid) computeCoarseRestrictions(eqnID, fineDepth int) {
	fas.restrictFine2Coarse(fas.U[eqnID], fineDepth)

	fas.computeResidual(fas.Tmp[eqnID], eqnID, fineDepth)
	fas.restrictFine2Coarse(fas.Tmp[eqnID], fineDepth)

	fas.evaluateEllipticEquation(fas.CoarseSrc[eqnID], eqnID, fineDepth-1)

	var (
		coarseIdx = fas.dIdx(fineDepth - 1)
		coarseSrc = fas.CoarseSrc[eqnID][coarseIdx]
		tmp       = fas.Tmp[eqnID][coarseIdx]
	)
	fas.sweep(coarseIdx, func(i, j, k int) {
		idx := coarseSrc.Idx(i, j, k)
		coarseSrc.Data[idx] += tmp.Data[idx]
	})
}

// changeApproximateSolutionToError replaces the pre-correction approximation
// in appxToErrH with the coarse-grid error exactSoln - appx.
func (fas *FASMultigrid) changeApproximateSolutionToError(appxToErrH, exactSolnH []*Grid, depth int) {
	var (
		dIdx      = fas.dIdx(depth)
		appxToErr = appxToErrH[dIdx]
		exactSoln = exactSolnH[dIdx]
	)
	fas.sweep(dIdx, func(i, j, k int) {
		idx := appxToErr.Idx(i, j, k)
		appxToErr.Data[idx] = exactSoln.Data[idx] - appxToErr.Data[idx]
	})
}

// correctFineFromCoarseErr prolongs the coarse-grid error in err2appxH up to
// fineDepth and adds it to the solution there; the fine level of err2appxH
// receives the pre-correction solution.
func (fas *FASMultigrid) correctFineFromCoarseErr(err2appxH, appxSolnH []*Grid, fineDepth int) {
	fas.interpolateCoarse2Fine(err2appxH, fineDepth-1)

	var (
		fineIdx  = fas.dIdx(fineDepth)
		err2appx = err2appxH[fineIdx]
		appxSoln = appxSolnH[fineIdx]
	)
	fas.sweep(fineIdx, func(i, j, k int) {
		idx := appxSoln.Idx(i, j, k)
		appxVal := appxSoln.Data[idx]
		appxSoln.Data[idx] += err2appx.Data[idx]
		err2appx.Data[idx] = appxVal
	})
}

// copyGrid copies one level of one equation between hierarchy sets.
func (fas *FASMultigrid) copyGrid(fromH, toH [][]*Grid, eqnID, depth int) {
	dIdx := fas.dIdx(depth)
	toH[eqnID][dIdx].CopyFrom(fromH[eqnID][dIdx])
}
