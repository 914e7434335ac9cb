package FAS3D

import (
	"math"
	"sync"
)

// Grid sweeps fan out over goroutines, one per partition of the x extent at
// the sweep's depth. Writes within a sweep go to distinct cells, so no
// synchronization beyond the final wait is needed; reductions merge
// per-worker partials after the wait.

// sweep runs f over every (i,j,k) of the level at dIdx.
func (fas *FASMultigrid) sweep(dIdx int, f func(i, j, k int)) {
	var (
		pm = fas.Partitions[dIdx]
		ny = fas.NyH[dIdx]
		nz = fas.NzH[dIdx]
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				for j := 0; j < ny; j++ {
					for k := 0; k < nz; k++ {
						f(i, j, k)
					}
				}
			}
		}(np)
	}
	wg.Wait()
}

// sweepSum runs f over every point and returns the sum of its results,
// combining per-worker partial sums.
func (fas *FASMultigrid) sweepSum(dIdx int, f func(i, j, k int) float64) (total float64) {
	var (
		pm       = fas.Partitions[dIdx]
		ny       = fas.NyH[dIdx]
		nz       = fas.NzH[dIdx]
		wg       = sync.WaitGroup{}
		partials = make([]float64, pm.ParallelDegree)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var sum float64
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				for j := 0; j < ny; j++ {
					for k := 0; k < nz; k++ {
						sum += f(i, j, k)
					}
				}
			}
			partials[np] = sum
		}(np)
	}
	wg.Wait()
	for _, p := range partials {
		total += p
	}
	return
}

// sweepMax runs f over every point and returns the maximum of its results,
// combining per-worker partial maxima.
func (fas *FASMultigrid) sweepMax(dIdx int, f func(i, j, k int) float64) (max float64) {
	var (
		pm       = fas.Partitions[dIdx]
		ny       = fas.NyH[dIdx]
		nz       = fas.NzH[dIdx]
		wg       = sync.WaitGroup{}
		partials = make([]float64, pm.ParallelDegree)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			pMax := math.Inf(-1)
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				for j := 0; j < ny; j++ {
					for k := 0; k < nz; k++ {
						if v := f(i, j, k); v > pMax {
							pMax = v
						}
					}
				}
			}
			partials[np] = pMax
		}(np)
	}
	wg.Wait()
	max = math.Inf(-1)
	for _, p := range partials {
		if p > max {
			max = p
		}
	}
	return
}
