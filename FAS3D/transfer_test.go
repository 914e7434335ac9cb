package FAS3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferSolver(t *testing.T, n, maxDepth int) *FASMultigrid {
	u := NewGrid(n, n, n)
	fas, err := NewFASMultigrid([]*Grid{u}, []int{1}, maxDepth, 10, 1.e-8)
	require.NoError(t, err)
	return fas
}

func TestHierarchyExtents(t *testing.T) {
	fas := newTransferSolver(t, 16, 3)
	assert.Equal(t, []int{4, 8, 16}, fas.NxH)
	assert.Equal(t, []int{4, 8, 16}, fas.NyH)
	assert.Equal(t, []int{4, 8, 16}, fas.NzH)

	// odd extents round up
	fas = newTransferSolver(t, 10, 3)
	assert.Equal(t, []int{3, 5, 10}, fas.NxH)
}

func TestRestrictionConservation(t *testing.T) {
	var (
		fas     = newTransferSolver(t, 8, 2)
		fineIdx = fas.dIdx(2)
		fine    = fas.Tmp[0][fineIdx]
		coarse  = fas.Tmp[0][fineIdx-1]
	)
	for i := range fine.Data {
		fine.Data[i] = math.Sin(float64(3*i+1)) + 0.25*float64(i%7)
	}
	fas.restrictFine2Coarse(fas.Tmp[0], 2)

	// full weighting sums to one: 8 * sum(coarse) == sum(fine)
	assert.InDelta(t, fine.Total(), 8*coarse.Total(), 1.e-10*math.Max(1, math.Abs(fine.Total())))
}

func TestProlongationOfConstant(t *testing.T) {
	var (
		fas       = newTransferSolver(t, 8, 2)
		coarseIdx = fas.dIdx(1)
		coarse    = fas.Tmp[0][coarseIdx]
		fine      = fas.Tmp[0][coarseIdx+1]
	)
	for i := range coarse.Data {
		coarse.Data[i] = 3.7
	}
	fas.interpolateCoarse2Fine(fas.Tmp[0], 1)

	for i := range fine.Data {
		assert.InDelta(t, 3.7, fine.Data[i], 1.e-13)
	}
}

func TestTwoGridTransferOfSmoothField(t *testing.T) {
	var (
		n       = 16
		fas     = newTransferSolver(t, n, 2)
		fineIdx = fas.dIdx(2)
		fine    = fas.Tmp[0][fineIdx]
		h       = HLenFrac / float64(n)
		saved   = make([]float64, fine.Pts)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x, y, z := float64(i)*h, float64(j)*h, float64(k)*h
				fine.Set(i, j, k, math.Sin(2*math.Pi*x)*math.Sin(2*math.Pi*y)*math.Sin(2*math.Pi*z))
			}
		}
	}
	copy(saved, fine.Data)

	fas.restrictFine2Coarse(fas.Tmp[0], 2)
	fas.interpolateCoarse2Fine(fas.Tmp[0], 1)

	// a smooth field survives the round trip with only a small amplitude loss
	var maxDiff float64
	for i := range fine.Data {
		diff := math.Abs(fine.Data[i] - saved[i])
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	assert.Less(t, maxDiff, 0.35)
}

func TestErrorCorrectionBookkeeping(t *testing.T) {
	var (
		fas       = newTransferSolver(t, 8, 2)
		coarseIdx = fas.dIdx(1)
		fineIdx   = fas.dIdx(2)
	)
	// tmp holds the pre-correction coarse approximation, u the corrected one;
	// after conversion tmp holds the error
	for i := range fas.Tmp[0][coarseIdx].Data {
		fas.Tmp[0][coarseIdx].Data[i] = 1.0
		fas.U[0][coarseIdx].Data[i] = 1.5
	}
	fas.changeApproximateSolutionToError(fas.Tmp[0], fas.U[0], 1)
	for i := range fas.Tmp[0][coarseIdx].Data {
		assert.InDelta(t, 0.5, fas.Tmp[0][coarseIdx].Data[i], 1.e-14)
	}

	// prolong the constant error and add; the fine tmp receives the prior u
	for i := range fas.U[0][fineIdx].Data {
		fas.U[0][fineIdx].Data[i] = 2.0
	}
	fas.correctFineFromCoarseErr(fas.Tmp[0], fas.U[0], 2)
	for i := range fas.U[0][fineIdx].Data {
		assert.InDelta(t, 2.5, fas.U[0][fineIdx].Data[i], 1.e-13)
		assert.InDelta(t, 2.0, fas.Tmp[0][fineIdx].Data[i], 1.e-14)
	}
}
