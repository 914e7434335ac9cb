package FAS3D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridIndexing(t *testing.T) {
	g := NewGrid(4, 3, 2)
	assert.Equal(t, 24, g.Pts)
	assert.Equal(t, 24, len(g.Data))

	// periodic wrap on all axes, both directions
	assert.Equal(t, g.Idx(0, 0, 0), g.Idx(4, 0, 0))
	assert.Equal(t, g.Idx(3, 0, 0), g.Idx(-1, 0, 0))
	assert.Equal(t, g.Idx(0, 2, 0), g.Idx(0, -1, 0))
	assert.Equal(t, g.Idx(0, 0, 1), g.Idx(0, 0, -1))
	assert.Equal(t, g.Idx(1, 1, 1), g.Idx(5, 4, 3))

	g.Set(3, 2, 1, 7)
	assert.Equal(t, 7.0, g.Get(-1, -1, -1))
}

func TestGridReductions(t *testing.T) {
	g := NewGrid(2, 2, 2)
	for i := range g.Data {
		g.Data[i] = float64(i)
	}
	assert.Equal(t, 28.0, g.Total())
	assert.Equal(t, 3.5, g.Average())
	assert.Equal(t, 7.0, g.Max())
	assert.Equal(t, 0.0, g.Min())

	g.Shift(2)
	assert.Equal(t, 44.0, g.Total())
	assert.Equal(t, 9.0, g.Max())
	assert.Equal(t, 2.0, g.Min())

	g.Zero()
	assert.Equal(t, 0.0, g.Total())
}

func TestGridCopy(t *testing.T) {
	a := NewGrid(3, 3, 3)
	b := NewGrid(3, 3, 3)
	for i := range a.Data {
		a.Data[i] = float64(i) * 0.5
	}
	b.CopyFrom(a)
	assert.Equal(t, a.Data, b.Data)
	// copies must not alias
	b.Data[0] = -1
	assert.Equal(t, 0.0, a.Data[0])
}
