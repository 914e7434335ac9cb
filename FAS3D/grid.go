package FAS3D

import (
	"gonum.org/v1/gonum/floats"
)

// HLenFrac is the physical extent of the (cubic, periodic) domain. The grid
// step at any level is HLenFrac / nx for that level.
const HLenFrac = 1.0

// Grid is a uniform 3D array of cells with periodic indexing on all axes.
type Grid struct {
	Nx, Ny, Nz int
	Pts        int
	Data       []float64
}

func NewGrid(nx, ny, nz int) (g *Grid) {
	g = &Grid{
		Nx:   nx,
		Ny:   ny,
		Nz:   nz,
		Pts:  nx * ny * nz,
		Data: make([]float64, nx*ny*nz),
	}
	return
}

// NewGridFromData wraps caller-owned storage. len(data) must equal nx*ny*nz.
func NewGridFromData(nx, ny, nz int, data []float64) (g *Grid) {
	if len(data) != nx*ny*nz {
		panic("FAS3D: grid data length does not match extents")
	}
	g = &Grid{
		Nx:   nx,
		Ny:   ny,
		Nz:   nz,
		Pts:  nx * ny * nz,
		Data: data,
	}
	return
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Idx maps (i,j,k) to flat storage with periodic wrap on all three axes.
// Negative indices and indices beyond the extent are valid.
func (g *Grid) Idx(i, j, k int) int {
	return (wrap(i, g.Nx)*g.Ny+wrap(j, g.Ny))*g.Nz + wrap(k, g.Nz)
}

func (g *Grid) Get(i, j, k int) float64 {
	return g.Data[g.Idx(i, j, k)]
}

func (g *Grid) Set(i, j, k int, val float64) {
	g.Data[g.Idx(i, j, k)] = val
}

func (g *Grid) Zero() {
	for i := range g.Data {
		g.Data[i] = 0
	}
}

// Shift adds a constant to every cell.
func (g *Grid) Shift(c float64) {
	for i := range g.Data {
		g.Data[i] += c
	}
}

func (g *Grid) Total() float64 {
	return floats.Sum(g.Data)
}

func (g *Grid) Average() float64 {
	return g.Total() / float64(g.Pts)
}

func (g *Grid) Max() float64 {
	return floats.Max(g.Data)
}

func (g *Grid) Min() float64 {
	return floats.Min(g.Data)
}

// CopyFrom copies cell values from src. Extents must match.
func (g *Grid) CopyFrom(src *Grid) {
	if g.Pts != src.Pts {
		panic("FAS3D: grid extent mismatch in copy")
	}
	copy(g.Data, src.Data)
}

func gridStep(nx int) float64 {
	return HLenFrac / float64(nx)
}
