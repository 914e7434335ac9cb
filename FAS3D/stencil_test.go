package FAS3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sinField(n int) (g *Grid) {
	g = NewGrid(n, n, n)
	h := HLenFrac / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x, y, z := float64(i)*h, float64(j)*h, float64(k)*h
				g.Set(i, j, k, math.Sin(2*math.Pi*x)*math.Sin(2*math.Pi*y)*math.Sin(2*math.Pi*z))
			}
		}
	}
	return
}

func TestDoubleDerCoef(t *testing.T) {
	assert.Equal(t, 2.0, DoubleDerCoef[2])
	assert.Equal(t, 2.5, DoubleDerCoef[4])
	assert.Equal(t, 49.0/18.0, DoubleDerCoef[6])
	assert.Equal(t, 205.0/72.0, DoubleDerCoef[8])
}

func TestFirstDerivative(t *testing.T) {
	var (
		n = 32
		h = HLenFrac / float64(n)
		g = NewGrid(n, n, n)
	)
	for i := 0; i < n; i++ {
		g.Set(i, 0, 0, math.Sin(2*math.Pi*float64(i)*h))
	}
	for j := 1; j < n; j++ {
		for i := 0; i < n; i++ {
			g.Set(i, j, 0, g.Get(i, 0, 0))
		}
	}
	for k := 1; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				g.Set(i, j, k, g.Get(i, j, 0))
			}
		}
	}
	// d/dx sin(2 pi x) = 2 pi cos(2 pi x); y and z derivatives vanish
	for _, order := range []int{2, 4, 6, 8} {
		tol := 0.05
		if order > 2 {
			tol = 0.005
		}
		for i := 0; i < n; i++ {
			x := float64(i) * h
			exact := 2 * math.Pi * math.Cos(2*math.Pi*x)
			assert.InDelta(t, exact, Derivative(i, 3, 5, 1, order, g), tol)
			assert.InDelta(t, 0.0, Derivative(i, 3, 5, 2, order, g), 1.e-12)
			assert.InDelta(t, 0.0, Derivative(i, 3, 5, 3, order, g), 1.e-12)
		}
	}
}

func TestSecondDerivativeAndLaplacian(t *testing.T) {
	var (
		n = 32
		g = sinField(n)
	)
	// each pure second derivative of the product field equals -(2 pi)^2 times
	// the field; the laplacian is three times that
	for _, pt := range [][3]int{{0, 0, 0}, {5, 9, 13}, {31, 1, 16}, {16, 16, 16}} {
		i, j, k := pt[0], pt[1], pt[2]
		f := g.Get(i, j, k)
		exact := -4 * math.Pi * math.Pi * f
		tol := math.Max(0.05, math.Abs(exact)*0.02)
		assert.InDelta(t, exact, DoubleDerivative(i, j, k, 1, 1, 2, g), tol)
		assert.InDelta(t, exact, DoubleDerivative(i, j, k, 2, 2, 2, g), tol)
		assert.InDelta(t, exact, DoubleDerivative(i, j, k, 3, 3, 2, g), tol)
		assert.InDelta(t, 3*exact, Laplacian(i, j, k, 2, g), 3*tol)
	}

	// the laplacian must equal the sum of the pure second derivatives exactly
	for _, order := range []int{2, 4, 6, 8} {
		sum := DoubleDerivative(3, 4, 5, 1, 1, order, g) +
			DoubleDerivative(3, 4, 5, 2, 2, order, g) +
			DoubleDerivative(3, 4, 5, 3, 3, order, g)
		assert.InDelta(t, sum, Laplacian(3, 4, 5, order, g), 1.e-12)
	}
}

func TestMixedDerivative(t *testing.T) {
	var (
		n = 32
		h = HLenFrac / float64(n)
		g = NewGrid(n, n, n)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				x, y := float64(i)*h, float64(j)*h
				g.Set(i, j, k, math.Sin(2*math.Pi*x)*math.Sin(2*math.Pi*y))
			}
		}
	}
	// d2/dxdy = (2 pi)^2 cos(2 pi x) cos(2 pi y); no z dependence
	for _, pt := range [][3]int{{0, 0, 0}, {3, 7, 2}, {20, 11, 30}} {
		i, j, k := pt[0], pt[1], pt[2]
		x, y := float64(i)*h, float64(j)*h
		exact := 4 * math.Pi * math.Pi * math.Cos(2*math.Pi*x) * math.Cos(2*math.Pi*y)
		assert.InDelta(t, exact, DoubleDerivative(i, j, k, 1, 2, 2, g), 1.0)
		assert.InDelta(t, exact, DoubleDerivative(i, j, k, 1, 2, 4, g), 0.05)
		assert.InDelta(t, 0.0, DoubleDerivative(i, j, k, 1, 3, 2, g), 1.e-12)
		assert.InDelta(t, 0.0, DoubleDerivative(i, j, k, 2, 3, 2, g), 1.e-12)
	}
}
