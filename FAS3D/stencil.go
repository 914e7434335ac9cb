package FAS3D

// Centered finite-difference stencils on periodic grids, order S in
// {2, 4, 6, 8}. Axis numbering is 1 = x, 2 = y, 3 = z. Grid step is
// HLenFrac / nx at the grid's resolution; grids are assumed cubic in step
// (dx = dy = dz).

// firstDerCoefs[S] holds the one-sided weights c_1..c_{S/2} of the
// antisymmetric first-derivative stencil: f' = sum_m c_m (f(+m) - f(-m)) / h.
var firstDerCoefs = map[int][]float64{
	2: {1.0 / 2.0},
	4: {2.0 / 3.0, -1.0 / 12.0},
	6: {3.0 / 4.0, -3.0 / 20.0, 1.0 / 60.0},
	8: {4.0 / 5.0, -1.0 / 5.0, 4.0 / 105.0, -1.0 / 280.0},
}

// secondDerCoefs[S] holds the one-sided weights of the symmetric pure
// second-derivative stencil: f'' = (-C f(0) + sum_m c_m (f(+m) + f(-m))) / h^2
// with C = DoubleDerCoef[S].
var secondDerCoefs = map[int][]float64{
	2: {1.0},
	4: {4.0 / 3.0, -1.0 / 12.0},
	6: {3.0 / 2.0, -3.0 / 20.0, 1.0 / 90.0},
	8: {8.0 / 5.0, -1.0 / 5.0, 8.0 / 315.0, -1.0 / 560.0},
}

// DoubleDerCoef is indexed by stencil order S and gives the magnitude of the
// center weight of the pure second-derivative stencil. The Jacobian
// relaxation reads it to split off the self-coupling of the center cell.
var DoubleDerCoef = [9]float64{
	2: 2.0,
	4: 2.5,
	6: 49.0 / 18.0,
	8: 205.0 / 72.0,
}

func shiftPt(i, j, k, axis, m int) (si, sj, sk int) {
	si, sj, sk = i, j, k
	switch axis {
	case 1:
		si += m
	case 2:
		sj += m
	case 3:
		sk += m
	default:
		panic("FAS3D: bad derivative axis")
	}
	return
}

// Derivative evaluates the first derivative of g along axis at (i,j,k).
func Derivative(i, j, k, axis, order int, g *Grid) (der float64) {
	var (
		cs = firstDerCoefs[order]
		h  = gridStep(g.Nx)
	)
	for m, c := range cs {
		pi, pj, pk := shiftPt(i, j, k, axis, m+1)
		mi, mj, mk := shiftPt(i, j, k, axis, -(m + 1))
		der += c * (g.Get(pi, pj, pk) - g.Get(mi, mj, mk))
	}
	der /= h
	return
}

// DoubleDerivative evaluates the second derivative of g along axis1, axis2 at
// (i,j,k). Equal axes use the symmetric pure stencil; unequal axes use the
// tensor product of two first-derivative stencils.
func DoubleDerivative(i, j, k, axis1, axis2, order int, g *Grid) (der float64) {
	var (
		h = gridStep(g.Nx)
	)
	if axis1 == axis2 {
		cs := secondDerCoefs[order]
		der = -DoubleDerCoef[order] * g.Get(i, j, k)
		for m, c := range cs {
			pi, pj, pk := shiftPt(i, j, k, axis1, m+1)
			mi, mj, mk := shiftPt(i, j, k, axis1, -(m + 1))
			der += c * (g.Get(pi, pj, pk) + g.Get(mi, mj, mk))
		}
		der /= h * h
		return
	}
	cs := firstDerCoefs[order]
	for p, cp := range cs {
		for q, cq := range cs {
			ppi, ppj, ppk := shiftPt(i, j, k, axis1, p+1)
			pmi, pmj, pmk := shiftPt(i, j, k, axis1, -(p + 1))

			ai, aj, ak := shiftPt(ppi, ppj, ppk, axis2, q+1)
			bi, bj, bk := shiftPt(ppi, ppj, ppk, axis2, -(q + 1))
			ci, cj, ck := shiftPt(pmi, pmj, pmk, axis2, q+1)
			di, dj, dk := shiftPt(pmi, pmj, pmk, axis2, -(q + 1))

			der += cp * cq * (g.Get(ai, aj, ak) - g.Get(bi, bj, bk) -
				g.Get(ci, cj, ck) + g.Get(di, dj, dk))
		}
	}
	der /= h * h
	return
}

// Laplacian evaluates the sum of the three pure second derivatives of g at
// (i,j,k).
func Laplacian(i, j, k, order int, g *Grid) (lap float64) {
	for axis := 1; axis <= 3; axis++ {
		lap += DoubleDerivative(i, j, k, axis, axis, order, g)
	}
	return
}
