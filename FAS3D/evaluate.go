package FAS3D

import (
	"math"

	"github.com/LBJ-Wade/elliptic-solver/utils"
)

// powReal raises base to a real exponent, taking the cheap path for integer
// exponents so negative bases stay in the real domain.
func powReal(base, exp float64) float64 {
	if exp == math.Trunc(exp) && math.Abs(exp) < 64 {
		return utils.POW(base, int(exp))
	}
	return math.Pow(base, exp)
}

// atomEval returns the value of a single atom at (i,j,k). The molecule
// indices locate the source grid for ConstF atoms.
func (fas *FASMultigrid) atomEval(eqnID, molID, dIdx int, ad Atom, i, j, k int) float64 {
	switch {
	case ad.Type == ConstF:
		rho := fas.Rho[eqnID][molID][dIdx]
		return rho.Data[rho.Idx(i, j, k)]
	case ad.Type == Poly:
		u := fas.U[ad.UID][dIdx]
		return powReal(u.Data[u.Idx(i, j, k)], ad.Value)
	case ad.isFirstDer():
		return Derivative(i, j, k, derAxes[ad.Type][0], fas.StencilOrder, fas.U[ad.UID][dIdx])
	case ad.isSecondDer():
		return DoubleDerivative(i, j, k, derAxes[ad.Type][0], derAxes[ad.Type][1],
			fas.StencilOrder, fas.U[ad.UID][dIdx])
	default:
		return Laplacian(i, j, k, fas.StencilOrder, fas.U[ad.UID][dIdx])
	}
}

// evalEqnPt evaluates F_eqnID(u) at one point: the sum over molecules of the
// coefficient times the product of atom values.
func (fas *FASMultigrid) evalEqnPt(eqnID, dIdx, i, j, k int) (res float64) {
	for molID := range fas.Eqns[eqnID] {
		mol := &fas.Eqns[eqnID][molID]
		val := mol.ConstCoef
		for _, ad := range mol.Atoms {
			val *= fas.atomEval(eqnID, molID, dIdx, ad, i, j, k)
		}
		res += val
	}
	return
}

// evalDerEqnPt evaluates the Gateaux derivative of F_eqnID at one point in
// the direction of the current correction DampingV[uID], with respect to
// field uID. Each molecule carries a running product P and its running
// derivative D through the atom list; D always advances using the product
// value from before the current atom.
func (fas *FASMultigrid) evalDerEqnPt(eqnID, dIdx, i, j, k, uID int) (res float64) {
	var (
		v = fas.DampingV[uID][dIdx]
	)
	for molID := range fas.Eqns[eqnID] {
		var (
			mol = &fas.Eqns[eqnID][molID]
			P   = mol.ConstCoef
			D   = 0.0
		)
		for _, ad := range mol.Atoms {
			if ad.Type == ConstF || ad.UID != uID {
				x := fas.atomEval(eqnID, molID, dIdx, ad, i, j, k)
				P *= x
				D *= x
				continue
			}
			switch {
			case ad.Type == Poly:
				u := fas.U[ad.UID][dIdx]
				uVal := u.Data[u.Idx(i, j, k)]
				x := powReal(uVal, ad.Value)
				D = D*x + P*ad.Value*powReal(uVal, ad.Value-1)*v.Data[v.Idx(i, j, k)]
				P *= x
			case ad.isFirstDer():
				axis := derAxes[ad.Type][0]
				xu := Derivative(i, j, k, axis, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := Derivative(i, j, k, axis, fas.StencilOrder, v)
				D = D*xu + P*xv
				P *= xu
			case ad.isSecondDer():
				a1, a2 := derAxes[ad.Type][0], derAxes[ad.Type][1]
				xu := DoubleDerivative(i, j, k, a1, a2, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := DoubleDerivative(i, j, k, a1, a2, fas.StencilOrder, v)
				D = D*xu + P*xv
				P *= xu
			default: // laplacian: the derivative of lap(u) along v is lap(v)
				xu := Laplacian(i, j, k, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := Laplacian(i, j, k, fas.StencilOrder, v)
				D = D*xu + P*xv
				P *= xu
			}
		}
		res += D
	}
	return
}

// jacobiCoefsPt computes the pointwise Jacobi split of the linearization of
// F_eqnID with respect to field uID at (i,j,k): coefA collects every
// derivative contribution except the self-coupling of the center cell, and
// coefB is the coefficient multiplying v(i,j,k): the center weight of pure
// second-derivative and Laplacian stencils plus the derivative of polynomial
// atoms, which is itself proportional to v(i,j,k). The linearized
// equation at the point then reads coefB*v(i,j,k) + coefA = rhs.
func (fas *FASMultigrid) jacobiCoefsPt(eqnID, dIdx, i, j, k, uID int) (coefA, coefB float64) {
	var (
		v    = fas.DampingV[uID][dIdx]
		dx   = gridStep(fas.NxH[dIdx])
		cc   = DoubleDerCoef[fas.StencilOrder] / (dx * dx)
		vCtr = v.Data[v.Idx(i, j, k)]
	)
	for molID := range fas.Eqns[eqnID] {
		var (
			mol  = &fas.Eqns[eqnID][molID]
			P    = mol.ConstCoef
			molA = 0.0
			molB = 0.0
		)
		for _, ad := range mol.Atoms {
			if ad.Type == ConstF || ad.UID != uID {
				x := fas.atomEval(eqnID, molID, dIdx, ad, i, j, k)
				P *= x
				molA *= x
				molB *= x
				continue
			}
			switch {
			case ad.Type == Poly:
				// the derivative term is itself proportional to v at the
				// center, so it lands in coefB
				u := fas.U[ad.UID][dIdx]
				uVal := u.Data[u.Idx(i, j, k)]
				x := powReal(uVal, ad.Value)
				molB = molB*x + P*ad.Value*powReal(uVal, ad.Value-1)
				molA *= x
				P *= x
			case ad.isFirstDer():
				axis := derAxes[ad.Type][0]
				xu := Derivative(i, j, k, axis, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := Derivative(i, j, k, axis, fas.StencilOrder, v)
				molA = molA*xu + P*xv
				molB *= xu
				P *= xu
			case ad.isPureSecondDer():
				a1 := derAxes[ad.Type][0]
				xu := DoubleDerivative(i, j, k, a1, a1, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := DoubleDerivative(i, j, k, a1, a1, fas.StencilOrder, v)
				molA = molA*xu + P*(xv+cc*vCtr)
				molB = molB*xu - P*cc
				P *= xu
			case ad.isSecondDer(): // mixed: zero center weight
				a1, a2 := derAxes[ad.Type][0], derAxes[ad.Type][1]
				xu := DoubleDerivative(i, j, k, a1, a2, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := DoubleDerivative(i, j, k, a1, a2, fas.StencilOrder, v)
				molA = molA*xu + P*xv
				molB *= xu
				P *= xu
			default: // laplacian: three axes share the center weight
				xu := Laplacian(i, j, k, fas.StencilOrder, fas.U[ad.UID][dIdx])
				xv := Laplacian(i, j, k, fas.StencilOrder, v)
				molA = molA*xu + P*(xv+3*cc*vCtr)
				molB = molB*xu - P*3*cc
				P *= xu
			}
		}
		coefA += molA
		coefB += molB
	}
	return
}
