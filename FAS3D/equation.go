package FAS3D

import "fmt"

// AtomType selects the factor kind inside a Molecule.
type AtomType int

const (
	ConstF AtomType = iota // spatially varying constant, read from the molecule's source grid
	Poly                   // u^Value
	DerX                   // du/dx
	DerY                   // du/dy
	DerZ                   // du/dz
	DerXX                  // d2u/dx2
	DerYY                  // d2u/dy2
	DerZZ                  // d2u/dz2
	DerXY                  // d2u/dxdy
	DerXZ                  // d2u/dxdz
	DerYZ                  // d2u/dydz
	Lap                    // laplacian of u
)

// derAxes maps the derivative atom types to their axis pair (1 = x, 2 = y,
// 3 = z). The second entry is unused for first derivatives.
var derAxes = [12][2]int{
	DerX:  {1, 0},
	DerY:  {2, 0},
	DerZ:  {3, 0},
	DerXX: {1, 1},
	DerYY: {2, 2},
	DerZZ: {3, 3},
	DerXY: {1, 2},
	DerXZ: {1, 3},
	DerYZ: {2, 3},
}

// Atom is a single factor in a product term. UID selects the solution field
// it references (ignored for ConstF). Value is the exponent, meaningful only
// for Poly.
type Atom struct {
	Type  AtomType
	UID   int
	Value float64
}

func (a Atom) isFirstDer() bool {
	return a.Type >= DerX && a.Type <= DerZ
}

func (a Atom) isSecondDer() bool {
	return a.Type >= DerXX && a.Type <= DerYZ
}

func (a Atom) isPureSecondDer() bool {
	return a.Type >= DerXX && a.Type <= DerZZ
}

// Molecule is a product of atoms times a constant coefficient. An equation is
// a sum of molecules; atoms commute under multiplication and a molecule with
// no atoms evaluates to ConstCoef.
type Molecule struct {
	Atoms     []Atom
	ConstCoef float64
}

// Init sets the coefficient and reserves capacity for atomN atoms.
func (m *Molecule) Init(atomN int, constCoef float64) {
	m.Atoms = make([]Atom, 0, atomN)
	m.ConstCoef = constCoef
}

func (m *Molecule) AddAtom(a Atom) {
	m.Atoms = append(m.Atoms, a)
}

// checkEquations validates every atom before the first evaluation: UIDs must
// reference existing solution fields and derivative types must be known.
// Expressions must not be mutated afterwards.
func (fas *FASMultigrid) checkEquations() error {
	for eqnID := range fas.Eqns {
		for molID := range fas.Eqns[eqnID] {
			for _, a := range fas.Eqns[eqnID][molID].Atoms {
				if a.Type < ConstF || a.Type > Lap {
					return fmt.Errorf("eqn %d molecule %d: unknown atom type %d", eqnID, molID, a.Type)
				}
				if a.Type == ConstF {
					continue
				}
				if a.UID < 0 || a.UID >= fas.UN {
					return fmt.Errorf("eqn %d molecule %d: atom references field %d of %d", eqnID, molID, a.UID, fas.UN)
				}
			}
		}
	}
	return nil
}
