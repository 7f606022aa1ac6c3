/*
 * crimm.go, part of crimm.
 *
 * Copyright 2023 The crimm developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package crimm

import (
	"fmt"

	v3 "github.com/stanislc/crimm/v3"
)

/**Note: Several functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should crash.
 * Most panics are related to using a function on a nil object or accessing out-of-bounds fields.**/

//Atom contains the information for an atom that is not its coordinates
//(those are kept in a v3.Matrix). Only the fields needed for docking
//scores are carried: partial charge, van der Waals radius and well depth.
type Atom struct {
	Name    string
	ID      int
	Symbol  string
	Charge  float64 //partial charge, in e
	Vdw     float64 //van der Waals radius, in A
	Epsilon float64 //Lennard-Jones well depth, in kcal/mol. Only its magnitude is used.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic(PanicMsg("crimm.Atom.Copy: Attempted to copy a nil atom"))
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

//Structure is a set of atoms together with their coordinates. It is the
//receptor or ligand given to the grid generators and the docking engine.
type Structure struct {
	atoms  []*Atom
	coords *v3.Matrix
}

//NewStructure makes a Structure from the atoms and coordinates given, and returns
//it. It returns an error if either slice is nil or their lengths don't match.
func NewStructure(ats []*Atom, coords *v3.Matrix) (*Structure, error) {
	if ats == nil || coords == nil {
		return nil, CError{"Supplied a nil atom slice or coordinate matrix", []string{"NewStructure"}}
	}
	if len(ats) != coords.NVecs() {
		return nil, CError{fmt.Sprintf("%d atoms but %d coordinate vectors", len(ats), coords.NVecs()), []string{"NewStructure"}}
	}
	S := new(Structure)
	S.atoms = ats
	S.coords = coords
	return S, nil
}

/*Structure methods*/

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= len(S.atoms) {
		panic(PanicMsg(fmt.Sprintf("crimm.Structure.Atom: Atom index %d out of range", i)))
	}
	return S.atoms[i]
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.atoms)
}

//Coords returns the coordinate matrix of the structure. The matrix is
//not copied, so changes to it are seen by the structure.
func (S *Structure) Coords() *v3.Matrix {
	return S.coords
}

//SetCoords replaces the coordinates of the structure with c. It returns an
//error if the number of vectors in c doesn't match the number of atoms.
func (S *Structure) SetCoords(c *v3.Matrix) error {
	if c.NVecs() != len(S.atoms) {
		return CError{fmt.Sprintf("%d coordinate vectors given, but the structure has %d atoms", c.NVecs(), len(S.atoms)), []string{"SetCoords"}}
	}
	S.coords = c
	return nil
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	if S == nil {
		panic(PanicMsg("crimm.Structure.Copy: Attempted to copy a nil structure"))
	}
	ats := make([]*Atom, len(S.atoms))
	for i, v := range S.atoms {
		ats[i] = v.Copy()
	}
	c := v3.Zeros(S.coords.NVecs())
	c.Copy(S.coords.Dense)
	n, _ := NewStructure(ats, c) //the lengths match by construction
	return n
}

//Centroid returns the geometric center of the structure as a 1x3 matrix.
func (S *Structure) Centroid() *v3.Matrix {
	return S.coords.Mean()
}

//Charges returns a slice with the partial charge of each atom, in the
//order of the atoms.
func (S *Structure) Charges() []float64 {
	q := make([]float64, len(S.atoms))
	for i, v := range S.atoms {
		q[i] = v.Charge
	}
	return q
}

//VdwRadii returns a slice with the van der Waals radius of each atom.
func (S *Structure) VdwRadii() []float64 {
	r := make([]float64, len(S.atoms))
	for i, v := range S.atoms {
		r[i] = v.Vdw
	}
	return r
}

//Epsilons returns a slice with the well depth of each atom.
func (S *Structure) Epsilons() []float64 {
	e := make([]float64, len(S.atoms))
	for i, v := range S.atoms {
		e[i] = v.Epsilon
	}
	return e
}
