/*
 * crimm_test.go, part of crimm.
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
	"testing"

	v3 "github.com/stanislc/crimm/v3"
)

func testAtoms() []*Atom {
	return []*Atom{
		{Name: "N", ID: 1, Symbol: "N", Charge: -0.47, Vdw: 1.85, Epsilon: -0.20},
		{Name: "CA", ID: 2, Symbol: "C", Charge: 0.07, Vdw: 2.275, Epsilon: -0.02},
		{Name: "O", ID: 3, Symbol: "O", Charge: -0.51, Vdw: 1.70, Epsilon: -0.12},
	}
}

func TestStructure(Te *testing.T) {
	ats := testAtoms()
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 1.5, 0, 0, 0, 1.5, 0})
	if err != nil {
		Te.Fatal(err)
	}
	S, err := NewStructure(ats, coords)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 3 {
		Te.Error("Wrong number of atoms:", S.Len())
	}
	if S.Atom(1).Name != "CA" {
		Te.Error("Wrong atom returned:", S.Atom(1))
	}
	q := S.Charges()
	r := S.VdwRadii()
	e := S.Epsilons()
	if q[0] != -0.47 || r[1] != 2.275 || e[2] != -0.12 {
		Te.Error("Wrong parameter slices", q, r, e)
	}
	c := S.Centroid()
	if c.At(0, 0) != 0.5 || c.At(0, 1) != 0.5 || c.At(0, 2) != 0 {
		Te.Error("Wrong centroid", c)
	}
	fmt.Println("structure centroid", c)
}

func TestStructureErrors(Te *testing.T) {
	ats := testAtoms()
	short := v3.Zeros(2)
	if _, err := NewStructure(ats, short); err == nil {
		Te.Error("NewStructure should reject mismatched atom/coordinate lengths")
	}
	if _, err := NewStructure(nil, short); err == nil {
		Te.Error("NewStructure should reject nil atoms")
	}
	coords := v3.Zeros(3)
	S, err := NewStructure(ats, coords)
	if err != nil {
		Te.Fatal(err)
	}
	if err := S.SetCoords(v3.Zeros(5)); err != nil {
		deco := err.(Error).Decorate("")
		if len(deco) == 0 {
			Te.Error("error should carry its decoration", deco)
		}
	} else {
		Te.Error("SetCoords should reject a wrong-sized matrix")
	}
}

func TestParametrize(Te *testing.T) {
	ats := []*Atom{
		{Name: "O1", ID: 1, Symbol: "O"},
		{Name: "C1", ID: 2, Symbol: "C", Vdw: 2.0}, //radius stays, depth is filled
		{Name: "X1", ID: 3, Symbol: "Xx"},
	}
	S, err := NewStructure(ats, v3.Zeros(3))
	if err != nil {
		Te.Fatal(err)
	}
	missing := S.Parametrize()
	if missing != 2 {
		Te.Error("expected 2 unfillable fields for the unknown symbol, got", missing)
	}
	if S.Atom(0).Vdw != 1.52 || S.Atom(0).Epsilon != -0.12 {
		Te.Error("oxygen not parametrized:", S.Atom(0))
	}
	if S.Atom(1).Vdw != 2.0 {
		Te.Error("preset radius was overwritten:", S.Atom(1))
	}
	if S.Atom(1).Epsilon != -0.11 {
		Te.Error("carbon well depth not filled:", S.Atom(1))
	}
	if r, ok := VdwRadius("N"); !ok || r != 1.55 {
		Te.Error("wrong nitrogen radius", r, ok)
	}
	if _, ok := WellDepth("Xx"); ok {
		Te.Error("made-up element found in the well depth table")
	}
	fmt.Println("parametrized atoms:", S.Atom(0), S.Atom(1))
}

func TestStructureCopy(Te *testing.T) {
	ats := testAtoms()
	coords := v3.Zeros(3)
	S, err := NewStructure(ats, coords)
	if err != nil {
		Te.Fatal(err)
	}
	C := S.Copy()
	C.Atom(0).Charge = 99
	C.Coords().Set(0, 0, 42)
	if S.Atom(0).Charge == 99 || S.Coords().At(0, 0) == 42 {
		Te.Error("Copy should be independent of the original")
	}
}
