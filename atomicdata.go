/*
 * atomicdata.go, part of crimm.
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

//Fallback per-element parameters for atoms that arrive without force
//field values. Structures prepared by a proper force field should not
//need any of this.

//A map for assigning van der Waals radii to elements.
//Values from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803.
//Note that just common "bio-elements" are present.
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70, //the sp3 radius
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//A map for assigning default Lennard-Jones well depths to elements,
//in kcal/mol and negative, the way force fields write them. These are
//generic CHARMM-flavored values, good enough for a fallback but no
//substitute for typed parameters.
var symbolWellDepth = map[string]float64{
	"H":  -0.046,
	"C":  -0.11,
	"O":  -0.12,
	"N":  -0.20,
	"P":  -0.585,
	"S":  -0.45,
	"Se": -0.47,
	"K":  -0.087,
	"Ca": -0.12,
	"Mg": -0.0135,
	"Cl": -0.32,
	"Na": -0.0469,
	"Cu": -0.05,
	"Zn": -0.25,
	"Fe": -0.01,
	"Mn": -0.015,
	"F":  -0.135,
	"Br": -0.48,
	"I":  -0.55,
}

//VdwRadius returns the van der Waals radius, in A, for an element
//symbol, and whether the symbol is in the table.
func VdwRadius(symbol string) (float64, bool) {
	r, ok := symbolVdwrad[symbol]
	return r, ok
}

//WellDepth returns the default Lennard-Jones well depth for an element
//symbol, and whether the symbol is in the table.
func WellDepth(symbol string) (float64, bool) {
	e, ok := symbolWellDepth[symbol]
	return e, ok
}

//Parametrize fills the zero-valued Vdw and Epsilon fields of the
//structure's atoms from the built-in per-element tables, going by each
//atom's Symbol. Fields that already hold a value are left alone. It
//returns the number of fields it could not fill because the symbol is
//not in the corresponding table.
func (S *Structure) Parametrize() int {
	var missing int
	for _, a := range S.atoms {
		if a.Vdw == 0 {
			if r, ok := symbolVdwrad[a.Symbol]; ok {
				a.Vdw = r
			} else {
				missing++
			}
		}
		if a.Epsilon == 0 {
			if e, ok := symbolWellDepth[a.Symbol]; ok {
				a.Epsilon = e
			} else {
				missing++
			}
		}
	}
	return missing
}
