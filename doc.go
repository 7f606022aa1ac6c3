/*
 * doc.go, part of crimm.
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

/*Package crimm is the main package of the crimm docking library. It provides the atom
and structure types shared by the rest of the library, and the error conventions all
subpackages follow.

	**crimm capabilities**

    Generates electrostatic and van der Waals potential grids around a receptor
	structure, with softcore switching near the atomic centers.

    Scores batches of ligand orientations against the receptor grids for every
	translational offset at once, through Fourier-domain cross-correlation.

    Realigns and combines the per-channel correlation grids into composite score
	grids, and selects the best-scoring poses.

    Samples uniformly-distributed rigid-body orientations, projects ligand atoms
	onto grids, and reads/writes compressed grid-map files.

The numerical work is done with the gonum libraries (gonum.org/v1/gonum). All
potentials and scores are in CHARMM-flavored units: Å, e and kcal/mol.

crimm and its subpackages deal with errors in the following way: errors that come
from the programmer misusing a "fundamental" function (out of range indexes, nil
receivers) cause panics, with messages of the type PanicMsg. Conditions that
depend on the input data (mismatched shapes, short slices) are returned as errors
implementing the crimm.Error interface, which allows decorating an error with the
call path as it goes up the stack, without wrapping it into a different type.
*/
package crimm
