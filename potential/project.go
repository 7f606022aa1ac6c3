package potential

import (
	"fmt"
	"log"
	"math"

	"github.com/stanislc/crimm"
	"github.com/stanislc/crimm/grid"
	"github.com/stanislc/crimm/v3"
)

//VdwWeights returns the per-atom coupling weights of the van der Waals
//channel, sqrt(|eps|), so that receptor-ligand products recover the
//geometric-mean combination of the well depths.
func VdwWeights(eps []float64) []float64 {
	w := make([]float64, len(eps))
	for i, e := range eps {
		w[i] = math.Sqrt(math.Abs(e))
	}
	return w
}

//LigandGrids projects a ligand conformation onto the lattice as one grid
//per scoring channel, weighting each atom by its coupling strength for
//that channel: the partial charge for electrostatics, VdwWeights for
//van der Waals. Correlating these against the receptor lattices of
//ElecGrid and VdwGrid then yields interaction energies to trilinear
//resolution. The channels come out in that order, electrostatic first.
func LigandGrids(G *grid.Geometry, L *crimm.Structure) (*grid.Channels, error) {
	w := VdwWeights(L.Epsilons())
	elec, err := Project(G, L.Coords(), L.Charges())
	if err != nil {
		return nil, errDecorate(err, "LigandGrids")
	}
	vdw, err := Project(G, L.Coords(), w)
	if err != nil {
		return nil, errDecorate(err, "LigandGrids")
	}
	ch, err := grid.ChannelsFrom(elec, vdw)
	if err != nil {
		return nil, errDecorate(err, "LigandGrids")
	}
	return ch, nil
}

//Project spreads per-atom weights onto a freshly allocated lattice grid.
func Project(G *grid.Geometry, coords *v3.Matrix, weights []float64) (*grid.Grid, error) {
	g := grid.New(G.Shape())
	if err := ProjectInto(g, G, coords, weights); err != nil {
		return nil, errDecorate(err, "Project")
	}
	return g, nil
}

//ProjectInto zeroes dst and spreads each atom's weight over the eight
//lattice points around it, trilinearly, so a weight sitting exactly on a
//point lands on it whole. Corner contributions falling outside the
//lattice are dropped. Atoms entirely outside only get a warning, as a
//rotated conformation can poke out of a tight lattice without
//invalidating the rest of the projection.
func ProjectInto(dst *grid.Grid, G *grid.Geometry, coords *v3.Matrix, weights []float64) error {
	s := dst.Shape()
	if s != G.Shape() {
		return Error{message: fmt.Sprintf("crimm/potential: grid shape %v does not match the lattice shape %v", s, G.Shape()), critical: true}
	}
	n := coords.NVecs()
	if n != len(weights) {
		return Error{message: fmt.Sprintf("crimm/potential: %d weights for %d atoms", len(weights), n), critical: true}
	}
	dst.Fill(0)
	ox, oy, oz := G.Origin()
	sp := G.Spacing()
	data := dst.Data()
	lost := 0
	for a := 0; a < n; a++ {
		r := coords.RawRowView(a)
		gx := (r[0] - ox) / sp
		gy := (r[1] - oy) / sp
		gz := (r[2] - oz) / sp
		ix := int(math.Floor(gx))
		iy := int(math.Floor(gy))
		iz := int(math.Floor(gz))
		fx := gx - float64(ix)
		fy := gy - float64(iy)
		fz := gz - float64(iz)
		placed := false
		for cx := 0; cx < 2; cx++ {
			x := ix + cx
			if x < 0 || x >= s.NX {
				continue
			}
			wx := 1 - fx
			if cx == 1 {
				wx = fx
			}
			for cy := 0; cy < 2; cy++ {
				y := iy + cy
				if y < 0 || y >= s.NY {
					continue
				}
				wy := 1 - fy
				if cy == 1 {
					wy = fy
				}
				for cz := 0; cz < 2; cz++ {
					z := iz + cz
					if z < 0 || z >= s.NZ {
						continue
					}
					wz := 1 - fz
					if cz == 1 {
						wz = fz
					}
					data[(x*s.NY+y)*s.NZ+z] += weights[a] * wx * wy * wz
					placed = true
				}
			}
		}
		if !placed {
			lost++
		}
	}
	if lost > 0 {
		log.Printf("crimm/potential: %d of %d atoms fall outside the lattice and were not projected", lost, n)
	}
	return nil
}
