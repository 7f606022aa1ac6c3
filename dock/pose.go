package dock

import (
	"github.com/stanislc/crimm/grid"
	"github.com/stanislc/crimm/v3"
)

//Pose is one scored placement of the ligand: which orientation of the
//batch, the cell of the realigned composite grid the score came from,
//how many lattice cells to translate the ligand along each axis after
//the rotation, and the composite correlation score, lower being better.
type Pose struct {
	Orientation int
	Cell        int
	Shift       [3]int
	Score       float64
}

//Offset returns the pose's translation as a 1x3 vector in distance
//units, given the lattice spacing.
func (P Pose) Offset(spacing float64) *v3.Matrix {
	off := v3.Zeros(1)
	for j, t := range P.Shift {
		off.Set(0, j, float64(t)*spacing)
	}
	return off
}

//posesFrom decodes flat top-N entries, indexed orientation-major over
//realigned composite grids, back into poses.
func posesFrom(best []ScoreIndex, s grid.Shape, roll int) []Pose {
	N := s.N()
	out := make([]Pose, len(best))
	for i, si := range best {
		cell := si.Index % N
		x, y, z := s.XYZ(cell)
		out[i] = Pose{
			Orientation: si.Index / N,
			Cell:        cell,
			Shift:       [3]int{shiftFor(x, roll, s.NX), shiftFor(y, roll, s.NY), shiftFor(z, roll, s.NZ)},
			Score:       si.Score,
		}
	}
	return out
}

//shiftFor recovers the signed translation, in cells, that a realigned
//cell index stands for: (roll-i) modulo the extent, folded into the
//centered range.
func shiftFor(i, roll, n int) int {
	t := ((roll-i)%n + n) % n
	if t > n/2 {
		t -= n
	}
	return t
}
