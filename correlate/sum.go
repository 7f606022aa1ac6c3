package correlate

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/stanislc/crimm/grid"
)

//DefaultRoll returns the customary realignment offset for a correlated
//lattice, its x extent minus one. On the cubic lattices grid.Surround
//builds, one such offset re-centers every axis.
func DefaultRoll(s grid.Shape) int {
	return s.NX - 1
}

//SumGrids realigns every correlated orientation of the batch by the
//circular roll offset and accumulates its channels into one composite
//grid per orientation: dst[o][(x+roll)%nx, (y+roll)%ny, (z+roll)%nz] =
//sum over channels of batch(o,ch)[x,y,z], computed backward so shift and
//sum happen in one pass over the data. dst must hold one grid per
//orientation, all of the batch's shape; they are zeroed first. After the
//call the score for a translation of t cells along an axis sits at index
//(roll-t) modulo the extent, so zero translation is at (roll, roll,
//roll) on a cubic lattice. Orientations are processed in parallel by
//cpus workers (below 1 meaning one per logical CPU) without affecting
//the result. The batch itself is left untouched.
func SumGrids(b *grid.Batch, roll int, dst []*grid.Grid, cpus int) error {
	s := b.Shape()
	if len(dst) != b.NOrientations() {
		return Error{message: fmt.Sprintf("crimm/correlate: %d composite grids for %d orientations", len(dst), b.NOrientations()), critical: true}
	}
	for o, g := range dst {
		if g == nil {
			return Error{message: fmt.Sprintf("crimm/correlate: composite grid %d is nil", o), critical: true}
		}
		if g.Shape() != s {
			return Error{message: fmt.Sprintf("crimm/correlate: composite grid %d has shape %v, want %v", o, g.Shape(), s), critical: true}
		}
	}
	nx, ny, nz := s.NX, s.NY, s.NZ
	rx := ((roll % nx) + nx) % nx
	ry := ((roll % ny) + ny) % ny
	rz := ((roll % nz) + nz) % nz
	nch := b.NChannels()
	jobs := make(chan int, b.NOrientations())
	for o := 0; o < b.NOrientations(); o++ {
		jobs <- o
	}
	close(jobs)
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	ended := make(chan bool, cpus)
	for w := 0; w < cpus; w++ {
		go func() {
			for o := range jobs {
				out := dst[o]
				out.Fill(0)
				od := out.Data()
				for ch := 0; ch < nch; ch++ {
					src := b.Grid(o, ch).Data()
					for x := 0; x < nx; x++ {
						sx := x - rx
						if sx < 0 {
							sx += nx
						}
						for y := 0; y < ny; y++ {
							sy := y - ry
							if sy < 0 {
								sy += ny
							}
							drow := (x*ny + y) * nz
							srow := (sx*ny + sy) * nz
							floats.Add(od[drow:drow+rz], src[srow+nz-rz:srow+nz])
							floats.Add(od[drow+rz:drow+nz], src[srow:srow+nz-rz])
						}
					}
				}
			}
			ended <- true
		}()
	}
	for w := 0; w < cpus; w++ {
		<-ended
	}
	return nil
}

//FavorableCells returns the linear indices of the cells of g whose value
//carries a negative sign, the attractive contacts of a composite score
//grid, along with their count. The scan stores every index
//unconditionally, either at the next output slot or at a throwaway slot
//zero, so there is no data-dependent branch on the hot path. buf is
//reused if it is big enough (one slot more than the grid has cells);
//the returned slice aliases it.
func FavorableCells(g *grid.Grid, buf []int) ([]int, int) {
	data := g.Data()
	if cap(buf) < len(data)+1 {
		buf = make([]int, len(data)+1)
	}
	buf = buf[:len(data)+1]
	counter := 1
	for i, v := range data {
		neg := 0
		if math.Signbit(v) {
			neg = 1
		}
		buf[neg*counter] = i
		counter += neg
	}
	return buf[1:counter], counter - 1
}
