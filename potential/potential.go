/*
Package potential builds the receptor side of the scoring: for every
point of a lattice, the electrostatic and van der Waals interaction
energies summed over the receptor atoms, each switched to a bounded
softcore form below a per-atom cutoff so an overlap scores badly but
stays finite. The lattices feed the correlation engine in
crimm/correlate, which evaluates them against ligand grids over every
translation at once.
*/
package potential

import (
	"fmt"
	"math"
	"runtime"

	"github.com/stanislc/crimm"
	"github.com/stanislc/crimm/grid"
	"github.com/stanislc/crimm/v3"
	"gonum.org/v1/gonum/mat"
)

//DistanceMatrix returns the dense matrix of Euclidean distances between
//every lattice point (rows) and every atom (columns). No cutoffs are
//applied here, this is pure geometry, and also the dominant memory cost
//of the whole pipeline. cpus sets how many goroutines split the rows;
//anything below 1 means one per logical CPU.
func DistanceMatrix(points, coords *v3.Matrix, cpus int) *mat.Dense {
	np := points.NVecs()
	na := coords.NVecs()
	D := mat.NewDense(np, na, nil)
	inBlocks(np, cpus, func(begin, end int) {
		for i := begin; i < end; i++ {
			p := points.RawRowView(i)
			row := D.RawRowView(i)
			for j := 0; j < na; j++ {
				a := coords.RawRowView(j)
				dx := p[0] - a[0]
				dy := p[1] - a[1]
				dz := p[2] - a[2]
				row[j] = math.Sqrt(dx*dx + dy*dy + dz*dz)
			}
		}
	})
	return D
}

//ElecGrid fills a lattice of shape s with the electrostatic potential of
//the given partial charges, in kcal/(mol*e). Above each atom's cutoff
//the potential decays with the inverse square of the distance; below it,
//a quadratic plateau capped at K.ElecRepMax (positive charges) or
//K.ElecAttrMax (the rest) takes over. dists must come from
//DistanceMatrix on the same lattice: one row per point, one column per
//charge. A nil K means DefaultConstants(). Each point depends only on
//its own distances, so the result does not change with cpus.
func ElecGrid(s grid.Shape, dists *mat.Dense, charges []float64, K *Constants, cpus int) (*grid.Grid, error) {
	if K == nil {
		K = DefaultConstants()
	}
	r, c := dists.Dims()
	if r != s.N() || c != len(charges) || c == 0 {
		return nil, Error{message: fmt.Sprintf("crimm/potential: distance matrix is %dx%d, want %dx%d", r, c, s.N(), len(charges)), critical: true}
	}
	ec := make([]float64, c)
	rc := make([]float64, c)
	al := make([]float64, c)
	for j, q := range charges {
		ec[j], rc[j], al[j] = elecParams(q, K)
	}
	g := grid.New(s)
	data := g.Data()
	inBlocks(r, cpus, func(begin, end int) {
		for i := begin; i < end; i++ {
			row := dists.RawRowView(i)
			var sum float64
			for j, d := range row {
				switch {
				case d > rc[j]:
					sum += ec[j] / (d * d)
				case charges[j] > 0:
					sum += K.ElecRepMax - al[j]*d*d
				default:
					sum += K.ElecAttrMax + al[j]*d*d
				}
			}
			data[i] = sum
		}
	})
	return g, nil
}

//VdwGrid fills a lattice of shape s with the van der Waals potential of
//atoms with the given Lennard-Jones well depths (eps, kcal/mol) and
//minimum-energy radii (vdwr, A, before adding K.ProbeRadius). Above each
//atom's cutoff the standard 12-6 form applies; below it, a softcore
//plateau capped at K.SoftcoreMax. Arguments work as in ElecGrid.
//Degenerate parameters (a zero eps, a zero K.SoftcoreMax) are not
//special-cased and propagate whatever the formulas produce.
func VdwGrid(s grid.Shape, dists *mat.Dense, eps, vdwr []float64, K *Constants, cpus int) (*grid.Grid, error) {
	if K == nil {
		K = DefaultConstants()
	}
	r, c := dists.Dims()
	if len(eps) != len(vdwr) {
		return nil, Error{message: fmt.Sprintf("crimm/potential: %d well depths for %d radii", len(eps), len(vdwr)), critical: true}
	}
	if r != s.N() || c != len(eps) || c == 0 {
		return nil, Error{message: fmt.Sprintf("crimm/potential: distance matrix is %dx%d, want %dx%d", r, c, s.N(), len(eps)), critical: true}
	}
	rmin := make([]float64, c)
	esq := make([]float64, c)
	rc := make([]float64, c)
	beta := make([]float64, c)
	for j := range eps {
		rmin[j], esq[j], rc[j], beta[j] = vdwParams(eps[j], vdwr[j], K)
	}
	g := grid.New(s)
	data := g.Data()
	inBlocks(r, cpus, func(begin, end int) {
		for i := begin; i < end; i++ {
			row := dists.RawRowView(i)
			var sum float64
			for j, d := range row {
				if d > rc[j] {
					u := rmin[j] / d
					u2 := u * u
					u6 := u2 * u2 * u2
					sum += esq[j]*u6*u6 - 2*u6
				} else {
					sum += K.SoftcoreMax * (1 - 0.5*math.Pow(d/rc[j], beta[j]))
				}
			}
			data[i] = sum
		}
	})
	return g, nil
}

//inBlocks runs f concurrently on contiguous, disjoint blocks of [0,n),
//one goroutine per block, and waits for all of them.
func inBlocks(n, cpus int, f func(begin, end int)) {
	if n <= 0 {
		return
	}
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	if cpus > n {
		cpus = n
	}
	chunk := n / cpus
	ended := make(chan bool, cpus)
	for w := 0; w < cpus; w++ {
		begin := w * chunk
		end := begin + chunk
		if w == cpus-1 {
			end = n
		}
		go func(begin, end int) {
			f(begin, end)
			ended <- true
		}(begin, end)
	}
	for w := 0; w < cpus; w++ {
		<-ended
	}
}

//Errors

//errDecorate is a helper for the crimm.Error interface.
func errDecorate(err error, caller string) error {
	err2 := err.(crimm.Error) //I know that is the type returned by the functions in this package and wrapped packages.
	err2.Decorate(caller)
	return err2
}

//Error is the concrete error type of the potential package. It fulfills
//the crimm.Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the error,
//and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }
