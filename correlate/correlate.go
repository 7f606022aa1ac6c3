/*
Package correlate scores batches of ligand orientation grids against
receptor potential grids over every translational offset at once, by
cross-correlating them in frequency space: the receptor spectrum is
conjugated, multiplied into each ligand spectrum, and the product
transformed back. What would be an O(N^2) translational scan per
orientation becomes O(N log N). SumGrids then realigns each correlation
grid by the configured circular roll and folds the scoring channels into
one composite grid per orientation, from which dock.TopN picks the best
poses.
*/
package correlate

import (
	"fmt"
	"math/cmplx"
	"runtime"

	"github.com/stanislc/crimm/grid"
)

//Correlator runs batched correlations on lattices of one fixed shape.
//It owns one transform plan and one spectrum scratch buffer per worker,
//plus the shared receptor spectrum, so the expensive setup happens once
//and a Correlator can be reused across as many batches as needed. It is
//not safe for concurrent use; it parallelizes internally instead.
type Correlator struct {
	shape grid.Shape
	plans []*plan
	rspec []complex128   //receptor spectrum, read-only while workers run
	specs [][]complex128 //per-worker scratch
}

//New returns a Correlator for lattices of shape s running cpus workers.
//Anything below 1 means one worker per logical CPU. The transform plans
//for all workers are built here, serially: building plans concurrently
//is not safe, running them against distinct buffers is.
func New(s grid.Shape, cpus int) (*Correlator, error) {
	if s.N() <= 0 {
		return nil, Error{message: fmt.Sprintf("crimm/correlate: can't build plans for lattice shape %v", s), critical: true}
	}
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	c := &Correlator{shape: s}
	c.plans = make([]*plan, cpus)
	c.specs = make([][]complex128, cpus)
	for i := range c.plans {
		c.plans[i] = newPlan(s)
		c.specs[i] = make([]complex128, c.plans[i].nspec())
	}
	c.rspec = make([]complex128, c.plans[0].nspec())
	return c, nil
}

//Shape returns the lattice shape the Correlator was built for.
func (c *Correlator) Shape() grid.Shape {
	return c.shape
}

//Cpus returns the number of workers the Correlator was built with.
func (c *Correlator) Cpus() int {
	return len(c.plans)
}

//Correlate overwrites, in place, every grid of the batch with the
//circular cross-correlation of that grid against the receptor grid of
//the same channel: after the call, batch.Grid(o,ch) holds at each cell
//the sum of receptor*ligand products over the whole lattice, for the
//translation that cell stands for, with zero translation at cell 0.
//SumGrids re-centers that. Mismatched lattice shapes or channel counts
//are rejected before anything is touched. Orientations are scored in
//parallel, each one entirely by a single worker, so the results do not
//depend on the worker count.
func (c *Correlator) Correlate(recep *grid.Channels, batch *grid.Batch) error {
	if recep.Shape() != c.shape || batch.Shape() != c.shape {
		return Error{message: fmt.Sprintf("crimm/correlate: receptor lattice %v and batch lattice %v must both match the Correlator's %v", recep.Shape(), batch.Shape(), c.shape), critical: true}
	}
	if recep.NChannels() != batch.NChannels() {
		return Error{message: fmt.Sprintf("crimm/correlate: %d receptor channels for a %d-channel batch", recep.NChannels(), batch.NChannels()), critical: true}
	}
	norient := batch.NOrientations()
	scale := 1 / float64(c.shape.N())
	for ch := 0; ch < batch.NChannels(); ch++ {
		c.plans[0].forward(recep.Grid(ch), c.rspec)
		jobs := make(chan int, norient)
		for o := 0; o < norient; o++ {
			jobs <- o
		}
		close(jobs)
		ended := make(chan bool, len(c.plans))
		for w := 0; w < len(c.plans); w++ {
			go func(w int) {
				p := c.plans[w]
				spec := c.specs[w]
				for o := range jobs {
					g := batch.Grid(o, ch)
					p.forward(g, spec)
					cmplxMulConjScale(spec, c.rspec, scale)
					p.inverse(spec, g)
				}
				ended <- true
			}(w)
		}
		for w := 0; w < len(c.plans); w++ {
			<-ended
		}
	}
	return nil
}

//cmplxMulConjScale leaves in dst the product conj(r)*dst*scale, element
//by element. This is the frequency-space form of the spatial
//cross-correlation; scale carries the 1/N the unnormalized transforms
//left behind.
func cmplxMulConjScale(dst, r []complex128, scale float64) {
	if len(dst) != len(r) {
		panic(PanicMsg(fmt.Sprintf("crimm/correlate.cmplxMulConjScale: spectra of different lengths: %d, %d", len(dst), len(r))))
	}
	sc := complex(scale, 0)
	for i, v := range r {
		dst[i] = cmplx.Conj(v) * dst[i] * sc
	}
}

//Errors

//Error is the concrete error type of the correlate package. It fulfills
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

//PanicMsg is the type used for panics from fundamental functions.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
