/*
Package dock drives a rigid docking run end to end: receptor potential
lattices, ligand orientation batches, the correlation over every
translation at once, and the selection of the best poses. The heavy
machinery lives in crimm/potential and crimm/correlate; Docker wires it
together the way a host script would, one receptor against as many
ligand batches as needed.
*/
package dock

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/num/quat"

	"github.com/stanislc/crimm"
	"github.com/stanislc/crimm/correlate"
	"github.com/stanislc/crimm/grid"
	"github.com/stanislc/crimm/potential"
	"github.com/stanislc/crimm/rotations"
	"github.com/stanislc/crimm/v3"
)

//Options for a docking run. The zero value is not useful; start from
//DefaultOptions.
type Options struct {
	Cpus      int                  //goroutines for grid generation and correlation
	TopPoses  int                  //how many poses Dock returns, at most
	Roll      int                  //realignment offset; anything below 0 means extent-1
	Constants *potential.Constants //nil means potential.DefaultConstants()
}

//DefaultOptions returns the options a plain docking run wants: all
//CPUs, ten poses, the customary realignment and the default physical
//constants.
func DefaultOptions() *Options {
	return &Options{
		Cpus:     runtime.NumCPU(),
		TopPoses: 10,
		Roll:     -1,
	}
}

//Docker holds everything reusable of a docking setup against one
//receptor: its potential channels on the lattice, the transform plans
//and the realignment offset. Build it once, then Dock as many
//orientation batches as needed. A Docker is not safe for concurrent
//use; it parallelizes internally instead.
type Docker struct {
	geo   *grid.Geometry
	recep *grid.Channels
	corr  *correlate.Correlator
	roll  int
	top   int
	cpus  int
}

//New builds a Docker for the receptor on the given lattice: the
//distance field between every lattice point and every receptor atom,
//the electrostatic and van der Waals channels derived from it, and the
//correlation plans. The distance field, the dominant memory cost of the
//pipeline, only lives within this call.
func New(receptor *crimm.Structure, geo *grid.Geometry, o *Options) (*Docker, error) {
	if o == nil {
		o = DefaultOptions()
	}
	s := geo.Shape()
	D := potential.DistanceMatrix(geo.Points(), receptor.Coords(), o.Cpus)
	elec, err := potential.ElecGrid(s, D, receptor.Charges(), o.Constants, o.Cpus)
	if err != nil {
		return nil, errDecorate(err, "dock.New")
	}
	vdw, err := potential.VdwGrid(s, D, receptor.Epsilons(), receptor.VdwRadii(), o.Constants, o.Cpus)
	if err != nil {
		return nil, errDecorate(err, "dock.New")
	}
	recep, err := grid.ChannelsFrom(elec, vdw)
	if err != nil {
		return nil, errDecorate(err, "dock.New")
	}
	corr, err := correlate.New(s, o.Cpus)
	if err != nil {
		return nil, errDecorate(err, "dock.New")
	}
	roll := o.Roll
	if roll < 0 {
		roll = correlate.DefaultRoll(s)
	}
	top := o.TopPoses
	if top < 1 {
		top = 1
	}
	cpus := o.Cpus
	if cpus < 1 {
		cpus = runtime.NumCPU()
	}
	return &Docker{geo: geo, recep: recep, corr: corr, roll: roll, top: top, cpus: cpus}, nil
}

//Geometry returns the lattice the Docker scores on.
func (Dk *Docker) Geometry() *grid.Geometry {
	return Dk.geo
}

//Channels returns the receptor potential channels, electrostatic first.
//They are live: feeding them to something that writes would corrupt
//every later Dock.
func (Dk *Docker) Channels() *grid.Channels {
	return Dk.recep
}

//Roll returns the realignment offset in use.
func (Dk *Docker) Roll() int {
	return Dk.roll
}

//Dock scores the ligand, rotated about its centroid by every quaternion
//of orientations, against the receptor over every lattice translation,
//and returns the best poses, most favorable first. At most TopPoses
//poses come back, fewer if the batch has fewer scored cells than that.
func (Dk *Docker) Dock(ligand *crimm.Structure, orientations []quat.Number) ([]Pose, error) {
	if len(orientations) == 0 {
		return nil, Error{message: "crimm/dock: no orientations to score", critical: true}
	}
	s := Dk.geo.Shape()
	batch, err := grid.NewBatch(s, len(orientations), Dk.recep.NChannels())
	if err != nil {
		return nil, errDecorate(err, "dock.Dock")
	}
	charges := ligand.Charges()
	wvdw := potential.VdwWeights(ligand.Epsilons())
	center := ligand.Coords().Mean()
	rotated := v3.Zeros(ligand.Len())
	for o, q := range orientations {
		if err := rotations.RotateAbout(rotated, ligand.Coords(), center, q); err != nil {
			return nil, errDecorate(err, "dock.Dock")
		}
		if err := potential.ProjectInto(batch.Grid(o, 0), Dk.geo, rotated, charges); err != nil {
			return nil, errDecorate(err, "dock.Dock")
		}
		if err := potential.ProjectInto(batch.Grid(o, 1), Dk.geo, rotated, wvdw); err != nil {
			return nil, errDecorate(err, "dock.Dock")
		}
	}
	if err := Dk.corr.Correlate(Dk.recep, batch); err != nil {
		return nil, errDecorate(err, "dock.Dock")
	}
	composite := make([]*grid.Grid, len(orientations))
	for i := range composite {
		composite[i] = grid.New(s)
	}
	if err := correlate.SumGrids(batch, Dk.roll, composite, Dk.cpus); err != nil {
		return nil, errDecorate(err, "dock.Dock")
	}
	N := s.N()
	flat := make([]float64, len(orientations)*N)
	for o, g := range composite {
		copy(flat[o*N:(o+1)*N], g.Data())
	}
	n := Dk.top
	if n > len(flat) {
		n = len(flat)
	}
	best, err := TopN(flat, n)
	if err != nil {
		return nil, errDecorate(err, "dock.Dock")
	}
	return posesFrom(best, s, Dk.roll), nil
}

//Place returns a copy of the ligand moved into the pose: rotated about
//its centroid by the pose's orientation quaternion and translated by
//the pose's shift scaled to the lattice spacing. orientations must be
//the slice the pose came from. Shifts large enough to wrap the lattice
//land on the periodic image, just as their scores did; a lattice built
//with enough margin around the receptor keeps real poses away from
//that.
func (Dk *Docker) Place(ligand *crimm.Structure, orientations []quat.Number, P Pose) (*crimm.Structure, error) {
	if P.Orientation < 0 || P.Orientation >= len(orientations) {
		return nil, Error{message: fmt.Sprintf("crimm/dock: pose orientation %d outside the %d sampled", P.Orientation, len(orientations)), critical: true}
	}
	out := ligand.Copy()
	coords := out.Coords()
	center := coords.Mean()
	if err := rotations.RotateAbout(coords, coords, center, orientations[P.Orientation]); err != nil {
		return nil, errDecorate(err, "dock.Place")
	}
	coords.AddVec(coords, P.Offset(Dk.geo.Spacing()))
	return out, nil
}

//Errors

//errDecorate is a helper for the crimm.Error interface.
func errDecorate(err error, caller string) error {
	err2 := err.(crimm.Error) //I know that is the type returned by the functions in this module.
	err2.Decorate(caller)
	return err2
}

//Error is the concrete error type of the dock package. It fulfills the
//crimm.Error interface.
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
