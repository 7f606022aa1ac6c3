//Package grid provides the value types for the 3D lattices used through
//the crimm library: the scalar potential and score grids, the per-channel
//sets consumed by the correlation engine, and the orientation batches it
//mutates in place. A grid always carries its own shape, so mismatches
//between grids are construction-time errors instead of silent corruption
//in some numeric loop.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

//Shape is the extent of a 3D lattice. Flattening is row-major:
//index = x*NY*NZ + y*NZ + z.
type Shape struct {
	NX, NY, NZ int
}

//NewShape returns a shape with the given extents, or an error if any
//of them is not positive.
func NewShape(nx, ny, nz int) (Shape, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return Shape{}, Error{fmt.Sprintf("Extents must be positive, got %d, %d, %d", nx, ny, nz), []string{"NewShape"}, true}
	}
	return Shape{nx, ny, nz}, nil
}

//N returns the total number of lattice points.
func (s Shape) N() int {
	return s.NX * s.NY * s.NZ
}

//Check checks that the given lattice coordinates are within range.
//If pan is given and true, it panics on an out-of-range coordinate,
//otherwise it returns an error.
func (s Shape) Check(x, y, z int, pan ...bool) error {
	p := len(pan) > 0 && pan[0]
	var err error
	if x < 0 || x >= s.NX || y < 0 || y >= s.NY || z < 0 || z >= s.NZ {
		err = Error{fmt.Sprintf("Lattice point %d,%d,%d out of the %dx%dx%d lattice", x, y, z, s.NX, s.NY, s.NZ), []string{"Check"}, true}
	}
	if err != nil && p {
		panic(PanicMsg("crimm/grid: " + err.Error()))
	}
	return err
}

//Idx returns the flat index of the lattice point x,y,z. Panics if
//the point is outside the lattice.
func (s Shape) Idx(x, y, z int) int {
	s.Check(x, y, z, true)
	return x*s.NY*s.NZ + y*s.NZ + z
}

//XYZ returns the lattice coordinates of the flat index i.
func (s Shape) XYZ(i int) (x, y, z int) {
	if i < 0 || i >= s.N() {
		panic(PanicMsg(fmt.Sprintf("crimm/grid: flat index %d out of range for %d lattice points", i, s.N())))
	}
	x = i / (s.NY * s.NZ)
	y = (i % (s.NY * s.NZ)) / s.NZ
	z = i % s.NZ
	return x, y, z
}

//Grid is one real scalar value per lattice point.
type Grid struct {
	shape Shape
	data  []float64
}

//New returns a zero-filled grid with the given shape.
func New(s Shape) *Grid {
	return &Grid{shape: s, data: make([]float64, s.N())}
}

//FromSlice wraps the given flat slice into a grid of shape s. The slice
//is not copied. It returns an error if the length doesn't match the shape.
func FromSlice(s Shape, data []float64) (*Grid, error) {
	if len(data) != s.N() {
		return nil, Error{fmt.Sprintf("Slice of length %d can't fill a %dx%dx%d lattice", len(data), s.NX, s.NY, s.NZ), []string{"FromSlice"}, true}
	}
	return &Grid{shape: s, data: data}, nil
}

//Shape returns the shape of the grid.
func (g *Grid) Shape() Shape {
	return g.shape
}

//Data returns the backing slice of the grid, in row-major order. The
//slice is not copied.
func (g *Grid) Data() []float64 {
	return g.data
}

//At returns the value at the lattice point x,y,z.
func (g *Grid) At(x, y, z int) float64 {
	return g.data[g.shape.Idx(x, y, z)]
}

//Set sets the value at the lattice point x,y,z.
func (g *Grid) Set(x, y, z int, v float64) {
	g.data[g.shape.Idx(x, y, z)] = v
}

//AtIdx returns the value at the flat index i.
func (g *Grid) AtIdx(i int) float64 {
	return g.data[i]
}

//Fill sets every value of the grid to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

//Copy returns a new grid with the same shape and values.
func (g *Grid) Copy() *Grid {
	n := New(g.shape)
	copy(n.data, g.data)
	return n
}

//CopyFrom copies the values of o into the receiver. Returns an error
//if the shapes differ.
func (g *Grid) CopyFrom(o *Grid) error {
	if g.shape != o.shape {
		return Error{ShapeMismatch, []string{"CopyFrom"}, true}
	}
	copy(g.data, o.data)
	return nil
}

//Scale multiplies every value of the grid by f.
func (g *Grid) Scale(f float64) {
	floats.Scale(f, g.data)
}

//Add adds o to the receiver element-wise. Returns an error if the
//shapes differ.
func (g *Grid) Add(o *Grid) error {
	if g.shape != o.shape {
		return Error{ShapeMismatch, []string{"Add"}, true}
	}
	floats.Add(g.data, o.data)
	return nil
}

//EqualApprox returns whether the receiver and o have the same shape and
//element-wise equal values within the absolute tolerance tol.
func (g *Grid) EqualApprox(o *Grid, tol float64) bool {
	return g.shape == o.shape && floats.EqualApprox(g.data, o.data, tol)
}

//Channels is a set of grids, one per grid-type channel, all sharing one
//shape. It is the receptor-side input of the correlation engine.
type Channels struct {
	shape Shape
	g     []*Grid
}

//NewChannels returns a set of n zero-filled grids of shape s.
func NewChannels(s Shape, n int) *Channels {
	c := &Channels{shape: s, g: make([]*Grid, n)}
	for i := range c.g {
		c.g[i] = New(s)
	}
	return c
}

//ChannelsFrom collects the given grids into a channel set. It returns an
//error if no grid is given or the shapes are not all the same.
func ChannelsFrom(gs ...*Grid) (*Channels, error) {
	if len(gs) == 0 {
		return nil, Error{"No grids given", []string{"ChannelsFrom"}, true}
	}
	s := gs[0].Shape()
	for i, v := range gs {
		if v.Shape() != s {
			return nil, Error{fmt.Sprintf("Grid %d has shape %v, the first grid has %v", i, v.Shape(), s), []string{"ChannelsFrom"}, true}
		}
	}
	c := make([]*Grid, len(gs))
	copy(c, gs)
	return &Channels{shape: s, g: c}, nil
}

//Shape returns the common shape of the channel grids.
func (c *Channels) Shape() Shape {
	return c.shape
}

//NChannels returns the number of channels.
func (c *Channels) NChannels() int {
	return len(c.g)
}

//Grid returns the grid for channel i. Panics if out of range.
func (c *Channels) Grid(i int) *Grid {
	if i < 0 || i >= len(c.g) {
		panic(PanicMsg(fmt.Sprintf("crimm/grid: channel %d out of range, %d channels", i, len(c.g))))
	}
	return c.g[i]
}

//Batch holds one grid per orientation and channel, all with the same
//shape. The correlation engine overwrites each grid in place with its
//correlation result.
type Batch struct {
	shape        Shape
	norient, nch int
	g            []*Grid //orientation-major
}

//NewBatch returns a batch of norient x nch zero-filled grids of shape s.
//Returns an error if either count is not positive.
func NewBatch(s Shape, norient, nch int) (*Batch, error) {
	if norient < 1 || nch < 1 {
		return nil, Error{fmt.Sprintf("Need at least one orientation and one channel, got %d, %d", norient, nch), []string{"NewBatch"}, true}
	}
	b := &Batch{shape: s, norient: norient, nch: nch, g: make([]*Grid, norient*nch)}
	for i := range b.g {
		b.g[i] = New(s)
	}
	return b, nil
}

//returns the index in the grid slice given the orientation and
//channel indexes. Just to avoid fixing it in many places if I screw up.
func (b *Batch) oc2i(orient, ch int) int {
	if orient < 0 || orient >= b.norient || ch < 0 || ch >= b.nch {
		panic(PanicMsg(fmt.Sprintf("crimm/grid: orientation %d, channel %d out of range for a %dx%d batch", orient, ch, b.norient, b.nch)))
	}
	return b.nch*orient + ch
}

//Shape returns the common shape of the batch grids.
func (b *Batch) Shape() Shape {
	return b.shape
}

//NOrientations returns the number of orientations in the batch.
func (b *Batch) NOrientations() int {
	return b.norient
}

//NChannels returns the number of channels per orientation.
func (b *Batch) NChannels() int {
	return b.nch
}

//Grid returns the grid for the given orientation and channel.
//Panics if either index is out of range.
func (b *Batch) Grid(orient, ch int) *Grid {
	return b.g[b.oc2i(orient, ch)]
}

//Errors

//Error is the concrete error type of the grid package. It fulfills the
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

//PanicMsg is the type used for panics from fundamental functions.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ShapeMismatch = "Grids don't share the same shape"
)
