package grid

import (
	"fmt"
	"math"

	crimm "github.com/stanislc/crimm"
	v3 "github.com/stanislc/crimm/v3"
)

//Geometry places a lattice in cartesian space: a shape plus the spacing
//between neighboring points and the position of the point 0,0,0. It owns
//the mapping between flat indexes and the coordinates the potential
//generators need.
type Geometry struct {
	shape   Shape
	spacing float64
	origin  [3]float64
}

//NewGeometry returns a geometry for the shape s with the given spacing.
//The origin, if given, is the cartesian position of the lattice point
//0,0,0 (x, y and z, in that order); it defaults to the cartesian origin.
//Returns an error if the spacing is not positive.
func NewGeometry(s Shape, spacing float64, origin ...float64) (*Geometry, error) {
	if spacing <= 0 {
		return nil, Error{fmt.Sprintf("Spacing must be positive, got %4.2f", spacing), []string{"NewGeometry"}, true}
	}
	G := &Geometry{shape: s, spacing: spacing}
	if len(origin) > 0 {
		if len(origin) < 3 {
			return nil, Error{"If an origin is given, it needs all 3 components", []string{"NewGeometry"}, true}
		}
		G.origin = [3]float64{origin[0], origin[1], origin[2]}
	}
	return G, nil
}

//Surround returns a geometry whose lattice covers all the points in coords
//plus a margin on every side, with the given spacing. The lattice is made
//cubic (same extent along the 3 axes) so one roll offset realigns every
//axis of a correlation on it.
func Surround(coords *v3.Matrix, spacing, margin float64) (*Geometry, error) {
	if spacing <= 0 {
		return nil, Error{fmt.Sprintf("Spacing must be positive, got %4.2f", spacing), []string{"Surround"}, true}
	}
	n := coords.NVecs()
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < n; i++ {
		row := coords.RawRowView(i)
		for j := 0; j < 3; j++ {
			lo[j] = math.Min(lo[j], row[j])
			hi[j] = math.Max(hi[j], row[j])
		}
	}
	span := 0.0
	for j := 0; j < 3; j++ {
		lo[j] -= margin
		span = math.Max(span, hi[j]+margin-lo[j])
	}
	ext := int(math.Ceil(span/spacing)) + 1
	s, err := NewShape(ext, ext, ext)
	if err != nil {
		return nil, errDecorate(err, "Surround")
	}
	return NewGeometry(s, spacing, lo[0], lo[1], lo[2])
}

//Shape returns the shape of the lattice.
func (G *Geometry) Shape() Shape {
	return G.shape
}

//Spacing returns the distance between neighboring lattice points.
func (G *Geometry) Spacing() float64 {
	return G.spacing
}

//Origin returns the cartesian position of the lattice point 0,0,0.
func (G *Geometry) Origin() (x, y, z float64) {
	return G.origin[0], G.origin[1], G.origin[2]
}

//Center returns the cartesian center of the lattice as a 1x3 matrix.
func (G *Geometry) Center() *v3.Matrix {
	c := v3.Zeros(1)
	c.Set(0, 0, G.origin[0]+G.spacing*float64(G.shape.NX-1)/2)
	c.Set(0, 1, G.origin[1]+G.spacing*float64(G.shape.NY-1)/2)
	c.Set(0, 2, G.origin[2]+G.spacing*float64(G.shape.NZ-1)/2)
	return c
}

//Point returns the cartesian position of the lattice point with flat index i.
func (G *Geometry) Point(i int) (x, y, z float64) {
	ix, iy, iz := G.shape.XYZ(i)
	x = G.origin[0] + G.spacing*float64(ix)
	y = G.origin[1] + G.spacing*float64(iy)
	z = G.origin[2] + G.spacing*float64(iz)
	return x, y, z
}

//Points returns the cartesian positions of all lattice points as an Nx3
//matrix, in flat-index order. This is the point cloud the distance-field
//builder takes.
func (G *Geometry) Points() *v3.Matrix {
	n := G.shape.N()
	p := v3.Zeros(n)
	for i := 0; i < n; i++ {
		x, y, z := G.Point(i)
		row := p.RawRowView(i)
		row[0], row[1], row[2] = x, y, z
	}
	return p
}

//errDecorate asserts that the error implements crimm.Error and decorates
//it with the caller's name before returning it. If used with an error that
//doesn't implement crimm.Error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(crimm.Error)
	err2.Decorate(caller)
	return err2
}
