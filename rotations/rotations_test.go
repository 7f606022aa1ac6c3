package rotations

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/stanislc/crimm/v3"
)

func TestUniform(Te *testing.T) {
	fmt.Println("TestUniform!")
	a := Uniform(20, 42)
	b := Uniform(20, 42)
	c := Uniform(20, 7)
	differ := false
	for i := range a {
		if a[i] != b[i] {
			Te.Errorf("orientation %d changed between runs with the same seed", i)
		}
		if a[i] != c[i] {
			differ = true
		}
		if r := quat.Abs(a[i]); math.Abs(r-1) > 1e-12 {
			Te.Errorf("orientation %d has norm %v", i, r)
		}
	}
	if !differ {
		Te.Error("different seeds produced the same orientations")
	}
}

func TestMatrixOrthonormal(Te *testing.T) {
	fmt.Println("TestMatrixOrthonormal!")
	for i, q := range Uniform(10, 1) {
		R := Matrix(q)
		var RtR mat.Dense
		RtR.Mul(R.T(), R)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				want := 0.0
				if r == c {
					want = 1
				}
				if math.Abs(RtR.At(r, c)-want) > 1e-12 {
					Te.Errorf("orientation %d: R^T R differs from identity at (%d,%d): %v", i, r, c, RtR.At(r, c))
				}
			}
		}
		if det := mat.Det(R); math.Abs(det-1) > 1e-12 {
			Te.Errorf("orientation %d: determinant %v, want 1", i, det)
		}
	}
}

func TestKnownRotations(Te *testing.T) {
	fmt.Println("TestKnownRotations!")
	zaxis, err := v3.NewMatrix([]float64{0, 0, 1})
	if err != nil {
		Te.Fatal(err)
	}
	qz, err := FromAxisAngle(zaxis, math.Pi/2)
	if err != nil {
		Te.Fatal(err)
	}
	x, err := v3.NewMatrix([]float64{1, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	out := v3.Zeros(1)
	if err := Rotate(out, x, qz); err != nil {
		Te.Fatal(err)
	}
	fmt.Println("x rotated 90 degrees around z:", out)
	want := []float64{0, 1, 0}
	for j, v := range want {
		if math.Abs(out.At(0, j)-v) > 1e-12 {
			Te.Errorf("component %d: got %v, want %v", j, out.At(0, j), v)
		}
	}
	//two quarter turns are a half turn
	if err := Rotate(out, x, Compose(qz, qz)); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(out.At(0, 0)+1) > 1e-12 || math.Abs(out.At(0, 1)) > 1e-12 {
		Te.Errorf("half turn took x to (%v,%v,%v)", out.At(0, 0), out.At(0, 1), out.At(0, 2))
	}
	if err := Rotate(out, x, Identity()); err != nil {
		Te.Fatal(err)
	}
	if out.At(0, 0) != 1 || out.At(0, 1) != 0 || out.At(0, 2) != 0 {
		Te.Error("the identity rotation moved something")
	}
	if _, err := FromAxisAngle(v3.Zeros(1), 1); err == nil {
		Te.Error("zero axis not rejected")
	}
}

func TestRotateAbout(Te *testing.T) {
	fmt.Println("TestRotateAbout!")
	coords, err := v3.NewMatrix([]float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
	})
	if err != nil {
		Te.Fatal(err)
	}
	center := coords.Mean()
	q := Uniform(1, 5)[0]
	dst := v3.Zeros(3)
	if err := RotateAbout(dst, coords, center, q); err != nil {
		Te.Fatal(err)
	}
	newCenter := dst.Mean()
	for j := 0; j < 3; j++ {
		if math.Abs(newCenter.At(0, j)-center.At(0, j)) > 1e-10 {
			Te.Errorf("rotating about the centroid moved it: %v vs %v", newCenter, center)
		}
	}
	dist := func(M *v3.Matrix, i, j int) float64 {
		a, b := M.RawRowView(i), M.RawRowView(j)
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	for _, p := range [][2]int{{0, 1}, {0, 2}, {1, 2}} {
		before := dist(coords, p[0], p[1])
		after := dist(dst, p[0], p[1])
		if math.Abs(before-after) > 1e-10 {
			Te.Errorf("distance %v changed from %v to %v", p, before, after)
		}
	}
	if err := RotateAbout(v3.Zeros(2), coords, center, q); err == nil {
		Te.Error("size mismatch not rejected")
	}
	if err := RotateAbout(dst, coords, coords, q); err == nil {
		Te.Error("multi-row center not rejected")
	}
}
