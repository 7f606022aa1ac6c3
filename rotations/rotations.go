/*
Package rotations samples and applies the rigid rotations that make up
the orientation dimension of a docking batch. Orientations are kept as
quaternions and only expanded to matrices at application time.
*/
package rotations

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/stanislc/crimm/v3"
)

//Identity returns the quaternion that rotates nothing.
func Identity() quat.Number {
	return quat.Number{Real: 1}
}

//Uniform returns n rotations drawn uniformly over rotation space by the
//subgroup algorithm, from a generator seeded with seed, so a batch can
//be reproduced exactly.
func Uniform(n int, seed int64) []quat.Number {
	r := rand.New(rand.NewSource(seed))
	qs := make([]quat.Number, n)
	for i := range qs {
		u1 := r.Float64()
		u2 := 2 * math.Pi * r.Float64()
		u3 := 2 * math.Pi * r.Float64()
		s1 := math.Sqrt(1 - u1)
		s2 := math.Sqrt(u1)
		qs[i] = quat.Number{
			Real: s2 * math.Cos(u3),
			Imag: s1 * math.Sin(u2),
			Jmag: s1 * math.Cos(u2),
			Kmag: s2 * math.Sin(u3),
		}
	}
	return qs
}

//FromAxisAngle returns the rotation of angle radians, counterclockwise,
//around the axis given as a 1x3 vector, which doesn't need to be
//normalized.
func FromAxisAngle(axis *v3.Matrix, angle float64) (quat.Number, error) {
	if axis.NVecs() != 1 {
		return quat.Number{}, Error{message: fmt.Sprintf("crimm/rotations: the axis must be a single vector, not %d", axis.NVecs()), critical: true}
	}
	ax := axis.RawRowView(0)
	n := math.Sqrt(ax[0]*ax[0] + ax[1]*ax[1] + ax[2]*ax[2])
	if n == 0 {
		return quat.Number{}, Error{message: "crimm/rotations: can't rotate around a zero axis", critical: true}
	}
	s := math.Sin(angle/2) / n
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: s * ax[0],
		Jmag: s * ax[1],
		Kmag: s * ax[2],
	}, nil
}

//Compose returns the rotation equivalent to applying b first and then a.
func Compose(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

//Matrix expands q, normalized first, into its 3x3 rotation matrix, which
//rotates column vectors. The zero quaternion produces NaNs; that's the
//caller's problem.
func Matrix(q quat.Number) *mat.Dense {
	a := quat.Abs(q)
	w, x, y, z := q.Real/a, q.Imag/a, q.Jmag/a, q.Kmag/a
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

//Rotate puts in dst the rows of coords rotated by q around the origin.
//dst may be coords itself.
func Rotate(dst, coords *v3.Matrix, q quat.Number) error {
	return RotateAbout(dst, coords, v3.Zeros(1), q)
}

//RotateAbout puts in dst the rows of coords rotated by q around the
//point center, a 1x3 vector. dst may be coords itself.
func RotateAbout(dst, coords, center *v3.Matrix, q quat.Number) error {
	n := coords.NVecs()
	if dst.NVecs() != n {
		return Error{message: fmt.Sprintf("crimm/rotations: %d destination vectors for %d coordinates", dst.NVecs(), n), critical: true}
	}
	if center.NVecs() != 1 {
		return Error{message: fmt.Sprintf("crimm/rotations: the center must be a single vector, not %d", center.NVecs()), critical: true}
	}
	R := Matrix(q)
	r := R.RawMatrix().Data
	c := center.RawRowView(0)
	cx, cy, cz := c[0], c[1], c[2]
	for i := 0; i < n; i++ {
		row := coords.RawRowView(i)
		vx := row[0] - cx
		vy := row[1] - cy
		vz := row[2] - cz
		d := dst.RawRowView(i)
		d[0] = r[0]*vx + r[1]*vy + r[2]*vz + cx
		d[1] = r[3]*vx + r[4]*vy + r[5]*vz + cy
		d[2] = r[6]*vx + r[7]*vy + r[8]*vz + cz
	}
	return nil
}

//Errors

//Error is the concrete error type of the rotations package. It fulfills
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
