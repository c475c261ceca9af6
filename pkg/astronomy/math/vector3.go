package math

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vector3 is a cartesian direction on the celestial sphere
type Vector3 struct {
	X, Y, Z float64
}

// FromSpherical returns the unit vector for longitude lon and latitude lat,
// both in degrees.
func FromSpherical(lon, lat float64) Vector3 {
	sl, cl := math.Sincos(lon * math.Pi / 180)
	sb, cb := math.Sincos(lat * math.Pi / 180)
	return Vector3{X: cb * cl, Y: cb * sl, Z: sb}
}

// Spherical returns longitude in [0, 360) and latitude in [-90, 90], degrees
func (v Vector3) Spherical() (lon, lat float64) {
	n := v.Normalize()
	lon = math.Atan2(n.Y, n.X) * 180 / math.Pi
	if lon < 0 {
		lon += 360
	}
	lat = math.Asin(math.Max(-1, math.Min(1, n.Z))) * 180 / math.Pi
	return lon, lat
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Magnitude returns the length of the vector
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	mag := v.Magnitude()
	if mag == 0 {
		return v
	}
	return Vector3{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}

// Rotation is a 3x3 frame rotation
type Rotation struct {
	m *mat.Dense
}

// NewRotation builds a rotation from row-major elements
func NewRotation(rows [9]float64) Rotation {
	return Rotation{m: mat.NewDense(3, 3, rows[:])}
}

// Apply rotates v into the target frame
func (r Rotation) Apply(v Vector3) Vector3 {
	var out mat.VecDense
	out.MulVec(r.m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return Vector3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// Inverse returns the reverse rotation, which for an orthogonal matrix is
// its transpose.
func (r Rotation) Inverse() Rotation {
	var t mat.Dense
	t.CloneFrom(r.m.T())
	return Rotation{m: &t}
}
