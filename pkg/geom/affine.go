package geom

import (
	"math"
	"strings"
)

// Affine3 is a 3D affine transform stored row-major as the top three rows
// of a 4x4 matrix: [r00 r01 r02 tx | r10 r11 r12 ty | r20 r21 r22 tz].
type Affine3 struct {
	M [12]float64 `json:"m"`
}

// Identity3 returns the identity transform.
func Identity3() Affine3 {
	return Affine3{M: [12]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}}
}

// Translation3 returns a transform translating by v.
func Translation3(v Vec3) Affine3 {
	return Affine3{M: [12]float64{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
	}}
}

// Scaling3 returns a transform scaling each axis by the matching component
// of v.
func Scaling3(v Vec3) Affine3 {
	return Affine3{M: [12]float64{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
	}}
}

// RotationX3 returns a rotation of angle radians about the X axis.
func RotationX3(angle float64) Affine3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Affine3{M: [12]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
	}}
}

// RotationY3 returns a rotation of angle radians about the Y axis.
func RotationY3(angle float64) Affine3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Affine3{M: [12]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
	}}
}

// RotationZ3 returns a rotation of angle radians about the Z axis.
func RotationZ3(angle float64) Affine3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Affine3{M: [12]float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
	}}
}

// Mul returns the composition a∘b: the transform that applies b first and
// then a.
func (a Affine3) Mul(b Affine3) Affine3 {
	var out Affine3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.M[r*4+c] = a.M[r*4]*b.M[c] + a.M[r*4+1]*b.M[4+c] + a.M[r*4+2]*b.M[8+c]
		}
		out.M[r*4+3] = a.M[r*4]*b.M[3] + a.M[r*4+1]*b.M[7] + a.M[r*4+2]*b.M[11] + a.M[r*4+3]
	}
	return out
}

// Apply transforms the point p.
func (a Affine3) Apply(p Vec3) Vec3 {
	return Vec3{
		a.M[0]*p.X + a.M[1]*p.Y + a.M[2]*p.Z + a.M[3],
		a.M[4]*p.X + a.M[5]*p.Y + a.M[6]*p.Z + a.M[7],
		a.M[8]*p.X + a.M[9]*p.Y + a.M[10]*p.Z + a.M[11],
	}
}

// Determinant returns the determinant of the linear part.
func (a Affine3) Determinant() float64 {
	return a.M[0]*(a.M[5]*a.M[10]-a.M[6]*a.M[9]) -
		a.M[1]*(a.M[4]*a.M[10]-a.M[6]*a.M[8]) +
		a.M[2]*(a.M[4]*a.M[9]-a.M[5]*a.M[8])
}

// Inverse returns the inverse transform. ok is false when the linear part
// is singular.
func (a Affine3) Inverse() (inv Affine3, ok bool) {
	det := a.Determinant()
	if math.Abs(det) < 1e-12 {
		return Affine3{}, false
	}
	d := 1 / det
	// Adjugate of the 3x3 linear part.
	inv.M[0] = (a.M[5]*a.M[10] - a.M[6]*a.M[9]) * d
	inv.M[1] = (a.M[2]*a.M[9] - a.M[1]*a.M[10]) * d
	inv.M[2] = (a.M[1]*a.M[6] - a.M[2]*a.M[5]) * d
	inv.M[4] = (a.M[6]*a.M[8] - a.M[4]*a.M[10]) * d
	inv.M[5] = (a.M[0]*a.M[10] - a.M[2]*a.M[8]) * d
	inv.M[6] = (a.M[2]*a.M[4] - a.M[0]*a.M[6]) * d
	inv.M[8] = (a.M[4]*a.M[9] - a.M[5]*a.M[8]) * d
	inv.M[9] = (a.M[1]*a.M[8] - a.M[0]*a.M[9]) * d
	inv.M[10] = (a.M[0]*a.M[5] - a.M[1]*a.M[4]) * d
	// t' = -inv * t
	inv.M[3] = -(inv.M[0]*a.M[3] + inv.M[1]*a.M[7] + inv.M[2]*a.M[11])
	inv.M[7] = -(inv.M[4]*a.M[3] + inv.M[5]*a.M[7] + inv.M[6]*a.M[11])
	inv.M[11] = -(inv.M[8]*a.M[3] + inv.M[9]*a.M[7] + inv.M[10]*a.M[11])
	return inv, true
}

// IsIdentity reports whether the transform is the identity after rounding.
func (a Affine3) IsIdentity() bool {
	return a.Rounded() == Identity3()
}

// Rounded returns the transform with every entry on the canonical
// precision grid.
func (a Affine3) Rounded() Affine3 {
	var out Affine3
	for i, v := range a.M {
		out.M[i] = Round(v)
	}
	return out
}

func (a Affine3) canon() string {
	var b strings.Builder
	for i, v := range a.M {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(fmtFloat(v))
	}
	return b.String()
}

// Affine2 is a 2D affine transform stored row-major as the top two rows of
// a 3x3 matrix: [r00 r01 tx | r10 r11 ty].
type Affine2 struct {
	M [6]float64 `json:"m"`
}

// Identity2 returns the identity transform.
func Identity2() Affine2 {
	return Affine2{M: [6]float64{1, 0, 0, 0, 1, 0}}
}

// Translation2 returns a transform translating by v.
func Translation2(v Vec2) Affine2 {
	return Affine2{M: [6]float64{1, 0, v.X, 0, 1, v.Y}}
}

// Scaling2 returns a transform scaling each axis by the matching component
// of v.
func Scaling2(v Vec2) Affine2 {
	return Affine2{M: [6]float64{v.X, 0, 0, 0, v.Y, 0}}
}

// Rotation2 returns a rotation of angle radians about the origin.
func Rotation2(angle float64) Affine2 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Affine2{M: [6]float64{c, -s, 0, s, c, 0}}
}

// Mul returns the composition a∘b: the transform that applies b first and
// then a.
func (a Affine2) Mul(b Affine2) Affine2 {
	var out Affine2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out.M[r*3+c] = a.M[r*3]*b.M[c] + a.M[r*3+1]*b.M[3+c]
		}
		out.M[r*3+2] = a.M[r*3]*b.M[2] + a.M[r*3+1]*b.M[5] + a.M[r*3+2]
	}
	return out
}

// Apply transforms the point p.
func (a Affine2) Apply(p Vec2) Vec2 {
	return Vec2{
		a.M[0]*p.X + a.M[1]*p.Y + a.M[2],
		a.M[3]*p.X + a.M[4]*p.Y + a.M[5],
	}
}

// Determinant returns the determinant of the linear part.
func (a Affine2) Determinant() float64 {
	return a.M[0]*a.M[4] - a.M[1]*a.M[3]
}

// Inverse returns the inverse transform. ok is false when the linear part
// is singular.
func (a Affine2) Inverse() (inv Affine2, ok bool) {
	det := a.Determinant()
	if math.Abs(det) < 1e-12 {
		return Affine2{}, false
	}
	d := 1 / det
	inv.M[0] = a.M[4] * d
	inv.M[1] = -a.M[1] * d
	inv.M[3] = -a.M[3] * d
	inv.M[4] = a.M[0] * d
	inv.M[2] = -(inv.M[0]*a.M[2] + inv.M[1]*a.M[5])
	inv.M[5] = -(inv.M[3]*a.M[2] + inv.M[4]*a.M[5])
	return inv, true
}

// IsIdentity reports whether the transform is the identity after rounding.
func (a Affine2) IsIdentity() bool {
	return a.Rounded() == Identity2()
}

// Rounded returns the transform with every entry on the canonical
// precision grid.
func (a Affine2) Rounded() Affine2 {
	var out Affine2
	for i, v := range a.M {
		out.M[i] = Round(v)
	}
	return out
}

func (a Affine2) canon() string {
	var b strings.Builder
	for i, v := range a.M {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(fmtFloat(v))
	}
	return b.String()
}
