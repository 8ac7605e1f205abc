package geom

import (
	"math"
	"strconv"
)

// Precision is the canonical rounding unit applied to every numeric field
// before hashing and equality comparison. Two trees whose coordinates differ
// by less than half this amount are the same tree as far as the cache is
// concerned. This is part of the cache-correctness contract: change it and
// previously equal trees may stop colliding.
const Precision = 1e-6

// Round maps x onto the canonical precision grid.
func Round(x float64) float64 {
	r := math.Round(x/Precision) * Precision
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}

// fmtFloat renders a rounded float in its shortest exact form. Used when
// building canonical identity strings.
func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) rounded() Vec2 { return Vec2{Round(v.X), Round(v.Y)} }

func (v Vec2) canon() string { return fmtFloat(v.X) + "," + fmtFloat(v.Y) }

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec3) rounded() Vec3 { return Vec3{Round(v.X), Round(v.Y), Round(v.Z)} }

func (v Vec3) canon() string {
	return fmtFloat(v.X) + "," + fmtFloat(v.Y) + "," + fmtFloat(v.Z)
}

// Plane describes the half-space {p : Normal·p <= Offset}. Trim keeps the
// portion of a solid inside the half-space.
type Plane struct {
	Normal Vec3    `json:"normal"`
	Offset float64 `json:"offset"`
}

// normalized scales the plane so its normal has unit length, which makes
// equivalent planes canonically identical. Returns ok=false for a
// zero-length normal.
func (p Plane) normalized() (Plane, bool) {
	l := p.Normal.Length()
	if l < Precision {
		return p, false
	}
	return Plane{Normal: p.Normal.Scale(1 / l).rounded(), Offset: Round(p.Offset / l)}, true
}

// Material is advisory metadata attached to parts of an evaluated result.
type Material struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
