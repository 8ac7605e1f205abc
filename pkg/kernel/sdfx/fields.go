package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
)

// Compile-time interface checks.
var (
	_ sdf.SDF3 = (*transformedSDF3)(nil)
	_ sdf.SDF2 = (*transformedSDF2)(nil)
	_ sdf.SDF2 = (*offsetSDF2)(nil)
	_ sdf.SDF2 = (*sliceSDF2)(nil)
	_ sdf.SDF3 = (*extrudeSDF3)(nil)
	_ sdf.SDF3 = (*revolveSDF3)(nil)
	_ sdf.SDF3 = (*trimSDF3)(nil)
)

// transformedSDF3 evaluates the wrapped field at inverse-transformed
// points. For non-rigid transforms the result is a distance bound, not an
// exact distance; the zero level set is still exact.
type transformedSDF3 struct {
	s   sdf.SDF3
	inv geom.Affine3
	bb  sdf.Box3
}

func (t *transformedSDF3) Evaluate(p v3.Vec) float64 {
	q := t.inv.Apply(geom.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	return t.s.Evaluate(v3.Vec{X: q.X, Y: q.Y, Z: q.Z})
}

func (t *transformedSDF3) BoundingBox() sdf.Box3 { return t.bb }

type transformedSDF2 struct {
	s   sdf.SDF2
	inv geom.Affine2
	bb  sdf.Box2
}

func (t *transformedSDF2) Evaluate(p v2.Vec) float64 {
	q := t.inv.Apply(geom.Vec2{X: p.X, Y: p.Y})
	return t.s.Evaluate(v2.Vec{X: q.X, Y: q.Y})
}

func (t *transformedSDF2) BoundingBox() sdf.Box2 { return t.bb }

// offsetSDF2 shifts the distance field by delta: positive delta grows the
// shape, negative shrinks it.
type offsetSDF2 struct {
	s     sdf.SDF2
	delta float64
	bb    sdf.Box2
}

func (o *offsetSDF2) Evaluate(p v2.Vec) float64 {
	return o.s.Evaluate(p) - o.delta
}

func (o *offsetSDF2) BoundingBox() sdf.Box2 { return o.bb }

// sliceSDF2 is the planar cross-section of a solid at height z.
type sliceSDF2 struct {
	s  sdf.SDF3
	z  float64
	bb sdf.Box2
}

func (s *sliceSDF2) Evaluate(p v2.Vec) float64 {
	return s.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: s.z})
}

func (s *sliceSDF2) BoundingBox() sdf.Box2 { return s.bb }

// extrudeSDF3 is the linear extrusion of a shape from z=0 to z=h.
type extrudeSDF3 struct {
	s  sdf.SDF2
	h  float64
	bb sdf.Box3
}

func (e *extrudeSDF3) Evaluate(p v3.Vec) float64 {
	d2 := e.s.Evaluate(v2.Vec{X: p.X, Y: p.Y})
	dz := math.Abs(p.Z-e.h/2) - e.h/2
	return math.Max(d2, dz)
}

func (e *extrudeSDF3) BoundingBox() sdf.Box3 { return e.bb }

// revolveSDF3 revolves a profile about the Z axis. The profile's X axis is
// the radius and its Y axis runs along Z. For a partial angle the solid is
// bounded by the two wedge half-planes at 0 and angle.
type revolveSDF3 struct {
	s     sdf.SDF2
	angle float64
	bb    sdf.Box3
}

func (r *revolveSDF3) Evaluate(p v3.Vec) float64 {
	d := r.s.Evaluate(v2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z})
	if r.angle >= 2*math.Pi {
		return d
	}
	// Signed distances to the two bounding half-planes of the wedge.
	// The start plane has inward normal +Y; the end plane is the start
	// plane rotated by angle.
	da := -p.Y
	sa, ca := math.Sin(r.angle), math.Cos(r.angle)
	db := -sa*p.X + ca*p.Y
	var dw float64
	if r.angle <= math.Pi {
		dw = math.Max(da, db)
	} else {
		dw = math.Min(da, db)
	}
	return math.Max(d, dw)
}

func (r *revolveSDF3) BoundingBox() sdf.Box3 { return r.bb }

// trimSDF3 intersects a solid with the half-space Normal·p <= Offset.
type trimSDF3 struct {
	s     sdf.SDF3
	plane geom.Plane
	bb    sdf.Box3
}

func (t *trimSDF3) Evaluate(p v3.Vec) float64 {
	d := t.s.Evaluate(p)
	n := t.plane.Normal
	dp := n.X*p.X + n.Y*p.Y + n.Z*p.Z - t.plane.Offset
	return math.Max(d, dp)
}

func (t *trimSDF3) BoundingBox() sdf.Box3 { return t.bb }

// transformBox3 maps an axis-aligned box through an affine transform and
// returns the bounding box of the eight transformed corners.
func transformBox3(bb sdf.Box3, m geom.Affine3) sdf.Box3 {
	first := true
	var out sdf.Box3
	for _, x := range [2]float64{bb.Min.X, bb.Max.X} {
		for _, y := range [2]float64{bb.Min.Y, bb.Max.Y} {
			for _, z := range [2]float64{bb.Min.Z, bb.Max.Z} {
				q := m.Apply(geom.Vec3{X: x, Y: y, Z: z})
				if first {
					out.Min = v3.Vec{X: q.X, Y: q.Y, Z: q.Z}
					out.Max = out.Min
					first = false
					continue
				}
				out.Min.X = math.Min(out.Min.X, q.X)
				out.Min.Y = math.Min(out.Min.Y, q.Y)
				out.Min.Z = math.Min(out.Min.Z, q.Z)
				out.Max.X = math.Max(out.Max.X, q.X)
				out.Max.Y = math.Max(out.Max.Y, q.Y)
				out.Max.Z = math.Max(out.Max.Z, q.Z)
			}
		}
	}
	return out
}

// transformBox2 is the 2D analogue of transformBox3.
func transformBox2(bb sdf.Box2, m geom.Affine2) sdf.Box2 {
	first := true
	var out sdf.Box2
	for _, x := range [2]float64{bb.Min.X, bb.Max.X} {
		for _, y := range [2]float64{bb.Min.Y, bb.Max.Y} {
			q := m.Apply(geom.Vec2{X: x, Y: y})
			if first {
				out.Min = v2.Vec{X: q.X, Y: q.Y}
				out.Max = out.Min
				first = false
				continue
			}
			out.Min.X = math.Min(out.Min.X, q.X)
			out.Min.Y = math.Min(out.Min.Y, q.Y)
			out.Max.X = math.Max(out.Max.X, q.X)
			out.Max.Y = math.Max(out.Max.Y, q.Y)
		}
	}
	return out
}

// expandBox2 grows a box by delta on every side. Negative deltas shrink it
// but never past its center.
func expandBox2(bb sdf.Box2, delta float64) sdf.Box2 {
	cx := (bb.Min.X + bb.Max.X) / 2
	cy := (bb.Min.Y + bb.Max.Y) / 2
	hx := math.Max((bb.Max.X-bb.Min.X)/2+delta, 0)
	hy := math.Max((bb.Max.Y-bb.Min.Y)/2+delta, 0)
	return sdf.Box2{
		Min: v2.Vec{X: cx - hx, Y: cy - hy},
		Max: v2.Vec{X: cx + hx, Y: cy + hy},
	}
}
