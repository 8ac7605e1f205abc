package geom

import (
	"fmt"
	"math"
	"strings"
)

// The constructors below canonicalize inline rather than in a separate
// simplification pass. The rules are load-bearing: they are what make
// structurally different but semantically identical trees hash to the same
// cache identity.

var emptyNode = newNode(KindEmpty, DimAny, nil, nil, "empty")

// Empty returns the canonical empty node. It is dimension-neutral and
// participates in any boolean combination.
func Empty() *Node { return emptyNode }

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// Box returns an axis-aligned box with its minimum corner at the origin.
// Degenerate sizes collapse to empty.
func Box(size Vec3) *Node {
	size = size.rounded()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return Empty()
	}
	return newNode(KindShape, Dim3, BoxData{Size: size}, nil,
		"box("+size.canon()+")")
}

// Sphere returns a sphere centered at the origin. A non-positive radius
// collapses to empty.
func Sphere(radius float64) *Node {
	radius = Round(radius)
	if radius <= 0 {
		return Empty()
	}
	return newNode(KindShape, Dim3, SphereData{Radius: radius}, nil,
		"sphere("+fmtFloat(radius)+")")
}

// Cylinder returns a cylinder along the Z axis centered at the origin.
// Degenerate dimensions collapse to empty.
func Cylinder(height, radius float64) *Node {
	height, radius = Round(height), Round(radius)
	if height <= 0 || radius <= 0 {
		return Empty()
	}
	return newNode(KindShape, Dim3, CylinderData{Height: height, Radius: radius}, nil,
		"cylinder("+fmtFloat(height)+","+fmtFloat(radius)+")")
}

// Rect returns an axis-aligned rectangle with its minimum corner at the
// origin. Degenerate sizes collapse to empty.
func Rect(size Vec2) *Node {
	size = size.rounded()
	if size.X <= 0 || size.Y <= 0 {
		return Empty()
	}
	return newNode(KindShape, Dim2, RectData{Size: size}, nil,
		"rect("+size.canon()+")")
}

// Circle returns a circle centered at the origin. A non-positive radius
// collapses to empty.
func Circle(radius float64) *Node {
	radius = Round(radius)
	if radius <= 0 {
		return Empty()
	}
	return newNode(KindShape, Dim2, CircleData{Radius: radius}, nil,
		"circle("+fmtFloat(radius)+")")
}

// Polygon returns a simple polygon from the given vertices. Fewer than
// three points cannot enclose area and collapse to empty.
func Polygon(points []Vec2) *Node {
	if len(points) < 3 {
		return Empty()
	}
	pts := make([]Vec2, len(points))
	var b strings.Builder
	b.WriteString("polygon(")
	for i, p := range points {
		pts[i] = p.rounded()
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(pts[i].canon())
	}
	b.WriteByte(')')
	return newNode(KindShape, Dim2, PolygonData{Points: pts}, nil, b.String())
}

// ---------------------------------------------------------------------------
// Boolean combinations
// ---------------------------------------------------------------------------

// Boolean combines children under op, applying the canonicalization rules:
// intersections with any empty child are empty, a difference whose first
// child is empty is empty, empty children are otherwise filtered out, and
// a single surviving child is returned unwrapped. Nil children count as
// empty. All surviving children must share a dimensionality.
func Boolean(op BoolOp, children ...*Node) *Node {
	kept := make([]*Node, 0, len(children))
	for i, c := range children {
		if c == nil || c.IsEmpty() {
			if op == OpIntersection {
				return Empty()
			}
			if op == OpDifference && i == 0 {
				return Empty()
			}
			continue
		}
		kept = append(kept, c)
	}
	switch len(kept) {
	case 0:
		return Empty()
	case 1:
		return kept[0]
	}

	dim := kept[0].dim
	var b strings.Builder
	b.WriteString(op.String())
	b.WriteByte('(')
	for i, c := range kept {
		if c.dim != dim {
			panic(fmt.Sprintf("geom: %s of %s and %s operands", op, dim, c.dim))
		}
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c.canon)
	}
	b.WriteByte(')')
	return newNode(KindBoolean, dim, BooleanData{Op: op}, kept, b.String())
}

// Union returns the boolean union of children.
func Union(children ...*Node) *Node { return Boolean(OpUnion, children...) }

// Difference returns the first child minus the remaining children.
func Difference(children ...*Node) *Node { return Boolean(OpDifference, children...) }

// Intersection returns the boolean intersection of children.
func Intersection(children ...*Node) *Node { return Boolean(OpIntersection, children...) }

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// Transform applies an affine transform to a 3D body. Adjacent transforms
// fuse into a single node carrying the composed matrix, keeping tree depth
// bounded; identity transforms vanish.
func Transform(body *Node, m Affine3) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim3, "Transform")
	m = m.Rounded()
	if m.IsIdentity() {
		return body
	}
	if body.kind == KindTransform {
		inner := body.data.(TransformData)
		return Transform(body.children[0], m.Mul(inner.Matrix))
	}
	return newNode(KindTransform, Dim3, TransformData{Matrix: m}, []*Node{body},
		"transform3["+m.canon()+"]("+body.canon+")")
}

// Transform2D applies an affine transform to a 2D body, with the same
// fusion rules as Transform.
func Transform2D(body *Node, m Affine2) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim2, "Transform2D")
	m = m.Rounded()
	if m.IsIdentity() {
		return body
	}
	if body.kind == KindTransform {
		inner := body.data.(Transform2DData)
		return Transform2D(body.children[0], m.Mul(inner.Matrix))
	}
	return newNode(KindTransform, Dim2, Transform2DData{Matrix: m}, []*Node{body},
		"transform2["+m.canon()+"]("+body.canon+")")
}

// Translate is shorthand for a 3D translation.
func Translate(body *Node, v Vec3) *Node { return Transform(body, Translation3(v)) }

// Hull returns the convex hull of the body.
func Hull(body *Node) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	return newNode(KindHull, body.dim, HullData{}, []*Node{body},
		"hull("+body.canon+")")
}

// ---------------------------------------------------------------------------
// Materialized references
// ---------------------------------------------------------------------------

// Materialized returns a node that is only a reference into the cache under
// key. It is produced by the caching layer after storing a result; the
// evaluator resolves it by lookup and must never evaluate it directly.
func Materialized(key OpaqueKey, dim Dim) *Node {
	if key == "" {
		panic("geom: materialized node requires a non-empty key")
	}
	return newNode(KindMaterialized, dim, MaterializedData{Key: key}, nil,
		"materialized{"+string(key)+"}")
}

// ---------------------------------------------------------------------------
// Dimension-specific operations
// ---------------------------------------------------------------------------

// Offset grows (positive delta) or shrinks (negative delta) a 2D body.
// A zero delta is the body itself.
func Offset(body *Node, delta float64) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim2, "Offset")
	delta = Round(delta)
	if delta == 0 {
		return body
	}
	return newNode(KindOffset, Dim2, OffsetData{Delta: delta}, []*Node{body},
		"offset("+fmtFloat(delta)+")("+body.canon+")")
}

// Project returns the 2D silhouette of a 3D body.
func Project(body *Node) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim3, "Project")
	return newNode(KindProjection, Dim2, ProjectionData{}, []*Node{body},
		"project("+body.canon+")")
}

// Slice returns the 2D cross-section of a 3D body at height z.
func Slice(body *Node, z float64) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim3, "Slice")
	z = Round(z)
	return newNode(KindProjection, Dim2, ProjectionData{Slice: true, Z: z}, []*Node{body},
		"slice("+fmtFloat(z)+")("+body.canon+")")
}

// Extrude linearly extrudes a 2D body along +Z. Non-positive heights
// collapse to empty.
func Extrude(body *Node, height float64) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim2, "Extrude")
	height = Round(height)
	if height <= 0 {
		return Empty()
	}
	return newNode(KindExtrude, Dim3, ExtrudeData{Height: height}, []*Node{body},
		"extrude("+fmtFloat(height)+")("+body.canon+")")
}

// Revolve revolves a 2D body about the Z axis by angle radians. The angle
// is clamped to a full turn; non-positive angles collapse to empty.
func Revolve(body *Node, angle float64) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim2, "Revolve")
	if angle > 2*math.Pi {
		angle = 2 * math.Pi
	}
	angle = Round(angle)
	if angle <= 0 {
		return Empty()
	}
	return newNode(KindRevolve, Dim3, RevolveData{Angle: angle}, []*Node{body},
		"revolve("+fmtFloat(angle)+")("+body.canon+")")
}

// WithMaterial tags a 3D body's parts with a material.
func WithMaterial(body *Node, m Material) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim3, "WithMaterial")
	return newNode(KindMaterial, Dim3, MaterialData{Material: m}, []*Node{body},
		fmt.Sprintf("material(%q,%q)(%s)", m.Name, m.Color, body.canon))
}

// Trim keeps the portion of a 3D body inside the plane's half-space. The
// plane is normalized so equivalent half-spaces are canonically identical;
// a degenerate (zero-normal) plane keeps everything or nothing depending
// on the sign of its offset.
func Trim(body *Node, plane Plane) *Node {
	if body == nil || body.IsEmpty() {
		return Empty()
	}
	requireDim(body, Dim3, "Trim")
	p, ok := plane.normalized()
	if !ok {
		if plane.Offset >= 0 {
			return body // 0·p <= offset always holds
		}
		return Empty()
	}
	return newNode(KindTrim, Dim3, TrimData{Plane: p}, []*Node{body},
		"trim("+p.Normal.canon()+";"+fmtFloat(p.Offset)+")("+body.canon+")")
}

// requireDim panics when a body's dimensionality does not fit the
// operation. Mixing dimensionalities is a programming error, not a
// recoverable condition.
func requireDim(body *Node, want Dim, op string) {
	if body.dim != want && body.dim != DimAny {
		panic(fmt.Sprintf("geom: %s requires a %s body, got %s", op, want, body.dim))
	}
}
