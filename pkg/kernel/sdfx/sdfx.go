// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Signed distance fields
// cannot express every capability (convex hulls, silhouette projection);
// those operations report an unsupported-operation error so the evaluator
// can surface the fault.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
}

// New returns a new SdfxKernel with default meshing resolution.
func New() *SdfxKernel {
	return &SdfxKernel{meshCells: defaultMeshCells}
}

// NewWithCells returns a kernel whose marching cubes pass uses the given
// cell count.
func NewWithCells(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{meshCells: cells}
}

// ---------------------------------------------------------------------------
// Handles
// ---------------------------------------------------------------------------

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s      sdf.SDF3
	status kernel.Status
}

func (s *sdfxSolid) Status() kernel.Status {
	if s.status != kernel.StatusOK {
		return s.status
	}
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if !finite(min[i]) || !finite(max[i]) {
			return kernel.StatusNonFiniteVertex
		}
	}
	return kernel.StatusOK
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	if s.s == nil {
		return min, max
	}
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxShape wraps an sdf.SDF2 to implement kernel.Shape.
type sdfxShape struct {
	s      sdf.SDF2
	status kernel.Status
}

func (s *sdfxShape) Status() kernel.Status {
	if s.status != kernel.StatusOK {
		return s.status
	}
	min, max := s.BoundingBox()
	for i := 0; i < 2; i++ {
		if !finite(min[i]) || !finite(max[i]) {
			return kernel.StatusNonFiniteVertex
		}
	}
	return kernel.StatusOK
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxShape) BoundingBox() (min, max [2]float64) {
	if s.s == nil {
		return min, max
	}
	bb := s.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func wrap3(s sdf.SDF3) kernel.Solid { return &sdfxSolid{s: s} }
func wrap2(s sdf.SDF2) kernel.Shape { return &sdfxShape{s: s} }

// fault3 returns a solid handle carrying a construction fault.
func fault3(st kernel.Status) kernel.Solid { return &sdfxSolid{status: st} }
func fault2(st kernel.Status) kernel.Shape { return &sdfxShape{status: st} }

func unwrap3(s kernel.Solid) sdf.SDF3 { return s.(*sdfxSolid).s }
func unwrap2(s kernel.Shape) sdf.SDF2 { return s.(*sdfxShape).s }

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// Box creates a box with its minimum corner at the origin. sdf.Box3D
// centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(size geom.Vec3) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		return fault3(kernel.StatusInvalidConstruction)
	}
	m := sdf.Translate3d(v3.Vec{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2})
	return wrap3(sdf.Transform3D(s, m))
}

// Sphere creates a sphere centered at the origin.
func (k *SdfxKernel) Sphere(radius float64) kernel.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return fault3(kernel.StatusInvalidConstruction)
	}
	return wrap3(s)
}

// Cylinder creates a cylinder along the Z axis centered at the origin.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return fault3(kernel.StatusInvalidConstruction)
	}
	return wrap3(s)
}

// Rect creates a rectangle with its minimum corner at the origin.
func (k *SdfxKernel) Rect(size geom.Vec2) kernel.Shape {
	s := sdf.Box2D(v2.Vec{X: size.X, Y: size.Y}, 0)
	m := sdf.Translate2d(v2.Vec{X: size.X / 2, Y: size.Y / 2})
	return wrap2(sdf.Transform2D(s, m))
}

// Circle creates a circle centered at the origin.
func (k *SdfxKernel) Circle(radius float64) kernel.Shape {
	s, err := sdf.Circle2D(radius)
	if err != nil {
		return fault2(kernel.StatusInvalidConstruction)
	}
	return wrap2(s)
}

// Polygon creates a simple polygon from vertices in order.
func (k *SdfxKernel) Polygon(points []geom.Vec2) (kernel.Shape, error) {
	pts := make([]v2.Vec, len(points))
	for i, p := range points {
		pts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("sdfx: polygon: %w", err)
	}
	return wrap2(s), nil
}

// ---------------------------------------------------------------------------
// Booleans
// ---------------------------------------------------------------------------

// Boolean3 combines the full operand list. The SDF representation has no
// preferred n-ary strategy, so operands fold left to right.
func (k *SdfxKernel) Boolean3(op geom.BoolOp, operands []kernel.Solid) (kernel.Solid, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("sdfx: %s of zero operands", op)
	}
	acc := unwrap3(operands[0])
	for _, o := range operands[1:] {
		other := unwrap3(o)
		switch op {
		case geom.OpUnion:
			acc = sdf.Union3D(acc, other)
		case geom.OpDifference:
			acc = sdf.Difference3D(acc, other)
		case geom.OpIntersection:
			acc = sdf.Intersect3D(acc, other)
		default:
			return nil, fmt.Errorf("sdfx: unknown boolean op %v", op)
		}
	}
	return wrap3(acc), nil
}

// Boolean2 combines the full operand list in 2D.
func (k *SdfxKernel) Boolean2(op geom.BoolOp, operands []kernel.Shape) (kernel.Shape, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("sdfx: %s of zero operands", op)
	}
	acc := unwrap2(operands[0])
	for _, o := range operands[1:] {
		other := unwrap2(o)
		switch op {
		case geom.OpUnion:
			acc = sdf.Union2D(acc, other)
		case geom.OpDifference:
			acc = sdf.Difference2D(acc, other)
		case geom.OpIntersection:
			acc = sdf.Intersect2D(acc, other)
		default:
			return nil, fmt.Errorf("sdfx: unknown boolean op %v", op)
		}
	}
	return wrap2(acc), nil
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// Transform3 applies an arbitrary affine transform by evaluating the
// wrapped field at inverse-transformed points. Under shear or non-uniform
// scale the result is a bound rather than an exact distance, which is
// sufficient for sign-correct meshing.
func (k *SdfxKernel) Transform3(s kernel.Solid, m geom.Affine3) (kernel.Solid, error) {
	inv, ok := m.Inverse()
	if !ok {
		return nil, fmt.Errorf("sdfx: singular transform matrix")
	}
	inner := unwrap3(s)
	return wrap3(&transformedSDF3{
		s:   inner,
		inv: inv,
		bb:  transformBox3(inner.BoundingBox(), m),
	}), nil
}

// Transform2 is the 2D analogue of Transform3.
func (k *SdfxKernel) Transform2(s kernel.Shape, m geom.Affine2) (kernel.Shape, error) {
	inv, ok := m.Inverse()
	if !ok {
		return nil, fmt.Errorf("sdfx: singular transform matrix")
	}
	inner := unwrap2(s)
	return wrap2(&transformedSDF2{
		s:   inner,
		inv: inv,
		bb:  transformBox2(inner.BoundingBox(), m),
	}), nil
}

// ---------------------------------------------------------------------------
// Unsupported capabilities
// ---------------------------------------------------------------------------

// ConvexHull3 is not computable on an implicit distance field.
func (k *SdfxKernel) ConvexHull3(kernel.Solid) (kernel.Solid, error) {
	return nil, fmt.Errorf("sdfx: convex hull: %s", kernel.StatusUnsupported)
}

// ConvexHull2 is not computable on an implicit distance field.
func (k *SdfxKernel) ConvexHull2(kernel.Shape) (kernel.Shape, error) {
	return nil, fmt.Errorf("sdfx: convex hull: %s", kernel.StatusUnsupported)
}

// Project (silhouette) would require sampling the full field.
func (k *SdfxKernel) Project(kernel.Solid) (kernel.Shape, error) {
	return nil, fmt.Errorf("sdfx: projection: %s", kernel.StatusUnsupported)
}

// ---------------------------------------------------------------------------
// Dimension-specific operations
// ---------------------------------------------------------------------------

// Offset grows or shrinks a shape by shifting its distance field.
func (k *SdfxKernel) Offset(s kernel.Shape, delta float64) (kernel.Shape, error) {
	inner := unwrap2(s)
	return wrap2(&offsetSDF2{s: inner, delta: delta, bb: expandBox2(inner.BoundingBox(), delta)}), nil
}

// Slice returns the cross-section of a solid at height z.
func (k *SdfxKernel) Slice(s kernel.Solid, z float64) (kernel.Shape, error) {
	inner := unwrap3(s)
	bb := inner.BoundingBox()
	if z < bb.Min.Z || z > bb.Max.Z {
		// The plane misses the solid entirely; an empty shape at the
		// origin keeps downstream meshing trivial.
		return wrap2(&sliceSDF2{s: inner, z: z, bb: sdf.Box2{}}), nil
	}
	return wrap2(&sliceSDF2{
		s:  inner,
		z:  z,
		bb: sdf.Box2{Min: v2.Vec{X: bb.Min.X, Y: bb.Min.Y}, Max: v2.Vec{X: bb.Max.X, Y: bb.Max.Y}},
	}), nil
}

// Extrude extrudes a shape along +Z from z=0 to z=height.
func (k *SdfxKernel) Extrude(s kernel.Shape, height float64) (kernel.Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("sdfx: extrude height %v", height)
	}
	inner := unwrap2(s)
	bb := inner.BoundingBox()
	return wrap3(&extrudeSDF3{
		s: inner,
		h: height,
		bb: sdf.Box3{
			Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: 0},
			Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: height},
		},
	}), nil
}

// Revolve revolves a shape about the Z axis. The profile's X axis becomes
// the radius; angle is in radians with a full turn at 2π.
func (k *SdfxKernel) Revolve(s kernel.Shape, angle float64) (kernel.Solid, error) {
	if angle <= 0 {
		return nil, fmt.Errorf("sdfx: revolve angle %v", angle)
	}
	inner := unwrap2(s)
	bb := inner.BoundingBox()
	r := math.Max(math.Abs(bb.Min.X), math.Abs(bb.Max.X))
	return wrap3(&revolveSDF3{
		s:     inner,
		angle: angle,
		bb: sdf.Box3{
			Min: v3.Vec{X: -r, Y: -r, Z: bb.Min.Y},
			Max: v3.Vec{X: r, Y: r, Z: bb.Max.Y},
		},
	}), nil
}

// Trim keeps the half-space Normal·p <= Offset of a solid.
func (k *SdfxKernel) Trim(s kernel.Solid, plane geom.Plane) (kernel.Solid, error) {
	inner := unwrap3(s)
	return wrap3(&trimSDF3{s: inner, plane: plane, bb: inner.BoundingBox()}), nil
}

// Simplify3 is a no-op: implicit fields carry no mesh detail to reduce.
func (k *SdfxKernel) Simplify3(s kernel.Solid, _ float64) (kernel.Solid, error) {
	return s, nil
}

// Simplify2 is a no-op, as Simplify3.
func (k *SdfxKernel) Simplify2(s kernel.Shape, _ float64) (kernel.Shape, error) {
	return s, nil
}

// ---------------------------------------------------------------------------
// Meshing
// ---------------------------------------------------------------------------

// Mesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) Mesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap3(s)
	if sdf3 == nil {
		return &kernel.Mesh{}, nil
	}

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
