package sdfx

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

func v3vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }
func v2vec(x, y float64) v2.Vec    { return v2.Vec{X: x, Y: y} }

func TestBox(t *testing.T) {
	k := NewWithCells(60)
	box := k.Box(geom.Vec3{X: 100, Y: 50, Z: 25})
	if st := box.Status(); !st.OK() {
		t.Fatalf("box status: %v", st)
	}
	mesh, err := k.Mesh(box)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(geom.Vec3{X: 100, Y: 50, Z: 25}).(*sdfxSolid)
	min, max := box.BoundingBox()

	// Boxes sit with their minimum corner at the origin.
	const tol = 0.01
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{100, 50, 25}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestInvalidPrimitiveFaults(t *testing.T) {
	k := New()
	s := k.Sphere(-5)
	if st := s.Status(); st != kernel.StatusInvalidConstruction {
		t.Fatalf("negative sphere status = %v, want %v", st, kernel.StatusInvalidConstruction)
	}
}

func TestBoolean3(t *testing.T) {
	k := NewWithCells(40)

	box := k.Box(geom.Vec3{X: 100, Y: 100, Z: 100})
	cyl := k.Cylinder(240, 20)

	diff, err := k.Boolean3(geom.OpDifference, []kernel.Solid{box, cyl})
	if err != nil {
		t.Fatalf("Boolean3(difference) failed: %v", err)
	}
	diffMesh, err := k.Mesh(diff)
	if err != nil {
		t.Fatalf("Mesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}

	boxMesh, err := k.Mesh(box)
	if err != nil {
		t.Fatalf("Mesh(box) failed: %v", err)
	}
	// The hole passes through the box corner at the origin, so the
	// difference needs more triangles than the plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestBoolean3Union(t *testing.T) {
	k := NewWithCells(40)
	a := k.Box(geom.Vec3{X: 50, Y: 50, Z: 50})
	shifted, err := k.Transform3(k.Box(geom.Vec3{X: 50, Y: 50, Z: 50}), geom.Translation3(geom.Vec3{X: 30}))
	if err != nil {
		t.Fatalf("Transform3 failed: %v", err)
	}
	u, err := k.Boolean3(geom.OpUnion, []kernel.Solid{a, shifted})
	if err != nil {
		t.Fatalf("Boolean3(union) failed: %v", err)
	}
	min, max := u.(*sdfxSolid).BoundingBox()
	if got := max[0] - min[0]; math.Abs(got-80) > 0.5 {
		t.Errorf("union X extent = %f, expected ~80", got)
	}
}

func TestBoolean3NoOperands(t *testing.T) {
	k := New()
	if _, err := k.Boolean3(geom.OpUnion, nil); err == nil {
		t.Fatal("expected error for zero operands")
	}
}

func TestTransform3Rotation(t *testing.T) {
	k := New()
	box := k.Box(geom.Vec3{X: 100, Y: 10, Z: 10})

	// A long box along X rotated 90 degrees about Z extends along Y.
	rot, err := k.Transform3(box, geom.RotationZ3(math.Pi/2))
	if err != nil {
		t.Fatalf("Transform3 failed: %v", err)
	}
	min, max := rot.(*sdfxSolid).BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 0.5
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestTransform3Singular(t *testing.T) {
	k := New()
	box := k.Box(geom.Vec3{X: 10, Y: 10, Z: 10})
	if _, err := k.Transform3(box, geom.Scaling3(geom.Vec3{X: 1, Y: 1, Z: 0})); err == nil {
		t.Fatal("expected error for singular transform")
	}
}

func TestTransform3Interior(t *testing.T) {
	k := New()
	box := k.Box(geom.Vec3{X: 10, Y: 10, Z: 10})
	moved, err := k.Transform3(box, geom.Translation3(geom.Vec3{X: 100, Y: 200, Z: 300}))
	if err != nil {
		t.Fatalf("Transform3 failed: %v", err)
	}
	s := moved.(*sdfxSolid)
	// The center of the moved box is inside, the original center is not.
	if d := s.s.Evaluate(v3vec(105, 205, 305)); d >= 0 {
		t.Errorf("distance at moved center = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v3vec(5, 5, 5)); d <= 0 {
		t.Errorf("distance at original center = %f, expected positive", d)
	}
}

func TestExtrude(t *testing.T) {
	k := New()
	rect := k.Rect(geom.Vec2{X: 20, Y: 10})
	solid, err := k.Extrude(rect, 5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	min, max := solid.(*sdfxSolid).BoundingBox()
	const tol = 0.01
	if math.Abs(min[2]) > tol || math.Abs(max[2]-5) > tol {
		t.Errorf("extrusion Z bounds = [%f, %f], expected [0, 5]", min[2], max[2])
	}
	s := solid.(*sdfxSolid)
	if d := s.s.Evaluate(v3vec(10, 5, 2.5)); d >= 0 {
		t.Errorf("distance at interior point = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v3vec(10, 5, 7)); d <= 0 {
		t.Errorf("distance above extrusion = %f, expected positive", d)
	}
}

func TestRevolveFull(t *testing.T) {
	k := New()
	// A unit square profile from x=2 to x=3 revolved fully makes a ring
	// of inner radius 2 and outer radius 3.
	profile, err := k.Transform2(k.Rect(geom.Vec2{X: 1, Y: 1}), geom.Translation2(geom.Vec2{X: 2}))
	if err != nil {
		t.Fatalf("Transform2 failed: %v", err)
	}
	ring, err := k.Revolve(profile, 2*math.Pi)
	if err != nil {
		t.Fatalf("Revolve failed: %v", err)
	}
	s := ring.(*sdfxSolid)
	if d := s.s.Evaluate(v3vec(0, -2.5, 0.5)); d >= 0 {
		t.Errorf("distance inside ring = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v3vec(0, 0, 0.5)); d <= 0 {
		t.Errorf("distance at axis = %f, expected positive", d)
	}
}

func TestRevolvePartial(t *testing.T) {
	k := New()
	profile, err := k.Transform2(k.Rect(geom.Vec2{X: 1, Y: 1}), geom.Translation2(geom.Vec2{X: 2}))
	if err != nil {
		t.Fatalf("Transform2 failed: %v", err)
	}
	half, err := k.Revolve(profile, math.Pi)
	if err != nil {
		t.Fatalf("Revolve failed: %v", err)
	}
	s := half.(*sdfxSolid)
	// The wedge spans angles [0, π], so +X side is inside and the
	// opposite sweep direction is outside.
	if d := s.s.Evaluate(v3vec(2.5, 0.1, 0.5)); d >= 0 {
		t.Errorf("distance inside wedge = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v3vec(2.5, -0.5, 0.5)); d <= 0 {
		t.Errorf("distance outside wedge = %f, expected positive", d)
	}
}

func TestOffset(t *testing.T) {
	k := New()
	circle := k.Circle(5)
	grown, err := k.Offset(circle, 2)
	if err != nil {
		t.Fatalf("Offset failed: %v", err)
	}
	s := grown.(*sdfxShape)
	if d := s.s.Evaluate(v2vec(6, 0)); d >= 0 {
		t.Errorf("distance at r=6 after +2 offset = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v2vec(8, 0)); d <= 0 {
		t.Errorf("distance at r=8 after +2 offset = %f, expected positive", d)
	}
}

func TestSlice(t *testing.T) {
	k := New()
	sphere := k.Sphere(10)
	cut, err := k.Slice(sphere, 6)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	s := cut.(*sdfxShape)
	// The cross-section at z=6 of a radius-10 sphere is a disc of radius 8.
	if d := s.s.Evaluate(v2vec(7, 0)); d >= 0 {
		t.Errorf("distance inside slice = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v2vec(9, 0)); d <= 0 {
		t.Errorf("distance outside slice = %f, expected positive", d)
	}
}

func TestTrim(t *testing.T) {
	k := New()
	sphere := k.Sphere(10)
	half, err := k.Trim(sphere, geom.Plane{Normal: geom.Vec3{Z: 1}})
	if err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	s := half.(*sdfxSolid)
	if d := s.s.Evaluate(v3vec(0, 0, -5)); d >= 0 {
		t.Errorf("distance in kept half = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v3vec(0, 0, 5)); d <= 0 {
		t.Errorf("distance in trimmed half = %f, expected positive", d)
	}
}

func TestPolygon(t *testing.T) {
	k := New()
	tri, err := k.Polygon([]geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}})
	if err != nil {
		t.Fatalf("Polygon failed: %v", err)
	}
	s := tri.(*sdfxShape)
	if d := s.s.Evaluate(v2vec(2, 2)); d >= 0 {
		t.Errorf("distance inside triangle = %f, expected negative", d)
	}
	if d := s.s.Evaluate(v2vec(9, 9)); d <= 0 {
		t.Errorf("distance outside triangle = %f, expected positive", d)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	k := New()
	box := k.Box(geom.Vec3{X: 10, Y: 10, Z: 10})
	if _, err := k.ConvexHull3(box); err == nil {
		t.Error("expected error from ConvexHull3")
	}
	if _, err := k.Project(box); err == nil {
		t.Error("expected error from Project")
	}
	rect := k.Rect(geom.Vec2{X: 10, Y: 10})
	if _, err := k.ConvexHull2(rect); err == nil {
		t.Error("expected error from ConvexHull2")
	}
}
