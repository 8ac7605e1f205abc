//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

func TestBox(t *testing.T) {
	k, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	box := k.Box(geom.Vec3{X: 100, Y: 50, Z: 25})
	if st := box.Status(); !st.OK() {
		t.Fatalf("box status: %v", st)
	}
	mesh, err := k.Mesh(box)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	// A box meshes to exactly 12 triangles.
	if mesh.TriangleCount() != 12 {
		t.Errorf("box triangle count = %d, expected 12", mesh.TriangleCount())
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Errorf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
}

func TestBoxBoundingBox(t *testing.T) {
	k, _ := New()
	box := k.Box(geom.Vec3{X: 100, Y: 50, Z: 25})
	min, max := box.BoundingBox()

	const tol = 1e-9
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

func TestBoolean3(t *testing.T) {
	k, _ := New()
	box := k.Box(geom.Vec3{X: 100, Y: 100, Z: 100})
	cyl := k.Cylinder(240, 20)
	diff, err := k.Boolean3(geom.OpDifference, []kernel.Solid{box, cyl})
	if err != nil {
		t.Fatalf("Boolean3 failed: %v", err)
	}
	if st := diff.Status(); !st.OK() {
		t.Fatalf("difference status: %v", st)
	}
	mesh, err := k.Mesh(diff)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	if mesh.TriangleCount() <= 12 {
		t.Errorf("difference triangle count = %d, expected more than a plain box", mesh.TriangleCount())
	}
}

func TestTransform3(t *testing.T) {
	k, _ := New()
	box := k.Box(geom.Vec3{X: 10, Y: 10, Z: 10})
	moved, err := k.Transform3(box, geom.Translation3(geom.Vec3{X: 100, Y: 200, Z: 300}))
	if err != nil {
		t.Fatalf("Transform3 failed: %v", err)
	}
	min, _ := moved.BoundingBox()
	const tol = 1e-9
	if math.Abs(min[0]-100) > tol || math.Abs(min[1]-200) > tol || math.Abs(min[2]-300) > tol {
		t.Errorf("translated min corner = %v, expected (100,200,300)", min)
	}
}

func TestTrim(t *testing.T) {
	k, _ := New()
	box := k.Box(geom.Vec3{X: 10, Y: 10, Z: 10})
	half, err := k.Trim(box, geom.Plane{Normal: geom.Vec3{Z: 1}, Offset: 5})
	if err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	_, max := half.BoundingBox()
	if math.Abs(max[2]-5) > 1e-9 {
		t.Errorf("trimmed max Z = %f, expected 5", max[2])
	}
}

func TestUnsupported2D(t *testing.T) {
	k, _ := New()
	if _, err := k.Boolean2(geom.OpUnion, nil); err == nil {
		t.Error("expected error from Boolean2")
	}
	rect := k.Rect(geom.Vec2{X: 10, Y: 10})
	if st := rect.Status(); st != kernel.StatusUnsupported {
		t.Errorf("rect status = %v, want %v", st, kernel.StatusUnsupported)
	}
}
