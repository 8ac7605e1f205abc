// Package kerneltest provides a fake kernel for testing the evaluation
// engine without real geometric computation. Handles are opaque labels and
// every operation is counted, so tests can assert how often the engine
// reached the kernel.
package kerneltest

import (
	"fmt"
	"sync"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// FakeSolid is a labeled stand-in for a 3D kernel handle.
type FakeSolid struct {
	Label  string
	Fault  kernel.Status
	Bounds [2][3]float64
}

func (s *FakeSolid) Status() kernel.Status { return s.Fault }

func (s *FakeSolid) BoundingBox() (min, max [3]float64) {
	return s.Bounds[0], s.Bounds[1]
}

// FakeShape is a labeled stand-in for a 2D kernel handle.
type FakeShape struct {
	Label  string
	Fault  kernel.Status
	Bounds [2][2]float64
}

func (s *FakeShape) Status() kernel.Status { return s.Fault }

func (s *FakeShape) BoundingBox() (min, max [2]float64) {
	return s.Bounds[0], s.Bounds[1]
}

// Kernel counts every call per operation name and builds labeled fake
// handles describing the call tree. It is safe for concurrent use.
type Kernel struct {
	mu     sync.Mutex
	calls  map[string]int
	failOp string
}

// New returns an empty counting kernel.
func New() *Kernel {
	return &Kernel{calls: map[string]int{}}
}

// FailOn makes the named operation return faulted geometry. Operation
// names match the Kernel method names ("Box", "Boolean3", ...).
func (k *Kernel) FailOn(op string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failOp = op
}

// Calls returns how many times the named operation ran.
func (k *Kernel) Calls(op string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.calls[op]
}

// TotalCalls returns the number of kernel operations run so far.
func (k *Kernel) TotalCalls() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	total := 0
	for _, n := range k.calls {
		total += n
	}
	return total
}

// record counts the call and reports whether it should fault.
func (k *Kernel) record(op string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.calls[op]++
	return k.failOp == op
}

func (k *Kernel) solid(op, label string) kernel.Solid {
	if k.record(op) {
		return &FakeSolid{Label: label, Fault: kernel.StatusInvalidConstruction}
	}
	return &FakeSolid{Label: label}
}

func (k *Kernel) shape(op, label string) kernel.Shape {
	if k.record(op) {
		return &FakeShape{Label: label, Fault: kernel.StatusInvalidConstruction}
	}
	return &FakeShape{Label: label}
}

func label3(s kernel.Solid) string {
	if fs, ok := s.(*FakeSolid); ok {
		return fs.Label
	}
	return "?"
}

func label2(s kernel.Shape) string {
	if fs, ok := s.(*FakeShape); ok {
		return fs.Label
	}
	return "?"
}

func (k *Kernel) Box(size geom.Vec3) kernel.Solid {
	return k.solid("Box", fmt.Sprintf("box(%v,%v,%v)", size.X, size.Y, size.Z))
}

func (k *Kernel) Sphere(radius float64) kernel.Solid {
	return k.solid("Sphere", fmt.Sprintf("sphere(%v)", radius))
}

func (k *Kernel) Cylinder(height, radius float64) kernel.Solid {
	return k.solid("Cylinder", fmt.Sprintf("cylinder(%v,%v)", height, radius))
}

func (k *Kernel) Rect(size geom.Vec2) kernel.Shape {
	return k.shape("Rect", fmt.Sprintf("rect(%v,%v)", size.X, size.Y))
}

func (k *Kernel) Circle(radius float64) kernel.Shape {
	return k.shape("Circle", fmt.Sprintf("circle(%v)", radius))
}

func (k *Kernel) Polygon(points []geom.Vec2) (kernel.Shape, error) {
	return k.shape("Polygon", fmt.Sprintf("polygon(%d)", len(points))), nil
}

func (k *Kernel) Boolean3(op geom.BoolOp, operands []kernel.Solid) (kernel.Solid, error) {
	labels := make([]string, len(operands))
	for i, o := range operands {
		labels[i] = label3(o)
	}
	return k.solid("Boolean3", fmt.Sprintf("%s%v", op, labels)), nil
}

func (k *Kernel) Boolean2(op geom.BoolOp, operands []kernel.Shape) (kernel.Shape, error) {
	labels := make([]string, len(operands))
	for i, o := range operands {
		labels[i] = label2(o)
	}
	return k.shape("Boolean2", fmt.Sprintf("%s%v", op, labels)), nil
}

func (k *Kernel) Transform3(s kernel.Solid, m geom.Affine3) (kernel.Solid, error) {
	return k.solid("Transform3", fmt.Sprintf("transform(%s)", label3(s))), nil
}

func (k *Kernel) Transform2(s kernel.Shape, m geom.Affine2) (kernel.Shape, error) {
	return k.shape("Transform2", fmt.Sprintf("transform(%s)", label2(s))), nil
}

func (k *Kernel) ConvexHull3(s kernel.Solid) (kernel.Solid, error) {
	return k.solid("ConvexHull3", fmt.Sprintf("hull(%s)", label3(s))), nil
}

func (k *Kernel) ConvexHull2(s kernel.Shape) (kernel.Shape, error) {
	return k.shape("ConvexHull2", fmt.Sprintf("hull(%s)", label2(s))), nil
}

func (k *Kernel) Offset(s kernel.Shape, delta float64) (kernel.Shape, error) {
	return k.shape("Offset", fmt.Sprintf("offset(%s,%v)", label2(s), delta)), nil
}

func (k *Kernel) Project(s kernel.Solid) (kernel.Shape, error) {
	return k.shape("Project", fmt.Sprintf("project(%s)", label3(s))), nil
}

func (k *Kernel) Slice(s kernel.Solid, z float64) (kernel.Shape, error) {
	return k.shape("Slice", fmt.Sprintf("slice(%s,%v)", label3(s), z)), nil
}

func (k *Kernel) Extrude(s kernel.Shape, height float64) (kernel.Solid, error) {
	return k.solid("Extrude", fmt.Sprintf("extrude(%s,%v)", label2(s), height)), nil
}

func (k *Kernel) Revolve(s kernel.Shape, angle float64) (kernel.Solid, error) {
	return k.solid("Revolve", fmt.Sprintf("revolve(%s,%v)", label2(s), angle)), nil
}

func (k *Kernel) Trim(s kernel.Solid, plane geom.Plane) (kernel.Solid, error) {
	return k.solid("Trim", fmt.Sprintf("trim(%s)", label3(s))), nil
}

func (k *Kernel) Simplify3(s kernel.Solid, tolerance float64) (kernel.Solid, error) {
	k.record("Simplify3")
	return s, nil
}

func (k *Kernel) Simplify2(s kernel.Shape, tolerance float64) (kernel.Shape, error) {
	k.record("Simplify2")
	return s, nil
}

func (k *Kernel) Mesh(s kernel.Solid) (*kernel.Mesh, error) {
	k.record("Mesh")
	return &kernel.Mesh{Label: label3(s)}, nil
}
