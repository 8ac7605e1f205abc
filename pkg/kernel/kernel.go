// Package kernel defines the abstract primitive-geometry kernel boundary.
// Implementations (sdfx, manifold) perform the actual boolean, transform,
// and meshing math behind this interface; the evaluation engine never does
// geometric computation itself. The abstraction allows swapping backends
// without changing the rest of the system.
package kernel

import "github.com/chazu/burl/pkg/geom"

// Geometry is the common surface of 2D and 3D kernel handles. Every
// operation result carries a status; a non-OK status means the kernel
// produced faulted geometry and the result must not be used.
type Geometry interface {
	// Status reports whether the underlying geometry is usable.
	Status() Status
}

// Solid is an opaque handle to a 3D kernel solid.
type Solid interface {
	Geometry
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Shape is an opaque handle to a 2D kernel shape.
type Shape interface {
	Geometry
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [2]float64)
}

// Kernel is the fixed capability set the evaluation engine calls per
// dimensionality. Boolean operations receive the full operand list in one
// call so the backend can choose an efficient combination strategy.
// Operations return an error for failures detected up front; latent faults
// surface through the result's Status.
type Kernel interface {
	// 3D primitives. Boxes have their minimum corner at the origin;
	// spheres and cylinders are centered on it.
	Box(size geom.Vec3) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// 2D primitives.
	Rect(size geom.Vec2) Shape
	Circle(radius float64) Shape
	Polygon(points []geom.Vec2) (Shape, error)

	// Boolean combinations over the full operand list.
	Boolean3(op geom.BoolOp, operands []Solid) (Solid, error)
	Boolean2(op geom.BoolOp, operands []Shape) (Shape, error)

	// Affine transforms.
	Transform3(s Solid, m geom.Affine3) (Solid, error)
	Transform2(s Shape, m geom.Affine2) (Shape, error)

	// Convex hulls.
	ConvexHull3(s Solid) (Solid, error)
	ConvexHull2(s Shape) (Shape, error)

	// Dimension-specific operations.
	Offset(s Shape, delta float64) (Shape, error)
	Project(s Solid) (Shape, error)
	Slice(s Solid, z float64) (Shape, error)
	Extrude(s Shape, height float64) (Solid, error)
	Revolve(s Shape, angle float64) (Solid, error)
	Trim(s Solid, plane geom.Plane) (Solid, error)

	// Simplify reduces detail within tolerance. Backends may return the
	// input unchanged.
	Simplify3(s Solid, tolerance float64) (Solid, error)
	Simplify2(s Shape, tolerance float64) (Shape, error)

	// Mesh output.
	Mesh(s Solid) (*Mesh, error)
}
