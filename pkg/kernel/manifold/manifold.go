//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold provides
// guaranteed-manifold mesh boolean operations.
//
// This package requires the Manifold C library (manifoldc) to be installed.
// Build with: go build -tags=manifold
//
// The binding covers the solid (3D) capability set. The 2D cross-section
// surface of manifoldc is not bound; 2D operations report an unsupported
// status so callers can fall back to another backend.
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// defaultSegments is the circular segment count used for curved primitives.
const defaultSegments = 64

// manifoldSolid wraps a C ManifoldManifold pointer and implements
// kernel.Solid.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// Status maps Manifold's error enum onto the kernel status taxonomy.
func (s *manifoldSolid) Status() kernel.Status {
	if s.ptr == nil {
		return kernel.StatusInvalidConstruction
	}
	switch C.manifold_status(s.ptr) {
	case C.MANIFOLD_NO_ERROR:
		return kernel.StatusOK
	case C.MANIFOLD_NON_FINITE_VERTEX:
		return kernel.StatusNonFiniteVertex
	case C.MANIFOLD_NOT_MANIFOLD:
		return kernel.StatusNotManifold
	default:
		return kernel.StatusInvalidConstruction
	}
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	min[0] = float64(C.manifold_box_min_x(bbox))
	min[1] = float64(C.manifold_box_min_y(bbox))
	min[2] = float64(C.manifold_box_min_z(bbox))
	max[0] = float64(C.manifold_box_max_x(bbox))
	max[1] = float64(C.manifold_box_max_y(bbox))
	max[2] = float64(C.manifold_box_max_z(bbox))
	return min, max
}

// newSolid wraps a C ManifoldManifold pointer with a Go-side finalizer for
// automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// Box creates an axis-aligned box with its minimum corner at the origin.
func (k *ManifoldKernel) Box(size geom.Vec3) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cube(alloc,
		C.double(size.X), C.double(size.Y), C.double(size.Z),
		C.int(0), // center=false: minimum corner at the origin
	)
	return newSolid(ptr)
}

// Sphere creates a sphere centered at the origin.
func (k *ManifoldKernel) Sphere(radius float64) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_sphere(alloc, C.double(radius), C.int(defaultSegments))
	return newSolid(ptr)
}

// Cylinder creates a cylinder along the Z axis centered at the origin.
func (k *ManifoldKernel) Cylinder(height, radius float64) kernel.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cylinder(alloc,
		C.double(height),
		C.double(radius), // radius_low
		C.double(radius), // radius_high (same = not tapered)
		C.int(defaultSegments),
		C.int(1), // center=true
	)
	return newSolid(ptr)
}

// Rect is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Rect(geom.Vec2) kernel.Shape { return unsupportedShape{} }

// Circle is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Circle(float64) kernel.Shape { return unsupportedShape{} }

// Polygon is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Polygon([]geom.Vec2) (kernel.Shape, error) {
	return nil, errUnsupported("polygon")
}

// Boolean3 folds the operand list left to right through Manifold's binary
// boolean operations.
func (k *ManifoldKernel) Boolean3(op geom.BoolOp, operands []kernel.Solid) (kernel.Solid, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("manifold: %s of zero operands", op)
	}
	acc := operands[0].(*manifoldSolid)
	for _, o := range operands[1:] {
		other := o.(*manifoldSolid)
		alloc := C.manifold_alloc_manifold()
		var ptr *C.ManifoldManifold
		switch op {
		case geom.OpUnion:
			ptr = C.manifold_union(alloc, acc.ptr, other.ptr)
		case geom.OpDifference:
			ptr = C.manifold_difference(alloc, acc.ptr, other.ptr)
		case geom.OpIntersection:
			ptr = C.manifold_intersection(alloc, acc.ptr, other.ptr)
		default:
			return nil, fmt.Errorf("manifold: unknown boolean op %v", op)
		}
		acc = newSolid(ptr)
	}
	return acc, nil
}

// Boolean2 is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Boolean2(geom.BoolOp, []kernel.Shape) (kernel.Shape, error) {
	return nil, errUnsupported("2d boolean")
}

// Transform3 applies an affine transform. Manifold takes the matrix as
// three column basis vectors followed by the translation.
func (k *ManifoldKernel) Transform3(s kernel.Solid, m geom.Affine3) (kernel.Solid, error) {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_transform(alloc, ms.ptr,
		C.double(m.M[0]), C.double(m.M[4]), C.double(m.M[8]),
		C.double(m.M[1]), C.double(m.M[5]), C.double(m.M[9]),
		C.double(m.M[2]), C.double(m.M[6]), C.double(m.M[10]),
		C.double(m.M[3]), C.double(m.M[7]), C.double(m.M[11]),
	)
	return newSolid(ptr), nil
}

// Transform2 is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Transform2(kernel.Shape, geom.Affine2) (kernel.Shape, error) {
	return nil, errUnsupported("2d transform")
}

// ConvexHull3 returns the convex hull of a solid.
func (k *ManifoldKernel) ConvexHull3(s kernel.Solid) (kernel.Solid, error) {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_hull(alloc, ms.ptr)
	return newSolid(ptr), nil
}

// ConvexHull2 is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) ConvexHull2(kernel.Shape) (kernel.Shape, error) {
	return nil, errUnsupported("2d hull")
}

// Offset is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Offset(kernel.Shape, float64) (kernel.Shape, error) {
	return nil, errUnsupported("offset")
}

// Project is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Project(kernel.Solid) (kernel.Shape, error) {
	return nil, errUnsupported("projection")
}

// Slice is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Slice(kernel.Solid, float64) (kernel.Shape, error) {
	return nil, errUnsupported("slice")
}

// Extrude is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Extrude(kernel.Shape, float64) (kernel.Solid, error) {
	return nil, errUnsupported("extrude")
}

// Revolve is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Revolve(kernel.Shape, float64) (kernel.Solid, error) {
	return nil, errUnsupported("revolve")
}

// Trim keeps the half-space Normal·p <= Offset. Manifold's trim keeps the
// side the normal points away from when the plane is flipped, so the plane
// is negated here to match the kept-side convention.
func (k *ManifoldKernel) Trim(s kernel.Solid, plane geom.Plane) (kernel.Solid, error) {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_trim_by_plane(alloc, ms.ptr,
		C.double(-plane.Normal.X), C.double(-plane.Normal.Y), C.double(-plane.Normal.Z),
		C.double(-plane.Offset),
	)
	return newSolid(ptr), nil
}

// Simplify3 is a no-op; Manifold keeps its meshes minimal internally.
func (k *ManifoldKernel) Simplify3(s kernel.Solid, _ float64) (kernel.Solid, error) {
	return s, nil
}

// Simplify2 is not bound; the cross-section surface is unavailable.
func (k *ManifoldKernel) Simplify2(s kernel.Shape, _ float64) (kernel.Shape, error) {
	return nil, errUnsupported("2d simplify")
}

// Mesh extracts a triangle mesh from the solid using Manifold's MeshGL
// format. Vertex positions and normals are interleaved in MeshGL; this
// method separates them into the kernel.Mesh flat-array layout.
func (k *ManifoldKernel) Mesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms := s.(*manifoldSolid)

	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))

	if numVert == 0 || numTri == 0 {
		return &kernel.Mesh{}, nil
	}

	// MeshGL stores vertex properties in a flat float array with numProp
	// properties per vertex. The first 3 are always position; normals
	// follow at indices 3, 4, 5 when present.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))

	propLen := numVert * numProp
	propData := make([]float32, propLen)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	triLen := numTri * 3
	indices := make([]uint32, triLen)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	vertices := make([]float32, numVert*3)
	var normals []float32
	hasNormals := numProp >= 6
	if hasNormals {
		normals = make([]float32, numVert*3)
	}

	for i := 0; i < numVert; i++ {
		base := i * numProp
		vertices[i*3+0] = propData[base+0]
		vertices[i*3+1] = propData[base+1]
		vertices[i*3+2] = propData[base+2]
		if hasNormals {
			normals[i*3+0] = propData[base+3]
			normals[i*3+1] = propData[base+4]
			normals[i*3+2] = propData[base+5]
		}
	}

	if !hasNormals {
		normals = computeVertexNormals(vertices, indices)
	}

	mesh := &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}

	if mesh.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), numVert)
	}

	return mesh, nil
}

func errUnsupported(what string) error {
	return fmt.Errorf("manifold: %s: %s", what, kernel.StatusUnsupported)
}

// unsupportedShape is the faulted handle returned by unbound 2D primitives.
type unsupportedShape struct{}

func (unsupportedShape) Status() kernel.Status              { return kernel.StatusUnsupported }
func (unsupportedShape) BoundingBox() (min, max [2]float64) { return }
