// Package tessellate converts evaluated geometry into triangle meshes
// using a geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/burl/pkg/eval"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// Meshes tessellates every 3D part of a result. Parts carrying a material
// get the material name as their mesh label; unlabeled parts get the part
// ID. 2D results cannot be meshed and return an error.
func Meshes(k kernel.Kernel, r *eval.Result) ([]*kernel.Mesh, error) {
	if r == nil || r.IsEmpty() {
		return nil, nil
	}
	if r.Dim() != geom.Dim3 {
		return nil, fmt.Errorf("tessellate: cannot mesh a %s result", r.Dim())
	}

	meshes := make([]*kernel.Mesh, 0, len(r.Parts))
	for _, p := range r.Parts {
		solid, ok := p.Geometry.(kernel.Solid)
		if !ok {
			return nil, fmt.Errorf("tessellate: part %s is not a solid", p.ID)
		}
		mesh, err := k.Mesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: mesh part %s: %w", p.ID, err)
		}
		if m, ok := r.Materials[p.ID]; ok && m.Name != "" {
			mesh.Label = m.Name
		} else {
			mesh.Label = string(p.ID)
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// TriangleCount sums the triangle counts of a mesh set.
func TriangleCount(meshes []*kernel.Mesh) int {
	total := 0
	for _, m := range meshes {
		total += m.TriangleCount()
	}
	return total
}
