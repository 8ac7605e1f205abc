package eval

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/google/uuid"
)

// ErrKernelFault wraps kernel-reported geometry faults. A build that hits
// one aborts rather than propagating corrupt geometry.
var ErrKernelFault = errors.New("kernel reported faulted geometry")

// PartID identifies one disjoint piece of an evaluated result. IDs are
// assigned fresh per evaluation, so metadata keyed by part identity never
// collides across combined results.
type PartID string

func newPartID() PartID { return PartID(uuid.NewString()) }

// Part is one concrete piece of evaluated geometry.
type Part struct {
	ID       PartID
	Geometry kernel.Geometry
}

// Result is the outcome of evaluating a node: one or more concrete parts
// (normally one, more when an operation intentionally decomposes into
// disjoint pieces) plus metadata attached per part. Treat a Result as
// read-only once it enters the cache.
type Result struct {
	Parts     []Part
	Materials map[PartID]geom.Material
}

// NewResult wraps a single piece of kernel geometry, assigning it a fresh
// part identity. Faulted geometry fails instead of producing a usable
// result.
func NewResult(g kernel.Geometry) (*Result, error) {
	if g == nil {
		return &Result{}, nil
	}
	if st := g.Status(); !st.OK() {
		return nil, fmt.Errorf("%w: %s", ErrKernelFault, st)
	}
	return &Result{Parts: []Part{{ID: newPartID(), Geometry: g}}}, nil
}

// NewMultiResult wraps several disjoint pieces as one result.
func NewMultiResult(gs []kernel.Geometry) (*Result, error) {
	r := &Result{Parts: make([]Part, 0, len(gs))}
	for _, g := range gs {
		if g == nil {
			continue
		}
		if st := g.Status(); !st.OK() {
			return nil, fmt.Errorf("%w: %s", ErrKernelFault, st)
		}
		r.Parts = append(r.Parts, Part{ID: newPartID(), Geometry: g})
	}
	return r, nil
}

// Combine concatenates the parts of several results and unions their
// metadata maps. Part identities are unique per evaluation, so the union
// never collides.
func Combine(results ...*Result) *Result {
	out := &Result{}
	for _, r := range results {
		if r == nil {
			continue
		}
		out.Parts = append(out.Parts, r.Parts...)
		out.Materials = mergeMaterials(out.Materials, r.Materials)
	}
	return out
}

// IsEmpty reports whether the result has no parts.
func (r *Result) IsEmpty() bool { return len(r.Parts) == 0 }

// Dim returns the dimensionality of the result's geometry, or DimAny for
// an empty result.
func (r *Result) Dim() geom.Dim {
	if len(r.Parts) == 0 {
		return geom.DimAny
	}
	switch r.Parts[0].Geometry.(type) {
	case kernel.Solid:
		return geom.Dim3
	case kernel.Shape:
		return geom.Dim2
	default:
		return geom.DimAny
	}
}

// Solids returns the 3D geometry of every part.
func (r *Result) Solids() ([]kernel.Solid, error) {
	out := make([]kernel.Solid, len(r.Parts))
	for i, p := range r.Parts {
		s, ok := p.Geometry.(kernel.Solid)
		if !ok {
			return nil, fmt.Errorf("eval: part %s holds %T, not a solid", p.ID, p.Geometry)
		}
		out[i] = s
	}
	return out, nil
}

// Shapes returns the 2D geometry of every part.
func (r *Result) Shapes() ([]kernel.Shape, error) {
	out := make([]kernel.Shape, len(r.Parts))
	for i, p := range r.Parts {
		s, ok := p.Geometry.(kernel.Shape)
		if !ok {
			return nil, fmt.Errorf("eval: part %s holds %T, not a shape", p.ID, p.Geometry)
		}
		out[i] = s
	}
	return out, nil
}

// Transformed applies f to every part's geometry, keeping part identities
// and the metadata map intact. Faulted output fails the whole operation.
func (r *Result) Transformed(f func(kernel.Geometry) (kernel.Geometry, error)) (*Result, error) {
	out := &Result{
		Parts:     make([]Part, len(r.Parts)),
		Materials: copyMaterials(r.Materials),
	}
	for i, p := range r.Parts {
		g, err := f(p.Geometry)
		if err != nil {
			return nil, err
		}
		if st := g.Status(); !st.OK() {
			return nil, fmt.Errorf("%w: %s", ErrKernelFault, st)
		}
		out.Parts[i] = Part{ID: p.ID, Geometry: g}
	}
	return out, nil
}

// TransformedList applies a list-producing f to every part's geometry.
// Each output piece becomes a new part inheriting the source part's
// material, if any; the rest of the metadata map is preserved.
func (r *Result) TransformedList(f func(kernel.Geometry) ([]kernel.Geometry, error)) (*Result, error) {
	out := &Result{Materials: copyMaterials(r.Materials)}
	for _, p := range r.Parts {
		pieces, err := f(p.Geometry)
		if err != nil {
			return nil, err
		}
		mat, hasMat := r.material(p.ID)
		for _, g := range pieces {
			if st := g.Status(); !st.OK() {
				return nil, fmt.Errorf("%w: %s", ErrKernelFault, st)
			}
			id := newPartID()
			out.Parts = append(out.Parts, Part{ID: id, Geometry: g})
			if hasMat {
				out.setMaterial(id, mat)
			}
		}
		delete(out.Materials, p.ID)
	}
	return out, nil
}

// WithMaterial returns a copy of the result with every part tagged with m,
// explicitly replacing any prior per-part materials.
func (r *Result) WithMaterial(m geom.Material) *Result {
	out := &Result{Parts: r.Parts, Materials: make(map[PartID]geom.Material, len(r.Parts))}
	for _, p := range r.Parts {
		out.Materials[p.ID] = m
	}
	return out
}

func (r *Result) material(id PartID) (geom.Material, bool) {
	m, ok := r.Materials[id]
	return m, ok
}

func (r *Result) setMaterial(id PartID, m geom.Material) {
	if r.Materials == nil {
		r.Materials = make(map[PartID]geom.Material)
	}
	r.Materials[id] = m
}

func copyMaterials(m map[PartID]geom.Material) map[PartID]geom.Material {
	if len(m) == 0 {
		return nil
	}
	out := make(map[PartID]geom.Material, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeMaterials(dst, src map[PartID]geom.Material) map[PartID]geom.Material {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[PartID]geom.Material, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
