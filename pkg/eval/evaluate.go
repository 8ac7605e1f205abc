package eval

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
)

// evaluate computes a node that missed the cache. Children are resolved
// first (concurrently for siblings), then the node's own operation is
// applied through the kernel. Materialized nodes never reach this path:
// Result intercepts them with a cache lookup.
func (c *Context) evaluate(ctx context.Context, n *geom.Node) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch n.Kind() {
	case geom.KindEmpty:
		return &Result{}, nil
	case geom.KindMaterialized:
		panic("eval: materialized node reached the evaluator")
	case geom.KindShape:
		return c.evalShape(n)
	case geom.KindBoolean:
		return c.evalBoolean(ctx, n)
	case geom.KindTransform:
		return c.evalTransform(ctx, n)
	case geom.KindHull:
		return c.evalHull(ctx, n)
	case geom.KindOffset:
		return c.evalOffset(ctx, n)
	case geom.KindProjection:
		return c.evalProjection(ctx, n)
	case geom.KindExtrude:
		return c.evalExtrude(ctx, n)
	case geom.KindRevolve:
		return c.evalRevolve(ctx, n)
	case geom.KindMaterial:
		return c.evalMaterial(ctx, n)
	case geom.KindTrim:
		return c.evalTrim(ctx, n)
	default:
		return nil, fmt.Errorf("eval: unknown node kind %v", n.Kind())
	}
}

// childResults fans out over the node's children and joins before
// returning; no child evaluation observes another's in-flight state.
func (c *Context) childResults(ctx context.Context, children []*geom.Node) ([]*Result, error) {
	out := make([]*Result, len(children))
	if len(children) == 1 {
		r, err := c.Result(ctx, children[0])
		if err != nil {
			return nil, err
		}
		out[0] = r
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range children {
		g.Go(func() error {
			r, err := c.Result(gctx, ch)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// body evaluates the single child of a unary node.
func (c *Context) body(ctx context.Context, n *geom.Node) (*Result, error) {
	return c.Result(ctx, n.Children()[0])
}

func (c *Context) evalShape(n *geom.Node) (*Result, error) {
	switch d := n.Data().(type) {
	case geom.BoxData:
		return NewResult(c.kernel.Box(d.Size))
	case geom.SphereData:
		return NewResult(c.kernel.Sphere(d.Radius))
	case geom.CylinderData:
		return NewResult(c.kernel.Cylinder(d.Height, d.Radius))
	case geom.RectData:
		return NewResult(c.kernel.Rect(d.Size))
	case geom.CircleData:
		return NewResult(c.kernel.Circle(d.Radius))
	case geom.PolygonData:
		s, err := c.kernel.Polygon(d.Points)
		if err != nil {
			return nil, fmt.Errorf("eval: polygon: %w", err)
		}
		return NewResult(s)
	default:
		return nil, fmt.Errorf("eval: unknown shape data %T", n.Data())
	}
}

func (c *Context) evalBoolean(ctx context.Context, n *geom.Node) (*Result, error) {
	op := n.Data().(geom.BooleanData).Op
	rs, err := c.childResults(ctx, n.Children())
	if err != nil {
		return nil, err
	}

	// Canonicalization removes empty nodes, but a child may still
	// evaluate to zero parts (for example a materialized reference to an
	// empty result). Re-apply the emptiness algebra at result level.
	live := rs[:0]
	for i, r := range rs {
		if r.IsEmpty() {
			if op == geom.OpIntersection || (op == geom.OpDifference && i == 0) {
				return &Result{}, nil
			}
			continue
		}
		live = append(live, r)
	}
	switch len(live) {
	case 0:
		return &Result{}, nil
	case 1:
		return live[0], nil
	}

	var combined kernel.Geometry
	switch n.Dim() {
	case geom.Dim3:
		operands := make([]kernel.Solid, len(live))
		for i, r := range live {
			operands[i], err = c.solidOperand(r)
			if err != nil {
				return nil, err
			}
		}
		// One kernel call with the full operand list so the backend can
		// pick its combination strategy.
		combined, err = c.kernel.Boolean3(op, operands)
	case geom.Dim2:
		operands := make([]kernel.Shape, len(live))
		for i, r := range live {
			operands[i], err = c.shapeOperand(r)
			if err != nil {
				return nil, err
			}
		}
		combined, err = c.kernel.Boolean2(op, operands)
	default:
		return nil, fmt.Errorf("eval: boolean node with dimensionality %s", n.Dim())
	}
	if err != nil {
		return nil, fmt.Errorf("eval: %s: %w", op, err)
	}

	res, err := NewResult(combined)
	if err != nil {
		return nil, err
	}
	for _, r := range live {
		res.Materials = mergeMaterials(res.Materials, r.Materials)
	}
	return res, nil
}

// solidOperand flattens a result into a single boolean operand, unioning
// multi-part results first.
func (c *Context) solidOperand(r *Result) (kernel.Solid, error) {
	solids, err := r.Solids()
	if err != nil {
		return nil, err
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	s, err := c.kernel.Boolean3(geom.OpUnion, solids)
	if err != nil {
		return nil, fmt.Errorf("eval: flatten operand: %w", err)
	}
	return s, nil
}

func (c *Context) shapeOperand(r *Result) (kernel.Shape, error) {
	shapes, err := r.Shapes()
	if err != nil {
		return nil, err
	}
	if len(shapes) == 1 {
		return shapes[0], nil
	}
	s, err := c.kernel.Boolean2(geom.OpUnion, shapes)
	if err != nil {
		return nil, fmt.Errorf("eval: flatten operand: %w", err)
	}
	return s, nil
}

func (c *Context) evalTransform(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	switch d := n.Data().(type) {
	case geom.TransformData:
		return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
			s, ok := g.(kernel.Solid)
			if !ok {
				return nil, fmt.Errorf("eval: transform: part holds %T, not a solid", g)
			}
			return c.kernel.Transform3(s, d.Matrix)
		})
	case geom.Transform2DData:
		return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
			s, ok := g.(kernel.Shape)
			if !ok {
				return nil, fmt.Errorf("eval: transform: part holds %T, not a shape", g)
			}
			return c.kernel.Transform2(s, d.Matrix)
		})
	default:
		return nil, fmt.Errorf("eval: unknown transform data %T", n.Data())
	}
}

func (c *Context) evalHull(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	if r.IsEmpty() {
		return &Result{}, nil
	}

	var hulled kernel.Geometry
	switch r.Dim() {
	case geom.Dim3:
		operand, err := c.solidOperand(r)
		if err != nil {
			return nil, err
		}
		hulled, err = c.kernel.ConvexHull3(operand)
		if err != nil {
			return nil, fmt.Errorf("eval: hull: %w", err)
		}
	case geom.Dim2:
		operand, err := c.shapeOperand(r)
		if err != nil {
			return nil, err
		}
		hulled, err = c.kernel.ConvexHull2(operand)
		if err != nil {
			return nil, fmt.Errorf("eval: hull: %w", err)
		}
	default:
		return &Result{}, nil
	}

	res, err := NewResult(hulled)
	if err != nil {
		return nil, err
	}
	res.Materials = mergeMaterials(res.Materials, r.Materials)
	return res, nil
}

func (c *Context) evalOffset(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.OffsetData)
	return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
		s, ok := g.(kernel.Shape)
		if !ok {
			return nil, fmt.Errorf("eval: offset: part holds %T, not a shape", g)
		}
		return c.kernel.Offset(s, d.Delta)
	})
}

func (c *Context) evalProjection(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.ProjectionData)
	return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
		s, ok := g.(kernel.Solid)
		if !ok {
			return nil, fmt.Errorf("eval: projection: part holds %T, not a solid", g)
		}
		if d.Slice {
			return c.kernel.Slice(s, d.Z)
		}
		return c.kernel.Project(s)
	})
}

func (c *Context) evalExtrude(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.ExtrudeData)
	return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
		s, ok := g.(kernel.Shape)
		if !ok {
			return nil, fmt.Errorf("eval: extrude: part holds %T, not a shape", g)
		}
		return c.kernel.Extrude(s, d.Height)
	})
}

func (c *Context) evalRevolve(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.RevolveData)
	return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
		s, ok := g.(kernel.Shape)
		if !ok {
			return nil, fmt.Errorf("eval: revolve: part holds %T, not a shape", g)
		}
		return c.kernel.Revolve(s, d.Angle)
	})
}

func (c *Context) evalMaterial(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.MaterialData)
	return r.WithMaterial(d.Material), nil
}

func (c *Context) evalTrim(ctx context.Context, n *geom.Node) (*Result, error) {
	r, err := c.body(ctx, n)
	if err != nil {
		return nil, err
	}
	d := n.Data().(geom.TrimData)
	return r.Transformed(func(g kernel.Geometry) (kernel.Geometry, error) {
		s, ok := g.(kernel.Solid)
		if !ok {
			return nil, fmt.Errorf("eval: trim: part holds %T, not a solid", g)
		}
		return c.kernel.Trim(s, d.Plane)
	})
}
