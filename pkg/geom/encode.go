package geom

import (
	"encoding/json"
	"fmt"
)

// The wire format is a tagged union mirroring the node variant list: one
// "kind" tag plus the payload fields of that variant. Decoding goes back
// through the package constructors, so a decoded tree is canonicalized the
// same way a freshly built one is and round-trips to the same structural
// identity.

type nodeJSON struct {
	Kind string `json:"kind"`

	// Primitive payloads.
	Size3  *Vec3   `json:"size,omitempty"`
	Size2  *Vec2   `json:"size2,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Height float64 `json:"height,omitempty"`
	Points []Vec2  `json:"points,omitempty"`

	// Combinator payloads.
	Op      string   `json:"op,omitempty"`
	Matrix  *Affine3 `json:"matrix,omitempty"`
	Matrix2 *Affine2 `json:"matrix2,omitempty"`

	// Materialized payload.
	Key string `json:"key,omitempty"`
	Dim string `json:"dim,omitempty"`

	// Dimension-specific payloads.
	Delta    float64   `json:"delta,omitempty"`
	Z        float64   `json:"z,omitempty"`
	Angle    float64   `json:"angle,omitempty"`
	Material *Material `json:"material,omitempty"`
	Plane    *Plane    `json:"plane,omitempty"`

	Children []json.RawMessage `json:"children,omitempty"`
}

// MarshalJSON encodes the node as a tagged union.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{}
	switch d := n.data.(type) {
	case nil: // empty
		out.Kind = "empty"
	case BoxData:
		out.Kind = "box"
		size := d.Size
		out.Size3 = &size
	case SphereData:
		out.Kind = "sphere"
		out.Radius = d.Radius
	case CylinderData:
		out.Kind = "cylinder"
		out.Height = d.Height
		out.Radius = d.Radius
	case RectData:
		out.Kind = "rect"
		size := d.Size
		out.Size2 = &size
	case CircleData:
		out.Kind = "circle"
		out.Radius = d.Radius
	case PolygonData:
		out.Kind = "polygon"
		out.Points = d.Points
	case BooleanData:
		out.Kind = "boolean"
		out.Op = d.Op.String()
	case TransformData:
		out.Kind = "transform"
		m := d.Matrix
		out.Matrix = &m
	case Transform2DData:
		out.Kind = "transform2d"
		m := d.Matrix
		out.Matrix2 = &m
	case HullData:
		out.Kind = "hull"
	case MaterializedData:
		out.Kind = "materialized"
		out.Key = string(d.Key)
		out.Dim = n.dim.String()
	case OffsetData:
		out.Kind = "offset"
		out.Delta = d.Delta
	case ProjectionData:
		if d.Slice {
			out.Kind = "slice"
			out.Z = d.Z
		} else {
			out.Kind = "project"
		}
	case ExtrudeData:
		out.Kind = "extrude"
		out.Height = d.Height
	case RevolveData:
		out.Kind = "revolve"
		out.Angle = d.Angle
	case MaterialData:
		out.Kind = "material"
		mat := d.Material
		out.Material = &mat
	case TrimData:
		out.Kind = "trim"
		plane := d.Plane
		out.Plane = &plane
	default:
		return nil, fmt.Errorf("geom: cannot encode node data %T", n.data)
	}

	if len(n.children) > 0 {
		out.Children = make([]json.RawMessage, len(n.children))
		for i, c := range n.children {
			enc, err := c.MarshalJSON()
			if err != nil {
				return nil, err
			}
			out.Children[i] = enc
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged-union node tree. The decoded tree is
// rebuilt through the package constructors and therefore canonicalized.
func (n *Node) UnmarshalJSON(data []byte) error {
	built, err := decodeNode(data)
	if err != nil {
		return err
	}
	*n = *built
	return nil
}

// Decode parses a serialized tree.
func Decode(data []byte) (*Node, error) {
	return decodeNode(data)
}

func decodeNode(data []byte) (*Node, error) {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geom: decode node: %w", err)
	}

	children := make([]*Node, len(raw.Children))
	for i, c := range raw.Children {
		child, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	body := func() (*Node, error) {
		if len(children) != 1 {
			return nil, fmt.Errorf("geom: %q node requires exactly one child, got %d", raw.Kind, len(children))
		}
		return children[0], nil
	}

	switch raw.Kind {
	case "empty":
		return Empty(), nil
	case "box":
		if raw.Size3 == nil {
			return nil, fmt.Errorf("geom: box node missing size")
		}
		return Box(*raw.Size3), nil
	case "sphere":
		return Sphere(raw.Radius), nil
	case "cylinder":
		return Cylinder(raw.Height, raw.Radius), nil
	case "rect":
		if raw.Size2 == nil {
			return nil, fmt.Errorf("geom: rect node missing size2")
		}
		return Rect(*raw.Size2), nil
	case "circle":
		return Circle(raw.Radius), nil
	case "polygon":
		return Polygon(raw.Points), nil
	case "boolean":
		op, err := ParseBoolOp(raw.Op)
		if err != nil {
			return nil, err
		}
		if err := checkUniformDim(children); err != nil {
			return nil, err
		}
		return Boolean(op, children...), nil
	case "transform":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if raw.Matrix == nil {
			return nil, fmt.Errorf("geom: transform node missing matrix")
		}
		if err := checkDim(b, Dim3, raw.Kind); err != nil {
			return nil, err
		}
		return Transform(b, *raw.Matrix), nil
	case "transform2d":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if raw.Matrix2 == nil {
			return nil, fmt.Errorf("geom: transform2d node missing matrix2")
		}
		if err := checkDim(b, Dim2, raw.Kind); err != nil {
			return nil, err
		}
		return Transform2D(b, *raw.Matrix2), nil
	case "hull":
		b, err := body()
		if err != nil {
			return nil, err
		}
		return Hull(b), nil
	case "materialized":
		if raw.Key == "" {
			return nil, fmt.Errorf("geom: materialized node missing key")
		}
		dim, err := parseDim(raw.Dim)
		if err != nil {
			return nil, err
		}
		return Materialized(OpaqueKey(raw.Key), dim), nil
	case "offset":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if err := checkDim(b, Dim2, raw.Kind); err != nil {
			return nil, err
		}
		return Offset(b, raw.Delta), nil
	case "project":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if err := checkDim(b, Dim3, raw.Kind); err != nil {
			return nil, err
		}
		return Project(b), nil
	case "slice":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if err := checkDim(b, Dim3, raw.Kind); err != nil {
			return nil, err
		}
		return Slice(b, raw.Z), nil
	case "extrude":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if err := checkDim(b, Dim2, raw.Kind); err != nil {
			return nil, err
		}
		return Extrude(b, raw.Height), nil
	case "revolve":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if err := checkDim(b, Dim2, raw.Kind); err != nil {
			return nil, err
		}
		return Revolve(b, raw.Angle), nil
	case "material":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if raw.Material == nil {
			return nil, fmt.Errorf("geom: material node missing material")
		}
		if err := checkDim(b, Dim3, raw.Kind); err != nil {
			return nil, err
		}
		return WithMaterial(b, *raw.Material), nil
	case "trim":
		b, err := body()
		if err != nil {
			return nil, err
		}
		if raw.Plane == nil {
			return nil, fmt.Errorf("geom: trim node missing plane")
		}
		if err := checkDim(b, Dim3, raw.Kind); err != nil {
			return nil, err
		}
		return Trim(b, *raw.Plane), nil
	default:
		return nil, fmt.Errorf("geom: unknown node kind %q", raw.Kind)
	}
}

func parseDim(s string) (Dim, error) {
	switch s {
	case "any", "":
		return DimAny, nil
	case "2d":
		return Dim2, nil
	case "3d":
		return Dim3, nil
	default:
		return 0, fmt.Errorf("geom: unknown dimensionality %q", s)
	}
}

// checkDim rejects decoded input whose body has the wrong dimensionality
// before it can reach a constructor, which would treat it as a
// programming error.
func checkDim(b *Node, want Dim, kind string) error {
	if b.dim != want && b.dim != DimAny {
		return fmt.Errorf("geom: %q node requires a %s body, got %s", kind, want, b.dim)
	}
	return nil
}

func checkUniformDim(children []*Node) error {
	dim := DimAny
	for _, c := range children {
		if c.dim == DimAny {
			continue
		}
		if dim == DimAny {
			dim = c.dim
			continue
		}
		if c.dim != dim {
			return fmt.Errorf("geom: boolean node mixes %s and %s children", dim, c.dim)
		}
	}
	return nil
}
