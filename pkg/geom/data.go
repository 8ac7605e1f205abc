package geom

// ---------------------------------------------------------------------------
// Primitive payloads
// ---------------------------------------------------------------------------

// BoxData is an axis-aligned box with its minimum corner at the origin.
type BoxData struct {
	Size Vec3 `json:"size"`
}

func (BoxData) nodeData() {}

// SphereData is a sphere centered at the origin.
type SphereData struct {
	Radius float64 `json:"radius"`
}

func (SphereData) nodeData() {}

// CylinderData is a cylinder along the Z axis centered at the origin.
type CylinderData struct {
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

func (CylinderData) nodeData() {}

// RectData is an axis-aligned rectangle with its minimum corner at the
// origin.
type RectData struct {
	Size Vec2 `json:"size"`
}

func (RectData) nodeData() {}

// CircleData is a circle centered at the origin.
type CircleData struct {
	Radius float64 `json:"radius"`
}

func (CircleData) nodeData() {}

// PolygonData is a simple polygon given by its vertices in order.
type PolygonData struct {
	Points []Vec2 `json:"points"`
}

func (PolygonData) nodeData() {}

// ---------------------------------------------------------------------------
// Combinator payloads
// ---------------------------------------------------------------------------

// BooleanData carries the operation of a boolean node.
type BooleanData struct {
	Op BoolOp `json:"op"`
}

func (BooleanData) nodeData() {}

// TransformData carries the affine transform of a 3D transform node.
// Adjacent transforms are fused at construction, so a canonical tree never
// contains a transform node whose body is another transform.
type TransformData struct {
	Matrix Affine3 `json:"matrix"`
}

func (TransformData) nodeData() {}

// Transform2DData carries the affine transform of a 2D transform node.
type Transform2DData struct {
	Matrix Affine2 `json:"matrix"`
}

func (Transform2DData) nodeData() {}

// HullData marks a convex hull node. It has no parameters.
type HullData struct{}

func (HullData) nodeData() {}

// MaterializedData references a previously stored evaluation result. Nodes
// carrying it are produced exclusively by the caching layer and resolved by
// cache lookup, never by evaluation.
type MaterializedData struct {
	Key OpaqueKey `json:"key"`
}

func (MaterializedData) nodeData() {}

// ---------------------------------------------------------------------------
// Dimension-specific payloads
// ---------------------------------------------------------------------------

// OffsetData offsets a 2D body outward (positive) or inward (negative).
type OffsetData struct {
	Delta float64 `json:"delta"`
}

func (OffsetData) nodeData() {}

// ProjectionData flattens a 3D body into 2D, either as its full silhouette
// or as a cross-section at height Z.
type ProjectionData struct {
	Slice bool    `json:"slice,omitempty"`
	Z     float64 `json:"z,omitempty"`
}

func (ProjectionData) nodeData() {}

// ExtrudeData linearly extrudes a 2D body along +Z.
type ExtrudeData struct {
	Height float64 `json:"height"`
}

func (ExtrudeData) nodeData() {}

// RevolveData revolves a 2D body about the Z axis by Angle radians.
type RevolveData struct {
	Angle float64 `json:"angle"`
}

func (RevolveData) nodeData() {}

// MaterialData tags the body's parts with a material.
type MaterialData struct {
	Material Material `json:"material"`
}

func (MaterialData) nodeData() {}

// TrimData trims a 3D body to the half-space of Plane.
type TrimData struct {
	Plane Plane `json:"plane"`
}

func (TrimData) nodeData() {}
