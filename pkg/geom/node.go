package geom

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Dim is the dimensionality of a node's output geometry.
type Dim int

const (
	// DimAny marks nodes with no inherent dimensionality (empty).
	DimAny Dim = 0
	// Dim2 marks nodes producing planar geometry.
	Dim2 Dim = 2
	// Dim3 marks nodes producing solid geometry.
	Dim3 Dim = 3
)

func (d Dim) String() string {
	switch d {
	case DimAny:
		return "any"
	case Dim2:
		return "2d"
	case Dim3:
		return "3d"
	default:
		return "unknown"
	}
}

// NodeKind enumerates the closed set of node variants.
type NodeKind int

const (
	KindEmpty NodeKind = iota
	KindShape            // dimension-specific primitive
	KindBoolean          // union / difference / intersection
	KindTransform        // affine transform of the body
	KindHull             // convex hull of the body
	KindMaterialized     // reference to a cached result; never evaluated directly
	KindOffset           // 2D: offset by a signed distance
	KindProjection       // 2D: silhouette or slice of a 3D body
	KindExtrude          // 3D: linear extrusion of a 2D body
	KindRevolve          // 3D: revolution of a 2D body
	KindMaterial         // 3D: material tag on the body
	KindTrim             // 3D: trim by a half-space
)

func (k NodeKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindShape:
		return "shape"
	case KindBoolean:
		return "boolean"
	case KindTransform:
		return "transform"
	case KindHull:
		return "hull"
	case KindMaterialized:
		return "materialized"
	case KindOffset:
		return "offset"
	case KindProjection:
		return "projection"
	case KindExtrude:
		return "extrude"
	case KindRevolve:
		return "revolve"
	case KindMaterial:
		return "material"
	case KindTrim:
		return "trim"
	default:
		return "unknown"
	}
}

// BoolOp selects the boolean combination applied by a KindBoolean node.
type BoolOp int

const (
	OpUnion BoolOp = iota
	OpDifference
	OpIntersection
)

func (op BoolOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// ParseBoolOp is the inverse of BoolOp.String.
func ParseBoolOp(s string) (BoolOp, error) {
	switch s {
	case "union":
		return OpUnion, nil
	case "difference":
		return OpDifference, nil
	case "intersection":
		return OpIntersection, nil
	default:
		return 0, fmt.Errorf("geom: unknown boolean op %q", s)
	}
}

// OpaqueKey is the type-erased identity of a cache entry. Composite keys
// built by the cachekey package erase into this type, and materialized
// nodes carry one.
type OpaqueKey string

// NodeData is the closed interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// Node is one immutable operation in a geometry expression tree. Nodes are
// created exclusively through the constructors in this package, which
// canonicalize on construction; two nodes describing equivalent geometry
// hash to the same structural identity. A Node is a pure value: it is safe
// to share across goroutines and reuse between trees.
type Node struct {
	kind     NodeKind
	dim      Dim
	data     NodeData
	children []*Node
	canon    string // canonical identity; injective w.r.t. observable result
	hash     uint64 // xxhash of canon, memoized
}

// newNode computes the memoized structural identity. Every constructor
// funnels through here.
func newNode(kind NodeKind, dim Dim, data NodeData, children []*Node, canon string) *Node {
	return &Node{
		kind:     kind,
		dim:      dim,
		data:     data,
		children: children,
		canon:    canon,
		hash:     xxhash.Sum64String(canon),
	}
}

// Kind returns the node variant.
func (n *Node) Kind() NodeKind { return n.kind }

// Dim returns the dimensionality of the node's output.
func (n *Node) Dim() Dim { return n.dim }

// Data returns the kind-specific payload. The returned value must not be
// mutated.
func (n *Node) Data() NodeData { return n.data }

// Children returns the child nodes. The returned slice must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// IsEmpty reports whether the node canonicalized to empty.
func (n *Node) IsEmpty() bool { return n.kind == KindEmpty }

// Hash returns the memoized structural hash. Numeric fields were rounded
// to the canonical precision at construction, so float noise below the
// precision grid does not change the hash.
func (n *Node) Hash() uint64 { return n.hash }

// CanonicalString returns the canonical identity of the node. It captures
// kind, rounded parameters, and the identities of all children, and is
// injective with respect to observable results.
func (n *Node) CanonicalString() string { return n.canon }

// Equal reports deep structural equality after canonicalization.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.hash == o.hash && n.canon == o.canon
}
