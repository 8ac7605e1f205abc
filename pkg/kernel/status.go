package kernel

// Status classifies the health of kernel geometry. The non-OK values
// mirror the fault taxonomy of manifold-style mesh kernels.
type Status int

const (
	// StatusOK marks usable geometry.
	StatusOK Status = iota
	// StatusNonFiniteVertex marks geometry containing NaN or Inf
	// coordinates.
	StatusNonFiniteVertex
	// StatusNotManifold marks a mesh that is not a closed manifold.
	StatusNotManifold
	// StatusInvalidConstruction marks geometry built from invalid
	// parameters the kernel could not reject up front.
	StatusInvalidConstruction
	// StatusUnsupported marks an operation the backend cannot perform.
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNonFiniteVertex:
		return "non-finite vertex"
	case StatusNotManifold:
		return "not manifold"
	case StatusInvalidConstruction:
		return "invalid construction"
	case StatusUnsupported:
		return "unsupported operation"
	default:
		return "unknown"
	}
}

// OK reports whether the geometry is usable.
func (s Status) OK() bool { return s == StatusOK }
