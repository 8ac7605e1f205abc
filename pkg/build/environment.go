package build

// DefaultSegments is the default circle tessellation segment count.
const DefaultSegments = 32

// DefaultTolerance is the default geometric tolerance in model units (mm).
const DefaultTolerance = 0.01

// Environment carries settings propagated down the builder tree. It is a
// value type: With* methods return a modified copy and never affect the
// parent scope.
type Environment struct {
	Segments  int
	Tolerance float64
	values    map[string]any
}

// NewEnvironment returns an environment with default settings.
func NewEnvironment() Environment {
	return Environment{
		Segments:  DefaultSegments,
		Tolerance: DefaultTolerance,
	}
}

// WithSegments returns a copy with the segment count replaced.
func (e Environment) WithSegments(n int) Environment {
	e.Segments = n
	return e
}

// WithTolerance returns a copy with the tolerance replaced.
func (e Environment) WithTolerance(tol float64) Environment {
	e.Tolerance = tol
	return e
}

// WithValue returns a copy carrying an arbitrary named value.
func (e Environment) WithValue(name string, v any) Environment {
	values := make(map[string]any, len(e.values)+1)
	for k, val := range e.values {
		values[k] = val
	}
	values[name] = v
	e.values = values
	return e
}

// Value returns the named value, if set in this or a parent scope.
func (e Environment) Value(name string) (any, bool) {
	v, ok := e.values[name]
	return v, ok
}
