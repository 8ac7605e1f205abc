// Package build defines the boundary between the declarative builder layer
// and the evaluation engine: the BuildResult pairing a node tree with a
// side channel of typed, mergeable elements, and the Environment threaded
// through tree construction.
package build

import (
	"github.com/chazu/burl/pkg/eval"
	"github.com/chazu/burl/pkg/geom"
)

// Element is a named piece of cross-cutting build state. When several
// build results are combined, colliding elements are merged rather than
// overwritten.
type Element interface {
	// Merge combines the receiver with another element stored under the
	// same name and returns the combined element. Merge must not mutate
	// either input.
	Merge(other Element) Element
}

// Elements holds independently typed elements by name.
type Elements map[string]Element

// Get returns the element stored under name, if any.
func (e Elements) Get(name string) (Element, bool) {
	v, ok := e[name]
	return v, ok
}

// With returns a copy of e with el stored under name, merging with any
// existing element of that name.
func (e Elements) With(name string, el Element) Elements {
	out := make(Elements, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	if prev, ok := out[name]; ok {
		out[name] = prev.Merge(el)
	} else {
		out[name] = el
	}
	return out
}

// MergeElements unions several element maps, merging collisions in order.
func MergeElements(maps ...Elements) Elements {
	out := make(Elements)
	for _, m := range maps {
		for name, el := range m {
			if prev, ok := out[name]; ok {
				out[name] = prev.Merge(el)
			} else {
				out[name] = el
			}
		}
	}
	return out
}

// BuildResult pairs a node tree with the elements produced while the
// builder layer assembled it.
type BuildResult struct {
	Node     *geom.Node
	Elements Elements
}

// Combine joins several build results under a boolean operation. The node
// trees combine via the usual canonicalization rules and the element maps
// merge element-wise.
func Combine(op geom.BoolOp, results ...BuildResult) BuildResult {
	nodes := make([]*geom.Node, len(results))
	maps := make([]Elements, len(results))
	for i, r := range results {
		nodes[i] = r.Node
		maps[i] = r.Elements
	}
	return BuildResult{
		Node:     geom.Boolean(op, nodes...),
		Elements: MergeElements(maps...),
	}
}

// Builder is a composable unit of the declarative layer. The engine only
// requires that building eventually yields a node plus an element map.
type Builder interface {
	Build(env Environment, ec *eval.Context) (BuildResult, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(env Environment, ec *eval.Context) (BuildResult, error)

// Build implements Builder.
func (f BuilderFunc) Build(env Environment, ec *eval.Context) (BuildResult, error) {
	return f(env, ec)
}
