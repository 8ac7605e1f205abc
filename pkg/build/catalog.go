package build

import (
	"sort"

	"github.com/chazu/burl/pkg/geom"
)

// CatalogElement is the conventional element name for the part catalog.
const CatalogElement = "parts"

// PartCatalog is a registry of named sub-parts collected while building a
// tree. It is an Element: combining build results unions their catalogs.
// The catalog is persistent in the functional sense; Define returns a new
// catalog and never mutates the receiver.
type PartCatalog struct {
	parts map[string]*geom.Node
}

// NewPartCatalog returns an empty catalog.
func NewPartCatalog() *PartCatalog {
	return &PartCatalog{parts: map[string]*geom.Node{}}
}

// Define returns a copy of the catalog with name bound to node. Redefining
// an existing name replaces the binding.
func (pc *PartCatalog) Define(name string, node *geom.Node) *PartCatalog {
	out := &PartCatalog{parts: make(map[string]*geom.Node, len(pc.parts)+1)}
	for k, v := range pc.parts {
		out.parts[k] = v
	}
	out.parts[name] = node
	return out
}

// Lookup returns the node bound to name, if any.
func (pc *PartCatalog) Lookup(name string) (*geom.Node, bool) {
	n, ok := pc.parts[name]
	return n, ok
}

// Names returns all defined part names in sorted order.
func (pc *PartCatalog) Names() []string {
	names := make([]string, 0, len(pc.parts))
	for name := range pc.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined parts.
func (pc *PartCatalog) Len() int { return len(pc.parts) }

// Merge implements Element. Bindings from both catalogs are unioned; on a
// name collision the receiver's binding wins, matching the rule that an
// earlier definition holds.
func (pc *PartCatalog) Merge(other Element) Element {
	oc, ok := other.(*PartCatalog)
	if !ok {
		return pc
	}
	out := &PartCatalog{parts: make(map[string]*geom.Node, len(pc.parts)+len(oc.parts))}
	for k, v := range oc.parts {
		out.parts[k] = v
	}
	for k, v := range pc.parts {
		out.parts[k] = v
	}
	return out
}
