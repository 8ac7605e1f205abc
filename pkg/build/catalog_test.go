package build

import (
	"testing"

	"github.com/chazu/burl/pkg/geom"
)

func TestPartCatalogDefineAndLookup(t *testing.T) {
	leg := geom.Box(geom.Vec3{X: 1, Y: 1, Z: 10})
	pc := NewPartCatalog().Define("leg", leg)

	got, ok := pc.Lookup("leg")
	if !ok || got != leg {
		t.Error("Lookup should return the bound node")
	}
	if _, ok := pc.Lookup("top"); ok {
		t.Error("unbound name should miss")
	}
}

func TestPartCatalogDefineIsPersistent(t *testing.T) {
	base := NewPartCatalog().Define("leg", geom.Sphere(1))
	extended := base.Define("top", geom.Sphere(2))

	if base.Len() != 1 {
		t.Errorf("base catalog grew to %d parts", base.Len())
	}
	if extended.Len() != 2 {
		t.Errorf("extended catalog has %d parts, want 2", extended.Len())
	}
}

func TestPartCatalogRedefineReplaces(t *testing.T) {
	pc := NewPartCatalog().
		Define("leg", geom.Sphere(1)).
		Define("leg", geom.Sphere(2))
	n, _ := pc.Lookup("leg")
	if !n.Equal(geom.Sphere(2)) {
		t.Error("redefinition should replace the binding")
	}
	if pc.Len() != 1 {
		t.Errorf("catalog has %d parts, want 1", pc.Len())
	}
}

func TestPartCatalogNamesSorted(t *testing.T) {
	pc := NewPartCatalog().
		Define("top", geom.Sphere(1)).
		Define("apron", geom.Sphere(2)).
		Define("leg", geom.Sphere(3))
	got := pc.Names()
	want := []string{"apron", "leg", "top"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPartCatalogMergeReceiverWins(t *testing.T) {
	a := NewPartCatalog().Define("leg", geom.Sphere(1))
	b := NewPartCatalog().
		Define("leg", geom.Sphere(9)).
		Define("top", geom.Sphere(2))

	merged := a.Merge(b).(*PartCatalog)
	if merged.Len() != 2 {
		t.Fatalf("merged catalog has %d parts, want 2", merged.Len())
	}
	n, _ := merged.Lookup("leg")
	if !n.Equal(geom.Sphere(1)) {
		t.Error("the receiver's binding should win on collision")
	}
}
