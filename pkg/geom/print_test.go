package geom

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	model := Difference(
		Box(Vec3{X: 20, Y: 20, Z: 10}),
		Translate(Cylinder(30, 4), Vec3{X: 10, Y: 10}),
	)
	got := Format(model)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	want := []string{
		"difference",
		"  box size=(20, 20, 10)",
		"  transform matrix=[1 0 0 10; 0 1 0 10; 0 0 1 0]",
		"    cylinder height=30 radius=4",
	}
	if len(lines) != len(want) {
		t.Fatalf("Format produced %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "<nil>\n" {
		t.Errorf("Format(nil) = %q", got)
	}
}

func TestFormatCoversAllKinds(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{Empty(), "empty"},
		{Sphere(3), "sphere radius=3"},
		{Rect(Vec2{X: 4, Y: 2}), "rect size=(4, 2)"},
		{Circle(5), "circle radius=5"},
		{Polygon([]Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}), "polygon points=[(0, 0) (1, 0) (0, 1)]"},
		{Hull(Sphere(1)), "hull"},
		{Materialized("legs", Dim3), "materialized key=legs"},
		{Offset(Circle(5), 2), "offset delta=2"},
		{Project(Sphere(1)), "project"},
		{Slice(Sphere(2), 1), "slice z=1"},
		{Extrude(Circle(2), 7), "extrude height=7"},
		{WithMaterial(Sphere(1), Material{Name: "oak", Color: "#aa8855"}), `material name="oak" color="#aa8855"`},
		{Trim(Sphere(4), Plane{Normal: Vec3{Z: 1}, Offset: 2}), "trim normal=(0, 0, 1) offset=2"},
	}
	for _, tt := range tests {
		got := Format(tt.node)
		first := strings.SplitN(got, "\n", 2)[0]
		if first != tt.want {
			t.Errorf("Format first line = %q, want %q", first, tt.want)
		}
	}
}

func TestTruncateKey(t *testing.T) {
	short := "box(1,1,1)"
	if got := truncateKey(short); got != short {
		t.Errorf("short key should pass through, got %q", got)
	}
	long := strings.Repeat("k", maxPrintedKeyLen+10)
	got := truncateKey(long)
	if len(got) != maxPrintedKeyLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long key should truncate with ellipsis, got %q (len %d)", got, len(got))
	}
}
