package geom

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	model := Difference(
		Translate(Box(Vec3{X: 60, Y: 40, Z: 20}), Vec3{X: -30, Y: -20}),
		Union(
			Cylinder(25, 6),
			Translate(Sphere(8), Vec3{Z: 20}),
		),
	)

	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !back.Equal(model) {
		t.Errorf("round trip changed the tree:\n got %s\nwant %s",
			back.CanonicalString(), model.CanonicalString())
	}
}

func TestEncodeRoundTripAllKinds(t *testing.T) {
	profile := Polygon([]Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 5}})
	tests := []struct {
		name string
		node *Node
	}{
		{"empty", Empty()},
		{"materialized", Materialized("cache::entry", Dim3)},
		{"hull", Hull(Union(Sphere(3), Translate(Sphere(3), Vec3{X: 20})))},
		{"offset", Offset(Circle(5), 2)},
		{"project", Project(Box(Vec3{X: 4, Y: 4, Z: 4}))},
		{"slice", Slice(Cylinder(10, 3), 5)},
		{"extrude", Extrude(profile, 12)},
		{"revolve", Revolve(Transform2D(Rect(Vec2{X: 2, Y: 8}), Translation2(Vec2{X: 10})), math.Pi)},
		{"material", WithMaterial(Sphere(4), Material{Name: "brass", Color: "#b5a642"})},
		{"trim", Trim(Box(Vec3{X: 10, Y: 10, Z: 10}), Plane{Normal: Vec3{Z: 1}, Offset: 5})},
		{"transform2d", Transform2D(Rect(Vec2{X: 3, Y: 2}), Rotation2(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.node)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			back, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !back.Equal(tt.node) {
				t.Errorf("round trip changed the tree:\n got %s\nwant %s",
					back.CanonicalString(), tt.node.CanonicalString())
			}
		})
	}
}

func TestDecodeCanonicalizes(t *testing.T) {
	// A hand-written document containing an empty union operand and an
	// identity transform decodes to the canonical form without them.
	doc := `{
		"kind": "transform",
		"matrix": {"m": [1,0,0,0, 0,1,0,0, 0,0,1,0]},
		"children": [{
			"kind": "boolean",
			"op": "union",
			"children": [
				{"kind": "box", "size": {"x": 10, "y": 10, "z": 5}},
				{"kind": "sphere", "radius": 0}
			]
		}]
	}`
	n, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := Box(Vec3{X: 10, Y: 10, Z: 5})
	if !n.Equal(want) {
		t.Errorf("decoded tree = %s, want %s", n.CanonicalString(), want.CanonicalString())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not json", `{`, "decode node"},
		{"unknown kind", `{"kind": "torus"}`, `unknown node kind "torus"`},
		{"box without size", `{"kind": "box"}`, "missing size"},
		{"bad bool op", `{"kind": "boolean", "op": "xor"}`, "xor"},
		{"transform without child", `{"kind": "transform", "matrix": {"m": [1,0,0,0,0,1,0,0,0,0,1,0]}}`, "exactly one child"},
		{
			"transform without matrix",
			`{"kind": "transform", "children": [{"kind": "sphere", "radius": 1}]}`,
			"missing matrix",
		},
		{
			"extrude of a solid",
			`{"kind": "extrude", "height": 5, "children": [{"kind": "sphere", "radius": 1}]}`,
			"requires a 2d body",
		},
		{
			"mixed boolean dimensions",
			`{"kind": "boolean", "op": "union", "children": [
				{"kind": "sphere", "radius": 1},
				{"kind": "circle", "radius": 1}
			]}`,
			"mixes",
		},
		{"materialized without key", `{"kind": "materialized", "dim": "3d"}`, "missing key"},
		{"materialized bad dim", `{"kind": "materialized", "key": "k", "dim": "4d"}`, "unknown dimensionality"},
		{
			"trim without plane",
			`{"kind": "trim", "children": [{"kind": "sphere", "radius": 1}]}`,
			"missing plane",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEncodeMaterializedCarriesDim(t *testing.T) {
	n := Materialized("legs", Dim2)
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back.Dim() != Dim2 {
		t.Errorf("decoded dim = %v, want 2d", back.Dim())
	}
}
