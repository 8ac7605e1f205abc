package tessellate

import (
	"context"
	"testing"

	"github.com/chazu/burl/pkg/eval"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel/kerneltest"
)

func TestMeshes(t *testing.T) {
	k := kerneltest.New()
	ec := eval.NewContext(k)

	model := geom.WithMaterial(geom.Box(geom.Vec3{X: 10, Y: 10, Z: 5}), geom.Material{Name: "oak"})
	r, err := ec.Result(context.Background(), model)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}

	meshes, err := Meshes(k, r)
	if err != nil {
		t.Fatalf("Meshes failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(meshes))
	}
	if meshes[0].Label != "oak" {
		t.Errorf("mesh label = %q, want material name", meshes[0].Label)
	}
	if k.Calls("Mesh") != 1 {
		t.Errorf("Mesh called %d times, want 1", k.Calls("Mesh"))
	}
}

func TestMeshesEmptyResult(t *testing.T) {
	k := kerneltest.New()
	meshes, err := Meshes(k, &eval.Result{})
	if err != nil {
		t.Fatalf("Meshes failed: %v", err)
	}
	if meshes != nil {
		t.Errorf("expected no meshes for an empty result, got %d", len(meshes))
	}
}

func TestMeshesRejects2D(t *testing.T) {
	k := kerneltest.New()
	ec := eval.NewContext(k)

	r, err := ec.Result(context.Background(), geom.Circle(5))
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if _, err := Meshes(k, r); err == nil {
		t.Fatal("expected error meshing a 2D result")
	}
}
