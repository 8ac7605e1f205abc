package geom

import (
	"math"
	"testing"
)

func vecClose3(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func vecClose2(a, b Vec2) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestAffine3MulAppliesRightFirst(t *testing.T) {
	// Rotate about Z then translate: the rotation happens in the original
	// frame, the translation afterwards.
	m := Translation3(Vec3{X: 10}).Mul(RotationZ3(math.Pi / 2))
	got := m.Apply(Vec3{X: 1})
	if !vecClose3(got, Vec3{X: 10, Y: 1}) {
		t.Errorf("Apply = %+v, want (10, 1, 0)", got)
	}

	// The other order translates first, then rotates the translated point.
	m = RotationZ3(math.Pi / 2).Mul(Translation3(Vec3{X: 10}))
	got = m.Apply(Vec3{X: 1})
	if !vecClose3(got, Vec3{Y: 11}) {
		t.Errorf("Apply = %+v, want (0, 11, 0)", got)
	}
}

func TestAffine3Inverse(t *testing.T) {
	m := Translation3(Vec3{X: 3, Y: -2, Z: 7}).
		Mul(RotationY3(0.6)).
		Mul(Scaling3(Vec3{X: 2, Y: 2, Z: 2}))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible transform")
	}
	p := Vec3{X: 1.5, Y: -4, Z: 2}
	if got := inv.Apply(m.Apply(p)); !vecClose3(got, p) {
		t.Errorf("inverse round trip = %+v, want %+v", got, p)
	}

	if _, ok := Scaling3(Vec3{X: 1, Y: 0, Z: 1}).Inverse(); ok {
		t.Error("singular transform should not invert")
	}
}

func TestAffine3Determinant(t *testing.T) {
	if d := Identity3().Determinant(); d != 1 {
		t.Errorf("identity determinant = %v", d)
	}
	if d := Scaling3(Vec3{X: 2, Y: 3, Z: 4}).Determinant(); math.Abs(d-24) > 1e-12 {
		t.Errorf("scaling determinant = %v, want 24", d)
	}
	if d := RotationX3(1.2).Determinant(); math.Abs(d-1) > 1e-12 {
		t.Errorf("rotation determinant = %v, want 1", d)
	}
}

func TestAffine3IsIdentity(t *testing.T) {
	if !Identity3().IsIdentity() {
		t.Error("identity should report identity")
	}
	nearly := Identity3()
	nearly.M[5] = 1 + 1e-9
	if !nearly.IsIdentity() {
		t.Error("sub-precision drift should round back to identity")
	}
	if Translation3(Vec3{X: 1}).IsIdentity() {
		t.Error("translation is not identity")
	}
}

func TestAffine3RotationsComposeToFullTurn(t *testing.T) {
	quarter := RotationZ3(math.Pi / 2)
	full := quarter.Mul(quarter).Mul(quarter).Mul(quarter)
	if !full.IsIdentity() {
		t.Errorf("four quarter turns should round to identity, got %+v", full.Rounded())
	}
}

func TestAffine2MulAndApply(t *testing.T) {
	m := Translation2(Vec2{X: 5}).Mul(Rotation2(math.Pi / 2))
	got := m.Apply(Vec2{X: 1})
	if !vecClose2(got, Vec2{X: 5, Y: 1}) {
		t.Errorf("Apply = %+v, want (5, 1)", got)
	}
}

func TestAffine2Inverse(t *testing.T) {
	m := Rotation2(0.8).Mul(Scaling2(Vec2{X: 3, Y: 0.5})).Mul(Translation2(Vec2{X: -1, Y: 4}))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible transform")
	}
	p := Vec2{X: 2, Y: -7}
	if got := inv.Apply(m.Apply(p)); !vecClose2(got, p) {
		t.Errorf("inverse round trip = %+v, want %+v", got, p)
	}

	if _, ok := Scaling2(Vec2{X: 0, Y: 1}).Inverse(); ok {
		t.Error("singular transform should not invert")
	}
}

func TestAffine2IsIdentity(t *testing.T) {
	if !Identity2().IsIdentity() {
		t.Error("identity should report identity")
	}
	if Rotation2(0.1).IsIdentity() {
		t.Error("rotation is not identity")
	}
}
