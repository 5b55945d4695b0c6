package math

import (
	"math"
	"testing"
)

func TestVec2Sub(t *testing.T) {
	got := Vec2{4, 6}.Sub(Vec2{1, 2})
	want := Vec2{3, 4}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec2Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float32
	}{
		{"counter-clockwise", Vec2{1, 0}, Vec2{0, 1}, 1},
		{"clockwise", Vec2{0, 1}, Vec2{1, 0}, -1},
		{"collinear", Vec2{0, 1}, Vec2{0, 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Vec2.Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestVec3Perpendicular(t *testing.T) {
	dirs := []Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		Vec3{1, 1, 1}.Normalize(),
		Vec3{-0.95, 0.1, 0.3}.Normalize(),
	}
	for _, d := range dirs {
		p := d.Perpendicular()
		if l := p.Length(); abs(l-1) > 1e-5 {
			t.Errorf("Perpendicular(%v) length = %v, want 1", d, l)
		}
		if dot := p.Dot(d); abs(dot) > 1e-5 {
			t.Errorf("Perpendicular(%v) dot = %v, want 0", d, dot)
		}
	}
}

func TestVec3Reject(t *testing.T) {
	got := Vec3{1, 2, 3}.Reject(Vec3{0, 0, 1})
	want := Vec3{1, 2, 0}
	if got != want {
		t.Errorf("Vec3.Reject() = %v, want %v", got, want)
	}
}

func TestVec3IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{nan, 0, 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{0, 0, inf}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
	if (Vec2{0, nan}).IsFinite() {
		t.Error("NaN Vec2 reported finite")
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3FromCols(Vec3{1, 2, 3}, Vec3{4, 5, 6}, Vec3{7, 8, 9})
	tr := m.Transpose()
	if tr.Col(0) != (Vec3{1, 4, 7}) {
		t.Errorf("Transpose col 0 = %v, want (1, 4, 7)", tr.Col(0))
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity")
	}
}

func TestMat3DeterminantHandedness(t *testing.T) {
	right := Mat3FromCols(Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1})
	left := Mat3FromCols(Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, 1})
	if d := right.Determinant(); d != 1 {
		t.Errorf("right-handed determinant = %v, want 1", d)
	}
	if d := left.Determinant(); d != -1 {
		t.Errorf("left-handed determinant = %v, want -1", d)
	}
}
