package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/normalmesh/pkg/math"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) <= tolerance
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

// corner builds a vertex with only position, uv and normal set.
func corner(p math.Vec3, uv math.Vec2, n math.Vec3) VertexAttributes {
	return VertexAttributes{Position: p, UV: uv, Normal: n}
}

// checkFrames verifies unit length, right-handedness and finiteness of every
// vertex frame.
func checkFrames(t *testing.T, vertices []VertexAttributes) {
	t.Helper()
	for i, v := range vertices {
		for _, vec := range []math.Vec3{v.Position, v.Tangent, v.Bitangent, v.Normal, v.Color} {
			if !vec.IsFinite() {
				t.Fatalf("vertex %d has non-finite attribute: %+v", i, v)
			}
		}
		if !v.UV.IsFinite() {
			t.Fatalf("vertex %d has non-finite uv: %+v", i, v)
		}
		if l := v.Normal.Length(); !near(l, 1) {
			t.Errorf("vertex %d |normal| = %v, want 1", i, l)
		}
		if l := v.Tangent.Length(); !near(l, 1) {
			t.Errorf("vertex %d |tangent| = %v, want 1", i, l)
		}
		if l := v.Bitangent.Length(); !near(l, 1) {
			t.Errorf("vertex %d |bitangent| = %v, want 1", i, l)
		}
		if h := v.Tangent.Cross(v.Bitangent).Dot(v.Normal); h <= 0 {
			t.Errorf("vertex %d frame is not right-handed: (T x B).N = %v", i, h)
		}
	}
}
