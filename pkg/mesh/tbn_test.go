package mesh

import (
	"testing"

	"github.com/Faultbox/normalmesh/pkg/math"
)

var up = math.Vec3{Z: 1}

func TestSolveTangentsReconstructsEdges(t *testing.T) {
	tests := []struct {
		name    string
		corners [3]VertexAttributes
	}{
		{
			name: "axis aligned",
			corners: [3]VertexAttributes{
				corner(math.Vec3{}, math.Vec2{}, up),
				corner(math.Vec3{X: 2}, math.Vec2{X: 1}, up),
				corner(math.Vec3{Y: 3}, math.Vec2{Y: 1}, up),
			},
		},
		{
			name: "skewed",
			corners: [3]VertexAttributes{
				corner(math.Vec3{X: 1, Y: 1, Z: 0.5}, math.Vec2{X: 0.1, Y: 0.2}, up),
				corner(math.Vec3{X: 3, Y: 1.5, Z: 0}, math.Vec2{X: 0.6, Y: 0.3}, up),
				corner(math.Vec3{X: 0.5, Y: 4, Z: 1}, math.Vec2{X: 0.2, Y: 0.9}, up),
			},
		},
		{
			name: "mirrored uv",
			corners: [3]VertexAttributes{
				corner(math.Vec3{}, math.Vec2{X: 1}, up),
				corner(math.Vec3{X: 1}, math.Vec2{}, up),
				corner(math.Vec3{Y: 1}, math.Vec2{X: 1, Y: 1}, up),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tan, bit, ok := SolveTangents(tt.corners)
			if !ok {
				t.Fatal("SolveTangents reported degenerate UVs")
			}
			for i := 1; i <= 2; i++ {
				edge := tt.corners[i].Position.Sub(tt.corners[0].Position)
				duv := tt.corners[i].UV.Sub(tt.corners[0].UV)
				got := tan.Scale(duv.X).Add(bit.Scale(duv.Y))
				if !nearVec(got, edge) {
					t.Errorf("edge %d: T*du + B*dv = %v, want %v", i, got, edge)
				}
			}
		})
	}
}

func TestComputeTBNIsolatedTriangle(t *testing.T) {
	corners := [3]VertexAttributes{
		corner(math.Vec3{}, math.Vec2{}, up),
		corner(math.Vec3{X: 2, Y: 1}, math.Vec2{X: 1}, up),
		corner(math.Vec3{Y: 3}, math.Vec2{Y: 1}, up),
	}
	raw, _, ok := SolveTangents(corners)
	if !ok {
		t.Fatal("unexpected degenerate UVs")
	}

	basis := ComputeTBN(corners, up)
	tan, bit, n := basis.Col(0), basis.Col(1), basis.Col(2)

	if n != up {
		t.Errorf("N = %v, want expected normal %v", n, up)
	}
	// The solved tangent already lies in the triangle plane, so the frame
	// tangent is its normalized direction.
	if !nearVec(tan, raw.Normalize()) {
		t.Errorf("T = %v, want %v", tan, raw.Normalize())
	}
	if !near(tan.Length(), 1) || !near(bit.Length(), 1) {
		t.Errorf("frame not unit: |T| = %v, |B| = %v", tan.Length(), bit.Length())
	}
	if d := tan.Dot(n); !near(d, 0) {
		t.Errorf("T.N = %v, want 0", d)
	}
	if h := basis.Determinant(); !near(h, 1) {
		t.Errorf("det(TBN) = %v, want 1", h)
	}
}

func TestComputeTBNDegenerateUV(t *testing.T) {
	tests := []struct {
		name string
		uvs  [3]math.Vec2
	}{
		{"shared U", [3]math.Vec2{{X: 0.5, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 1}}},
		{"identical", [3]math.Vec2{{X: 0.3, Y: 0.3}, {X: 0.3, Y: 0.3}, {X: 0.3, Y: 0.3}}},
		{"collinear diagonal", [3]math.Vec2{{X: 0, Y: 0}, {X: 0.25, Y: 0.25}, {X: 1, Y: 1}}},
	}
	normal := math.Vec3{X: 1, Y: 2, Z: 2}.Normalize()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corners := [3]VertexAttributes{
				corner(math.Vec3{}, tt.uvs[0], normal),
				corner(math.Vec3{X: 2, Y: -1}, tt.uvs[1], normal),
				corner(math.Vec3{Y: 1, Z: -1}, tt.uvs[2], normal),
			}
			if _, _, ok := SolveTangents(corners); ok {
				t.Error("SolveTangents should reject collinear UVs")
			}

			basis := ComputeTBN(corners, normal)
			tan := basis.Col(0)
			if !tan.IsFinite() || !basis.Col(1).IsFinite() {
				t.Fatalf("non-finite frame: %v", basis)
			}
			if !near(tan.Length(), 1) {
				t.Errorf("|T| = %v, want 1", tan.Length())
			}
			if d := tan.Dot(normal); !near(d, 0) {
				t.Errorf("T.N = %v, want 0", d)
			}
		})
	}
}

func TestComputeTBNOrientation(t *testing.T) {
	// V runs along -Y, as after a V flip: the frame stays right-handed
	// and T still follows increasing U.
	corners := [3]VertexAttributes{
		corner(math.Vec3{}, math.Vec2{Y: 1}, up),
		corner(math.Vec3{X: 1}, math.Vec2{X: 1, Y: 1}, up),
		corner(math.Vec3{Y: 1}, math.Vec2{}, up),
	}
	basis := ComputeTBN(corners, up)

	if !nearVec(basis.Col(0), math.Vec3{X: 1}) {
		t.Errorf("T = %v, want +X", basis.Col(0))
	}
	if !nearVec(basis.Col(1), math.Vec3{Y: 1}) {
		t.Errorf("B = %v, want +Y", basis.Col(1))
	}
	if h := basis.Determinant(); h <= 0 {
		t.Errorf("det(TBN) = %v, want > 0", h)
	}
}

func TestComputeTBNCornerOrder(t *testing.T) {
	// uv equals position, so increasing U is +X whatever the winding.
	p := [3]math.Vec3{{}, {X: 1}, {Y: 1}}
	orders := [][3]int{
		{0, 1, 2}, {1, 2, 0}, {2, 0, 1},
		{0, 2, 1}, {2, 1, 0}, {1, 0, 2},
	}
	for _, n := range []math.Vec3{up, up.Neg()} {
		for _, o := range orders {
			var corners [3]VertexAttributes
			for k, i := range o {
				corners[k] = corner(p[i], math.Vec2{X: p[i].X, Y: p[i].Y}, n)
			}
			basis := ComputeTBN(corners, n)

			if !nearVec(basis.Col(0), math.Vec3{X: 1}) {
				t.Errorf("order %v N %v: T = %v, want +X", o, n, basis.Col(0))
			}
			if want := n.Cross(math.Vec3{X: 1}); !nearVec(basis.Col(1), want) {
				t.Errorf("order %v N %v: B = %v, want %v", o, n, basis.Col(1), want)
			}
			if h := basis.Determinant(); !near(h, 1) {
				t.Errorf("order %v N %v: det(TBN) = %v, want 1", o, n, h)
			}
		}
	}
}

func TestComputeTBNZeroNormal(t *testing.T) {
	corners := [3]VertexAttributes{
		corner(math.Vec3{}, math.Vec2{}, math.Vec3{}),
		corner(math.Vec3{X: 1}, math.Vec2{X: 1}, math.Vec3{}),
		corner(math.Vec3{Y: 1}, math.Vec2{Y: 1}, math.Vec3{}),
	}
	basis := ComputeTBN(corners, math.Vec3{})
	if basis.Col(2) != up {
		t.Errorf("N = %v, want fallback %v", basis.Col(2), up)
	}
	if h := basis.Determinant(); !near(h, 1) {
		t.Errorf("det(TBN) = %v, want 1", h)
	}
}

func TestComputeFramesReportsDegenerate(t *testing.T) {
	vertices := []VertexAttributes{
		// ok
		corner(math.Vec3{}, math.Vec2{}, up),
		corner(math.Vec3{X: 1}, math.Vec2{X: 1}, up),
		corner(math.Vec3{Y: 1}, math.Vec2{Y: 1}, up),
		// zero area
		corner(math.Vec3{}, math.Vec2{}, up),
		corner(math.Vec3{X: 1}, math.Vec2{X: 1}, up),
		corner(math.Vec3{X: 2}, math.Vec2{Y: 1}, up),
		// degenerate uv
		corner(math.Vec3{}, math.Vec2{}, up),
		corner(math.Vec3{X: 1}, math.Vec2{}, up),
		corner(math.Vec3{Y: 1}, math.Vec2{}, up),
		// zero area, U runs along the corner normals
		corner(math.Vec3{}, math.Vec2{}, math.Vec3{X: 1}),
		corner(math.Vec3{X: 1}, math.Vec2{X: 1}, math.Vec3{X: 1}),
		corner(math.Vec3{X: 2}, math.Vec2{Y: 1}, math.Vec3{X: 1}),
	}
	got := ComputeFrames(vertices)

	want := []DegenerateTriangle{
		{Triangle: 1, Reason: ZeroArea},
		{Triangle: 2, Reason: DegenerateUV},
		{Triangle: 3, Reason: ZeroArea},
		{Triangle: 3, Reason: DegenerateUV},
	}
	if len(got) != len(want) {
		t.Fatalf("ComputeFrames warnings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("warning %d = %v, want %v", i, got[i], want[i])
		}
	}
	checkFrames(t, vertices)
}

func TestDegenerateReasonString(t *testing.T) {
	tests := []struct {
		reason DegenerateReason
		want   string
	}{
		{ZeroArea, "zero area"},
		{DegenerateUV, "degenerate UV"},
		{DegenerateReason(9), "Unknown(9)"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
