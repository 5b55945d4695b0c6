package main

import (
	"strings"
	"testing"

	"github.com/Faultbox/normalmesh/pkg/math"
	"github.com/Faultbox/normalmesh/pkg/mesh"
)

func TestCheckFramesCube(t *testing.T) {
	m, err := mesh.LoadFile("../../pkg/mesh/testdata/cube.obj", mesh.DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if issues := checkFrames(m.Vertices); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestCheckFramesTangentDirection(t *testing.T) {
	triangle := func(tangent math.Vec3) []mesh.VertexAttributes {
		p := []math.Vec3{{}, {X: 1}, {Y: 1}}
		vertices := make([]mesh.VertexAttributes, len(p))
		for i := range p {
			vertices[i] = mesh.VertexAttributes{
				Position:  p[i],
				UV:        math.Vec2{X: p[i].X, Y: p[i].Y},
				Tangent:   tangent,
				Bitangent: math.Vec3{Z: 1}.Cross(tangent),
				Normal:    math.Vec3{Z: 1},
			}
		}
		return vertices
	}

	tests := []struct {
		name    string
		tangent math.Vec3
		want    int
	}{
		{"along U", math.Vec3{X: 1}, 0},
		{"against U", math.Vec3{X: -1}, 3},
		{"across U", math.Vec3{Y: 1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkFrames(triangle(tt.tangent))
			if len(issues) != tt.want {
				t.Fatalf("issues = %v, want %d", issues, tt.want)
			}
			for _, issue := range issues {
				if !strings.Contains(issue.Problem, "increasing U") {
					t.Errorf("problem = %q, want it to mention increasing U", issue.Problem)
				}
			}
		})
	}
}

func TestFrameProblem(t *testing.T) {
	good := mesh.VertexAttributes{
		Tangent:   math.Vec3{X: 1},
		Bitangent: math.Vec3{Y: 1},
		Normal:    math.Vec3{Z: 1},
	}

	tests := []struct {
		name   string
		mutate func(*mesh.VertexAttributes)
		want   string
	}{
		{"valid", func(*mesh.VertexAttributes) {}, ""},
		{"short tangent", func(v *mesh.VertexAttributes) { v.Tangent = math.Vec3{X: 0.5} }, "tangent length"},
		{"tilted tangent", func(v *mesh.VertexAttributes) { v.Tangent = math.Vec3{X: 0.8, Z: 0.6} }, "tangent.normal"},
		{"left-handed", func(v *mesh.VertexAttributes) { v.Bitangent = math.Vec3{Y: -1} }, "left-handed"},
		{"nan", func(v *mesh.VertexAttributes) {
			nan := float32(0)
			v.Normal.X = nan / nan
		}, "non-finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := good
			tt.mutate(&v)
			got := frameProblem(v)
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no problem, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("frameProblem = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{68, "68 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
