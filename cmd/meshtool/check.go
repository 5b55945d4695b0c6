package main

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/normalmesh/pkg/math"
	"github.com/Faultbox/normalmesh/pkg/mesh"
)

const frameTolerance = 1e-3

// frameIssue describes a vertex whose tangent frame is not orthonormal
// and right-handed.
type frameIssue struct {
	Vertex  int
	Problem string
}

func (f frameIssue) String() string {
	return fmt.Sprintf("vertex %d (triangle %d): %s", f.Vertex, f.Vertex/3, f.Problem)
}

// checkFrames returns one issue per vertex that breaks a frame invariant
// or whose tangent points against increasing U on its triangle.
func checkFrames(vertices []mesh.VertexAttributes) []frameIssue {
	var issues []frameIssue
	for tri := 0; tri+2 < len(vertices); tri += 3 {
		corners := [3]mesh.VertexAttributes{vertices[tri], vertices[tri+1], vertices[tri+2]}
		// Triangles without a UV solution have no U direction to follow.
		solved, _, ok := mesh.SolveTangents(corners)
		for k, v := range corners {
			problem := frameProblem(v)
			if problem == "" && ok && v.Tangent.Dot(solved) <= 0 {
				problem = "tangent opposes increasing U"
			}
			if problem != "" {
				issues = append(issues, frameIssue{Vertex: tri + k, Problem: problem})
			}
		}
	}
	return issues
}

func frameProblem(v mesh.VertexAttributes) string {
	if !v.Tangent.IsFinite() || !v.Bitangent.IsFinite() || !v.Normal.IsFinite() {
		return "non-finite frame"
	}
	axes := []struct {
		name string
		v    math.Vec3
	}{
		{"tangent", v.Tangent},
		{"bitangent", v.Bitangent},
		{"normal", v.Normal},
	}
	for _, a := range axes {
		if l := a.v.Length(); gomath.Abs(float64(l)-1) > frameTolerance {
			return fmt.Sprintf("%s length %.4f", a.name, l)
		}
	}
	if d := v.Tangent.Dot(v.Normal); abs(d) > frameTolerance {
		return fmt.Sprintf("tangent.normal = %.4f", d)
	}
	if d := v.Bitangent.Dot(v.Normal); abs(d) > frameTolerance {
		return fmt.Sprintf("bitangent.normal = %.4f", d)
	}
	if d := v.Tangent.Dot(v.Bitangent); abs(d) > frameTolerance {
		return fmt.Sprintf("tangent.bitangent = %.4f", d)
	}
	if v.Tangent.Cross(v.Bitangent).Dot(v.Normal) <= 0 {
		return "left-handed frame"
	}
	return ""
}

func abs(f float32) float32 {
	return float32(gomath.Abs(float64(f)))
}

// formatVertex renders one vertex on a single line.
func formatVertex(i int, v mesh.VertexAttributes) string {
	return fmt.Sprintf("%6d  P(%.4f %.4f %.4f)  UV(%.4f %.4f)  T(%.3f %.3f %.3f)  B(%.3f %.3f %.3f)  N(%.3f %.3f %.3f)",
		i,
		v.Position.X, v.Position.Y, v.Position.Z,
		v.UV.X, v.UV.Y,
		v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
		v.Bitangent.X, v.Bitangent.Y, v.Bitangent.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z)
}
