package mesh

import (
	"fmt"

	"github.com/Faultbox/normalmesh/pkg/math"
)

// Absent marks a corner without a UV or normal reference.
const Absent = -1

// Corner references the attributes of one triangle corner by 0-based index.
type Corner struct {
	Position int
	UV       int // Absent if the corner has no texture coordinate
	Normal   int // Absent if the corner has no normal
}

// Face is one triangle of a Source.
type Face struct {
	Corners [3]Corner
	Line    int    // source line, 0 when built in code
	Record  string // source text, used in errors
}

// Source is an indexed mesh description: attribute pools plus triangles
// referencing them.
type Source struct {
	Positions []math.Vec3
	Colors    []math.Vec3 // parallel to Positions; may be shorter or empty
	UVs       []math.Vec2
	Normals   []math.Vec3
	Faces     []Face
}

// Options controls how a Source becomes a vertex buffer.
type Options struct {
	// FlipV stores 1-v, for APIs whose texture origin is the top-left
	// texel of the decoded image.
	FlipV bool
	// ZUp converts Y-up sources to Z-up by mapping (x, y, z) to (x, -z, y).
	ZUp bool
	// Weld selects which corners share a smoothed tangent frame.
	Weld WeldPolicy
	// Strict rejects OBJ record types the parser does not understand.
	Strict bool
}

// DefaultOptions returns the options used by the tools.
func DefaultOptions() Options {
	return Options{
		FlipV: true,
		Weld:  DefaultWeldPolicy(),
	}
}

var (
	defaultColor  = math.Vec3{X: 1, Y: 1, Z: 1}
	fallbackUp    = math.Vec3{Z: 1}
	minNormalSqr  = float32(1e-24)
	minTangentSqr = float32(1e-12)
)

// Expand produces one VertexAttributes per triangle corner, in face order.
// Missing UVs become (0, 0), missing colors white, and missing normals the
// triangle's face normal. Tangent and bitangent are left zero.
func Expand(src *Source, opts Options) ([]VertexAttributes, error) {
	if len(src.Faces) == 0 {
		return nil, &ParseError{Face: -1, Err: ErrNoFaces}
	}

	vertices := make([]VertexAttributes, 0, 3*len(src.Faces))
	for fi := range src.Faces {
		face := &src.Faces[fi]
		var tri [3]VertexAttributes

		for k, c := range face.Corners {
			if c.Position < 0 || c.Position >= len(src.Positions) {
				return nil, faceError(face, fi, fmt.Errorf("%w: position %d of %d",
					ErrIndexOutOfRange, c.Position+1, len(src.Positions)))
			}
			p := src.Positions[c.Position]
			if !p.IsFinite() {
				return nil, faceError(face, fi, fmt.Errorf("%w: non-finite position %d",
					ErrMalformedRecord, c.Position+1))
			}
			tri[k].Position = convertAxis(p, opts.ZUp)

			tri[k].Color = defaultColor
			if c.Position < len(src.Colors) {
				tri[k].Color = src.Colors[c.Position]
			}

			if c.UV != Absent {
				if c.UV < 0 || c.UV >= len(src.UVs) {
					return nil, faceError(face, fi, fmt.Errorf("%w: uv %d of %d",
						ErrIndexOutOfRange, c.UV+1, len(src.UVs)))
				}
				uv := src.UVs[c.UV]
				if !uv.IsFinite() {
					return nil, faceError(face, fi, fmt.Errorf("%w: non-finite uv %d",
						ErrMalformedRecord, c.UV+1))
				}
				if opts.FlipV {
					uv.Y = 1 - uv.Y
				}
				tri[k].UV = uv
			}

			if c.Normal != Absent {
				if c.Normal < 0 || c.Normal >= len(src.Normals) {
					return nil, faceError(face, fi, fmt.Errorf("%w: normal %d of %d",
						ErrIndexOutOfRange, c.Normal+1, len(src.Normals)))
				}
				tri[k].Normal = convertAxis(src.Normals[c.Normal], opts.ZUp).Normalize()
			}
		}

		// Corners without a usable normal take the face normal.
		var faceN math.Vec3
		for k := range tri {
			if tri[k].Normal.IsFinite() && tri[k].Normal.LengthSqr() > 0 {
				continue
			}
			if faceN == (math.Vec3{}) {
				faceN = geometricNormal(tri)
				if faceN == (math.Vec3{}) {
					faceN = fallbackUp
				}
			}
			tri[k].Normal = faceN
		}

		vertices = append(vertices, tri[:]...)
	}
	return vertices, nil
}

func faceError(f *Face, index int, err error) *ParseError {
	return &ParseError{Line: f.Line, Face: index, Record: f.Record, Err: err}
}

func convertAxis(v math.Vec3, zUp bool) math.Vec3 {
	if !zUp {
		return v
	}
	return math.Vec3{X: v.X, Y: -v.Z, Z: v.Y}
}

// geometricNormal returns the unit normal of a counter-clockwise triangle,
// or the zero vector if the triangle has no area.
func geometricNormal(tri [3]VertexAttributes) math.Vec3 {
	e1 := tri[1].Position.Sub(tri[0].Position)
	e2 := tri[2].Position.Sub(tri[0].Position)
	n := e1.Cross(e2)
	if n.LengthSqr() < minNormalSqr || !n.IsFinite() {
		return math.Vec3{}
	}
	return n.Normalize()
}
