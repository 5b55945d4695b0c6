package mesh

import (
	gomath "math"

	"github.com/Faultbox/normalmesh/pkg/math"
)

// WeldPolicy decides which corners are the same mesh vertex for tangent
// smoothing. Positions always take part in the key; UV and normal are
// optional so that seams and hard edges stay separate.
type WeldPolicy struct {
	// Epsilon is the quantization cell for every keyed component: each
	// value is rounded to the nearest multiple of Epsilon and corners weld
	// when all rounded values are equal. Two values closer than Epsilon
	// still stay apart when they round to different multiples, so a seam
	// sitting exactly on a cell boundary is not welded. Zero or negative
	// means exact float equality.
	Epsilon float32
	// MatchUV requires equal texture coordinates.
	MatchUV bool
	// MatchNormal requires equal normals.
	MatchNormal bool
}

// DefaultWeldPolicy keys on position, UV and normal with a 1e-5 cell.
func DefaultWeldPolicy() WeldPolicy {
	return WeldPolicy{
		Epsilon:     1e-5,
		MatchUV:     true,
		MatchNormal: true,
	}
}

type weldKey struct {
	position [3]int64
	uv       [2]int64
	normal   [3]int64
}

func (p WeldPolicy) key(v *VertexAttributes) weldKey {
	k := weldKey{
		position: [3]int64{
			quantize(v.Position.X, p.Epsilon),
			quantize(v.Position.Y, p.Epsilon),
			quantize(v.Position.Z, p.Epsilon),
		},
	}
	if p.MatchUV {
		k.uv = [2]int64{quantize(v.UV.X, p.Epsilon), quantize(v.UV.Y, p.Epsilon)}
	}
	if p.MatchNormal {
		k.normal = [3]int64{
			quantize(v.Normal.X, p.Epsilon),
			quantize(v.Normal.Y, p.Epsilon),
			quantize(v.Normal.Z, p.Epsilon),
		}
	}
	return k
}

func quantize(x, eps float32) int64 {
	if eps <= 0 {
		if x == 0 {
			return 0 // +0 and -0
		}
		return int64(gomath.Float32bits(x))
	}
	return int64(gomath.Round(float64(x) / float64(eps)))
}

// PropagateTangentFrames averages tangent frames across corners that the
// policy considers the same vertex. Tangents and bitangents are summed per
// group, then each corner's tangent is made orthogonal to its own normal and
// normalized, and its bitangent set to N x T. Normals are only normalized.
// Groups are visited in first-appearance order, so the result does not depend
// on map iteration.
func PropagateTangentFrames(vertices []VertexAttributes, policy WeldPolicy) {
	groupOf := make([]int, len(vertices))
	ids := make(map[weldKey]int, len(vertices)/3)
	var sumT, sumB []math.Vec3

	for i := range vertices {
		k := policy.key(&vertices[i])
		g, ok := ids[k]
		if !ok {
			g = len(sumT)
			ids[k] = g
			sumT = append(sumT, math.Vec3{})
			sumB = append(sumB, math.Vec3{})
		}
		groupOf[i] = g
		sumT[g] = sumT[g].Add(vertices[i].Tangent)
		sumB[g] = sumB[g].Add(vertices[i].Bitangent)
	}

	for i := range vertices {
		g := groupOf[i]
		n, t, b := orthonormalFrame(vertices[i].Normal, sumT[g], sumB[g])
		vertices[i].Normal = n
		vertices[i].Tangent = t
		vertices[i].Bitangent = b
	}
}

// orthonormalFrame builds a unit right-handed frame around n from summed
// tangent and bitangent directions. If the tangents cancel out, the
// bitangent sum decides; if both do, any perpendicular is used.
func orthonormalFrame(n, sumT, sumB math.Vec3) (math.Vec3, math.Vec3, math.Vec3) {
	n = n.Normalize()
	if n == (math.Vec3{}) || !n.IsFinite() {
		n = fallbackUp
	}

	t := sumT.Reject(n)
	if t.LengthSqr() < minTangentSqr {
		// B x N = T for a right-handed frame.
		t = sumB.Reject(n).Cross(n)
	}
	if t.LengthSqr() < minTangentSqr || !t.IsFinite() {
		t = n.Perpendicular()
	}
	t = t.Normalize()

	return n, t, n.Cross(t)
}
