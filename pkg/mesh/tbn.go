package mesh

import (
	"github.com/Faultbox/normalmesh/pkg/math"
)

// minUVDeterminant is the smallest |det| accepted for the UV edge system,
// relative to the product of the UV edge lengths (the sine of the angle
// between the UV edges).
const minUVDeterminant = 1e-6

// cofactors returns det*T and det*B for the system
// edge_i = T*du_i + B*dv_i, along with det. ok is false when the UV edges
// are collinear.
func cofactors(corners [3]VertexAttributes) (tc, bc math.Vec3, det float32, ok bool) {
	e1 := corners[1].Position.Sub(corners[0].Position)
	e2 := corners[2].Position.Sub(corners[0].Position)
	d1 := corners[1].UV.Sub(corners[0].UV)
	d2 := corners[2].UV.Sub(corners[0].UV)

	det = d1.Cross(d2)
	scale := d1.Length() * d2.Length()
	if scale == 0 || det*det <= minUVDeterminant*minUVDeterminant*scale*scale {
		return math.Vec3{}, math.Vec3{}, 0, false
	}

	tc = e1.Scale(d2.Y).Sub(e2.Scale(d1.Y))
	bc = e2.Scale(d1.X).Sub(e1.Scale(d2.X))
	return tc, bc, det, tc.IsFinite() && bc.IsFinite()
}

// SolveTangents solves edge_i = T*du_i + B*dv_i for the edges from corner 0
// to corners 1 and 2. ok is false when the UV edges are collinear or the
// solution is not finite; T and B are then zero.
func SolveTangents(corners [3]VertexAttributes) (t, b math.Vec3, ok bool) {
	tc, bc, det, ok := cofactors(corners)
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	r := 1 / det
	t, b = tc.Scale(r), bc.Scale(r)
	if !t.IsFinite() || !b.IsFinite() {
		return math.Vec3{}, math.Vec3{}, false
	}
	return t, b, true
}

// ComputeTBN returns the tangent frame of a triangle as a matrix with
// columns T, B, N, where N is expectedN.
//
// T is the direction of increasing U from the UV solve, independent of
// corner order and of which side of the triangle N is on. It is made
// orthogonal to N and normalized, and B is set to N x T, so the result is
// always unit length and right-handed. When the UVs do not determine a
// tangent, an arbitrary direction perpendicular to N is used.
func ComputeTBN(corners [3]VertexAttributes, expectedN math.Vec3) math.Mat3 {
	basis, _ := tangentFrame(corners, expectedN)
	return basis
}

// tangentFrame is ComputeTBN; ok is false when the fallback tangent was used.
func tangentFrame(corners [3]VertexAttributes, expectedN math.Vec3) (math.Mat3, bool) {
	n := expectedN.Normalize()
	if n == (math.Vec3{}) || !n.IsFinite() {
		n = fallbackUp
	}

	// det*T has the direction of T only for det > 0.
	raw, _, det, ok := cofactors(corners)
	var t math.Vec3
	if ok {
		if det < 0 {
			raw = raw.Neg()
		}
		// Gram-Schmidt against N.
		t = raw.Reject(n)
		ok = t.LengthSqr() > minTangentSqr*raw.LengthSqr()
	}
	if !ok {
		t = n.Perpendicular()
	}
	t = t.Normalize()

	return math.Mat3FromCols(t, n.Cross(t), n), ok
}

// ComputeFrames assigns every corner the tangent frame of its own triangle.
// vertices must hold whole triangles (corners 3k, 3k+1, 3k+2). The frame is
// built around the face normal, oriented to agree with the corner normals.
// Normals are not modified. The returned warnings list triangles that
// needed a fallback.
func ComputeFrames(vertices []VertexAttributes) []DegenerateTriangle {
	var degenerate []DegenerateTriangle
	for tri := 0; tri+2 < len(vertices); tri += 3 {
		corners := [3]VertexAttributes{vertices[tri], vertices[tri+1], vertices[tri+2]}
		cornerN := corners[0].Normal.Add(corners[1].Normal).Add(corners[2].Normal)

		faceN := geometricNormal(corners)
		if faceN == (math.Vec3{}) {
			degenerate = append(degenerate, DegenerateTriangle{Triangle: tri / 3, Reason: ZeroArea})
			faceN = cornerN
		} else if faceN.Dot(cornerN) < 0 {
			faceN = faceN.Neg()
		}
		// Collinear UVs, or a U direction along the normal.
		basis, ok := tangentFrame(corners, faceN)
		if !ok {
			degenerate = append(degenerate, DegenerateTriangle{Triangle: tri / 3, Reason: DegenerateUV})
		}
		for k := 0; k < 3; k++ {
			vertices[tri+k].Tangent = basis.Col(0)
			vertices[tri+k].Bitangent = basis.Col(1)
		}
	}
	return degenerate
}
