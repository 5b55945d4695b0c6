package math

// Mat3 is a 3x3 matrix stored as three column vectors.
// A tangent frame is stored as columns T, B, N.
type Mat3 [3]Vec3

// Mat3FromCols builds a matrix from its columns.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{c0, c1, c2}
}

// Col returns column i.
func (m Mat3) Col(i int) Vec3 {
	return m[i]
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m[0].Scale(v.X).Add(m[1].Scale(v.Y)).Add(m[2].Scale(v.Z))
}

// Transpose returns the transposed matrix. For an orthonormal basis this is
// the inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0].X, m[1].X, m[2].X},
		{m[0].Y, m[1].Y, m[2].Y},
		{m[0].Z, m[1].Z, m[2].Z},
	}
}

// Determinant returns det(m), the signed volume spanned by the columns.
func (m Mat3) Determinant() float32 {
	return m[0].Cross(m[1]).Dot(m[2])
}
