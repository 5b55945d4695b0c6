package gpu

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/normalmesh/pkg/mesh"
)

// MeshBuffer is a vertex array holding an uploaded vertex buffer.
type MeshBuffer struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// UploadMesh copies the vertex buffer to the GPU and binds every attribute
// in mesh.Layout at its location and byte offset.
func UploadMesh(vertices []mesh.VertexAttributes) (MeshBuffer, error) {
	if len(vertices) == 0 {
		return MeshBuffer{}, errors.New("upload mesh: no vertices")
	}

	data := mesh.Encode(vertices)

	var buf MeshBuffer
	gl.GenVertexArrays(1, &buf.VAO)
	gl.BindVertexArray(buf.VAO)

	gl.GenBuffers(1, &buf.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)

	for _, attr := range mesh.Layout {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Components, gl.FLOAT, false,
			mesh.VertexStride, uintptr(attr.Offset))
		gl.EnableVertexAttribArray(attr.Location)
	}

	gl.BindVertexArray(0)
	buf.VertexCount = int32(len(vertices))
	return buf, nil
}

// Draw issues a non-indexed triangle draw for the whole buffer.
func (b MeshBuffer) Draw() {
	gl.BindVertexArray(b.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, b.VertexCount)
	gl.BindVertexArray(0)
}

// DeleteMesh releases a buffer created by UploadMesh.
func DeleteMesh(b MeshBuffer) {
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}
