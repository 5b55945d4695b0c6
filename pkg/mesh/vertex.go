// Package mesh turns triangulated mesh descriptions into flat, GPU-ready
// vertex buffers carrying a per-vertex tangent frame for normal mapping.
//
// The pipeline is ParseOBJ (text to Source), Expand (Source to one
// VertexAttributes per triangle corner), ComputeFrames (per-triangle T, B, N)
// and PropagateTangentFrames (smoothing across shared vertices). Load and
// Build run the whole pipeline. Every function is pure: calls share no state
// and may run concurrently on independent inputs.
package mesh

import (
	"bytes"
	"encoding/binary"

	"github.com/Faultbox/normalmesh/pkg/math"
)

// VertexAttributes is one GPU vertex. Field order and sizes are the buffer
// layout; shaders bind attributes by the offsets in Layout.
type VertexAttributes struct {
	Position math.Vec3

	// Local frame in which normal-map samples are expressed.
	Tangent   math.Vec3 // T, local X, toward increasing U
	Bitangent math.Vec3 // B, local Y, N x T
	Normal    math.Vec3 // N, local Z

	Color math.Vec3
	UV    math.Vec2
}

// Byte offsets of each attribute inside VertexAttributes.
const (
	OffsetPosition  = 0
	OffsetTangent   = 12
	OffsetBitangent = 24
	OffsetNormal    = 36
	OffsetColor     = 48
	OffsetUV        = 60

	// VertexStride is the size of one encoded vertex in bytes.
	VertexStride = 68
)

// Attribute describes one vertex attribute for pipeline setup.
type Attribute struct {
	Name       string
	Location   uint32
	Components int32
	Offset     int
}

// Layout lists the attributes in buffer order with their shader locations.
var Layout = []Attribute{
	{Name: "aPosition", Location: 0, Components: 3, Offset: OffsetPosition},
	{Name: "aTangent", Location: 1, Components: 3, Offset: OffsetTangent},
	{Name: "aBitangent", Location: 2, Components: 3, Offset: OffsetBitangent},
	{Name: "aNormal", Location: 3, Components: 3, Offset: OffsetNormal},
	{Name: "aColor", Location: 4, Components: 3, Offset: OffsetColor},
	{Name: "aUV", Location: 5, Components: 2, Offset: OffsetUV},
}

// Encode serializes vertices as little-endian float32 values in layout order.
func Encode(vertices []VertexAttributes) []byte {
	var buf bytes.Buffer
	buf.Grow(len(vertices) * VertexStride)
	// Writes to a bytes.Buffer cannot fail for fixed-size data.
	_ = binary.Write(&buf, binary.LittleEndian, vertices)
	return buf.Bytes()
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns half the box diagonal.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

// ComputeBounds returns the bounding box of all vertex positions.
func ComputeBounds(vertices []VertexAttributes) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}
