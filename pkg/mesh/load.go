package mesh

import (
	"fmt"
	"io"
	"os"
)

// Mesh is a finished vertex buffer with metadata for the caller.
type Mesh struct {
	// Vertices holds 3 corners per triangle, ready for upload.
	Vertices []VertexAttributes
	Bounds   Bounds
	// Degenerate lists triangles that used a fallback frame.
	Degenerate []DegenerateTriangle
}

// TriangleCount returns the number of triangles in the buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Build expands src and synthesizes smoothed tangent frames.
func Build(src *Source, opts Options) (*Mesh, error) {
	vertices, err := Expand(src, opts)
	if err != nil {
		return nil, err
	}

	degenerate := ComputeFrames(vertices)
	PropagateTangentFrames(vertices, opts.Weld)

	return &Mesh{
		Vertices:   vertices,
		Bounds:     ComputeBounds(vertices),
		Degenerate: degenerate,
	}, nil
}

// Load parses an OBJ stream and builds its vertex buffer.
func Load(r io.Reader, opts Options) (*Mesh, error) {
	parse := ParseOBJ
	if opts.Strict {
		parse = ParseOBJStrict
	}
	src, err := parse(r)
	if err != nil {
		return nil, err
	}
	return Build(src, opts)
}

// LoadFile opens and loads an OBJ file.
func LoadFile(path string, opts Options) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}
