package mesh

import (
	"errors"
	"fmt"
	"strings"
)

// Mesh source errors. Match with errors.Is on the error returned by the
// loaders; the concrete value is always a *ParseError.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrFaceArity       = errors.New("face is not a triangle")
	ErrNoFaces         = errors.New("mesh has no faces")
	ErrUnknownRecord   = errors.New("unknown record type") // strict parsing only
)

// ParseError reports a mesh source that cannot produce a vertex buffer.
type ParseError struct {
	Line   int    // 1-based source line, 0 when unknown
	Face   int    // 0-based face index, -1 when the record is not a face
	Record string // offending record text, if any
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("mesh: ")
	switch {
	case e.Line > 0:
		fmt.Fprintf(&b, "line %d: ", e.Line)
	case e.Face >= 0:
		fmt.Fprintf(&b, "face %d: ", e.Face)
	}
	if e.Record != "" {
		fmt.Fprintf(&b, "%q: ", e.Record)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DegenerateReason says why a triangle needed a fallback frame.
type DegenerateReason int

const (
	ZeroArea     DegenerateReason = iota + 1 // positions are collinear
	DegenerateUV                             // UV edges are collinear
)

// String returns a human-readable reason.
func (r DegenerateReason) String() string {
	switch r {
	case ZeroArea:
		return "zero area"
	case DegenerateUV:
		return "degenerate UV"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// DegenerateTriangle is a warning: the triangle was well formed but its
// geometry or UVs did not determine a frame, so a fallback was used.
type DegenerateTriangle struct {
	Triangle int
	Reason   DegenerateReason
}
