package mesh

import (
	"bufio"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Faultbox/normalmesh/pkg/math"
)

// maxLineSize bounds a single OBJ record.
const maxLineSize = 1 << 20

// ParseOBJ reads a Wavefront OBJ description.
//
// Supported records are v (x y z [w] or x y z r g b), vt (u [v [w]]),
// vn (x y z) and f with exactly three corners. Corner references use the
// OBJ convention: 1-based, or negative to count back from the most recent
// record. Other record types (o, g, s, usemtl, mtllib, l, p, ...) are
// ignored. Any malformed number or reference fails the whole parse.
//
// Input is UTF-8; a byte order mark selects UTF-16 instead and is dropped.
func ParseOBJ(r io.Reader) (*Source, error) {
	return parseOBJ(r, false)
}

// ParseOBJStrict is ParseOBJ, except that record types other than geometry
// and the common grouping and material records fail with ErrUnknownRecord.
func ParseOBJStrict(r io.Reader) (*Source, error) {
	return parseOBJ(r, true)
}

// metadataRecords are skipped even in strict mode.
var metadataRecords = map[string]bool{
	"o": true, "g": true, "s": true, "usemtl": true, "mtllib": true,
}

func parseOBJ(r io.Reader, strict bool) (*Source, error) {
	src := &Source{}

	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		args := fields[1:]

		fail := func(err error) error {
			face := -1
			if fields[0] == "f" {
				face = len(src.Faces)
			}
			return &ParseError{Line: lineNo, Face: face, Record: line, Err: err}
		}

		switch fields[0] {
		case "v":
			if len(args) != 3 && len(args) != 4 && len(args) != 6 {
				return nil, fail(fmt.Errorf("%w: v needs 3, 4 or 6 values, got %d", ErrMalformedRecord, len(args)))
			}
			vals, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			src.Positions = append(src.Positions, math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})
			color := defaultColor
			if len(vals) == 6 {
				color = math.Vec3{X: vals[3], Y: vals[4], Z: vals[5]}
			}
			src.Colors = append(src.Colors, color)

		case "vt":
			if len(args) < 1 || len(args) > 3 {
				return nil, fail(fmt.Errorf("%w: vt needs 1 to 3 values, got %d", ErrMalformedRecord, len(args)))
			}
			vals, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			uv := math.Vec2{X: vals[0]}
			if len(vals) > 1 {
				uv.Y = vals[1]
			}
			src.UVs = append(src.UVs, uv)

		case "vn":
			if len(args) != 3 {
				return nil, fail(fmt.Errorf("%w: vn needs 3 values, got %d", ErrMalformedRecord, len(args)))
			}
			vals, err := parseFloats(args)
			if err != nil {
				return nil, fail(err)
			}
			src.Normals = append(src.Normals, math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})

		case "f":
			if len(args) != 3 {
				return nil, fail(fmt.Errorf("%w: %d corners", ErrFaceArity, len(args)))
			}
			face := Face{Line: lineNo, Record: line}
			for k, tok := range args {
				c, err := parseCorner(tok, src)
				if err != nil {
					return nil, fail(err)
				}
				face.Corners[k] = c
			}
			src.Faces = append(src.Faces, face)

		default:
			if strict && !metadataRecords[fields[0]] {
				return nil, fail(fmt.Errorf("%w: %q", ErrUnknownRecord, fields[0]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	if len(src.Faces) == 0 {
		return nil, &ParseError{Face: -1, Err: ErrNoFaces}
	}
	return src, nil
}

// parseFloats parses every field as a finite float32.
func parseFloats(fields []string) ([]float32, error) {
	vals := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, f)
		}
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not finite", ErrMalformedRecord, f)
		}
		vals[i] = float32(v)
	}
	return vals, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based indices.
// Negative references resolve against the pools read so far.
func parseCorner(tok string, src *Source) (Corner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return Corner{}, fmt.Errorf("%w: bad corner %q", ErrMalformedRecord, tok)
	}

	c := Corner{UV: Absent, Normal: Absent}
	var err error
	if c.Position, err = resolveIndex(parts[0], len(src.Positions)); err != nil {
		return Corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.UV, err = resolveIndex(parts[1], len(src.UVs)); err != nil {
			return Corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = resolveIndex(parts[2], len(src.Normals)); err != nil {
			return Corner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts an OBJ reference to a 0-based index. Positive
// references are range-checked later by Expand since they are absolute.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrMalformedRecord, s)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		if count+n < 0 {
			return 0, fmt.Errorf("%w: relative index %d with %d defined", ErrIndexOutOfRange, n, count)
		}
		return count + n, nil
	default:
		return 0, fmt.Errorf("%w: index 0", ErrMalformedRecord)
	}
}
