// Package texture decodes image files into RGBA pixel data ready for upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load reads an image file and returns it as RGBA.
// The decoder is picked from the file extension.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an image of the given extension (".png", ".jpg", ".jpeg",
// ".bmp" or ".tga") and converts it to RGBA.
func Decode(r io.Reader, ext string) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(ext) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}

	return rgba
}

// MipLevels returns the number of levels in a full mip chain for a w x h image.
func MipLevels(w, h int) int {
	size := max(w, h)
	if size <= 0 {
		return 0
	}
	levels := 1
	for size > 1 {
		size /= 2
		levels++
	}
	return levels
}

// MipChain builds every mip level from base down to 1x1. Level 0 is base
// itself; each following level halves both dimensions, clamped to 1.
func MipChain(base *image.RGBA) []*image.RGBA {
	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	levels := MipLevels(w, h)
	if levels == 0 {
		return nil
	}

	chain := make([]*image.RGBA, 0, levels)
	chain = append(chain, base)
	prev := base
	for i := 1; i < levels; i++ {
		w, h = max(w/2, 1), max(h/2, 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		chain = append(chain, dst)
		prev = dst
	}
	return chain
}
