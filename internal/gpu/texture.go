package gpu

import (
	"errors"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is an uploaded 2D texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
	Levels int
}

// UploadTexture creates a 2D texture from a precomputed mip chain.
// mips[0] is the base level; each entry is uploaded as the next level.
func UploadTexture(mips []*image.RGBA) (Texture, error) {
	if len(mips) == 0 {
		return Texture{}, errors.New("upload texture: empty mip chain")
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for level, img := range mips {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	minFilter := int32(gl.LINEAR_MIPMAP_LINEAR)
	if len(mips) == 1 {
		minFilter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(mips)-1))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return Texture{
		ID:     texID,
		Width:  mips[0].Bounds().Dx(),
		Height: mips[0].Bounds().Dy(),
		Levels: len(mips),
	}, nil
}

// Bind binds the texture to the given texture unit.
func (t Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// DeleteTexture releases a texture created by UploadTexture.
func DeleteTexture(t Texture) {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
	}
}
