package viewer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/normalmesh/internal/config"
	"github.com/Faultbox/normalmesh/internal/gpu"
	"github.com/Faultbox/normalmesh/internal/texture"
	"github.com/Faultbox/normalmesh/pkg/math"
	"github.com/Faultbox/normalmesh/pkg/mesh"
)

var (
	// Stand-ins when no texture path is configured.
	whiteTexel = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	flatNormal = color.RGBA{R: 128, G: 128, B: 255, A: 255}

	lightDir = math.Vec3{X: -0.4, Y: -0.7, Z: -0.6}.Normalize()
)

// scene owns the GPU objects for one mesh.
type scene struct {
	program   uint32
	buffer    gpu.MeshBuffer
	albedo    gpu.Texture
	normalMap gpu.Texture
	bounds    mesh.Bounds
	triangles int

	locModel        int32
	locViewProj     int32
	locLightDir     int32
	locCameraPos    int32
	locAlbedo       int32
	locNormalMap    int32
	locUseNormalMap int32
	locDebugView    int32
}

type frameState struct {
	model        math.Mat4
	viewProj     math.Mat4
	cameraPos    math.Vec3
	useNormalMap bool
	debugView    int32
}

func loadScene(cfg *config.Config, log *zap.Logger) (*scene, error) {
	if cfg.Assets.Mesh == "" {
		return nil, fmt.Errorf("no mesh configured (use -mesh or assets.mesh)")
	}

	m, err := mesh.LoadFile(cfg.Assets.Mesh, cfg.MeshOptions())
	if err != nil {
		return nil, err
	}
	for _, d := range m.Degenerate {
		log.Debug("fallback tangent frame", zap.Int("triangle", d.Triangle), zap.Stringer("reason", d.Reason))
	}
	if len(m.Degenerate) > 0 {
		log.Warn("degenerate triangles", zap.Int("count", len(m.Degenerate)))
	}
	log.Info("mesh loaded",
		zap.String("path", cfg.Assets.Mesh),
		zap.Int("triangles", m.TriangleCount()),
		zap.Float32("radius", m.Bounds.Radius()),
	)

	s := &scene{bounds: m.Bounds, triangles: m.TriangleCount()}

	s.program, err = gpu.LoadProgram(cfg.Assets.VertexShader, cfg.Assets.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader program: %w", err)
	}

	if s.buffer, err = gpu.UploadMesh(m.Vertices); err != nil {
		s.release()
		return nil, err
	}
	if s.albedo, err = loadTexture(cfg.Assets.Albedo, whiteTexel, log); err != nil {
		s.release()
		return nil, err
	}
	if s.normalMap, err = loadTexture(cfg.Assets.NormalMap, flatNormal, log); err != nil {
		s.release()
		return nil, err
	}

	s.locModel = gpu.GetUniform(s.program, "uModel")
	s.locViewProj = gpu.GetUniform(s.program, "uViewProj")
	s.locLightDir = gpu.GetUniform(s.program, "uLightDir")
	s.locCameraPos = gpu.GetUniform(s.program, "uCameraPos")
	s.locAlbedo = gpu.GetUniform(s.program, "uAlbedo")
	s.locNormalMap = gpu.GetUniform(s.program, "uNormalMap")
	s.locUseNormalMap = gpu.GetUniform(s.program, "uUseNormalMap")
	s.locDebugView = gpu.GetUniform(s.program, "uDebugView")

	return s, nil
}

// loadTexture decodes path with its full mip chain, or a 1x1 texel of
// fallback when path is empty.
func loadTexture(path string, fallback color.RGBA, log *zap.Logger) (gpu.Texture, error) {
	var base *image.RGBA
	if path == "" {
		base = image.NewRGBA(image.Rect(0, 0, 1, 1))
		base.SetRGBA(0, 0, fallback)
	} else {
		img, err := texture.Load(path)
		if err != nil {
			return gpu.Texture{}, err
		}
		base = img
	}

	tex, err := gpu.UploadTexture(texture.MipChain(base))
	if err != nil {
		return gpu.Texture{}, err
	}
	if path != "" {
		log.Info("texture loaded",
			zap.String("path", path),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height),
			zap.Int("levels", tex.Levels),
		)
	}
	return tex, nil
}

func (s *scene) draw(f frameState) {
	gl.UseProgram(s.program)

	gl.UniformMatrix4fv(s.locModel, 1, false, f.model.Ptr())
	gl.UniformMatrix4fv(s.locViewProj, 1, false, f.viewProj.Ptr())
	gl.Uniform3f(s.locLightDir, lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform3f(s.locCameraPos, f.cameraPos.X, f.cameraPos.Y, f.cameraPos.Z)
	gl.Uniform1i(s.locDebugView, f.debugView)
	useNormalMap := int32(0)
	if f.useNormalMap {
		useNormalMap = 1
	}
	gl.Uniform1i(s.locUseNormalMap, useNormalMap)

	s.albedo.Bind(0)
	gl.Uniform1i(s.locAlbedo, 0)
	s.normalMap.Bind(1)
	gl.Uniform1i(s.locNormalMap, 1)

	s.buffer.Draw()
}

func (s *scene) release() {
	gpu.DeleteTexture(s.normalMap)
	gpu.DeleteTexture(s.albedo)
	gpu.DeleteMesh(s.buffer)
	gpu.DeleteProgram(s.program)
}
