// Package config handles tool configuration loading and management.
package config

import "github.com/Faultbox/normalmesh/pkg/mesh"

// Config holds all settings shared by the tools.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds vertex buffer generation settings.
type MeshConfig struct {
	FlipV       bool    `yaml:"flip_v"`       // Store 1-v texture coordinates
	ZUp         bool    `yaml:"z_up"`         // Convert Y-up sources to Z-up
	WeldEpsilon float32 `yaml:"weld_epsilon"` // Cell size for merging corners, 0 = exact
	WeldByUV    bool    `yaml:"weld_by_uv"`   // Keep UV seams separate
	WeldByNorm  bool    `yaml:"weld_by_normal"`
	Strict      bool    `yaml:"strict"` // Fail on unknown OBJ records
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`        // Vertical field of view in degrees
	SpinSpeed  float32 `yaml:"spin_speed"` // Radians per second, 0 = static
}

// AssetsConfig holds paths of the files the viewer loads.
type AssetsConfig struct {
	Mesh           string `yaml:"mesh"`
	Albedo         string `yaml:"albedo"`
	NormalMap      string `yaml:"normal_map"`
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	weld := mesh.DefaultWeldPolicy()
	return &Config{
		Mesh: MeshConfig{
			FlipV:       true,
			ZUp:         false,
			WeldEpsilon: weld.Epsilon,
			WeldByUV:    weld.MatchUV,
			WeldByNorm:  weld.MatchNormal,
			Strict:      false,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			SpinSpeed:  0.5,
		},
		Assets: AssetsConfig{
			VertexShader:   "assets/shaders/normal_map.vert",
			FragmentShader: "assets/shaders/normal_map.frag",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MeshOptions converts the mesh section into loader options.
func (c *Config) MeshOptions() mesh.Options {
	return mesh.Options{
		FlipV:  c.Mesh.FlipV,
		ZUp:    c.Mesh.ZUp,
		Strict: c.Mesh.Strict,
		Weld: mesh.WeldPolicy{
			Epsilon:     c.Mesh.WeldEpsilon,
			MatchUV:     c.Mesh.WeldByUV,
			MatchNormal: c.Mesh.WeldByNorm,
		},
	}
}
