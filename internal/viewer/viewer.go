// Package viewer implements the interactive preview loop for a normal-mapped mesh.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/normalmesh/internal/camera"
	"github.com/Faultbox/normalmesh/internal/config"
	"github.com/Faultbox/normalmesh/internal/logger"
	"github.com/Faultbox/normalmesh/internal/window"
	"github.com/Faultbox/normalmesh/pkg/math"
)

const title = "normalmesh"

// Debug views cycle with the V key.
const (
	viewShaded = iota
	viewTangent
	viewBitangent
	viewNormal
	viewCount
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool
	window  *window.Window
	events  *window.Events
	scene   *scene
	camera  *camera.OrbitCamera

	// Meshes picked in the file dialog, loaded on the render thread.
	pendingMesh chan string
	dialogOpen  bool

	spin         float32
	spinning     bool
	useNormalMap bool
	wireframe    bool
	debugView    int32
}

// New opens the window, initializes OpenGL and uploads the configured assets.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:          cfg,
		log:          logger.Named("viewer"),
		spinning:     cfg.Viewer.SpinSpeed != 0,
		useNormalMap: true,
		pendingMesh:  make(chan string, 1),
	}

	v.log.Info("initializing viewer",
		zap.String("mesh", cfg.Assets.Mesh),
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	// The window creates the OpenGL context every later call needs.
	var err error
	v.window, err = window.New(title, cfg.Viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	v.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	v.scene, err = loadScene(cfg, v.log)
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.camera = camera.NewOrbitCamera(cfg.Mesh.ZUp)
	v.resetCamera()
	v.events = window.NewEvents()

	w, h := v.window.GetSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	v.updateTitle()

	return v, nil
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(fmt.Sprintf("%s - %s (%d triangles)", title, v.cfg.Assets.Mesh, v.scene.triangles))
}

// openMeshDialog shows a native file dialog without blocking the loop.
// GL calls must stay on the main thread, so the result is only queued.
func (v *Viewer) openMeshDialog() {
	if v.dialogOpen {
		return
	}
	v.dialogOpen = true

	go func() {
		filename, err := dialog.File().
			Filter("OBJ Meshes", "obj").
			Filter("All Files", "*").
			Title("Open Mesh").
			Load()
		if err != nil && err != dialog.ErrCancelled {
			v.log.Warn("file dialog failed", zap.Error(err))
		}
		// An empty name reports a closed dialog.
		v.pendingMesh <- filename
	}()
}

// reload swaps in a new mesh, keeping the current one if loading fails.
func (v *Viewer) reload(path string) {
	cfg := *v.cfg
	cfg.Assets.Mesh = path

	s, err := loadScene(&cfg, v.log)
	if err != nil {
		v.log.Error("failed to open mesh", zap.String("path", path), zap.Error(err))
		return
	}

	v.scene.release()
	v.scene = s
	v.cfg.Assets.Mesh = path
	v.resetCamera()
	v.updateTitle()
}

func (v *Viewer) fovRadians() float32 {
	return v.cfg.Viewer.FOV * gomath.Pi / 180
}

func (v *Viewer) resetCamera() {
	v.camera.FitToBounds(v.scene.bounds.Center(), v.scene.bounds.Radius(), v.fovRadians())
	v.spin = 0
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		for _, event := range v.events.Poll() {
			v.handleEvent(event)
		}
		if !v.running {
			break
		}

		select {
		case path := <-v.pendingMesh:
			v.dialogOpen = false
			if path != "" {
				v.reload(path)
			}
		default:
		}

		if v.spinning {
			v.spin += v.cfg.Viewer.SpinSpeed * dt
		}

		v.render()
		v.window.SwapBuffers()

		if err := glError(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvent(event window.Event) {
	switch event.Type {
	case window.EventQuit:
		v.running = false
	case window.EventResize:
		w, h := v.window.GetSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		v.log.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
	case window.EventMouseDrag:
		v.camera.HandleDrag(float32(event.DX), float32(event.DY))
	case window.EventScroll:
		v.camera.HandleZoom(float32(event.DY))
	case window.EventKeyDown:
		v.handleKey(event.Key)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_SPACE:
		v.spinning = !v.spinning
	case sdl.SCANCODE_N:
		v.useNormalMap = !v.useNormalMap
		v.log.Info("normal map", zap.Bool("enabled", v.useNormalMap))
	case sdl.SCANCODE_V:
		v.debugView = (v.debugView + 1) % viewCount
		v.log.Info("debug view", zap.Int32("view", v.debugView))
	case sdl.SCANCODE_W:
		v.wireframe = !v.wireframe
		mode := uint32(gl.FILL)
		if v.wireframe {
			mode = gl.LINE
		}
		gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	case sdl.SCANCODE_R:
		v.resetCamera()
	case sdl.SCANCODE_O:
		v.openMeshDialog()
	}
}

// modelMatrix spins the mesh around the world up axis through its center.
func (v *Viewer) modelMatrix() math.Mat4 {
	center := v.scene.bounds.Center()
	rot := math.RotateY(v.spin)
	if v.cfg.Mesh.ZUp {
		rot = math.RotateZ(v.spin)
	}
	return math.Translate(center).Mul(rot).Mul(math.Translate(center.Neg()))
}

func (v *Viewer) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	w, h := v.window.GetSize()
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	nearPlane, farPlane := v.camera.ClipPlanes(v.scene.bounds.Radius())
	viewProj := math.Perspective(v.fovRadians(), aspect, nearPlane, farPlane).Mul(v.camera.ViewMatrix())

	v.scene.draw(frameState{
		model:        v.modelMatrix(),
		viewProj:     viewProj,
		cameraPos:    v.camera.Position(),
		useNormalMap: v.useNormalMap,
		debugView:    v.debugView,
	})
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.release()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%04X", code)
	}
	return nil
}
