// Package camera provides an orbit camera for previewing meshes.
package camera

import (
	gomath "math"

	"github.com/Faultbox/normalmesh/pkg/math"
)

// OrbitCamera orbits around a center point. Angles are measured in the
// frame of Up, so the same camera works for Y-up and Z-up meshes.
type OrbitCamera struct {
	Center math.Vec3
	Up     math.Vec3 // world up, +Y or +Z

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Elevation above the horizon (radians)
	Yaw      float32 // Rotation around Up (radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera(zUp bool) *OrbitCamera {
	up := math.Vec3{Y: 1}
	if zUp {
		up = math.Vec3{Z: 1}
	}
	return &OrbitCamera{
		Up:              up,
		Distance:        3.0,
		Pitch:           0.4,
		MinDistance:     0.01,
		MaxDistance:     1e5,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// basis returns two horizontal axes orthogonal to Up.
func (c *OrbitCamera) basis() (forward, right math.Vec3) {
	if c.Up.Z != 0 {
		return math.Vec3{Y: -1}, math.Vec3{X: 1}
	}
	return math.Vec3{Z: 1}, math.Vec3{X: 1}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	forward, right := c.basis()
	cosP := float32(gomath.Cos(float64(c.Pitch)))
	sinP := float32(gomath.Sin(float64(c.Pitch)))
	cosY := float32(gomath.Cos(float64(c.Yaw)))
	sinY := float32(gomath.Sin(float64(c.Yaw)))

	offset := forward.Scale(cosP * cosY).
		Add(right.Scale(cosP * sinY)).
		Add(c.Up.Scale(sinP))
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, c.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a sphere and backs off far enough to
// keep it in view for the given vertical field of view (radians).
func (c *OrbitCamera) FitToBounds(center math.Vec3, radius, fovY float32) {
	c.Center = center
	if radius <= 0 {
		radius = 1
	}
	half := float64(fovY) / 2
	c.Distance = radius / float32(gomath.Sin(half))
	c.MinDistance = radius * 0.1
	c.MaxDistance = c.Distance * 20
	c.Pitch = 0.4
	c.Yaw = 0
}

// ClipPlanes returns near and far distances that enclose a sphere of the
// given radius around Center.
func (c *OrbitCamera) ClipPlanes(radius float32) (near, far float32) {
	near = max(c.Distance-radius*2, c.Distance*0.01)
	far = c.Distance + radius*2
	return near, far
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
