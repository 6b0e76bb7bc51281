// Package camera provides the orbit camera the viewer looks through.
package camera

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/cubespin/pkg/math"
)

// Preset is a named starting viewpoint.
type Preset string

const (
	PresetIso Preset = "iso" // isometric, looking down the (1,1,1) diagonal
	PresetXY  Preset = "xy"  // looking along -Z at the XY plane
	PresetXZ  Preset = "xz"  // looking down -Y at the XZ plane
	PresetYZ  Preset = "yz"  // looking along -X at the YZ plane
)

// ParsePreset converts a preset name to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetIso, PresetXY, PresetXZ, PresetYZ:
		return p, nil
	default:
		return "", fmt.Errorf("unknown camera preset %q", s)
	}
}

// FovY is the vertical field of view in radians.
const FovY = gomath.Pi / 4

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float64 // Distance from center
	RotationX float64 // Pitch (vertical angle, radians)
	RotationY float64 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitCamera creates a new orbit camera with default settings.
// Pitch and yaw start at zero until ApplyPreset is called.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4.0,
		MinDistance:     0.5,
		MaxDistance:     100.0,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// ApplyPreset points the camera from the preset's direction, keeping the
// current center and distance.
func (c *OrbitCamera) ApplyPreset(p Preset) {
	switch p {
	case PresetXY:
		c.RotationX, c.RotationY = 0, 0
	case PresetXZ:
		c.RotationX, c.RotationY = c.MaxPitch, 0
	case PresetYZ:
		c.RotationX, c.RotationY = 0, gomath.Pi/2
	default:
		// atan(1/sqrt(2)) is the elevation of the (1,1,1) diagonal.
		c.RotationX, c.RotationY = gomath.Atan(1/gomath.Sqrt2), gomath.Pi/4
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * gomath.Cos(c.RotationX) * gomath.Sin(c.RotationY)
	y := c.Distance * gomath.Sin(c.RotationX)
	z := c.Distance * gomath.Cos(c.RotationX) * gomath.Cos(c.RotationY)

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float64) math.Mat4 {
	near := c.Distance * 0.01
	far := c.Distance * 10
	return math.Perspective(FovY, aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centers the camera on the box and backs off far enough that a
// sphere enclosing it fills the view.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	radius := max.Sub(min).Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / gomath.Sin(FovY/2) * 1.2
	c.MinDistance = radius
	c.MaxDistance = c.Distance * 20
}
