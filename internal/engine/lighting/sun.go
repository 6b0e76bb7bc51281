// Package lighting provides the directional light used to shade cube faces.
package lighting

import (
	"math"

	gomath "github.com/Faultbox/cubespin/pkg/math"
)

// Sun is a directional light.
type Sun struct {
	Direction gomath.Vec3 // unit vector pointing towards the light
	Ambient   float64     // brightness of faces turned away, 0-1
}

// DefaultSun lights the cube from above and to the front right.
func DefaultSun() Sun {
	return NewSun(35, 55, 0.35)
}

// NewSun builds a Sun from longitude (rotation around Y, degrees) and
// latitude (elevation from the horizon, degrees). Ambient is clamped to 0-1.
func NewSun(longitude, latitude, ambient float64) Sun {
	return Sun{
		Direction: SunDirection(longitude, latitude),
		Ambient:   math.Max(0, math.Min(1, ambient)),
	}
}

// SunDirection converts longitude/latitude angles to a normalized direction
// vector pointing towards the sun.
func SunDirection(longitude, latitude float64) gomath.Vec3 {
	lonRad := gomath.Radians(longitude)
	latRad := gomath.Radians(latitude)

	// Longitude is around Y axis, latitude is elevation from horizon
	return gomath.Vec3{
		X: math.Cos(latRad) * math.Sin(lonRad),
		Y: math.Sin(latRad),
		Z: math.Cos(latRad) * math.Cos(lonRad),
	}
}

// Uniforms returns the direction and ambient term narrowed for upload.
func (s Sun) Uniforms() (dir [3]float32, ambient float32) {
	d := s.Direction.Normalize()
	return [3]float32{float32(d.X), float32(d.Y), float32(d.Z)}, float32(s.Ambient)
}
