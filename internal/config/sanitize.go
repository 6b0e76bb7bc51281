package config

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	validAxes    = map[string]bool{"x": true, "y": true, "z": true}
	validCameras = map[string]bool{"iso": true, "xy": true, "xz": true, "yz": true}
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Sanitize replaces out-of-range values with their defaults and returns a
// description of every replacement. Axis, camera and level names are
// lower-cased in place.
func Sanitize(cfg *Config) []string {
	def := Default()
	var notes []string
	note := func(key string, got, used any) {
		notes = append(notes, fmt.Sprintf("%s: invalid value %v, using %v", key, got, used))
	}

	a := &cfg.Animation
	if a.RotationSpeed < 0 || !finite(a.RotationSpeed) {
		note("rotation_speed", a.RotationSpeed, def.Animation.RotationSpeed)
		a.RotationSpeed = def.Animation.RotationSpeed
	}
	a.RotationAxis = strings.ToLower(strings.TrimSpace(a.RotationAxis))
	if !validAxes[a.RotationAxis] {
		// Unknown axes rotate about Z, matching RotationMatrix.
		note("rotation_axis", a.RotationAxis, "z")
		a.RotationAxis = "z"
	}
	if !finite(a.InitialAngle) {
		note("initial_angle", a.InitialAngle, def.Animation.InitialAngle)
		a.InitialAngle = def.Animation.InitialAngle
	}
	if !finite(a.TargetAngle) {
		note("target_angle", a.TargetAngle, def.Animation.TargetAngle)
		a.TargetAngle = def.Animation.TargetAngle
	}
	if a.RotationDirection != 1 && a.RotationDirection != -1 {
		note("rotation_direction", a.RotationDirection, def.Animation.RotationDirection)
		a.RotationDirection = def.Animation.RotationDirection
	}
	if a.FrameRate <= 0 {
		note("frame_rate", a.FrameRate, def.Animation.FrameRate)
		a.FrameRate = def.Animation.FrameRate
	}
	if a.MaxPresentFailures <= 0 {
		note("max_present_failures", a.MaxPresentFailures, def.Animation.MaxPresentFailures)
		a.MaxPresentFailures = def.Animation.MaxPresentFailures
	}

	c := &cfg.Cube
	if c.Size <= 0 || !finite(c.Size) {
		note("cube.size", c.Size, def.Cube.Size)
		c.Size = def.Cube.Size
	}
	if _, err := colorful.Hex(c.Color); err != nil {
		note("cube.color", c.Color, def.Cube.Color)
		c.Color = def.Cube.Color
	}

	g := &cfg.Graphics
	if g.Width <= 0 {
		note("graphics.width", g.Width, def.Graphics.Width)
		g.Width = def.Graphics.Width
	}
	if g.Height <= 0 {
		note("graphics.height", g.Height, def.Graphics.Height)
		g.Height = def.Graphics.Height
	}
	g.Camera = strings.ToLower(strings.TrimSpace(g.Camera))
	if !validCameras[g.Camera] {
		note("graphics.camera", g.Camera, def.Graphics.Camera)
		g.Camera = def.Graphics.Camera
	}

	l := &cfg.Logging
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if !validLevels[l.Level] {
		note("logging.level", l.Level, def.Logging.Level)
		l.Level = def.Logging.Level
	}

	return notes
}

func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
