// Package animation rotates the cube mesh over time and drives the viewer.
//
// An Engine owns the orientation angle and the live vertex buffer. Each Step
// advances the angle through an Integrator, rotates the buffer through an
// Applier and presents the frame. In Seeking mode the engine stops on the
// exact target angle and becomes Idle, leaving the viewer interactive.
package animation

import "github.com/Faultbox/cubespin/pkg/math"

// RotationMatrix returns the rotation of angleDeg degrees about axis.
// Axis values other than X and Y rotate about Z.
func RotationMatrix(angleDeg float64, axis math.Axis) math.Mat3 {
	rad := math.Radians(angleDeg)
	switch axis {
	case math.AxisX:
		return math.RotationX(rad)
	case math.AxisY:
		return math.RotationY(rad)
	default:
		return math.RotationZ(rad)
	}
}
