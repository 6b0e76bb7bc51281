package animation

// Integrator advances the orientation angle by a fixed signed step per frame.
type Integrator struct {
	angle     float64
	step      float64 // magnitude, degrees per frame
	direction float64 // +1 or -1
	target    float64
	seeking   bool
	reached   bool
}

// NewIntegrator returns an integrator starting at initial degrees that moves
// speed/frameRate degrees per frame in direction. When seeking is set it stops
// on target.
func NewIntegrator(initial, speed float64, frameRate int, direction int, target float64, seeking bool) *Integrator {
	dir := 1.0
	if direction < 0 {
		dir = -1.0
	}
	return &Integrator{
		angle:     initial,
		step:      speed / float64(frameRate),
		direction: dir,
		target:    target,
		seeking:   seeking,
	}
}

// Advance moves the angle one frame forward and reports whether the target
// has been reached. On the reaching frame the angle is clamped to exactly the
// target. Once reached, Advance does nothing and keeps returning true.
func (in *Integrator) Advance() bool {
	if in.reached {
		return true
	}

	in.angle += in.step * in.direction

	if !in.seeking {
		return false
	}
	if (in.direction > 0 && in.angle >= in.target) || (in.direction < 0 && in.angle <= in.target) {
		in.angle = in.target
		in.reached = true
	}
	return in.reached
}

// Angle returns the current angle in degrees.
func (in *Integrator) Angle() float64 { return in.angle }

// StepAngle returns the signed per-frame increment in degrees.
func (in *Integrator) StepAngle() float64 { return in.step * in.direction }

// Reached reports whether the target has been reached.
func (in *Integrator) Reached() bool { return in.reached }
