package animation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubespin/internal/config"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/pkg/math"
)

// Options holds the engine's collaborators. Zero values are replaced by
// defaults.
type Options struct {
	Logger *zap.Logger
	Clock  Clock
}

// Engine owns the orientation state and the live mesh for one animation.
type Engine struct {
	log    *zap.Logger
	clock  Clock
	viewer Viewer

	axis        math.Axis
	policy      Policy
	interval    time.Duration
	maxFailures int

	mode       Mode
	integrator *Integrator
	applier    *Applier

	frame    uint64
	failures int
}

// New creates an engine for m, capturing its current positions as the rest
// pose and rotating them to the initial angle. The viewer is not touched.
func New(cfg config.AnimationConfig, m *mesh.Mesh, v Viewer, opts Options) (*Engine, error) {
	if m == nil || len(m.Positions) == 0 {
		return nil, errors.New("empty mesh")
	}
	if v == nil {
		return nil, errors.New("nil viewer")
	}
	if cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", cfg.FrameRate)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	axis, ok := math.ParseAxis(cfg.RotationAxis)
	if !ok {
		log.Warn("unknown rotation axis, rotating about z", zap.String("axis", cfg.RotationAxis))
	}

	e := &Engine{
		log:         log,
		clock:       opts.Clock,
		viewer:      v,
		axis:        axis,
		policy:      PolicyAbsolute,
		interval:    time.Second / time.Duration(cfg.FrameRate),
		maxFailures: cfg.MaxPresentFailures,
		mode:        ModeContinuous,
		integrator: NewIntegrator(cfg.InitialAngle, cfg.RotationSpeed, cfg.FrameRate,
			cfg.RotationDirection, cfg.TargetAngle, cfg.StopAtTarget),
		applier: NewApplier(m),
	}
	if e.clock == nil {
		e.clock = RealClock()
	}
	if e.maxFailures <= 0 {
		e.maxFailures = 1
	}
	if cfg.IncrementalUpdates {
		e.policy = PolicyIncremental
	}
	if cfg.StopAtTarget {
		e.mode = ModeSeeking
	}

	// Bring the live buffer to the initial orientation.
	e.applier.Apply(PolicyAbsolute, e.integrator.Angle(), e.axis)

	if cfg.StopAtTarget && cfg.RotationSpeed == 0 && cfg.InitialAngle != cfg.TargetAngle {
		e.log.Warn("rotation speed is zero; target will never be reached",
			zap.Float64("initial_angle", cfg.InitialAngle),
			zap.Float64("target_angle", cfg.TargetAngle),
		)
	}
	return e, nil
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Angle returns the current orientation in degrees.
func (e *Engine) Angle() float64 { return e.integrator.Angle() }

// Frame returns the number of completed steps.
func (e *Engine) Frame() uint64 { return e.frame }

// Step runs one frame: poll events, advance and apply the rotation unless
// idle, then present. It returns ErrViewerClosed when the user closed the
// viewer and an error wrapping ErrViewerLost when presentation has failed
// for good. Transient present failures are logged and return nil.
func (e *Engine) Step() error {
	if e.viewer.PollEvents() {
		return ErrViewerClosed
	}

	if e.mode == ModeIdle {
		err := e.present()
		e.frame++
		return err
	}

	reached := e.integrator.Advance()
	switch {
	case reached:
		// Exact final orientation, independent of accumulated drift.
		e.applier.Apply(PolicyAbsolute, e.integrator.Angle(), e.axis)
	case e.policy == PolicyIncremental:
		e.applier.Apply(PolicyIncremental, e.integrator.StepAngle(), e.axis)
	default:
		e.applier.Apply(PolicyAbsolute, e.integrator.Angle(), e.axis)
	}

	err := e.present()
	e.frame++
	if err != nil {
		return err
	}

	if reached {
		e.enterIdle()
	}
	return nil
}

func (e *Engine) enterIdle() {
	e.mode = ModeIdle
	e.log.Info("target reached",
		zap.Float64("angle", e.integrator.Angle()),
		zap.Uint64("frame", e.frame),
	)
	if err := e.viewer.EnterInteractive(); err != nil {
		e.log.Warn("failed to enter interactive mode", zap.Error(err))
	}
}

// present shows the frame, counting consecutive failures.
func (e *Engine) present() error {
	err := e.viewer.Present()
	if err == nil {
		e.failures = 0
		return nil
	}
	if errors.Is(err, ErrViewerLost) {
		return err
	}

	e.failures++
	e.log.Warn("present failed",
		zap.Error(err),
		zap.Uint64("frame", e.frame),
		zap.Int("consecutive", e.failures),
	)
	if e.failures >= e.maxFailures {
		return fmt.Errorf("%w: %d consecutive present failures, last: %v", ErrViewerLost, e.failures, err)
	}
	return nil
}

// Run steps the engine at the configured frame rate until ctx is cancelled,
// the viewer is closed, or presentation fails for good. Cancellation and
// closing the viewer return nil.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("starting animation",
		zap.Stringer("mode", e.mode),
		zap.Stringer("axis", e.axis),
		zap.Stringer("policy", e.policy),
		zap.Float64("angle", e.integrator.Angle()),
		zap.Float64("step", e.integrator.StepAngle()),
	)

	frameCount := 0
	fpsTimer := e.clock.Now()

	for {
		if ctx.Err() != nil {
			e.log.Info("animation interrupted",
				zap.Stringer("mode", e.mode),
				zap.Float64("angle", e.integrator.Angle()),
			)
			return nil
		}

		start := e.clock.Now()
		prev := e.mode
		if err := e.Step(); err != nil {
			if errors.Is(err, ErrViewerClosed) {
				e.log.Info("viewer closed by user", zap.Stringer("mode", e.mode))
				return nil
			}
			return err
		}
		if e.mode != prev {
			e.log.Debug("mode changed", zap.Stringer("from", prev), zap.Stringer("to", e.mode))
		}

		// FPS counter
		frameCount++
		if now := e.clock.Now(); now.Sub(fpsTimer) >= time.Second {
			e.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("angle", e.integrator.Angle()))
			frameCount = 0
			fpsTimer = now
		}

		// Best-effort cadence; cancellation is picked up at the top of the loop.
		_ = e.clock.Sleep(ctx, e.interval-e.clock.Now().Sub(start))
	}
}
