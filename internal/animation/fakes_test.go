package animation

import (
	"context"
	"testing"
	"time"

	"github.com/Faultbox/cubespin/internal/config"
	"github.com/Faultbox/cubespin/internal/engine/camera"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
)

// fakeViewer records calls and injects failures.
type fakeViewer struct {
	mesh        *mesh.Mesh
	preset      camera.Preset
	presents    int
	interactive int
	closed      int

	// presentErr, when set, decides the result of the n-th Present (1-based).
	presentErr func(n int) error
	// quitAfter makes PollEvents report quit once this many presents happened.
	quitAfter int
	// onPresent runs after every Present.
	onPresent func(n int)

	addErr    error
	cameraErr error
}

func (v *fakeViewer) AddGeometry(m *mesh.Mesh) error {
	v.mesh = m
	return v.addErr
}

func (v *fakeViewer) SetCamera(p camera.Preset) error {
	v.preset = p
	return v.cameraErr
}

func (v *fakeViewer) Present() error {
	v.presents++
	if v.onPresent != nil {
		v.onPresent(v.presents)
	}
	if v.presentErr != nil {
		return v.presentErr(v.presents)
	}
	return nil
}

func (v *fakeViewer) PollEvents() bool {
	return v.quitAfter > 0 && v.presents >= v.quitAfter
}

func (v *fakeViewer) EnterInteractive() error {
	v.interactive++
	return nil
}

func (v *fakeViewer) Close() error {
	v.closed++
	return nil
}

// fakeClock advances only when slept on.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return ctx.Err()
}

func animationConfig(speed float64, axis string, initial, target float64, stop bool, direction int) config.AnimationConfig {
	cfg := config.Default().Animation
	cfg.RotationSpeed = speed
	cfg.RotationAxis = axis
	cfg.InitialAngle = initial
	cfg.TargetAngle = target
	cfg.StopAtTarget = stop
	cfg.RotationDirection = direction
	return cfg
}

func mustCube(t *testing.T, size float64) *mesh.Mesh {
	t.Helper()
	m, err := mesh.BuildCube(size)
	if err != nil {
		t.Fatalf("BuildCube: %v", err)
	}
	return m
}
