package animation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/pkg/math"
)

func newTestEngine(t *testing.T, v *fakeViewer, speed float64, axis string, initial, target float64, stop bool, direction int) (*Engine, *mesh.Mesh) {
	t.Helper()
	m := mustCube(t, 1)
	e, err := New(animationConfig(speed, axis, initial, target, stop, direction), m, v, Options{Clock: newFakeClock()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, m
}

func TestEngineReachesTargetAtFrameSixty(t *testing.T) {
	v := &fakeViewer{}
	e, m := newTestEngine(t, v, 90, "y", 0, 90, true, 1)

	if e.Mode() != ModeSeeking {
		t.Fatalf("initial mode: got %v, want seeking", e.Mode())
	}

	for i := 1; i <= 59; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if e.Mode() != ModeSeeking {
			t.Fatalf("left seeking early at frame %d (angle %v)", i, e.Angle())
		}
	}
	if e.Angle() != 88.5 {
		t.Fatalf("angle after 59 frames: got %v, want 88.5", e.Angle())
	}

	if err := e.Step(); err != nil {
		t.Fatalf("step 60: %v", err)
	}
	if e.Mode() != ModeIdle {
		t.Fatalf("mode after frame 60: got %v, want idle", e.Mode())
	}
	if e.Angle() != 90.0 {
		t.Errorf("final angle: got %v, want exactly 90", e.Angle())
	}
	if v.presents != 60 {
		t.Errorf("presents: got %d, want 60", v.presents)
	}
	if v.interactive != 1 {
		t.Errorf("EnterInteractive calls: got %d, want 1", v.interactive)
	}

	want := mustCube(t, 1)
	NewApplier(want).Apply(PolicyAbsolute, 90, math.AxisY)
	for i := range m.Positions {
		if m.Positions[i] != want.Positions[i] {
			t.Fatalf("vertex %d: got %v, want %v", i, m.Positions[i], want.Positions[i])
		}
	}
}

func TestEngineIdleStopsRotating(t *testing.T) {
	v := &fakeViewer{}
	e, m := newTestEngine(t, v, 600, "x", 0, 30, true, 1)

	for e.Mode() != ModeIdle {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	snapshot := m.ClonePositions()
	presents := v.presents

	for i := 0; i < 10; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("idle step: %v", err)
		}
	}
	if e.Angle() != 30 {
		t.Errorf("angle changed in idle: %v", e.Angle())
	}
	for i := range snapshot {
		if snapshot[i] != m.Positions[i] {
			t.Fatalf("vertex %d moved in idle", i)
		}
	}
	if v.presents != presents+10 {
		t.Errorf("idle should keep presenting: got %d presents, want %d", v.presents, presents+10)
	}
	if v.interactive != 1 {
		t.Errorf("EnterInteractive should fire once, got %d", v.interactive)
	}
}

func TestEngineContinuousNeverIdles(t *testing.T) {
	v := &fakeViewer{}
	e, _ := newTestEngine(t, v, 45, "z", 0, 90, false, 1)

	if e.Mode() != ModeContinuous {
		t.Fatalf("initial mode: got %v, want continuous", e.Mode())
	}
	for i := 0; i < 5000; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if e.Mode() != ModeContinuous {
			t.Fatalf("mode changed at frame %d: %v", i, e.Mode())
		}
	}
	if v.interactive != 0 {
		t.Errorf("continuous mode should never go interactive")
	}
}

func TestEngineZeroSpeedNeverTerminates(t *testing.T) {
	v := &fakeViewer{}
	e, m := newTestEngine(t, v, 0, "y", 0, 90, true, 1)
	rest := m.ClonePositions()

	for i := 0; i < 10000; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if e.Mode() != ModeSeeking {
		t.Errorf("mode: got %v, want seeking", e.Mode())
	}
	if e.Angle() != 0 {
		t.Errorf("angle moved with zero speed: %v", e.Angle())
	}
	for i := range rest {
		if rest[i] != m.Positions[i] {
			t.Fatalf("vertex %d moved with zero speed", i)
		}
	}
}

func TestEngineBackwardSeeking(t *testing.T) {
	v := &fakeViewer{}
	e, _ := newTestEngine(t, v, 600, "x", 0, -45, true, -1)

	for i := 0; i < 100 && e.Mode() != ModeIdle; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if e.Mode() != ModeIdle || e.Angle() != -45 {
		t.Errorf("got mode %v angle %v, want idle at -45", e.Mode(), e.Angle())
	}
	if e.Frame() != 5 {
		t.Errorf("frames: got %d, want 5", e.Frame())
	}
}

func TestEngineInitialAngleApplied(t *testing.T) {
	v := &fakeViewer{}
	_, m := newTestEngine(t, v, 30, "z", 45, 90, true, 1)

	want := mustCube(t, 1)
	NewApplier(want).Apply(PolicyAbsolute, 45, math.AxisZ)
	for i := range m.Positions {
		if m.Positions[i] != want.Positions[i] {
			t.Fatalf("vertex %d not at initial orientation: %v", i, m.Positions[i])
		}
	}
}

func TestEngineUnknownAxisRotatesAboutZ(t *testing.T) {
	v := &fakeViewer{}
	_, m := newTestEngine(t, v, 30, "w", 45, 90, true, 1)

	want := mustCube(t, 1)
	NewApplier(want).Apply(PolicyAbsolute, 45, math.AxisZ)
	for i := range m.Positions {
		if m.Positions[i] != want.Positions[i] {
			t.Fatalf("vertex %d: got %v, want z rotation %v", i, m.Positions[i], want.Positions[i])
		}
	}
}

func TestEngineIncrementalEndsExact(t *testing.T) {
	v := &fakeViewer{}
	m := mustCube(t, 1)
	cfg := animationConfig(37, "x", 3, 123.4, true, 1)
	cfg.IncrementalUpdates = true

	e, err := New(cfg, m, v, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for e.Mode() != ModeIdle {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	want := mustCube(t, 1)
	NewApplier(want).Apply(PolicyAbsolute, 123.4, math.AxisX)
	for i := range m.Positions {
		if m.Positions[i] != want.Positions[i] {
			t.Fatalf("vertex %d: got %v, want exact %v", i, m.Positions[i], want.Positions[i])
		}
	}
}

func TestEngineTransientPresentFailures(t *testing.T) {
	v := &fakeViewer{
		presentErr: func(n int) error {
			if n <= 3 {
				return errors.New("swap failed")
			}
			return nil
		},
	}
	e, _ := newTestEngine(t, v, 30, "x", 0, 90, true, 1)

	for i := 0; i < 10; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: transient failure should not surface: %v", i, err)
		}
	}
	if e.Frame() != 10 {
		t.Errorf("frames: got %d, want 10", e.Frame())
	}
}

func TestEnginePresentFailuresEscalate(t *testing.T) {
	v := &fakeViewer{presentErr: func(int) error { return errors.New("swap failed") }}
	m := mustCube(t, 1)
	cfg := animationConfig(30, "x", 0, 90, true, 1)
	cfg.MaxPresentFailures = 5

	e, err := New(cfg, m, v, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 1; i <= 4; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d escalated early: %v", i, err)
		}
	}
	err = e.Step()
	if !errors.Is(err, ErrViewerLost) {
		t.Fatalf("step 5: got %v, want ErrViewerLost", err)
	}
}

func TestEnginePresentSuccessResetsFailures(t *testing.T) {
	v := &fakeViewer{
		presentErr: func(n int) error {
			if n%3 == 0 {
				return nil
			}
			return errors.New("occluded")
		},
	}
	m := mustCube(t, 1)
	cfg := animationConfig(30, "x", 0, 90, false, 1)
	cfg.MaxPresentFailures = 3

	e, err := New(cfg, m, v, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: two failures between successes must not escalate: %v", i, err)
		}
	}
}

func TestEngineViewerLostIsImmediate(t *testing.T) {
	v := &fakeViewer{presentErr: func(int) error { return ErrViewerLost }}
	e, _ := newTestEngine(t, v, 30, "x", 0, 90, true, 1)

	if err := e.Step(); !errors.Is(err, ErrViewerLost) {
		t.Fatalf("got %v, want ErrViewerLost", err)
	}
}

func TestEngineStepViewerClosed(t *testing.T) {
	v := &fakeViewer{quitAfter: 2}
	e, _ := newTestEngine(t, v, 30, "x", 0, 90, true, 1)

	for i := 0; i < 2; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	angle := e.Angle()
	if err := e.Step(); !errors.Is(err, ErrViewerClosed) {
		t.Fatalf("got %v, want ErrViewerClosed", err)
	}
	if e.Angle() != angle {
		t.Error("angle advanced after the viewer was closed")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	good := animationConfig(30, "x", 0, 90, true, 1)

	if _, err := New(good, &mesh.Mesh{}, &fakeViewer{}, Options{}); err == nil {
		t.Error("expected error for empty mesh")
	}
	if _, err := New(good, mustCube(t, 1), nil, Options{}); err == nil {
		t.Error("expected error for nil viewer")
	}

	badRate := good
	badRate.FrameRate = 0
	if _, err := New(badRate, mustCube(t, 1), &fakeViewer{}, Options{}); err == nil {
		t.Error("expected error for zero frame rate")
	}
}

func TestEngineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := newFakeClock()
	v := &fakeViewer{onPresent: func(n int) {
		if n == 10 {
			cancel()
		}
	}}
	m := mustCube(t, 1)
	e, err := New(animationConfig(30, "x", 0, 90, false, 1), m, v, Options{Clock: clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.presents != 10 {
		t.Errorf("presents: got %d, want 10", v.presents)
	}
	if e.Frame() != 10 {
		t.Errorf("frames: got %d, want 10", e.Frame())
	}

	interval := time.Second / 60
	for i, d := range clock.sleeps {
		if d != interval {
			t.Errorf("sleep %d: got %v, want %v", i, d, interval)
		}
	}
}

func TestEngineRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := &fakeViewer{}
	e, _ := newTestEngine(t, v, 30, "x", 0, 90, true, 1)
	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.presents != 0 {
		t.Errorf("no frame should run after cancellation, got %d presents", v.presents)
	}
}

func TestEngineRunViewerClosed(t *testing.T) {
	v := &fakeViewer{quitAfter: 120}
	e, _ := newTestEngine(t, v, 90, "y", 0, 90, true, 1)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Reaches idle at frame 60 and keeps presenting until closed.
	if e.Mode() != ModeIdle {
		t.Errorf("mode: got %v, want idle", e.Mode())
	}
	if v.presents != 120 {
		t.Errorf("presents: got %d, want 120", v.presents)
	}
}

func TestEngineRunViewerLost(t *testing.T) {
	v := &fakeViewer{presentErr: func(n int) error {
		if n == 7 {
			return ErrViewerLost
		}
		return nil
	}}
	e, _ := newTestEngine(t, v, 30, "x", 0, 90, false, 1)

	err := e.Run(context.Background())
	if !errors.Is(err, ErrViewerLost) {
		t.Fatalf("Run: got %v, want ErrViewerLost", err)
	}
	if v.presents != 7 {
		t.Errorf("presents: got %d, want 7", v.presents)
	}
}
