package animation

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cubespin/pkg/math"
)

func maxDeviation(a, b []math.Vec3) float64 {
	var worst float64
	for i := range a {
		worst = gomath.Max(worst, a[i].Distance(b[i]))
	}
	return worst
}

func TestAbsoluteMatchesRepeatedIncremental(t *testing.T) {
	const step = 1.5
	tests := []struct {
		k   int
		tol float64
	}{
		{1, 1e-15},
		{10, 1e-14},
		{1000, 1e-12},
		{100000, 1e-9},
	}

	for _, axis := range []math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		for _, tt := range tests {
			inc := mustCube(t, 1)
			abs := mustCube(t, 1)
			incApplier := NewApplier(inc)
			absApplier := NewApplier(abs)

			for i := 0; i < tt.k; i++ {
				incApplier.Apply(PolicyIncremental, step, axis)
			}
			absApplier.Apply(PolicyAbsolute, float64(tt.k)*step, axis)

			if d := maxDeviation(inc.Positions, abs.Positions); d > tt.tol {
				t.Errorf("axis %v k=%d: deviation %g exceeds %g", axis, tt.k, d, tt.tol)
			}
		}
	}
}

func TestAbsoluteIgnoresDrift(t *testing.T) {
	m := mustCube(t, 1)
	a := NewApplier(m)

	for i := 0; i < 5000; i++ {
		a.Apply(PolicyIncremental, 0.7, math.AxisY)
	}
	a.Apply(PolicyAbsolute, 3500, math.AxisY)
	drifted := m.ClonePositions()

	fresh := mustCube(t, 1)
	NewApplier(fresh).Apply(PolicyAbsolute, 3500, math.AxisY)

	for i := range drifted {
		if drifted[i] != fresh.Positions[i] {
			t.Fatalf("vertex %d: absolute after drift %v, fresh %v", i, drifted[i], fresh.Positions[i])
		}
	}
}

func TestApplierKeepsRestPose(t *testing.T) {
	m := mustCube(t, 2)
	rest := m.ClonePositions()
	a := NewApplier(m)

	a.Apply(PolicyAbsolute, 45, math.AxisX)
	a.Apply(PolicyIncremental, 10, math.AxisX)

	for i, p := range a.restPose() {
		if p != rest[i] {
			t.Fatalf("rest pose vertex %d changed: %v -> %v", i, rest[i], p)
		}
	}
	if maxDeviation(m.Positions, rest) == 0 {
		t.Error("live buffer should have been rotated")
	}
}

func TestApplierRowVectorY(t *testing.T) {
	m := mustCube(t, 1)
	a := NewApplier(m)
	a.Apply(PolicyAbsolute, 90, math.AxisY)

	// p·Ry(90) maps (x, y, z) to (-z, y, x).
	for i, p := range a.restPose() {
		want := math.Vec3{X: -p.Z, Y: p.Y, Z: p.X}
		if m.Positions[i].Distance(want) > 1e-12 {
			t.Errorf("vertex %d: got %v, want %v", i, m.Positions[i], want)
		}
	}
}

func TestNewApplierFromLengthMismatch(t *testing.T) {
	rest := make([]math.Vec3, 8)
	live := make([]math.Vec3, 7)
	if _, err := NewApplierFrom(rest, live); err == nil {
		t.Error("expected error for mismatched buffers")
	}
}
