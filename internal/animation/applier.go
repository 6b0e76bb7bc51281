package animation

import (
	"fmt"

	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/pkg/math"
)

// Policy selects how a rotation is applied to the live vertex buffer.
type Policy int

const (
	// PolicyAbsolute recomputes every vertex from the rest pose.
	PolicyAbsolute Policy = iota
	// PolicyIncremental composes the rotation onto the current vertices.
	// Floating-point error accumulates over many frames.
	PolicyIncremental
)

func (p Policy) String() string {
	if p == PolicyIncremental {
		return "incremental"
	}
	return "absolute"
}

// Applier rotates a mesh's live positions. Vertices are row vectors: p' = p·R.
type Applier struct {
	rest []math.Vec3
	live []math.Vec3
}

// NewApplier captures the mesh's current positions as the rest pose and
// rotates m.Positions in place.
func NewApplier(m *mesh.Mesh) *Applier {
	a, _ := NewApplierFrom(m.ClonePositions(), m.Positions)
	return a
}

// NewApplierFrom pairs an explicit rest pose with a live buffer of the same
// length.
func NewApplierFrom(rest, live []math.Vec3) (*Applier, error) {
	if len(rest) != len(live) {
		return nil, fmt.Errorf("rest pose has %d vertices, live buffer has %d", len(rest), len(live))
	}
	return &Applier{rest: rest, live: live}, nil
}

// Incremental sets live[i] = live[i]·r.
func (a *Applier) Incremental(r math.Mat3) {
	for i, p := range a.live {
		a.live[i] = p.MulMat3(r)
	}
}

// Absolute sets live[i] = rest[i]·r.
func (a *Applier) Absolute(r math.Mat3) {
	for i, p := range a.rest {
		a.live[i] = p.MulMat3(r)
	}
}

// Apply rotates by angleDeg about axis using policy. For PolicyIncremental
// angleDeg is the per-frame step; for PolicyAbsolute it is the total angle.
func (a *Applier) Apply(policy Policy, angleDeg float64, axis math.Axis) {
	r := RotationMatrix(angleDeg, axis)
	if policy == PolicyIncremental {
		a.Incremental(r)
		return
	}
	a.Absolute(r)
}

// restPose returns the rest pose. Callers must not modify it.
func (a *Applier) restPose() []math.Vec3 { return a.rest }
