// Package mesh builds the vertex buffers the animation engine rotates.
package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/cubespin/pkg/math"
)

// Mesh is an indexed triangle mesh.
// Positions is shared by reference with the viewer; Indices and Edges never
// change.
type Mesh struct {
	Positions []math.Vec3
	Indices   []uint32 // triangle list
	Edges     []uint32 // line list of face outlines
}

// ClonePositions returns a copy of the vertex positions.
func (m *Mesh) ClonePositions() []math.Vec3 {
	out := make([]math.Vec3, len(m.Positions))
	copy(out, m.Positions)
	return out
}

// Bounds returns the axis-aligned bounding box of the current positions.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min.X = gomath.Min(min.X, p.X)
		min.Y = gomath.Min(min.Y, p.Y)
		min.Z = gomath.Min(min.Z, p.Z)
		max.X = gomath.Max(max.X, p.X)
		max.Y = gomath.Max(max.Y, p.Y)
		max.Z = gomath.Max(max.Z, p.Z)
	}
	return min, max
}

// BuildCube returns an axis-aligned cube centred at the origin with the given
// edge length. Each face has its own four vertices so faces shade flat,
// giving 24 vertices, 36 triangle indices and 48 edge indices.
func BuildCube(size float64) (*Mesh, error) {
	if gomath.IsNaN(size) || gomath.IsInf(size, 0) || size <= 0 {
		return nil, fmt.Errorf("invalid cube size %v: must be a positive finite number", size)
	}
	h := size / 2

	// Counter-clockwise when viewed from outside.
	faces := [6][4]math.Vec3{
		{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}},     // +Z
		{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}}, // -Z
		{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}},     // +X
		{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}}, // -X
		{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}},     // +Y
		{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}}, // -Y
	}

	m := &Mesh{
		Positions: make([]math.Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
		Edges:     make([]uint32, 0, 48),
	}
	for _, face := range faces {
		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions, face[:]...)
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		m.Edges = append(m.Edges,
			base, base+1,
			base+1, base+2,
			base+2, base+3,
			base+3, base,
		)
	}
	return m, nil
}
