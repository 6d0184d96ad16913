// Package scene holds what the renderer draws: mesh nodes, debug line sets
// and the sun.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/lighting"
	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

// LineSet is a batch of line segments drawn unlit. Vertices come in pairs.
type LineSet struct {
	Vertices []float32 // x, y, z per vertex
	Color    mgl32.Vec3
	Model    mgl32.Mat4
	Visible  bool
}

// Scene is the set of drawables for one frame.
type Scene struct {
	Nodes []*Node
	Lines []*LineSet

	Sun            lighting.Sun
	SkyColor       mgl32.Vec3
	ShadowsEnabled bool
}

// New creates an empty scene lit by the default sun.
func New() *Scene {
	return &Scene{
		Sun:            lighting.DefaultSun(),
		SkyColor:       mgl32.Vec3{0.55, 0.72, 0.9},
		ShadowsEnabled: true,
	}
}

// Add appends a node and returns it.
func (s *Scene) Add(n *Node) *Node {
	s.Nodes = append(s.Nodes, n)
	return n
}

// AddLines appends a line set and returns it.
func (s *Scene) AddLines(l *LineSet) *LineSet {
	s.Lines = append(s.Lines, l)
	return l
}

// Find returns the first node with the given name.
func (s *Scene) Find(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Bounds returns the combined world bounds of visible nodes.
func (s *Scene) Bounds() mesh.Bounds {
	var out mesh.Bounds
	first := true
	for _, n := range s.Nodes {
		if !n.Visible {
			continue
		}
		b, ok := n.WorldBounds()
		if !ok {
			continue
		}
		if first {
			out, first = b, false
			continue
		}
		for k := 0; k < 3; k++ {
			out.Min[k] = min(out.Min[k], b.Min[k])
			out.Max[k] = max(out.Max[k], b.Max[k])
		}
	}
	return out
}
