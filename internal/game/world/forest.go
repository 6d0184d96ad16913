package world

import (
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Placement is where one tree stands.
type Placement struct {
	Position  mgl32.Vec3 // base of the trunk, on the ground
	Scale     float32
	RotationY float32
}

const (
	minTreeScale = 0.8
	maxTreeScale = 1.4
	// trees stay this far inside the ground edge
	edgeMargin = 2
	// give up after this many rejected draws per tree
	attemptsPerTree = 50
)

// ScatterTrees places count trees on a square ground of edge size, keeping
// clear of a circle of radius clear around spawn. The same seed always
// produces the same forest. Fewer trees are returned when the free area is
// too small to fit them.
func ScatterTrees(seed int64, count int, size, clear float32, spawn mgl32.Vec3) []Placement {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	half := max(size/2-edgeMargin, 0)

	out := make([]Placement, 0, count)
	for attempts := 0; len(out) < count && attempts < count*attemptsPerTree; attempts++ {
		x := (rng.Float32()*2 - 1) * half
		z := (rng.Float32()*2 - 1) * half
		if (mgl32.Vec2{x - spawn.X(), z - spawn.Z()}).Len() < clear {
			continue
		}
		out = append(out, Placement{
			Position:  mgl32.Vec3{x, 0, z},
			Scale:     minTreeScale + rng.Float32()*(maxTreeScale-minTreeScale),
			RotationY: rng.Float32() * 2 * gomath.Pi,
		})
	}
	return out
}
