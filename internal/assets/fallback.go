package assets

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
	"github.com/Faultbox/trailhead/internal/logger"
)

// FallbackCharacterPosition is where the substitute character box is placed.
var FallbackCharacterPosition = mgl32.Vec3{0, 1, 0}

// FallbackCharacter returns the 1×2×1 box used when the character model
// cannot be loaded. The box is centered on its origin.
func FallbackCharacter() *Model {
	return &Model{
		Name:     "character-fallback",
		Mesh:     mesh.Box(mgl32.Vec3{0.5, 1, 0.5}),
		Fallback: true,
	}
}

// FallbackTree returns a procedural tree: a trunk with a cone crown,
// standing on its origin.
func FallbackTree() *Model {
	trunk := mesh.Cylinder(0.2, 1.2, 8).Translated(mgl32.Vec3{0, 0.6, 0})
	crown := mesh.Cone(1, 2.4, 10).Translated(mgl32.Vec3{0, 2.4, 0})
	return &Model{
		Name:     "tree-fallback",
		Mesh:     mesh.Merge(trunk, crown),
		Fallback: true,
	}
}

// ModelOr returns the loaded model of r, or the model built by fallback when
// the load failed. The failure is logged at warn level.
func ModelOr(r Result, fallback func() *Model) *Model {
	if r.Err == nil && r.Model != nil {
		return r.Model
	}
	logger.Named("assets").Warn("asset load failed, using fallback",
		zap.String("key", r.Key),
		zap.String("path", r.Path),
		zap.Error(r.Err))
	return fallback()
}
