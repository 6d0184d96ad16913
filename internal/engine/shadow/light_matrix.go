package shadow

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

// minFocusRadius keeps the follow frustum from collapsing onto the character.
const minFocusRadius = 8

// radius returns the half-diagonal of b.
func radius(b mesh.Bounds) float32 {
	return b.Size().Mul(0.5).Len()
}

func lightUp(lightDir mgl32.Vec3) mgl32.Vec3 {
	if abs32(lightDir.Y()) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// DirectionalLightMatrix returns the light view-projection that covers the
// whole scene. lightDir points toward the light.
func DirectionalLightMatrix(lightDir mgl32.Vec3, scene mesh.Bounds) mgl32.Mat4 {
	center := scene.Center()
	r := max(radius(scene), 1)
	dist := r * 2

	eye := center.Add(lightDir.Normalize().Mul(dist))
	view := mgl32.LookAtV(eye, center, lightUp(lightDir))

	half := r * 1.1
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, dist+half)
	return proj.Mul4(view)
}

// FollowLightMatrix returns a light view-projection centered on focus, sized
// to focusRadius but never larger than the scene. Shadows near the character
// keep full resolution on large grounds.
func FollowLightMatrix(lightDir mgl32.Vec3, scene mesh.Bounds, focus mgl32.Vec3, focusRadius float32) mgl32.Mat4 {
	r := min(max(focusRadius, minFocusRadius), max(radius(scene), 1))
	height := scene.Max[1] - scene.Min[1]
	dist := r + height

	center := mgl32.Vec3{focus.X(), scene.Center().Y(), focus.Z()}
	eye := center.Add(lightDir.Normalize().Mul(dist))
	view := mgl32.LookAtV(eye, center, lightUp(lightDir))

	half := r * 1.1
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, dist+height+half)
	return proj.Mul4(view)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
