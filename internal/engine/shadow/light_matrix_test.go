package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

func inClip(m mgl32.Mat4, p mgl32.Vec3) bool {
	c := m.Mul4x1(p.Vec4(1))
	for i := 0; i < 3; i++ {
		if c[i] < -1.0001 || c[i] > 1.0001 {
			return false
		}
	}
	return true
}

func TestDirectionalLightMatrixCoversScene(t *testing.T) {
	scene := mesh.Bounds{Min: [3]float32{-50, 0, -50}, Max: [3]float32{50, 4, 50}}
	dirs := []mgl32.Vec3{
		{0, 1, 0},
		{0.5, 0.7, 0.5},
		{-0.3, 0.4, 0.9},
	}
	for _, d := range dirs {
		m := DirectionalLightMatrix(d.Normalize(), scene)
		for i := 0; i < 8; i++ {
			corner := mgl32.Vec3{scene.Min[0], scene.Min[1], scene.Min[2]}
			if i&1 != 0 {
				corner[0] = scene.Max[0]
			}
			if i&2 != 0 {
				corner[1] = scene.Max[1]
			}
			if i&4 != 0 {
				corner[2] = scene.Max[2]
			}
			if !inClip(m, corner) {
				t.Errorf("light %v: corner %v outside the shadow frustum", d, corner)
			}
		}
	}
}

func TestFollowLightMatrixTracksFocus(t *testing.T) {
	scene := mesh.Bounds{Min: [3]float32{-50, 0, -50}, Max: [3]float32{50, 4, 50}}
	light := mgl32.Vec3{0.4, 0.8, 0.2}.Normalize()
	focus := mgl32.Vec3{30, 1, -20}

	m := FollowLightMatrix(light, scene, focus, 10)
	if !inClip(m, focus) {
		t.Error("focus point outside the shadow frustum")
	}
	if inClip(m, mgl32.Vec3{-45, 1, 45}) {
		t.Error("far corner of the scene should not be covered by the follow frustum")
	}

	// center of clip space
	c := m.Mul4x1(mgl32.Vec3{focus.X(), 2, focus.Z()}.Vec4(1))
	if abs32(c.X()) > 1e-3 || abs32(c.Y()) > 1e-3 {
		t.Errorf("focus projects to %v, want the frustum center", c)
	}
}
