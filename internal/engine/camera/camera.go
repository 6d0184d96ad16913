// Package camera provides the third-person camera rig.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

var up = mgl32.Vec3{0, 1, 0}

// Rig trails a target at a fixed distance and height. Yaw is driven by
// horizontal drag; the position is set exactly every frame with no smoothing.
type Rig struct {
	Yaw         float32 // radians around +Y
	Distance    float32 // horizontal distance behind the target
	Height      float32 // vertical offset above the target
	Sensitivity float32 // radians per pixel of drag

	FovY float32 // radians
	Near float32
	Far  float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// NewRig creates a rig with the given trailing offsets and drag sensitivity.
func NewRig(distance, height, sensitivity float32) *Rig {
	return &Rig{
		Distance:    distance,
		Height:      height,
		Sensitivity: sensitivity,
		FovY:        mgl32.DegToRad(75),
		Near:        0.1,
		Far:         1000,
	}
}

// HandleDrag rotates the rig by a horizontal drag delta in pixels.
func (r *Rig) HandleDrag(deltaX float32) {
	r.Yaw += deltaX * r.Sensitivity
}

// Forward returns the unit direction the rig faces on the XZ plane.
func (r *Rig) Forward() mgl32.Vec3 {
	return Forward(r.Yaw)
}

// Follow places the camera behind and above target and aims at it.
func (r *Rig) Follow(target mgl32.Vec3) {
	r.Position = target.Sub(r.Forward().Mul(r.Distance)).Add(up.Mul(r.Height))
	r.Target = target
}

// ViewDirection returns the normalized vector from camera to target.
func (r *Rig) ViewDirection() mgl32.Vec3 {
	d := r.Target.Sub(r.Position)
	if d.Len() == 0 {
		return r.Forward()
	}
	return d.Normalize()
}

// ViewMatrix returns the view matrix looking from Position at Target.
func (r *Rig) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(r.Position, r.Target, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (r *Rig) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(r.FovY, aspect, r.Near, r.Far)
}

// Forward returns (sin yaw, 0, cos yaw).
func Forward(yaw float32) mgl32.Vec3 {
	s, c := gomath.Sincos(float64(yaw))
	return mgl32.Vec3{float32(s), 0, float32(c)}
}

// Right returns the viewer's right for a camera looking along Forward(yaw):
// forward × up, which is (-cos yaw, 0, sin yaw).
func Right(yaw float32) mgl32.Vec3 {
	s, c := gomath.Sincos(float64(yaw))
	return mgl32.Vec3{float32(-c), 0, float32(s)}
}
