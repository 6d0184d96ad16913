// Package character moves the player character from input flags.
package character

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/camera"
	"github.com/Faultbox/trailhead/internal/game/animation"
	"github.com/Faultbox/trailhead/internal/game/controls"
)

// PositionWriter receives the character's position each frame. The physics
// body implements it; the body only mirrors the position.
type PositionWriter interface {
	SetPosition(p mgl32.Vec3)
}

// Transform is the render-side view of the character.
type Transform interface {
	SetPosition(p mgl32.Vec3)
	SetRotationY(yaw float32)
}

// State is the authoritative character state.
type State struct {
	Position  mgl32.Vec3
	FacingYaw float32
	Animation animation.Kind
}

// Controller applies movement flags to the character.
type Controller struct {
	MoveSpeed float32 // world units per frame per held direction

	State    *State
	Body     PositionWriter
	Node     Transform
	Selector *animation.Selector
}

// NewController creates a controller for a character starting at spawn.
func NewController(spawn mgl32.Vec3, moveSpeed float32) *Controller {
	return &Controller{
		MoveSpeed: moveSpeed,
		State:     &State{Position: spawn},
	}
}

// Update moves the character by the held flags relative to the camera yaw and
// runs the animation transition check. It reports whether any flag was held.
// A controller without a character does nothing.
func (c *Controller) Update(in *controls.State, yaw float32) bool {
	if c == nil || c.State == nil || in == nil {
		return false
	}

	forward := camera.Forward(yaw).Mul(c.MoveSpeed)
	right := camera.Right(yaw).Mul(c.MoveSpeed)

	pos := c.State.Position
	if in.Forward {
		pos = pos.Add(forward)
	}
	if in.Backward {
		pos = pos.Sub(forward)
	}
	if in.Right {
		pos = pos.Add(right)
	}
	if in.Left {
		pos = pos.Sub(right)
	}

	moved := in.Moving()
	c.State.Position = pos
	if moved {
		c.State.FacingYaw = yaw
	}

	if c.Body != nil {
		c.Body.SetPosition(pos)
	}
	if c.Node != nil {
		c.Node.SetPosition(pos)
		c.Node.SetRotationY(c.State.FacingYaw)
	}

	if c.Selector != nil {
		c.Selector.Update(moved)
		c.State.Animation = c.Selector.Kind()
	} else {
		c.State.Animation = animation.Idle
		if moved {
			c.State.Animation = animation.Running
		}
	}
	return moved
}

// Position returns the character position, or the zero vector if there is
// no character.
func (c *Controller) Position() mgl32.Vec3 {
	if c == nil || c.State == nil {
		return mgl32.Vec3{}
	}
	return c.State.Position
}
