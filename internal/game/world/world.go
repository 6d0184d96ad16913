// Package world wires the simulation together and advances it one frame at
// a time.
package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/camera"
	"github.com/Faultbox/trailhead/internal/engine/debug"
	"github.com/Faultbox/trailhead/internal/engine/physics"
	"github.com/Faultbox/trailhead/internal/engine/scene"
	"github.com/Faultbox/trailhead/internal/game/animation"
	"github.com/Faultbox/trailhead/internal/game/character"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
)

// visitRadius is how close on the XZ plane the character must come to a
// tree for it to count as visited.
const visitRadius = 2.5

// World holds every component the frame loop touches.
type World struct {
	Physics   *physics.World
	Character *character.Controller
	CharBody  *physics.Body
	Selector  *animation.Selector
	Overlay   *debug.Overlay
	Camera    *camera.Rig
	Controls  *controls.State
	Quests    *hud.QuestLog
	Scene     *scene.Scene

	// Step is the fixed physics timestep in seconds.
	Step float32

	// OnTransition is called after the animation state changes.
	OnTransition func(from, to animation.Kind)

	trees   []tree
	walked  float32
	lastPos mgl32.Vec3
	ticks   uint64
}

type tree struct {
	body    *physics.Body
	visited bool
}

// HandleEvent folds one input event into the controls and turns the camera
// by any drag it produced.
func (w *World) HandleEvent(e controls.Event) {
	if dx := w.Controls.Apply(e); dx != 0 {
		w.Camera.HandleDrag(dx)
	}
}

// Tick advances one frame. dt is the real elapsed time used for animation
// playback; physics always takes the fixed Step.
func (w *World) Tick(dt float32) error {
	w.Physics.Step(w.Step)

	before := w.Selector.Kind()
	w.Character.Update(w.Controls, w.Camera.Yaw)
	w.CharBody.SetYaw(w.Character.State.FacingYaw)
	if after := w.Selector.Kind(); after != before && w.OnTransition != nil {
		w.OnTransition(before, after)
	}
	w.Selector.Advance(dt)

	w.Overlay.Sync()

	pos := w.Character.Position()
	w.Camera.Follow(pos)

	w.ticks++
	return w.updateQuests(pos)
}

func (w *World) updateQuests(pos mgl32.Vec3) error {
	d := mgl32.Vec2{pos.X() - w.lastPos.X(), pos.Z() - w.lastPos.Z()}
	w.walked += d.Len()
	w.lastPos = pos

	visited := 0
	for i := range w.trees {
		t := &w.trees[i]
		if !t.visited {
			tp := t.body.Position()
			off := mgl32.Vec2{tp.X() - pos.X(), tp.Z() - pos.Z()}
			t.visited = off.Len() <= visitRadius
		}
		if t.visited {
			visited++
		}
	}

	if w.Quests == nil {
		return nil
	}
	err := w.Quests.Update(hud.Progress{
		Distance:     w.walked,
		TreesVisited: visited,
		TreesTotal:   len(w.trees),
	})
	if err != nil {
		return fmt.Errorf("tick %d: %w", w.ticks, err)
	}
	return nil
}

// ToggleOverlay flips the physics overlay and returns the new state.
func (w *World) ToggleOverlay() bool {
	return w.Overlay.Toggle()
}

// Walked returns the distance the character has covered on the XZ plane.
func (w *World) Walked() float32 { return w.walked }

// TreeCount returns the number of trees in the forest.
func (w *World) TreeCount() int { return len(w.trees) }

// TreesVisited returns how many trees the character has come close to.
func (w *World) TreesVisited() int {
	n := 0
	for _, t := range w.trees {
		if t.visited {
			n++
		}
	}
	return n
}
