// Package input turns polled device state into control events. Sources are
// polled once per frame; each emits only the changes since the last poll.
package input

import "github.com/Faultbox/trailhead/internal/game/controls"

// Emit receives one control event.
type Emit func(controls.Event)

// Source is a device polled once per frame.
type Source interface {
	Poll(emit Emit)
}

// Keyboard maps held keys to movement actions. K is the backend's key type.
// An action stays held while any of its keys is down.
type Keyboard[K comparable] struct {
	bindings map[K]controls.Action
	isDown   func(K) bool
	held     map[controls.Action]bool
}

// NewKeyboard creates a keyboard source reading key state through isDown.
func NewKeyboard[K comparable](bindings map[K]controls.Action, isDown func(K) bool) *Keyboard[K] {
	return &Keyboard[K]{
		bindings: bindings,
		isDown:   isDown,
		held:     make(map[controls.Action]bool),
	}
}

// Poll emits KeyDown/KeyUp for every action whose held state changed.
func (k *Keyboard[K]) Poll(emit Emit) {
	now := make(map[controls.Action]bool, 4)
	for key, action := range k.bindings {
		if k.isDown(key) {
			now[action] = true
		}
	}
	for _, a := range actions {
		switch {
		case now[a] && !k.held[a]:
			emit(controls.Event{Type: controls.EventKeyDown, Action: a})
		case !now[a] && k.held[a]:
			emit(controls.Event{Type: controls.EventKeyUp, Action: a})
		}
		k.held[a] = now[a]
	}
}

// ReleaseAll emits KeyUp for every held action, as when the window loses focus.
func (k *Keyboard[K]) ReleaseAll(emit Emit) {
	for _, a := range actions {
		if k.held[a] {
			emit(controls.Event{Type: controls.EventKeyUp, Action: a})
			k.held[a] = false
		}
	}
}

// fixed order keeps emitted events deterministic
var actions = []controls.Action{
	controls.MoveForward,
	controls.MoveBackward,
	controls.MoveLeft,
	controls.MoveRight,
}

// Pointer tracks the mouse button and emits drag events. SDL reports touches
// to ImGui as mouse input, so a single touch drags through here too.
type Pointer struct {
	down  bool
	lastX float32
}

// NewMouse creates a pointer emitting mouse events.
func NewMouse() *Pointer { return &Pointer{} }

// Update feeds the current pointer state. inside reports whether the pointer
// is over the window; blocked is set when something else (the on-screen stick,
// a HUD window) took the press, so no drag starts.
func (p *Pointer) Update(x, y float32, down, inside, blocked bool, emit Emit) {
	if p.down && !inside {
		p.down = false
		emit(controls.Event{Type: controls.EventPointerLeave, X: x})
		return
	}

	switch {
	case down && !p.down:
		if blocked || !inside {
			return
		}
		p.down = true
		p.lastX = x
		emit(controls.Event{Type: controls.EventPointerDown, X: x})
	case !down && p.down:
		p.down = false
		emit(controls.Event{Type: controls.EventPointerUp, X: x})
	case down && p.down && x != p.lastX:
		p.lastX = x
		emit(controls.Event{Type: controls.EventPointerMove, X: x})
	}
}

// Dragging reports whether a press is being tracked.
func (p *Pointer) Dragging() bool { return p.down }

// Stick emits joystick events from an analog stick, only when the vector
// moved by more than a small threshold.
type Stick struct {
	lastX, lastY float32
	sent         bool
}

// stickEpsilon ignores sensor noise.
const stickEpsilon = 0.02

// Update feeds the stick position, each axis in -1..1 with y pointing down.
func (s *Stick) Update(x, y float32, emit Emit) {
	dx, dy := x-s.lastX, y-s.lastY
	if s.sent && dx*dx+dy*dy < stickEpsilon*stickEpsilon {
		return
	}
	s.lastX, s.lastY, s.sent = x, y, true
	emit(controls.Event{Type: controls.EventJoystick, X: x, Y: y})
}
