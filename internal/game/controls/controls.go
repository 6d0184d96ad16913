// Package controls tracks movement intent and camera drag from every input source.
package controls

// Action is a movement intent bound to a key or stick direction.
type Action int

const (
	ActionNone Action = iota
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
)

// EventType identifies what kind of input arrived.
type EventType int

const (
	EventNone EventType = iota
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventJoystick
)

// Event is one input occurrence from any source.
// X carries the pointer or touch position for pointer events and the stick
// axis for joystick events; Y is only used by joystick events.
type Event struct {
	Type   EventType
	Action Action
	X, Y   float32
}

// JoystickDeadZone is the stick magnitude below which no direction is held.
const JoystickDeadZone = 0.3

// State is the movement intent read once per frame by the character controller.
// Opposing flags may both be set; callers sum their contributions.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	Dragging     bool
	LastPointerX float32
}

// Apply folds one event into the state and returns the horizontal drag
// delta it produced, zero for anything but a pointer or touch move while dragging.
func (s *State) Apply(e Event) float32 {
	switch e.Type {
	case EventKeyDown:
		s.set(e.Action, true)
	case EventKeyUp:
		s.set(e.Action, false)
	case EventPointerDown, EventTouchStart:
		s.Dragging = true
		s.LastPointerX = e.X
	case EventPointerMove, EventTouchMove:
		if !s.Dragging {
			return 0
		}
		dx := e.X - s.LastPointerX
		s.LastPointerX = e.X
		return dx
	case EventPointerUp, EventPointerLeave, EventTouchEnd:
		s.Dragging = false
	case EventJoystick:
		s.applyStick(e.X, e.Y)
	}
	return 0
}

func (s *State) set(a Action, held bool) {
	switch a {
	case MoveForward:
		s.Forward = held
	case MoveBackward:
		s.Backward = held
	case MoveLeft:
		s.Left = held
	case MoveRight:
		s.Right = held
	}
}

// applyStick maps a stick vector (screen axes, y down) onto the four flags.
func (s *State) applyStick(x, y float32) {
	if x*x+y*y < JoystickDeadZone*JoystickDeadZone {
		s.Forward, s.Backward, s.Left, s.Right = false, false, false, false
		return
	}
	s.Forward = y < -JoystickDeadZone
	s.Backward = y > JoystickDeadZone
	s.Left = x < -JoystickDeadZone
	s.Right = x > JoystickDeadZone
}

// Moving reports whether any movement flag is held.
func (s *State) Moving() bool {
	return s.Forward || s.Backward || s.Left || s.Right
}
