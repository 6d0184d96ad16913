package controls

import "math"

// Joystick is an on-screen stick: a base circle the pointer can grab, with the
// knob offset clamped to the base radius.
type Joystick struct {
	CenterX, CenterY float32
	Radius           float32

	active bool
	knobX  float32
	knobY  float32
}

// NewJoystick creates a stick centered at (x, y).
func NewJoystick(x, y, radius float32) *Joystick {
	return &Joystick{CenterX: x, CenterY: y, Radius: radius}
}

// Contains reports whether a screen point lies on the base.
func (j *Joystick) Contains(x, y float32) bool {
	dx, dy := x-j.CenterX, y-j.CenterY
	return dx*dx+dy*dy <= j.Radius*j.Radius
}

// Active reports whether the stick is currently held.
func (j *Joystick) Active() bool {
	return j.active
}

// Knob returns the knob offset from the center in pixels.
func (j *Joystick) Knob() (x, y float32) {
	return j.knobX, j.knobY
}

// Update feeds the current pointer state and returns the joystick event to
// emit, if any. A press that starts on the base grabs the stick; while held,
// every frame yields the normalized stick vector; releasing yields {0,0} once.
func (j *Joystick) Update(pointerX, pointerY float32, down bool) (Event, bool) {
	switch {
	case down && !j.active:
		if !j.Contains(pointerX, pointerY) {
			return Event{}, false
		}
		j.active = true
	case !down && j.active:
		j.active = false
		j.knobX, j.knobY = 0, 0
		return Event{Type: EventJoystick}, true
	case !down:
		return Event{}, false
	}

	dx, dy := pointerX-j.CenterX, pointerY-j.CenterY
	dist := float32(math.Hypot(float64(dx), float64(dy)))
	if dist > j.Radius && dist > 0 {
		dx *= j.Radius / dist
		dy *= j.Radius / dist
	}
	j.knobX, j.knobY = dx, dy

	if j.Radius <= 0 {
		return Event{Type: EventJoystick}, true
	}
	return Event{Type: EventJoystick, X: dx / j.Radius, Y: dy / j.Radius}, true
}
