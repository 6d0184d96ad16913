// Package states implements the loading and playing screens and the manager
// that switches between them.
package states

import "github.com/Faultbox/trailhead/internal/game/controls"

// State is one screen of the game.
type State interface {
	// Enter is called when the state becomes current.
	Enter() error

	// Exit is called when the state is replaced.
	Exit() error

	// Update is called every frame with the elapsed seconds.
	Update(dt float64) error

	// Render draws the state's scene, if it has one.
	Render() error

	// HandleInput receives every control event of the frame.
	HandleInput(e controls.Event) error
}

// Manager owns the current state and applies scheduled changes.
type Manager struct {
	current State
	next    State
}

// NewManager creates a manager with no state.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules next to replace the current state on the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update applies a pending change, then updates the current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(e controls.Event) error {
	if m.current != nil {
		return m.current.HandleInput(e)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}
