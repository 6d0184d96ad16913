// Package animation selects between the idle and running clips of a character.
package animation

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/logger"
)

// Kind is the current animation state.
type Kind int

const (
	Idle Kind = iota
	Running
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Clip names looked up in a model's animation list.
const (
	ClipIdle    = "idle"
	ClipRunning = "running"
)

// Clip is a looping animation track. Time is in seconds.
type Clip struct {
	Name     string
	Duration float32
	Time     float32
	Paused   bool
}

// ClipSet holds the clips a selector switches between, keyed by name.
type ClipSet map[string]*Clip

// Complete adds an empty clip for any of the idle/running names that are
// missing, so a selector always has two clips to switch between.
func (cs ClipSet) Complete() ClipSet {
	for _, name := range []string{ClipIdle, ClipRunning} {
		if cs[name] == nil {
			cs[name] = &Clip{Name: name, Paused: true}
		}
	}
	return cs
}

// Selector drives the Idle/Running state machine.
type Selector struct {
	kind  Kind
	clips ClipSet
	log   *zap.Logger
}

// NewSelector starts in Idle with the idle clip playing and every other
// clip paused.
func NewSelector(clips ClipSet) *Selector {
	if clips == nil {
		clips = ClipSet{}
	}
	clips.Complete()
	for name, c := range clips {
		c.Paused = name != ClipIdle
	}
	return &Selector{
		kind:  Idle,
		clips: clips,
		log:   logger.Named("animation"),
	}
}

// Kind returns the current state.
func (s *Selector) Kind() Kind { return s.kind }

// Clip returns the clip registered under name, or nil.
func (s *Selector) Clip(name string) *Clip { return s.clips[name] }

// Active returns the clip for the current state.
func (s *Selector) Active() *Clip { return s.clips[clipFor(s.kind)] }

// Update performs at most one transition and reports whether it did.
// Idle becomes Running when moving; Running becomes Idle when not.
func (s *Selector) Update(moving bool) bool {
	next := s.kind
	switch {
	case s.kind == Idle && moving:
		next = Running
	case s.kind == Running && !moving:
		next = Idle
	}
	if next == s.kind {
		return false
	}

	// Switch in one step: pause the outgoing clip, play the incoming one.
	s.clips[clipFor(s.kind)].Paused = true
	in := s.clips[clipFor(next)]
	in.Paused = false
	in.Time = 0

	s.log.Debug("animation transition",
		zap.Stringer("from", s.kind),
		zap.Stringer("to", next))
	s.kind = next
	return true
}

// Advance moves every unpaused clip forward by dt seconds.
func (s *Selector) Advance(dt float32) {
	for _, c := range s.clips {
		if c.Paused {
			continue
		}
		c.Time += dt
		if c.Duration > 0 && c.Time >= c.Duration {
			c.Time = float32(math.Mod(float64(c.Time), float64(c.Duration)))
			if c.Time >= c.Duration { // rounded up to the clip end
				c.Time = 0
			}
		}
	}
}

// Playing returns the number of unpaused clips.
func (s *Selector) Playing() int {
	n := 0
	for _, c := range s.clips {
		if !c.Paused {
			n++
		}
	}
	return n
}

func clipFor(k Kind) string {
	if k == Running {
		return ClipRunning
	}
	return ClipIdle
}
