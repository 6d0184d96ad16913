// Package hud holds the on-screen elements the game writes to: the quest
// list, the loading bar and frame statistics.
package hud

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Element ids written by the game.
const (
	QuestList    = "quest-list"
	LoadingBar   = "loading-bar"
	LoadingLabel = "loading-label"
	Status       = "status"
)

// ErrNoElement is returned when an element id is not on the surface.
var ErrNoElement = errors.New("no such element")

// Surface is the UI the game writes into.
type Surface interface {
	SetText(id, text string) error
	SetWidthPercent(id string, pct float32) error
}

// ElementKind tells a renderer how to draw an element.
type ElementKind int

const (
	TextElement ElementKind = iota
	BarElement
)

// Element is one addressable piece of the HUD.
type Element struct {
	ID      string
	Kind    ElementKind
	Text    string
	Percent float32 // bars only, 0..100
	Hidden  bool
}

// Board is an in-memory Surface. The UI layer draws its elements each frame.
type Board struct {
	mu       sync.Mutex
	elements map[string]*Element
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{elements: make(map[string]*Element)}
}

// DefaultBoard creates a board with every element the game writes.
func DefaultBoard() *Board {
	b := NewBoard()
	b.Define(QuestList, TextElement)
	b.Define(LoadingBar, BarElement)
	b.Define(LoadingLabel, TextElement)
	b.Define(Status, TextElement)
	return b
}

// Define adds an element, replacing any with the same id.
func (b *Board) Define(id string, kind ElementKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.elements[id] = &Element{ID: id, Kind: kind}
}

func (b *Board) lookup(id string) (*Element, error) {
	e, ok := b.elements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoElement, id)
	}
	return e, nil
}

// SetText implements Surface.
func (b *Board) SetText(id, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	e.Text = text
	return nil
}

// SetWidthPercent implements Surface. The value is clamped to 0..100.
func (b *Board) SetWidthPercent(id string, pct float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	e.Percent = min(max(pct, 0), 100)
	return nil
}

// SetHidden shows or hides an element.
func (b *Board) SetHidden(id string, hidden bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	e.Hidden = hidden
	return nil
}

// Get returns a copy of the element.
func (b *Board) Get(id string) (Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.lookup(id)
	if err != nil {
		return Element{}, err
	}
	return *e, nil
}

// Elements returns copies of every element sorted by id.
func (b *Board) Elements() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Element, 0, len(b.elements))
	for _, e := range b.elements {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
