package states

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/config"
	"github.com/Faultbox/trailhead/internal/engine/mesh"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
)

// gatedLoader blocks every load until release is closed.
type gatedLoader struct {
	release chan struct{}
	fail    map[string]bool
}

func (g *gatedLoader) Load(path string) (*assets.Model, error) {
	<-g.release
	if g.fail[path] {
		return nil, fmt.Errorf("%s: %w", path, assets.ErrNotFound)
	}
	return &assets.Model{Name: path, Mesh: mesh.Box(mgl32.Vec3{0.5, 1, 0.5}).Translated(mgl32.Vec3{0, 1, 0})}, nil
}

type stubState struct {
	entered, exited, updates int
	events                   []controls.Event
}

func (s *stubState) Enter() error                       { s.entered++; return nil }
func (s *stubState) Exit() error                        { s.exited++; return nil }
func (s *stubState) Update(float64) error               { s.updates++; return nil }
func (s *stubState) Render() error                      { return nil }
func (s *stubState) HandleInput(e controls.Event) error { s.events = append(s.events, e); return nil }

type cueRecorder struct{ played []string }

func (c *cueRecorder) PlayCue(name string) error {
	c.played = append(c.played, name)
	return nil
}

func TestManagerTransitions(t *testing.T) {
	m := NewManager()
	a, b := &stubState{}, &stubState{}

	m.Change(a)
	if err := m.Update(0.1); err != nil {
		t.Fatal(err)
	}
	m.Change(b)
	if err := m.Update(0.1); err != nil {
		t.Fatal(err)
	}
	m.HandleInput(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveLeft})

	if a.entered != 1 || a.exited != 1 || a.updates != 1 {
		t.Errorf("first state = %+v", a)
	}
	if m.Current() != b || b.entered != 1 || b.updates != 1 || len(b.events) != 1 {
		t.Errorf("second state = %+v", b)
	}
}

func TestLoadingWaitsForEveryLoad(t *testing.T) {
	loader := &gatedLoader{release: make(chan struct{})}
	board := hud.DefaultBoard()
	m := NewManager()
	next := &stubState{}
	var got []assets.Result

	loading := NewLoadingState(m, loader, []assets.Request{
		{Key: KeyCharacter, Path: "character.glb"},
		{Key: KeyTree, Path: "tree.glb"},
	}, board, func(r []assets.Result) State {
		got = r
		return next
	})
	m.Change(loading)

	for i := 0; i < 20; i++ {
		if err := m.Update(0.05); err != nil {
			t.Fatal(err)
		}
	}
	if m.Current() != loading || next.entered != 0 {
		t.Fatal("left the loading state before loads finished")
	}

	close(loader.release)
	deadline := time.Now().Add(2 * time.Second)
	for m.Current() == loading && time.Now().Before(deadline) {
		if err := m.Update(0.05); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}

	if m.Current() != next || next.entered != 1 {
		t.Fatal("did not switch after every load finished")
	}
	if len(got) != 2 || got[0].Model == nil || got[1].Model == nil {
		t.Errorf("results = %+v", got)
	}
	if p := loading.Progress(); p < 1 {
		t.Errorf("progress at hand-over = %v, want 1", p)
	}
	bar, _ := board.Get(hud.LoadingBar)
	if !bar.Hidden {
		t.Error("loading bar still visible after loading")
	}
}

func TestPlayingFallsBackAndPlaysFootstep(t *testing.T) {
	cfg := config.Default()
	cfg.World.TreeCount = 3
	results := []assets.Result{
		{Request: assets.Request{Key: KeyCharacter, Path: "character.glb"}, Err: errors.New("decode failed")},
	}
	cues := &cueRecorder{}
	board := hud.DefaultBoard()

	p := NewPlayingState(cfg, results, board, nil, cues)
	if err := p.Enter(); err != nil {
		t.Fatal(err)
	}
	if got := p.World.Character.Position(); got != assets.FallbackCharacterPosition {
		t.Errorf("fallback character at %v, want %v", got, assets.FallbackCharacterPosition)
	}
	if p.World.TreeCount() != 3 {
		t.Errorf("trees = %d, want 3", p.World.TreeCount())
	}

	p.HandleInput(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveForward})
	for i := 0; i < 3; i++ {
		if err := p.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if len(cues.played) != 1 || cues.played[0] != CueFootstep {
		t.Errorf("cues = %v, want one footstep", cues.played)
	}
	if err := p.Render(); err != nil {
		t.Errorf("render without renderer: %v", err)
	}
	e, _ := board.Get(hud.QuestList)
	if e.Text == "" {
		t.Error("quest list not written")
	}
}

func TestPlayingWithoutBoard(t *testing.T) {
	cfg := config.Default()
	cfg.World.TreeCount = 2

	p := NewPlayingState(cfg, nil, nil, nil, nil)
	if err := p.Enter(); err != nil {
		t.Fatal(err)
	}
	if p.World.Quests != nil {
		t.Error("quest log created without a board")
	}
	p.HandleInput(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveForward})
	for i := 0; i < 5; i++ {
		if err := p.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if p.World.Walked() <= 0 {
		t.Error("character did not move")
	}
}
