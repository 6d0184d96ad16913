package world

import (
	gomath "math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/config"
	"github.com/Faultbox/trailhead/internal/engine/debug"
	"github.com/Faultbox/trailhead/internal/engine/mesh"
	"github.com/Faultbox/trailhead/internal/game/animation"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
)

func near(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if gomath.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func emptyForest() *config.Config {
	cfg := config.Default()
	cfg.World.TreeCount = 0
	return cfg
}

func TestTickMovesCharacterAndCamera(t *testing.T) {
	w := Build(emptyForest(), nil, nil, hud.DefaultBoard())
	w.HandleEvent(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveForward})

	for i := 0; i < 10; i++ {
		if err := w.Tick(1.0 / 60); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	if got := w.Character.Position(); !near(got, mgl32.Vec3{0, 1, 1}) {
		t.Errorf("character at %v, want (0,1,1)", got)
	}
	if got := w.CharBody.Position(); !near(got, mgl32.Vec3{0, 1, 1}) {
		t.Errorf("body at %v, want it to mirror the character", got)
	}
	if !near(w.Camera.Position, mgl32.Vec3{0, 3, -4}) {
		t.Errorf("camera at %v, want (0,3,-4)", w.Camera.Position)
	}
	if gomath.Abs(float64(w.Walked()-1)) > 1e-4 {
		t.Errorf("walked %v, want 1", w.Walked())
	}
}

func TestDragTurnsCamera(t *testing.T) {
	w := Build(emptyForest(), nil, nil, nil)
	w.HandleEvent(controls.Event{Type: controls.EventPointerDown, X: 100})
	w.HandleEvent(controls.Event{Type: controls.EventPointerMove, X: 130})
	w.HandleEvent(controls.Event{Type: controls.EventPointerMove, X: 150})
	w.HandleEvent(controls.Event{Type: controls.EventPointerUp, X: 150})
	w.HandleEvent(controls.Event{Type: controls.EventPointerMove, X: 400})

	if gomath.Abs(float64(w.Camera.Yaw-0.5)) > 1e-5 {
		t.Errorf("yaw = %v, want 0.5", w.Camera.Yaw)
	}
}

func TestBodyFollowsFacing(t *testing.T) {
	w := Build(emptyForest(), nil, nil, nil)
	w.HandleEvent(controls.Event{Type: controls.EventPointerDown, X: 100})
	w.HandleEvent(controls.Event{Type: controls.EventPointerMove, X: 150})
	w.HandleEvent(controls.Event{Type: controls.EventPointerUp, X: 150})
	w.HandleEvent(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveForward})

	if err := w.Tick(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if gomath.Abs(float64(w.CharBody.Yaw()-0.5)) > 1e-5 {
		t.Errorf("body yaw = %v, want 0.5", w.CharBody.Yaw())
	}

	// Stopping keeps the last facing.
	w.HandleEvent(controls.Event{Type: controls.EventKeyUp, Action: controls.MoveForward})
	w.HandleEvent(controls.Event{Type: controls.EventPointerDown, X: 0})
	w.HandleEvent(controls.Event{Type: controls.EventPointerMove, X: 100})
	if err := w.Tick(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if gomath.Abs(float64(w.CharBody.Yaw()-0.5)) > 1e-5 {
		t.Errorf("idle body yaw = %v, want 0.5", w.CharBody.Yaw())
	}
}

func TestTransitionCallback(t *testing.T) {
	w := Build(emptyForest(), nil, nil, nil)
	var got []string
	w.OnTransition = func(from, to animation.Kind) {
		got = append(got, from.String()+">"+to.String())
	}

	w.HandleEvent(controls.Event{Type: controls.EventKeyDown, Action: controls.MoveLeft})
	for i := 0; i < 3; i++ {
		w.Tick(0.016)
	}
	w.HandleEvent(controls.Event{Type: controls.EventKeyUp, Action: controls.MoveLeft})
	for i := 0; i < 3; i++ {
		w.Tick(0.016)
	}

	want := []string{"idle>running", "running>idle"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("transitions = %v, want %v", got, want)
	}
	if w.Selector.Playing() != 1 {
		t.Errorf("%d clips playing, want 1", w.Selector.Playing())
	}
}

func TestFallbackPlacement(t *testing.T) {
	cfg := emptyForest()
	cfg.Player.Spawn = [3]float32{7, 0, 7}
	w := Build(cfg, nil, nil, nil)

	if !near(w.Character.Position(), assets.FallbackCharacterPosition) {
		t.Errorf("fallback character at %v, want %v", w.Character.Position(), assets.FallbackCharacterPosition)
	}
	if n := w.Scene.Find(CharacterNode); n == nil || !near(n.Position, assets.FallbackCharacterPosition) {
		t.Errorf("character node not placed at fallback position")
	}
}

func TestLoadedCharacterBodyOffset(t *testing.T) {
	cfg := emptyForest()
	cfg.Player.Spawn = [3]float32{2, 0, 3}
	hero := &assets.Model{
		Name:  "hero",
		Mesh:  mesh.Box(mgl32.Vec3{0.5, 1, 0.5}).Translated(mgl32.Vec3{0, 1, 0}),
		Clips: []assets.ClipInfo{{Name: "idle", Duration: 2}, {Name: "walk", Duration: 1}},
	}
	w := Build(cfg, hero, nil, nil)

	if !near(w.CharBody.Position(), mgl32.Vec3{2, 1, 3}) {
		t.Errorf("body center %v, want (2,1,3)", w.CharBody.Position())
	}
	w.Tick(0.016)
	if !near(w.CharBody.Position(), mgl32.Vec3{2, 1, 3}) {
		t.Errorf("body center after tick %v, want (2,1,3)", w.CharBody.Position())
	}
	if c := w.Selector.Clip(animation.ClipRunning); c == nil || c.Name != "walk" || c.Duration != 1 {
		t.Errorf("running slot = %+v, want the walk clip", c)
	}
}

func TestForestBodiesAndOverlay(t *testing.T) {
	cfg := config.Default()
	cfg.World.TreeCount = 12
	w := Build(cfg, nil, nil, nil)

	if w.TreeCount() != 12 {
		t.Fatalf("trees = %d, want 12", w.TreeCount())
	}
	// ground, character, trees
	if got := w.Overlay.Len(); got != 14 {
		t.Errorf("overlay proxies = %d, want 14", got)
	}
	if got := len(w.Physics.Bodies()); got != 14 {
		t.Errorf("physics bodies = %d, want 14", got)
	}
	if w.Overlay.Enabled() {
		t.Error("overlay enabled by default")
	}
	if !w.ToggleOverlay() || !w.Overlay.Lines(w.CharBody).Visible {
		t.Error("toggle did not show proxies")
	}
}

func TestWalkIntoTree(t *testing.T) {
	cfg := config.Default()
	cfg.World.TreeCount = 1
	board := hud.DefaultBoard()
	w := Build(cfg, nil, nil, board)
	w.Overlay.SetEnabled(true)

	trunk := w.trees[0].body.Position()
	w.Character.State.Position = mgl32.Vec3{trunk.X() + 0.2, 1, trunk.Z()}

	for i := 0; i < 2; i++ {
		if err := w.Tick(0.016); err != nil {
			t.Fatal(err)
		}
	}

	if !w.Physics.InContact(w.CharBody) {
		t.Error("character body should touch the tree")
	}
	if c := w.Overlay.Lines(w.CharBody).Color; c != debug.ColorContact {
		t.Errorf("proxy color = %v, want contact color", c)
	}
	if w.TreesVisited() != 1 {
		t.Errorf("visited = %d, want 1", w.TreesVisited())
	}
	e, _ := board.Get(hud.QuestList)
	if !strings.Contains(e.Text, "[x] Visit a tree") {
		t.Errorf("quest list:\n%s", e.Text)
	}
}

func TestScatterTrees(t *testing.T) {
	spawn := mgl32.Vec3{0, 1, 0}
	a := ScatterTrees(7, 30, 60, 5, spawn)
	b := ScatterTrees(7, 30, 60, 5, spawn)
	c := ScatterTrees(8, 30, 60, 5, spawn)

	if len(a) != 30 {
		t.Fatalf("placed %d trees, want 30", len(a))
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tree %d differs for the same seed", i)
		}
		if a[i] != c[i] {
			same = false
		}
		p := a[i]
		if d := (mgl32.Vec2{p.Position.X(), p.Position.Z()}).Len(); d < 5 {
			t.Errorf("tree %d is %v from spawn, inside the clearing", i, d)
		}
		if gomath.Abs(float64(p.Position.X())) > 28 || gomath.Abs(float64(p.Position.Z())) > 28 {
			t.Errorf("tree %d at %v is off the ground", i, p.Position)
		}
		if p.Scale < minTreeScale || p.Scale > maxTreeScale {
			t.Errorf("tree %d scale %v", i, p.Scale)
		}
	}
	if same {
		t.Error("different seeds produced the same forest")
	}
}

func TestScatterTreesCrowded(t *testing.T) {
	// the clearing covers the whole ground
	if got := ScatterTrees(1, 10, 10, 100, mgl32.Vec3{}); len(got) != 0 {
		t.Errorf("placed %d trees with no free ground", len(got))
	}
	if got := ScatterTrees(1, 0, 10, 0, mgl32.Vec3{}); got != nil {
		t.Errorf("zero count returned %v", got)
	}
}
