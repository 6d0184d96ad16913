package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/config"
	"github.com/Faultbox/trailhead/internal/engine/camera"
	"github.com/Faultbox/trailhead/internal/engine/scene"
	"github.com/Faultbox/trailhead/internal/game/animation"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
	"github.com/Faultbox/trailhead/internal/game/world"
	"github.com/Faultbox/trailhead/internal/logger"
)

// Asset request keys.
const (
	KeyCharacter = "character"
	KeyTree      = "tree"
)

// CueFootstep is played when the character starts running.
const CueFootstep = "footstep"

// SceneRenderer draws a scene from a camera.
type SceneRenderer interface {
	Render(sc *scene.Scene, cam *camera.Rig)
}

// CuePlayer plays named sound cues.
type CuePlayer interface {
	PlayCue(name string) error
}

// PlayingState runs the world.
type PlayingState struct {
	World *world.World

	cfg      *config.Config
	results  []assets.Result
	board    *hud.Board
	renderer SceneRenderer
	audio    CuePlayer
	log      *zap.Logger
}

// NewPlayingState creates the playing state from load results. board,
// renderer and audio may be nil; without a board there is no quest log.
func NewPlayingState(cfg *config.Config, results []assets.Result, board *hud.Board, renderer SceneRenderer, audio CuePlayer) *PlayingState {
	return &PlayingState{
		cfg:      cfg,
		results:  results,
		board:    board,
		renderer: renderer,
		audio:    audio,
		log:      logger.Named("states"),
	}
}

func (s *PlayingState) model(key string, fallback func() *assets.Model) *assets.Model {
	r, ok := assets.Find(s.results, key)
	if !ok {
		r = assets.Result{Request: assets.Request{Key: key}, Err: assets.ErrNotFound}
	}
	return assets.ModelOr(r, fallback)
}

// Enter builds the world.
func (s *PlayingState) Enter() error {
	character := s.model(KeyCharacter, assets.FallbackCharacter)
	tree := s.model(KeyTree, assets.FallbackTree)

	var surface hud.Surface
	if s.board != nil {
		surface = s.board
	}
	s.World = world.Build(s.cfg, character, tree, surface)
	s.World.OnTransition = s.onTransition
	return nil
}

func (s *PlayingState) onTransition(_, to animation.Kind) {
	if to != animation.Running || s.audio == nil {
		return
	}
	if err := s.audio.PlayCue(CueFootstep); err != nil {
		s.log.Debug("footstep not played", zap.Error(err))
	}
}

// Exit implements State.
func (s *PlayingState) Exit() error { return nil }

// Update advances the world one frame.
func (s *PlayingState) Update(dt float64) error {
	return s.World.Tick(float32(dt))
}

// HandleInput feeds an event to the world.
func (s *PlayingState) HandleInput(e controls.Event) error {
	s.World.HandleEvent(e)
	return nil
}

// Render draws the world.
func (s *PlayingState) Render() error {
	if s.renderer != nil {
		s.renderer.Render(s.World.Scene, s.World.Camera)
	}
	return nil
}
