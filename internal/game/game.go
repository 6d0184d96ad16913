// Package game wires the window, renderer, input sources and states into
// the per-frame loop.
package game

import (
	"fmt"
	"os"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/config"
	"github.com/Faultbox/trailhead/internal/engine/audio"
	"github.com/Faultbox/trailhead/internal/engine/debug"
	"github.com/Faultbox/trailhead/internal/engine/renderer"
	"github.com/Faultbox/trailhead/internal/engine/ui"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
	"github.com/Faultbox/trailhead/internal/game/states"
	"github.com/Faultbox/trailhead/internal/logger"
)

const windowTitle = "Trailhead"

// Game is the running application.
type Game struct {
	cfg *config.Config

	backend  *ui.Backend
	renderer *renderer.Renderer
	files    *assets.Manager
	audio    *audio.Player
	shots    *debug.Screenshots

	manager *states.Manager
	board   *hud.Board
	stats   hud.FrameStats
	input   *inputs

	lastFrame time.Time
	err       error
	log       *zap.Logger
}

// New creates the window and every subsystem, then schedules the loading
// screen.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		manager: states.NewManager(),
		board:   hud.DefaultBoard(),
		files:   assets.NewManager(),
		shots:   debug.NewScreenshots(cfg.Debug.ScreenshotDir, "trailhead"),
		log:     logger.Named("game"),
	}

	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("shadows", cfg.Graphics.Shadows),
	)

	var err error
	g.backend, err = ui.NewBackend(windowTitle, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	g.backend.SetTargetFPS(60)

	g.renderer, err = renderer.New(renderer.Config{
		Width:            int32(cfg.Graphics.Width),
		Height:           int32(cfg.Graphics.Height),
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: 2048,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	g.files.AddSource(os.DirFS("."))
	g.input = newInputs()
	g.initAudio()

	requests := []assets.Request{
		{Key: states.KeyCharacter, Path: cfg.Assets.CharacterModel},
		{Key: states.KeyTree, Path: cfg.Assets.TreeModel},
	}
	g.manager.Change(states.NewLoadingState(g.manager, assets.NewGLTFLoader(g.files), requests, g.board, g.play))

	g.log.Info("initialized")
	return g, nil
}

// play builds the playing state once loading finishes.
func (g *Game) play(results []assets.Result) states.State {
	var cues states.CuePlayer
	if g.audio != nil {
		cues = g.audio
	}
	return states.NewPlayingState(g.cfg, results, g.board, g.renderer, cues)
}

// initAudio opens the speaker and loads the sound files. Audio problems are
// logged and never stop the game.
func (g *Game) initAudio() {
	if !g.cfg.Audio.Enabled {
		return
	}
	p := audio.New(g.cfg.Audio.MasterVolume, g.cfg.Audio.MusicVolume, g.cfg.Audio.SFXVolume)
	if err := p.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	g.audio = p

	if data, err := g.files.Read(g.cfg.Assets.FootstepSound); err != nil {
		g.log.Info("footstep sound skipped", zap.Error(err))
	} else if err := p.LoadCue(states.CueFootstep, data); err != nil {
		g.log.Warn("footstep sound skipped", zap.Error(err))
	}

	if data, err := g.files.Read(g.cfg.Assets.AmbientTrack); err != nil {
		g.log.Info("ambient track skipped", zap.Error(err))
	} else if err := p.PlayAmbient(data); err != nil {
		g.log.Warn("ambient track skipped", zap.Error(err))
	}
}

// Run drives the frame loop until the window closes or a frame fails.
func (g *Game) Run() error {
	g.lastFrame = time.Now()
	g.log.Info("starting frame loop")
	g.backend.Run(g.frame)
	return g.err
}

// frame runs once per display refresh.
func (g *Game) frame() {
	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	g.stats.Update(dt * 1000)

	_, _, vw, vh := ui.Viewport()
	g.input.joystick.CenterX = joystickMargin + joystickRadius
	g.input.joystick.CenterY = vh - joystickMargin - joystickRadius

	g.hotkeys()
	g.input.poll(func(e controls.Event) {
		if err := g.manager.HandleInput(e); err != nil {
			g.fail(fmt.Errorf("input: %w", err))
		}
	})

	if err := g.manager.Update(dt); err != nil {
		g.fail(fmt.Errorf("update: %w", err))
		return
	}

	if w, h := g.backend.DisplaySize(); w > 0 && h > 0 {
		g.renderer.Resize(w, h)
	}
	if err := g.manager.Render(); err != nil {
		g.fail(fmt.Errorf("render: %w", err))
		return
	}

	g.drawHUD(vw, vh)
}

func (g *Game) hotkeys() {
	if ui.IsKeyPressed(imgui.KeyEscape) {
		g.backend.Quit()
	}
	playing, ok := g.manager.Current().(*states.PlayingState)
	if !ok {
		return
	}
	if ui.IsKeyPressed(imgui.KeyF3) {
		on := playing.World.ToggleOverlay()
		g.log.Debug("debug overlay toggled", zap.Bool("enabled", on))
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		g.screenshot()
	}
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.Save(pixels, w, h)
	status := "Saved " + path
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		status = "Screenshot failed"
	} else {
		g.log.Info("screenshot saved", zap.String("path", path))
	}
	if err := g.board.SetText(hud.Status, status); err != nil {
		g.log.Debug("status not shown", zap.Error(err))
	}
}

func (g *Game) drawHUD(width, height float32) {
	playing, ok := g.manager.Current().(*states.PlayingState)
	if !ok {
		ui.DrawLoading(g.board, width, height)
		return
	}
	x, y, _, _ := ui.Viewport()
	ui.DrawSceneTexture(x, y, width, height, g.renderer.Texture())

	w := playing.World
	ui.DrawQuests(g.board, width)
	ui.DrawStatus(g.board, width, height)
	if g.cfg.Debug.ShowFPS || w.Overlay.Enabled() {
		pos := w.Character.Position()
		ui.DrawStats(&g.stats, ui.StatsInfo{
			Position:  pos,
			Yaw:       w.Camera.Yaw,
			Animation: w.Selector.Kind().String(),
			Contacts:  len(w.Physics.Contacts()),
			Overlay:   w.Overlay.Enabled(),
		})
	}
	ui.DrawJoystick(g.input.joystick)
}

// fail records the first fatal error and stops the loop.
func (g *Game) fail(err error) {
	if g.err == nil {
		g.err = err
		g.log.Error("frame failed", zap.Error(err))
	}
	g.backend.Quit()
}

// Close releases every subsystem.
func (g *Game) Close() {
	g.log.Info("closing")
	if g.input != nil {
		g.input.close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	g.files.Close()
}
