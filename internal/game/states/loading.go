package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
	"github.com/Faultbox/trailhead/internal/logger"
)

// NextFunc builds the state that follows loading from the load results.
type NextFunc func(results []assets.Result) State

// LoadingState loads every asset concurrently and shows progress. It hands
// over only after every load has finished and the bar has filled.
type LoadingState struct {
	manager *Manager
	batch   *assets.Batch
	board   *hud.Board
	bar     *hud.LoadingBarView
	next    NextFunc

	switched bool
	log      *zap.Logger
}

// NewLoadingState creates the loading screen for requests.
func NewLoadingState(manager *Manager, loader assets.Loader, requests []assets.Request, board *hud.Board, next NextFunc) *LoadingState {
	return &LoadingState{
		manager: manager,
		batch:   assets.NewBatch(loader, requests),
		board:   board,
		bar:     hud.NewLoadingBar(board),
		next:    next,
		log:     logger.Named("states"),
	}
}

// Enter starts every load.
func (s *LoadingState) Enter() error {
	if err := s.show(true); err != nil {
		return err
	}
	s.log.Info("loading assets", zap.Int("count", s.batch.Total()))
	s.batch.Start()
	return nil
}

// Exit hides the loading bar.
func (s *LoadingState) Exit() error {
	return s.show(false)
}

func (s *LoadingState) show(visible bool) error {
	for _, id := range []string{hud.LoadingBar, hud.LoadingLabel} {
		if err := s.board.SetHidden(id, !visible); err != nil {
			return fmt.Errorf("loading screen: %w", err)
		}
	}
	return nil
}

// Update advances the bar and switches state once loading is done.
func (s *LoadingState) Update(dt float64) error {
	s.bar.SetProgress(s.batch.Done(), s.batch.Total())
	if err := s.bar.Update(float32(dt)); err != nil {
		return err
	}
	if s.switched || !s.batch.Finished() || !s.bar.Full() {
		return nil
	}
	s.switched = true
	s.manager.Change(s.next(s.batch.Wait()))
	return nil
}

// Progress returns the displayed share of finished loads in 0..1.
func (s *LoadingState) Progress() float32 {
	return s.bar.Shown() / 100
}

// Render implements State; the HUD draws the loading screen.
func (s *LoadingState) Render() error { return nil }

// HandleInput implements State. Input is ignored while loading.
func (s *LoadingState) HandleInput(controls.Event) error { return nil }
