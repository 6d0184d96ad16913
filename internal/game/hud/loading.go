package hud

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// loadingEase is how long the bar takes to catch up with a new target.
const loadingEase = 0.35

// LoadingBarView eases the loading bar toward the share of finished loads.
type LoadingBarView struct {
	surface Surface
	tween   *gween.Tween
	target  float32
	shown   float32
	done    int
	total   int
}

// NewLoadingBar creates a bar at 0%.
func NewLoadingBar(surface Surface) *LoadingBarView {
	return &LoadingBarView{surface: surface}
}

// SetProgress sets the number of finished loads out of total.
func (l *LoadingBarView) SetProgress(done, total int) {
	l.done, l.total = done, total
	target := float32(100)
	if total > 0 {
		target = 100 * float32(min(done, total)) / float32(total)
	}
	if target == l.target {
		return
	}
	l.target = target
	l.tween = gween.New(l.shown, target, loadingEase, ease.OutCubic)
}

// Update advances the easing by dt seconds and writes the bar and label.
func (l *LoadingBarView) Update(dt float32) error {
	if l.tween != nil {
		cur, finished := l.tween.Update(dt)
		l.shown = cur
		if finished {
			l.shown = l.target
			l.tween = nil
		}
	}
	if err := l.surface.SetWidthPercent(LoadingBar, l.shown); err != nil {
		return fmt.Errorf("updating loading bar: %w", err)
	}
	label := fmt.Sprintf("Loading assets %d/%d", l.done, l.total)
	if err := l.surface.SetText(LoadingLabel, label); err != nil {
		return fmt.Errorf("updating loading label: %w", err)
	}
	return nil
}

// Shown returns the displayed percentage.
func (l *LoadingBarView) Shown() float32 { return l.shown }

// Full reports whether the bar has reached 100%.
func (l *LoadingBarView) Full() bool { return l.shown >= 100 }
