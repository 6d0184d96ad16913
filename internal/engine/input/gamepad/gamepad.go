// Package gamepad reads the left stick of the first SDL game controller.
package gamepad

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/engine/input"
	"github.com/Faultbox/trailhead/internal/logger"
)

// ErrNotFound is returned when no game controller is attached.
var ErrNotFound = errors.New("no game controller attached")

const axisMax = 32767

// Gamepad is an input source for an SDL game controller.
type Gamepad struct {
	ctrl  *sdl.GameController
	stick input.Stick
}

// Open initializes the SDL controller subsystem and opens the first
// controller found.
func Open() (*Gamepad, error) {
	if err := sdl.InitSubSystem(sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("init game controller subsystem: %w", err)
	}
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		c := sdl.GameControllerOpen(i)
		if c == nil {
			continue
		}
		logger.Named("input").Info("game controller opened", zap.String("name", c.Name()))
		return &Gamepad{ctrl: c}, nil
	}
	sdl.QuitSubSystem(sdl.INIT_GAMECONTROLLER)
	return nil, ErrNotFound
}

// Poll implements input.Source.
func (g *Gamepad) Poll(emit input.Emit) {
	sdl.GameControllerUpdate()
	x := float32(g.ctrl.Axis(sdl.CONTROLLER_AXIS_LEFTX)) / axisMax
	y := float32(g.ctrl.Axis(sdl.CONTROLLER_AXIS_LEFTY)) / axisMax
	g.stick.Update(x, y, emit)
}

// Close releases the controller.
func (g *Gamepad) Close() {
	if g.ctrl != nil {
		g.ctrl.Close()
		g.ctrl = nil
	}
	sdl.QuitSubSystem(sdl.INIT_GAMECONTROLLER)
}
