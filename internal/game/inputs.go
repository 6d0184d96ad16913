package game

import (
	"errors"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/engine/input"
	"github.com/Faultbox/trailhead/internal/engine/input/gamepad"
	"github.com/Faultbox/trailhead/internal/engine/ui"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/logger"
)

// On-screen stick placement in points from the bottom-left corner.
const (
	joystickRadius = 60
	joystickMargin = 30
)

var keyBindings = map[imgui.Key]controls.Action{
	imgui.KeyW:          controls.MoveForward,
	imgui.KeyUpArrow:    controls.MoveForward,
	imgui.KeyS:          controls.MoveBackward,
	imgui.KeyDownArrow:  controls.MoveBackward,
	imgui.KeyA:          controls.MoveLeft,
	imgui.KeyLeftArrow:  controls.MoveLeft,
	imgui.KeyD:          controls.MoveRight,
	imgui.KeyRightArrow: controls.MoveRight,
}

// inputs polls every device once per frame.
type inputs struct {
	keyboard *input.Keyboard[imgui.Key]
	mouse    *input.Pointer
	joystick *controls.Joystick
	pad      *gamepad.Gamepad
}

func newInputs() *inputs {
	in := &inputs{
		keyboard: input.NewKeyboard(keyBindings, ui.IsKeyDown),
		mouse:    input.NewMouse(),
		joystick: controls.NewJoystick(joystickMargin+joystickRadius, 0, joystickRadius),
	}

	pad, err := gamepad.Open()
	switch {
	case errors.Is(err, gamepad.ErrNotFound):
	case err != nil:
		logger.Named("input").Warn("gamepad unavailable", zap.Error(err))
	default:
		in.pad = pad
	}
	return in
}

func (in *inputs) poll(emit input.Emit) {
	// ImGui clears key state when the window loses focus, so held actions
	// are released through Poll as well.
	if imgui.CurrentIO().WantCaptureKeyboard() {
		in.keyboard.ReleaseAll(emit)
	} else {
		in.keyboard.Poll(emit)
	}

	p := ui.Pointer()
	if e, ok := in.joystick.Update(p.X, p.Y, p.Down && (in.joystick.Active() || !p.Captured)); ok {
		emit(e)
	}
	in.mouse.Update(p.X, p.Y, p.Down, p.Inside, p.Captured || in.joystick.Active(), emit)

	if in.pad != nil {
		in.pad.Poll(emit)
	}
}

func (in *inputs) close() {
	if in.pad != nil {
		in.pad.Close()
	}
}
