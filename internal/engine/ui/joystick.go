package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/trailhead/internal/game/controls"
)

// DrawJoystick draws the on-screen stick base and knob.
func DrawJoystick(j *controls.Joystick) {
	dl := imgui.ForegroundDrawListViewportPtr()
	center := imgui.NewVec2(j.CenterX, j.CenterY)

	alpha := float32(0.25)
	if j.Active() {
		alpha = 0.45
	}
	dl.AddCircleFilledV(center, j.Radius, imgui.ColorU32Vec4(imgui.NewVec4(1, 1, 1, alpha)), 32)
	dl.AddCircleV(center, j.Radius, imgui.ColorU32Vec4(imgui.NewVec4(1, 1, 1, 0.6)), 32, 2)

	kx, ky := j.Knob()
	knob := imgui.NewVec2(j.CenterX+kx, j.CenterY+ky)
	dl.AddCircleFilledV(knob, j.Radius*0.4, imgui.ColorU32Vec4(imgui.NewVec4(1, 1, 1, 0.8)), 24)
}
