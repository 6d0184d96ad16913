package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/trailhead/internal/game/hud"
)

// StatsInfo is the per-frame data shown next to the frame statistics.
type StatsInfo struct {
	Position  [3]float32
	Yaw       float32
	Animation string
	Contacts  int
	Overlay   bool
}

// DrawStats draws the debug stats panel in the top-left corner.
func DrawStats(s *hud.FrameStats, info StatsInfo) {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowSize(imgui.NewVec2(250, 0))
	imgui.SetNextWindowBgAlpha(0.6)

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	if imgui.BeginV("##Stats", nil, overlayFlags) {
		fpsColor := imgui.NewVec4(0.2, 1, 0.2, 1)
		if s.FPS() < 30 {
			fpsColor = imgui.NewVec4(1, 0.2, 0.2, 1)
		} else if s.FPS() < 55 {
			fpsColor = imgui.NewVec4(1, 1, 0.2, 1)
		}
		imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.0f (%.2f ms)", s.FPS(), s.FrameTime()))
		imgui.Text(fmt.Sprintf("Heap: %.1f MB", s.HeapMB()))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Pos: %.2f, %.2f, %.2f", info.Position[0], info.Position[1], info.Position[2]))
		imgui.Text(fmt.Sprintf("Yaw: %.2f rad", info.Yaw))
		imgui.Text(fmt.Sprintf("Anim: %s", info.Animation))
		imgui.Text(fmt.Sprintf("Contacts: %d", info.Contacts))
		overlay := "off"
		if info.Overlay {
			overlay = "on"
		}
		imgui.TextDisabled(fmt.Sprintf("F3 overlay: %s", overlay))
	}
	imgui.End()
	imgui.PopStyleVar()
}
