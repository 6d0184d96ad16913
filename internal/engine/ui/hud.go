package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/trailhead/internal/game/hud"
)

const overlayFlags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
	imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
	imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoInputs

// DrawQuests draws the quest list in the top-right corner.
func DrawQuests(b *hud.Board, width float32) {
	e, err := b.Get(hud.QuestList)
	if err != nil || e.Hidden || e.Text == "" {
		return
	}
	imgui.SetNextWindowPosV(imgui.NewVec2(width-10, 10), imgui.CondAlways, imgui.NewVec2(1, 0))
	imgui.SetNextWindowBgAlpha(0.55)
	if imgui.BeginV("##Quests", nil, overlayFlags) {
		imgui.TextColored(imgui.NewVec4(1, 0.85, 0.4, 1), "Quests")
		imgui.Separator()
		imgui.TextUnformatted(e.Text)
	}
	imgui.End()
}

// DrawLoading draws the centered loading window with its progress bar.
func DrawLoading(b *hud.Board, width, height float32) {
	bar, err := b.Get(hud.LoadingBar)
	if err != nil || bar.Hidden {
		return
	}
	label, _ := b.Get(hud.LoadingLabel)

	const w, h = 400, 110
	imgui.SetNextWindowPos(imgui.NewVec2((width-w)/2, (height-h)/2))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("Trailhead", nil, flags) {
		imgui.Spacing()
		imgui.TextUnformatted(label.Text)
		imgui.Spacing()
		imgui.ProgressBarV(bar.Percent/100, imgui.NewVec2(-1, 20), fmt.Sprintf("%.0f%%", bar.Percent))
	}
	imgui.End()
}

// DrawStatus draws the status line at the bottom center, if any.
func DrawStatus(b *hud.Board, width, height float32) {
	e, err := b.Get(hud.Status)
	if err != nil || e.Hidden || e.Text == "" {
		return
	}
	imgui.SetNextWindowPosV(imgui.NewVec2(width/2, height-20), imgui.CondAlways, imgui.NewVec2(0.5, 1))
	imgui.SetNextWindowBgAlpha(0.7)
	if imgui.BeginV("##Status", nil, overlayFlags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1, 0.2, 1), e.Text)
	}
	imgui.End()
}
