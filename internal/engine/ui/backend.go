// Package ui draws the HUD with Dear ImGui on top of the rendered scene.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/logger"
)

// fontPaths are tried in order; ImGui's built-in font is used when none exists.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

const fontSize = 17

// Backend owns the window, the GL context and the ImGui frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window. The GL context is current on return.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(loadFont)
	b.backend.SetBgColor(imgui.NewVec4(0, 0, 0, 1))
	b.backend.CreateWindow(title, width, height)
	return b, nil
}

func loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg := imgui.NewFontConfig()
		imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, fontSize, cfg, nil)
		cfg.Destroy()
		logger.Named("ui").Debug("font loaded", zap.String("path", path))
		return
	}
}

// Run calls frame once per display refresh until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetTargetFPS caps the frame rate.
func (b *Backend) SetTargetFPS(fps uint) {
	b.backend.SetTargetFPS(fps)
}

// Quit asks the loop to stop after the current frame.
func (b *Backend) Quit() {
	b.backend.SetShouldClose(true)
}

// DisplaySize returns the framebuffer size in pixels.
func (b *Backend) DisplaySize() (width, height int32) {
	return b.backend.DisplaySize()
}

// Viewport returns the main viewport work area in points.
func Viewport() (x, y, width, height float32) {
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	return pos.X, pos.Y, size.X, size.Y
}

// IsKeyPressed reports a key press this frame, repeats excluded.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyPressedBoolV(key, false)
}

// IsKeyDown reports whether key is held.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// PointerState is the mouse as ImGui sees it this frame.
type PointerState struct {
	X, Y     float32
	Down     bool
	Inside   bool
	Captured bool // over a HUD window
}

// Pointer returns the left mouse button state. Touches reach ImGui as mouse
// input through SDL.
func Pointer() PointerState {
	pos := imgui.MousePos()
	inside := imgui.IsMousePosValidV(&pos)
	return PointerState{
		X:        pos.X,
		Y:        pos.Y,
		Down:     imgui.IsMouseDown(imgui.MouseButtonLeft),
		Inside:   inside,
		Captured: imgui.CurrentIO().WantCaptureMouse(),
	}
}
