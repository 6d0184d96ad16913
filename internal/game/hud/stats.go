package hud

import "runtime"

// FrameStats measures frame rate and memory for the stats panel.
type FrameStats struct {
	fps        float64
	frameTime  float64 // ms
	fpsTimer   float64 // seconds since last FPS update
	frameAccum int

	memTimer float64
	mem      runtime.MemStats
}

// Update records one frame of deltaMs milliseconds.
func (s *FrameStats) Update(deltaMs float64) {
	s.frameTime = deltaMs
	s.frameAccum++
	s.fpsTimer += deltaMs / 1000

	// FPS every half second
	if s.fpsTimer >= 0.5 {
		s.fps = float64(s.frameAccum) / s.fpsTimer
		s.frameAccum = 0
		s.fpsTimer = 0
	}

	s.memTimer += deltaMs / 1000
	if s.memTimer >= 2 {
		runtime.ReadMemStats(&s.mem)
		s.memTimer = 0
	}
}

// FPS returns the frame rate over the last measurement window.
func (s *FrameStats) FPS() float64 { return s.fps }

// FrameTime returns the last frame duration in milliseconds.
func (s *FrameStats) FrameTime() float64 { return s.frameTime }

// HeapMB returns the heap size from the last memory sample.
func (s *FrameStats) HeapMB() float64 { return float64(s.mem.HeapAlloc) / (1 << 20) }
