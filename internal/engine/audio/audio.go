// Package audio plays the looping ambient track and short sound cues.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/logger"
)

// SampleRate is the speaker rate; decoded audio is resampled to it.
const SampleRate = beep.SampleRate(44100)

var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrUnknownCue     = errors.New("unknown sound cue")
)

// Player owns the speaker, the ambient loop and the decoded cues.
type Player struct {
	mu sync.Mutex

	initialized bool
	mixer       *beep.Mixer

	ambientCtrl   *beep.Ctrl
	ambientVolume *effects.Volume
	ambientCloser io.Closer

	cues map[string]*beep.Buffer

	master, music, sfx float64
	log                *zap.Logger
}

// New creates a player with volumes in 0..1.
func New(master, music, sfx float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		cues:   make(map[string]*beep.Buffer),
		master: clamp01(master),
		music:  clamp01(music),
		sfx:    clamp01(sfx),
		log:    logger.Named("audio"),
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the ambient stream.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAmbient()
	if p.initialized {
		speaker.Clear()
		p.initialized = false
	}
}

// Initialized reports whether the speaker is open.
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// SetVolumes updates the volumes, each clamped to 0..1.
func (p *Player) SetVolumes(master, music, sfx float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.master, p.music, p.sfx = clamp01(master), clamp01(music), clamp01(sfx)
	if p.ambientVolume != nil {
		speaker.Lock()
		p.ambientVolume.Volume, p.ambientVolume.Silent = gain(p.master * p.music)
		speaker.Unlock()
	}
}

// Volumes returns the current volumes.
func (p *Player) Volumes() (master, music, sfx float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master, p.music, p.sfx
}

func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	s, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	return s, format, nil
}

func resampled(s beep.Streamer, from beep.SampleRate) beep.Streamer {
	if from == SampleRate {
		return s
	}
	return beep.Resample(4, from, SampleRate, s)
}

// LoadCue decodes WAV data into memory under name. Cues can be loaded
// before Init.
func (p *Player) LoadCue(name string, data []byte) error {
	s, format, err := decode(data)
	if err != nil {
		return fmt.Errorf("cue %q: %w", name, err)
	}
	defer s.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(resampled(s, format.SampleRate))

	p.mu.Lock()
	p.cues[name] = buf
	p.mu.Unlock()
	return nil
}

// CueLen returns the cue length in samples, 0 when it is not loaded.
func (p *Player) CueLen(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.cues[name]; ok {
		return b.Len()
	}
	return 0
}

// PlayCue mixes one playback of a loaded cue.
func (p *Player) PlayCue(name string) error {
	p.mu.Lock()
	buf, ok := p.cues[name]
	initialized := p.initialized
	vol := p.master * p.sfx
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	if !initialized {
		return ErrNotInitialized
	}

	v := &effects.Volume{Streamer: buf.Streamer(0, buf.Len()), Base: 10}
	v.Volume, v.Silent = gain(vol)
	speaker.Lock()
	p.mixer.Add(v)
	speaker.Unlock()
	return nil
}

// PlayAmbient starts looping WAV data, replacing any current ambient track.
func (p *Player) PlayAmbient(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return ErrNotInitialized
	}

	s, format, err := decode(data)
	if err != nil {
		return fmt.Errorf("ambient: %w", err)
	}
	loop, err := beep.Loop2(s)
	if err != nil {
		s.Close()
		return fmt.Errorf("ambient loop: %w", err)
	}

	p.stopAmbient()
	p.ambientCtrl = &beep.Ctrl{Streamer: resampled(loop, format.SampleRate)}
	p.ambientVolume = &effects.Volume{Streamer: p.ambientCtrl, Base: 10}
	p.ambientVolume.Volume, p.ambientVolume.Silent = gain(p.master * p.music)
	p.ambientCloser = s

	speaker.Lock()
	p.mixer.Add(p.ambientVolume)
	speaker.Unlock()
	p.log.Debug("ambient track started", zap.Int("sampleRate", int(format.SampleRate)))
	return nil
}

// StopAmbient stops the ambient track.
func (p *Player) StopAmbient() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAmbient()
}

func (p *Player) stopAmbient() {
	if p.ambientCtrl == nil {
		return
	}
	speaker.Lock()
	// a nil streamer ends the ctrl and the mixer drops it
	p.ambientCtrl.Streamer = nil
	speaker.Unlock()
	if p.ambientCloser != nil {
		p.ambientCloser.Close()
	}
	p.ambientCtrl, p.ambientVolume, p.ambientCloser = nil, nil, nil
}

// AmbientPlaying reports whether an ambient track is active.
func (p *Player) AmbientPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ambientCtrl != nil
}

// gain converts a linear 0..1 volume to an effects.Volume exponent in base 10.
func gain(vol float64) (exponent float64, silent bool) {
	if vol <= 0 {
		return 0, true
	}
	return math.Log10(vol), false
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
