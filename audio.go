//go:build !libretro

package lrscript

import (
	"bytes"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const audioSampleRate = 48000

// oto context singleton, created on the first chime
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use.
func ensureOtoContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
	})
	return otoCtx, otoInitErr
}

// Sound plays the UI chimes. A failed audio init disables it for the rest
// of the session.
type Sound struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
	player  *oto.Player

	saved    []byte
	complete []byte
}

// NewSound creates the chime player. Nothing touches the audio device
// until the first Play.
func NewSound(enabled bool, volume float64) *Sound {
	return &Sound{
		enabled:  enabled,
		volume:   volume,
		saved:    generateSavedChime(),
		complete: generateCompleteChime(),
	}
}

// PlaySaved plays the mapping saved chime
func (s *Sound) PlaySaved() {
	s.play(s.saved)
}

// PlayComplete plays the download complete chime
func (s *Sound) PlayComplete() {
	s.play(s.complete)
}

// play runs pcm (48kHz stereo S16LE) through a one-shot player
func (s *Sound) play(pcm []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || len(pcm) == 0 {
		return
	}

	ctx, err := ensureOtoContext()
	if err != nil {
		log.Printf("Audio not available, sound disabled: %v", err)
		s.enabled = false
		return
	}

	// Close previous player if still active
	if s.player != nil {
		s.player.Close()
	}
	s.player = ctx.NewPlayer(bytes.NewReader(pcm))
	s.player.SetVolume(s.volume)
	s.player.Play()
}

// Close cleans up audio resources
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}
