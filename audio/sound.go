// Package audio plays short tones when the actor lands on a tile or finishes a turn.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker mixer. A zero-initialized manager is silent,
// so hosts can keep calling Play methods after Initialize fails.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	footstepHz  float64
	footstepLen time.Duration
	initialized bool
}

// NewSoundManager creates a sound manager for a footstep tone of hz lasting d.
func NewSoundManager(hz float64, d time.Duration) *SoundManager {
	if hz <= 0 {
		hz = 440
	}
	if d <= 0 {
		d = 40 * time.Millisecond
	}
	return &SoundManager{
		mixer:       &beep.Mixer{},
		footstepHz:  hz,
		footstepLen: d,
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences any queued tones.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayFootstep plays the tile-arrival tone.
func (sm *SoundManager) PlayFootstep() {
	sm.play(NewTone(sm.footstepHz, sm.footstepLen, sampleRate), 0)
}

// PlayTurn plays a quieter tone a fifth below the footstep.
func (sm *SoundManager) PlayTurn() {
	sm.play(NewTone(sm.footstepHz*2/3, sm.footstepLen, sampleRate), -1.5)
}

// play queues s on the mixer at the given volume offset (log2 scale).
func (sm *SoundManager) play(s beep.Streamer, volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	vol := &effects.Volume{Streamer: s, Base: 2, Volume: volume}
	speaker.Lock()
	sm.mixer.Add(vol)
	speaker.Unlock()
}
