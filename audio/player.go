// Package audio plays short cues for solver milestones
// A Player that failed to open stays silent, so the viewer runs without a sound device
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue names a milestone sound
type Cue uint8

const (
	CueSolved Cue = iota
	CueExhausted
	CueReset
)

// Player mixes cues onto the system speaker
type Player struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	open  bool
	muted bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Open claims the speaker with a 100ms buffer; opening twice is a no-op
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.open = true
	return nil
}

// Close silences queued cues
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.open = false
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play queues cue unless the player is closed or muted
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || p.muted {
		return
	}
	s := cue.Stream()
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
