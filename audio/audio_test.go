package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerClosedIsSilent(t *testing.T) {
	p := NewPlayer()
	assert.NotPanics(t, func() {
		p.Play(CueSolved)
		p.Play(CueExhausted)
		p.Play(CueReset)
		p.Close()
	})
}

func TestPlayerOpen(t *testing.T) {
	p := NewPlayer()
	if err := p.Open(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	require.NoError(t, p.Open(), "second open is a no-op")
	p.Play(CueSolved)
	p.Close()
}

func TestPlayerMute(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.Muted())
	p.SetMuted(true)
	assert.True(t, p.Muted())
	p.SetMuted(false)
	assert.False(t, p.Muted())
}

func TestCueStreams(t *testing.T) {
	limit := sampleRate.N(2 * time.Second)
	for _, cue := range []Cue{CueSolved, CueExhausted, CueReset} {
		s := cue.Stream()
		buf := make([][2]float64, 512)
		total := 0
		for total <= limit {
			n, ok := s.Stream(buf)
			for _, smp := range buf[:n] {
				require.False(t, math.IsNaN(smp[0]), "cue %d", cue)
				require.LessOrEqual(t, math.Abs(smp[0]), 1.0, "cue %d", cue)
				require.Equal(t, smp[0], smp[1], "cue %d is mono", cue)
			}
			total += n
			if !ok {
				break
			}
		}
		assert.Positive(t, total, "cue %d", cue)
		assert.LessOrEqual(t, total, limit, "cue %d ends", cue)
	}
}
