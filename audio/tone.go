package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sum of harmonics of one fundamental under an attack/decay envelope
type tone struct {
	freq      float64
	harmonics []float64 // amplitude of the n-th multiple of freq, starting at 1
	attack    float64   // seconds to full level
	decay     float64   // exponential decay rate per second, 0 holds
	t         int
}

func (g *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		sec := float64(g.t) / float64(sampleRate)
		env := min(sec/g.attack, 1) * math.Exp(-g.decay*sec)

		var v float64
		for n, amp := range g.harmonics {
			v += amp * math.Sin(2*math.Pi*g.freq*float64(n+1)*sec)
		}
		v *= env
		samples[i] = [2]float64{v, v}
		g.t++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

func note(freq float64, d time.Duration) beep.Streamer {
	return beep.Take(sampleRate.N(d), &tone{freq: freq, harmonics: []float64{0.25}, attack: 0.005, decay: 8})
}

// Stream renders the cue as a finite stream
func (c Cue) Stream() beep.Streamer {
	switch c {
	case CueSolved:
		// C-E-G
		return beep.Seq(
			note(523.25, 90*time.Millisecond),
			note(659.25, 90*time.Millisecond),
			note(783.99, 240*time.Millisecond),
		)
	case CueExhausted:
		buzz := &tone{freq: 110, harmonics: []float64{0.06, 0.03, 0.015}, attack: 0.02}
		return beep.Take(sampleRate.N(300*time.Millisecond), buzz)
	default:
		return note(440, 60*time.Millisecond)
	}
}
