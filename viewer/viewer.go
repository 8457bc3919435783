// Package viewer renders the evolving population in a terminal
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lander/audio"
	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/log"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/solver"
	"github.com/lixenwraith/lander/vmath"
)

// Viewer draws the active solver and steps it from the keyboard
// All methods run on the Run goroutine
type Viewer struct {
	screen tcell.Screen
	host   *solver.Host
	sound  *audio.Player
	logger *log.Logger

	auto     bool
	interval time.Duration

	lastState solver.State
	// message replaces the status line after a failed reset
	message string
}

type Option func(*Viewer)

// WithSound plays cues when a run ends or restarts
func WithSound(p *audio.Player) Option {
	return func(v *Viewer) { v.sound = p }
}

func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// WithAutoAdvance starts the viewer advancing one generation per interval
func WithAutoAdvance(interval time.Duration) Option {
	return func(v *Viewer) {
		v.auto = true
		if interval > 0 {
			v.interval = interval
		}
	}
}

// New creates a viewer on an initialized screen
func New(screen tcell.Screen, host *solver.Host, opts ...Option) *Viewer {
	v := &Viewer{
		screen:   screen,
		host:     host,
		interval: parameter.ViewerAutoInterval,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.lastState = host.Solver().State()
	return v
}

// Auto reports whether generations advance on the ticker
func (v *Viewer) Auto() bool {
	return v.auto
}

// Run draws and handles input until quit is pressed or ctx is done
func (v *Viewer) Run(ctx context.Context) error {
	defer v.guard()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()

		case <-ticker.C:
			if v.auto {
				v.step()
				v.Draw()
			}
		}
	}
}

// HandleEvent applies one input event, returning false when the viewer should exit
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'n', ' ':
				v.step()
			case 'a':
				v.auto = !v.auto
			case 'r':
				v.reset()
			case 'm':
				if v.sound != nil {
					v.sound.SetMuted(!v.sound.Muted())
				}
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) step() {
	sv := v.host.Solver()
	sv.AdvanceGeneration()
	v.observe(sv.State())
}

func (v *Viewer) reset() {
	if err := v.host.Reset(); err != nil {
		v.message = fmt.Sprintf("reset failed: %v", err)
		return
	}
	v.message = ""
	v.lastState = v.host.Solver().State()
	v.play(audio.CueReset)
}

// observe plays a cue on entering a terminal state and stops auto-advance there
func (v *Viewer) observe(state solver.State) {
	if state == v.lastState {
		return
	}
	v.lastState = state

	switch state {
	case solver.Solved:
		v.play(audio.CueSolved)
	case solver.Exhausted:
		v.play(audio.CueExhausted)
	default:
		return
	}
	v.auto = false
	v.logger.Info("viewer run finished", slog.String("state", state.String()))
}

func (v *Viewer) play(cue audio.Cue) {
	if v.sound != nil {
		v.sound.Play(cue)
	}
}

// Draw renders terrain, every route and the status line
func (v *Viewer) Draw() {
	v.screen.Fill(' ', styleBase)
	w, h := v.screen.Size()
	if w < 1 || h < 2 {
		v.screen.Show()
		return
	}

	sv := v.host.Solver()
	pop := sv.CurrentPopulation()
	vp := NewViewport(sv.Terrain(), w, h-1)

	v.drawTerrain(vp, sv)
	for i, r := range pop.Routes {
		if i != pop.BestIndex {
			v.drawRoute(vp, r, runeTrail, outcomeStyle(r.Outcome))
		}
	}
	v.drawRoute(vp, pop.Best(), runeBest, styleBest)
	v.drawStatus(w, h-1, sv, pop)

	v.screen.Show()
}

func (v *Viewer) drawTerrain(vp Viewport, sv *solver.Solver) {
	t := sv.Terrain()
	zone := t.LandingZone()
	for col := range vp.Width {
		x := vp.ColumnX(col)
		y, err := t.HeightAt(x)
		if err != nil {
			continue
		}
		_, top, ok := vp.Project(vmath.Vec2{X: x, Y: y})
		if !ok {
			continue
		}

		surface, style := runeGround, styleGround
		if zone.Contains(x) {
			surface, style = runeZone, styleZone
		}
		v.screen.SetContent(col, top, surface, nil, style)
		for row := top + 1; row < vp.Height; row++ {
			v.screen.SetContent(col, row, runeGround, nil, styleGround)
		}
	}
}

func (v *Viewer) drawRoute(vp Viewport, r *lander.Route, ch rune, style tcell.Style) {
	positions := r.Positions()
	for i, p := range positions {
		col, row, ok := vp.Project(p)
		if !ok {
			continue
		}
		if i == len(positions)-1 {
			v.screen.SetContent(col, row, endRune(r.Outcome), nil, style)
			continue
		}
		v.screen.SetContent(col, row, ch, nil, style)
	}
}

func (v *Viewer) drawStatus(w, row int, sv *solver.Solver, pop *solver.Population) {
	auto := "off"
	if v.auto {
		auto = "on"
	}
	line := fmt.Sprintf(" gen %d  %s  best %.1f  landed %d/%d  seed %d  [n]ext [a]uto:%s [r]eset [m]ute [q]uit",
		pop.Generation, sv.State(), pop.Stats.BestScore, pop.Landed, len(pop.Routes), sv.Seed(), auto)

	style := styleStatus
	if v.message != "" {
		line, style = " "+v.message, styleError
	}

	runes := []rune(line)
	for col := range w {
		ch := ' '
		if col < len(runes) {
			ch = runes[col]
		}
		v.screen.SetContent(col, row, ch, nil, style)
	}
}
