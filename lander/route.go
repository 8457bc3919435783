package lander

import (
	"math"
	"time"

	"github.com/lixenwraith/lander/genetic/tracking"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/physics"
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

// Tolerance bounds a correct landing
type Tolerance struct {
	Angle           float64 `yaml:"angle" json:"angle" validate:"gte=0"`
	HorizontalSpeed float64 `yaml:"horizontal_speed" json:"horizontal_speed" validate:"gte=0"`
	VerticalSpeed   float64 `yaml:"vertical_speed" json:"vertical_speed" validate:"gte=0"`
}

// DefaultTolerance returns the standard landing envelope
func DefaultTolerance() Tolerance {
	return Tolerance{
		Angle:           parameter.ToleranceAngle,
		HorizontalSpeed: parameter.ToleranceHorizontalSpeed,
		VerticalSpeed:   parameter.ToleranceVerticalSpeed,
	}
}

// Environment is everything a flight depends on besides its chromosome
// It is read-only and shared by concurrent simulations
type Environment struct {
	Terrain   *terrain.Terrain
	Physics   physics.Physics
	Limits    physics.Limits
	Tolerance Tolerance
	// CrashWhenDry ends the flight with OutOfFuel instead of coasting
	CrashWhenDry bool
	Initial      physics.State
}

// Route is the immutable result of flying one chromosome
type Route struct {
	Chromosome Chromosome
	// Accumulated holds the absolute command of each simulated tick
	Accumulated []physics.Command
	// States holds the initial state followed by one state per simulated tick
	States  []physics.State
	Outcome Outcome
	Reason  Reason
	Fitness float64
	Summary tracking.Metrics
}

// Final returns the last simulated state
func (r *Route) Final() physics.State {
	return r.States[len(r.States)-1]
}

// Positions returns the trajectory, initial position first
func (r *Route) Positions() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(r.States))
	for i, s := range r.States {
		out[i] = s.Position()
	}
	return out
}

// Ticks is the number of simulated ticks
func (r *Route) Ticks() int {
	return len(r.Accumulated)
}

// Simulator flies chromosomes through an environment
type Simulator struct {
	env       Environment
	codec     Codec
	recorders *tracking.RecorderPool
	tick      time.Duration
}

// NewSimulator creates a simulator safe for concurrent use
func NewSimulator(env Environment) *Simulator {
	return &Simulator{
		env:       env,
		codec:     Codec{Limits: env.Limits, Initial: env.Initial.Command()},
		recorders: tracking.NewRecorderPool(),
		tick:      time.Duration(env.Physics.DT * float64(time.Second)),
	}
}

// Environment returns the simulation inputs
func (s *Simulator) Environment() Environment {
	return s.env
}

// Simulate flies ch tick by tick until ground contact, leaving the map, running dry under the
// crash policy, or exhausting the chromosome
// The returned route has no fitness assigned
func (s *Simulator) Simulate(ch Chromosome) *Route {
	env := s.env
	cmds := s.codec.Decode(ch)

	route := &Route{
		Chromosome:  ch,
		Accumulated: make([]physics.Command, 0, len(cmds)),
		States:      make([]physics.State, 1, len(cmds)+1),
	}
	route.States[0] = env.Initial

	rec := s.recorders.Get()
	defer s.recorders.Put(rec)

	minX, maxX := env.Terrain.Bounds()
	zone := env.Terrain.LandingZone()
	state := env.Initial

	for _, cmd := range cmds {
		applied := cmd
		if state.Fuel <= 0 && cmd.Power > 0 {
			if env.CrashWhenDry {
				route.Outcome = OutOfFuel
				break
			}
			applied.Power = 0
		}

		next := env.Physics.Step(state, applied)
		if !next.Finite() {
			route.Outcome, route.Reason = Crashed, NonFinite
			break
		}

		crossing, hit := env.Terrain.SegmentCrosses(state.Position(), next.Position())
		if hit {
			next.X, next.Y = crossing.Point.X, crossing.Point.Y
		}

		route.Accumulated = append(route.Accumulated, cmd)
		route.States = append(route.States, next)
		rec.Record(s.tickMetrics(next, zone), s.tick)
		state = next

		if hit {
			route.Outcome, route.Reason = s.classify(crossing, next)
			break
		}
		if next.X < minX || next.X > maxX || next.Y > env.Terrain.Ceiling() {
			route.Outcome = OutOfBounds
			break
		}
		if env.Terrain.Below(next.Position()) {
			route.Outcome, route.Reason = Crashed, WrongTerrain
			break
		}
	}

	final := route.Final()
	route.Summary = rec.Summary(tracking.Metrics{
		tracking.MetricFinalVX:    final.VX,
		tracking.MetricFinalVY:    final.VY,
		tracking.MetricFinalAngle: float64(final.Rotate),
	})

	return route
}

// classify decides between a correct landing and a crash, checking in order:
// terrain, horizontal speed, vertical speed, angle
func (s *Simulator) classify(c terrain.Crossing, st physics.State) (Outcome, Reason) {
	tol := s.env.Tolerance
	switch {
	case !c.Zone:
		return Crashed, WrongTerrain
	case math.Abs(st.VX) > tol.HorizontalSpeed:
		return Crashed, TooFastHorizontal
	case math.Abs(st.VY) > tol.VerticalSpeed:
		return Crashed, TooFastVertical
	case math.Abs(float64(st.Rotate)) > tol.Angle:
		return Crashed, NotVertical
	default:
		return LandedCorrectly, ReasonNone
	}
}

func (s *Simulator) tickMetrics(st physics.State, zone terrain.Zone) tracking.Metrics {
	m := tracking.Metrics{
		tracking.MetricSpeed: math.Hypot(st.VX, st.VY),
		tracking.MetricPower: float64(st.Power),
		tracking.MetricFuel:  st.Fuel,
	}
	if h, err := s.env.Terrain.HeightAt(st.X); err == nil {
		m[tracking.MetricAltitude] = st.Y - h
	}
	if zone.Contains(st.X) {
		m[tracking.MetricOverZone] = 1
	} else {
		m[tracking.MetricOverZone] = 0
	}
	return m
}
