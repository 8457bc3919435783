package physics

import (
	"math"

	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/vmath"
)

// Physics is a deterministic fixed-step integrator
type Physics struct {
	Gravity float64
	DT      float64
}

// Default returns Mars gravity with one second ticks
func Default() Physics {
	return Physics{Gravity: parameter.Gravity, DT: parameter.TickDuration}
}

// Step advances s by one tick under cmd
// Thrust is decomposed as power·sin(rotate) horizontally and power·cos(rotate) − g vertically,
// positions integrate with the constant acceleration of the tick
func (p Physics) Step(s State, cmd Command) State {
	power := float64(cmd.Power)
	angle := vmath.Radians(float64(cmd.Rotate))
	sin, cos := math.Sincos(angle)

	ax := power * sin
	ay := power*cos - p.Gravity
	dt := p.DT

	return State{
		X:      s.X + s.VX*dt + 0.5*ax*dt*dt,
		Y:      s.Y + s.VY*dt + 0.5*ay*dt*dt,
		VX:     s.VX + ax*dt,
		VY:     s.VY + ay*dt,
		Fuel:   max(s.Fuel-power*dt, 0),
		Rotate: cmd.Rotate,
		Power:  cmd.Power,
	}
}
