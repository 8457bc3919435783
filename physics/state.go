// Package physics integrates the lander one tick at a time
package physics

import (
	"fmt"

	"github.com/lixenwraith/lander/vmath"
)

// State is the full kinematic and control state of a lander
// Rotate is in degrees, 0 is upright; Power is the thrust level
type State struct {
	X, Y   float64
	VX, VY float64
	Fuel   float64
	Rotate int
	Power  int
}

// Position returns the lander position as a vector
func (s State) Position() vmath.Vec2 {
	return vmath.Vec2{X: s.X, Y: s.Y}
}

// Finite reports whether every continuous component is finite
func (s State) Finite() bool {
	return vmath.Finite(s.X) && vmath.Finite(s.Y) &&
		vmath.Finite(s.VX) && vmath.Finite(s.VY) &&
		vmath.Finite(s.Fuel)
}

// Command returns the absolute control currently applied
func (s State) Command() Command {
	return Command{Rotate: s.Rotate, Power: s.Power}
}

// Command is an absolute, legal control setting for one tick
type Command struct {
	Rotate int `json:"rotate" msgpack:"rotate"`
	Power  int `json:"power" msgpack:"power"`
}

func (c Command) String() string {
	return fmt.Sprintf("%d %d", c.Rotate, c.Power)
}
