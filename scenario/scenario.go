// Package scenario loads the lander start state, the terrain and the solver settings
package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/physics"
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Lander is the start state as written in scenario files
type Lander struct {
	X      float64 `yaml:"X" json:"X"`
	Y      float64 `yaml:"Y" json:"Y"`
	HSpeed float64 `yaml:"HSpeed" json:"HSpeed"`
	VSpeed float64 `yaml:"VSpeed" json:"VSpeed"`
	Fuel   float64 `yaml:"Fuel" json:"Fuel"`
	// Angle is stored as a number but must be a whole degree
	Angle float64 `yaml:"Angle" json:"Angle"`
	Power int     `yaml:"Power" json:"Power"`
}

// Scenario is one landing problem
// Files use the {"Lander": {...}, "Terrain": [[x, y], ...]} layout, JSON or YAML
type Scenario struct {
	Lander  Lander       `yaml:"Lander" json:"Lander"`
	Terrain [][2]float64 `yaml:"Terrain" json:"Terrain"`
}

// ParseScenario decodes a scenario document
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if len(s.Terrain) == 0 {
		return Scenario{}, fmt.Errorf("%w: missing Terrain", ErrInvalidScenario)
	}
	return s, nil
}

// LoadScenario reads and decodes a scenario file
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Points returns the terrain polyline
func (s Scenario) Points() []vmath.Vec2 {
	pts := make([]vmath.Vec2, len(s.Terrain))
	for i, p := range s.Terrain {
		pts[i] = vmath.Vec2{X: p[0], Y: p[1]}
	}
	return pts
}

// State converts the start state to physics units
func (s Scenario) State() (physics.State, error) {
	l := s.Lander
	if l.Angle != math.Trunc(l.Angle) {
		return physics.State{}, fmt.Errorf("%w: angle %g is not a whole degree", ErrInvalidScenario, l.Angle)
	}
	st := physics.State{
		X:      l.X,
		Y:      l.Y,
		VX:     l.HSpeed,
		VY:     l.VSpeed,
		Fuel:   l.Fuel,
		Rotate: int(l.Angle),
		Power:  l.Power,
	}
	if !st.Finite() {
		return physics.State{}, fmt.Errorf("%w: non-finite lander state", ErrInvalidScenario)
	}
	if st.Fuel < 0 {
		return physics.State{}, fmt.Errorf("%w: negative fuel %g", ErrInvalidScenario, st.Fuel)
	}
	return st, nil
}

// Environment builds the immutable simulation inputs for s under set
// set must already be valid
func (s Scenario) Environment(set Settings) (lander.Environment, error) {
	t, err := terrain.New(s.Points(), set.Ceiling)
	if err != nil {
		return lander.Environment{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	st, err := s.State()
	if err != nil {
		return lander.Environment{}, err
	}
	if !set.Limits.Legal(st.Command()) {
		return lander.Environment{}, fmt.Errorf("%w: initial command %v outside legal ranges", ErrInvalidScenario, st.Command())
	}

	minX, maxX := t.Bounds()
	if st.X < minX || st.X > maxX || st.Y > t.Ceiling() {
		return lander.Environment{}, fmt.Errorf("%w: lander (%g, %g) outside the map", ErrInvalidScenario, st.X, st.Y)
	}
	if h, _ := t.HeightAt(st.X); st.Y <= h {
		return lander.Environment{}, fmt.Errorf("%w: lander (%g, %g) not above ground (%g)", ErrInvalidScenario, st.X, st.Y, h)
	}

	if err := lander.CheckOrdering(t, set.Tolerance, set.Fitness); err != nil {
		return lander.Environment{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return lander.Environment{
		Terrain:      t,
		Physics:      set.Physics(),
		Limits:       set.Limits,
		Tolerance:    set.Tolerance,
		CrashWhenDry: set.OutOfFuel == parameter.OutOfFuelCrash,
		Initial:      st,
	}, nil
}
