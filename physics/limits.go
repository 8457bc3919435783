package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/vmath"
)

var ErrInvalidRange = errors.New("invalid control range")

// Range bounds an absolute control value and its change per tick
type Range struct {
	Min      int `yaml:"min" json:"min"`
	Max      int `yaml:"max" json:"max" validate:"gtefield=Min"`
	MaxDelta int `yaml:"max_delta" json:"max_delta" validate:"gt=0"`
}

// Step applies delta to prev, limited to ±MaxDelta and then to [Min, Max]
func (r Range) Step(prev, delta int) int {
	delta = vmath.Clamp(delta, -r.MaxDelta, r.MaxDelta)
	return vmath.Clamp(prev+delta, r.Min, r.Max)
}

// Contains reports whether v is a legal absolute value
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) validate(name string) error {
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d below min %d: %w", name, r.Max, r.Min, ErrInvalidRange)
	}
	if r.MaxDelta <= 0 {
		return fmt.Errorf("%s: max_delta must be positive: %w", name, ErrInvalidRange)
	}
	return nil
}

// Limits are the legal ranges for both controls
type Limits struct {
	Rotate Range `yaml:"rotation" json:"rotation"`
	Power  Range `yaml:"power" json:"power"`
}

// DefaultLimits returns the standard lander control envelope
func DefaultLimits() Limits {
	return Limits{
		Rotate: Range{Min: parameter.RotateMin, Max: parameter.RotateMax, MaxDelta: parameter.RotateMaxDelta},
		Power:  Range{Min: parameter.PowerMin, Max: parameter.PowerMax, MaxDelta: parameter.PowerMaxDelta},
	}
}

// Accumulate turns raw deltas into the next legal absolute command
// Any delta value is accepted; this is the only place controls are re-legalized
func (l Limits) Accumulate(prev Command, rotateDelta, powerDelta int) Command {
	return Command{
		Rotate: l.Rotate.Step(prev.Rotate, rotateDelta),
		Power:  l.Power.Step(prev.Power, powerDelta),
	}
}

// Legal reports whether cmd is within both ranges
func (l Limits) Legal(cmd Command) bool {
	return l.Rotate.Contains(cmd.Rotate) && l.Power.Contains(cmd.Power)
}

func (l Limits) Validate() error {
	if err := l.Rotate.validate("rotation"); err != nil {
		return err
	}
	if l.Power.Min < 0 {
		return fmt.Errorf("power: min %d is negative: %w", l.Power.Min, ErrInvalidRange)
	}
	return l.Power.validate("power")
}
