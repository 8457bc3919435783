package lander

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/lander/genetic/fitness"
	"github.com/lixenwraith/lander/genetic/tracking"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

// Penalty metric keys
const (
	metricVerticalSpeed   = "vertical_speed"
	metricHorizontalSpeed = "horizontal_speed"
	metricAngle           = "angle"
)

var ErrLandingBonusTooSmall = errors.New("landing bonus cannot outrank every non-landing")

// Weights are the fitness policy constants
type Weights struct {
	LandingBonus    float64 `yaml:"landing_bonus" json:"landing_bonus" validate:"gt=0"`
	BoundaryPenalty float64 `yaml:"boundary_penalty" json:"boundary_penalty" validate:"gte=0"`
	VerticalSpeed   float64 `yaml:"vertical_speed_weight" json:"vertical_speed_weight" validate:"gte=0"`
	HorizontalSpeed float64 `yaml:"horizontal_speed_weight" json:"horizontal_speed_weight" validate:"gte=0"`
	Angle           float64 `yaml:"angle_weight" json:"angle_weight" validate:"gte=0"`
	ZoneMargin      float64 `yaml:"zone_margin" json:"zone_margin" validate:"gte=0"`
}

// DefaultWeights returns the standard fitness policy
func DefaultWeights() Weights {
	return Weights{
		LandingBonus:    parameter.FitnessLandingBonus,
		BoundaryPenalty: parameter.FitnessBoundaryPenalty,
		VerticalSpeed:   parameter.FitnessWeightVerticalSpeed,
		HorizontalSpeed: parameter.FitnessWeightHorizontalSpeed,
		Angle:           parameter.FitnessWeightAngle,
		ZoneMargin:      parameter.FitnessZoneMargin,
	}
}

// Evaluator scores routes, higher is better
// Non-landings score at most zero; landings score above zero when CheckOrdering passes
type Evaluator struct {
	zone      terrain.Zone
	weights   Weights
	penalties *fitness.WeightedAggregator
}

// NewEvaluator builds an evaluator for a landing zone
func NewEvaluator(zone terrain.Zone, tol Tolerance, w Weights) *Evaluator {
	return &Evaluator{
		zone:    zone,
		weights: w,
		penalties: &fitness.WeightedAggregator{
			Weights: map[string]float64{
				metricVerticalSpeed:   w.VerticalSpeed,
				metricHorizontalSpeed: w.HorizontalSpeed,
				metricAngle:           w.Angle,
			},
			Normalizers: map[string]fitness.NormalizeFunc{
				metricVerticalSpeed:   fitness.NormalizeExcess(tol.VerticalSpeed),
				metricHorizontalSpeed: fitness.NormalizeExcess(tol.HorizontalSpeed),
				metricAngle:           fitness.NormalizeAbs(),
			},
			ContextAdjuster: fitness.ScaleWeights(fitness.ContextZoneProximity),
		},
	}
}

// CheckOrdering verifies the bonus lifts the worst possible landing above zero
// A landing ends on the zone, at most its width from the center, with angle within tolerance
func CheckOrdering(t *terrain.Terrain, tol Tolerance, w Weights) error {
	worst := t.LandingZone().Width() + w.Angle*tol.Angle
	if w.LandingBonus <= worst {
		return fmt.Errorf("landing_bonus %g must exceed %g: %w", w.LandingBonus, worst, ErrLandingBonusTooSmall)
	}
	return nil
}

// Score computes the fitness of r
func (e *Evaluator) Score(r *Route) float64 {
	if r.Outcome == Crashed && r.Reason == NonFinite {
		return parameter.FitnessFloor
	}

	final := r.Final()
	score := -vmath.V2Dist(final.Position(), e.zone.Center())

	proximity := 0.0
	if final.X >= e.zone.X0-e.weights.ZoneMargin && final.X <= e.zone.X1+e.weights.ZoneMargin {
		proximity = 1
	}
	score -= e.penalties.Calculate(tracking.Metrics{
		metricVerticalSpeed:   final.VY,
		metricHorizontalSpeed: final.VX,
		metricAngle:           float64(final.Rotate),
	}, fitness.MapContext{fitness.ContextZoneProximity: proximity})

	switch r.Outcome {
	case LandedCorrectly:
		score += e.weights.LandingBonus
	case OutOfBounds, OutOfFuel:
		score -= e.weights.BoundaryPenalty
	case Flying, Crashed:
	}

	if !vmath.Finite(score) || score < parameter.FitnessFloor {
		return parameter.FitnessFloor
	}
	return score
}
