package fitness

import (
	"math"

	"github.com/lixenwraith/lander/genetic/tracking"
)

// Aggregator calculates a score from collected metrics
type Aggregator interface {
	Calculate(metrics tracking.Metrics, ctx Context) float64
}

// NormalizeFunc converts a raw metric before weighting
type NormalizeFunc func(raw float64) float64

// NormalizeExcess returns how far |raw| exceeds tolerance, zero within it
func NormalizeExcess(tolerance float64) NormalizeFunc {
	return func(raw float64) float64 {
		return max(math.Abs(raw)-tolerance, 0)
	}
}

// NormalizeAbs returns |raw|
func NormalizeAbs() NormalizeFunc {
	return NormalizeExcess(0)
}
