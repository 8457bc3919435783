package fitness

import (
	"maps"
	"slices"

	"github.com/lixenwraith/lander/genetic/tracking"
)

// WeightedAggregator calculates fitness as weighted sum of metric scores
// Terms are summed in key order so equal inputs give bit-identical results
type WeightedAggregator struct {
	Weights         map[string]float64
	Normalizers     map[string]NormalizeFunc
	ContextAdjuster func(weights map[string]float64, ctx Context) map[string]float64
}

func (a *WeightedAggregator) Calculate(metrics tracking.Metrics, ctx Context) float64 {
	weights := a.Weights
	if a.ContextAdjuster != nil && ctx != nil {
		weights = a.ContextAdjuster(weights, ctx)
	}

	var fitness float64
	for _, key := range slices.Sorted(maps.Keys(weights)) {
		weight := weights[key]
		raw, ok := metrics[key]
		if !ok || weight == 0 {
			continue
		}

		normalized := raw
		if a.Normalizers != nil {
			if normalizer, ok := a.Normalizers[key]; ok && normalizer != nil {
				normalized = normalizer(raw)
			}
		}

		fitness += weight * normalized
	}

	return fitness
}

// ScaleWeights returns an adjuster multiplying every weight by the context value at key
// A missing key leaves weights unchanged
func ScaleWeights(key string) func(map[string]float64, Context) map[string]float64 {
	return func(w map[string]float64, ctx Context) map[string]float64 {
		factor, ok := ctx.Get(key)
		if !ok {
			return w
		}
		adjusted := make(map[string]float64, len(w))
		for k, v := range w {
			adjusted[k] = v * factor
		}
		return adjusted
	}
}
