// Package genetic is a generic evolutionary loop over slice-encoded solutions
// Every random draw comes from the engine's own *rand.Rand, so a seed replays a run;
// evaluation is parallel and keeps input order, breeding is sequential
package genetic

import (
	"math/rand/v2"
	"sort"
)

// TournamentSelector keeps the best of TournamentSize uniform draws, lower index on ties
type TournamentSelector[S Solution, F Numeric] struct {
	TournamentSize int
}

func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	selected := make([]Candidate[S, F], 0, size)
	poolSize := len(pool.Members)
	if poolSize == 0 {
		return selected
	}

	// Draws are with replacement, so sizes above the pool size only sharpen pressure
	tournSize := ts.TournamentSize
	if tournSize < 1 {
		tournSize = 2
	}

	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			c := pool.Members[rng.IntN(poolSize)]
			if c.Score > winner.Score || (c.Score == winner.Score && c.Index < winner.Index) {
				winner = c
			}
		}
		selected = append(selected, winner)
	}

	return selected
}

// RouletteSelector draws in proportion to score minus the pool's worst score,
// uniformly when every score is equal
type RouletteSelector[S Solution, F Numeric] struct{}

func (rs *RouletteSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	n := len(pool.Members)
	if n == 0 {
		return nil
	}

	selected := make([]Candidate[S, F], size)
	total := pool.TotalWeight()
	for i := 0; i < size; i++ {
		if total <= 0 {
			selected[i] = pool.Members[rng.IntN(n)]
			continue
		}

		// Spin the wheel, first cumulative weight strictly above the spin wins
		spin := rng.Float64() * total
		j := sort.Search(n, func(k int) bool { return pool.cumulative[k] > spin })
		if j == n {
			j = n - 1
		}
		selected[i] = pool.Members[j]
	}

	return selected
}

// WeightedUniformCombiner performs per-gene crossover biased toward the fitter parent
// Each gene comes from the first parent with probability w1/(w1+w2) of the roulette weights
type WeightedUniformCombiner[S ~[]T, T any, F Numeric] struct{}

// Combine creates one offspring from two parents
func (wc *WeightedUniformCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	switch len(parents) {
	case 0:
		return nil
	case 1:
		return []S{clone(parents[0].Data)}
	}

	a, b := parents[0], parents[1]
	p := 0.5
	if sum := a.Weight + b.Weight; sum > 0 {
		p = a.Weight / sum
	}

	length := min(len(a.Data), len(b.Data))
	child := make(S, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < p {
			child[i] = a.Data[i]
		} else {
			child[i] = b.Data[i]
		}
	}

	return []S{child}
}

// ResamplePerturbator replaces elements with fresh random values
type ResamplePerturbator[S ~[]T, T any] struct {
	// Sample draws one replacement element
	Sample func(rng *rand.Rand) T
}

// Perturb resamples each element independently with probability rate
func (rp *ResamplePerturbator[S, T]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	if solution == nil || rp.Sample == nil {
		return
	}
	for i := range *solution {
		if rng.Float64() < rate {
			(*solution)[i] = rp.Sample(rng)
		}
	}
}

func clone[S ~[]T, T any](s S) S {
	out := make(S, len(s))
	copy(out, s)
	return out
}
