package genetic

import "math/rand/v2"

// Solution is any genome encoding
type Solution any

// Numeric is the set of score types
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Candidate is a scored solution; higher scores are better
type Candidate[S Solution, F Numeric] struct {
	Data  S
	Score F
	// Index is the position in the owning pool
	Index int
	// Weight is Score shifted so the worst pool member weighs zero
	Weight float64
}

// Pool is one evaluated generation
// Pools are immutable once built, readers may share them freely
type Pool[S Solution, F Numeric] struct {
	Members    []Candidate[S, F]
	Generation int
	Stats      PoolStats[F]

	// cumulative weights for roulette spins, last entry is the total
	cumulative []float64
}

type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore F
	// BestIndex is the lowest index holding BestScore
	BestIndex int
}

// InitializerFunc draws one random solution
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// Selector draws size parents from pool
type Selector[S Solution, F Numeric] interface {
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner breeds offspring that share no storage with their parents
type Combiner[S Solution, F Numeric] interface {
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator mutates a solution in place, each gene with probability rate
type Perturbator[S Solution] interface {
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
