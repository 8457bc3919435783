package genetic

import (
	"math/rand/v2"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Engine coordinates the operators for one run
// It owns the random source; callers serialize access
type Engine[S Solution, F Numeric] struct {
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]

	config EngineConfig
	rng    *rand.Rand
}

type EngineConfig struct {
	PoolSize   int
	EliteCount int
	// PerturbationRate is the per-gene resample probability
	PerturbationRate float64
	// Parallelism bounds concurrent evaluations, 0 means GOMAXPROCS
	Parallelism int
	Seed        uint64
}

func NewEngine[S Solution, F Numeric](
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, F] {
	return &Engine[S, F]{
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         newRand(config.Seed),
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Reseed restarts the random stream from seed
func (e *Engine[S, F]) Reseed(seed uint64) {
	e.config.Seed = seed
	e.rng = newRand(seed)
}

// Initialize draws a fresh random population
// Generation is sequential so a fixed seed reproduces it exactly
func (e *Engine[S, F]) Initialize() []S {
	solutions := make([]S, e.config.PoolSize)
	for i := range solutions {
		solutions[i] = e.initializer(e.rng)
	}
	return solutions
}

// Breed produces the next generation's solutions from an evaluated pool
// Elites come first in rank order and are never perturbed
func (e *Engine[S, F]) Breed(current *Pool[S, F]) []S {
	next := make([]S, 0, e.config.PoolSize)

	for _, c := range SelectElite(current, e.config.EliteCount) {
		next = append(next, c.Data)
	}

	for len(next) < e.config.PoolSize {
		parents := e.selector.Select(current, 2, e.rng)
		for _, child := range e.combiner.Combine(parents, e.rng) {
			e.perturbator.Perturb(&child, e.config.PerturbationRate, e.rng)
			next = append(next, child)
			if len(next) == e.config.PoolSize {
				break
			}
		}
	}

	return next
}

// EvaluateAll applies fn to every item on a bounded worker pool
// Results keep the index of their input
func EvaluateAll[S, R any](parallelism int, items []S, fn func(S) R) []R {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]R, len(items))
	p := pool.New().WithMaxGoroutines(parallelism)
	for i := range items {
		p.Go(func() {
			results[i] = fn(items[i])
		})
	}
	p.Wait()

	return results
}
