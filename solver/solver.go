// Package solver evolves landing routes for one scenario, one generation at a time
package solver

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/lander/genetic"
	"github.com/lixenwraith/lander/genetic/persistence"
	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/log"
	"github.com/lixenwraith/lander/observability"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/terrain"
)

type engine = genetic.Engine[lander.Chromosome, float64]

// Population is one evaluated generation
// It is immutable once published; readers may hold it across generations
type Population struct {
	Generation int
	RunID      string
	Routes     []*lander.Route
	Fitness    []float64
	// BestIndex is the lowest index holding the best fitness
	BestIndex int
	// SolvedIndex is the lowest index of a correct landing, -1 when none landed
	SolvedIndex int
	Landed      int
	Stats       genetic.PoolStats[float64]

	pool *genetic.Pool[lander.Chromosome, float64]
}

// Solved reports whether any route landed correctly
func (p *Population) Solved() bool {
	return p.SolvedIndex >= 0
}

// Best returns the best route
func (p *Population) Best() *lander.Route {
	return p.Routes[p.BestIndex]
}

// OutcomeCounts tallies routes by outcome name
func (p *Population) OutcomeCounts() map[string]int {
	counts := make(map[string]int, len(lander.Outcomes))
	for _, r := range p.Routes {
		counts[r.Outcome.String()]++
	}
	return counts
}

// Snapshot exports the population for persistence
func (p *Population) Snapshot(seed uint64) persistence.PopulationDTO[lander.Chromosome] {
	dto := persistence.FromPool(p.pool, func(i int) string {
		return p.Routes[i].Outcome.String()
	})
	dto.RunID = p.RunID
	dto.Seed = seed
	dto.SavedAt = time.Now()
	return dto
}

// Status is a point-in-time summary of the solver
type Status struct {
	State          State   `json:"state"`
	Generation     int     `json:"generation"`
	RunID          string  `json:"runId"`
	Seed           uint64  `json:"seed"`
	BestFitness    float64 `json:"bestFitness"`
	AverageFitness float64 `json:"averageFitness"`
	Landed         int     `json:"landed"`
	PopulationSize int     `json:"populationSize"`
	MaxGenerations int     `json:"maxGenerations"`
}

// Option configures a Solver
type Option func(*Solver)

func WithLogger(l *log.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *Solver) { s.metrics = m }
}

// Solver owns the random source, the current population and the lifecycle state
// Reset and AdvanceGeneration serialize; readers never wait for a generation to finish
type Solver struct {
	writeMu sync.Mutex

	mu    sync.RWMutex
	pop   *Population
	state State

	settings  scenario.Settings
	seed      uint64
	env       lander.Environment
	simulator *lander.Simulator
	evaluator *lander.Evaluator
	engine    *engine

	logger  *log.Logger
	metrics *observability.Metrics
}

// New validates the inputs and evaluates generation zero
func New(scn scenario.Scenario, settings scenario.Settings, opts ...Option) (*Solver, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	env, err := scn.Environment(settings)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		settings:  settings,
		env:       env,
		simulator: lander.NewSimulator(env),
		evaluator: lander.NewEvaluator(env.Terrain.LandingZone(), settings.Tolerance, settings.Fitness),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seed = rand.Uint64()
	if settings.Seed != nil {
		s.seed = *settings.Seed
	}
	s.engine = newEngine(settings, s.seed)

	s.Reset()
	return s, nil
}

func newEngine(set scenario.Settings, seed uint64) *engine {
	var sel genetic.Selector[lander.Chromosome, float64]
	switch set.Selection {
	case parameter.SelectionTournament:
		sel = &genetic.TournamentSelector[lander.Chromosome, float64]{TournamentSize: set.TournamentSize}
	default:
		sel = &genetic.RouletteSelector[lander.Chromosome, float64]{}
	}

	return genetic.NewEngine(
		lander.RandomChromosome(set.ChromosomeLength, set.Limits),
		sel,
		&genetic.WeightedUniformCombiner[lander.Chromosome, lander.Gene, float64]{},
		&genetic.ResamplePerturbator[lander.Chromosome, lander.Gene]{Sample: lander.RandomGene(set.Limits)},
		genetic.EngineConfig{
			PoolSize:         set.PopulationSize,
			EliteCount:       set.EliteCount,
			PerturbationRate: set.MutationProbability,
			Parallelism:      set.Parallelism,
			Seed:             seed,
		},
	)
}

// Reset discards the current run and evaluates a fresh random generation zero
// The random stream restarts from the seed only when reseed_on_reset is set
func (s *Solver) Reset() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.settings.ReseedOnReset {
		s.engine.Reseed(s.seed)
	}

	start := time.Now()
	pop := s.evaluate(0, uuid.NewString(), s.engine.Initialize())
	s.publish(pop, Initialized, time.Since(start))
	s.metrics.RecordReset()

	s.logger.Info("solver reset",
		slog.String("run", pop.RunID),
		slog.Uint64("seed", s.seed),
		slog.Bool("solved", pop.Solved()))
}

// AdvanceGeneration breeds and evaluates the next generation
// It is a no-op once the solver is Solved or Exhausted
// Returns true iff the current population contains a correct landing
func (s *Solver) AdvanceGeneration() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	cur, state := s.pop, s.state
	s.mu.RUnlock()

	if state.Terminal() {
		return cur.Solved()
	}

	start := time.Now()
	next := s.evaluate(cur.Generation+1, cur.RunID, s.engine.Breed(cur.pool))
	s.publish(next, Evolving, time.Since(start))

	return next.Solved()
}

// evaluate flies and scores every chromosome on the worker pool
func (s *Solver) evaluate(generation int, runID string, chromosomes []lander.Chromosome) *Population {
	routes := genetic.EvaluateAll(s.settings.Parallelism, chromosomes, func(ch lander.Chromosome) *lander.Route {
		r := s.simulator.Simulate(ch)
		r.Fitness = s.evaluator.Score(r)
		return r
	})

	fitness := make([]float64, len(routes))
	pop := &Population{
		Generation:  generation,
		RunID:       runID,
		Routes:      routes,
		Fitness:     fitness,
		SolvedIndex: -1,
	}
	for i, r := range routes {
		fitness[i] = r.Fitness
		if r.Outcome == lander.LandedCorrectly {
			pop.Landed++
			if pop.SolvedIndex < 0 {
				pop.SolvedIndex = i
			}
		}
	}

	pop.pool = genetic.NewPool(generation, chromosomes, fitness)
	pop.Stats = pop.pool.Stats
	pop.BestIndex = pop.Stats.BestIndex
	return pop
}

// publish swaps in pop and derives the next state from it
func (s *Solver) publish(pop *Population, fallback State, took time.Duration) {
	state := fallback
	switch {
	case pop.Solved():
		state = Solved
	case s.settings.MaxGenerations > 0 && pop.Generation >= s.settings.MaxGenerations:
		state = Exhausted
	}

	s.mu.Lock()
	s.pop, s.state = pop, state
	s.mu.Unlock()

	s.metrics.ObserveGeneration(took, pop.Stats.BestScore, pop.Landed, pop.OutcomeCounts())
	s.logger.Debug("generation evaluated",
		slog.Int("generation", pop.Generation),
		slog.String("state", state.String()),
		slog.Float64("best", pop.Stats.BestScore),
		slog.Int("landed", pop.Landed),
		slog.Duration("took", took))

	if state != fallback {
		s.logger.Info(fmt.Sprintf("solver %s", state),
			slog.String("run", pop.RunID),
			slog.Int("generation", pop.Generation))
	}
}

// CurrentPopulation returns the latest evaluated generation, shared and read-only
func (s *Solver) CurrentPopulation() *Population {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pop
}

func (s *Solver) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status summarizes the current population and state
func (s *Solver) Status() Status {
	s.mu.RLock()
	pop, state := s.pop, s.state
	s.mu.RUnlock()

	return Status{
		State:          state,
		Generation:     pop.Generation,
		RunID:          pop.RunID,
		Seed:           s.seed,
		BestFitness:    pop.Stats.BestScore,
		AverageFitness: pop.Stats.AverageScore,
		Landed:         pop.Landed,
		PopulationSize: len(pop.Routes),
		MaxGenerations: s.settings.MaxGenerations,
	}
}

func (s *Solver) Terrain() *terrain.Terrain {
	return s.env.Terrain
}

// Environment returns the simulation inputs shared by every route
func (s *Solver) Environment() lander.Environment {
	return s.env
}

func (s *Solver) Settings() scenario.Settings {
	return s.settings
}

// Seed is the seed the random stream started from
func (s *Solver) Seed() uint64 {
	return s.seed
}
