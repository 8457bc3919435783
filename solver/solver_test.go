package solver

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/lander"
	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

func flatScenario(y float64) scenario.Scenario {
	return scenario.Scenario{
		Lander:  scenario.Lander{X: 500, Y: y, Fuel: 1000},
		Terrain: [][2]float64{{0, 0}, {1000, 0}},
	}
}

func testSettings(seed uint64) scenario.Settings {
	set := scenario.Defaults()
	set.PopulationSize = 40
	set.ChromosomeLength = 40
	set.EliteCount = 4
	set.MaxGenerations = 50
	set.Parallelism = 4
	set.Seed = &seed
	return set
}

func newSolver(t *testing.T, scn scenario.Scenario, set scenario.Settings) *Solver {
	t.Helper()
	s, err := New(scn, set)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	set := testSettings(1)
	set.EliteCount = set.PopulationSize
	_, err := New(flatScenario(1000), set)
	assert.ErrorIs(t, err, scenario.ErrInvalidSettings)

	scn := flatScenario(1000)
	scn.Terrain = [][2]float64{{0, 0}, {500, 100}, {1000, 0}}
	_, err = New(scn, testSettings(1))
	assert.True(t, errors.Is(err, terrain.ErrNoLandingZone))
}

func TestNew_GenerationZero(t *testing.T) {
	s := newSolver(t, flatScenario(1000), testSettings(7))

	pop := s.CurrentPopulation()
	assert.Equal(t, 0, pop.Generation)
	assert.Len(t, pop.Routes, 40)
	assert.Len(t, pop.Fitness, 40)
	assert.NotEmpty(t, pop.RunID)
	assert.Equal(t, uint64(7), s.Seed())
	assert.Contains(t, []State{Initialized, Solved}, s.State())

	for i, r := range pop.Routes {
		assert.Len(t, r.Chromosome, 40)
		assert.Equal(t, r.Fitness, pop.Fitness[i])
	}
}

func TestDeterminism(t *testing.T) {
	a := newSolver(t, flatScenario(1500), testSettings(42))
	b := newSolver(t, flatScenario(1500), testSettings(42))

	for range 5 {
		a.AdvanceGeneration()
		b.AdvanceGeneration()
	}

	pa, pb := a.CurrentPopulation(), b.CurrentPopulation()
	require.Equal(t, pa.Generation, pb.Generation)
	assert.Equal(t, pa.Fitness, pb.Fitness)
	for i := range pa.Routes {
		assert.Equal(t, pa.Routes[i].Chromosome, pb.Routes[i].Chromosome)
		assert.Equal(t, pa.Routes[i].Outcome, pb.Routes[i].Outcome)
	}
}

func TestAccumulatedCommandsStayLegal(t *testing.T) {
	s := newSolver(t, flatScenario(2000), testSettings(3))
	s.AdvanceGeneration()
	s.AdvanceGeneration()

	limits := s.Settings().Limits
	initial := s.Environment().Initial.Command()
	for _, r := range s.CurrentPopulation().Routes {
		prev := initial
		for _, cmd := range r.Accumulated {
			require.True(t, limits.Legal(cmd), "illegal command %v", cmd)
			assert.LessOrEqual(t, vmath.Abs(cmd.Rotate-prev.Rotate), limits.Rotate.MaxDelta)
			assert.LessOrEqual(t, vmath.Abs(cmd.Power-prev.Power), limits.Power.MaxDelta)
			prev = cmd
		}
	}
}

func TestElitism(t *testing.T) {
	set := testSettings(11)
	set.MaxGenerations = 0
	scn := flatScenario(2500)
	s := newSolver(t, scn, set)

	prev := s.CurrentPopulation()
	for range 10 {
		if s.AdvanceGeneration() {
			break
		}
		cur := s.CurrentPopulation()

		assert.Len(t, cur.Routes, set.PopulationSize)
		assert.GreaterOrEqual(t, cur.Stats.BestScore, prev.Stats.BestScore)
		assert.Equal(t, prev.Routes[prev.BestIndex].Chromosome, cur.Routes[0].Chromosome)
		assert.Equal(t, prev.Stats.BestScore, cur.Fitness[0])
		prev = cur
	}
}

func TestLandsOnFlatTerrain(t *testing.T) {
	set := testSettings(2024)
	set.PopulationSize = 60
	set.EliteCount = 6
	set.MaxGenerations = 500
	s := newSolver(t, flatScenario(400), set)

	for !s.State().Terminal() {
		s.AdvanceGeneration()
	}

	require.Equal(t, Solved, s.State())
	pop := s.CurrentPopulation()
	require.True(t, pop.Solved())

	r := pop.Routes[pop.SolvedIndex]
	final := r.Final()
	assert.Equal(t, lander.LandedCorrectly, r.Outcome)
	assert.InDelta(t, 0, final.Y, 1e-6)
	assert.Equal(t, 0, final.Rotate)
	assert.LessOrEqual(t, math.Abs(final.VY), set.Tolerance.VerticalSpeed)
	assert.Greater(t, r.Fitness, 0.0)
	assert.Equal(t, pop.SolvedIndex, firstLanded(pop))

	assert.True(t, s.AdvanceGeneration(), "solved solver keeps reporting success")
	assert.Equal(t, pop, s.CurrentPopulation(), "advance after solved is a no-op")
}

func TestShortChromosomeExhausts(t *testing.T) {
	set := testSettings(5)
	set.ChromosomeLength = 2
	set.MaxGenerations = 5
	s := newSolver(t, flatScenario(2500), set)

	for range 5 {
		assert.False(t, s.AdvanceGeneration())
	}
	assert.Equal(t, Exhausted, s.State())
	assert.Equal(t, 5, s.CurrentPopulation().Generation)

	for _, r := range s.CurrentPopulation().Routes {
		assert.Equal(t, lander.Flying, r.Outcome)
		assert.Equal(t, 2, r.Ticks())
	}

	assert.False(t, s.AdvanceGeneration())
	assert.Equal(t, 5, s.CurrentPopulation().Generation)

	st := s.Status()
	assert.Equal(t, Exhausted, st.State)
	assert.Equal(t, 0, st.Landed)
	assert.Equal(t, 5, st.MaxGenerations)
}

func TestReset(t *testing.T) {
	t.Run("reseed", func(t *testing.T) {
		set := testSettings(9)
		set.ReseedOnReset = true
		s := newSolver(t, flatScenario(2500), set)

		first := s.CurrentPopulation()
		s.AdvanceGeneration()
		s.Reset()
		again := s.CurrentPopulation()

		assert.Equal(t, 0, again.Generation)
		assert.NotEqual(t, first.RunID, again.RunID)
		assert.Equal(t, first.Fitness, again.Fitness)
		assert.Equal(t, Initialized, s.State())
	})

	t.Run("continue stream", func(t *testing.T) {
		s := newSolver(t, flatScenario(2500), testSettings(9))

		first := s.CurrentPopulation()
		s.Reset()
		again := s.CurrentPopulation()

		assert.Equal(t, 0, again.Generation)
		assert.NotEqual(t, first.Routes[0].Chromosome, again.Routes[0].Chromosome)
	})
}

func TestSnapshot(t *testing.T) {
	s := newSolver(t, flatScenario(2500), testSettings(13))
	s.AdvanceGeneration()

	pop := s.CurrentPopulation()
	dto := pop.Snapshot(s.Seed())

	assert.Equal(t, pop.RunID, dto.RunID)
	assert.Equal(t, 1, dto.Generation)
	assert.Equal(t, uint64(13), dto.Seed)
	require.Len(t, dto.Candidates, len(pop.Routes))
	assert.Equal(t, pop.Routes[3].Outcome.String(), dto.Candidates[3].Label)
	assert.Equal(t, pop.Fitness[3], dto.Candidates[3].Score)
}

func TestConcurrentReaders(t *testing.T) {
	set := testSettings(21)
	set.MaxGenerations = 0
	s := newSolver(t, flatScenario(2500), set)

	var wg sync.WaitGroup
	done := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				pop := s.CurrentPopulation()
				st := s.Status()
				assert.Len(t, pop.Routes, set.PopulationSize)
				assert.GreaterOrEqual(t, st.Generation, 0)
			}
		}()
	}

	for range 10 {
		s.AdvanceGeneration()
	}
	close(done)
	wg.Wait()
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initialized", Initialized.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.True(t, Solved.Terminal())
	assert.False(t, Evolving.Terminal())

	b, err := Solved.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "solved", string(b))
}

func firstLanded(pop *Population) int {
	for i, r := range pop.Routes {
		if r.Outcome == lander.LandedCorrectly {
			return i
		}
	}
	return -1
}
