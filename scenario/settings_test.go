package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/parameter"
)

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestParseSettings_YAML(t *testing.T) {
	doc := `
population_size: 50
chromosome_length: 80
elite_count: 4
mutation_probability: 0.05
rotation: {min: -45, max: 45, max_delta: 10}
tolerance: {angle: 5, horizontal_speed: 10, vertical_speed: 30}
seed: 42
reseed_on_reset: true
out_of_fuel: crash
selection: tournament
tournament_size: 5
fitness:
  landing_bonus: 50000
  zone_margin: 100
`
	s, err := ParseSettings([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 50, s.PopulationSize)
	assert.Equal(t, 80, s.ChromosomeLength)
	assert.Equal(t, 4, s.EliteCount)
	assert.Equal(t, 0.05, s.MutationProbability)
	assert.Equal(t, -45, s.Limits.Rotate.Min)
	assert.Equal(t, 10, s.Limits.Rotate.MaxDelta)
	assert.Equal(t, parameter.PowerMax, s.Limits.Power.Max, "untouched section keeps defaults")
	assert.Equal(t, 5.0, s.Tolerance.Angle)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(42), *s.Seed)
	assert.True(t, s.ReseedOnReset)
	assert.Equal(t, parameter.OutOfFuelCrash, s.OutOfFuel)
	assert.Equal(t, parameter.SelectionTournament, s.Selection)
	assert.Equal(t, 50000.0, s.Fitness.LandingBonus)
	assert.Equal(t, 100.0, s.Fitness.ZoneMargin)
	assert.Equal(t, parameter.FitnessWeightAngle, s.Fitness.Angle)
	assert.Equal(t, parameter.Gravity, s.Gravity)
}

func TestParseSettings_JSON(t *testing.T) {
	s, err := ParseSettings([]byte(`{"population_size": 20, "elite_count": 2, "power": {"min": 0, "max": 3, "max_delta": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, 20, s.PopulationSize)
	assert.Equal(t, 3, s.Limits.Power.Max)
	assert.Nil(t, s.Seed)
}

func TestParseSettings_Legacy(t *testing.T) {
	s, err := ParseSettings([]byte(`{"PopulationSize": 200, "ChromosomeSize": 160, "Elitism": 0.15, "MutationProb": 0.01}`))
	require.NoError(t, err)

	assert.Equal(t, 200, s.PopulationSize)
	assert.Equal(t, 160, s.ChromosomeLength)
	assert.Equal(t, 30, s.EliteCount)
	assert.Equal(t, 0.01, s.MutationProbability)
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `population_size: [`},
		{"tiny population", `population_size: 1`},
		{"elite not below population", "population_size: 10\nelite_count: 10"},
		{"mutation above one", `mutation_probability: 1.5`},
		{"zero tick", `tick_duration: 0`},
		{"rotation inverted", `rotation: {min: 10, max: -10, max_delta: 15}`},
		{"zero power delta", `power: {min: 0, max: 4, max_delta: 0}`},
		{"negative power", `power: {min: -1, max: 4, max_delta: 1}`},
		{"unknown policy", `out_of_fuel: explode`},
		{"unknown selection", `selection: rank`},
		{"negative tolerance", `tolerance: {vertical_speed: -1}`},
		{"zero bonus", `fitness: {landing_bonus: 0}`},
		{"legacy elitism", `{"Elitism": 1.0}`},
		{"infinite gravity", `gravity: .inf`},
		{"nan ceiling", `ceiling: .nan`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestSettings_Physics(t *testing.T) {
	s := Defaults()
	s.Gravity = 1.62
	s.TickDuration = 0.5

	p := s.Physics()
	assert.Equal(t, 1.62, p.Gravity)
	assert.Equal(t, 0.5, p.DT)
}
