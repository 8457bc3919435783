package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/terrain"
)

const simpleJSON = `{
    "Lander": {"X": 2500, "Y": 2700, "HSpeed": 0, "VSpeed": 0, "Fuel": 550, "Angle": 0, "Power": 0},
    "Terrain": [[0,100],[1000,500],[1500,1500],[3000,1000],[4000,150],[5500,150],[6999,800]]
}`

const simpleYAML = `
Lander: {X: 2500, Y: 2700, HSpeed: 0, VSpeed: 0, Fuel: 550, Angle: 0, Power: 0}
Terrain:
  - [0, 100]
  - [1000, 500]
  - [1500, 1500]
  - [3000, 1000]
  - [4000, 150]
  - [5500, 150]
  - [6999, 800]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseScenario_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := ParseScenario([]byte(simpleJSON))
	require.NoError(t, err)
	fromYAML, err := ParseScenario([]byte(simpleYAML))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, 2500.0, fromJSON.Lander.X)
	assert.Equal(t, 550.0, fromJSON.Lander.Fuel)
	assert.Len(t, fromJSON.Terrain, 7)
	assert.Equal(t, [2]float64{4000, 150}, fromJSON.Terrain[4])
}

func TestParseScenario_Errors(t *testing.T) {
	_, err := ParseScenario([]byte(`{"Lander": {"X": 1}}`))
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseScenario([]byte(`{"Lander": {"X": "far"}, "Terrain": [[0, 0]]}`))
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, err = ParseScenario([]byte(`{"Terrain": [[0, 0, 1]]}`))
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestScenario_State(t *testing.T) {
	s, err := ParseScenario([]byte(simpleJSON))
	require.NoError(t, err)

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, st.X)
	assert.Equal(t, 2700.0, st.Y)
	assert.Equal(t, 550.0, st.Fuel)
	assert.Equal(t, 0, st.Rotate)

	s.Lander.Angle = 7.5
	_, err = s.State()
	assert.ErrorIs(t, err, ErrInvalidScenario)

	s.Lander.Angle = -15
	s.Lander.Fuel = -1
	_, err = s.State()
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestScenario_Environment(t *testing.T) {
	s, err := ParseScenario([]byte(simpleJSON))
	require.NoError(t, err)

	env, err := s.Environment(Defaults())
	require.NoError(t, err)

	z := env.Terrain.LandingZone()
	assert.Equal(t, 4000.0, z.X0)
	assert.Equal(t, 5500.0, z.X1)
	assert.Equal(t, 150.0, z.Y)
	assert.False(t, env.CrashWhenDry)
	assert.Equal(t, 2700.0, env.Initial.Y)
}

func TestScenario_EnvironmentRejects(t *testing.T) {
	base, err := ParseScenario([]byte(simpleJSON))
	require.NoError(t, err)

	t.Run("underground", func(t *testing.T) {
		s := base
		s.Lander.Y = 100
		_, err := s.Environment(Defaults())
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("outside map", func(t *testing.T) {
		s := base
		s.Lander.X = 8000
		_, err := s.Environment(Defaults())
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("illegal rotation", func(t *testing.T) {
		s := base
		s.Lander.Angle = 120
		_, err := s.Environment(Defaults())
		assert.ErrorIs(t, err, ErrInvalidScenario)
	})

	t.Run("two zones", func(t *testing.T) {
		s := base
		s.Terrain = [][2]float64{{0, 100}, {500, 100}, {1000, 800}, {4000, 150}, {5500, 150}, {6999, 800}}
		_, err := s.Environment(Defaults())
		assert.ErrorIs(t, err, ErrInvalidScenario)
		assert.ErrorIs(t, err, terrain.ErrMultipleLandingZones)
	})

	t.Run("non monotonic", func(t *testing.T) {
		s := base
		s.Terrain = [][2]float64{{0, 100}, {3000, 150}, {4000, 150}, {3500, 800}}
		_, err := s.Environment(Defaults())
		assert.True(t, errors.Is(err, terrain.ErrNonMonotonic))
	})

	t.Run("bonus too small", func(t *testing.T) {
		set := Defaults()
		set.Fitness.LandingBonus = 1000
		_, err := base.Environment(set)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestLoader(t *testing.T) {
	scnPath := writeFile(t, "sim.json", simpleJSON)
	setPath := writeFile(t, "settings.yaml", "population_size: 30\nchromosome_length: 20\nelite_count: 5\n")

	scn, set, err := Loader{ScenarioPath: scnPath, SettingsPath: setPath}.Load()
	require.NoError(t, err)
	assert.Len(t, scn.Terrain, 7)
	assert.Equal(t, 30, set.PopulationSize)
	assert.Equal(t, 20, set.ChromosomeLength)

	_, set, err = Loader{ScenarioPath: scnPath}.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), set)

	_, _, err = Loader{ScenarioPath: filepath.Join(t.TempDir(), "missing.json")}.Load()
	assert.Error(t, err)

	assert.Equal(t, []string{scnPath, setPath}, Loader{ScenarioPath: scnPath, SettingsPath: setPath}.Paths())
}

func TestBundledScenarios(t *testing.T) {
	for _, name := range []string{"simple.json", "canyon.yaml"} {
		t.Run(name, func(t *testing.T) {
			l := Loader{
				ScenarioPath: filepath.Join("..", "scenarios", name),
				SettingsPath: filepath.Join("..", "scenarios", "settings.yaml"),
			}
			scn, set, err := l.Load()
			require.NoError(t, err)
			_, err = scn.Environment(set)
			assert.NoError(t, err)
		})
	}

	set, err := LoadSettings(filepath.Join("..", "scenarios", "legacy.json"))
	require.NoError(t, err)
	assert.Equal(t, 30, set.PopulationSize)
	assert.Equal(t, 20, set.ChromosomeLength)
	assert.Equal(t, 5, set.EliteCount)
}
