package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/service"
)

const flatScenario = `{
  "Lander": {"X": 500, "Y": 400, "HSpeed": 0, "VSpeed": 0, "Fuel": 1000, "Angle": 0, "Power": 0},
  "Terrain": [[0, 0], [1000, 0]]
}`

const flatSettings = `
population_size: 60
chromosome_length: 40
elite_count: 6
max_generations: 500
parallelism: 4
seed: 2024
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with flag state from earlier runs cleared
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	maxGenerations, plotPath, dumpPath = 0, "", ""
	settingsPath, inspectTop = "", 10

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveAndInspect(t *testing.T) {
	dir := t.TempDir()
	scn := writeFile(t, dir, "flat.json", flatScenario)
	set := writeFile(t, dir, "settings.yaml", flatSettings)
	snap := filepath.Join(dir, "final.snap")
	plot := filepath.Join(dir, "fitness.png")

	out, err := execute(t, "solve",
		"--scenario", scn, "--settings", set,
		"--log-dir", dir, "--dump", snap, "--plot", plot)
	require.NoError(t, err, out)
	assert.Contains(t, out, "state:      solved")
	assert.Contains(t, out, "LandedCorrectly")
	assert.Contains(t, out, "commands:")
	assert.FileExists(t, plot)
	assert.FileExists(t, filepath.Join(dir, "lander.log"))

	out, err = execute(t, "inspect", snap, "--top", "3", "--log-dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "seed:       2024")
	assert.Contains(t, out, "candidates: 60")
	assert.Regexp(t, `best:\s+-?[0-9.]+ LandedCorrectly`, out)
	assert.Contains(t, out, "LandedCorrectly")
}

func TestSolveExhausted(t *testing.T) {
	dir := t.TempDir()
	scn := writeFile(t, dir, "flat.json", flatScenario)
	set := writeFile(t, dir, "settings.yaml", strings.Replace(flatSettings, "chromosome_length: 40", "chromosome_length: 2", 1))

	out, err := execute(t, "solve", "--scenario", scn, "--settings", set,
		"--log-dir", dir, "--max-generations", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no landing after 3 generations")
	assert.Contains(t, out, "state:      exhausted")
	assert.NotContains(t, out, "commands:")
}

func TestSolveRequiresScenario(t *testing.T) {
	scenarioPath = ""
	_, err := execute(t, "solve", "--log-dir", t.TempDir())
	assert.ErrorContains(t, err, "--scenario is required")
}

func TestInspectMissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.snap"))
	assert.Error(t, err)
}

func TestRegisterWatcherRejectsDuplicate(t *testing.T) {
	dir := t.TempDir()
	l := scenario.Loader{
		ScenarioPath: writeFile(t, dir, "flat.json", flatScenario),
		SettingsPath: writeFile(t, dir, "settings.yaml", flatSettings),
	}

	hub := service.NewHub()
	require.NoError(t, registerWatcher(hub, l, nil, nil, nil))
	assert.ErrorContains(t, registerWatcher(hub, l, nil, nil, nil), "registered twice")
}
