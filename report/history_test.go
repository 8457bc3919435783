package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lander/scenario"
	"github.com/lixenwraith/lander/solver"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func runHistory(t *testing.T, generations int) *History {
	t.Helper()
	seed := uint64(11)
	set := scenario.Defaults()
	set.PopulationSize = 10
	set.ChromosomeLength = 20
	set.EliteCount = 2
	set.MaxGenerations = generations
	set.Seed = &seed

	scn := scenario.Scenario{
		Lander:  scenario.Lander{X: 2500, Y: 2700, Fuel: 550},
		Terrain: [][2]float64{{0, 100}, {1000, 500}, {1500, 1500}, {3000, 1000}, {4000, 150}, {5500, 150}, {6999, 800}},
	}
	s, err := solver.New(scn, set)
	require.NoError(t, err)

	h := &History{}
	h.Record(s.CurrentPopulation())
	for !s.State().Terminal() {
		s.AdvanceGeneration()
		h.Record(s.CurrentPopulation())
	}
	return h
}

func TestRecord(t *testing.T) {
	h := runHistory(t, 4)
	require.Equal(t, h.Len(), len(h.Best))
	assert.Equal(t, 0, h.Generations[0])

	for i := range h.Len() {
		assert.GreaterOrEqual(t, h.Best[i], h.Mean[i], "generation %d", h.Generations[i])
	}
	for i := 1; i < h.Len(); i++ {
		assert.GreaterOrEqual(t, h.Best[i], h.Best[i-1], "elitism keeps the best route")
	}

	n := h.Len()
	last := &solver.Population{Generation: h.Generations[n-1]}
	h.Record(last)
	assert.Equal(t, n, h.Len(), "same generation recorded once")
}

func TestRender(t *testing.T) {
	h := runHistory(t, 3)

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, "fitness", "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestSave(t *testing.T) {
	h := runHistory(t, 3)
	path := filepath.Join(t.TempDir(), "fitness.png")

	require.NoError(t, h.Save("fitness", path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestEmptyHistory(t *testing.T) {
	h := &History{}
	_, err := h.Plot("empty")
	assert.Error(t, err)
	assert.Error(t, h.Render(&bytes.Buffer{}, "empty", "png"))
}
