package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHostSolver(t *testing.T, seed uint64) *Solver {
	return newSolver(t, flatScenario(400), testSettings(seed))
}

func TestHost_ResetInPlace(t *testing.T) {
	s := newHostSolver(t, 3)
	h := NewHost(s, nil, nil)
	run := s.CurrentPopulation().RunID

	require.NoError(t, h.Reset())
	assert.Same(t, s, h.Solver())
	assert.NotEqual(t, run, h.Solver().CurrentPopulation().RunID)
	assert.ErrorIs(t, h.Reload(), ErrNoSource)
}

func TestHost_Reload(t *testing.T) {
	s := newHostSolver(t, 3)
	h := NewHost(s, func() (*Solver, error) { return newHostSolver(t, 8), nil }, nil)

	require.NoError(t, h.Reset())
	assert.NotSame(t, s, h.Solver())
	assert.Equal(t, uint64(8), h.Solver().Seed())
}

func TestHost_FailedReloadKeepsSolver(t *testing.T) {
	s := newHostSolver(t, 3)
	boom := errors.New("unreadable")
	h := NewHost(s, func() (*Solver, error) { return nil, boom }, nil)

	assert.ErrorIs(t, h.Reset(), boom)
	assert.Same(t, s, h.Solver())
}
