package solver

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/lixenwraith/lander/log"
)

// ErrNoSource is returned by Reload on a host built without a source
var ErrNoSource = errors.New("no reload source configured")

// Source builds a fresh solver from its backing files
type Source func() (*Solver, error)

// Host holds the active solver for front ends and swaps it on reload
type Host struct {
	mu     sync.RWMutex
	solver *Solver

	source Source
	logger *log.Logger
}

// NewHost wraps s; src may be nil, in which case Reset restarts s in place
func NewHost(s *Solver, src Source, logger *log.Logger) *Host {
	return &Host{solver: s, source: src, logger: logger}
}

// Solver returns the active solver
func (h *Host) Solver() *Solver {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.solver
}

// Reset restarts the run, reloading from the source when one is configured
// A failed reload keeps the current solver
func (h *Host) Reset() error {
	if h.source == nil {
		h.Solver().Reset()
		return nil
	}
	return h.Reload()
}

// Reload replaces the active solver with one built from the source
func (h *Host) Reload() error {
	if h.source == nil {
		return ErrNoSource
	}

	next, err := h.source()
	if err != nil {
		h.logger.Warn("reload failed, keeping current solver", slog.Any("error", err))
		return err
	}

	h.mu.Lock()
	h.solver = next
	h.mu.Unlock()

	h.logger.Info("solver reloaded", slog.Uint64("seed", next.Seed()))
	return nil
}
