// Package api serves the solver over HTTP
package api

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lixenwraith/lander/log"
	"github.com/lixenwraith/lander/observability"
	"github.com/lixenwraith/lander/parameter"
	"github.com/lixenwraith/lander/solver"
)

type routeKey struct {
	run        string
	generation int
	index      int
}

// Server exposes the host's active solver
type Server struct {
	host    *solver.Host
	details *lru.Cache[routeKey, RouteDetail]
	logger  *log.Logger
	metrics *observability.Metrics
}

type Option func(*Server)

func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer serves whichever solver host currently holds
func NewServer(host *solver.Host, opts ...Option) (*Server, error) {
	cache, err := lru.New[routeKey, RouteDetail](parameter.ServiceRouteCacheSize)
	if err != nil {
		return nil, fmt.Errorf("route cache: %w", err)
	}

	srv := &Server{host: host, details: cache}
	for _, opt := range opts {
		opt(srv)
	}
	return srv, nil
}

// Solver returns the active solver
func (s *Server) Solver() *solver.Solver {
	return s.host.Solver()
}

// routeDetail projects one route of pop, memoized per run, generation and index
// Run ids are unique per reset and reload, so entries never go stale
func (s *Server) routeDetail(pop *solver.Population, index int) RouteDetail {
	key := routeKey{run: pop.RunID, generation: pop.Generation, index: index}
	if d, ok := s.details.Get(key); ok {
		return d
	}
	d := newRouteDetail(pop.Generation, index, pop.Routes[index])
	s.details.Add(key, d)
	return d
}
