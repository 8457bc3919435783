// Package observability exposes solver and HTTP metrics to Prometheus
// Every method is safe on a nil *Metrics, which records nothing
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lander"

// Metrics holds the registered collectors
type Metrics struct {
	gatherer prometheus.Gatherer

	generations        prometheus.Counter
	generationDuration prometheus.Histogram
	bestFitness        prometheus.Gauge
	landedRoutes       prometheus.Gauge
	outcomes           *prometheus.CounterVec
	resets             prometheus.Counter
	httpRequests       *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers all collectors on reg and serves them from g
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,

		generations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "generations_total",
			Help:      "Generations bred and evaluated",
		}),
		generationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "generation_duration_seconds",
			Help:      "Time to breed and evaluate one generation",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}),
		bestFitness: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "best_fitness",
			Help:      "Best fitness of the current population",
		}),
		landedRoutes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "landed_routes",
			Help:      "Routes of the current population that landed correctly",
		}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "outcomes_total",
			Help:      "Simulated routes by flight outcome",
		}, []string{"outcome"}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "resets_total",
			Help:      "Solver resets",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveGeneration records one evaluated population
// outcomes maps an outcome name to its route count
func (m *Metrics) ObserveGeneration(d time.Duration, best float64, landed int, outcomes map[string]int) {
	if m == nil {
		return
	}
	m.generations.Inc()
	m.generationDuration.Observe(d.Seconds())
	m.bestFitness.Set(best)
	m.landedRoutes.Set(float64(landed))
	for name, n := range outcomes {
		m.outcomes.WithLabelValues(name).Add(float64(n))
	}
}

func (m *Metrics) RecordReset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}

func (m *Metrics) RecordRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the registered metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
