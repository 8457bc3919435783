package tracking

import (
	"sync"
	"time"
)

// aggregate is the running view of one metric
type aggregate struct {
	n      int
	sum    float64
	lo, hi float64
	// active is time spent with the metric above 0.5, for 0/1 flags
	active time.Duration
}

func (a *aggregate) add(v float64, dt time.Duration) {
	if a.n == 0 || v < a.lo {
		a.lo = v
	}
	if a.n == 0 || v > a.hi {
		a.hi = v
	}
	a.n++
	a.sum += v
	if v > 0.5 {
		a.active += dt
	}
}

// Recorder accumulates per-tick metrics over one flight
// For every metric k the summary carries avg_k, min_k, max_k, and time_k when the
// metric was ever above 0.5
type Recorder struct {
	ticks int
	aggs  map[string]*aggregate
}

func NewRecorder() *Recorder {
	return &Recorder{aggs: make(map[string]*aggregate)}
}

// Record adds one tick lasting dt
func (r *Recorder) Record(m Metrics, dt time.Duration) {
	r.ticks++
	for k, v := range m {
		a, ok := r.aggs[k]
		if !ok {
			a = &aggregate{}
			r.aggs[k] = a
		}
		a.add(v, dt)
	}
}

// Summary returns the flight summary overlaid by terminal
func (r *Recorder) Summary(terminal Metrics) Metrics {
	out := make(Metrics, 4*len(r.aggs)+len(terminal)+1)
	out[MetricTicks] = float64(r.ticks)
	for k, a := range r.aggs {
		if a.n == 0 {
			continue
		}
		out["avg_"+k] = a.sum / float64(a.n)
		out["min_"+k] = a.lo
		out["max_"+k] = a.hi
		if a.active > 0 {
			out["time_"+k] = a.active.Seconds()
		}
	}
	for k, v := range terminal {
		out[k] = v
	}
	return out
}

// Reset zeroes the recorder, keeping its per-metric storage
func (r *Recorder) Reset() {
	r.ticks = 0
	for _, a := range r.aggs {
		*a = aggregate{}
	}
}

// RecorderPool hands out reset recorders to concurrent simulations
type RecorderPool struct {
	pool sync.Pool
}

func NewRecorderPool() *RecorderPool {
	return &RecorderPool{pool: sync.Pool{New: func() any { return NewRecorder() }}}
}

// Get returns a recorder with no ticks recorded
func (p *RecorderPool) Get() *Recorder {
	r := p.pool.Get().(*Recorder)
	r.Reset()
	return r
}

func (p *RecorderPool) Put(r *Recorder) {
	p.pool.Put(r)
}
