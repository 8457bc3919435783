// Package tracking folds per-tick flight metrics into a per-route summary
package tracking

import "maps"

// Metrics maps a metric name to its value
type Metrics map[string]float64

// Per-tick metric names recorded during a flight
const (
	MetricSpeed    = "speed"
	MetricAltitude = "altitude"
	MetricPower    = "power"
	MetricFuel     = "fuel"
	MetricOverZone = "over_zone"
)

// Summary-only metric names
const (
	MetricTicks      = "ticks"
	MetricFinalVX    = "final_vx"
	MetricFinalVY    = "final_vy"
	MetricFinalAngle = "final_angle"
)

// Get returns the value at key, or fallback when absent
func (m Metrics) Get(key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func (m Metrics) Clone() Metrics {
	return maps.Clone(m)
}
