// Package terrain holds the immutable ground profile and its landing zone
package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/lander/vmath"
)

var (
	ErrTooFewPoints         = errors.New("terrain needs at least two points")
	ErrNonMonotonic         = errors.New("terrain x coordinates must be strictly increasing")
	ErrNonFinite            = errors.New("terrain coordinates must be finite")
	ErrNoLandingZone        = errors.New("terrain has no flat landing zone")
	ErrMultipleLandingZones = errors.New("terrain has more than one flat landing zone")
	ErrCeilingBelowTerrain  = errors.New("ceiling must be above every terrain point")
)

// OutOfRangeError reports a query outside the horizontal extent of the terrain
type OutOfRangeError struct {
	X        float64
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("x=%g outside terrain range [%g, %g]", e.X, e.Min, e.Max)
}

// Zone is the flat run where a correct landing is possible
type Zone struct {
	X0, X1 float64
	Y      float64
	// First and Last are the indices of the bounding terrain points
	First, Last int
}

// Center returns the midpoint of the zone at ground level
func (z Zone) Center() vmath.Vec2 {
	return vmath.Vec2{X: (z.X0 + z.X1) / 2, Y: z.Y}
}

// Contains reports whether x lies within the zone horizontally
func (z Zone) Contains(x float64) bool {
	return x >= z.X0 && x <= z.X1
}

// Width is the horizontal length of the zone
func (z Zone) Width() float64 {
	return z.X1 - z.X0
}

// Terrain is a read-only ground profile shared by all simulations
type Terrain struct {
	points  []vmath.Vec2
	zone    Zone
	ceiling float64
}

// New validates points and locates the single landing zone
func New(points []vmath.Vec2, ceiling float64) (*Terrain, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	if !vmath.Finite(ceiling) {
		return nil, ErrNonFinite
	}

	for i, p := range points {
		if !vmath.V2Finite(p) {
			return nil, fmt.Errorf("point %d: %w", i, ErrNonFinite)
		}
		if i > 0 && p.X <= points[i-1].X {
			return nil, fmt.Errorf("point %d (x=%g): %w", i, p.X, ErrNonMonotonic)
		}
		if p.Y >= ceiling {
			return nil, fmt.Errorf("point %d (y=%g, ceiling=%g): %w", i, p.Y, ceiling, ErrCeilingBelowTerrain)
		}
	}

	zone, err := findZone(points)
	if err != nil {
		return nil, err
	}

	pts := make([]vmath.Vec2, len(points))
	copy(pts, points)

	return &Terrain{
		points:  pts,
		zone:    zone,
		ceiling: ceiling,
	}, nil
}

// findZone scans for maximal runs of equal y, exactly one is allowed
func findZone(points []vmath.Vec2) (Zone, error) {
	var zones []Zone
	for i := 0; i < len(points)-1; {
		j := i
		for j+1 < len(points) && points[j+1].Y == points[i].Y {
			j++
		}
		if j > i {
			zones = append(zones, Zone{
				X0:    points[i].X,
				X1:    points[j].X,
				Y:     points[i].Y,
				First: i,
				Last:  j,
			})
			i = j
			continue
		}
		i++
	}

	switch len(zones) {
	case 0:
		return Zone{}, ErrNoLandingZone
	case 1:
		return zones[0], nil
	default:
		return Zone{}, fmt.Errorf("%d flat runs: %w", len(zones), ErrMultipleLandingZones)
	}
}

// LandingZone returns the flat run
func (t *Terrain) LandingZone() Zone {
	return t.zone
}

// Bounds returns the horizontal extent
func (t *Terrain) Bounds() (minX, maxX float64) {
	return t.points[0].X, t.points[len(t.points)-1].X
}

// Width is the horizontal extent length
func (t *Terrain) Width() float64 {
	lo, hi := t.Bounds()
	return hi - lo
}

func (t *Terrain) Ceiling() float64 {
	return t.ceiling
}

// Points returns a copy of the profile
func (t *Terrain) Points() []vmath.Vec2 {
	pts := make([]vmath.Vec2, len(t.points))
	copy(pts, t.points)
	return pts
}

// Len is the number of profile points
func (t *Terrain) Len() int {
	return len(t.points)
}

// IsZoneSegment reports whether segment i (points i to i+1) belongs to the landing zone
func (t *Terrain) IsZoneSegment(i int) bool {
	return i >= t.zone.First && i < t.zone.Last
}

// HeightAt interpolates the ground altitude below x
func (t *Terrain) HeightAt(x float64) (float64, error) {
	lo, hi := t.Bounds()
	if math.IsNaN(x) || x < lo || x > hi {
		return 0, &OutOfRangeError{X: x, Min: lo, Max: hi}
	}

	// Binary search for the bracketing segment
	i, j := 0, len(t.points)-1
	for j-i > 1 {
		m := (i + j) / 2
		if t.points[m].X <= x {
			i = m
		} else {
			j = m
		}
	}

	a, b := t.points[i], t.points[j]
	return vmath.Lerp(a.Y, b.Y, (x-a.X)/(b.X-a.X)), nil
}
