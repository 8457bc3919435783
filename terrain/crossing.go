package terrain

import (
	"math"

	"github.com/lixenwraith/lander/vmath"
)

const (
	// tieT is the largest difference in t still treated as the same contact
	tieT = 1e-9
	// vertexTolerance is how far, in metres, a contact may sit from a zone edge and count as on it
	vertexTolerance = 1e-6
)

// Crossing describes where a movement first touched the ground
type Crossing struct {
	Point vmath.Vec2
	// Segment is the index of the terrain segment (points Segment to Segment+1)
	Segment int
	// Zone is true when the segment lies on the landing zone
	Zone bool
	// T is the fraction of the movement travelled before contact
	T float64
}

// SegmentCrosses finds the earliest contact of movement p0→p1 with the terrain
// Segments touched at (nearly) the same t resolve to the landing zone, and a contact on a
// zone edge vertex always reports the zone
func (t *Terrain) SegmentCrosses(p0, p1 vmath.Vec2) (Crossing, bool) {
	lo, hi := min(p0.X, p1.X), max(p0.X, p1.X)

	var best Crossing
	found := false
	for i := 0; i < len(t.points)-1; i++ {
		a, b := t.points[i], t.points[i+1]
		if b.X < lo || a.X > hi {
			continue
		}

		pt, tt, ok := vmath.SegmentIntersect(p0, p1, a, b)
		if !ok {
			continue
		}

		zone := t.IsZoneSegment(i)
		switch {
		case !found:
		case math.Abs(tt-best.T) <= tieT:
			if !zone || best.Zone {
				continue
			}
		case tt > best.T:
			continue
		}
		best = Crossing{Point: pt, Segment: i, Zone: zone, T: tt}
		found = true
	}
	if found && !best.Zone {
		t.snapToZone(&best)
	}
	if best.Zone {
		// The pad is flat
		best.Point.Y = t.zone.Y
	}
	return best, found
}

// snapToZone moves a contact at a zone edge vertex onto the adjacent zone segment
func (t *Terrain) snapToZone(c *Crossing) {
	z := t.zone
	if math.Abs(c.Point.Y-z.Y) > vertexTolerance {
		return
	}
	switch {
	case math.Abs(c.Point.X-z.X0) <= vertexTolerance:
		c.Point = vmath.Vec2{X: z.X0, Y: z.Y}
		c.Segment = z.First
	case math.Abs(c.Point.X-z.X1) <= vertexTolerance:
		c.Point = vmath.Vec2{X: z.X1, Y: z.Y}
		c.Segment = z.Last - 1
	default:
		return
	}
	c.Zone = true
}

// Below reports whether p is under the ground, false outside the horizontal extent
func (t *Terrain) Below(p vmath.Vec2) bool {
	h, err := t.HeightAt(p.X)
	if err != nil {
		return false
	}
	return p.Y < h
}
