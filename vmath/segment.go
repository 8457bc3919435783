package vmath

import "math"

// epsilon treats nearly parallel segments as parallel
const epsilon = 1e-12

// SegmentIntersect finds where movement p0→p1 meets segment q0→q1
// t is the fraction along the movement in [0, 1], the earliest contact for collinear overlap
func SegmentIntersect(p0, p1, q0, q1 Vec2) (point Vec2, t float64, ok bool) {
	r := V2Sub(p1, p0)
	s := V2Sub(q1, q0)
	qp := V2Sub(q0, p0)

	rr := V2Dot(r, r)
	if rr == 0 {
		// Stationary movement: contact only if p0 lies on the segment
		if pointOnSegment(p0, q0, q1) {
			return p0, 0, true
		}
		return Vec2{}, 0, false
	}

	rs := V2Cross(r, s)
	qpr := V2Cross(qp, r)

	if math.Abs(rs) < epsilon {
		if math.Abs(qpr) >= epsilon {
			// Parallel, disjoint
			return Vec2{}, 0, false
		}

		// Collinear: project segment endpoints onto the movement
		t0 := V2Dot(qp, r) / rr
		t1 := t0 + V2Dot(s, r)/rr
		lo, hi := min(t0, t1), max(t0, t1)
		if lo > 1 || hi < 0 {
			return Vec2{}, 0, false
		}
		t = max(lo, 0)
		return V2Add(p0, V2Scale(r, t)), t, true
	}

	t = V2Cross(qp, s) / rs
	u := qpr / rs
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, 0, false
	}
	return V2Add(p0, V2Scale(r, t)), t, true
}

func pointOnSegment(p, q0, q1 Vec2) bool {
	s := V2Sub(q1, q0)
	qp := V2Sub(p, q0)
	if math.Abs(V2Cross(s, qp)) >= epsilon {
		return false
	}
	d := V2Dot(qp, s)
	return d >= 0 && d <= V2Dot(s, s)
}
