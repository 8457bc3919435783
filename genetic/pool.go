package genetic

import (
	"math"
	"sort"
)

// NewPool assembles an evaluated generation from parallel slices
// scores[i] belongs to solutions[i]
func NewPool[S Solution, F Numeric](generation int, solutions []S, scores []F) *Pool[S, F] {
	n := min(len(solutions), len(scores))
	members := make([]Candidate[S, F], n)
	for i := 0; i < n; i++ {
		members[i] = Candidate[S, F]{Data: solutions[i], Score: scores[i], Index: i}
	}

	p := &Pool[S, F]{
		Members:    members,
		Generation: generation,
		Stats:      calculateStats(members),
	}
	p.normalize()
	return p
}

// normalize assigns roulette weights as score minus the worst score
func (p *Pool[S, F]) normalize() {
	p.cumulative = make([]float64, len(p.Members))
	if len(p.Members) == 0 {
		return
	}

	worst := float64(p.Stats.WorstScore)
	total := 0.0
	for i := range p.Members {
		w := float64(p.Members[i].Score) - worst
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		p.Members[i].Weight = w
		total += w
		p.cumulative[i] = total
	}
}

// TotalWeight is the sum of all roulette weights
func (p *Pool[S, F]) TotalWeight() float64 {
	if len(p.cumulative) == 0 {
		return 0
	}
	return p.cumulative[len(p.cumulative)-1]
}

// Best returns the candidate with the highest score
func (p *Pool[S, F]) Best() (Candidate[S, F], bool) {
	if len(p.Members) == 0 {
		return Candidate[S, F]{}, false
	}
	return p.Members[p.Stats.BestIndex], true
}

// calculateStats computes statistical measures for a candidate pool
func calculateStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	total := 0.0
	for i, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
			stats.BestIndex = i
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += float64(c.Score)
	}

	stats.AverageScore = F(total / float64(len(candidates)))
	return stats
}

// SelectElite returns the top k candidates by score
// Ties keep the lower index first so the result is deterministic
func SelectElite[S Solution, F Numeric](pool *Pool[S, F], k int) []Candidate[S, F] {
	if k <= 0 || pool == nil || len(pool.Members) == 0 {
		return nil
	}
	k = min(k, len(pool.Members))

	ranked := make([]Candidate[S, F], len(pool.Members))
	copy(ranked, pool.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked[:k]
}
